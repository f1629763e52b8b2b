package subscription

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name  string
		cycle string
		amount float64
		want   float64
	}{
		{"monthly passes through", CycleMonthly, 10, 10},
		{"yearly divides by twelve", CycleYearly, 120, 10},
		{"weekly multiplies by weeks per month", CycleWeekly, 10, 43.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Subscription{Amount: tt.amount, BillingCycle: tt.cycle}
			if got := s.MonthlyEquivalent(); !almostEqual(got, tt.want) {
				t.Errorf("MonthlyEquivalent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYearlyEquivalent(t *testing.T) {
	tests := []struct {
		name   string
		cycle  string
		amount float64
		want   float64
	}{
		{"monthly multiplies by twelve", CycleMonthly, 10, 120},
		{"yearly passes through", CycleYearly, 120, 120},
		{"weekly multiplies by fifty-two", CycleWeekly, 10, 520},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Subscription{Amount: tt.amount, BillingCycle: tt.cycle}
			if got := s.YearlyEquivalent(); !almostEqual(got, tt.want) {
				t.Errorf("YearlyEquivalent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYearlyRoundTrip(t *testing.T) {
	// A yearly subscription of amount A normalizes to A/12 per month and A
	// per year.
	s := &Subscription{Amount: 99, BillingCycle: CycleYearly}
	if got := s.MonthlyEquivalent(); !almostEqual(got, 99.0/12) {
		t.Errorf("MonthlyEquivalent() = %v, want %v", got, 99.0/12)
	}
	if got := s.YearlyEquivalent(); !almostEqual(got, 99) {
		t.Errorf("YearlyEquivalent() = %v, want 99", got)
	}
}

func TestTotalMonthlySpend_NormalizesBeforeSumming(t *testing.T) {
	subs := []*Subscription{
		{Amount: 10, BillingCycle: CycleMonthly, Status: StatusActive},
		{Amount: 120, BillingCycle: CycleYearly, Status: StatusActive},
	}

	// $10 monthly plus $120 yearly is $20/month, never $130.
	if got := TotalMonthlySpend(subs); !almostEqual(got, 20) {
		t.Errorf("TotalMonthlySpend() = %v, want 20", got)
	}
}

func TestTotalMonthlySpend_ExcludesNonActive(t *testing.T) {
	tests := []struct {
		name   string
		status string
	}{
		{"paused contributes nothing", StatusPaused},
		{"cancelled contributes nothing", StatusCancelled},
		{"trial contributes nothing", StatusTrial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := []*Subscription{
				{Amount: 50, BillingCycle: CycleMonthly, Status: tt.status},
			}
			if got := TotalMonthlySpend(subs); got != 0 {
				t.Errorf("TotalMonthlySpend() = %v, want 0", got)
			}
		})
	}
}

func TestTotalYearlySpend(t *testing.T) {
	subs := []*Subscription{
		{Amount: 10, BillingCycle: CycleMonthly, Status: StatusActive},
		{Amount: 120, BillingCycle: CycleYearly, Status: StatusActive},
		{Amount: 5, BillingCycle: CycleWeekly, Status: StatusActive},
		{Amount: 999, BillingCycle: CycleMonthly, Status: StatusPaused},
	}

	want := 120.0 + 120.0 + 260.0
	if got := TotalYearlySpend(subs); !almostEqual(got, want) {
		t.Errorf("TotalYearlySpend() = %v, want %v", got, want)
	}
}

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusActive, StatusPaused, true},
		{StatusPaused, StatusActive, true},
		{StatusActive, StatusCancelled, true},
		{StatusPaused, StatusCancelled, true},
		{StatusCancelled, StatusActive, false},
		{StatusCancelled, StatusPaused, false},
		{StatusTrial, StatusActive, true},
		{StatusTrial, StatusCancelled, true},
		{StatusTrial, StatusPaused, false},
		{StatusActive, StatusActive, false},
	}

	for _, tt := range tests {
		if got := ValidTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestByCategory(t *testing.T) {
	subs := []*Subscription{
		{Name: "Netflix", Category: CategoryStreaming},
		{Name: "Hulu", Category: CategoryStreaming},
		{Name: "Spotify", Category: CategoryMusic},
	}

	grouped := ByCategory(subs)
	if len(grouped[CategoryStreaming]) != 2 {
		t.Errorf("streaming group = %d, want 2", len(grouped[CategoryStreaming]))
	}
	if len(grouped[CategoryMusic]) != 1 {
		t.Errorf("music group = %d, want 1", len(grouped[CategoryMusic]))
	}
}
