package subscription

import "time"

// Subscription represents a recurring charge tracked by a user. Amount is
// always expressed in the subscription's own billing cycle; aggregates must
// normalize before summing across cycles.
type Subscription struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Name        string     `json:"name"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Category    string     `json:"category"`
	BillingCycle string    `json:"billing_cycle"`
	Status      string     `json:"status"`
	RenewalDate *time.Time `json:"renewal_date,omitempty"`
	WebsiteURL  *string    `json:"website_url,omitempty"`
	Description *string    `json:"description,omitempty"`
	LogoURL     *string    `json:"logo_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Billing cycles
const (
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
	CycleWeekly  = "weekly"
)

// Lifecycle statuses. Active and paused alternate freely; cancelled is
// terminal. Trial behaves like active for lifecycle purposes but is excluded
// from spend aggregates.
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCancelled = "cancelled"
	StatusTrial     = "trial"
)

// Categories
const (
	CategoryStreaming = "streaming"
	CategoryMusic     = "music"
	CategoryGaming    = "gaming"
	CategoryFitness   = "fitness"
	CategorySoftware  = "software"
	CategoryNews      = "news"
	CategoryFood      = "food"
	CategoryShopping  = "shopping"
	CategoryOther     = "other"
)

// Categories lists every valid category value.
var Categories = []string{
	CategoryStreaming, CategoryMusic, CategoryGaming, CategoryFitness,
	CategorySoftware, CategoryNews, CategoryFood, CategoryShopping,
	CategoryOther,
}

// WeeksPerMonth converts a weekly amount to a monthly equivalent. The
// original product shipped with 4.33 and stored figures derived from it, so
// the approximation is kept over the exact 365.25/12/7 (they differ by under
// 0.3%).
const WeeksPerMonth = 4.33

// WeeksPerYear converts a weekly amount to a yearly equivalent.
const WeeksPerYear = 52

// ValidTransition reports whether a status change is allowed: active and
// paused alternate freely, cancellation is permitted from either and is
// terminal, and a trial may activate or cancel.
func ValidTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case StatusActive:
		return to == StatusPaused || to == StatusCancelled
	case StatusPaused:
		return to == StatusActive || to == StatusCancelled
	case StatusTrial:
		return to == StatusActive || to == StatusCancelled
	case StatusCancelled:
		return false
	}
	return false
}

// Tracked reports whether the subscription counts against the plan limit
// (active or paused; cancelled rows are kept for history but free slots).
func (s *Subscription) Tracked() bool {
	return s.Status == StatusActive || s.Status == StatusPaused
}

// MonthlyEquivalent returns the amount normalized to a monthly figure.
func (s *Subscription) MonthlyEquivalent() float64 {
	switch s.BillingCycle {
	case CycleYearly:
		return s.Amount / 12
	case CycleWeekly:
		return s.Amount * WeeksPerMonth
	default:
		return s.Amount
	}
}

// YearlyEquivalent returns the amount normalized to a yearly figure.
func (s *Subscription) YearlyEquivalent() float64 {
	switch s.BillingCycle {
	case CycleMonthly:
		return s.Amount * 12
	case CycleWeekly:
		return s.Amount * WeeksPerYear
	default:
		return s.Amount
	}
}

// TotalMonthlySpend sums the monthly equivalents of active subscriptions.
// Paused, cancelled and trial subscriptions contribute nothing.
func TotalMonthlySpend(subs []*Subscription) float64 {
	var total float64
	for _, s := range subs {
		if s.Status == StatusActive {
			total += s.MonthlyEquivalent()
		}
	}
	return total
}

// TotalYearlySpend sums the yearly equivalents of active subscriptions.
func TotalYearlySpend(subs []*Subscription) float64 {
	var total float64
	for _, s := range subs {
		if s.Status == StatusActive {
			total += s.YearlyEquivalent()
		}
	}
	return total
}

// ByCategory groups subscriptions by their category tag.
func ByCategory(subs []*Subscription) map[string][]*Subscription {
	out := make(map[string][]*Subscription)
	for _, s := range subs {
		out[s.Category] = append(out[s.Category], s)
	}
	return out
}

// PauseEvent records one pause interval for a subscription. AmountSaved is
// the monthly equivalent captured when the pause began; it is credited to
// the profile's running total.
type PauseEvent struct {
	ID             int64      `json:"id"`
	SubscriptionID int64      `json:"subscription_id"`
	UserID         int64      `json:"user_id"`
	PausedAt       time.Time  `json:"paused_at"`
	ResumedAt      *time.Time `json:"resumed_at,omitempty"`
	AmountSaved    float64    `json:"amount_saved"`
}

// Filter contains subscription listing options
type Filter struct {
	Status   string
	Category string
}
