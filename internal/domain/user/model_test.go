package user

import "testing"

func TestCanAddSubscription(t *testing.T) {
	tests := []struct {
		name         string
		profile      *Profile
		trackedCount int
		want         bool
	}{
		{
			name:         "nil profile is refused",
			profile:      nil,
			trackedCount: 0,
			want:         false,
		},
		{
			name:         "pro tier is unbounded",
			profile:      &Profile{PlanTier: PlanPro},
			trackedCount: 1000,
			want:         true,
		},
		{
			name:         "free tier under limit",
			profile:      &Profile{PlanTier: PlanFree},
			trackedCount: 1,
			want:         true,
		},
		{
			name:         "free tier at limit",
			profile:      &Profile{PlanTier: PlanFree},
			trackedCount: 2,
			want:         false,
		},
		{
			name:         "free tier over limit",
			profile:      &Profile{PlanTier: PlanFree},
			trackedCount: 5,
			want:         false,
		},
		{
			name:         "free tier with no subscriptions",
			profile:      &Profile{PlanTier: PlanFree},
			trackedCount: 0,
			want:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAddSubscription(tt.profile, tt.trackedCount); got != tt.want {
				t.Errorf("CanAddSubscription() = %v, want %v", got, tt.want)
			}
		})
	}
}
