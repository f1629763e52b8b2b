package user

import "time"

// User represents an authenticated account
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username,omitempty"`
	FullName     *string   `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"` // Not exposed in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile carries the product-side state attached to a user: plan tier,
// savings running total and checkout-provider identifiers.
type Profile struct {
	ID                        int64     `json:"id"`
	UserID                    int64     `json:"user_id"`
	PlanTier                  string    `json:"plan_tier"`
	CurrencyPreference        string    `json:"currency_preference"`
	TotalSaved                float64   `json:"total_saved"`
	SubscriptionCount         int       `json:"subscription_count"`
	LemonSqueezyCustomerID    *string   `json:"lemonsqueezy_customer_id,omitempty"`
	LemonSqueezySubscription  *string   `json:"lemonsqueezy_subscription_id,omitempty"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// Plan tiers
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// FreePlanSubscriptionLimit is the number of subscriptions (active plus
// paused) a free-tier user may track.
const FreePlanSubscriptionLimit = 2

// CanAddSubscription decides whether another subscription may be created.
// trackedCount counts active and paused subscriptions; cancelled ones do not
// count against the limit. A nil profile means the caller is not
// authenticated and is always refused.
func CanAddSubscription(profile *Profile, trackedCount int) bool {
	if profile == nil {
		return false
	}
	if profile.PlanTier == PlanPro {
		return true
	}
	return trackedCount < FreePlanSubscriptionLimit
}
