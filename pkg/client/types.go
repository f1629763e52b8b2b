package client

import "time"

// User represents a user account
type User struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Role     string  `json:"role"`
}

// Profile represents the product-side state attached to a user
type Profile struct {
	UserID             int64   `json:"user_id"`
	PlanTier           string  `json:"plan_tier"`
	CurrencyPreference string  `json:"currency_preference"`
	TotalSaved         float64 `json:"total_saved"`
	SubscriptionCount  int     `json:"subscription_count"`
}

// Subscription represents a tracked recurring charge
type Subscription struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Name         string     `json:"name"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	Category     string     `json:"category"`
	BillingCycle string     `json:"billing_cycle"`
	Status       string     `json:"status"`
	RenewalDate  *time.Time `json:"renewal_date,omitempty"`
	WebsiteURL   *string    `json:"website_url,omitempty"`
	Description  *string    `json:"description,omitempty"`
	LogoURL      *string    `json:"logo_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PauseEvent records one pause interval for a subscription
type PauseEvent struct {
	ID             int64      `json:"id"`
	SubscriptionID int64      `json:"subscription_id"`
	UserID         int64      `json:"user_id"`
	PausedAt       time.Time  `json:"paused_at"`
	ResumedAt      *time.Time `json:"resumed_at,omitempty"`
	AmountSaved    float64    `json:"amount_saved"`
}

// SpendSummary aggregates normalized spend over active subscriptions
type SpendSummary struct {
	MonthlyTotal float64            `json:"monthly_total"`
	YearlyTotal  float64            `json:"yearly_total"`
	ByCategory   map[string]float64 `json:"by_category"`
	ActiveCount  int                `json:"active_count"`
	PausedCount  int                `json:"paused_count"`
}

// PauseRecommendation scores one subscription for pausing
type PauseRecommendation struct {
	SubscriptionID int64   `json:"subscription_id"`
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	BillingCycle   string  `json:"billing_cycle"`
	UsageScore     int     `json:"usage_score"`
	Action         string  `json:"action"`
	Reason         string  `json:"reason"`
	LastUsed       string  `json:"last_used"`
}

// PausingReport is the full recommendation report
type PausingReport struct {
	Recommendations  []PauseRecommendation `json:"recommendations"`
	PotentialSavings float64               `json:"potential_savings"`
}

// CancellationRequest represents a cancellation workflow
type CancellationRequest struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	SubscriptionID int64      `json:"subscription_id"`
	Status         string     `json:"status"`
	Provider       string     `json:"provider"`
	DraftSubject   string     `json:"draft_subject"`
	DraftBody      string     `json:"draft_body"`
	Outcome        string     `json:"outcome,omitempty"`
	SavedAmount    float64    `json:"saved_amount"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// CancellationMessage is one entry in a workflow's conversation log
type CancellationMessage struct {
	ID        int64     `json:"id"`
	RequestID int64     `json:"request_id"`
	Role      string    `json:"role"`
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Insight is one briefing item
type Insight struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	SubscriptionID *int64    `json:"subscription_id,omitempty"`
	Amount         float64   `json:"amount"`
	IsRead         bool      `json:"is_read"`
	ActionTaken    bool      `json:"action_taken"`
	CreatedAt      time.Time `json:"created_at"`
}

// Plan describes one billing tier
type Plan struct {
	Tier              string   `json:"tier"`
	Name              string   `json:"name"`
	PriceMonthly      float64  `json:"price_monthly"`
	SubscriptionLimit int      `json:"subscription_limit"`
	Features          []string `json:"features"`
}

// BillingInfo is the account's current plan and usage against it.
type BillingInfo struct {
	Plan              Plan    `json:"plan"`
	SubscriptionCount int     `json:"subscription_count"`
	SubscriptionLimit int     `json:"subscription_limit"`
	TotalSaved        float64 `json:"total_saved"`
	ProviderLinked    bool    `json:"provider_linked"`
}
