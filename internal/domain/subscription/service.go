package subscription

import "context"

// SpendSummary aggregates a user's normalized spend.
type SpendSummary struct {
	MonthlyTotal float64            `json:"monthly_total"`
	YearlyTotal  float64            `json:"yearly_total"`
	ActiveCount  int                `json:"active_count"`
	PausedCount  int                `json:"paused_count"`
	ByCategory   map[string]float64 `json:"by_category"`
}

// Service defines the interface for subscription business logic
type Service interface {
	// Create adds a subscription after the plan gate admits it
	Create(ctx context.Context, sub *Subscription) (*Subscription, error)

	// GetByID retrieves one subscription owned by the user
	GetByID(ctx context.Context, userID, id int64) (*Subscription, error)

	// List retrieves a user's subscriptions
	List(ctx context.Context, userID int64, filter Filter) ([]*Subscription, error)

	// Update applies user edits to a subscription
	Update(ctx context.Context, sub *Subscription) error

	// Delete removes a subscription permanently
	Delete(ctx context.Context, userID, id int64) error

	// Pause moves an active subscription to paused and opens a pause event
	Pause(ctx context.Context, userID, id int64) (*Subscription, error)

	// Resume moves a paused subscription back to active, closes the open
	// pause event and credits the saved amount to the profile
	Resume(ctx context.Context, userID, id int64) (*Subscription, error)

	// Cancel marks a subscription cancelled (terminal)
	Cancel(ctx context.Context, userID, id int64) (*Subscription, error)

	// Summary computes normalized monthly/yearly totals for active
	// subscriptions, grouped by category
	Summary(ctx context.Context, userID int64) (*SpendSummary, error)

	// PauseHistory lists past and open pause intervals
	PauseHistory(ctx context.Context, userID int64) ([]*PauseEvent, error)
}
