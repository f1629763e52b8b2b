package subscription

import "context"

// Repository defines the interface for subscription data access
type Repository interface {
	// Create creates a new subscription
	Create(ctx context.Context, sub *Subscription) error

	// GetByID retrieves a subscription owned by userID
	GetByID(ctx context.Context, userID, id int64) (*Subscription, error)

	// List retrieves a user's subscriptions, newest first
	List(ctx context.Context, userID int64, filter Filter) ([]*Subscription, error)

	// Update updates a subscription
	Update(ctx context.Context, sub *Subscription) error

	// Delete removes a subscription row
	Delete(ctx context.Context, userID, id int64) error

	// CountTracked counts active plus paused subscriptions for a user
	CountTracked(ctx context.Context, userID int64) (int, error)

	// CreatePauseEvent opens a pause interval
	CreatePauseEvent(ctx context.Context, ev *PauseEvent) error

	// CloseOpenPauseEvent stamps resumed_at on the open pause interval for a
	// subscription and returns it; returns nil when none is open
	CloseOpenPauseEvent(ctx context.Context, subscriptionID int64) (*PauseEvent, error)

	// ListPauseEvents lists pause history for a user, newest first
	ListPauseEvents(ctx context.Context, userID int64) ([]*PauseEvent, error)
}
