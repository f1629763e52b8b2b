package user

import "context"

// Service defines the interface for user business logic
type Service interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetProfile retrieves the product profile for a user
	GetProfile(ctx context.Context, userID int64) (*Profile, error)

	// UpdateProfile applies profile edits (currency preference, name)
	UpdateProfile(ctx context.Context, profile *Profile) error

	// ChangePlan moves a user between plan tiers, recording the checkout
	// provider identifiers when present
	ChangePlan(ctx context.Context, userID int64, tier string, customerID, subscriptionID *string) error

	// AddSavings adds to the profile's running total of amount saved
	AddSavings(ctx context.Context, userID int64, amount float64) error

	// RefreshSubscriptionCount recomputes the cached subscription count
	RefreshSubscriptionCount(ctx context.Context, userID int64, count int) error
}
