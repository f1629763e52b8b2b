package dto

import "github.com/pausely/pausely/internal/domain/user"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Role     string  `json:"role"`
}

// NewUserDTO converts a domain user for API responses
func NewUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

// ProfileDTO represents a user profile in API responses
type ProfileDTO struct {
	UserID             int64   `json:"user_id"`
	PlanTier           string  `json:"plan_tier"`
	CurrencyPreference string  `json:"currency_preference"`
	TotalSaved         float64 `json:"total_saved"`
	SubscriptionCount  int     `json:"subscription_count"`
}

// NewProfileDTO converts a domain profile for API responses. Checkout
// provider identifiers are never exposed.
func NewProfileDTO(p *user.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{
		UserID:             p.UserID,
		PlanTier:           p.PlanTier,
		CurrencyPreference: p.CurrencyPreference,
		TotalSaved:         p.TotalSaved,
		SubscriptionCount:  p.SubscriptionCount,
	}
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	CurrencyPreference *string `json:"currency_preference,omitempty" validate:"omitempty,len=3,alpha"`
}
