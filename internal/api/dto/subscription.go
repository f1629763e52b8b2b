package dto

import "time"

// CreateSubscriptionRequest represents a subscription creation request
type CreateSubscriptionRequest struct {
	Name         string     `json:"name" validate:"required,min=1,max=100"`
	Amount       float64    `json:"amount" validate:"required,gt=0"`
	Currency     string     `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	Category     string     `json:"category,omitempty" validate:"omitempty,oneof=streaming music gaming fitness software news food shopping other"`
	BillingCycle string     `json:"billing_cycle" validate:"required,oneof=monthly yearly weekly"`
	Status       string     `json:"status,omitempty" validate:"omitempty,oneof=active trial"`
	RenewalDate  *time.Time `json:"renewal_date,omitempty"`
	WebsiteURL   *string    `json:"website_url,omitempty" validate:"omitempty,url"`
	Description  *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	LogoURL      *string    `json:"logo_url,omitempty" validate:"omitempty,url"`
}

// UpdateSubscriptionRequest represents a subscription update request.
// Status is not updatable here; lifecycle changes go through the pause,
// resume and cancel endpoints.
type UpdateSubscriptionRequest struct {
	Name         *string    `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Amount       *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Currency     *string    `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	Category     *string    `json:"category,omitempty" validate:"omitempty,oneof=streaming music gaming fitness software news food shopping other"`
	BillingCycle *string    `json:"billing_cycle,omitempty" validate:"omitempty,oneof=monthly yearly weekly"`
	RenewalDate  *time.Time `json:"renewal_date,omitempty"`
	WebsiteURL   *string    `json:"website_url,omitempty" validate:"omitempty,url"`
	Description  *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	LogoURL      *string    `json:"logo_url,omitempty" validate:"omitempty,url"`
}
