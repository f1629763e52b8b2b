package client

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// SubscriptionService handles subscription operations
type SubscriptionService struct {
	client *Client
}

// CreateSubscriptionRequest holds the fields for a new subscription
type CreateSubscriptionRequest struct {
	Name         string     `json:"name"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency,omitempty"`
	Category     string     `json:"category,omitempty"`
	BillingCycle string     `json:"billing_cycle"`
	Status       string     `json:"status,omitempty"`
	RenewalDate  *time.Time `json:"renewal_date,omitempty"`
	WebsiteURL   *string    `json:"website_url,omitempty"`
	Description  *string    `json:"description,omitempty"`
}

// UpdateSubscriptionRequest holds the updatable fields of a subscription
type UpdateSubscriptionRequest struct {
	Name         *string    `json:"name,omitempty"`
	Amount       *float64   `json:"amount,omitempty"`
	Currency     *string    `json:"currency,omitempty"`
	Category     *string    `json:"category,omitempty"`
	BillingCycle *string    `json:"billing_cycle,omitempty"`
	RenewalDate  *time.Time `json:"renewal_date,omitempty"`
	WebsiteURL   *string    `json:"website_url,omitempty"`
	Description  *string    `json:"description,omitempty"`
}

// ListOptions filters subscription listings
type ListOptions struct {
	Status   string
	Category string
}

// List retrieves the user's subscriptions
func (s *SubscriptionService) List(ctx context.Context, opts *ListOptions) ([]Subscription, error) {
	path := "/api/v1/subscriptions"
	if opts != nil {
		q := url.Values{}
		if opts.Status != "" {
			q.Set("status", opts.Status)
		}
		if opts.Category != "" {
			q.Set("category", opts.Category)
		}
		if len(q) > 0 {
			path += "?" + q.Encode()
		}
	}

	var subs []Subscription
	if err := s.client.doRequest(ctx, "GET", path, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Get retrieves a single subscription
func (s *SubscriptionService) Get(ctx context.Context, id int64) (*Subscription, error) {
	var sub Subscription
	path := fmt.Sprintf("/api/v1/subscriptions/%d", id)
	if err := s.client.doRequest(ctx, "GET", path, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create tracks a new subscription
func (s *SubscriptionService) Create(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error) {
	var sub Subscription
	if err := s.client.doRequest(ctx, "POST", "/api/v1/subscriptions", req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Update edits a subscription's details
func (s *SubscriptionService) Update(ctx context.Context, id int64, req UpdateSubscriptionRequest) (*Subscription, error) {
	var sub Subscription
	path := fmt.Sprintf("/api/v1/subscriptions/%d", id)
	if err := s.client.doRequest(ctx, "PUT", path, req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Delete removes a subscription
func (s *SubscriptionService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/subscriptions/%d", id)
	return s.client.doRequest(ctx, "DELETE", path, nil, nil)
}

// Pause pauses an active subscription
func (s *SubscriptionService) Pause(ctx context.Context, id int64) (*Subscription, error) {
	var sub Subscription
	path := fmt.Sprintf("/api/v1/subscriptions/%d/pause", id)
	if err := s.client.doRequest(ctx, "POST", path, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Resume resumes a paused subscription
func (s *SubscriptionService) Resume(ctx context.Context, id int64) (*Subscription, error) {
	var sub Subscription
	path := fmt.Sprintf("/api/v1/subscriptions/%d/resume", id)
	if err := s.client.doRequest(ctx, "POST", path, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Cancel cancels a subscription
func (s *SubscriptionService) Cancel(ctx context.Context, id int64) (*Subscription, error) {
	var sub Subscription
	path := fmt.Sprintf("/api/v1/subscriptions/%d/cancel", id)
	if err := s.client.doRequest(ctx, "POST", path, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Summary retrieves the normalized spend summary
func (s *SubscriptionService) Summary(ctx context.Context) (*SpendSummary, error) {
	var summary SpendSummary
	if err := s.client.doRequest(ctx, "GET", "/api/v1/subscriptions/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// PauseHistory retrieves the user's pause events
func (s *SubscriptionService) PauseHistory(ctx context.Context) ([]PauseEvent, error) {
	var events []PauseEvent
	if err := s.client.doRequest(ctx, "GET", "/api/v1/subscriptions/pauses", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}
