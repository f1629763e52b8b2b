package client

import "context"

// BillingService handles plan and checkout operations
type BillingService struct {
	client *Client
}

// CheckoutRequest holds optional return URLs for checkout
type CheckoutRequest struct {
	RedirectURL string `json:"redirect_url,omitempty"`
	CancelURL   string `json:"cancel_url,omitempty"`
}

// Plans lists the available plans
func (s *BillingService) Plans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := s.client.doRequest(ctx, "GET", "/api/v1/billing/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Info reports the account's current plan and usage
func (s *BillingService) Info(ctx context.Context) (*BillingInfo, error) {
	var info BillingInfo
	if err := s.client.doRequest(ctx, "GET", "/api/v1/billing/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Checkout retrieves a hosted checkout URL for the pro plan
func (s *BillingService) Checkout(ctx context.Context, req CheckoutRequest) (string, error) {
	var resp struct {
		CheckoutURL string `json:"checkout_url"`
	}
	if err := s.client.doRequest(ctx, "POST", "/api/v1/billing/checkout", req, &resp); err != nil {
		return "", err
	}
	return resp.CheckoutURL, nil
}
