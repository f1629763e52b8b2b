package client

import (
	"context"
	"fmt"
)

// CancellationService handles cancellation workflow operations
type CancellationService struct {
	client *Client
}

// ReplyRequest records a message received from the provider
type ReplyRequest struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// Start drafts a cancellation email for a subscription
func (s *CancellationService) Start(ctx context.Context, subscriptionID int64) (*CancellationRequest, error) {
	req := map[string]int64{"subscription_id": subscriptionID}

	var request CancellationRequest
	if err := s.client.doRequest(ctx, "POST", "/api/v1/cancellations", req, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// List retrieves the user's cancellation requests
func (s *CancellationService) List(ctx context.Context) ([]CancellationRequest, error) {
	var requests []CancellationRequest
	if err := s.client.doRequest(ctx, "GET", "/api/v1/cancellations", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// Get retrieves a single cancellation request
func (s *CancellationService) Get(ctx context.Context, id int64) (*CancellationRequest, error) {
	var request CancellationRequest
	path := fmt.Sprintf("/api/v1/cancellations/%d", id)
	if err := s.client.doRequest(ctx, "GET", path, nil, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// Send marks the drafted email as sent to the provider
func (s *CancellationService) Send(ctx context.Context, id int64) (*CancellationRequest, error) {
	var request CancellationRequest
	path := fmt.Sprintf("/api/v1/cancellations/%d/send", id)
	if err := s.client.doRequest(ctx, "POST", path, nil, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// Reply records a response received from the provider
func (s *CancellationService) Reply(ctx context.Context, id int64, req ReplyRequest) (*CancellationRequest, error) {
	var request CancellationRequest
	path := fmt.Sprintf("/api/v1/cancellations/%d/reply", id)
	if err := s.client.doRequest(ctx, "POST", path, req, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// Resolve closes a workflow as cancelled or saved
func (s *CancellationService) Resolve(ctx context.Context, id int64, outcome string) (*CancellationRequest, error) {
	req := map[string]string{"outcome": outcome}

	var request CancellationRequest
	path := fmt.Sprintf("/api/v1/cancellations/%d/resolve", id)
	if err := s.client.doRequest(ctx, "POST", path, req, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// Messages retrieves the conversation log for a request
func (s *CancellationService) Messages(ctx context.Context, id int64) ([]CancellationMessage, error) {
	var messages []CancellationMessage
	path := fmt.Sprintf("/api/v1/cancellations/%d/messages", id)
	if err := s.client.doRequest(ctx, "GET", path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
