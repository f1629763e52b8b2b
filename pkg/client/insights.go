package client

import (
	"context"
	"fmt"
	"net/url"
)

// InsightService handles briefing insight operations
type InsightService struct {
	client *Client
}

// InsightListOptions filters insight listings
type InsightListOptions struct {
	Type       string
	UnreadOnly bool
}

// List retrieves the user's insights
func (s *InsightService) List(ctx context.Context, opts *InsightListOptions) ([]Insight, error) {
	path := "/api/v1/insights"
	if opts != nil {
		q := url.Values{}
		if opts.Type != "" {
			q.Set("type", opts.Type)
		}
		if opts.UnreadOnly {
			q.Set("unread", "true")
		}
		if len(q) > 0 {
			path += "?" + q.Encode()
		}
	}

	var insights []Insight
	if err := s.client.doRequest(ctx, "GET", path, nil, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

// Get retrieves a single insight
func (s *InsightService) Get(ctx context.Context, id int64) (*Insight, error) {
	var ins Insight
	path := fmt.Sprintf("/api/v1/insights/%d", id)
	if err := s.client.doRequest(ctx, "GET", path, nil, &ins); err != nil {
		return nil, err
	}
	return &ins, nil
}

// MarkRead marks an insight as read
func (s *InsightService) MarkRead(ctx context.Context, id int64) (*Insight, error) {
	var ins Insight
	path := fmt.Sprintf("/api/v1/insights/%d/read", id)
	if err := s.client.doRequest(ctx, "POST", path, nil, &ins); err != nil {
		return nil, err
	}
	return &ins, nil
}

// MarkActioned records that the user acted on an insight
func (s *InsightService) MarkActioned(ctx context.Context, id int64) (*Insight, error) {
	var ins Insight
	path := fmt.Sprintf("/api/v1/insights/%d/action", id)
	if err := s.client.doRequest(ctx, "POST", path, nil, &ins); err != nil {
		return nil, err
	}
	return &ins, nil
}

// Dismiss deletes an insight
func (s *InsightService) Dismiss(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/insights/%d", id)
	return s.client.doRequest(ctx, "DELETE", path, nil, nil)
}

// UnreadCount retrieves the number of unread insights
func (s *InsightService) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Unread int `json:"unread"`
	}
	if err := s.client.doRequest(ctx, "GET", "/api/v1/insights/unread", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Unread, nil
}
