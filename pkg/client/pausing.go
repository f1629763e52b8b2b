package client

import "context"

// PausingService handles pause recommendation operations
type PausingService struct {
	client *Client
}

// Report retrieves pause recommendations for every tracked subscription
func (s *PausingService) Report(ctx context.Context) (*PausingReport, error) {
	var report PausingReport
	if err := s.client.doRequest(ctx, "GET", "/api/v1/pausing/recommendations", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
