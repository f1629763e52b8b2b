package insight

import "context"

// Service exposes the briefing feed.
type Service interface {
	List(ctx context.Context, userID int64, filter Filter) ([]*Insight, error)
	GetByID(ctx context.Context, userID, id int64) (*Insight, error)
	MarkRead(ctx context.Context, userID, id int64) (*Insight, error)
	MarkActioned(ctx context.Context, userID, id int64) (*Insight, error)
	Dismiss(ctx context.Context, userID, id int64) error
	UnreadCount(ctx context.Context, userID int64) (int, error)
}
