package insight

import "context"

// Repository persists briefing insights.
type Repository interface {
	Create(ctx context.Context, ins *Insight) error
	GetByID(ctx context.Context, userID, id int64) (*Insight, error)
	List(ctx context.Context, userID int64, filter Filter) ([]*Insight, error)
	Update(ctx context.Context, ins *Insight) error
	Delete(ctx context.Context, userID, id int64) error
	CountUnread(ctx context.Context, userID int64) (int, error)
}
