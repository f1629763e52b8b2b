package cancellation

import "context"

// Repository persists cancellation requests and their message logs.
type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, userID, id int64) (*Request, error)
	ListByUser(ctx context.Context, userID int64) ([]*Request, error)
	Update(ctx context.Context, req *Request) error

	AddMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, requestID int64) ([]*Message, error)
}
