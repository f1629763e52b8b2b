package cancellation

import "context"

// Service drives the cancellation workflow: drafting the initial email from
// a provider template, recording replies, and resolving the request.
type Service interface {
	Start(ctx context.Context, userID, subscriptionID int64) (*Request, error)
	GetByID(ctx context.Context, userID, id int64) (*Request, error)
	ListByUser(ctx context.Context, userID int64) ([]*Request, error)
	Send(ctx context.Context, userID, id int64) (*Request, error)
	RecordReply(ctx context.Context, userID, id int64, msg *Message) (*Request, error)
	Resolve(ctx context.Context, userID, id int64, outcome string) (*Request, error)
	Messages(ctx context.Context, userID, id int64) ([]*Message, error)
}
