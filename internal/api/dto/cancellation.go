package dto

// StartCancellationRequest opens a cancellation workflow for a subscription
type StartCancellationRequest struct {
	SubscriptionID int64 `json:"subscription_id" validate:"required,gt=0"`
}

// CancellationReplyRequest records a message received from the provider
type CancellationReplyRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=email chat suggestion"`
	Subject string `json:"subject,omitempty" validate:"omitempty,max=200"`
	Body    string `json:"body" validate:"required,max=10000"`
}

// ResolveCancellationRequest closes a cancellation workflow
type ResolveCancellationRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=cancelled saved"`
}
