package cancellation

import "time"

// Request statuses. A request moves forward only: drafting -> sent ->
// negotiating -> cancelled or saved. Both end states are terminal.
const (
	StatusDrafting    = "drafting"
	StatusSent        = "sent"
	StatusNegotiating = "negotiating"
	StatusCancelled   = "cancelled"
	StatusSaved       = "saved"
)

// Message roles
const (
	RoleAgent        = "agent"
	RoleUser         = "user"
	RoleCounterparty = "counterparty"
)

// Message kinds
const (
	KindEmail      = "email"
	KindChat       = "chat"
	KindSuggestion = "suggestion"
)

// Request tracks one attempt to cancel a subscription on the user's behalf,
// from the first drafted email to a final outcome.
type Request struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	SubscriptionID int64      `json:"subscription_id"`
	Status         string     `json:"status"`
	Provider       string     `json:"provider"`
	DraftSubject   string     `json:"draft_subject"`
	DraftBody      string     `json:"draft_body"`
	Outcome        string     `json:"outcome,omitempty"`
	SavedAmount    float64    `json:"saved_amount,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// Message is one entry in a request's conversation log.
type Message struct {
	ID        int64     `json:"id"`
	RequestID int64     `json:"request_id"`
	Role      string    `json:"role"`
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

var statusRank = map[string]int{
	StatusDrafting:    0,
	StatusSent:        1,
	StatusNegotiating: 2,
	StatusCancelled:   3,
	StatusSaved:       3,
}

// ValidTransition reports whether a request may move from one status to
// another. Transitions are monotonic and skip no stages except that a sent
// request may resolve directly without a negotiation round.
func ValidTransition(from, to string) bool {
	fr, ok := statusRank[from]
	if !ok {
		return false
	}
	tr, ok := statusRank[to]
	if !ok {
		return false
	}
	if fr >= 3 {
		return false
	}
	if tr == fr+1 {
		return true
	}
	// A provider can accept or retain on the first reply.
	return fr == 1 && tr == 3
}

// Terminal reports whether a status is an end state.
func Terminal(status string) bool {
	return status == StatusCancelled || status == StatusSaved
}

func validRole(role string) bool {
	return role == RoleAgent || role == RoleUser || role == RoleCounterparty
}

func validKind(kind string) bool {
	return kind == KindEmail || kind == KindChat || kind == KindSuggestion
}

// ValidMessage reports whether a message carries a known role and kind and a
// non-empty body.
func ValidMessage(m *Message) bool {
	return m != nil && validRole(m.Role) && validKind(m.Kind) && m.Body != ""
}
