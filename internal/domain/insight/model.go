package insight

import "time"

// Insight types
const (
	TypeSavings      = "savings"
	TypePerk         = "perk"
	TypeReminder     = "reminder"
	TypeTip          = "tip"
	TypeCancellation = "cancellation"
)

// Insight is a single item in a user's briefing feed.
type Insight struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	SubscriptionID *int64    `json:"subscription_id,omitempty"`
	Amount         float64   `json:"amount,omitempty"`
	IsRead         bool      `json:"is_read"`
	ActionTaken    bool      `json:"action_taken"`
	CreatedAt      time.Time `json:"created_at"`
}

// ValidType reports whether t is a known insight type.
func ValidType(t string) bool {
	switch t {
	case TypeSavings, TypePerk, TypeReminder, TypeTip, TypeCancellation:
		return true
	}
	return false
}

// Filter narrows insight listings.
type Filter struct {
	Type       string
	UnreadOnly bool
}
