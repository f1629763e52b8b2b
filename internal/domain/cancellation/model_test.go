package cancellation

import "testing"

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusDrafting, StatusSent, true},
		{StatusSent, StatusNegotiating, true},
		{StatusNegotiating, StatusCancelled, true},
		{StatusNegotiating, StatusSaved, true},
		{StatusSent, StatusCancelled, true},
		{StatusSent, StatusSaved, true},
		{StatusDrafting, StatusNegotiating, false},
		{StatusDrafting, StatusCancelled, false},
		{StatusCancelled, StatusSaved, false},
		{StatusSaved, StatusNegotiating, false},
		{StatusSent, StatusDrafting, false},
		{StatusNegotiating, StatusSent, false},
		{"bogus", StatusSent, false},
		{StatusDrafting, "bogus", false},
	}

	for _, tt := range tests {
		if got := ValidTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, status := range []string{StatusDrafting, StatusSent, StatusNegotiating} {
		if Terminal(status) {
			t.Errorf("Terminal(%s) = true, want false", status)
		}
	}
	for _, status := range []string{StatusCancelled, StatusSaved} {
		if !Terminal(status) {
			t.Errorf("Terminal(%s) = false, want true", status)
		}
	}
}

func TestValidMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		want bool
	}{
		{"agent email", &Message{Role: RoleAgent, Kind: KindEmail, Body: "hi"}, true},
		{"counterparty chat", &Message{Role: RoleCounterparty, Kind: KindChat, Body: "hello"}, true},
		{"suggestion", &Message{Role: RoleAgent, Kind: KindSuggestion, Body: "accept the offer"}, true},
		{"unknown role", &Message{Role: "bot", Kind: KindEmail, Body: "hi"}, false},
		{"unknown kind", &Message{Role: RoleUser, Kind: "sms", Body: "hi"}, false},
		{"empty body", &Message{Role: RoleUser, Kind: KindChat}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidMessage(tt.msg); got != tt.want {
				t.Errorf("ValidMessage() = %v, want %v", got, tt.want)
			}
		})
	}
}
