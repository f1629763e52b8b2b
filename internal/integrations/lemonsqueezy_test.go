package integrations

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"testing"
)

func TestProCheckoutURL(t *testing.T) {
	ls := NewLemonSqueezy("pausely", "12345", "secret")

	raw, err := ls.ProCheckoutURL(CheckoutOptions{
		UserID:      "user-1",
		Email:       "jamie@example.com",
		RedirectURL: "https://app.pausely.io/billing/success",
		CancelURL:   "https://app.pausely.io/billing",
	})
	if err != nil {
		t.Fatalf("ProCheckoutURL() error = %v", err)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing checkout URL: %v", err)
	}
	if u.Host != "pausely.lemonsqueezy.com" {
		t.Errorf("host = %q", u.Host)
	}
	if u.Path != "/checkout/buy/12345" {
		t.Errorf("path = %q", u.Path)
	}

	q := u.Query()
	if got := q.Get("checkout[custom][user_id]"); got != "user-1" {
		t.Errorf("user_id = %q", got)
	}
	if got := q.Get("checkout[email]"); got != "jamie@example.com" {
		t.Errorf("email = %q", got)
	}
	if got := q.Get("checkout[redirect_url]"); got != "https://app.pausely.io/billing/success" {
		t.Errorf("redirect_url = %q", got)
	}
}

func TestProCheckoutURL_Errors(t *testing.T) {
	tests := []struct {
		name string
		ls   *LemonSqueezy
		opts CheckoutOptions
	}{
		{"missing store", NewLemonSqueezy("", "12345", ""), CheckoutOptions{UserID: "u"}},
		{"missing variant", NewLemonSqueezy("pausely", "", ""), CheckoutOptions{UserID: "u"}},
		{"missing user", NewLemonSqueezy("pausely", "12345", ""), CheckoutOptions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.ls.ProCheckoutURL(tt.opts); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestVerifySignature(t *testing.T) {
	ls := NewLemonSqueezy("pausely", "12345", "topsecret")
	body := []byte(`{"meta":{"event_name":"subscription_created"}}`)

	mac := hmac.New(sha256.New, []byte("topsecret"))
	mac.Write(body)
	good := hex.EncodeToString(mac.Sum(nil))

	if !ls.VerifySignature(body, good) {
		t.Error("valid signature rejected")
	}
	if ls.VerifySignature(body, "deadbeef") {
		t.Error("invalid signature accepted")
	}
	if ls.VerifySignature(body, "") {
		t.Error("empty signature accepted")
	}

	unconfigured := NewLemonSqueezy("pausely", "12345", "")
	if unconfigured.VerifySignature(body, good) {
		t.Error("signature accepted with no secret configured")
	}
}

func TestParseWebhook(t *testing.T) {
	body := []byte(`{
		"meta": {
			"event_name": "subscription_created",
			"custom_data": {"user_id": "user-7"}
		},
		"data": {
			"id": "sub-lemonsq-1",
			"attributes": {
				"customer_id": 9901,
				"status": "active",
				"product_name": "Pausely Pro",
				"variant_name": "Monthly"
			}
		}
	}`)

	event, err := ParseWebhook(body)
	if err != nil {
		t.Fatalf("ParseWebhook() error = %v", err)
	}
	if event.Meta.EventName != EventSubscriptionCreated {
		t.Errorf("event name = %q", event.Meta.EventName)
	}
	if event.Meta.CustomData.UserID != "user-7" {
		t.Errorf("user id = %q", event.Meta.CustomData.UserID)
	}
	if event.Data.Attributes.CustomerID.String() != "9901" {
		t.Errorf("customer id = %q", event.Data.Attributes.CustomerID)
	}
	if event.Data.Attributes.Status != "active" {
		t.Errorf("status = %q", event.Data.Attributes.Status)
	}
}

func TestParseWebhook_Invalid(t *testing.T) {
	if _, err := ParseWebhook([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed body")
	}
	if _, err := ParseWebhook([]byte(`{"meta":{}}`)); err == nil || !strings.Contains(err.Error(), "event name") {
		t.Errorf("expected missing event name error, got %v", err)
	}
}
