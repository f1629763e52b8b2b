// Package integrations wraps the third-party billing provider surface:
// hosted checkout links and webhook payloads.
package integrations

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
)

// LemonSqueezy webhook event names the billing flow reacts to.
const (
	EventSubscriptionCreated = "subscription_created"
	EventSubscriptionUpdated = "subscription_updated"
	EventSubscriptionExpired = "subscription_expired"
	EventSubscriptionCancelled = "subscription_cancelled"
)

// LemonSqueezy builds checkout URLs and verifies webhook signatures for one
// store.
type LemonSqueezy struct {
	storeSlug     string
	proVariantID  string
	webhookSecret string
}

// NewLemonSqueezy returns a client for the given store. The webhook secret
// may be empty in development, in which case signature checks fail closed.
func NewLemonSqueezy(storeSlug, proVariantID, webhookSecret string) *LemonSqueezy {
	return &LemonSqueezy{
		storeSlug:     storeSlug,
		proVariantID:  proVariantID,
		webhookSecret: webhookSecret,
	}
}

// CheckoutOptions carries the per-user fields embedded into a hosted
// checkout link.
type CheckoutOptions struct {
	UserID      string
	Email       string
	RedirectURL string
	CancelURL   string
}

// ProCheckoutURL returns the hosted checkout link for the pro plan variant.
// The user ID rides along as custom data so the webhook can attribute the
// purchase.
func (ls *LemonSqueezy) ProCheckoutURL(opts CheckoutOptions) (string, error) {
	if ls.storeSlug == "" || ls.proVariantID == "" {
		return "", fmt.Errorf("lemonsqueezy: store or variant not configured")
	}
	if opts.UserID == "" {
		return "", fmt.Errorf("lemonsqueezy: user id required for checkout")
	}

	q := url.Values{}
	q.Set("checkout[custom][user_id]", opts.UserID)
	if opts.Email != "" {
		q.Set("checkout[email]", opts.Email)
	}
	if opts.RedirectURL != "" {
		q.Set("checkout[redirect_url]", opts.RedirectURL)
	}
	if opts.CancelURL != "" {
		q.Set("checkout[cancel_url]", opts.CancelURL)
	}

	return fmt.Sprintf("https://%s.lemonsqueezy.com/checkout/buy/%s?%s",
		ls.storeSlug, ls.proVariantID, q.Encode()), nil
}

// VerifySignature checks the X-Signature header against an HMAC-SHA256 of
// the raw request body. Comparison is constant time.
func (ls *LemonSqueezy) VerifySignature(body []byte, signature string) bool {
	if ls.webhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(ls.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// WebhookEvent is the payload LemonSqueezy posts on subscription lifecycle
// changes. Only the fields the billing flow consumes are mapped.
type WebhookEvent struct {
	Meta struct {
		EventName  string `json:"event_name"`
		CustomData struct {
			UserID string `json:"user_id"`
		} `json:"custom_data"`
	} `json:"meta"`
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			CustomerID  json.Number `json:"customer_id"`
			Status      string      `json:"status"`
			ProductName string      `json:"product_name"`
			VariantName string      `json:"variant_name"`
		} `json:"attributes"`
	} `json:"data"`
}

// ParseWebhook decodes a webhook body. Unknown event names parse fine; the
// caller decides which ones to act on.
func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("lemonsqueezy: decoding webhook: %w", err)
	}
	if event.Meta.EventName == "" {
		return nil, fmt.Errorf("lemonsqueezy: webhook missing event name")
	}
	return &event, nil
}
