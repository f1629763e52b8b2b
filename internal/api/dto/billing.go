package dto

// CheckoutRequest asks for a hosted checkout URL for the pro plan
type CheckoutRequest struct {
	RedirectURL string `json:"redirect_url,omitempty" validate:"omitempty,url"`
	CancelURL   string `json:"cancel_url,omitempty" validate:"omitempty,url"`
}

// CheckoutResponse carries the hosted checkout URL
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}
