package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreditBalanceResponse struct {
	UserId  uuid.UUID `json:"user_id"`
	Balance int       `json:"balance"`
}

type CreditTransactionResponse struct {
	Id          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Amount      int       `json:"amount"`
	ServiceUsed string    `json:"service_used,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type TopUpCheckoutRequest struct {
	Package string `json:"package" validate:"required"`
}

type TopUpCheckoutResponse struct {
	OrderId         uuid.UUID `json:"order_id"`
	Credits         int       `json:"credits"`
	GrossAmount     int64     `json:"gross_amount"`
	SnapToken       string    `json:"snap_token"`
	SnapRedirectUrl string    `json:"snap_redirect_url"`
}

// MidtransWebhookRequest mirrors the notification payload Midtrans posts to
// our top-up webhook. Only the fields needed for signature verification and
// settlement handling are mapped.
type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	CustomField1      string `json:"custom_field1"` // user_id
	CustomField2      string `json:"custom_field2"` // credit amount
}
