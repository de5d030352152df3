package cashfree

import "fmt"

const (
	OrderStatusActive     = "ACTIVE"
	OrderStatusPaid       = "PAID"
	OrderStatusExpired    = "EXPIRED"
	OrderStatusTerminated = "TERMINATED"
)

const (
	PaymentStatusSuccess     = "SUCCESS"
	PaymentStatusFailed      = "FAILED"
	PaymentStatusUserDropped = "USER_DROPPED"
	PaymentStatusCancelled   = "CANCELLED"
	PaymentStatusPending     = "PENDING"
)

type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone"`
}

type OrderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
	NotifyURL string `json:"notify_url,omitempty"`
}

type OrderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	OrderMeta       *OrderMeta      `json:"order_meta,omitempty"`
	OrderNote       string          `json:"order_note,omitempty"`
}

type Order struct {
	CFOrderID        string  `json:"cf_order_id,omitempty"`
	OrderID          string  `json:"order_id"`
	OrderAmount      float64 `json:"order_amount"`
	OrderCurrency    string  `json:"order_currency"`
	OrderStatus      string  `json:"order_status"`
	PaymentSessionID string  `json:"payment_session_id,omitempty"`
	OrderExpiryTime  string  `json:"order_expiry_time,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`
}

type Payment struct {
	CFPaymentID   any     `json:"cf_payment_id"`
	OrderID       string  `json:"order_id"`
	PaymentStatus string  `json:"payment_status"`
	PaymentAmount float64 `json:"payment_amount"`
	PaymentTime   string  `json:"payment_time,omitempty"`
	BankReference string  `json:"bank_reference,omitempty"`
}

// TransactionID renders cf_payment_id, which the provider sends as a number or a string.
func (p Payment) TransactionID() string {
	switch id := p.CFPaymentID.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.0f", id)
	default:
		return fmt.Sprintf("%v", id)
	}
}

type RefundRequest struct {
	RefundAmount float64 `json:"refund_amount"`
	RefundID     string  `json:"refund_id"`
	RefundNote   string  `json:"refund_note,omitempty"`
}

type Refund struct {
	CFRefundID   string  `json:"cf_refund_id,omitempty"`
	RefundID     string  `json:"refund_id"`
	OrderID      string  `json:"order_id"`
	RefundAmount float64 `json:"refund_amount"`
	RefundStatus string  `json:"refund_status"`
}

// ProviderError is returned for every non-2xx answer from the provider.
type ProviderError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("cashfree %d %s: %s", e.Status, e.Code, e.Message)
	}

	return fmt.Sprintf("cashfree %d: %s", e.Status, e.Message)
}
