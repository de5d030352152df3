package dto

import (
	"hotelbooker/infras/cashfree"
	bookingDto "hotelbooker/internal/domains/booking/model/dto"
	"strings"
)

type CustomerDetails struct {
	CustomerID    string `json:"customer_id"    validate:"required,max=50"`
	CustomerName  string `json:"customer_name"  validate:"omitempty,max=100"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=10,max=20"`
}

// CreateOrderRequest is the order the checkout client asks the provider to open.
type CreateOrderRequest struct {
	OrderID         string          `json:"order_id"         validate:"required,max=50"`
	OrderAmount     float64         `json:"order_amount"     validate:"required,gt=0"`
	OrderCurrency   string          `json:"order_currency"   validate:"omitempty,len=3"`
	CustomerDetails CustomerDetails `json:"customer_details" validate:"required"`
	OrderNote       string          `json:"order_note"       validate:"omitempty,max=200"`
}

func (r *CreateOrderRequest) ToOrderRequest() cashfree.OrderRequest {
	return cashfree.OrderRequest{
		OrderID:       strings.TrimSpace(r.OrderID),
		OrderAmount:   r.OrderAmount,
		OrderCurrency: strings.ToUpper(r.OrderCurrency),
		CustomerDetails: cashfree.CustomerDetails{
			CustomerID:    r.CustomerDetails.CustomerID,
			CustomerName:  r.CustomerDetails.CustomerName,
			CustomerEmail: r.CustomerDetails.CustomerEmail,
			CustomerPhone: r.CustomerDetails.CustomerPhone,
		},
		OrderNote: r.OrderNote,
	}
}

type OrderResponse struct {
	OrderID          string  `json:"order_id"`
	OrderStatus      string  `json:"order_status"`
	OrderAmount      float64 `json:"order_amount"`
	OrderCurrency    string  `json:"order_currency"`
	PaymentSessionID string  `json:"payment_session_id,omitempty"`
	OrderExpiryTime  string  `json:"order_expiry_time,omitempty"`
}

func (r *OrderResponse) FromOrder(order cashfree.Order) {
	r.OrderID = order.OrderID
	r.OrderStatus = order.OrderStatus
	r.OrderAmount = order.OrderAmount
	r.OrderCurrency = order.OrderCurrency
	r.PaymentSessionID = order.PaymentSessionID
	r.OrderExpiryTime = order.OrderExpiryTime
}

// WebhookPayload accepts both the flat test shape and the provider's nested event.
type WebhookPayload struct {
	OrderID       string `json:"order_id"`
	PaymentStatus string `json:"payment_status"`
	CFPaymentID   any    `json:"cf_payment_id"`
	Type          string `json:"type"`
	Data          struct {
		Order struct {
			OrderID string `json:"order_id"`
		} `json:"order"`
		Payment struct {
			CFPaymentID   any    `json:"cf_payment_id"`
			PaymentStatus string `json:"payment_status"`
		} `json:"payment"`
	} `json:"data"`
}

func (p WebhookPayload) Order() string {
	if p.Data.Order.OrderID != "" {
		return p.Data.Order.OrderID
	}

	return p.OrderID
}

func (p WebhookPayload) Status() string {
	if p.Data.Payment.PaymentStatus != "" {
		return strings.ToUpper(p.Data.Payment.PaymentStatus)
	}

	return strings.ToUpper(p.PaymentStatus)
}

func (p WebhookPayload) TransactionID() string {
	if p.Data.Payment.CFPaymentID != nil {
		return cashfree.Payment{CFPaymentID: p.Data.Payment.CFPaymentID}.TransactionID()
	}

	return cashfree.Payment{CFPaymentID: p.CFPaymentID}.TransactionID()
}

const (
	WebhookProcessed = "processed"
	WebhookDuplicate = "duplicate"
)

type WebhookResponse struct {
	Status  string                     `json:"status"`
	Outcome *bookingDto.PaymentOutcome `json:"outcome,omitempty"`
}
