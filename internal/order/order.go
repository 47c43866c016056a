package order

import (
	"errors"
	"fmt"
)

// Status is the order lifecycle state. The customer-visible path is
// pending → confirmed → processing → shipped → delivered; cancelled is a
// terminal branch reachable only from pending or confirmed.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var allStatuses = []Status{
	StatusPending, StatusConfirmed, StatusProcessing,
	StatusShipped, StatusDelivered, StatusCancelled,
}

func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal states cannot be transitioned out of, not even by an admin.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Cancellable reports whether a customer may still cancel.
func (s Status) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Payment enums.
const (
	PaymentCOD        = "cod"
	PaymentCard       = "card"
	PaymentUPI        = "upi"
	PaymentNetBanking = "netbanking"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

var allPaymentMethods = []string{PaymentCOD, PaymentCard, PaymentUPI, PaymentNetBanking}

func ValidPaymentMethod(m string) bool {
	for _, v := range allPaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrIncompleteAddress = errors.New("please provide complete shipping address")
	ErrForbidden         = errors.New("not authorized for this order")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidPayment    = errors.New("invalid payment method")
)

// CannotCancelError names the status that blocked a cancellation.
type CannotCancelError struct {
	Status Status
}

func (e *CannotCancelError) Error() string {
	return fmt.Sprintf("cannot cancel order in status %q", e.Status)
}

// TerminalStateError rejects admin transitions out of delivered/cancelled.
type TerminalStateError struct {
	Status Status
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("order is already %s", e.Status)
}

// Item is an immutable snapshot of a cart line taken at order creation, so
// later product edits never alter historical orders.
type Item struct {
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Price     int    `json:"price"`
	Image     string `json:"image,omitempty"`
}

// ShippingAddress fields are all required at checkout.
type ShippingAddress struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`
}

// Order is immutable after creation except for status, tracking and
// payment fields. TotalPrice = ItemsPrice + ShippingPrice + TaxPrice,
// computed once at creation and never recomputed.
type Order struct {
	ID              int             `json:"id"`
	UserID          int             `json:"userId"`
	OrderNumber     string          `json:"orderNumber"`
	Items           []Item          `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	ItemsPrice      int             `json:"itemsPrice"`
	ShippingPrice   int             `json:"shippingPrice"`
	TaxPrice        int             `json:"taxPrice"`
	TotalPrice      int             `json:"totalPrice"`
	Status          Status          `json:"status"`
	TrackingNumber  *string         `json:"trackingNumber,omitempty"`
	DeliveredAt     *string         `json:"deliveredAt,omitempty"`
	CancelledAt     *string         `json:"cancelledAt,omitempty"`
	CancelReason    *string         `json:"cancelReason,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}
