package order

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vybewear/vybe-backend/internal/cart"
	"github.com/vybewear/vybe-backend/internal/pricing"
	"github.com/vybewear/vybe-backend/internal/product"
)

type fakeCarts struct {
	carts   map[int]cart.Cart
	cleared []int
}

func (f *fakeCarts) Get(userID int) (cart.Cart, error) {
	return f.carts[userID], nil
}

func (f *fakeCarts) Clear(userID int) error {
	f.cleared = append(f.cleared, userID)
	f.carts[userID] = cart.Cart{}
	return nil
}

type fakeProducts struct {
	products map[int]product.Product
	sold     map[int]int
}

func (f *fakeProducts) GetByID(id int) (product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) IncrementSold(id, by int) error {
	if f.sold == nil {
		f.sold = make(map[int]int)
	}
	f.sold[id] += by
	return nil
}

func validAddress() ShippingAddress {
	return ShippingAddress{
		Name:    "Arjun Mehta",
		Phone:   "9876543210",
		Street:  "14 Linking Road",
		City:    "Mumbai",
		State:   "Maharashtra",
		Pincode: "400050",
	}
}

func newTestService(items []cart.Item) (*Service, *fakeCarts, *fakeProducts) {
	carts := &fakeCarts{carts: map[int]cart.Cart{7: {Items: items}}}
	products := &fakeProducts{products: map[int]product.Product{
		1: {ID: 1, Name: "Oversized Tee", Price: 600, Category: "shirts", IsActive: true,
			Images: []product.Image{{URL: "/img/tee-v2.jpg"}}},
	}}
	s := NewService(NewInMemoryRepository(), carts, products, pricing.Default())
	return s, carts, products
}

func TestCreate_EmptyCart(t *testing.T) {
	s, _, _ := newTestService(nil)
	if _, err := s.Create(7, validAddress(), PaymentCOD); err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCreate_IncompleteAddress(t *testing.T) {
	items := []cart.Item{{ID: "a", ProductID: 1, Name: "Oversized Tee", Quantity: 1, Price: 500}}
	s, _, _ := newTestService(items)

	addr := validAddress()
	addr.Pincode = ""
	if _, err := s.Create(7, addr, PaymentCOD); err != ErrIncompleteAddress {
		t.Fatalf("expected ErrIncompleteAddress, got %v", err)
	}
}

func TestCreate_InvalidPayment(t *testing.T) {
	items := []cart.Item{{ID: "a", ProductID: 1, Name: "Oversized Tee", Quantity: 1, Price: 500}}
	s, _, _ := newTestService(items)

	if _, err := s.Create(7, validAddress(), "bitcoin"); err != ErrInvalidPayment {
		t.Fatalf("expected ErrInvalidPayment, got %v", err)
	}
}

func TestCreate_PricesAndSideEffects(t *testing.T) {
	// subtotal 1200 clears the free-shipping threshold
	items := []cart.Item{
		{ID: "a", ProductID: 1, Name: "Stale Tee Name", Quantity: 2, Price: 500, Size: "M", Color: "black"},
		{ID: "b", ProductID: 2, Name: "Ghost Product", Quantity: 1, Price: 200, Size: "L", Color: "white"},
	}
	s, carts, products := newTestService(items)

	o, err := s.Create(7, validAddress(), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if o.ItemsPrice != 1200 || o.ShippingPrice != 0 || o.TaxPrice != 216 || o.TotalPrice != 1416 {
		t.Fatalf("unexpected price breakdown: %+v", o)
	}
	if o.Status != StatusPending || o.PaymentStatus != PaymentStatusPending {
		t.Fatalf("expected pending order, got status=%s payment=%s", o.Status, o.PaymentStatus)
	}
	if o.PaymentMethod != PaymentCOD {
		t.Fatalf("expected empty method to default to cod, got %s", o.PaymentMethod)
	}

	// line snapshots: price from the cart line, name/image refreshed from
	// the live product where it still exists
	if o.Items[0].Price != 500 {
		t.Fatalf("expected cart-captured price 500, got %d", o.Items[0].Price)
	}
	if o.Items[0].Name != "Oversized Tee" || o.Items[0].Image != "/img/tee-v2.jpg" {
		t.Fatalf("expected refreshed name/image, got %+v", o.Items[0])
	}
	if o.Items[1].Name != "Ghost Product" {
		t.Fatalf("expected missing product to keep the cart snapshot, got %+v", o.Items[1])
	}

	if len(carts.cleared) != 1 || carts.cleared[0] != 7 {
		t.Fatalf("expected cart cleared for user 7, got %v", carts.cleared)
	}
	if products.sold[1] != 2 {
		t.Fatalf("expected sold count bumped by 2 for product 1, got %d", products.sold[1])
	}

	if !strings.HasPrefix(o.OrderNumber, "VYBE") {
		t.Fatalf("unexpected order number %q", o.OrderNumber)
	}
}

func TestCreate_ShippingBelowThreshold(t *testing.T) {
	items := []cart.Item{{ID: "a", ProductID: 1, Name: "Oversized Tee", Quantity: 1, Price: 500}}
	s, _, _ := newTestService(items)

	o, err := s.Create(7, validAddress(), PaymentCard)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ShippingPrice != 99 {
		t.Fatalf("expected shipping fee 99 below threshold, got %d", o.ShippingPrice)
	}
	if o.TotalPrice != o.ItemsPrice+o.ShippingPrice+o.TaxPrice {
		t.Fatalf("total does not equal the sum of its parts: %+v", o)
	}
}

func TestGet_Ownership(t *testing.T) {
	items := []cart.Item{{ID: "a", ProductID: 1, Name: "Oversized Tee", Quantity: 1, Price: 500}}
	s, _, _ := newTestService(items)
	o, _ := s.Create(7, validAddress(), PaymentCOD)

	if _, err := s.Get(o.ID, 7, false); err != nil {
		t.Fatalf("owner should read own order: %v", err)
	}
	if _, err := s.Get(o.ID, 8, false); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
	if _, err := s.Get(o.ID, 8, true); err != nil {
		t.Fatalf("admin should read any order: %v", err)
	}
	if _, err := s.Get(999, 7, false); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	items := []cart.Item{{ID: "a", ProductID: 1, Name: "Oversized Tee", Quantity: 1, Price: 500}}
	s, _, _ := newTestService(items)
	o, _ := s.Create(7, validAddress(), PaymentCOD)

	if _, err := s.Cancel(o.ID, 8, ""); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	cancelled, err := s.Cancel(o.ID, 7, "")
	if err != nil {
		t.Fatalf("cancel pending order: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}
	if cancelled.CancelReason == nil || *cancelled.CancelReason != "Cancelled by customer" {
		t.Fatalf("expected default cancel reason, got %v", cancelled.CancelReason)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelledAt stamp")
	}

	// cancelling again hits the terminal branch
	_, err = s.Cancel(o.ID, 7, "changed my mind")
	var cannot *CannotCancelError
	if !errors.As(err, &cannot) {
		t.Fatalf("expected CannotCancelError, got %v", err)
	}
}

func TestCancel_OnlyEarlyStatuses(t *testing.T) {
	items := []cart.Item{{ID: "a", ProductID: 1, Name: "Oversized Tee", Quantity: 1, Price: 500}}
	s, _, _ := newTestService(items)
	o, _ := s.Create(7, validAddress(), PaymentCOD)

	if _, err := s.SetStatus(o.ID, StatusShipped, nil); err != nil {
		t.Fatalf("ship: %v", err)
	}
	_, err := s.Cancel(o.ID, 7, "")
	var cannot *CannotCancelError
	if !errors.As(err, &cannot) || cannot.Status != StatusShipped {
		t.Fatalf("expected CannotCancelError for shipped, got %v", err)
	}
}

func TestSetStatus(t *testing.T) {
	items := []cart.Item{{ID: "a", ProductID: 1, Name: "Oversized Tee", Quantity: 1, Price: 500}}
	s, _, _ := newTestService(items)
	o, _ := s.Create(7, validAddress(), PaymentCOD)

	if _, err := s.SetStatus(o.ID, Status("lost"), nil); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	tracking := "TRK123456"
	shipped, err := s.SetStatus(o.ID, StatusShipped, &tracking)
	if err != nil {
		t.Fatalf("ship: %v", err)
	}
	if shipped.TrackingNumber == nil || *shipped.TrackingNumber != "TRK123456" {
		t.Fatalf("expected tracking number set, got %v", shipped.TrackingNumber)
	}

	delivered, err := s.SetStatus(o.ID, StatusDelivered, nil)
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if delivered.DeliveredAt == nil {
		t.Fatalf("expected deliveredAt stamp")
	}

	// no way out of a terminal state
	_, err = s.SetStatus(o.ID, StatusProcessing, nil)
	var terminal *TerminalStateError
	if !errors.As(err, &terminal) || terminal.Status != StatusDelivered {
		t.Fatalf("expected TerminalStateError for delivered, got %v", err)
	}

	// re-asserting the same terminal state is a no-op update, not an error
	if _, err := s.SetStatus(o.ID, StatusDelivered, nil); err != nil {
		t.Fatalf("expected idempotent delivered set, got %v", err)
	}
}

func TestListAll_RejectsUnknownStatusFilter(t *testing.T) {
	s, _, _ := newTestService(nil)
	if _, err := s.ListAll(Status("limbo"), 1, 10); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestFormatOrderNumber(t *testing.T) {
	now := time.UnixMilli(1756000000000)
	got := formatOrderNumber(now, 42)
	want := "VYBE17560000000000042"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	// sequence wraps into four digits
	if got := formatOrderNumber(now, 123456); got != "VYBE17560000000003456" {
		t.Fatalf("unexpected wrapped number %q", got)
	}
}
