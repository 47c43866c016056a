package order

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vybewear/vybe-backend/internal/cart"
	"github.com/vybewear/vybe-backend/internal/pricing"
	"github.com/vybewear/vybe-backend/internal/product"
)

// CartService is the slice of the cart service the materializer needs.
type CartService interface {
	Get(userID int) (cart.Cart, error)
	Clear(userID int) error
}

type Service struct {
	repo     Repository
	carts    CartService
	products product.ServiceInterface
	pricing  pricing.Config
	validate *validator.Validate
}

func NewService(repo Repository, carts CartService, products product.ServiceInterface, pricing pricing.Config) *Service {
	return &Service{
		repo:     repo,
		carts:    carts,
		products: products,
		pricing:  pricing,
		validate: validator.New(),
	}
}

// Estimate prices the user's current cart without creating anything. It
// runs the same calculator as Create, so the pre-checkout figure and the
// persisted order can only differ if the cart changed in between.
func (s *Service) Estimate(userID int) (pricing.Quote, error) {
	c, err := s.carts.Get(userID)
	if err != nil {
		return pricing.Quote{}, err
	}
	return s.pricing.Calculate(c.TotalPrice()), nil
}

// Create materializes the user's cart into an immutable order.
//
// The order insert happens first; clearing the cart and bumping sold
// counts run only after it succeeds. A crash in between leaves a stale
// cart or an unbumped counter, which is accepted and surfaced in the logs
// rather than papered over with a cross-document transaction.
func (s *Service) Create(userID int, addr ShippingAddress, paymentMethod string) (Order, error) {
	c, err := s.carts.Get(userID)
	if err != nil {
		return Order{}, err
	}
	if len(c.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	if err := s.validate.Struct(addr); err != nil {
		return Order{}, ErrIncompleteAddress
	}

	if paymentMethod == "" {
		paymentMethod = PaymentCOD
	}
	if !ValidPaymentMethod(paymentMethod) {
		return Order{}, ErrInvalidPayment
	}

	// snapshot: name and image from the product as of now, price from the
	// cart line (captured at add time)
	items := make([]Item, 0, len(c.Items))
	for _, line := range c.Items {
		item := Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
			Price:     line.Price,
			Image:     line.Image,
		}
		if p, err := s.products.GetByID(line.ProductID); err == nil {
			item.Name = p.Name
			if len(p.Images) > 0 {
				item.Image = p.Images[0].URL
			}
		}
		items = append(items, item)
	}

	quote := s.pricing.Calculate(c.TotalPrice())

	created, err := s.repo.Create(Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: addr,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   PaymentStatusPending,
		ItemsPrice:      quote.Subtotal,
		ShippingPrice:   quote.Shipping,
		TaxPrice:        quote.Tax,
		TotalPrice:      quote.Total,
		Status:          StatusPending,
	})
	if err != nil {
		return Order{}, err
	}

	if err := s.carts.Clear(userID); err != nil {
		log.Printf("warning: order %s created but cart for user %d not cleared: %v", created.OrderNumber, userID, err)
	}
	for _, item := range items {
		if err := s.products.IncrementSold(item.ProductID, item.Quantity); err != nil {
			log.Printf("warning: sold count not bumped for product %d: %v", item.ProductID, err)
		}
	}

	return created, nil
}

// Get returns the order if the requester owns it or is an admin.
func (s *Service) Get(orderID, requesterID int, isAdmin bool) (Order, error) {
	o, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != requesterID && !isAdmin {
		return Order{}, ErrForbidden
	}
	return o, nil
}

func (s *Service) ListForUser(userID, page, limit int) (Page, error) {
	return s.repo.List(ListQuery{UserID: userID, Page: page, Limit: limit})
}

func (s *Service) ListAll(status Status, page, limit int) (Page, error) {
	if status != "" && !status.Valid() {
		return Page{}, ErrInvalidStatus
	}
	return s.repo.List(ListQuery{Status: status, Page: page, Limit: limit})
}

// Cancel is the customer-triggered transition. Only the owner may cancel,
// and only while the order is pending or confirmed.
func (s *Service) Cancel(orderID, requesterID int, reason string) (Order, error) {
	o, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != requesterID {
		return Order{}, ErrForbidden
	}
	if !o.Status.Cancellable() {
		return Order{}, &CannotCancelError{Status: o.Status}
	}

	if reason == "" {
		reason = "Cancelled by customer"
	}
	now := time.Now().UTC().Format(time.RFC3339)
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.CancelReason = &reason
	return s.repo.Update(o)
}

// SetStatus is the admin-triggered transition. Any status may be set except
// out of a terminal state; delivered stamps the delivery timestamp. A
// tracking number may accompany any transition.
func (s *Service) SetStatus(orderID int, status Status, trackingNumber *string) (Order, error) {
	if !status.Valid() {
		return Order{}, ErrInvalidStatus
	}

	o, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if o.Status.Terminal() && status != o.Status {
		return Order{}, &TerminalStateError{Status: o.Status}
	}

	o.Status = status
	if trackingNumber != nil && *trackingNumber != "" {
		o.TrackingNumber = trackingNumber
	}
	if status == StatusDelivered && o.DeliveredAt == nil {
		now := time.Now().UTC().Format(time.RFC3339)
		o.DeliveredAt = &now
	}
	return s.repo.Update(o)
}
