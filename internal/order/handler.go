package order

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/vybewear/vybe-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/orders", h.createOrder)
	app.Get("/api/orders/estimate", h.estimate)
	app.Get("/api/orders/my-orders", h.getMyOrders)
	app.Get("/api/orders/:id<[0-9]+>", h.getOrder)
	app.Put("/api/orders/:id<[0-9]+>/cancel", h.cancelOrder)
	// admin
	app.Get("/api/orders", h.getAllOrders)
	app.Put("/api/orders/:id<[0-9]+>/status", h.updateStatus)
}

type createRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	created, err := h.service.Create(userID, payload.ShippingAddress, payload.PaymentMethod)
	switch {
	case err == nil:
	case errors.Is(err, ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cart is empty"})
	case errors.Is(err, ErrIncompleteAddress):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Please provide complete shipping address"})
	case errors.Is(err, ErrInvalidPayment):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid payment method"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create order"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Order placed successfully", "order": created})
}

func (h *Handler) estimate(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	quote, err := h.service.Estimate(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to estimate order"})
	}
	return c.JSON(fiber.Map{"success": true, "estimate": quote})
}

func (h *Handler) getMyOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	page, err := h.service.ListForUser(userID, c.QueryInt("page", 1), c.QueryInt("limit", DefaultPageSize))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch orders"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(page.Orders),
		"total":   page.Total,
		"page":    page.Page,
		"pages":   page.Pages,
		"orders":  page.Orders,
	})
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid order id"})
	}

	o, err := h.service.Get(orderID, userID, user.IsAdminFromCtx(c))
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Order not found"})
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Not authorized to view this order"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch order"})
	}
	return c.JSON(fiber.Map{"success": true, "order": o})
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid order id"})
	}

	payload := new(cancelRequest)
	c.BodyParser(payload) // body is optional

	o, err := h.service.Cancel(orderID, userID, payload.Reason)
	var cannotCancel *CannotCancelError
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Order not found"})
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Not authorized"})
	case errors.As(err, &cannotCancel):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": cannotCancel.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to cancel order"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Order cancelled", "order": o})
}

func (h *Handler) getAllOrders(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Admin access required"})
	}

	page, err := h.service.ListAll(Status(c.Query("status")), c.QueryInt("page", 1), c.QueryInt("limit", DefaultPageSize))
	if errors.Is(err, ErrInvalidStatus) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid order status"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch orders"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(page.Orders),
		"total":   page.Total,
		"page":    page.Page,
		"pages":   page.Pages,
		"orders":  page.Orders,
	})
}

type statusRequest struct {
	Status         string  `json:"status"`
	TrackingNumber *string `json:"trackingNumber,omitempty"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Admin access required"})
	}
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid order id"})
	}

	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	o, err := h.service.SetStatus(orderID, Status(payload.Status), payload.TrackingNumber)
	var terminal *TerminalStateError
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Order not found"})
	case errors.Is(err, ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid order status"})
	case errors.As(err, &terminal):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": terminal.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update order"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Order status updated", "order": o})
}
