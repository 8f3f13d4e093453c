package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alshop/internal/apperr"
	"alshop/internal/models"
	"alshop/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service, validate: validator.New()}
}

// RegisterRoutes registers the authenticated shopper routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Post("/", h.HandleCreateOrder)
	orders.Get("/mine", h.HandleGetMyOrders)
	orders.Get("/count", h.HandleGetMyOrderCount)
	orders.Get("/:id", h.HandleGetOrderByID)
}

// RegisterAdminRoutes registers the management routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Get("/", h.HandleGetAllOrders)
	orders.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// CreateOrderRequest is the checkout payload. Any prices or totals the
// client sends are ignored; the server recomputes them.
type CreateOrderRequest struct {
	Items           []models.OrderItem     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shipping_address" validate:"required"`
}

// HandleCreateOrder places an order for the authenticated user.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	order, err := h.service.CreateOrder(currentUserID(c), req.Items, req.ShippingAddress)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusCreated, "Order placed successfully", order)
}

// HandleGetMyOrders lists the authenticated user's orders, newest first.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersByUser(currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Orders retrieved", orders)
}

// HandleGetMyOrderCount returns how many orders the user has placed.
func (h *OrderHandler) HandleGetMyOrderCount(c *fiber.Ctx) error {
	count, err := h.service.CountByUser(currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "count": count})
}

// HandleGetOrderByID returns one order. Non-admins only see their own;
// anything else reads as not found.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.Params("id"), currentUserID(c), isAdmin(c))
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Order retrieved", order)
}

// HandleGetAllOrders lists every order for the management panel.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Orders retrieved", orders)
}

// HandleUpdateOrderStatus moves an order through the state machine.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if req.Status == "" {
		return respondErr(c, apperr.Validationf("status is required"))
	}

	order, err := h.service.UpdateStatus(c.Params("id"), req.Status)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Order status updated", order)
}
