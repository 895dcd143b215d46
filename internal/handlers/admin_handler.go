package handlers

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles catalog and order management requests.
type AdminHandler struct {
	products *services.ProductService
	orders   *services.OrderService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(products *services.ProductService, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{
		products: products,
		orders:   orders,
	}
}

// RegisterRoutes registers the admin routes on an already guarded router.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/products", h.HandleCreateProduct)
	router.Get("/orders/:id", h.HandleGetOrder)
	router.Patch("/orders/:id/status", h.HandleUpdateOrderStatus)
}

// HandleCreateProduct adds a product to the catalog.
func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	product.ID = 0
	product.AvgRating = 0
	product.RatingCount = 0

	if err := h.products.CreateProduct(c.UserContext(), &product); err != nil {
		return respondError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleGetOrder retrieves any order by its ID.
func (h *AdminHandler) HandleGetOrder(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid order ID", err)
	}

	order, err := h.orders.GetOrder(c.UserContext(), id)
	if err != nil {
		return respondError(c, fmt.Sprintf("Order with ID %d not found", id), err)
	}
	return c.JSON(order)
}

// UpdateStatusRequest represents the request body for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus moves an order through its lifecycle.
func (h *AdminHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid order ID", err)
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := services.Validate(req); err != nil {
		return respondError(c, "Validation failed", err)
	}

	order, err := h.orders.UpdateOrderStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return respondError(c, "Could not update order status", err)
	}
	return c.JSON(order)
}
