package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// AddItemRequest represents the request body for adding to the cart.
type AddItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"`
}

// HandleGetCart shows the cart with its amounts due.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	view, err := h.service.View(c.UserContext(), middleware.CurrentSession(c))
	if err != nil {
		return respondError(c, "Could not retrieve cart", err)
	}
	return c.JSON(view)
}

// HandleAddItem adds a product to the cart. Quantity defaults to 1.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	req := AddItemRequest{Quantity: 1}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := services.Validate(req); err != nil {
		return respondError(c, "Validation failed", err)
	}

	sess := middleware.CurrentSession(c)
	if err := h.service.AddItem(c.UserContext(), sess, req.ProductID, req.Quantity); err != nil {
		return respondError(c, "Could not add item to cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Item added to cart",
		"session": sessionView(sess),
	})
}

// HandleRemoveItem drops a product's line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	id, err := parseID(c, "productId")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}

	sess := middleware.CurrentSession(c)
	h.service.RemoveItem(sess, id)
	return c.JSON(fiber.Map{
		"message": "Item removed from cart",
		"session": sessionView(sess),
	})
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	h.service.Clear(sess)
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
		"session": sessionView(sess),
	})
}
