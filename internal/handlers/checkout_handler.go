package handlers

import (
	"errors"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/", h.HandleBegin)
	checkoutRoutes.Post("/confirm", h.HandleConfirm)
	checkoutRoutes.Post("/back", h.HandleBackToCart)
	checkoutRoutes.Post("/cancel", h.HandleCancel)
	checkoutRoutes.Get("/receipt", h.HandleGetReceipt)
}

// ConfirmRequest represents the request body for confirming a checkout.
type ConfirmRequest struct {
	DeliveryAddress string `json:"delivery_address"`
}

// HandleBegin moves the cart to checkout. Anonymous shoppers get 401 with
// the session parked at the login prompt.
func (h *CheckoutHandler) HandleBegin(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	view, err := h.service.Begin(c.UserContext(), sess)
	if err != nil {
		if errors.Is(err, services.ErrLoginRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message":      "Login required to check out",
				"login_prompt": true,
				"session":      sessionView(sess),
			})
		}
		return respondError(c, "Could not start checkout", err)
	}
	return c.JSON(view)
}

// HandleConfirm places the order.
func (h *CheckoutHandler) HandleConfirm(c *fiber.Ctx) error {
	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	sess := middleware.CurrentSession(c)
	receipt, err := h.service.Confirm(c.UserContext(), sess, req.DeliveryAddress)
	if err != nil {
		return respondError(c, "Could not confirm order", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order confirmed",
		"receipt": receipt,
		"session": sessionView(sess),
	})
}

// HandleBackToCart returns from checkout to the cart.
func (h *CheckoutHandler) HandleBackToCart(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if err := h.service.BackToCart(sess); err != nil {
		return respondError(c, "Could not return to cart", err)
	}
	return c.JSON(fiber.Map{"session": sessionView(sess)})
}

// HandleCancel abandons the checkout.
func (h *CheckoutHandler) HandleCancel(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	h.service.Cancel(sess)
	return c.JSON(fiber.Map{
		"message": "Checkout cancelled",
		"session": sessionView(sess),
	})
}

// HandleGetReceipt shows the receipt of the last confirmed order.
func (h *CheckoutHandler) HandleGetReceipt(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if sess.Receipt == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No confirmed order",
		})
	}
	return c.JSON(sess.Receipt)
}
