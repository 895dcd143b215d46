package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for accounts and login.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)

	router.Get("/account", middleware.LoginRequired(), h.HandleAccount)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	user, err := h.authService.RegisterUser(c.UserContext(), req)
	if err != nil {
		log.Debug().Err(err).Str("email", req.Email).Msg("registration rejected")
		return respondError(c, "Registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin logs the session in.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := services.Validate(req); err != nil {
		return respondError(c, "Validation failed", err)
	}

	sess := middleware.CurrentSession(c)
	user, err := h.authService.LoginUser(c.UserContext(), sess, req.Email, req.Password)
	if err != nil {
		return respondError(c, "Authentication failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"session": sessionView(sess),
	})
}

// HandleLogout logs the session out and empties its cart.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	h.authService.Logout(sess)
	return c.JSON(fiber.Map{
		"message": "Logged out",
		"session": sessionView(sess),
	})
}

// HandleAccount returns the logged-in user's profile.
func (h *AuthHandler) HandleAccount(c *fiber.Ctx) error {
	user, err := h.authService.Account(c.UserContext(), middleware.CurrentSession(c))
	if err != nil {
		return respondError(c, "Could not retrieve account", err)
	}
	return c.JSON(fiber.Map{
		"name":    user.Name,
		"email":   user.Email,
		"phone":   user.Phone,
		"address": user.Address,
	})
}
