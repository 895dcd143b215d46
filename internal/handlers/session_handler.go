package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/session"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler hands out new shopper sessions.
type SessionHandler struct {
	tokens *middleware.SessionTokens
	store  session.Store
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(tokens *middleware.SessionTokens, store session.Store) *SessionHandler {
	return &SessionHandler{tokens: tokens, store: store}
}

// RegisterRoutes registers the session routes with the Fiber app.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/sessions", h.HandleCreateSession)
}

// HandleCreateSession starts an anonymous session and returns its bearer token.
func (h *SessionHandler) HandleCreateSession(c *fiber.Ctx) error {
	sess := session.New()
	if err := h.store.Save(c.UserContext(), sess); err != nil {
		return respondError(c, "Could not create session", err)
	}

	token, err := h.tokens.Issue(sess.ID)
	if err != nil {
		return respondError(c, "Could not create session", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Session created",
		"token":      token,
		"expires_in": int(h.tokens.TTL().Seconds()),
		"session":    sessionView(sess),
	})
}

// sessionView is the header data every page shows: who is logged in, the
// cart badge and the checkout step.
func sessionView(sess *session.Session) fiber.Map {
	return fiber.Map{
		"logged_in":       sess.IsLoggedIn(),
		"user_name":       sess.UserName,
		"cart_item_count": sess.CartItemCount(),
		"state":           sess.State,
	}
}
