package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"storefront/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const sessionKey = "session"

// AdminTokenHeader carries the admin token on admin requests.
const AdminTokenHeader = "X-Admin-Token"

// SessionTokenHeader carries a renewed session token on responses. Clients
// replace their bearer token with it.
const SessionTokenHeader = "X-Session-Token"

// SessionRequired loads the session named by the bearer token into the
// request and saves it back once the handler has run.
func SessionRequired(tokens *SessionTokens, store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		sessionID, err := tokens.Parse(parts[1])
		if err != nil {
			log.Debug().Err(err).Msg("session token rejected")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		sess, err := store.Get(c.UserContext(), sessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Session expired",
				})
			}
			log.Error().Err(err).Str("session_id", sessionID).Msg("failed to load session")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not load session",
				"error":   err.Error(),
			})
		}

		c.Locals(sessionKey, sess)
		nextErr := c.Next()

		if err := store.Save(c.UserContext(), sess); err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("failed to save session")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not save session",
				"error":   err.Error(),
			})
		}

		renewed, err := tokens.Renew(parts[1])
		if err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to renew session token")
		} else if renewed != "" {
			c.Set(SessionTokenHeader, renewed)
		}
		return nextErr
	}
}

// CurrentSession returns the session loaded by SessionRequired.
func CurrentSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionKey).(*session.Session)
	return sess
}

// LoginRequired rejects requests whose session has no logged-in user.
func LoginRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := CurrentSession(c)
		if sess == nil || !sess.IsLoggedIn() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Login required",
			})
		}
		return c.Next()
	}
}

// AdminRequired rejects requests that do not carry the admin token.
func AdminRequired(adminToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplied := c.Get(AdminTokenHeader)
		if adminToken == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(adminToken)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Admin token required",
			})
		}
		return c.Next()
	}
}
