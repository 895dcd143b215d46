package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrDuplicateEmail):
		return fiber.StatusConflict
	case errors.Is(err, repositories.ErrInvalidCredentials),
		errors.Is(err, services.ErrLoginRequired):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrNotInCheckout),
		errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrEmptyAddress),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidScore),
		errors.Is(err, services.ErrInvalidStatus):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as a JSON error response. Server errors are logged.
func respondError(c *fiber.Ctx, message string, err error) error {
	status := errorStatus(err)

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(status).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	}

	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg(message)
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// parseID reads a positive numeric route parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, c.Params(name))
	}
	return uint(id), nil
}
