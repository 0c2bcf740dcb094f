package handlers

import (
	"errors"

	"matchly/internal/handlers/middleware"
	"matchly/internal/types"

	"github.com/gofiber/fiber/v2"
)

// respondError maps controller errors onto status codes and the
// {message[, errors]} body clients expect.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	var validation *types.ValidationError

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ValidationErrorResponse{
			Message: validation.Message(),
			Errors:  validation.Errors,
		})
	case errors.Is(err, types.ErrAuthentication):
		return c.Status(fiber.StatusUnauthorized).JSON(types.MessageResponse{
			Message: middleware.UnauthenticatedMessage,
		})
	case errors.Is(err, types.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.MessageResponse{Message: "Not Found"})
	default:
		h.log.TraceFromContext(c.UserContext()).Function("respondError").
			Er("request failed", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(types.MessageResponse{
			Message: "Server Error",
		})
	}
}

// pagePath is the absolute URL of the current route without its query string.
func pagePath(c *fiber.Ctx) string {
	return c.BaseURL() + c.Path()
}
