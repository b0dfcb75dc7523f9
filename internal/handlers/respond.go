package handlers

import (
	"dailydiet/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// respondError writes the JSON error body for err.
func respondError(c *fiber.Ctx, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= fiber.StatusInternalServerError {
		log.WithFields(log.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Errorf("Request failed: %v", err)
	}
	return c.Status(httpErr.StatusCode).JSON(httpErr.ToErrorResponse())
}

// parseBody decodes the JSON body into out. Decoding failures are reported
// as validation errors.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		log.Debugf("Error parsing request body: %v", err)
		return apperrors.NewValidationError("body", err.Error())
	}
	return nil
}
