package middleware

import (
	"dailydiet/internal/apperrors"
	"dailydiet/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	log "github.com/sirupsen/logrus"
)

const tokenLocalKey = "session_token"

// SessionRequired is a Fiber middleware that requires the session token
// cookie. The token is not verified: it is a bearer capability, and whoever
// presents it acts as the user it names.
//
// The cookie value is copied out of the request buffer, since the token ends
// up stored as a meal owner and fasthttp reuses that buffer.
func SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := models.Token(utils.CopyString(c.Cookies(models.TokenCookieName)))
		if token.IsZero() {
			log.WithField("path", c.Path()).Debug("Request without session token")
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
			return c.Status(httpErr.StatusCode).JSON(httpErr.ToErrorResponse())
		}

		c.Locals(tokenLocalKey, token)
		return c.Next()
	}
}

// Token returns the session token stored by SessionRequired, or the zero
// token when the middleware did not run.
func Token(c *fiber.Ctx) models.Token {
	token, _ := c.Locals(tokenLocalKey).(models.Token)
	return token
}
