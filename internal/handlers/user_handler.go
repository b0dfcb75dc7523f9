package handlers

import (
	"time"

	"dailydiet/internal/models"
	"dailydiet/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for registration and the user list.
type UserHandler struct {
	userService *services.UserService
	sessionTTL  time.Duration
}

// NewUserHandler creates a new UserHandler. The session cookie lives for
// sessionTTL, or models.DefaultTokenTTL when it is not positive.
func NewUserHandler(userService *services.UserService, sessionTTL time.Duration) *UserHandler {
	if sessionTTL <= 0 {
		sessionTTL = models.DefaultTokenTTL
	}
	return &UserHandler{
		userService: userService,
		sessionTTL:  sessionTTL,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("", h.HandleRegister)
	userRoutes.Get("", h.HandleListUsers)
}

// HandleRegister signs a user up and hands the token back as a cookie.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, err)
	}

	token, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     models.TokenCookieName,
		Value:    token.String(),
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		Expires:  time.Now().Add(h.sessionTTL),
		SameSite: fiber.CookieSameSiteLaxMode,
		HTTPOnly: true,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user_id": token.UserID(),
	})
}

// HandleListUsers returns every registered user.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}
