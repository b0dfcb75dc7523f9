package handlers

import (
	"dailydiet/internal/middleware"
	"dailydiet/internal/models"
	"dailydiet/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MealHandler handles HTTP requests for meals. All routes act on behalf of
// the session token's user.
type MealHandler struct {
	service *services.MealService
}

// NewMealHandler creates a new MealHandler.
func NewMealHandler(service *services.MealService) *MealHandler {
	return &MealHandler{
		service: service,
	}
}

// RegisterRoutes registers the meal routes with the Fiber app.
func (h *MealHandler) RegisterRoutes(router fiber.Router) {
	mealRoutes := router.Group("/meals", middleware.SessionRequired())
	mealRoutes.Post("", h.HandleCreateMeal)
	mealRoutes.Get("", h.HandleListMeals)
	// Must be registered before /:id.
	mealRoutes.Get("/metrics", h.HandleMetrics)
	mealRoutes.Get("/:id", h.HandleGetMeal)
	mealRoutes.Put("/:id", h.HandleUpdateMeal)
	mealRoutes.Delete("/:id", h.HandleDeleteMeal)
}

// HandleCreateMeal records a new meal.
func (h *MealHandler) HandleCreateMeal(c *fiber.Ctx) error {
	var input services.CreateMealInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, err)
	}

	mealID, err := h.service.Create(c.UserContext(), middleware.Token(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Meal created successfully",
		"meal_id": mealID,
	})
}

// HandleListMeals returns the user's meals.
func (h *MealHandler) HandleListMeals(c *fiber.Ctx) error {
	meals, err := h.service.ListForUser(c.UserContext(), middleware.Token(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"meals": meals})
}

// HandleGetMeal returns a single meal.
func (h *MealHandler) HandleGetMeal(c *fiber.Ctx) error {
	meal, err := h.service.Get(c.UserContext(), middleware.Token(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"meal": meal})
}

// HandleUpdateMeal applies a partial update. Only the keys present in the
// body are changed; an empty body is an empty update.
func (h *MealHandler) HandleUpdateMeal(c *fiber.Ctx) error {
	var patch models.MealPatch
	if len(c.Body()) > 0 {
		if err := parseBody(c, &patch); err != nil {
			return respondError(c, err)
		}
	}

	meal, err := h.service.Update(c.UserContext(), middleware.Token(c), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"meal": meal})
}

// HandleDeleteMeal removes a meal.
func (h *MealHandler) HandleDeleteMeal(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), middleware.Token(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Meal deleted successfully",
	})
}

// HandleMetrics returns the user's adherence report.
func (h *MealHandler) HandleMetrics(c *fiber.Ctx) error {
	report, err := h.service.Metrics(c.UserContext(), middleware.Token(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
