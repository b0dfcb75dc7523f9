package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Meal lifecycle event types.
const (
	EventMealCreated = "meal.created"
	EventMealUpdated = "meal.updated"
	EventMealDeleted = "meal.deleted"
)

// EventPublisher delivers meal events to interested consumers.
type EventPublisher interface {
	PublishEvent(eventType string, payload interface{}) error
}

// MealEvent is the body of a meal lifecycle event.
type MealEvent struct {
	MealID     string    `json:"meal_id"`
	UserID     string    `json:"user_id"`
	IsInDiet   bool      `json:"is_in_diet"`
	OccurredAt time.Time `json:"occurred_at"`
}

// publish sends the event when a publisher is configured. Failures are logged
// and never fail the caller.
func (s *MealService) publish(eventType string, event MealEvent) {
	if s.events == nil {
		return
	}
	event.OccurredAt = s.now()
	if err := s.events.PublishEvent(eventType, event); err != nil {
		log.WithFields(log.Fields{
			"event":   eventType,
			"meal_id": event.MealID,
		}).Warnf("Failed to publish meal event: %v", err)
	}
}
