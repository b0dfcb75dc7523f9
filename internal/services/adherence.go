package services

import (
	"context"
	"strconv"

	"dailydiet/internal/apperrors"
	"dailydiet/internal/models"
)

// ComputeAdherence summarises a meal history given in creation order. The
// best sequence is the longest run of consecutive in-diet meals, including a
// run that reaches the last meal.
func ComputeAdherence(meals []models.Meal) models.AdherenceReport {
	report := models.AdherenceReport{TotalMeals: len(meals)}
	current := 0
	for _, meal := range meals {
		if meal.IsInDiet {
			report.MealsInDiet++
			current++
			continue
		}
		report.MealsOutDiet++
		report.BestSequence = max(report.BestSequence, current)
		current = 0
	}
	report.BestSequence = max(report.BestSequence, current)
	return report
}

// Reports are cached under a per-user generation that every meal write
// bumps. A report computed before a write is stored under the old generation
// and never read again.
func metricsGenerationKey(userID string) string {
	return "metrics:gen:" + userID
}

func metricsCacheKey(userID string, generation int64) string {
	return "metrics:" + userID + ":" + strconv.FormatInt(generation, 10)
}

// Metrics returns the adherence report for the token's user.
func (s *MealService) Metrics(ctx context.Context, token models.Token) (models.AdherenceReport, error) {
	var report models.AdherenceReport
	if token.IsZero() {
		return report, apperrors.ErrUnauthorized
	}
	userID := token.UserID()
	key := metricsCacheKey(userID, s.cache.Int(ctx, metricsGenerationKey(userID)))
	if s.cache.GetJSON(ctx, key, &report) {
		return report, nil
	}

	meals, err := s.ListForUser(ctx, token)
	if err != nil {
		return report, err
	}
	report = ComputeAdherence(meals)
	_ = s.cache.SetJSON(ctx, key, report, s.cacheTTL)
	return report, nil
}
