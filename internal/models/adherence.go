package models

// AdherenceReport summarises how well a user kept to their diet.
type AdherenceReport struct {
	TotalMeals   int `json:"total_meals"`
	MealsInDiet  int `json:"meals_in_diet"`
	MealsOutDiet int `json:"meals_out_diet"`
	BestSequence int `json:"best_sequence"` // longest run of consecutive in-diet meals
}
