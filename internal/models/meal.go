package models

import "time"

// Meal represents one recorded eating event owned by a single user.
type Meal struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:varchar(500);not null"`
	IsInDiet    bool      `json:"is_in_diet" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;index"`
	UserID      string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
}

// TableName pins the table name used by the store.
func (Meal) TableName() string {
	return "meals"
}

// MealPatch carries the fields of a partial meal update. A field is applied
// only when it was provided.
type MealPatch struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	IsInDiet    Optional[bool]   `json:"is_in_diet"`
}

// IsEmpty reports whether no field was provided.
func (p MealPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Description.Set && !p.IsInDiet.Set
}

// Columns returns the provided fields keyed by column name.
func (p MealPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 3)
	if p.Name.Set {
		cols["name"] = p.Name.Value
	}
	if p.Description.Set {
		cols["description"] = p.Description.Value
	}
	if p.IsInDiet.Set {
		cols["is_in_diet"] = p.IsInDiet.Value
	}
	return cols
}

// Apply copies the provided fields onto m.
func (p MealPatch) Apply(m *Meal) {
	if p.Name.Set {
		m.Name = p.Name.Value
	}
	if p.Description.Set {
		m.Description = p.Description.Value
	}
	if p.IsInDiet.Set {
		m.IsInDiet = p.IsInDiet.Value
	}
}
