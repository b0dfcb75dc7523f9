package models

// User represents a registered diner. The ID doubles as the session token.
type User struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name  string `json:"name" gorm:"type:varchar(100);not null"`
	Email string `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
}

// TableName pins the table name used by the store.
func (User) TableName() string {
	return "users"
}
