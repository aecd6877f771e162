package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Dish is a catalog row. Ingredients are stored as a jsonb array of
// lowercased names.
type Dish struct {
	ID          string                      `gorm:"column:id;primaryKey;type:text" json:"id"`
	Name        string                      `gorm:"column:name;type:text;not null" json:"name"`
	Ingredients datatypes.JSONSlice[string] `gorm:"column:ingredients;type:jsonb" json:"ingredients"`
	Available   bool                        `gorm:"column:available;default:true" json:"available"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Dish) TableName() string {
	return "dishes"
}
