package domain

import (
	"time"

	"gorm.io/datatypes"
)

// UserProfile holds one user's food preferences, one row per user.
type UserProfile struct {
	UserID              uint                        `gorm:"column:user_id;primaryKey" json:"user_id"`
	LikedIngredients    datatypes.JSONSlice[string] `gorm:"column:liked_ingredients;type:jsonb" json:"liked_ingredients"`
	DislikedIngredients datatypes.JSONSlice[string] `gorm:"column:disliked_ingredients;type:jsonb" json:"disliked_ingredients"`
	Allergies           datatypes.JSONSlice[string] `gorm:"column:allergies;type:jsonb" json:"allergies"`
	Restrictions        datatypes.JSONSlice[string] `gorm:"column:restrictions;type:jsonb" json:"restrictions"`
	LikedDishes         datatypes.JSONSlice[string] `gorm:"column:liked_dishes;type:jsonb" json:"liked_dishes"`
	DislikedDishes      datatypes.JSONSlice[string] `gorm:"column:disliked_dishes;type:jsonb" json:"disliked_dishes"`
	UpdatedAt           time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
