package model

import "time"

// Like records that a user saved a property to their favourites.
type Like struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_like_user_property"`
	PropertyID uint      `json:"property_id" gorm:"not null;uniqueIndex:idx_like_user_property;index"`
	CreatedAt  time.Time `json:"created_at"`
}
