package models

import (
	"time"
)

type Favorite struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	PropertyID int       `json:"property_id"`
	Title      string    `json:"title"`
	Price      float64   `json:"price"`
	Status     string    `json:"status"`
	ImagePath  *string   `json:"image_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type FavoriteToggleRequest struct {
	UserID     int `json:"user_id"`
	PropertyID int `json:"property_id"`
}

type FavoriteToggleResponse struct {
	PropertyID int  `json:"property_id"`
	Liked      bool `json:"liked"`
}
