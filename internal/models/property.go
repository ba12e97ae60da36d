package models

import (
	"time"
)

// Listing moderation/availability states. Transitions: pending -> active|rejected
// by an admin, active -> rented|sold by the owner, rented|sold -> archived by the
// history cleaner after the retention window.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusRejected = "rejected"
	StatusRented   = "rented"
	StatusSold     = "sold"
	StatusArchived = "archived"
)

const (
	TransactionRent = "rent"
	TransactionSale = "sale"
)

type Property struct {
	ID              int             `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Price           float64         `json:"price"`
	TransactionType string          `json:"transaction_type"`
	PropertyType    string          `json:"property_type"`
	Municipality    string          `json:"municipality"`
	Bairro          string          `json:"bairro"`
	Bedrooms        int             `json:"bedrooms"`
	Bathrooms       int             `json:"bathrooms"`
	Area            float64         `json:"area"`
	Amenities       []string        `json:"amenities"`
	Images          []PropertyImage `json:"images"`
	Status          string          `json:"status"`
	UserID          int             `json:"user_id"`
	Owner           struct {
		ID         int     `json:"id"`
		Name       string  `json:"name"`
		Phone      string  `json:"phone"`
		Whatsapp   string  `json:"whatsapp"`
		Facebook   string  `json:"facebook,omitempty"`
		AvatarPath *string `json:"avatar_path,omitempty"`
	} `json:"owner"`
	Views           int        `json:"views"`
	Liked           bool       `json:"liked"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	StatusChangedAt *time.Time `json:"status_changed_at,omitempty"`
}

type PropertyImage struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// PropertyFilterRequest is the search form posted by the browse screen. Zero
// values mean "not set": empty strings and zero bounds skip their predicate.
type PropertyFilterRequest struct {
	Query           string  `json:"query"`
	Location        string  `json:"location"`
	PropertyType    string  `json:"property_type"`
	TransactionType string  `json:"transaction_type"`
	PriceFrom       float64 `json:"price_from"`
	PriceTo         float64 `json:"price_to"`
	Page            int     `json:"page"`
	Limit           int     `json:"limit"`
}

type PropertyListResponse struct {
	Properties []Property `json:"properties"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Pages      int        `json:"pages"`
}

type PropertyStatusRequest struct {
	PropertyID int    `json:"property_id"`
	Status     string `json:"status"`
}

// StatusUpdate is pushed to the owner's websocket when moderation or the
// owner's own dashboard changes a listing state.
type StatusUpdate struct {
	PropertyID int    `json:"property_id"`
	Status     string `json:"status"`
}
