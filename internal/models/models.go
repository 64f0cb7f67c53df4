package models

import (
	"time"

	"github.com/armenxdev/restaurant-finder/internal/geo"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"size:100;not null;uniqueIndex:users_username_unique"`
	Email          string    `json:"email" gorm:"size:255;not null;uniqueIndex:users_email_unique"`
	Password       string    `json:"-" gorm:"size:255;not null"`
	ProfilePicture *string   `json:"profile_picture" gorm:"size:500"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Restaurant stores raw coordinates plus the geometry derived from them.
// The service re-derives Location whenever a coordinate changes.
type Restaurant struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description,omitempty"`
	CuisineType string    `json:"cuisine_type,omitempty" gorm:"size:100"`
	Address     string    `json:"address" gorm:"size:255;not null"`
	Latitude    float64   `json:"latitude" gorm:"not null;index:idx_restaurants_lat_lng,priority:1"`
	Longitude   float64   `json:"longitude" gorm:"not null;index:idx_restaurants_lat_lng,priority:2"`
	Location    geo.Point `json:"-" gorm:"not null"`
	Rating      float64   `json:"rating" gorm:"default:0"`
	PriceRange  string    `json:"price_range" gorm:"size:4;default:'$$'"`
	Phone       string    `json:"phone,omitempty" gorm:"size:20"`
	IsOpen      bool      `json:"is_open"`
	CoverImage  *string   `json:"cover_image,omitempty" gorm:"size:500"`
	Products    []Product `json:"products,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Images       []string  `json:"images,omitempty" gorm:"serializer:json"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price" gorm:"not null"`
	Category     string    `json:"category,omitempty" gorm:"size:100"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PriceRanges is the closed set of accepted price tiers.
var PriceRanges = map[string]bool{
	"$": true, "$$": true, "$$$": true, "$$$$": true,
}
