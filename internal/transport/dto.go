package transport

import "github.com/armenxdev/restaurant-finder/internal/models"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

type UserSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CreateRestaurantRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CuisineType string   `json:"cuisine_type"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Rating      *float64 `json:"rating"`
	PriceRange  string   `json:"price_range"`
	Phone       string   `json:"phone"`
	IsOpen      *bool    `json:"is_open"`
}

type UpdateRestaurantRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	CuisineType *string  `json:"cuisine_type"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Rating      *float64 `json:"rating"`
	PriceRange  *string  `json:"price_range"`
	Phone       *string  `json:"phone"`
	IsOpen      *bool    `json:"is_open"`
}

type ListRestaurantsQuery struct {
	Page        int
	Limit       int
	CuisineType string
	PriceRange  string
}

// NearbyQuery is a nearby-search request after numeric parsing. Nil Radius
// and Limit mean the parameter was absent; an explicit zero is invalid.
type NearbyQuery struct {
	Latitude    float64
	Longitude   float64
	Radius      *float64
	Limit       *int
	CuisineType string
	MinRating   *float64
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	IsAvailable *bool    `json:"is_available"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Images      []string `json:"images"`
	IsAvailable *bool    `json:"is_available"`
}

// NearbyRestaurant is a search hit: the restaurant plus its computed
// great-circle distance from the query point.
type NearbyRestaurant struct {
	models.Restaurant
	DistanceMeters float64 `json:"distance_meters"`
}

type NearbyResponse struct {
	Success bool               `json:"success"`
	Center  Coordinates        `json:"center"`
	Radius  float64            `json:"radius"`
	Count   int                `json:"count"`
	Data    []NearbyRestaurant `json:"data"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
