package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/armenxdev/restaurant-finder/internal/events"
	"github.com/armenxdev/restaurant-finder/internal/geo"
	"github.com/armenxdev/restaurant-finder/internal/models"
	"github.com/armenxdev/restaurant-finder/internal/repo"
	"github.com/armenxdev/restaurant-finder/internal/search"
	"github.com/armenxdev/restaurant-finder/internal/transport"
	"github.com/armenxdev/restaurant-finder/pkg/logging"
)

type RestaurantService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
	Search *search.Client
}

// Create validates the payload, derives the point geometry and persists the
// restaurant.
func (s *RestaurantService) Create(ctx context.Context, req transport.CreateRestaurantRequest) (*models.Restaurant, error) {
	l := logging.FromContext(ctx).With("svc", "restaurant.create")

	if err := validateCreateRestaurant(req); err != nil {
		return nil, err
	}

	rest := &models.Restaurant{
		Name:        req.Name,
		Description: req.Description,
		CuisineType: req.CuisineType,
		Address:     req.Address,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		PriceRange:  "$$",
		IsOpen:      true,
	}
	if req.Rating != nil {
		rest.Rating = *req.Rating
	}
	if req.PriceRange != "" {
		rest.PriceRange = req.PriceRange
	}
	if req.IsOpen != nil {
		rest.IsOpen = *req.IsOpen
	}

	point, ok := geo.DerivePoint(rest.Latitude, rest.Longitude)
	if !ok {
		return nil, fmt.Errorf("%w: latitude and longitude must be numbers", ErrValidation)
	}
	rest.Location = point
	rest.Phone = req.Phone

	if err := s.Repo.CreateRestaurant(ctx, rest); err != nil {
		l.Error("create_failed", "error", err)
		return nil, err
	}

	s.publish(ctx, rest.ID, map[string]any{
		"type":         "restaurant_created",
		"restaurantID": rest.ID,
		"name":         rest.Name,
	})
	s.index(ctx, rest)

	l.Info("create_success", "restaurant_id", rest.ID)
	return rest, nil
}

func (s *RestaurantService) Get(ctx context.Context, id uint) (*models.Restaurant, error) {
	rest, err := s.Repo.GetRestaurant(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: restaurant", ErrNotFound)
		}
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) List(ctx context.Context, q transport.ListRestaurantsQuery) ([]models.Restaurant, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.PriceRange != "" && !models.PriceRanges[q.PriceRange] {
		return nil, fmt.Errorf("%w: price_range must be one of $ $$ $$$ $$$$", ErrValidation)
	}
	return s.Repo.ListRestaurants(ctx, q)
}

// Update applies the provided fields. When either coordinate changes the
// geometry is re-derived from the merged coordinate pair.
func (s *RestaurantService) Update(ctx context.Context, id uint, req transport.UpdateRestaurantRequest) (*models.Restaurant, error) {
	l := logging.FromContext(ctx).With("svc", "restaurant.update")

	rest, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if n := len(*req.Name); n < 3 || n > 255 {
			return nil, fmt.Errorf("%w: name must be 3-255 characters", ErrValidation)
		}
		rest.Name = *req.Name
	}
	if req.Description != nil {
		rest.Description = *req.Description
	}
	if req.CuisineType != nil {
		if len(*req.CuisineType) > 100 {
			return nil, fmt.Errorf("%w: cuisine_type must be at most 100 characters", ErrValidation)
		}
		rest.CuisineType = *req.CuisineType
	}
	if req.Address != nil {
		if *req.Address == "" {
			return nil, fmt.Errorf("%w: address is required", ErrValidation)
		}
		rest.Address = *req.Address
	}
	if req.Rating != nil {
		if *req.Rating < 0 || *req.Rating > 5 {
			return nil, fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
		}
		rest.Rating = *req.Rating
	}
	if req.PriceRange != nil {
		if !models.PriceRanges[*req.PriceRange] {
			return nil, fmt.Errorf("%w: price_range must be one of $ $$ $$$ $$$$", ErrValidation)
		}
		rest.PriceRange = *req.PriceRange
	}
	if req.Phone != nil {
		if len(*req.Phone) > 20 {
			return nil, fmt.Errorf("%w: phone must be at most 20 characters", ErrValidation)
		}
		rest.Phone = *req.Phone
	}
	if req.IsOpen != nil {
		rest.IsOpen = *req.IsOpen
	}

	if req.Latitude != nil || req.Longitude != nil {
		if req.Latitude != nil {
			if !geo.ValidLat(*req.Latitude) {
				return nil, fmt.Errorf("%w: latitude must be between -90 and 90", ErrValidation)
			}
			rest.Latitude = *req.Latitude
		}
		if req.Longitude != nil {
			if !geo.ValidLng(*req.Longitude) {
				return nil, fmt.Errorf("%w: longitude must be between -180 and 180", ErrValidation)
			}
			rest.Longitude = *req.Longitude
		}
		if point, ok := geo.DerivePoint(rest.Latitude, rest.Longitude); ok {
			rest.Location = point
		}
	}

	if err := s.Repo.SaveRestaurant(ctx, rest); err != nil {
		l.Error("update_failed", "restaurant_id", id, "error", err)
		return nil, err
	}

	s.publish(ctx, rest.ID, map[string]any{
		"type":         "restaurant_updated",
		"restaurantID": rest.ID,
		"name":         rest.Name,
	})
	s.index(ctx, rest)

	return rest, nil
}

func (s *RestaurantService) Delete(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "restaurant.delete")

	if err := s.Repo.DeleteRestaurant(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: restaurant", ErrNotFound)
		}
		l.Error("delete_failed", "restaurant_id", id, "error", err)
		return err
	}

	s.publish(ctx, id, map[string]any{
		"type":         "restaurant_deleted",
		"restaurantID": id,
	})
	s.deindex(ctx, id)

	return nil
}

func (s *RestaurantService) UpdateCoverImage(ctx context.Context, id uint, path string) (*models.Restaurant, error) {
	rest, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rest.CoverImage = &path
	if err := s.Repo.SaveRestaurant(ctx, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) publish(ctx context.Context, id uint, event map[string]any) {
	if err := s.Events.Publish(ctx, events.TopicRestaurants, strconv.FormatUint(uint64(id), 10), event); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", events.TopicRestaurants, "error", err)
	}
}

func (s *RestaurantService) index(ctx context.Context, rest *models.Restaurant) {
	if err := s.Search.IndexRestaurant(ctx, rest); err != nil {
		logging.FromContext(ctx).Warn("index_restaurant_failed", "restaurant_id", rest.ID, "error", err)
	}
}

func (s *RestaurantService) deindex(ctx context.Context, id uint) {
	if err := s.Search.DeleteRestaurant(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("deindex_restaurant_failed", "restaurant_id", id, "error", err)
	}
}

func validateCreateRestaurant(req transport.CreateRestaurantRequest) error {
	if n := len(req.Name); n < 3 || n > 255 {
		return fmt.Errorf("%w: name must be 3-255 characters", ErrValidation)
	}
	if len(req.CuisineType) > 100 {
		return fmt.Errorf("%w: cuisine_type must be at most 100 characters", ErrValidation)
	}
	if req.Address == "" {
		return fmt.Errorf("%w: address is required", ErrValidation)
	}
	if req.Latitude == nil || !geo.ValidLat(*req.Latitude) {
		return fmt.Errorf("%w: latitude must be a number between -90 and 90", ErrValidation)
	}
	if req.Longitude == nil || !geo.ValidLng(*req.Longitude) {
		return fmt.Errorf("%w: longitude must be a number between -180 and 180", ErrValidation)
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	}
	if req.PriceRange != "" && !models.PriceRanges[req.PriceRange] {
		return fmt.Errorf("%w: price_range must be one of $ $$ $$$ $$$$", ErrValidation)
	}
	if len(req.Phone) > 20 {
		return fmt.Errorf("%w: phone must be at most 20 characters", ErrValidation)
	}
	return nil
}
