package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/armenxdev/restaurant-finder/internal/events"
	"github.com/armenxdev/restaurant-finder/internal/models"
	"github.com/armenxdev/restaurant-finder/internal/repo"
	"github.com/armenxdev/restaurant-finder/internal/transport"
	"github.com/armenxdev/restaurant-finder/pkg/logging"
)

type ProductService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

// Create verifies the parent restaurant exists before anything is written.
func (s *ProductService) Create(ctx context.Context, restaurantID uint, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.create")

	if _, err := s.Repo.GetRestaurant(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: restaurant", ErrNotFound)
		}
		return nil, err
	}

	if err := validateCreateProduct(req); err != nil {
		return nil, err
	}

	prod := &models.Product{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        *req.Price,
		Category:     req.Category,
		Images:       req.Images,
		IsAvailable:  true,
	}
	if req.IsAvailable != nil {
		prod.IsAvailable = *req.IsAvailable
	}

	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		l.Error("create_failed", "restaurant_id", restaurantID, "error", err)
		return nil, err
	}

	s.publish(ctx, prod.ID, map[string]any{
		"type":         "product_created",
		"productID":    prod.ID,
		"restaurantID": restaurantID,
		"name":         prod.Name,
	})

	l.Info("create_success", "product_id", prod.ID)
	return prod, nil
}

// ListByRestaurant returns the restaurant's products, newest first.
func (s *ProductService) ListByRestaurant(ctx context.Context, restaurantID uint) ([]models.Product, error) {
	if _, err := s.Repo.GetRestaurant(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: restaurant", ErrNotFound)
		}
		return nil, err
	}
	return s.Repo.ListProductsByRestaurant(ctx, restaurantID)
}

func (s *ProductService) Get(ctx context.Context, restaurantID, productID uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, restaurantID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	return prod, nil
}

func (s *ProductService) Update(ctx context.Context, restaurantID, productID uint, req transport.UpdateProductRequest) (*models.Product, error) {
	prod, err := s.Get(ctx, restaurantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if n := len(*req.Name); n < 2 || n > 255 {
			return nil, fmt.Errorf("%w: name must be 2-255 characters", ErrValidation)
		}
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be 0 or greater", ErrValidation)
		}
		prod.Price = *req.Price
	}
	if req.Category != nil {
		if len(*req.Category) > 100 {
			return nil, fmt.Errorf("%w: category must be at most 100 characters", ErrValidation)
		}
		prod.Category = *req.Category
	}
	if req.Images != nil {
		prod.Images = req.Images
	}
	if req.IsAvailable != nil {
		prod.IsAvailable = *req.IsAvailable
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, err
	}

	s.publish(ctx, prod.ID, map[string]any{
		"type":         "product_updated",
		"productID":    prod.ID,
		"restaurantID": restaurantID,
		"name":         prod.Name,
	})

	return prod, nil
}

func (s *ProductService) Delete(ctx context.Context, restaurantID, productID uint) error {
	if err := s.Repo.DeleteProduct(ctx, restaurantID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return err
	}

	s.publish(ctx, productID, map[string]any{
		"type":         "product_deleted",
		"productID":    productID,
		"restaurantID": restaurantID,
	})
	return nil
}

func (s *ProductService) publish(ctx context.Context, id uint, event map[string]any) {
	if err := s.Events.Publish(ctx, events.TopicProducts, strconv.FormatUint(uint64(id), 10), event); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", events.TopicProducts, "error", err)
	}
}

func validateCreateProduct(req transport.CreateProductRequest) error {
	if n := len(req.Name); n < 2 || n > 255 {
		return fmt.Errorf("%w: name must be 2-255 characters", ErrValidation)
	}
	if req.Price == nil || *req.Price < 0 {
		return fmt.Errorf("%w: price must be a number 0 or greater", ErrValidation)
	}
	if len(req.Category) > 100 {
		return fmt.Errorf("%w: category must be at most 100 characters", ErrValidation)
	}
	return nil
}
