package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/armenxdev/restaurant-finder/internal/geo"
	"github.com/armenxdev/restaurant-finder/internal/models"
	"github.com/armenxdev/restaurant-finder/internal/transport"
)

func (r *GormRepo) CreateRestaurant(ctx context.Context, rest *models.Restaurant) error {
	return r.DB.WithContext(ctx).Create(rest).Error
}

func (r *GormRepo) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	var rest models.Restaurant
	if err := r.DB.WithContext(ctx).First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *GormRepo) ListRestaurants(ctx context.Context, q transport.ListRestaurantsQuery) ([]models.Restaurant, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Restaurant{})
	if q.CuisineType != "" {
		tx = tx.Where("cuisine_type = ?", q.CuisineType)
	}
	if q.PriceRange != "" {
		tx = tx.Where("price_range = ?", q.PriceRange)
	}

	offset := (q.Page - 1) * q.Limit
	var items []models.Restaurant
	if err := tx.Order("created_at DESC").Offset(offset).Limit(q.Limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SaveRestaurant(ctx context.Context, rest *models.Restaurant) error {
	return r.DB.WithContext(ctx).Save(rest).Error
}

// DeleteRestaurant removes the restaurant and its products in one
// transaction.
func (r *GormRepo) DeleteRestaurant(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Restaurant{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// OpenRestaurantsWithin returns open restaurants inside the bounding box,
// optionally filtered by cuisine and minimum rating.
func (r *GormRepo) OpenRestaurantsWithin(ctx context.Context, box geo.BoundingBox, cuisineType string, minRating *float64) ([]models.Restaurant, error) {
	tx := r.DB.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("is_open = ?", true).
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat)
	if box.LngApplies {
		tx = tx.Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	}
	if cuisineType != "" {
		tx = tx.Where("cuisine_type = ?", cuisineType)
	}
	if minRating != nil {
		tx = tx.Where("rating >= ?", *minRating)
	}

	var items []models.Restaurant
	if err := tx.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
