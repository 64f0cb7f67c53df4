package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/armenxdev/restaurant-finder/internal/models"
)

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) ListProductsByRestaurant(ctx context.Context, restaurantID uint) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetProduct is scoped to the owning restaurant.
func (r *GormRepo) GetProduct(ctx context.Context, restaurantID, productID uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", productID, restaurantID).
		First(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, restaurantID, productID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", productID, restaurantID).
		Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
