package repo

import "gorm.io/gorm"

// GormRepo is the persistence layer, constructed in main and injected.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
