package service_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/armenxdev/restaurant-finder/internal/models"
	"github.com/armenxdev/restaurant-finder/internal/repo"
	"github.com/armenxdev/restaurant-finder/internal/service"
	"github.com/armenxdev/restaurant-finder/internal/transport"
)

type testEnv struct {
	DB          *gorm.DB
	Store       *repo.GormRepo
	Users       *service.UserService
	Restaurants *service.RestaurantService
	Products    *service.ProductService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Restaurant{}, &models.Product{}))

	store := repo.New(db)
	return &testEnv{
		DB:    db,
		Store: store,
		Users: &service.UserService{
			Repo:      store,
			JWTSecret: []byte("test-jwt-secret"),
			TokenTTL:  time.Hour,
		},
		Restaurants: &service.RestaurantService{Repo: store},
		Products:    &service.ProductService{Repo: store},
	}
}

func f64(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func str(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func createRestaurantRequest(name string, lat, lng float64) transport.CreateRestaurantRequest {
	return transport.CreateRestaurantRequest{
		Name:      name,
		Address:   "123 Main St",
		Latitude:  f64(lat),
		Longitude: f64(lng),
	}
}
