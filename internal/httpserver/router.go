package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/armenxdev/restaurant-finder/internal/middleware"
)

type Deps struct {
	UserHandler       *UserHTTP
	RestaurantHandler *RestaurantHTTP
	ProductHandler    *ProductHTTP
	JWTSecret         []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	auth := middleware.NewAuth(d.JWTSecret)

	v1 := e.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("/register", d.UserHandler.Register)
	users.POST("/login", d.UserHandler.Login)
	users.GET("/profile", d.UserHandler.Profile, auth.RequireAuth)
	users.PATCH("/me/picture", d.UserHandler.UpdatePicture, auth.RequireAuth)

	restaurants := v1.Group("/restaurants")
	restaurants.GET("", d.RestaurantHandler.List)
	restaurants.GET("/nearby", d.RestaurantHandler.Nearby)
	restaurants.GET("/search", d.RestaurantHandler.SearchText)
	restaurants.GET("/:id", d.RestaurantHandler.GetByID)
	restaurants.POST("", d.RestaurantHandler.Create, auth.RequireAuth)
	restaurants.PUT("/:id", d.RestaurantHandler.Update, auth.RequireAuth)
	restaurants.DELETE("/:id", d.RestaurantHandler.Delete, auth.RequireAuth)
	restaurants.POST("/:id/cover", d.RestaurantHandler.UploadCover, auth.RequireAuth)

	restaurants.GET("/:id/products", d.ProductHandler.List)
	restaurants.GET("/:id/products/:productId", d.ProductHandler.Get)
	restaurants.POST("/:id/products", d.ProductHandler.Create, auth.RequireAuth)
	restaurants.PUT("/:id/products/:productId", d.ProductHandler.Update, auth.RequireAuth)
	restaurants.DELETE("/:id/products/:productId", d.ProductHandler.Delete, auth.RequireAuth)
}
