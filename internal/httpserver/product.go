package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/armenxdev/restaurant-finder/internal/service"
	"github.com/armenxdev/restaurant-finder/internal/transport"
	"github.com/armenxdev/restaurant-finder/pkg/logging"
)

type ProductHTTP struct {
	Svc *service.ProductService
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	restaurantID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.Create(ctx, restaurantID, req)
	if err != nil {
		l.Warn("create_failed", "restaurant_id", restaurantID, "error", err)
		return httpErr(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Product created successfully",
		"data":    prod,
	})
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	items, err := h.Svc.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, productID, err := parseProductPath(c)
	if err != nil {
		return err
	}

	prod, err := h.Svc.Get(ctx, restaurantID, productID)
	if err != nil {
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    prod,
	})
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	restaurantID, productID, err := parseProductPath(c)
	if err != nil {
		return err
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.Update(ctx, restaurantID, productID, req)
	if err != nil {
		l.Warn("update_failed", "product_id", productID, "error", err)
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    prod,
	})
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, productID, err := parseProductPath(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, restaurantID, productID); err != nil {
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Product removed successfully",
	})
}

func parseProductPath(c echo.Context) (restaurantID, productID uint, err error) {
	restaurantID, err = parseID(c.Param("id"))
	if err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}
	productID, err = parseID(c.Param("productId"))
	if err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return restaurantID, productID, nil
}
