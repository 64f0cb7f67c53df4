package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/armenxdev/restaurant-finder/internal/search"
	"github.com/armenxdev/restaurant-finder/internal/service"
	"github.com/armenxdev/restaurant-finder/internal/transport"
	"github.com/armenxdev/restaurant-finder/internal/upload"
	"github.com/armenxdev/restaurant-finder/internal/util"
	"github.com/armenxdev/restaurant-finder/pkg/logging"
)

type RestaurantHTTP struct {
	Svc     *service.RestaurantService
	Search  *search.Client
	Uploads *upload.Store
}

func (h *RestaurantHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "restaurant.create")

	var req transport.CreateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rest, err := h.Svc.Create(ctx, req)
	if err != nil {
		l.Warn("create_failed", "error", err)
		return httpErr(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Restaurant created successfully",
		"data":    rest,
	})
}

func (h *RestaurantHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	q := transport.ListRestaurantsQuery{
		Page:        util.ParseIntDefault(c.QueryParam("page"), 1),
		Limit:       util.ParseIntDefault(c.QueryParam("limit"), 10),
		CuisineType: c.QueryParam("cuisineType"),
		PriceRange:  c.QueryParam("priceRange"),
	}

	items, err := h.Svc.List(ctx, q)
	if err != nil {
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"page":    q.Page,
		"limit":   q.Limit,
		"count":   len(items),
		"data":    items,
	})
}

func (h *RestaurantHTTP) GetByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	rest, err := h.Svc.Get(ctx, id)
	if err != nil {
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    rest,
	})
}

func (h *RestaurantHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "restaurant.update")

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	var req transport.UpdateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rest, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		l.Warn("update_failed", "restaurant_id", id, "error", err)
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Restaurant updated successfully",
		"data":    rest,
	})
}

func (h *RestaurantHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Restaurant deleted successfully",
	})
}

// Nearby rejects a non-numeric latitude or longitude before the search runs.
func (h *RestaurantHTTP) Nearby(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "restaurant.nearby")

	lat, err := requireFloat(c.QueryParam("latitude"), "latitude")
	if err != nil {
		l.Warn("nearby_failed", "status", 400, "error", err)
		return httpErr(err)
	}
	lng, err := requireFloat(c.QueryParam("longitude"), "longitude")
	if err != nil {
		l.Warn("nearby_failed", "status", 400, "error", err)
		return httpErr(err)
	}

	q := transport.NearbyQuery{
		Latitude:    lat,
		Longitude:   lng,
		CuisineType: c.QueryParam("cuisineType"),
	}

	if raw := c.QueryParam("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return httpErr(fmt.Errorf("%w: radius must be a number", service.ErrValidation))
		}
		q.Radius = &radius
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return httpErr(fmt.Errorf("%w: limit must be an integer", service.ErrValidation))
		}
		q.Limit = &limit
	}
	if raw := c.QueryParam("minRating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return httpErr(fmt.Errorf("%w: minRating must be a number", service.ErrValidation))
		}
		q.MinRating = &minRating
	}

	res, err := h.Svc.Nearby(ctx, q)
	if err != nil {
		l.Warn("nearby_failed", "error", err)
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, transport.NearbyResponse{
		Success: true,
		Center:  res.Center,
		Radius:  res.Radius,
		Count:   len(res.Items),
		Data:    res.Items,
	})
}

func (h *RestaurantHTTP) SearchText(c echo.Context) error {
	ctx := c.Request().Context()

	if h.Search == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), 0)
	from, size := util.Calculate(page, size)

	total, items, err := h.Search.Search(ctx, q, from, size)
	if err != nil {
		logging.FromContext(ctx).Error("search_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"total":   total,
		"count":   len(items),
		"data":    items,
	})
}

func (h *RestaurantHTTP) UploadCover(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	fh, err := c.FormFile("cover")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cover file is required")
	}

	path, err := h.Uploads.Save(fh, "restaurants", upload.MaxImageSize)
	if err != nil {
		return httpErr(err)
	}

	rest, err := h.Svc.UpdateCoverImage(ctx, id, path)
	if err != nil {
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    rest,
	})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

func requireFloat(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", service.ErrValidation, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", service.ErrValidation, name)
	}
	return v, nil
}
