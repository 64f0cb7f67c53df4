package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/armenxdev/restaurant-finder/internal/middleware"
	"github.com/armenxdev/restaurant-finder/internal/service"
	"github.com/armenxdev/restaurant-finder/internal/transport"
	"github.com/armenxdev/restaurant-finder/internal/upload"
	"github.com/armenxdev/restaurant-finder/pkg/logging"
)

type UserHTTP struct {
	Svc     *service.UserService
	Uploads *upload.Store
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		l.Warn("register_failed", "error", err)
		return httpErr(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"user":    user,
	})
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, user, err := h.Svc.Login(ctx, req)
	if err != nil {
		l.Warn("login_failed", "error", err)
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		Success: true,
		Token:   token,
		User: transport.UserSummary{
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (h *UserHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.Svc.Profile(ctx, middleware.UserID(c))
	if err != nil {
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    user,
	})
}

func (h *UserHTTP) UpdatePicture(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_picture")

	fh, err := c.FormFile("picture")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "picture file is required")
	}

	path, err := h.Uploads.Save(fh, "profiles", upload.MaxProfileSize)
	if err != nil {
		l.Warn("update_picture_failed", "error", err)
		return httpErr(err)
	}

	if err := h.Svc.UpdateProfilePicture(ctx, middleware.UserID(c), path); err != nil {
		return httpErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":         true,
		"profile_picture": path,
	})
}
