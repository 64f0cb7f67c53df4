package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/armenxdev/restaurant-finder/internal/events"
	"github.com/armenxdev/restaurant-finder/internal/models"
	"github.com/armenxdev/restaurant-finder/internal/repo"
	"github.com/armenxdev/restaurant-finder/internal/transport"
	"github.com/armenxdev/restaurant-finder/pkg/hash"
	"github.com/armenxdev/restaurant-finder/pkg/logging"
)

type UserService struct {
	Repo      *repo.GormRepo
	Events    *events.Producer
	JWTSecret []byte
	TokenTTL  time.Duration
}

// Register creates a user with a bcrypt-hashed password. The pre-check names
// the colliding field; the unique indexes stay the final authority under
// concurrent registration.
func (s *UserService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.register")

	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	existing, err := s.Repo.FindUserByUsernameOrEmail(ctx, req.Username, req.Email)
	switch {
	case err == nil:
		if existing.Username == req.Username {
			return nil, fmt.Errorf("%w: this username is already taken", ErrConflict)
		}
		return nil, fmt.Errorf("%w: this email is already taken", ErrConflict)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		l.Error("register_failed", "reason", "uniqueness lookup", "error", err)
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the check-then-create race; the constraint is the guard.
			return nil, fmt.Errorf("%w: username or email is already taken", ErrConflict)
		}
		l.Error("register_failed", "error", err)
		return nil, err
	}

	s.publish(ctx, user.ID, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("register_success", "user_id", user.ID)
	return user, nil
}

// Login verifies the password against the stored bcrypt hash and issues an
// HS256 bearer token with the user id as subject.
func (s *UserService) Login(ctx context.Context, req transport.LoginRequest) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.login")

	user, err := s.Repo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
		l.Error("login_failed", "error", err)
		return "", nil, err
	}

	if !hash.CheckPassword(user.Password, req.Password) {
		return "", nil, fmt.Errorf("%w: invalid password", ErrInvalidCredentials)
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return "", nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return token, user, nil
}

func (s *UserService) Profile(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfilePicture(ctx context.Context, id uint, path string) error {
	if err := s.Repo.UpdateUserPicture(ctx, id, path); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user", ErrNotFound)
		}
		return err
	}

	s.publish(ctx, id, map[string]any{
		"type":   "user_picture_updated",
		"userID": id,
	})
	return nil
}

func (s *UserService) publish(ctx context.Context, userID uint, event map[string]any) {
	if err := s.Events.Publish(ctx, events.TopicUsers, strconv.FormatUint(uint64(userID), 10), event); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", events.TopicUsers, "error", err)
	}
}

func validateRegistration(req transport.RegisterRequest) error {
	if n := len(req.Username); n < 3 || n > 100 {
		return fmt.Errorf("%w: username must be 3-100 characters", ErrValidation)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil || len(req.Email) > 255 {
		return fmt.Errorf("%w: email is not valid", ErrValidation)
	}
	if n := len(req.Password); n < 6 || n > 255 {
		return fmt.Errorf("%w: password must be 6-255 characters", ErrValidation)
	}
	return nil
}
