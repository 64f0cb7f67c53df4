package service_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/armenxdev/restaurant-finder/internal/models"
	"github.com/armenxdev/restaurant-finder/internal/service"
	"github.com/armenxdev/restaurant-finder/internal/transport"
	"github.com/armenxdev/restaurant-finder/pkg/hash"
)

func registerRequest(username, email string) transport.RegisterRequest {
	return transport.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "Secret123",
	}
}

func TestUserRegister_HashesPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.Users.Register(ctx, registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	assert.NotEqual(t, "Secret123", user.Password)
	assert.True(t, hash.CheckPassword(user.Password, "Secret123"))
}

func TestUserRegister_DuplicateUsernameNamesField(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Users.Register(ctx, registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = env.Users.Register(ctx, registerRequest("alice", "other@example.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrConflict)
	assert.Contains(t, err.Error(), "username")
}

func TestUserRegister_DuplicateEmailNamesField(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Users.Register(ctx, registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = env.Users.Register(ctx, registerRequest("bob", "alice@example.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrConflict)
	assert.Contains(t, err.Error(), "email")
}

func TestUserStore_DuplicateInsertSurfacesAsDuplicatedKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// The unique indexes are the final authority when two registrations race
	// past the pre-check; the store must report that as a duplicated key.
	first := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, env.Store.CreateUser(ctx, first))

	dup := &models.User{Username: "alice", Email: "other@example.com", Password: "x"}
	err := env.Store.CreateUser(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRegister_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, tc := range []struct {
		name string
		req  transport.RegisterRequest
	}{
		{"short username", registerRequest("ab", "a@example.com")},
		{"bad email", registerRequest("alice", "not-an-email")},
		{"short password", transport.RegisterRequest{Username: "alice", Email: "a@example.com", Password: "abc"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.Users.Register(ctx, tc.req)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

func TestUserLogin_IssuesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.Users.Register(ctx, registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)

	token, loggedIn, err := env.Users.Login(ctx, transport.LoginRequest{
		Email:    "alice@example.com",
		Password: "Secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte("test-jwt-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, strconv.FormatUint(uint64(user.ID), 10), claims.Subject)
}

func TestUserLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Users.Register(ctx, registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)

	_, _, err = env.Users.Login(ctx, transport.LoginRequest{
		Email:    "alice@example.com",
		Password: "WrongPassword",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestUserLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.Users.Login(context.Background(), transport.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Secret123",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUserProfileAndPicture(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.Users.Register(ctx, registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)

	require.NoError(t, env.Users.UpdateProfilePicture(ctx, user.ID, "uploads/profiles/x.png"))

	got, err := env.Users.Profile(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ProfilePicture)
	assert.Equal(t, "uploads/profiles/x.png", *got.ProfilePicture)

	_, err = env.Users.Profile(ctx, user.ID+100)
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = env.Users.UpdateProfilePicture(ctx, user.ID+100, "uploads/profiles/y.png")
	assert.ErrorIs(t, err, service.ErrNotFound)
}
