package services_test

import (
	"context"
	"testing"
	"time"

	"tasktracker/internal/models"
	"tasktracker/internal/services"
	"tasktracker/internal/testutil"
	"tasktracker/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUserService(t *testing.T) (*services.UserService, *auth.LocalJWTAuth, *testutil.MockUserRepository) {
	t.Helper()
	jwtAuth, err := auth.NewLocalJWTAuth("test-secret", time.Hour)
	require.NoError(t, err)
	users := testutil.NewMockUserRepository()
	return services.NewUserService(users, jwtAuth), jwtAuth, users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, jwtAuth, users := newUserService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, models.Credentials{Username: " carol ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "carol", resp.User.Username)

	claims, err := jwtAuth.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	stored, err := users.GetByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.PasswordHash)

	login, err := svc.Login(ctx, models.Credentials{Username: "carol", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterErrors(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.Credentials{Username: "", Password: "x"})
	assert.ErrorIs(t, err, services.ErrCredentialsRequired)
	_, err = svc.Register(ctx, models.Credentials{Username: "dave", Password: ""})
	assert.ErrorIs(t, err, services.ErrCredentialsRequired)

	_, err = svc.Register(ctx, models.Credentials{Username: "dave", Password: "x"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, models.Credentials{Username: "dave", Password: "y"})
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, models.Credentials{Username: "erin", Password: "right"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.Credentials{Username: "erin", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = svc.Login(ctx, models.Credentials{Username: "nobody", Password: "right"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Equal(t, services.KindUnauthorized, services.KindOf(err))
}

func TestGetByIDAndList(t *testing.T) {
	svc, _, users := newUserService(t)
	ctx := context.Background()
	users.Add("zed")
	amy := users.Add("amy")

	got, err := svc.GetByID(ctx, amy.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "amy", got.Username)

	_, err = svc.GetByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	_, err = svc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "amy", list[0].Username)
	assert.Equal(t, "zed", list[1].Username)
}
