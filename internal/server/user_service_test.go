package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService() (*UserService, *memStore) {
	store := newMemStore()
	return NewUserService(store, store, &config.PasswordConfig{BcryptCost: 10, Pepper: "pepper"}), store
}

func TestConvertDBUserToTypesUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		now := time.Now()
		dbUser := &db.User{
			ID:           uuid.New(),
			Name:         "Asha",
			Email:        "asha@example.com",
			PasswordHash: "hashed-password",
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		typesUser := convertDBUserToTypesUser(dbUser)
		require.NotNil(t, typesUser)
		assert.Equal(t, types.User{ID: dbUser.ID, Email: dbUser.Email, Name: dbUser.Name}, *typesUser)
	})

	t.Run("nil user", func(t *testing.T) {
		assert.Nil(t, convertDBUserToTypesUser(nil))
	})
}

func TestUserService_Register(t *testing.T) {
	svc, store := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.RegisterRequest{Email: "asha@example.com", Password: "pw-123456", Name: "Asha"})
	require.NoError(t, err)

	stored, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "pw-123456", stored.PasswordHash)
	assert.True(t, svc.passwordConfig.VerifyPassword("pw-123456", stored.PasswordHash))

	_, err = svc.Register(ctx, &types.RegisterRequest{Email: "asha@example.com", Password: "x", Name: "Dup"})
	var taken *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &taken)
}

// racingStore reports every email as free, so CreateUser reports the conflict.
type racingStore struct{ *memStore }

func (racingStore) CheckEmailExists(context.Context, string) (bool, error) { return false, nil }

func TestUserService_Register_ConstraintRace(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(racingStore{store}, store, &config.PasswordConfig{BcryptCost: 10})
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.RegisterRequest{Email: "asha@example.com", Password: "pw", Name: "Asha"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, &types.RegisterRequest{Email: "asha@example.com", Password: "pw", Name: "Asha"})
	var taken *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &taken)
}

func TestUserService_Login(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()
	created, err := svc.Register(ctx, &types.RegisterRequest{Email: "asha@example.com", Password: "pw-123456", Name: "Asha"})
	require.NoError(t, err)

	user, err := svc.Login(ctx, &types.LoginRequest{Email: "asha@example.com", Password: "pw-123456"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	var badCreds *ErrInvalidCredentials
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorAs(t, err, &badCreds)
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "missing@example.com", Password: "pw-123456"})
	assert.ErrorAs(t, err, &badCreds)
}

func TestUserService_Me(t *testing.T) {
	svc, store := newTestUserService()
	ctx := context.Background()
	created, err := svc.Register(ctx, &types.RegisterRequest{Email: "asha@example.com", Password: "pw", Name: "Asha"})
	require.NoError(t, err)

	me, err := svc.Me(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, me.ID)
	assert.Nil(t, me.Profile)

	_, err = store.UpsertProfile(ctx, created.ID, &types.UpsertProfileRequest{Skills: []string{"Go"}})
	require.NoError(t, err)
	me, err = svc.Me(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, me.Profile)
	assert.Equal(t, []string{"Go"}, me.Profile.Skills)

	var noUser *ErrUserNotFound
	_, err = svc.Me(ctx, uuid.New())
	assert.ErrorAs(t, err, &noUser)
}
