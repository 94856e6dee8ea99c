package service

import (
	"context"
	"testing"

	"shoplist-service/internal/model"
	"shoplist-service/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUsersCreate(t *testing.T) {
	db := newTestDB(t)
	users := NewUsersService(db)
	ctx := context.Background()

	user, err := users.Create(ctx, SignupInput{
		FullName: "Alice Johnson",
		Email:    "alice@example.com",
		Password: "123456",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, []string{model.RoleUser}, user.Roles)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("123456")))
}

func TestUsersCreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUsersService(db)
	ctx := context.Background()

	input := SignupInput{FullName: "Alice Johnson", Email: "alice@example.com", Password: "123456"}
	_, err := users.Create(ctx, input)
	require.NoError(t, err)

	_, err = users.Create(ctx, input)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "email", appErr.Field)
}

func TestUsersFindAllRoleFilter(t *testing.T) {
	db := newTestDB(t)
	users := NewUsersService(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin@example.com")
	createTestUser(t, db, "plain@example.com")

	_, err := users.Update(ctx, UpdateUserInput{
		ID:    admin.ID,
		Roles: []string{model.RoleAdmin, model.RoleUser},
	}, admin)
	require.NoError(t, err)

	admins, err := users.FindAll(ctx, []string{model.RoleAdmin}, PaginationArgs{}, SearchArgs{})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@example.com", admins[0].Email)

	all, err := users.FindAll(ctx, nil, PaginationArgs{}, SearchArgs{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUsersUpdateRecordsUpdater(t *testing.T) {
	db := newTestDB(t)
	users := NewUsersService(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin@example.com")
	target := createTestUser(t, db, "target@example.com")

	name := "Renamed User"
	updated, err := users.Update(ctx, UpdateUserInput{ID: target.ID, FullName: &name}, admin)
	require.NoError(t, err)

	assert.Equal(t, "Renamed User", updated.FullName)
	require.NotNil(t, updated.LastUpdatedByID)
	assert.Equal(t, admin.ID, *updated.LastUpdatedByID)
	assert.Equal(t, target.Email, updated.Email)
}

func TestUsersUpdateRehashesPassword(t *testing.T) {
	db := newTestDB(t)
	users := NewUsersService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")

	password := "newsecret"
	updated, err := users.Update(ctx, UpdateUserInput{ID: user.ID, Password: &password}, user)
	require.NoError(t, err)

	assert.NotEqual(t, password, updated.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(password)))
}

func TestUsersUpdateUnknownID(t *testing.T) {
	db := newTestDB(t)
	users := NewUsersService(db)

	admin := createTestUser(t, db, "admin@example.com")

	name := "Nobody"
	_, err := users.Update(context.Background(), UpdateUserInput{ID: uuid.New(), FullName: &name}, admin)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestUsersBlock(t *testing.T) {
	db := newTestDB(t)
	users := NewUsersService(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin@example.com")
	target := createTestUser(t, db, "target@example.com")

	blocked, err := users.Block(ctx, target.ID, admin)
	require.NoError(t, err)

	assert.False(t, blocked.IsActive)
	require.NotNil(t, blocked.LastUpdatedByID)
	assert.Equal(t, admin.ID, *blocked.LastUpdatedByID)

	// The row survives; only the flag flips.
	reloaded, err := users.FindOneByID(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
}
