package service

import (
	"context"
	"testing"

	"shoplist-service/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListsCreateAndFindAll(t *testing.T) {
	db := newTestDB(t)
	lists := NewListsService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "alice@example.com")

	created, err := lists.Create(ctx, CreateListInput{Name: "Groceries"}, owner)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, created.UserID)

	all, err := lists.FindAll(ctx, owner, PaginationArgs{}, SearchArgs{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Groceries", all[0].Name)
}

func TestListsOwnerScoping(t *testing.T) {
	db := newTestDB(t)
	lists := NewListsService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	created, err := lists.Create(ctx, CreateListInput{Name: "Groceries"}, alice)
	require.NoError(t, err)

	_, err = lists.FindOne(ctx, created.ID, bob)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	_, err = lists.Remove(ctx, created.ID, bob)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	kept, err := lists.FindOne(ctx, created.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", kept.Name)
}

func TestListsUpdateAndRemove(t *testing.T) {
	db := newTestDB(t)
	lists := NewListsService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "alice@example.com")
	created, err := lists.Create(ctx, CreateListInput{Name: "Groceries"}, owner)
	require.NoError(t, err)

	name := "Weekly groceries"
	updated, err := lists.Update(ctx, UpdateListInput{ID: created.ID, Name: &name}, owner)
	require.NoError(t, err)
	assert.Equal(t, "Weekly groceries", updated.Name)

	removed, err := lists.Remove(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = lists.FindOne(ctx, created.ID, owner)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestListsSearch(t *testing.T) {
	db := newTestDB(t)
	lists := NewListsService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "alice@example.com")
	for _, name := range []string{"Groceries", "Hardware", "Party groceries"} {
		_, err := lists.Create(ctx, CreateListInput{Name: name}, owner)
		require.NoError(t, err)
	}

	found, err := lists.FindAll(ctx, owner, PaginationArgs{}, SearchArgs{Search: strPtr("GROC")})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}
