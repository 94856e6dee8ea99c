package service

import (
	"context"
	"testing"

	"shoplist-service/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemsCreateAndFindOne(t *testing.T) {
	db := newTestDB(t)
	items := NewItemsService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "alice@example.com")

	units := "l"
	created, err := items.Create(ctx, CreateItemInput{Name: "Milk", QuantityUnits: &units}, owner)
	require.NoError(t, err)

	found, err := items.FindOne(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Milk", found.Name)
	require.NotNil(t, found.QuantityUnits)
	assert.Equal(t, "l", *found.QuantityUnits)
	assert.Equal(t, owner.ID, found.UserID)
}

func TestItemsOwnerScoping(t *testing.T) {
	db := newTestDB(t)
	items := NewItemsService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	created, err := items.Create(ctx, CreateItemInput{Name: "Milk"}, alice)
	require.NoError(t, err)

	// Another owner's item reads as nonexistent on every operation.
	_, err = items.FindOne(ctx, created.ID, bob)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	name := "Oat milk"
	_, err = items.Update(ctx, UpdateItemInput{ID: created.ID, Name: &name}, bob)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	_, err = items.Remove(ctx, created.ID, bob)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	bobItems, err := items.FindAll(ctx, bob, PaginationArgs{}, SearchArgs{})
	require.NoError(t, err)
	assert.Empty(t, bobItems)

	// The row is untouched for its real owner.
	kept, err := items.FindOne(ctx, created.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "Milk", kept.Name)
}

func TestItemsFindAllPagination(t *testing.T) {
	db := newTestDB(t)
	items := NewItemsService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "alice@example.com")
	for _, name := range []string{"Milk", "Eggs", "Bread", "Rice", "Butter"} {
		_, err := items.Create(ctx, CreateItemInput{Name: name}, owner)
		require.NoError(t, err)
	}

	all, err := items.FindAll(ctx, owner, PaginationArgs{}, SearchArgs{})
	require.NoError(t, err)
	require.Len(t, all, 5)

	// A page skips exactly the first offset rows of the unpaginated order.
	limit, offset := 2, 1
	page, err := items.FindAll(ctx, owner, PaginationArgs{Limit: &limit, Offset: &offset}, SearchArgs{})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, all[1].ID, page[0].ID)
	assert.Equal(t, all[2].ID, page[1].ID)

	offset = 4
	tail, err := items.FindAll(ctx, owner, PaginationArgs{Limit: &limit, Offset: &offset}, SearchArgs{})
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, all[4].ID, tail[0].ID)
}

func TestItemsFindAllSearch(t *testing.T) {
	db := newTestDB(t)
	items := NewItemsService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "alice@example.com")
	for _, name := range []string{"Rice", "Bricks", "Milk"} {
		_, err := items.Create(ctx, CreateItemInput{Name: name}, owner)
		require.NoError(t, err)
	}

	// Case-insensitive substring match.
	found, err := items.FindAll(ctx, owner, PaginationArgs{}, SearchArgs{Search: strPtr("ric")})
	require.NoError(t, err)

	names := make([]string, 0, len(found))
	for _, item := range found {
		names = append(names, item.Name)
	}
	assert.ElementsMatch(t, []string{"Rice", "Bricks"}, names)
}

func TestItemsUpdatePartialMerge(t *testing.T) {
	db := newTestDB(t)
	items := NewItemsService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "alice@example.com")
	units := "l"
	created, err := items.Create(ctx, CreateItemInput{Name: "Milk", QuantityUnits: &units}, owner)
	require.NoError(t, err)

	name := "Oat milk"
	updated, err := items.Update(ctx, UpdateItemInput{ID: created.ID, Name: &name}, owner)
	require.NoError(t, err)

	assert.Equal(t, "Oat milk", updated.Name)
	require.NotNil(t, updated.QuantityUnits)
	assert.Equal(t, "l", *updated.QuantityUnits)

	// Replaying the same update changes nothing further.
	again, err := items.Update(ctx, UpdateItemInput{ID: created.ID, Name: &name}, owner)
	require.NoError(t, err)
	assert.Equal(t, updated.Name, again.Name)
}

func TestItemsRemove(t *testing.T) {
	db := newTestDB(t)
	items := NewItemsService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "alice@example.com")
	created, err := items.Create(ctx, CreateItemInput{Name: "Milk"}, owner)
	require.NoError(t, err)

	removed, err := items.Remove(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)
	assert.Equal(t, "Milk", removed.Name)

	_, err = items.FindOne(ctx, created.ID, owner)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	count, err := items.CountByUser(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, count)
}
