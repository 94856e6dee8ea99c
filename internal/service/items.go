package service

import (
	"context"
	"errors"
	"time"

	"shoplist-service/internal/model"
	"shoplist-service/pkg/apperr"
	"shoplist-service/pkg/logger"
	"shoplist-service/prometheus"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateItemInput carries the fields of a new catalog item.
type CreateItemInput struct {
	Name          string
	QuantityUnits *string
}

// UpdateItemInput is a partial update; nil fields are left untouched.
type UpdateItemInput struct {
	ID            uuid.UUID
	Name          *string
	QuantityUnits *string
}

// ItemsService persists and queries catalog items. Every query is scoped
// to the owning user; a request for another owner's item is
// indistinguishable from a nonexistent one.
type ItemsService struct {
	db *gorm.DB
}

func NewItemsService(db *gorm.DB) *ItemsService {
	return &ItemsService{db: db}
}

// Create persists a new item owned by the given user.
func (s *ItemsService) Create(ctx context.Context, input CreateItemInput, owner *model.User) (*model.Item, error) {
	item := model.Item{
		Name:          input.Name,
		QuantityUnits: input.QuantityUnits,
		UserID:        owner.ID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := s.db.WithContext(ctx).Create(&item); result.Error != nil {
		logger.FromContext(ctx).Error("Failed to create item", zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return &item, nil
}

// FindAll returns the owner's items with optional pagination and
// case-insensitive substring search on the name.
func (s *ItemsService) FindAll(ctx context.Context, owner *model.User, pagination PaginationArgs, search SearchArgs) ([]model.Item, error) {
	query := s.db.WithContext(ctx).Model(&model.Item{}).Where("user_id = ?", owner.ID)
	query = applyPagination(query, pagination)
	query = applySearch(query, "name", search)

	var items []model.Item
	defer prometheus.TrackDBOperation("query")(time.Now())
	if result := query.Find(&items); result.Error != nil {
		logger.FromContext(ctx).Error("Failed to list items", zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return items, nil
}

// FindOne returns the item matching the (id, owner) pair. Not-found covers
// both a missing row and somebody else's row.
func (s *ItemsService) FindOne(ctx context.Context, id uuid.UUID, owner *model.User) (*model.Item, error) {
	var item model.Item
	defer prometheus.TrackDBOperation("query")(time.Now())
	result := s.db.WithContext(ctx).First(&item, "id = ? AND user_id = ?", id, owner.ID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("item with id " + id.String() + " not found")
		}
		logger.FromContext(ctx).Error("Failed to load item", zap.Error(result.Error))
		return nil, apperr.Internal()
	}
	return &item, nil
}

// FindByID loads an item without owner scoping. Reserved for relation
// resolution where ownership was already established on the parent row;
// every client-facing lookup goes through FindOne.
func (s *ItemsService) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	defer prometheus.TrackDBOperation("query")(time.Now())
	result := s.db.WithContext(ctx).First(&item, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("item with id " + id.String() + " not found")
		}
		logger.FromContext(ctx).Error("Failed to load item", zap.Error(result.Error))
		return nil, apperr.Internal()
	}
	return &item, nil
}

// Update re-validates ownership and applies a partial merge.
func (s *ItemsService) Update(ctx context.Context, input UpdateItemInput, owner *model.User) (*model.Item, error) {
	item, err := s.FindOne(ctx, input.ID, owner)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.QuantityUnits != nil {
		item.QuantityUnits = input.QuantityUnits
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := s.db.WithContext(ctx).Save(item); result.Error != nil {
		logger.FromContext(ctx).Error("Failed to update item",
			zap.String("item_id", input.ID.String()),
			zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return item, nil
}

// Remove deletes the ownership-checked item and returns a value shaped
// like the deleted row, id included, so callers can correlate the deletion.
func (s *ItemsService) Remove(ctx context.Context, id uuid.UUID, owner *model.User) (*model.Item, error) {
	item, err := s.FindOne(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := s.db.WithContext(ctx).Delete(&model.Item{}, "id = ?", id); result.Error != nil {
		logger.FromContext(ctx).Error("Failed to delete item",
			zap.String("item_id", id.String()),
			zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return item, nil
}

// CountByUser returns the total number of items the user owns.
func (s *ItemsService) CountByUser(ctx context.Context, owner *model.User) (int64, error) {
	var count int64
	defer prometheus.TrackDBOperation("query")(time.Now())
	result := s.db.WithContext(ctx).Model(&model.Item{}).Where("user_id = ?", owner.ID).Count(&count)
	if result.Error != nil {
		logger.FromContext(ctx).Error("Failed to count items", zap.Error(result.Error))
		return 0, apperr.Internal()
	}
	return count, nil
}
