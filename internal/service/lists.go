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

// CreateListInput carries the fields of a new list.
type CreateListInput struct {
	Name string
}

// UpdateListInput is a partial update; nil fields are left untouched.
type UpdateListInput struct {
	ID   uuid.UUID
	Name *string
}

// ListsService persists and queries lists, owner-scoped the same way as
// ItemsService.
type ListsService struct {
	db *gorm.DB
}

func NewListsService(db *gorm.DB) *ListsService {
	return &ListsService{db: db}
}

// Create persists a new list owned by the given user.
func (s *ListsService) Create(ctx context.Context, input CreateListInput, owner *model.User) (*model.List, error) {
	list := model.List{
		Name:   input.Name,
		UserID: owner.ID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := s.db.WithContext(ctx).Create(&list); result.Error != nil {
		logger.FromContext(ctx).Error("Failed to create list", zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return &list, nil
}

// FindAll returns the owner's lists with optional pagination and
// case-insensitive substring search on the name.
func (s *ListsService) FindAll(ctx context.Context, owner *model.User, pagination PaginationArgs, search SearchArgs) ([]model.List, error) {
	query := s.db.WithContext(ctx).Model(&model.List{}).Where("user_id = ?", owner.ID)
	query = applyPagination(query, pagination)
	query = applySearch(query, "name", search)

	var lists []model.List
	defer prometheus.TrackDBOperation("query")(time.Now())
	if result := query.Find(&lists); result.Error != nil {
		logger.FromContext(ctx).Error("Failed to list lists", zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return lists, nil
}

// FindOne returns the list matching the (id, owner) pair; not-found doubles
// as the ownership check.
func (s *ListsService) FindOne(ctx context.Context, id uuid.UUID, owner *model.User) (*model.List, error) {
	var list model.List
	defer prometheus.TrackDBOperation("query")(time.Now())
	result := s.db.WithContext(ctx).First(&list, "id = ? AND user_id = ?", id, owner.ID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("list with id " + id.String() + " not found")
		}
		logger.FromContext(ctx).Error("Failed to load list", zap.Error(result.Error))
		return nil, apperr.Internal()
	}
	return &list, nil
}

// FindByID loads a list without owner scoping, for relation resolution
// only; client-facing lookups go through FindOne.
func (s *ListsService) FindByID(ctx context.Context, id uuid.UUID) (*model.List, error) {
	var list model.List
	defer prometheus.TrackDBOperation("query")(time.Now())
	result := s.db.WithContext(ctx).First(&list, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("list with id " + id.String() + " not found")
		}
		logger.FromContext(ctx).Error("Failed to load list", zap.Error(result.Error))
		return nil, apperr.Internal()
	}
	return &list, nil
}

// Update re-validates ownership and applies a partial merge.
func (s *ListsService) Update(ctx context.Context, input UpdateListInput, owner *model.User) (*model.List, error) {
	list, err := s.FindOne(ctx, input.ID, owner)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		list.Name = *input.Name
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := s.db.WithContext(ctx).Save(list); result.Error != nil {
		logger.FromContext(ctx).Error("Failed to update list",
			zap.String("list_id", input.ID.String()),
			zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return list, nil
}

// Remove deletes the ownership-checked list and returns a value shaped
// like the deleted row, id included.
func (s *ListsService) Remove(ctx context.Context, id uuid.UUID, owner *model.User) (*model.List, error) {
	list, err := s.FindOne(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := s.db.WithContext(ctx).Delete(&model.List{}, "id = ?", id); result.Error != nil {
		logger.FromContext(ctx).Error("Failed to delete list",
			zap.String("list_id", id.String()),
			zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return list, nil
}

// CountByUser returns the total number of lists the user owns.
func (s *ListsService) CountByUser(ctx context.Context, owner *model.User) (int64, error) {
	var count int64
	defer prometheus.TrackDBOperation("query")(time.Now())
	result := s.db.WithContext(ctx).Model(&model.List{}).Where("user_id = ?", owner.ID).Count(&count)
	if result.Error != nil {
		logger.FromContext(ctx).Error("Failed to count lists", zap.Error(result.Error))
		return 0, apperr.Internal()
	}
	return count, nil
}
