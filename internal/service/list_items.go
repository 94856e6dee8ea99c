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

// CreateListItemInput references the list and item by id; the caller has
// already established ownership of both by loading them.
type CreateListItemInput struct {
	Quantity  int
	Completed bool
	ListID    uuid.UUID
	ItemID    uuid.UUID
}

// UpdateListItemInput is a partial update. Either foreign key may be
// re-pointed independently of the scalar fields.
type UpdateListItemInput struct {
	ID        uuid.UUID
	Quantity  *int
	Completed *bool
	ListID    *uuid.UUID
	ItemID    *uuid.UUID
}

// ListItemsService persists the join rows between lists and items.
type ListItemsService struct {
	db *gorm.DB
}

func NewListItemsService(db *gorm.DB) *ListItemsService {
	return &ListItemsService{db: db}
}

// Create persists a new join row. Dangling list/item references are
// rejected by the database's foreign keys.
func (s *ListItemsService) Create(ctx context.Context, input CreateListItemInput) (*model.ListItem, error) {
	listItem := model.ListItem{
		Quantity:  input.Quantity,
		Completed: input.Completed,
		ListID:    input.ListID,
		ItemID:    input.ItemID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := s.db.WithContext(ctx).Create(&listItem); result.Error != nil {
		logger.FromContext(ctx).Error("Failed to create list item", zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return &listItem, nil
}

// FindAll returns the entries of a list, joining items so the optional
// search matches the item name.
func (s *ListItemsService) FindAll(ctx context.Context, list *model.List, pagination PaginationArgs, search SearchArgs) ([]model.ListItem, error) {
	query := s.db.WithContext(ctx).Model(&model.ListItem{}).
		Joins("INNER JOIN items ON items.id = list_items.item_id").
		Where("list_items.list_id = ?", list.ID)
	query = applyPagination(query, pagination)
	query = applySearch(query, "items.name", search)

	var listItems []model.ListItem
	defer prometheus.TrackDBOperation("query")(time.Now())
	if result := query.Find(&listItems); result.Error != nil {
		logger.FromContext(ctx).Error("Failed to list list items", zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return listItems, nil
}

// FindOne returns the join row with the given id.
func (s *ListItemsService) FindOne(ctx context.Context, id uuid.UUID) (*model.ListItem, error) {
	var listItem model.ListItem
	defer prometheus.TrackDBOperation("query")(time.Now())
	result := s.db.WithContext(ctx).First(&listItem, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("list item with id " + id.String() + " not found")
		}
		logger.FromContext(ctx).Error("Failed to load list item", zap.Error(result.Error))
		return nil, apperr.Internal()
	}
	return &listItem, nil
}

// Update applies a partial merge; quantity, completed and both foreign
// keys can be changed independently.
func (s *ListItemsService) Update(ctx context.Context, input UpdateListItemInput) (*model.ListItem, error) {
	listItem, err := s.FindOne(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Quantity != nil {
		listItem.Quantity = *input.Quantity
	}
	if input.Completed != nil {
		listItem.Completed = *input.Completed
	}
	if input.ListID != nil {
		listItem.ListID = *input.ListID
	}
	if input.ItemID != nil {
		listItem.ItemID = *input.ItemID
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := s.db.WithContext(ctx).Save(listItem); result.Error != nil {
		logger.FromContext(ctx).Error("Failed to update list item",
			zap.String("list_item_id", input.ID.String()),
			zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return listItem, nil
}

// CountByList returns the number of entries on the list.
func (s *ListItemsService) CountByList(ctx context.Context, list *model.List) (int64, error) {
	var count int64
	defer prometheus.TrackDBOperation("query")(time.Now())
	result := s.db.WithContext(ctx).Model(&model.ListItem{}).Where("list_id = ?", list.ID).Count(&count)
	if result.Error != nil {
		logger.FromContext(ctx).Error("Failed to count list items", zap.Error(result.Error))
		return 0, apperr.Internal()
	}
	return count, nil
}
