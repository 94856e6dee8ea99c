package service

import (
	"context"
	"math/rand"

	"shoplist-service/internal/model"
	"shoplist-service/pkg/apperr"
	"shoplist-service/pkg/logger"
	"shoplist-service/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedService wipes and refills the database with fixtures for manual
// testing. It refuses to run in production; any failure during the load is
// logged and reported only as a boolean, so a crash mid-sequence can leave
// the database empty.
type SeedService struct {
	db        *gorm.DB
	users     *UsersService
	items     *ItemsService
	lists     *ListsService
	listItems *ListItemsService
	isProd    bool
}

func NewSeedService(
	db *gorm.DB,
	users *UsersService,
	items *ItemsService,
	lists *ListsService,
	listItems *ListItemsService,
	isProd bool,
) *SeedService {
	return &SeedService{
		db:        db,
		users:     users,
		items:     items,
		lists:     lists,
		listItems: listItems,
		isProd:    isProd,
	}
}

// Execute cleans and refills the database. The production check fails with
// an authorization error before any mutation; errors past that point are
// swallowed into the returned boolean.
func (s *SeedService) Execute(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)
	prometheus.SeedCounter.Inc()

	if s.isProd {
		log.Warn("Seed execution refused in production")
		return false, apperr.Forbidden("cannot run seed in production")
	}

	if err := s.wipe(ctx); err != nil {
		log.Error("Seed wipe failed", zap.Error(err))
		return false, nil
	}

	user, err := s.loadUsers(ctx)
	if err != nil {
		log.Error("Seed user load failed", zap.Error(err))
		return false, nil
	}

	if err := s.loadItems(ctx, user); err != nil {
		log.Error("Seed item load failed", zap.Error(err))
		return false, nil
	}

	list, err := s.loadLists(ctx, user)
	if err != nil {
		log.Error("Seed list load failed", zap.Error(err))
		return false, nil
	}

	if err := s.loadListItems(ctx, user, list); err != nil {
		log.Error("Seed list item load failed", zap.Error(err))
		return false, nil
	}

	log.Info("Seed executed")
	return true, nil
}

// wipe deletes every row in child-to-parent dependency order.
func (s *SeedService) wipe(ctx context.Context) error {
	session := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})

	if err := session.Delete(&model.ListItem{}).Error; err != nil {
		return err
	}
	if err := session.Delete(&model.List{}).Error; err != nil {
		return err
	}
	if err := session.Delete(&model.Item{}).Error; err != nil {
		return err
	}
	return session.Delete(&model.User{}).Error
}

// loadUsers creates the fixture users and promotes the first one to the
// elevated roles. That first user owns the rest of the fixtures.
func (s *SeedService) loadUsers(ctx context.Context) (*model.User, error) {
	var first *model.User

	for i, input := range seedUsers {
		user, err := s.users.Create(ctx, input)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			user.Roles = seedAdminRoles
			if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
				return nil, err
			}
			first = user
		}
	}

	return first, nil
}

func (s *SeedService) loadItems(ctx context.Context, user *model.User) error {
	for _, input := range seedItems {
		if _, err := s.items.Create(ctx, input, user); err != nil {
			return err
		}
	}
	return nil
}

func (s *SeedService) loadLists(ctx context.Context, user *model.User) (*model.List, error) {
	var first *model.List

	for i, input := range seedLists {
		list, err := s.lists.Create(ctx, input, user)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			first = list
		}
	}

	return first, nil
}

// loadListItems joins the first ten seeded items onto the list with
// randomized quantity and completion.
func (s *SeedService) loadListItems(ctx context.Context, user *model.User, list *model.List) error {
	limit := 10
	items, err := s.items.FindAll(ctx, user, PaginationArgs{Limit: &limit}, SearchArgs{})
	if err != nil {
		return err
	}

	for _, item := range items {
		_, err := s.listItems.Create(ctx, CreateListItemInput{
			Quantity:  rand.Intn(11),
			Completed: rand.Intn(2) == 1,
			ListID:    list.ID,
			ItemID:    item.ID,
		})
		if err != nil {
			return err
		}
	}

	return nil
}
