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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SignupInput carries the fields of a new account.
type SignupInput struct {
	FullName string
	Email    string
	Password string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	ID       uuid.UUID
	FullName *string
	Email    *string
	Password *string
	Roles    []string
	IsActive *bool
}

// UsersService persists and queries accounts. Mutations that an admin
// performs on another account record the admin in lastUpdatedBy.
type UsersService struct {
	db *gorm.DB
}

func NewUsersService(db *gorm.DB) *UsersService {
	return &UsersService{db: db}
}

// Create hashes the supplied password and persists a new user with the
// default role set. Duplicate emails surface as a conflict naming the field.
func (s *UsersService) Create(ctx context.Context, input SignupInput) (*model.User, error) {
	log := logger.FromContext(ctx)

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Internal()
	}

	user := model.User{
		FullName: input.FullName,
		Email:    input.Email,
		Password: string(hashed),
		IsActive: true,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := s.db.WithContext(ctx).Create(&user); result.Error != nil {
		if isUniqueViolation(result.Error) {
			log.Warn("Email already registered", zap.String("email", input.Email))
			return nil, apperr.Conflict("email already registered", "email")
		}
		log.Error("Failed to create user", zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return &user, nil
}

// FindAll returns users, optionally restricted to those carrying any of the
// given roles, with pagination and substring search on the full name.
func (s *UsersService) FindAll(ctx context.Context, roles []string, pagination PaginationArgs, search SearchArgs) ([]model.User, error) {
	log := logger.FromContext(ctx)

	query := s.db.WithContext(ctx).Model(&model.User{})
	query = applyPagination(query, pagination)
	query = applySearch(query, "full_name", search)

	// Roles are persisted as a JSON array in a text column, so the filter
	// matches the quoted role name inside the serialized value.
	if len(roles) > 0 {
		roleQuery := s.db.Where("roles LIKE ?", `%"`+roles[0]+`"%`)
		for _, role := range roles[1:] {
			roleQuery = roleQuery.Or("roles LIKE ?", `%"`+role+`"%`)
		}
		query = query.Where(roleQuery)
	}

	var users []model.User
	defer prometheus.TrackDBOperation("query")(time.Now())
	if result := query.Find(&users); result.Error != nil {
		log.Error("Failed to list users", zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return users, nil
}

// FindOneByID returns the user with the given id, or a not-found error.
func (s *UsersService) FindOneByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	defer prometheus.TrackDBOperation("query")(time.Now())
	result := s.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user with id " + id.String() + " not found")
		}
		logger.FromContext(ctx).Error("Failed to load user", zap.Error(result.Error))
		return nil, apperr.Internal()
	}
	return &user, nil
}

// FindOneByEmail returns the user with the given email, or a not-found
// error. Callers on the login path map it to a credential mismatch so that
// account existence never leaks.
func (s *UsersService) FindOneByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	defer prometheus.TrackDBOperation("query")(time.Now())
	result := s.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user with email " + email + " not found")
		}
		logger.FromContext(ctx).Error("Failed to load user", zap.Error(result.Error))
		return nil, apperr.Internal()
	}
	return &user, nil
}

// Update applies a partial merge onto the persisted user and records the
// admin performing it. A supplied password is re-hashed before storage.
func (s *UsersService) Update(ctx context.Context, input UpdateUserInput, updatedBy *model.User) (*model.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.FindOneByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return nil, apperr.Internal()
		}
		user.Password = string(hashed)
	}
	if input.Roles != nil {
		user.Roles = input.Roles
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	user.LastUpdatedByID = &updatedBy.ID

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := s.db.WithContext(ctx).Save(user); result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, apperr.Conflict("email already registered", "email")
		}
		log.Error("Failed to update user", zap.String("user_id", input.ID.String()), zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return user, nil
}

// Block performs the logical deletion: the account is deactivated, never
// removed, and the blocking admin is recorded.
func (s *UsersService) Block(ctx context.Context, id uuid.UUID, admin *model.User) (*model.User, error) {
	user, err := s.FindOneByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = false
	user.LastUpdatedByID = &admin.ID

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := s.db.WithContext(ctx).Save(user); result.Error != nil {
		logger.FromContext(ctx).Error("Failed to block user",
			zap.String("user_id", id.String()),
			zap.Error(result.Error))
		return nil, apperr.Internal()
	}

	return user, nil
}
