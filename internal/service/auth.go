package service

import (
	"context"

	"shoplist-service/internal/model"
	"shoplist-service/pkg/apperr"
	"shoplist-service/pkg/jwtutil"
	"shoplist-service/pkg/logger"
	"shoplist-service/prometheus"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResponse pairs a freshly issued token with the authenticated user.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AuthService issues and refreshes stateless bearer tokens. Tokens are
// never stored server-side; the embedded subject id is resolved to a live
// account on every request.
type AuthService struct {
	users *UsersService
}

func NewAuthService(users *UsersService) *AuthService {
	return &AuthService{users: users}
}

// Signup creates the account and issues its first token.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResponse, error) {
	prometheus.SignupCounter.Inc()

	user, err := s.users.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Email)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to generate token", zap.Error(err))
		return nil, apperr.Internal()
	}

	logger.FromContext(ctx).Info("User signed up", zap.String("email", user.Email))
	return &AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and issues a fresh token. A missing account
// and a wrong password produce the same error so that existence never
// leaks; an inactive account is rejected after the password check.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	log := logger.FromContext(ctx)
	prometheus.LoginCounter.Inc()

	user, err := s.users.FindOneByEmail(ctx, input.Email)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			log.Warn("Login for unknown email", zap.String("email", input.Email))
			prometheus.RecordAuthError("invalid_credentials")
			return nil, apperr.BadUserInput("email / password do not match")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", input.Email))
		prometheus.RecordAuthError("invalid_credentials")
		return nil, apperr.BadUserInput("email / password do not match")
	}

	if !user.IsActive {
		log.Warn("Login for inactive user", zap.String("email", input.Email))
		prometheus.RecordAuthError("inactive_user")
		return nil, apperr.Unauthenticated("user is inactive, talk with an admin")
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return nil, apperr.Internal()
	}

	log.Info("User logged in", zap.String("email", user.Email))
	return &AuthResponse{Token: token, User: user}, nil
}

// ValidateUser resolves a token's embedded subject id to a live account,
// rejecting inactive ones. The stored hash is stripped from the result.
func (s *AuthService) ValidateUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindOneByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		prometheus.RecordAuthError("inactive_user")
		return nil, apperr.Unauthenticated("user is inactive, talk with an admin")
	}

	user.Password = ""
	return user, nil
}

// RevalidateToken re-issues a token for an already-authenticated user.
func (s *AuthService) RevalidateToken(ctx context.Context, user *model.User) (*AuthResponse, error) {
	token, err := jwtutil.GenerateToken(user.ID, user.Email)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to generate token", zap.Error(err))
		return nil, apperr.Internal()
	}
	return &AuthResponse{Token: token, User: user}, nil
}
