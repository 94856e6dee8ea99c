package graph

import (
	"context"

	"shoplist-service/internal/middleware"
	"shoplist-service/internal/model"
	"shoplist-service/pkg/apperr"
)

// Predicate is a single access check evaluated before a resolver body.
// Operations compose their requirements by listing predicates in order;
// the first denial wins.
type Predicate func(ctx context.Context) error

// Authenticated denies anonymous requests.
func Authenticated(ctx context.Context) error {
	if middleware.UserFromContext(ctx) == nil {
		return apperr.Unauthenticated("authentication required")
	}
	return nil
}

// Role denies users carrying none of the given roles. Denial is a
// forbidden error, never a not-found: the request was understood.
func Role(roles ...string) Predicate {
	return func(ctx context.Context) error {
		user := middleware.UserFromContext(ctx)
		if user == nil {
			return apperr.Unauthenticated("authentication required")
		}
		if !user.HasRole(roles...) {
			return apperr.Forbidden("insufficient role")
		}
		return nil
	}
}

// allow evaluates predicates in order and returns the authenticated user
// on success.
func allow(ctx context.Context, predicates ...Predicate) (*model.User, error) {
	for _, predicate := range predicates {
		if err := predicate(ctx); err != nil {
			return nil, err
		}
	}
	return middleware.UserFromContext(ctx), nil
}
