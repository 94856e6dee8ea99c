package service

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PaginationArgs carries the optional limit/offset of a findAll call. A nil
// Limit means no cap, a nil Offset means no skip.
type PaginationArgs struct {
	Limit  *int
	Offset *int
}

// SearchArgs carries the optional case-insensitive substring filter of a
// findAll call.
type SearchArgs struct {
	Search *string
}

// applyPagination adds LIMIT/OFFSET clauses for whichever bounds are set.
func applyPagination(query *gorm.DB, pagination PaginationArgs) *gorm.DB {
	if pagination.Limit != nil {
		query = query.Limit(*pagination.Limit)
	}
	if pagination.Offset != nil {
		query = query.Offset(*pagination.Offset)
	}
	return query
}

// applySearch adds a case-insensitive substring match on the given column.
func applySearch(query *gorm.DB, column string, search SearchArgs) *gorm.DB {
	if search.Search == nil || *search.Search == "" {
		return query
	}
	return query.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(*search.Search)+"%")
}

// isUniqueViolation classifies storage errors raised by uniqueness
// constraints, across the postgres driver and the sqlite driver used in
// tests. Anything else stays unclassified and surfaces as an internal error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
