package persistence

import (
	"errors"
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// likeEscaper escapes LIKE wildcards so user input matches literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern for a substring match.
// Use it with "LOWER(column) LIKE ? ESCAPE '\'", which behaves the same on
// PostgreSQL and SQLite.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// paginate applies the filter's page window when both page and size are set
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// orderBy applies a whitelisted ORDER BY; an invalid field uses defaultOrder
func orderBy(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultOrder string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, "")
	if field == "" {
		return query.Order(defaultOrder)
	}
	return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
}

// createdRange applies created_from / created_to bounds when present
func createdRange(query *gorm.DB, filters map[string]any, fromKey, toKey string) *gorm.DB {
	if from, ok := filters[fromKey].(time.Time); ok && !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if to, ok := filters[toKey].(time.Time); ok && !to.IsZero() {
		query = query.Where("created_at <= ?", to)
	}
	return query
}

// translateError maps driver errors onto domain errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "Referenced record does not exist")
	default:
		return err
	}
}
