package shared

import (
	"context"
	"errors"
	"fmt"
	"hotelbooker/shared/cache"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/dto"
	"hotelbooker/shared/failure"
	"hotelbooker/shared/timezone"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

// FilterByID builds a single equality filter. The value is kept as given so
// integer keys bind as integers.
func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// Actor returns the identity recorded in created_by/modified_by columns.
func Actor(ctx context.Context) string {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return constant.ContextGuest
	}

	return user
}

func BuildCacheKey(prefix string, parts ...any) string {
	keys := []string{prefix}
	for _, part := range parts {
		keys = append(keys, fmt.Sprintf("%v", part))
	}

	return strings.Join(keys, constant.CacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from query params and filter values.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	_, args := filter.GetWhereClause()

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := []any{params.Page, params.Limit, params.SortBy, params.SortDir}
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, args[name]))
	}

	return BuildCacheKey(prefix, parts...)
}

func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.CacheKeySeparator+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// IsUniqueViolation reports whether err comes from a unique index rejecting a write.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}

// HotelScope returns the hotel a staff or manager token is bound to.
// Admins and anonymous callers are not scoped. A scoped caller with an
// unreadable hotel claim is bound to no hotel at all.
func HotelScope(ctx context.Context) (int64, bool) {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleStaff && role != constant.RoleManager {
		return 0, false
	}

	hotel, _ := ctx.Value(constant.ContextKeyHotelID).(string)

	id, err := strconv.ParseInt(hotel, 10, 64)
	if err != nil {
		return -1, true
	}

	return id, true
}

// ParseID reads a positive numeric identifier from a path parameter.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.InvalidID // nolint:wrapcheck
	}

	return id, nil
}
