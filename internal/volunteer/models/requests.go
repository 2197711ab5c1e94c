package models

import (
	"net/url"
	"strconv"
	"strings"

	"reliefops/pkg/domain"
)

// ParseListQuery builds ListFilters from the request query string. It never
// fails: non-numeric pagination falls back to defaults and malformed filter
// values mark the filters as matching nothing.
func ParseListQuery(values url.Values) ListFilters {
	filters := ListFilters{Limit: DefaultLimit, Offset: 0}

	if raw := strings.TrimSpace(values.Get("grid_id")); raw != "" {
		gridID, err := domain.ParseGridID(raw)
		if err != nil {
			filters.MatchNone = true
		} else {
			filters.GridID = &gridID
		}
	}

	if raw := strings.TrimSpace(values.Get("status")); raw != "" {
		status, err := ParseStatus(raw)
		if err != nil {
			filters.MatchNone = true
		} else {
			filters.Status = &status
		}
	}

	if raw := values.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filters.Limit = limit
		}
	}
	if raw := values.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			filters.Offset = offset
		}
	}

	filters.Normalize()
	return filters
}

// ParseIncludeCounts interprets the include_counts query parameter. Absent or
// unrecognized values default to true.
func ParseIncludeCounts(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "false", "0", "no":
		return false
	default:
		return true
	}
}
