package query

import (
	"strings"

	"github.com/careerlane/jobportal/internal/constants"
)

// Params is the normalized listing input after HTTP parsing.
type Params struct {
	ApplicationStatus string
	WorkType          string
	Search            string
	Sort              string
	Page              int
	Limit             int
}

// Plan is a database-agnostic description of one listing query. The
// repository layer translates it into gorm clauses; building it here keeps
// the filter and sort rules testable without a database.
type Plan struct {
	// Filters holds column = value conditions applied before search.
	Filters map[string]any
	// SearchPattern is the ILIKE pattern for position, empty when no search.
	SearchPattern string
	// Order is the ORDER BY expression.
	Order  string
	Limit  int
	Offset int
}

// Sort keywords accepted on the listing endpoint.
const (
	SortLatest = "latest"
	SortOldest = "oldest"
	SortAZ     = "a-z"
	SortZA     = "z-a"
)

// Build turns listing params into a Plan. Unknown sort keywords fall back
// to newest-first; "all" disables the matching filter.
func Build(p Params) Plan {
	plan := Plan{Filters: make(map[string]any)}

	if p.ApplicationStatus != "" && p.ApplicationStatus != constants.FilterAll {
		plan.Filters["application_status"] = p.ApplicationStatus
	}
	if p.WorkType != "" && p.WorkType != constants.FilterAll {
		plan.Filters["work_type"] = p.WorkType
	}

	if s := strings.TrimSpace(p.Search); s != "" {
		plan.SearchPattern = "%" + s + "%"
	}

	plan.Order = orderClause(p.Sort)

	page := p.Page
	if page < constants.MinPage {
		page = constants.MinPage
	}
	limit := p.Limit
	if limit < constants.MinLimit {
		limit = constants.MinLimit
	}
	if limit > constants.MaxLimit {
		limit = constants.MaxLimit
	}
	plan.Limit = limit
	plan.Offset = (page - 1) * limit

	return plan
}

// orderClause maps a sort keyword to SQL. Alphabetical sorts are
// case-insensitive; id breaks ties so pages stay stable across requests.
func orderClause(sort string) string {
	switch sort {
	case SortOldest:
		return "created_at ASC, id ASC"
	case SortAZ:
		return "LOWER(position) ASC, id ASC"
	case SortZA:
		return "LOWER(position) DESC, id ASC"
	case SortLatest:
		return "created_at DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

// PageCount returns the number of pages needed for total rows, zero when
// there are no rows.
func PageCount(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
