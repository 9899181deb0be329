package orm

import "math"

// Pagination describes one page of a larger result set. It is embedded
// verbatim in list responses.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// NewPagination normalizes page/perPage and computes total pages.
// Pages are 1-based; a partial trailing page counts as a full page, and an
// empty result set has zero pages.
func NewPagination(page, perPage int, totalItems int64) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(perPage)))

	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: perPage,
	}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.ItemsPerPage
}

// Paginate counts the matching rows, loads the requested page into dest, and
// returns the page metadata. Out-of-range pages return empty data with
// accurate totals.
func (q *Query) Paginate(page, perPage int, dest interface{}) (Pagination, error) {
	total, err := q.Count()
	if err != nil {
		return Pagination{}, err
	}

	p := NewPagination(page, perPage, total)

	if err := q.Offset(p.Offset()).Limit(p.ItemsPerPage).Get(dest); err != nil {
		return Pagination{}, err
	}

	return p, nil
}
