package church

import (
	"context"

	"github.com/ekklesia/church-directory/internal/domain"
)

const (
	defaultPageSize = 20
	// Hard cap; the page size is otherwise caller-controlled.
	maxPageSize = 100
)

// ListFilter is the caller-facing filter set. Status is a loose string parsed
// case-insensitively; unknown values mean "no status filter", never an error.
type ListFilter struct {
	Page         int
	PageSize     int
	Status       string
	City         string
	State        string
	Denomination string
}

// List returns one page of active churches ordered by name ascending. A page
// past the end of the result set is an empty slice, not an error.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Church, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	q := ListQuery{
		City:         f.City,
		State:        f.State,
		Denomination: f.Denomination,
		Offset:       (page - 1) * size,
		Limit:        size,
	}

	if st, ok := domain.ParseChurchStatus(f.Status); ok {
		q.Status = &st
	}

	return s.churches.List(ctx, q)
}
