package pagination

import (
	"github.com/litera-id/litera-backend/pkg/types"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any page query can request.
	MaxLimit = 100
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page    int
	Limit   int
	OrderBy string
	Sort    string
}

// Normalize clamps the page and limit into their allowed ranges and
// defaults the sort direction to ascending.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Sort != "desc" {
		p.Sort = "asc"
	}
	return p
}

// Offset converts the normalized page/limit pair into a row offset.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// Meta computes the response pagination block for a total row count.
func (p Params) Meta(total int64) types.Pagination {
	n := p.Normalize()
	totalPages := int((total + int64(n.Limit) - 1) / int64(n.Limit))
	return types.Pagination{
		Total:           total,
		TotalPages:      totalPages,
		CurrentPage:     n.Page,
		HasNextPage:     n.Page < totalPages,
		HasPreviousPage: n.Page > 1 && total > 0,
	}
}
