package dto

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageParams is the skip/limit window applied to every list endpoint.
type PageParams struct {
	Skip  int `json:"skip" form:"skip"`
	Limit int `json:"limit" form:"limit"`
}

// Clamp normalizes the window: skip is never negative and limit is forced
// into [1, MaxLimit], defaulting when unset.
func (p PageParams) Clamp() PageParams {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// SortDirection is either "asc" or "desc".
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// Paginated is the common list envelope: the page plus the total count
// matching the filters, computed independently of the page query.
type Paginated[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

func NewPaginated[T any](items []T, total int64, page PageParams) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{Items: items, Total: total, Skip: page.Skip, Limit: page.Limit}
}
