package page

// Default page sizes.
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// MaxOffset is the deepest result a page may start at. It matches the
// store's default MAXSEARCHRESULTS.
const MaxOffset = 10000

// Limits bounds the page size.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits returns the default page size bounds.
func DefaultLimits() Limits { return Limits{Default: DefaultLimit, Max: MaxLimit} }

// Page is a 1-based page window.
type Page struct {
	number int
	limit  int
}

// New normalizes a page request. Page defaults to 1, limit defaults to
// l.Default and is clamped to [1, l.Max]. Page numbers past MaxOffset are
// capped so Skip cannot overflow; InRange reports them.
func New(number, limit int, l Limits) Page {
	if l.Default <= 0 {
		l.Default = DefaultLimit
	}
	if l.Max <= 0 {
		l.Max = MaxLimit
	}
	if number < 1 {
		number = 1
	}
	if number > MaxOffset+2 {
		number = MaxOffset + 2
	}
	if limit == 0 {
		limit = l.Default
	}
	if limit < 1 {
		limit = 1
	}
	if limit > l.Max {
		limit = l.Max
	}
	return Page{number: number, limit: limit}
}

// Number returns the 1-based page number.
func (p Page) Number() int { return p.number }

// Limit returns the page size.
func (p Page) Limit() int { return p.limit }

// Skip returns the number of records before this page.
func (p Page) Skip() int { return (p.number - 1) * p.limit }

// InRange reports whether the page starts at or before MaxOffset.
func (p Page) InRange() bool { return p.Skip() <= MaxOffset }

// Result is one page of items with the total match count.
type Result[T any] struct {
	Items []T
	Total int
	Page  Page
}

// Pages returns the total page count.
func (r Result[T]) Pages() int {
	if r.Page.limit == 0 {
		return 0
	}
	return (r.Total + r.Page.limit - 1) / r.Page.limit
}
