package entity

// Page is one page of a listing ordered newest id first.
type Page[T any] struct {
	Items    []T
	Page     int
	PerPage  int
	Total    int
	LastPage int
}

// NewPage builds a Page and derives LastPage from total and perPage.
func NewPage[T any](items []T, page, perPage, total int) Page[T] {
	last := 1
	if perPage > 0 && total > 0 {
		last = (total + perPage - 1) / perPage
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: page, PerPage: perPage, Total: total, LastPage: last}
}

func (p Page[T]) HasPrev() bool { return p.Page > 1 }
func (p Page[T]) HasNext() bool { return p.Page < p.LastPage }
func (p Page[T]) PrevPage() int { return p.Page - 1 }
func (p Page[T]) NextPage() int { return p.Page + 1 }

// Offset converts a 1-based page into a row offset, clamping page to at least 1.
func Offset(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	return page, (page - 1) * perPage
}
