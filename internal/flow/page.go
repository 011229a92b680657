package flow

// PerPage is the number of entries shown in one inline-keyboard page.
const PerPage = 5

type Page[T any] struct {
	Items   []T
	Number  int
	HasPrev bool
	HasNext bool
}

// Paginate windows items by a fixed page size. Out-of-range pages are clamped.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = PerPage
	}
	last := 0
	if len(items) > 0 {
		last = (len(items) - 1) / perPage
	}
	if page < 0 {
		page = 0
	}
	if page > last {
		page = last
	}
	start := page * perPage
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{
		Items:   items[start:end],
		Number:  page,
		HasPrev: start > 0,
		HasNext: end < len(items),
	}
}
