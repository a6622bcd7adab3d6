package application

import (
	"math"
	"strconv"
)

// DefaultPageSize is the number of items per page on every listing.
const DefaultPageSize = 10

// Page addresses a 1-based window of an ordered collection.
type Page struct {
	Number int
	Size   int
}

// ParsePage reads a raw page parameter. Anything that is not a positive integer means page 1.
func ParsePage(raw string, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		number = 1
	}
	return Page{Number: number, Size: size}
}

// FirstPage returns page 1 with the default size.
func FirstPage() Page {
	return Page{Number: 1, Size: DefaultPageSize}
}

func (p Page) normalized() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	return p
}

// Offset is the number of items skipped before the window.
func (p Page) Offset() int {
	p = p.normalized()
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// Limit is the window length.
func (p Page) Limit() int {
	return p.normalized().Size
}

// Bounds returns the half-open window [start, end) clamped to total.
func (p Page) Bounds(total int) (int, int) {
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.Limit()
	if end > total || end < start {
		end = total
	}
	return start, end
}

// SliceWindow returns the page window of items. Past the end the result is empty, never nil.
func SliceWindow[T any](items []T, page Page) []T {
	start, end := page.Bounds(len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
