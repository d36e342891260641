package services

import (
	"errors"
	"strconv"
	"strings"
)

const DefaultPageSize = 10

// Page describes one window of a paginated listing.
type Page struct {
	Number      int   `json:"page"`
	NumPages    int   `json:"num_pages"`
	PageSize    int   `json:"page_size"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PageSize
}

// Paginate resolves a raw page parameter against total rows. It never
// fails: a missing or non-numeric page is the first page, and out-of-range
// numbers clamp to the nearest valid page. An empty set has one empty page.
func Paginate(total int64, pageSize int, raw string) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	numPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if numPages < 1 {
		numPages = 1
	}

	number, err := strconv.Atoi(raw)
	switch {
	case errors.Is(err, strconv.ErrRange):
		number = 1
		if !strings.HasPrefix(raw, "-") {
			number = numPages
		}
	case err != nil, number < 1:
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Page{
		Number:      number,
		NumPages:    numPages,
		PageSize:    pageSize,
		Total:       total,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}
