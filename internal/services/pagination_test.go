package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		raw      string
		number   int
		numPages int
		offset   int
	}{
		{"first page by default", 25, "", 1, 3, 0},
		{"middle page", 25, "2", 2, 3, 10},
		{"last partial page", 25, "3", 3, 3, 20},
		{"overflow clamps to last", 25, "99", 3, 3, 20},
		{"huge overflow clamps to last", 25, "99999999999999999999", 3, 3, 20},
		{"huge negative clamps to first", 25, "-99999999999999999999", 1, 3, 0},
		{"zero clamps to first", 25, "0", 1, 3, 0},
		{"negative clamps to first", 25, "-4", 1, 3, 0},
		{"non-numeric is first", 25, "abc", 1, 3, 0},
		{"empty set has one page", 0, "5", 1, 1, 0},
		{"exact multiple", 20, "2", 2, 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.total, DefaultPageSize, tt.raw)
			assert.Equal(t, tt.number, p.Number)
			assert.Equal(t, tt.numPages, p.NumPages)
			assert.Equal(t, tt.offset, p.Offset())
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestPaginateNeighbours(t *testing.T) {
	p := Paginate(25, 10, "2")
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrevious)

	p = Paginate(25, 10, "3")
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrevious)
}

func TestPaginateDefaultsPageSize(t *testing.T) {
	p := Paginate(11, 0, "2")
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 2, p.NumPages)
}
