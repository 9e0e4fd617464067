package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page falls back", 0, 10, 0, 10},
		{"oversized page size falls back", 2, MaxPageSize + 1, 10, DefaultPageSize},
		{"zero size falls back", 1, 0, 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(57, 1, 20)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, int64(57), info.TotalItems)

	// Requesting past the end clamps to the last page
	info = NewPaginationInfo(57, 9, 20)
	assert.Equal(t, 3, info.CurrentPage)

	// Empty result set still reports one page
	info = NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 1, info.TotalPages)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}
