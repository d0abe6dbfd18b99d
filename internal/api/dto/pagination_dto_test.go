package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParamsClamp(t *testing.T) {
	cases := []struct {
		name string
		in   PageParams
		want PageParams
	}{
		{"defaults", PageParams{}, PageParams{Skip: 0, Limit: DefaultLimit}},
		{"negative skip", PageParams{Skip: -5, Limit: 20}, PageParams{Skip: 0, Limit: 20}},
		{"zero limit", PageParams{Skip: 10}, PageParams{Skip: 10, Limit: DefaultLimit}},
		{"negative limit", PageParams{Limit: -1}, PageParams{Skip: 0, Limit: DefaultLimit}},
		{"over max", PageParams{Limit: 500}, PageParams{Skip: 0, Limit: MaxLimit}},
		{"within bounds", PageParams{Skip: 30, Limit: 50}, PageParams{Skip: 30, Limit: 50}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Clamp())
		})
	}
}

func TestNewPaginated_NilItems(t *testing.T) {
	p := NewPaginated[int](nil, 0, PageParams{Limit: 10})
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 10, p.Limit)
}

func TestSortDirectionValid(t *testing.T) {
	assert.True(t, SortAsc.Valid())
	assert.True(t, SortDesc.Valid())
	assert.False(t, SortDirection("sideways").Valid())
	assert.False(t, SortDirection("").Valid())
}
