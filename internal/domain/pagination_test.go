package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		page    PageRequest
		wantErr bool
	}{
		{"defaults", DefaultPage(), false},
		{"max page size", PageRequest{Page: 1, PageSize: 1000}, false},
		{"zero page", PageRequest{Page: 0, PageSize: 100}, true},
		{"negative page", PageRequest{Page: -1, PageSize: 100}, true},
		{"zero page size", PageRequest{Page: 1, PageSize: 0}, true},
		{"oversized page", PageRequest{Page: 1, PageSize: 1001}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, PageSize: 100}.Offset())
	assert.Equal(t, 900, PageRequest{Page: 10, PageSize: 100}.Offset())
	assert.Equal(t, 25, PageRequest{Page: 6, PageSize: 5}.Offset())
}

func TestNewPagination_TotalPagesIsCeil(t *testing.T) {
	tests := []struct {
		totalRecords int
		pageSize     int
		wantPages    int
	}{
		{0, 100, 0},
		{1, 100, 1},
		{100, 100, 1},
		{101, 100, 2},
		{500, 100, 5},
		{999, 1000, 1},
		{47, 10, 5},
	}

	for _, tt := range tests {
		p := NewPagination(PageRequest{Page: 1, PageSize: tt.pageSize}, tt.totalRecords)
		assert.Equal(t, tt.wantPages, p.TotalPages,
			"totalRecords=%d pageSize=%d", tt.totalRecords, tt.pageSize)
	}
}

func TestEmptyPage(t *testing.T) {
	p := EmptyPage[Trip](PageRequest{Page: 10, PageSize: 100}, 500)
	require.NotNil(t, p.Data)
	require.Empty(t, p.Data)
	assert.Equal(t, 500, p.Pagination.TotalRecords)
	assert.Equal(t, 5, p.Pagination.TotalPages)
}
