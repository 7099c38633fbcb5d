package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		total    int
		want     Meta
	}{
		{
			name:     "empty result set",
			page:     1,
			pageSize: 10,
			total:    0,
			want:     Meta{Offset: 0, TotalPages: 0},
		},
		{
			name:     "first of two pages",
			page:     1,
			pageSize: 10,
			total:    15,
			want:     Meta{Offset: 0, TotalPages: 2, HasNextPage: true},
		},
		{
			name:     "last page",
			page:     2,
			pageSize: 10,
			total:    15,
			want:     Meta{Offset: 10, TotalPages: 2, HasPreviousPage: true},
		},
		{
			name:     "exact multiple",
			page:     2,
			pageSize: 12,
			total:    24,
			want:     Meta{Offset: 12, TotalPages: 2, HasPreviousPage: true},
		},
		{
			name:     "page past the end",
			page:     5,
			pageSize: 10,
			total:    15,
			want:     Meta{Offset: 40, TotalPages: 2, HasPreviousPage: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(tt.page, tt.pageSize, tt.total))
		})
	}
}

func TestPaginate_Properties(t *testing.T) {
	for page := 1; page <= 6; page++ {
		for size := 1; size <= 7; size++ {
			for total := 0; total <= 30; total++ {
				m := Paginate(page, size, total)

				assert.Equal(t, (page-1)*size, m.Offset)

				wantPages := total / size
				if total%size != 0 {
					wantPages++
				}
				assert.Equal(t, wantPages, m.TotalPages)
				assert.Equal(t, page < wantPages, m.HasNextPage)
				assert.Equal(t, page > 1, m.HasPreviousPage)
			}
		}
	}
}

func TestNew(t *testing.T) {
	p := New([]string{"a", "b", "c", "d", "e"}, 15, 2, 10)

	assert.Len(t, p.Items, 5)
	assert.Equal(t, 15, p.Total)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPreviousPage)
}

func TestEmpty(t *testing.T) {
	p := Empty[int](3, 12)

	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 12, p.PageSize)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPreviousPage)
}

func TestMap(t *testing.T) {
	p := New([]int{1, 2, 3}, 3, 1, 10)

	out := Map(p, func(i int, v int) string {
		return string(rune('a' + i + v - 1))
	})

	assert.Equal(t, []string{"a", "c", "e"}, out.Items)
	assert.Equal(t, p.Total, out.Total)
	assert.Equal(t, p.TotalPages, out.TotalPages)
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 1, ParsePage("-4"))
	assert.Equal(t, 3, ParsePage("3"))
	assert.Equal(t, 7, ParsePage(" 7 "))
}

func TestParsePageSize(t *testing.T) {
	assert.Equal(t, DefaultPostsPageSize, ParsePageSize("", DefaultPostsPageSize))
	assert.Equal(t, DefaultCollectionPageSize, ParsePageSize("x", DefaultCollectionPageSize))
	assert.Equal(t, 25, ParsePageSize("25", DefaultPostsPageSize))
	assert.Equal(t, MaxPageSize, ParsePageSize("1000", DefaultPostsPageSize))
}

func TestNormalize(t *testing.T) {
	page, size := Normalize(0, 0, 12)
	assert.Equal(t, 1, page)
	assert.Equal(t, 12, size)

	page, size = Normalize(4, 500, 12)
	assert.Equal(t, 4, page)
	assert.Equal(t, MaxPageSize, size)
}
