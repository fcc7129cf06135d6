package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Params{}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, "asc", p.Sort)
}

func TestNormalizeClampsLimit(t *testing.T) {
	p := Params{Limit: 5000}.Normalize()
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Params{Page: 3, Limit: 10}.Offset())
}

func TestMeta(t *testing.T) {
	meta := Params{Page: 2, Limit: 10}.Meta(25)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.True(t, meta.HasNextPage)
	assert.True(t, meta.HasPreviousPage)
}

func TestMetaLastPage(t *testing.T) {
	meta := Params{Page: 3, Limit: 10}.Meta(25)
	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPreviousPage)
}

func TestMetaEmpty(t *testing.T) {
	meta := Params{Page: 1, Limit: 10}.Meta(0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNextPage)
	assert.False(t, meta.HasPreviousPage)
}
