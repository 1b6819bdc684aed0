package handling

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalogOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/products", nil)

	opts, err := ParseCatalogOptions(r)
	require.NoError(t, err)
	assert.Zero(t, opts.Page)
	assert.Zero(t, opts.PerPage)
	assert.Empty(t, opts.Category)
	assert.False(t, opts.IncludeImages)
}

func TestParseCatalogOptionsFull(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=3&per_page=24&category=tumblers&tag=gifts&search=wedding&include_images=true", nil)

	opts, err := ParseCatalogOptions(r)
	require.NoError(t, err)
	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 24, opts.PerPage)
	assert.Equal(t, "tumblers", opts.Category)
	assert.Equal(t, "gifts", opts.Tag)
	assert.Equal(t, "wedding", opts.Search)
	assert.True(t, opts.IncludeImages)
}

func TestParseCatalogOptionsRejectsBadNumbers(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=abc", nil)
	_, err := ParseCatalogOptions(r)
	assert.Error(t, err)

	r = httptest.NewRequest("GET", "/products?per_page=12.5", nil)
	_, err = ParseCatalogOptions(r)
	assert.Error(t, err)

	r = httptest.NewRequest("GET", "/products?include_images=maybe", nil)
	_, err = ParseCatalogOptions(r)
	assert.Error(t, err)
}
