package services

import (
	"happycrafts_server/imageset"
	"happycrafts_server/structs"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() imageset.ProductFields {
	return imageset.ProductFields{
		Name:        "Etched wine glass",
		Company:     "HappyCrafts",
		Description: "Hand etched glass",
		Category:    "tumblers",
		Tags:        []string{"gifts"},
		Price:       2495,
	}
}

func TestApplyDefaultOptions(t *testing.T) {
	ps := &ProductService{}

	opts := &CatalogOptions{}
	ps.applyDefaultOptions(opts)
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, defaultPerPage, opts.PerPage)

	opts = &CatalogOptions{Page: -3, PerPage: 500}
	ps.applyDefaultOptions(opts)
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, maxPerPage, opts.PerPage)

	opts = &CatalogOptions{Page: 2, PerPage: 24}
	ps.applyDefaultOptions(opts)
	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, 24, opts.PerPage)
}

func TestValidateOptions(t *testing.T) {
	ps := &ProductService{}

	assert.NoError(t, ps.validateOptions(&CatalogOptions{}))
	assert.NoError(t, ps.validateOptions(&CatalogOptions{Category: "tumblers", Tag: "gifts"}))
	assert.Error(t, ps.validateOptions(&CatalogOptions{Category: "glassware"}))
	assert.Error(t, ps.validateOptions(&CatalogOptions{Tag: "nope"}))
}

func TestValidateFields(t *testing.T) {
	// Fixture values must come from the real vocabularies
	fixture := validFields()
	require.True(t, structs.IsProductCategory(fixture.Category))
	for _, tag := range fixture.Tags {
		require.True(t, structs.IsProductTag(tag), "fixture tag %q not in vocabulary", tag)
	}

	assert.NoError(t, validateFields(fixture))

	cases := map[string]func(*imageset.ProductFields){
		"missing name":     func(f *imageset.ProductFields) { f.Name = "" },
		"missing company":  func(f *imageset.ProductFields) { f.Company = "" },
		"unknown category": func(f *imageset.ProductFields) { f.Category = "glassware" },
		"no tags":          func(f *imageset.ProductFields) { f.Tags = nil },
		"unknown tag":      func(f *imageset.ProductFields) { f.Tags = []string{"nope"} },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			fields := validFields()
			mutate(&fields)
			err := validateFields(fields)
			require.Error(t, err)
			assert.ErrorIs(t, err, imageset.ErrInvalid)
		})
	}
}

func TestBuildImageRows(t *testing.T) {
	productID := uuid.New()
	urls := []string{"https://cdn.test/a.webp", "https://cdn.test/b.webp", "https://cdn.test/c.webp"}

	rows := buildImageRows(productID, urls, 1, "Etched wine glass")
	require.Len(t, rows, 3)

	for i, row := range rows {
		assert.Equal(t, productID, row.ProductID)
		assert.Equal(t, urls[i], row.URL)
		assert.Equal(t, i, row.Position)
		assert.Equal(t, i == 1, row.IsPrimary)
		assert.Equal(t, "Etched wine glass", row.AltText)
	}
}
