package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProductCategory(t *testing.T) {
	for _, category := range ProductCategories {
		assert.True(t, IsProductCategory(category), "expected %q to be a valid category", category)
	}

	assert.False(t, IsProductCategory("glassware"))
	assert.False(t, IsProductCategory(""))
	assert.False(t, IsProductCategory("Tumblers"), "matching is case sensitive")
}

func TestIsProductTag(t *testing.T) {
	for _, tag := range ProductTags {
		assert.True(t, IsProductTag(tag), "expected %q to be a valid tag", tag)
	}

	assert.False(t, IsProductTag("unknown-tag"))
	assert.False(t, IsProductTag(""))
}
