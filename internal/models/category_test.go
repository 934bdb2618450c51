package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryName_Valid(t *testing.T) {
	for _, n := range []CategoryName{CategoryWeb, CategoryMobile, CategoryData, CategoryDesign, CategoryAI, CategoryOther} {
		assert.True(t, n.Valid(), string(n))
	}
	assert.False(t, CategoryName("").Valid())
	assert.False(t, CategoryName("gaming").Valid())
}

func TestProjectCategory_BeforeSave(t *testing.T) {
	category := ProjectCategory{Name: CategoryWeb}
	require.NoError(t, category.BeforeSave(nil))
	assert.Equal(t, "web", category.Slug)

	bad := ProjectCategory{Name: "gaming"}
	assert.ErrorIs(t, bad.BeforeSave(nil), ErrInvalidCategoryName)
}
