package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{
		CategorySimple, CategoryOversized, CategoryDelave,
		CategorySweatshirt, CategoryHoodie, CategoryTote, CategoryAnime,
	} {
		assert.True(t, c.Valid(), "%s should be valid", c)
	}
	assert.False(t, Category("jeans").Valid())
	assert.False(t, Category("").Valid())
}

func TestAnimeTagValid(t *testing.T) {
	assert.True(t, AnimeOnePiece.Valid())
	assert.True(t, AnimeOther.Valid())
	assert.False(t, AnimeTag("pokemon").Valid())
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, s.Valid())
	}
	assert.False(t, OrderStatus("returned").Valid())
}

func TestImagesForColorFallback(t *testing.T) {
	p := Product{
		Images: []string{"default-1.jpg", "default-2.jpg"},
		ColorImages: map[string][]string{
			"Black": {"black-1.jpg"},
			"White": {},
		},
	}

	assert.Equal(t, []string{"black-1.jpg"}, p.ImagesForColor("Black"))
	// Empty mapping falls back to the default list.
	assert.Equal(t, []string(p.Images), p.ImagesForColor("White"))
	assert.Equal(t, []string(p.Images), p.ImagesForColor("Red"))
}

func TestHasSizeHasColor(t *testing.T) {
	p := Product{
		Sizes:  []string{"S", "M", "L"},
		Colors: []string{"Black", "White"},
	}

	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("XXL"))
	assert.True(t, p.HasColor("Black"))
	assert.False(t, p.HasColor("Red"))
}
