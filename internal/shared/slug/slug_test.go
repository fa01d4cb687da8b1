package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	assert.Equal(t, "mens-boots", Make("  Mens Boots "))
	assert.Equal(t, "kids", Make("KIDS"))
	assert.True(t, IsValid(Make("Western Hats & Caps")))
}

func TestFromNameFallback(t *testing.T) {
	assert.Equal(t, "category", FromName("  ", "category"))
	assert.Equal(t, "boots", FromName("Boots", "category"))
}
