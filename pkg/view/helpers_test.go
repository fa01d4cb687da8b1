package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$19.90", Money("19.9"))
	assert.Equal(t, "$0.00", Money(""))
	assert.Equal(t, "$abc", Money("abc"))
	assert.Equal(t, "€3.50", MoneyFromFloat(3.5, "EUR"))
}

func TestPercentAndShortID(t *testing.T) {
	assert.Equal(t, "+4.3%", Percent(4.26))
	assert.Equal(t, "-3.0%", Percent(-3))
	assert.Equal(t, "550e8", ShortID("550e8400-e29b"))
	assert.Equal(t, "ab", ShortID("ab"))
}
