package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{3, "3"},
		{-3, "-3"},
		{3.5, "3.500000"},
		{-0.25, "-0.250000"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, formatNumber(c.in), "formatNumber(%v)", c.in)
	}
}

func TestIsInt32Valued(t *testing.T) {
	assert.True(t, isInt32Valued(42))
	assert.False(t, isInt32Valued(42.5))
	assert.False(t, isInt32Valued(1<<40))
}
