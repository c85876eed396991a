package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDisplayWidth(t *testing.T) {
	assert.Equal(t, 5, GetDisplayWidth("hello"))
	assert.Equal(t, 4, GetDisplayWidth("日本"), "wide runes count double")
	assert.Equal(t, 0, GetDisplayWidth(""))
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{name: "even padding", text: "ab", width: 6, expected: "  ab  "},
		{name: "odd padding leans left", text: "abc", width: 6, expected: " abc  "},
		{name: "exact width unchanged", text: "abcdef", width: 6, expected: "abcdef"},
		{name: "wider than width unchanged", text: "abcdefgh", width: 6, expected: "abcdefgh"},
		{name: "wide runes measured by display width", text: "日本", width: 8, expected: "  日本  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CenterText(tt.text, tt.width))
		})
	}
}
