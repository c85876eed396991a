package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCallDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int
		expected string
	}{
		{name: "zero", seconds: 0, expected: "0:00"},
		{name: "under a minute", seconds: 42, expected: "0:42"},
		{name: "minutes", seconds: 125, expected: "2:05"},
		{name: "exactly an hour", seconds: 3600, expected: "1:00:00"},
		{name: "hours", seconds: 3725, expected: "1:02:05"},
		{name: "negative clamps to zero", seconds: -5, expected: "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCallDuration(tt.seconds))
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1.5K", FormatCount(1500))
}
