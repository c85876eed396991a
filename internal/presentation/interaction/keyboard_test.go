package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	kr := &KeyboardReader{
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}

	tests := []struct {
		name     string
		input    []byte
		expected *KeyEvent
	}{
		{name: "regular char", input: []byte{'q'}, expected: &KeyEvent{Key: 'q', Type: KeyChar}},
		{name: "refresh key", input: []byte{'r'}, expected: &KeyEvent{Key: 'r', Type: KeyChar}},
		{name: "ctrl-c", input: []byte{3}, expected: &KeyEvent{Key: 3, Type: KeyChar}},
		{name: "bare escape", input: []byte{27}, expected: &KeyEvent{Key: 27, Type: KeyEscape}},
		{name: "arrow sequence ignored", input: []byte{27, '[', 'A'}, expected: nil},
		{name: "empty", input: nil, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := kr.parseInput(tt.input)
			if tt.expected == nil {
				assert.Nil(t, event)
				return
			}
			require.NotNil(t, event)
			assert.Equal(t, tt.expected.Key, event.Key)
			assert.Equal(t, tt.expected.Type, event.Type)
		})
	}
}
