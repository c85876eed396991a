package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"

	ClearScreen     = "\033[2J"   // Clear entire screen
	ClearLine       = "\033[2K"   // Clear entire line
	ClearToEnd      = "\033[J"    // Clear from cursor to end of screen
	ClearScrollback = "\033[3J"   // Clear scrollback buffer
	MoveCursorHome  = "\033[H"    // Move cursor to home position
	HideCursor      = "\033[?25l" // Hide cursor
	ShowCursor      = "\033[?25h" // Show cursor
	AltScreenEnter  = "\033[?1049h"
	AltScreenExit   = "\033[?1049l"
)

// GetDisplayWidth calculates the display width of a string, accounting
// for wide runes.
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// CenterText centers text within the given width
func CenterText(text string, width int) string {
	w := GetDisplayWidth(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return fmt.Sprintf("%s%s%s", strings.Repeat(" ", padding), text, strings.Repeat(" ", width-padding-w))
}
