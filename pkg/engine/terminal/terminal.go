// Package terminal answers questions about the output terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Size returns the width and height of the terminal behind f.
// Falls back to defaults if f is not a terminal.
func Size(f *os.File) (width, height int) {
	if f == nil {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Width returns the width of the terminal behind f
func Width(f *os.File) int {
	width, _ := Size(f)
	return width
}

// IsInteractive returns true if f is attached to a terminal, so colour
// output makes sense
func IsInteractive(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
