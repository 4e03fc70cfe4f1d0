// Package progress provides the background progress monitor for build runs.
package progress

import (
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Bar wraps the charmbracelet/bubbles progress bar for static rendering.
// Supports NO_COLOR compatibility.
type Bar struct {
	bar progress.Model
}

// NewBar creates a progress bar of the given width.
// Uses a gradient fill for styled rendering, solid fill in NO_COLOR mode.
func NewBar(width int) *Bar {
	var bar progress.Model

	if HasColorSupport() {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithScaledGradient("#5F8700", "#AFD700"),
		)
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithSolidFill("#808080"),
		)
	}

	return &Bar{bar: bar}
}

// Render returns the bar as a string for the given percentage (0.0-1.0).
// Uses ViewAs for static rendering (no animation).
func (b *Bar) Render(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	return b.bar.ViewAs(percent)
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or
// TERM=dumb, following the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}
