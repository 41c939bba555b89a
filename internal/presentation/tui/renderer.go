package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// If the renderer cannot be built the markdown is returned unchanged.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return Plain
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Plain is a renderer that only trims the input.
func Plain(markdown string) (string, error) {
	return strings.TrimSpace(markdown) + "\n", nil
}
