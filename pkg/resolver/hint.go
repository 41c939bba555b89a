package resolver

import (
	"strings"

	"github.com/aretw0/vignette/pkg/domain"
)

// Hint is a parsed choreography hint.
type Hint struct {
	Position domain.Position
	Style    domain.MoveStyle

	// Still suppresses the synthesized entrance move.
	Still bool
}

// ParseHint reads a free-form hint such as "left", "drop-in" or "arc:right".
// Tokens may be separated by spaces, commas, colons, semicolons or '+'.
// Unknown tokens are ignored; later tokens win over earlier ones.
func ParseHint(raw string) Hint {
	var h Hint
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case ' ', '\t', ',', ':', ';', '+':
			return true
		}
		return false
	})
	for _, tok := range tokens {
		if p, ok := domain.ParsePosition(tok); ok {
			h.Position = p
			continue
		}
		if st, ok := domain.ParseMoveStyle(tok); ok {
			h.Style = st
			h.Still = false
			continue
		}
		switch strings.ToLower(tok) {
		case "still", "appear", "static", "pop":
			h.Still = true
			h.Style = ""
		}
	}
	return h
}
