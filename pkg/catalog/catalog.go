package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/vignette/pkg/domain"
)

// Catalog implements ports.Catalog over an in-memory alias index.
type Catalog struct {
	blocks map[string]domain.ActionBlock
	index  map[string]string // normalised keyword -> block id
}

// New builds a catalog from the given blocks.
// Every problem (missing id, duplicate keyword, bad limits) is reported at once.
func New(blocks ...domain.ActionBlock) (*Catalog, error) {
	c := &Catalog{
		blocks: make(map[string]domain.ActionBlock, len(blocks)),
		index:  make(map[string]string, len(blocks)*2),
	}

	var errs []error
	for _, b := range blocks {
		if err := validate(b); err != nil {
			errs = append(errs, err)
			continue
		}
		keys := append([]string{b.ID}, b.Aliases...)
		for _, k := range keys {
			key := normalize(k)
			if key == "" {
				continue
			}
			if owner, taken := c.index[key]; taken && owner != b.ID {
				errs = append(errs, &ValidationError{Block: b.ID, Reason: fmt.Sprintf("keyword %q already used by %q", k, owner)})
				continue
			}
			c.index[key] = b.ID
		}
		if _, dup := c.blocks[b.ID]; dup {
			errs = append(errs, &ValidationError{Block: b.ID, Reason: "duplicate id"})
			continue
		}
		c.blocks[b.ID] = copyBlock(b)
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return c, nil
}

// MustNew is like New but panics on invalid input. Intended for static tables.
func MustNew(blocks ...domain.ActionBlock) *Catalog {
	c, err := New(blocks...)
	if err != nil {
		panic(err)
	}
	return c
}

func validate(b domain.ActionBlock) error {
	switch {
	case strings.TrimSpace(b.ID) == "":
		return &ValidationError{Block: "<empty>", Reason: "missing id"}
	case b.MaxCount < 0:
		return &ValidationError{Block: b.ID, Reason: "max_count must not be negative"}
	case b.SpreadDistance < 0:
		return &ValidationError{Block: b.ID, Reason: "spread_distance must not be negative"}
	case b.Category == domain.CategoryReactionCombo && len(b.Effects) == 0:
		return &ValidationError{Block: b.ID, Reason: "reaction-combo without effects"}
	}
	if b.EnterStyle != "" {
		if _, ok := domain.ParseMoveStyle(string(b.EnterStyle)); !ok {
			return &ValidationError{Block: b.ID, Reason: fmt.Sprintf("unknown enter_style %q", b.EnterStyle)}
		}
	}
	return nil
}

// Lookup resolves an id or alias, ignoring case and surrounding whitespace.
// The returned block is a copy.
func (c *Catalog) Lookup(keyword string) (domain.ActionBlock, bool) {
	id, ok := c.index[normalize(keyword)]
	if !ok {
		return domain.ActionBlock{}, false
	}
	return copyBlock(c.blocks[id]), true
}

// Blocks returns every entry sorted by id.
func (c *Catalog) Blocks() []domain.ActionBlock {
	out := make([]domain.ActionBlock, 0, len(c.blocks))
	for _, b := range c.blocks {
		out = append(out, copyBlock(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.blocks)
}

func normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

func copyBlock(b domain.ActionBlock) domain.ActionBlock {
	if b.Aliases != nil {
		b.Aliases = append([]string(nil), b.Aliases...)
	}
	if b.Effects != nil {
		b.Effects = append([]string(nil), b.Effects...)
	}
	return b
}
