package tests

import (
	"strings"
	"testing"

	"github.com/aretw0/vignette/pkg/ports"
)

// CatalogContractTest is a reusable test suite that verifies if an adapter complies with ports.Catalog.
// expected maps every keyword (id or alias) the adapter was seeded with to the id it must resolve to.
func CatalogContractTest(t *testing.T, catalog ports.Catalog, expected map[string]string) {
	t.Helper()

	t.Run("Lookup_Success", func(t *testing.T) {
		for keyword, wantID := range expected {
			block, ok := catalog.Lookup(keyword)
			if !ok {
				t.Fatalf("expected keyword %q to resolve", keyword)
			}
			if block.ID != wantID {
				t.Errorf("keyword %q resolved to %q, want %q", keyword, block.ID, wantID)
			}
		}
	})

	t.Run("Lookup_CaseInsensitive", func(t *testing.T) {
		for keyword, wantID := range expected {
			block, ok := catalog.Lookup(strings.ToUpper(keyword))
			if !ok || block.ID != wantID {
				t.Errorf("upper-cased keyword %q did not resolve to %q", keyword, wantID)
			}
		}
	})

	t.Run("Lookup_NotFound", func(t *testing.T) {
		if _, ok := catalog.Lookup("non-existent-keyword"); ok {
			t.Error("expected unknown keyword to miss")
		}
	})

	t.Run("Lookup_ReturnsCopy", func(t *testing.T) {
		for keyword := range expected {
			block, _ := catalog.Lookup(keyword)
			block.Aliases = append(block.Aliases[:0:0], "mutated")
			if len(block.Effects) > 0 {
				block.Effects[0] = "mutated"
			}
			again, _ := catalog.Lookup(keyword)
			for _, e := range again.Effects {
				if e == "mutated" {
					t.Fatalf("catalog entry for %q was mutated through a lookup result", keyword)
				}
			}
		}
	})
}
