package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/vignette/internal/testutils"
	"github.com/aretw0/vignette/pkg/catalog"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seed = map[string]string{
	"cat.md": `---
id: cat
aliases: [kitty, kitten]
category: animal
default_animation: idle
enter_style: walk
supports_group: true
max_count: 5
spread_distance: 1.5
---
A curious cat.`,
	"wizard.yaml": `aliases:
  - mage
category: character
enter_style: spin
effects:
  - sparkles
`,
	"finale.json": `{
  "id": "sparkler-finale",
  "category": "reaction-combo",
  "effects": ["confetti", "sparkles"]
}`,
}

func newLoader(t *testing.T, files map[string]string) *CatalogLoader {
	t.Helper()
	dir, repo := testutils.SetupTestRepo(t, loam.WithStrict(true))
	testutils.SeedFiles(t, dir, files)
	return New(loam.NewTypedRepository[BlockMetadata](repo))
}

func TestCatalogLoader_Blocks(t *testing.T) {
	loader := newLoader(t, seed)

	blocks, err := loader.Blocks(context.Background())
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	assert.Equal(t, "cat", blocks[0].ID)
	assert.Equal(t, domain.CategoryAnimal, blocks[0].Category)
	assert.Equal(t, domain.StyleWalk, blocks[0].EnterStyle)
	assert.True(t, blocks[0].SupportsGroup)
	assert.Equal(t, 5, blocks[0].MaxCount)
	assert.Equal(t, 1.5, blocks[0].SpreadDistance)
	assert.Equal(t, []string{"kitty", "kitten"}, blocks[0].Aliases)

	assert.Equal(t, "sparkler-finale", blocks[1].ID)
	assert.Equal(t, domain.CategoryReactionCombo, blocks[1].Category)

	assert.Equal(t, "wizard", blocks[2].ID, "id is implied from the file name")
	assert.Equal(t, domain.StyleSpinIn, blocks[2].EnterStyle, "style aliases are normalised")
}

func TestCatalogLoader_Catalog(t *testing.T) {
	loader := newLoader(t, seed)

	c, err := loader.Catalog(context.Background())
	require.NoError(t, err)

	tests.CatalogContractTest(t, c, map[string]string{
		"cat":             "cat",
		"Kitten":          "cat",
		"mage":            "wizard",
		"sparkler-finale": "sparkler-finale",
	})
}

func TestCatalogLoader_CatalogValidation(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"a.md": "---\nid: a\naliases: [shared]\n---\n",
		"b.md": "---\nid: b\naliases: [shared]\nenter_style: teleport\n---\n",
	})

	_, err := loader.Catalog(context.Background())
	require.Error(t, err)

	var agg *catalog.AggregateError
	require.ErrorAs(t, err, &agg)
	assert.NotEmpty(t, agg.Errors)
}

func TestCatalogLoader_DetectsCollisions(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"dog.md":   "---\nid: dog\n---\nWoof",
		"dog.json": `{"id": "dog"}`,
	})

	_, err := loader.Blocks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestCatalogLoader_Block(t *testing.T) {
	loader := newLoader(t, seed)

	b, err := loader.Block(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, "cat", b.ID)

	_, err = loader.Block(context.Background(), "unicorn")
	assert.Error(t, err)
}

func TestBlockMetadata_Defaults(t *testing.T) {
	b := BlockMetadata{}.Block("props/tree.md")
	assert.Equal(t, "props/tree", b.ID)
	assert.Equal(t, domain.CategoryProp, b.Category)
	assert.Empty(t, b.EnterStyle)
}
