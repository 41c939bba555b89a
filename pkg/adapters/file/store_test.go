package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/vignette/pkg/adapters/file"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunScriptStoreContract(t, store)
}

func TestFileStore_EmptyDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "does-not-exist"))

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStore_Overwrite(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s", &domain.StagedScript{Narration: "one"}))
	require.NoError(t, store.Save(ctx, "s", &domain.StagedScript{Narration: "two"}))

	got, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "two", got.Narration)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStore_RejectsBadIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", `a\b`, ".."} {
		assert.Error(t, store.Save(ctx, id, &domain.StagedScript{}), id)
		_, err := store.Load(ctx, id)
		assert.Error(t, err, id)
		assert.Error(t, store.Delete(ctx, id), id)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644))

	_, err := file.New(dir).Load(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrScriptNotFound)
}
