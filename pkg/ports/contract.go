package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/vignette/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunScriptStoreContract runs a suite of tests to verify that a ScriptStore implementation
// adheres to the defined interface contract.
func RunScriptStoreContract(t *testing.T, store ScriptStore) {
	ctx := context.Background()
	scriptID := "contract-test-script-" + time.Now().Format("20060102150405")

	sample := func(id string) *domain.StagedScript {
		return &domain.StagedScript{
			ID:             id,
			Scene:          "park",
			Classification: domain.ClassSuccess,
			Narration:      "A cat walks in.",
			Actions: []domain.StagedAction{
				{
					Action: domain.Action{Kind: domain.KindSpawn, Target: "cat", Asset: "cat", Position: domain.PositionOffstageLeft},
					At:     domain.Vec2{X: -150, Y: 400},
				},
				{
					Action: domain.Action{Kind: domain.KindMove, Target: "cat", Position: domain.PositionCenter, DurationMS: 1625},
					At:     domain.Vec2{X: 500, Y: 400},
					Slot:   "center/mid",
				},
			},
			Missing: []string{"unicorn"},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		script := sample(scriptID)

		err := store.Save(ctx, scriptID, script)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, scriptID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, script.Scene, loaded.Scene)
		assert.Equal(t, script.Narration, loaded.Narration)
		require.Len(t, loaded.Actions, 2)
		assert.Equal(t, domain.KindMove, loaded.Actions[1].Kind)
		assert.Equal(t, 1625, loaded.Actions[1].DurationMS)
		assert.Equal(t, domain.Vec2{X: 500, Y: 400}, loaded.Actions[1].At)
		assert.Equal(t, []string{"unicorn"}, loaded.Missing)
	})

	t.Run("Load Returns Isolated Copy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, scriptID, sample(scriptID)))

		first, err := store.Load(ctx, scriptID)
		require.NoError(t, err)
		first.Actions[0].Target = "mutated"

		second, err := store.Load(ctx, scriptID)
		require.NoError(t, err)
		assert.Equal(t, "cat", second.Actions[0].Target)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+scriptID)
		assert.ErrorIs(t, err, domain.ErrScriptNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, scriptID, sample(scriptID)))

		err := store.Delete(ctx, scriptID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, scriptID)
		assert.ErrorIs(t, err, domain.ErrScriptNotFound, "Load after Delete should return ErrScriptNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := scriptID + "-1"
		id2 := scriptID + "-2"
		_ = store.Save(ctx, id1, sample(id1))
		_ = store.Save(ctx, id2, sample(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
