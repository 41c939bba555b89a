package rehearsal

import (
	"errors"
	"testing"
	"time"

	"github.com/aretw0/vignette/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost_VirtualClock(t *testing.T) {
	h := New()
	id, err := h.Spawn(domain.Visual{Asset: "cat"}, domain.Vec2{X: 100, Y: 200})
	require.NoError(t, err)

	<-h.Tween(
		domain.Tween{Target: id, Property: domain.PropX, From: 100, To: 400, Duration: 800 * time.Millisecond},
		domain.Tween{Target: id, Property: domain.PropAlpha, From: 1, To: 0.5, Duration: 200 * time.Millisecond},
	)
	assert.Equal(t, 800*time.Millisecond, h.Now(), "a batch costs its longest tween")

	<-h.After(250 * time.Millisecond)
	assert.Equal(t, 1050*time.Millisecond, h.Now())

	obj, ok := h.Object(id)
	require.True(t, ok)
	assert.Equal(t, domain.Vec2{X: 400, Y: 200}, obj.Position())
	assert.Equal(t, 0.5, obj.Alpha)
}

func TestHost_Timeline(t *testing.T) {
	h := New(WithSounds("pop"))
	id, _ := h.Spawn(domain.Visual{Asset: "cat"}, domain.Vec2{})
	<-h.After(time.Second)
	h.PlaySound("pop")
	h.PlaySound("moo")
	h.Destroy(id)
	h.Destroy(id)

	events := h.Events()
	require.Len(t, events, 6)
	assert.Equal(t, OpSpawn, events[0].Op)
	assert.Equal(t, time.Second, events[2].At)
	assert.False(t, events[2].Missed)
	assert.True(t, events[3].Missed)
	assert.False(t, events[4].Missed)
	assert.True(t, events[5].Missed, "second destroy targets an unknown handle")
	assert.Equal(t, 2, h.Count(OpSound))
	assert.Empty(t, h.Live())
}

func TestHost_SpawnFault(t *testing.T) {
	boom := errors.New("boom")
	h := New(WithSpawnFault(func(v domain.Visual) error {
		if v.Asset == "bad" {
			return boom
		}
		return nil
	}))

	_, err := h.Spawn(domain.Visual{Asset: "bad"}, domain.Vec2{})
	assert.ErrorIs(t, err, boom)

	_, err = h.Spawn(domain.Visual{Asset: "good"}, domain.Vec2{})
	assert.NoError(t, err)
	assert.Len(t, h.Live(), 1)
}

func TestHost_Reset(t *testing.T) {
	h := New()
	_, _ = h.Spawn(domain.Visual{}, domain.Vec2{})
	<-h.After(time.Second)

	h.Reset()
	assert.Zero(t, h.Now())
	assert.Empty(t, h.Events())
	assert.Empty(t, h.Live())
}
