package cli

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/vignette/internal/logging"
	"github.com/aretw0/vignette/pkg/catalog"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves the default catalog and emits whatever is sent on watchCh.
type fakeSource struct {
	watchCh chan string
}

func (f *fakeSource) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	return catalog.Default(), nil
}

func (f *fakeSource) Watch(ctx context.Context) (<-chan string, error) {
	return f.watchCh, nil
}

func TestWatchCompile_ReloadsRequestOnChange(t *testing.T) {
	src := &fakeSource{watchCh: make(chan string)}

	var mu sync.Mutex
	keyword := "cat"
	load := func() (domain.Request, error) {
		mu.Lock()
		defer mu.Unlock()
		if keyword == "" {
			return domain.Request{}, errors.New("request vanished")
		}
		return domain.Request{Elements: []domain.Element{{Keyword: keyword}}}, nil
	}

	results := make(chan *domain.StagedScript, 4)
	failures := make(chan error, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watchCompile(ctx, src, load, logging.NewNop(), nil, func(s *domain.StagedScript, err error) {
			if err != nil {
				failures <- err
				return
			}
			results <- s
		})
	}()

	first := <-results
	require.NotEmpty(t, first.Actions)
	assert.Equal(t, "cat", first.Actions[0].Target)

	mu.Lock()
	keyword = "dog"
	mu.Unlock()
	src.watchCh <- "request"

	select {
	case second := <-results:
		require.NotEmpty(t, second.Actions)
		assert.Equal(t, "dog", second.Actions[0].Target, "the request file is re-read on change")
	case <-time.After(time.Second):
		t.Fatal("no recompile after change")
	}

	mu.Lock()
	keyword = ""
	mu.Unlock()
	src.watchCh <- "request"

	select {
	case err := <-failures:
		assert.ErrorContains(t, err, "request reload failed")
	case <-time.After(time.Second):
		t.Fatal("broken request was not reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
