package pipeline

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/teranos/iconforge/am"
	"github.com/teranos/iconforge/errors"
	forgetest "github.com/teranos/iconforge/internal/testing"
)

func TestRelevant(t *testing.T) {
	p := newPipeline(t, am.Defaults(t.TempDir()))

	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"star.svg", fsnotify.Create, true},
		{"star.svg", fsnotify.Write, true},
		{"star.svg", fsnotify.Remove, true},
		{"star.svg", fsnotify.Rename, true},
		{"star.svg", fsnotify.Chmod, false},
		{"star.json", fsnotify.Write, true},
		{"notes.txt", fsnotify.Write, false},
		{".star.svg.swp", fsnotify.Write, false},
		{".hidden.svg", fsnotify.Create, false},
	}

	for _, tt := range tests {
		event := fsnotify.Event{Name: filepath.Join("/icons", tt.name), Op: tt.op}
		assert.Equal(t, tt.want, p.relevant(event), "%s %s", tt.name, tt.op)
	}

	p.cfg.Synth.Sidecars = false
	assert.False(t, p.relevant(fsnotify.Event{Name: "star.json", Op: fsnotify.Write}))
}

func TestNewLimiter(t *testing.T) {
	assert.Equal(t, rate.Inf, newLimiter(0).Limit())
	assert.Equal(t, rate.Limit(0.5), newLimiter(30).Limit())
}

func TestWatchRebuildsOnChange(t *testing.T) {
	cfg := forgetest.NewProject(t, "star")
	cfg.Watch.DebounceMS = 20
	cfg.Watch.MaxRebuildsPerMinute = 0

	builds := make(chan *Result, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- newPipeline(t, cfg).Watch(ctx, func(r *Result, err error) {
			if err == nil {
				builds <- r
			}
		})
	}()

	next := func() *Result {
		t.Helper()
		select {
		case r := <-builds:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a build")
			return nil
		}
	}

	assert.Equal(t, 1, next().Icons, "initial build")

	forgetest.WriteIcons(t, cfg.SourceDir(), "moon")
	assert.Equal(t, 2, next().Icons)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchMissingSourceDir(t *testing.T) {
	cfg := am.Defaults(t.TempDir())

	err := newPipeline(t, cfg).Watch(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsMissingInput(err))
}
