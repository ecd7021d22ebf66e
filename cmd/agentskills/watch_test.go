package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WatchConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*WatchConfig) {}},
		{name: "bad verbosity", mutate: func(c *WatchConfig) { c.Verbosity = "loud" }, wantErr: true},
		{name: "negative debounce", mutate: func(c *WatchConfig) { c.DebounceTime = -1 }, wantErr: true},
		{name: "bad include pattern", mutate: func(c *WatchConfig) { c.Include = "*.{md" }, wantErr: true},
		{name: "empty include", mutate: func(c *WatchConfig) { c.Include = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewWatchConfig()
			tt.mutate(c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

func TestInIgnoredDir(t *testing.T) {
	root := filepath.Join("/", "catalog")
	ignore := []string{".git", "node_modules"}

	assert.True(t, inIgnoredDir(root, filepath.Join(root, ".git", "index"), ignore))
	assert.True(t, inIgnoredDir(root, filepath.Join(root, "core", "node_modules", "x.md"), ignore))
	assert.False(t, inIgnoredDir(root, filepath.Join(root, "core", "git", "SKILL.md"), ignore))
}

func TestDebounceFileEventsCollapsesBursts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan FileEvent)
	out := make(chan FileEvent, 4)
	go debounceFileEvents(ctx, in, out, 30*time.Millisecond)

	for _, name := range []string{"a.md", "b.md", "c.md"} {
		in <- FileEvent{Path: name, Op: fsnotify.Write, Time: time.Now()}
	}

	select {
	case ev := <-out:
		assert.Equal(t, "c.md", ev.Path)
	case <-time.After(time.Second):
		require.FailNow(t, "no debounced event")
	}

	select {
	case ev := <-out:
		t.Fatalf("unexpected second event %v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebounceFileEventsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan FileEvent)
	out := make(chan FileEvent)
	done := make(chan struct{})
	go func() {
		debounceFileEvents(ctx, in, out, time.Hour)
		close(done)
	}()

	in <- FileEvent{Path: "a.md"}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "debouncer did not stop")
	}
}
