package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestNewDefaults(t *testing.T) {
	w := newWatcher(t)
	assert.Equal(t, 100*time.Millisecond, w.debounce)
	assert.Equal(t, 16, cap(w.events))
}

func TestOperationString(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestWatchTwice(t *testing.T) {
	w := newWatcher(t)
	path := filepath.Join(t.TempDir(), "config.cfg")

	require.NoError(t, w.Watch(path))
	assert.True(t, w.IsWatching(path))
	assert.ErrorIs(t, w.Watch(path), ErrAlreadyWatching)

	require.NoError(t, w.Unwatch(path))
	assert.False(t, w.IsWatching(path))
}

func TestWatchAfterClose(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.ErrorIs(t, w.Watch(filepath.Join(t.TempDir(), "x")), ErrWatcherClosed)
}

func TestDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.cfg")
	require.NoError(t, os.WriteFile(path, []byte("bind a \"+attack\"\n"), 0o644))

	w := newWatcher(t, WithDebounce(20*time.Millisecond))
	require.NoError(t, w.Watch(path))

	require.NoError(t, os.WriteFile(path, []byte("bind b \"+attack\"\n"), 0o644))

	ev := waitEvent(t, w)
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, abs, ev.Path)
}

func TestDetectsCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.cfg")

	w := newWatcher(t, WithDebounce(20*time.Millisecond))
	require.NoError(t, w.Watch(path))

	require.NoError(t, os.WriteFile(path, []byte("unbindall\n"), 0o644))

	ev := waitEvent(t, w)
	assert.Equal(t, filepath.Base(path), filepath.Base(ev.Path))
}

func TestIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.cfg")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w := newWatcher(t, WithDebounce(20*time.Millisecond))
	require.NoError(t, w.Watch(path))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.cfg"), []byte("x"), 0o644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for %s", ev.Path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestDebounceCollapsesBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.cfg")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w := newWatcher(t, WithDebounce(150*time.Millisecond))
	require.NoError(t, w.Watch(path))

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}

	waitEvent(t, w)
	select {
	case <-w.Events():
		t.Fatal("burst produced more than one event")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestCloseClosesChannels(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, ok := <-w.Events()
	assert.False(t, ok)
	_, ok = <-w.Errors()
	assert.False(t, ok)
}
