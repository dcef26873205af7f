package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keyroute/internal/input/binding"
	"github.com/dshills/keyroute/internal/input/key"
)

func newScript() (*Script, *binding.Store, *printer) {
	store := binding.NewStore()
	p := &printer{}
	return &Script{Store: store, Printer: p}, store, p
}

func TestScriptBind(t *testing.T) {
	s, store, p := newScript()

	src := `
for i = 1, 4 do
  bind("F" .. i, "weapon " .. i)
end
bind("MOUSE1", "+attack")
print(binding("F2"), keycode("MOUSE1"), keyname(13))
`
	require.NoError(t, s.RunString(context.Background(), "binds.lua", src))

	text, ok := store.Get(key.F2)
	require.True(t, ok)
	assert.Equal(t, "weapon 2", text)
	text, ok = store.Get(key.Mouse1)
	require.True(t, ok)
	assert.Equal(t, "+attack", text)

	assert.Equal(t, "weapon 2\t200\tENTER\n", p.String())
}

func TestScriptBadKey(t *testing.T) {
	s, store, p := newScript()

	require.NoError(t, s.RunString(context.Background(), "bad.lua", `ok = bind("NOPE", "x"); assert(ok == false)`))
	assert.Equal(t, "\"NOPE\" isn't a valid key\n", p.String())
	assert.Equal(t, 0, store.Len())
}

func TestScriptUnbind(t *testing.T) {
	s, store, _ := newScript()
	store.Set('a', "+moveleft")
	store.Set('b', "+moveright")

	require.NoError(t, s.RunString(context.Background(), "u.lua", `unbind("a")`))
	assert.False(t, store.Has('a'))
	assert.True(t, store.Has('b'))

	require.NoError(t, s.RunString(context.Background(), "u.lua", `unbindall()`))
	assert.Equal(t, 0, store.Len())
}

func TestScriptBindingNil(t *testing.T) {
	s, _, _ := newScript()
	require.NoError(t, s.RunString(context.Background(), "n.lua", `assert(binding("x") == nil)`))
}

func TestScriptSandbox(t *testing.T) {
	s, _, _ := newScript()
	for _, src := range []string{
		`io.write("x")`,
		`os.exit(1)`,
		`dofile("/etc/passwd")`,
		`require("os")`,
	} {
		err := s.RunString(context.Background(), "evil.lua", src)
		assert.ErrorIs(t, err, ErrScript, src)
	}
}

func TestScriptSyntaxError(t *testing.T) {
	s, _, _ := newScript()
	err := s.RunString(context.Background(), "syntax.lua", `bind("a"`)
	assert.ErrorIs(t, err, ErrScript)
	assert.Contains(t, err.Error(), "syntax.lua")
}

func TestScriptTimeout(t *testing.T) {
	s, _, _ := newScript()
	s.Timeout = 50 * time.Millisecond

	start := time.Now()
	err := s.RunString(context.Background(), "loop.lua", `while true do end`)
	assert.ErrorIs(t, err, ErrScript)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestScriptExec(t *testing.T) {
	s, store, p := newScript()
	s.Exec = newRegistry(store, p)

	require.NoError(t, s.RunString(context.Background(), "e.lua", `exec('bind SPACE "+moveup"')`))
	text, ok := store.Get(key.Space)
	require.True(t, ok)
	assert.Equal(t, "+moveup", text)
}

func TestScriptExecUnavailable(t *testing.T) {
	s, _, _ := newScript()
	err := s.RunString(context.Background(), "e.lua", `exec("unbindall")`)
	assert.ErrorIs(t, err, ErrScript)
}

func TestScriptRunFile(t *testing.T) {
	s, store, _ := newScript()
	path := filepath.Join(t.TempDir(), "binds.lua")
	require.NoError(t, os.WriteFile(path, []byte(`bind("TAB", "inven")`), 0o644))

	require.NoError(t, s.RunFile(context.Background(), path))
	text, ok := store.Get(key.Tab)
	require.True(t, ok)
	assert.Equal(t, "inven", text)
}
