package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/keyroute/internal/command"
	"github.com/dshills/keyroute/internal/config"
	"github.com/dshills/keyroute/internal/config/watcher"
	"github.com/dshills/keyroute/internal/input"
	"github.com/dshills/keyroute/internal/input/key"
	"github.com/dshills/keyroute/internal/input/mode"
	"github.com/dshills/keyroute/internal/platform/terminal"
)

type fakeScreen struct {
	out    strings.Builder
	status string
}

func (s *fakeScreen) Printf(format string, args ...any) {
	fmt.Fprintf(&s.out, format, args...)
}

func (s *fakeScreen) SetStatus(status string) {
	s.status = status
}

type testClient struct {
	*Application
	screen *fakeScreen
	clock  uint32
}

func newTestClient(t *testing.T, mutate func(*config.Config)) *testClient {
	t.Helper()
	cfg := config.Default()
	cfg.Bindings.File = filepath.Join(t.TempDir(), "config.cfg")
	cfg.Bindings.Watch = false
	if mutate != nil {
		mutate(cfg)
	}

	screen := &fakeScreen{}
	app, err := New(Options{
		Config:  cfg,
		Screen:  screen,
		Logger:  NewLogger(LoggerConfig{Level: LogLevelDebug, Output: io.Discard}),
		Version: "test",
	})
	require.NoError(t, err)
	return &testClient{Application: app, screen: screen}
}

func (c *testClient) key(code key.Code, down bool) {
	c.clock += 10
	c.dispatcher.Dispatch(code, down, c.clock)
}

func (c *testClient) press(codes ...key.Code) {
	for _, code := range codes {
		c.key(code, true)
		c.key(code, false)
	}
}

func (c *testClient) typeText(text string) {
	for _, r := range text {
		c.press(key.Code(r))
	}
}

func (c *testClient) run(line string) {
	c.queue.AddText(line + "\n")
	_ = c.frame()
}

func (c *testClient) connectNow(t *testing.T) {
	t.Helper()
	c.run("connect")
	require.True(t, c.session.Active())
	require.Equal(t, mode.Game, c.router.Destination())
}

func TestStartupOpensMainMenuWithDefaults(t *testing.T) {
	c := newTestClient(t, nil)

	assert.Equal(t, mode.Menu, c.router.Destination())
	assert.Equal(t, input.MenuMain, c.menu.current)

	text, ok := c.store.Get('w')
	require.True(t, ok)
	assert.Equal(t, "+forward", text)
}

func TestStartupWithoutDefaults(t *testing.T) {
	c := newTestClient(t, func(cfg *config.Config) { cfg.Bindings.Defaults = false })
	assert.Equal(t, 0, c.store.Len())
}

func TestInvalidStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Strategy = "scancodes"
	_, err := New(Options{Config: cfg, Logger: NullLogger})
	assert.ErrorIs(t, err, ErrInitialization)
}

func TestMenuConnect(t *testing.T) {
	c := newTestClient(t, nil)

	c.press(key.Enter)
	require.NoError(t, c.frame())

	assert.True(t, c.session.Active())
	assert.Equal(t, mode.Game, c.router.Destination())
	assert.Contains(t, c.screen.out.String(), "connected\n")
}

func TestButtonPressAndRelease(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)

	c.key('w', true)
	require.NoError(t, c.frame())
	assert.Equal(t, []string{"forward"}, c.buttons.Held())
	assert.Contains(t, c.screen.status, "+forward")

	c.key('w', false)
	require.NoError(t, c.frame())
	assert.Empty(t, c.buttons.Held())
	assert.Equal(t, uint32(10), c.buttons.HeldTime("forward", 0))
}

func TestTwoKeysOneButton(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)

	c.key('w', true)
	c.key(key.UpArrow, true)
	c.key('w', false)
	require.NoError(t, c.frame())
	assert.Equal(t, []string{"forward"}, c.buttons.Held(), "still held by UPARROW")

	c.key(key.UpArrow, false)
	require.NoError(t, c.frame())
	assert.Empty(t, c.buttons.Held())
}

func TestEscapeOpensGameMenu(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)

	c.press(key.Escape)
	assert.Equal(t, mode.Menu, c.router.Destination())
	assert.Equal(t, input.MenuGame, c.menu.current)

	c.press(key.Escape)
	assert.Equal(t, mode.Game, c.router.Destination())
}

func TestConsoleTypingAndExecution(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)

	c.press('`')
	require.True(t, c.router.Destination().Has(mode.Console))

	c.typeText("echo hi")
	assert.Equal(t, "echo hi", c.console.Input())
	require.NoError(t, c.frame())
	assert.Contains(t, c.screen.status, "]echo hi_")

	c.press(key.Enter)
	require.NoError(t, c.frame())
	out := c.screen.out.String()
	assert.Contains(t, out, "]echo hi\n")
	assert.Contains(t, out, "hi\n")

	c.press(key.UpArrow)
	assert.Equal(t, "echo hi", c.console.Input())

	c.press(key.Escape)
	assert.Equal(t, mode.Game, c.router.Destination())
}

func TestConsoleShiftedCharacters(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)
	c.press('`')

	c.key(key.Shift, true)
	c.press('a', '1')
	c.key(key.Shift, false)

	assert.Equal(t, "A!", c.console.Input())
}

func TestConsoleCompletion(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)
	c.press('`')

	c.typeText("writeb")
	c.press(key.Tab)
	assert.Equal(t, "writebindings ", c.console.Input())
}

func TestUnknownCommand(t *testing.T) {
	c := newTestClient(t, nil)
	c.run("frobnicate")
	assert.Contains(t, c.screen.out.String(), "Unknown command \"frobnicate\"\n")
}

func TestMessageMode(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)

	c.press('t')
	require.NoError(t, c.frame())
	require.Equal(t, mode.Message, c.router.Destination())

	c.typeText("gg")
	c.press(key.Enter)
	require.NoError(t, c.frame())

	assert.Equal(t, mode.Game, c.router.Destination())
	assert.Contains(t, c.screen.out.String(), "player: gg\n")
}

func TestInventoryPutaway(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)

	c.press(key.Tab)
	require.NoError(t, c.frame())
	require.True(t, c.session.OverlayActive())

	c.press(key.Escape)
	assert.False(t, c.session.OverlayActive())
	assert.Equal(t, mode.Game, c.router.Destination())
}

func TestBindNext(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)

	c.run("bindnext +attack")
	c.press(key.F5)

	text, ok := c.store.Get(key.F5)
	require.True(t, ok)
	assert.Equal(t, "+attack", text)
	assert.NotContains(t, c.queue.Drain(), "+attack", "the bound key itself was swallowed")
}

func TestBindNextEscapeCancels(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)

	c.run("bindnext +attack")
	c.press(key.Escape)

	text, _ := c.store.Get(key.Escape)
	assert.NotEqual(t, "+attack", text)
	assert.Equal(t, mode.Game, c.router.Destination())
	assert.Contains(t, c.screen.out.String(), "cancelled\n")
}

func TestDisconnectReleasesButtons(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)

	c.key(key.Mouse1, true)
	require.NoError(t, c.frame())
	require.Equal(t, []string{"attack"}, c.buttons.Held())

	c.run("disconnect")
	assert.Empty(t, c.buttons.Held())
	assert.True(t, c.router.Destination().Has(mode.Console), "console is forced while disconnected")
}

func TestFocusLossClearsKeys(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)

	c.key('w', true)
	c.handleEvent(terminal.Event{Kind: terminal.KindFocus, Down: false})
	assert.Empty(t, c.dispatcher.HeldKeys())

	require.NoError(t, c.frame())
	assert.Empty(t, c.buttons.Held())
}

func TestShutdownPersistsBindings(t *testing.T) {
	c := newTestClient(t, nil)
	c.run(`bind F6 "echo saved"`)
	require.NoError(t, c.Shutdown())
	require.NoError(t, c.Shutdown())

	path := c.cfg.Bindings.File
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bind F6 \"echo saved\"\n")

	again := newTestClient(t, func(cfg *config.Config) { cfg.Bindings.File = path })
	text, ok := again.store.Get(key.F6)
	require.True(t, ok)
	assert.Equal(t, "echo saved", text)
}

func TestReloadBindings(t *testing.T) {
	c := newTestClient(t, nil)
	path := c.cfg.Bindings.File
	require.NoError(t, os.WriteFile(path, []byte("bind x \"+use\"\n"), 0o644))

	c.reloadBindings(watcher.Event{Path: path, Op: watcher.OpWrite})

	assert.Equal(t, 1, c.store.Len())
	text, ok := c.store.Get('x')
	require.True(t, ok)
	assert.Equal(t, "+use", text)

	c.reloadBindings(watcher.Event{Path: path, Op: watcher.OpRemove})
	assert.Equal(t, 1, c.store.Len())
}

func TestBindingScript(t *testing.T) {
	script := filepath.Join(t.TempDir(), "binds.lua")
	require.NoError(t, os.WriteFile(script, []byte(`bind("F7", "echo from lua")`), 0o644))

	c := newTestClient(t, func(cfg *config.Config) { cfg.Bindings.Script = script })
	text, ok := c.store.Get(key.F7)
	require.True(t, ok)
	assert.Equal(t, "echo from lua", text)
}

func TestRunQuits(t *testing.T) {
	c := newTestClient(t, nil)
	events := make(chan terminal.Event, 4)
	events <- terminal.Event{Kind: terminal.KindKey, Code: key.Enter, Down: true, Time: 1}
	events <- terminal.Event{Kind: terminal.KindQuit}

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background(), events) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.True(t, c.session.Active(), "queued commands run before exit")
	assert.False(t, c.IsRunning())
}

func TestRunReportsBadKey(t *testing.T) {
	c := newTestClient(t, nil)
	events := make(chan terminal.Event, 1)
	events <- terminal.Event{Kind: terminal.KindKey, Code: 300, Down: true}

	err := c.Run(context.Background(), events)
	var bad *input.BadKeyError
	require.True(t, errors.As(err, &bad))
	assert.Equal(t, key.Code(300), bad.Code)
}

func TestRunStopsOnContext(t *testing.T) {
	c := newTestClient(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, c.Run(ctx, make(chan terminal.Event)))
}

func TestQuitCommand(t *testing.T) {
	c := newTestClient(t, nil)
	c.queue.AddText("quit\n")
	assert.ErrorIs(t, c.frame(), ErrQuit)
}

func TestDestinationChangesRecheckMouseAndPause(t *testing.T) {
	c := newTestClient(t, nil)
	assert.False(t, c.MouseActive(), "menu is up at startup")
	assert.False(t, c.Paused(), "nothing to pause while disconnected")

	c.connectNow(t)
	assert.True(t, c.MouseActive())
	assert.False(t, c.Paused())

	c.press('`')
	require.Equal(t, mode.Console, c.router.Destination())
	assert.False(t, c.MouseActive())
	assert.True(t, c.Paused())
	require.NoError(t, c.frame())
	assert.Contains(t, c.screen.status, "[paused]")

	c.press('`')
	require.Equal(t, mode.Game, c.router.Destination())
	assert.True(t, c.MouseActive())
	assert.False(t, c.Paused())

	c.press(key.Escape)
	require.Equal(t, mode.Menu, c.router.Destination())
	assert.False(t, c.MouseActive())
	assert.True(t, c.Paused())

	c.press(key.Escape)
	require.Equal(t, mode.Game, c.router.Destination())
	assert.True(t, c.MouseActive())
	assert.False(t, c.Paused())

	c.run("disconnect")
	assert.False(t, c.MouseActive())
	assert.False(t, c.Paused())
}

func TestMessageModeKeepsMouse(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)

	c.press('t')
	require.NoError(t, c.frame())
	require.Equal(t, mode.Message, c.router.Destination())
	assert.True(t, c.MouseActive())
	assert.False(t, c.Paused())
}

func TestDemoFreelookGrabsWhileShiftHeld(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)
	require.True(t, c.MouseActive())

	c.run("demo")
	assert.False(t, c.MouseActive())

	c.key(key.Shift, true)
	assert.True(t, c.MouseActive())
	c.key(key.Shift, false)
	assert.False(t, c.MouseActive())

	c.run("demo")
	assert.True(t, c.MouseActive())
}

func TestPauseCommand(t *testing.T) {
	c := newTestClient(t, nil)
	c.run("pause")
	assert.False(t, c.Paused(), "pause needs a connection")

	c.connectNow(t)
	c.run("pause")
	assert.True(t, c.Paused())

	report, err := c.Status()
	require.NoError(t, err)
	assert.True(t, gjson.Get(report, "paused").Bool())

	c.press('`')
	c.press('`')
	assert.True(t, c.Paused(), "closing the console keeps a requested pause")

	c.run("pause")
	assert.False(t, c.Paused())

	c.run("pause")
	c.run("disconnect")
	assert.False(t, c.Paused())
	c.connectNow(t)
	assert.False(t, c.Paused())
}

func TestConsoleCursorEditing(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)
	c.press('`')

	c.typeText("ech")
	c.press(key.Home)
	c.typeText("x")
	assert.Equal(t, "xech", c.console.Input())

	c.press(key.Home, key.Del)
	c.press(key.End)
	c.typeText("o")
	assert.Equal(t, "echo", c.console.Input())

	c.press(key.LeftArrow, key.LeftArrow, key.Backspace)
	assert.Equal(t, "eho", c.console.Input())
	c.typeText("c")
	assert.Equal(t, "echo", c.console.Input())
}

func TestConsoleOverstrike(t *testing.T) {
	c := newTestClient(t, nil)
	c.connectNow(t)
	c.press('`')

	c.typeText("say abc")
	c.press(key.LeftArrow, key.LeftArrow, key.LeftArrow)

	c.press(key.Ins)
	require.True(t, c.router.Overstrike())
	c.typeText("xyzw")
	assert.Equal(t, "say xyzw", c.console.Input(), "overwrites, then appends at the end")

	c.press(key.Ins)
	require.False(t, c.router.Overstrike())
	c.press(key.Home)
	c.typeText("!")
	assert.Equal(t, "!say xyzw", c.console.Input())
}

func TestDefaultBindingsNameRegisteredCommands(t *testing.T) {
	c := newTestClient(t, nil)
	require.NotZero(t, c.store.Len())

	c.store.Each(func(code key.Code, text string) {
		for _, line := range command.Split(text) {
			name := command.Tokenize(line).Argv(0)
			_, ok := c.registry.Lookup(name)
			assert.True(t, ok, "%s is bound to unknown command %q", key.ToString(code), name)
		}
	})
}

func TestGameCommandsForwardToServer(t *testing.T) {
	c := newTestClient(t, nil)
	c.run("weapnext")
	assert.Contains(t, c.screen.out.String(), "Can't \"weapnext\", not connected\n")

	c.connectNow(t)
	c.press('3')
	c.press(key.F1)
	require.NoError(t, c.frame())

	out := c.screen.out.String()
	assert.Contains(t, out, "server: use Super Shotgun\n")
	assert.Contains(t, out, "server: help\n")
	assert.NotContains(t, out, "Unknown command")
}
