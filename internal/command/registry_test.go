package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recorder(calls *[]Args) Func {
	return func(args Args) {
		*calls = append(*calls, args)
	}
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	var calls []Args
	r.Register(Command{Name: "toggleconsole", Run: recorder(&calls)})

	c, ok := r.Lookup("ToggleConsole")
	require.True(t, ok)
	assert.Equal(t, "toggleconsole", c.Name)

	require.NoError(t, r.Execute("TOGGLECONSOLE"))
	assert.Len(t, calls, 1)

	r.Unregister("toggleConsole")
	_, ok = r.Lookup("toggleconsole")
	assert.False(t, ok)
}

func TestRegistryExecuteRunsEveryLine(t *testing.T) {
	r := NewRegistry()
	var calls []Args
	r.Register(
		Command{Name: "echo", Run: recorder(&calls)},
		Command{Name: "say", Run: recorder(&calls)},
	)

	err := r.Execute("echo one; bogus x\nsay \"a;b\" // trailing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCommand))
	assert.Contains(t, err.Error(), "bogus")

	var unknown *UnknownCommandError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogus", unknown.Name)

	require.Len(t, calls, 2)
	assert.Equal(t, Args{"echo", "one"}, calls[0])
	assert.Equal(t, Args{"say", "a;b"}, calls[1])
}

func TestRegistryExecuteLineUnknown(t *testing.T) {
	r := NewRegistry()
	err := r.ExecuteLine(`frob "a b"`)

	var unknown *UnknownCommandError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "frob", unknown.Name)
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.EqualError(t, err, "unknown command: frob")
}

func TestRegistryExecuteLineIgnoresBlank(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, r.ExecuteLine(""))
	assert.NoError(t, r.ExecuteLine("   "))
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	noop := func(Args) {}
	r.Register(
		Command{Name: "unbind", Run: noop},
		Command{Name: "bind", Run: noop},
		Command{Name: "bindlist", Run: noop},
	)
	assert.Equal(t, []string{"bind", "bindlist", "unbind"}, r.Names())
}

func TestRegistryComplete(t *testing.T) {
	r := NewRegistry()
	noop := func(Args) {}
	r.Register(
		Command{Name: "bind", Run: noop, Complete: func(args Args, argnum int) []string {
			if argnum != 1 {
				return nil
			}
			return completePrefix([]string{"ENTER", "ESCAPE", "F1"}, args.Argv(1))
		}},
		Command{Name: "bindlist", Run: noop},
		Command{Name: "echo", Run: noop},
	)

	assert.Equal(t, []string{"bind", "bindlist"}, r.Complete("bi"))
	assert.Equal(t, []string{"bind", "bindlist", "echo"}, r.Complete(""))
	assert.Equal(t, []string{"ENTER", "ESCAPE"}, r.Complete("bind e"))
	assert.Equal(t, []string{"ENTER", "ESCAPE", "F1"}, r.Complete("bind "))
	assert.Nil(t, r.Complete("echo x"))
	assert.Nil(t, r.Complete("nope x"))
}
