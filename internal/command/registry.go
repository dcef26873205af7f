package command

import (
	"errors"
	"sort"
	"strings"
)

// ErrUnknownCommand is returned when a line names no registered command.
var ErrUnknownCommand = errors.New("unknown command")

// UnknownCommandError names the command a line asked for. It matches
// ErrUnknownCommand with errors.Is.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return ErrUnknownCommand.Error() + ": " + e.Name
}

// Is reports whether target is ErrUnknownCommand.
func (e *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

// Func runs a command.
type Func func(args Args)

// Completer returns completions for argument argnum of a partial line.
type Completer func(args Args, argnum int) []string

// Command is a named console command.
type Command struct {
	Name     string
	Run      Func
	Complete Completer
}

// Printer prints command output to the console.
type Printer interface {
	Printf(format string, args ...any)
}

// Registry maps command names to commands. Names are case-insensitive.
//
// Registry is not safe for concurrent use.
type Registry struct {
	cmds map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]Command)}
}

// Register adds commands, replacing any with the same name.
func (r *Registry) Register(cmds ...Command) {
	for _, c := range cmds {
		r.cmds[strings.ToLower(c.Name)] = c
	}
}

// Unregister removes a command.
func (r *Registry) Unregister(name string) {
	delete(r.cmds, strings.ToLower(name))
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	c, ok := r.cmds[strings.ToLower(name)]
	return c, ok
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for _, c := range r.cmds {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// Execute runs every command line in text in order. Lines naming an
// unknown command are skipped; their errors are joined and returned after
// the remaining lines have run.
func (r *Registry) Execute(text string) error {
	var errs []error
	for _, line := range Split(text) {
		if err := r.ExecuteLine(line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ExecuteLine runs a single command line.
func (r *Registry) ExecuteLine(line string) error {
	args := Tokenize(line)
	if args.Argc() == 0 {
		return nil
	}
	c, ok := r.Lookup(args.Argv(0))
	if !ok {
		return &UnknownCommandError{Name: args.Argv(0)}
	}
	c.Run(args)
	return nil
}

// Complete returns completions for the last word of a partial line.
// The first word completes against command names.
func (r *Registry) Complete(line string) []string {
	args := Tokenize(line)
	if line == "" || isSpace(line[len(line)-1]) {
		args = append(args, "")
	}
	if len(args) == 1 {
		return completePrefix(r.Names(), args[0])
	}
	c, ok := r.Lookup(args.Argv(0))
	if !ok || c.Complete == nil {
		return nil
	}
	return c.Complete(args, len(args)-1)
}

func completePrefix(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if len(c) >= len(prefix) && strings.EqualFold(c[:len(prefix)], prefix) {
			out = append(out, c)
		}
	}
	return out
}
