package config

import (
	"context"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyroute/internal/input/binding"
	"github.com/dshills/keyroute/internal/input/key"
)

// DefaultScriptTimeout bounds a single script run.
const DefaultScriptTimeout = 2 * time.Second

// Printer receives script output.
type Printer interface {
	Printf(format string, args ...any)
}

// Script runs Lua binding scripts against a binding store.
//
// Scripts see a sandboxed environment (base, table, string, math) plus:
//
//	bind(name, text)   bind a key; returns false for an unknown key name
//	unbind(name)       remove a binding; returns false for an unknown key name
//	unbindall()        remove every binding
//	binding(name)      the binding text, or nil
//	keycode(name)      the key code for a name, or -1
//	keyname(code)      the canonical name for a code
//	exec(text)         run interpreter text (only when an Executor is set)
//	print(...)         write to the Printer
type Script struct {
	Store   *binding.Store
	Exec    Executor
	Printer Printer
	Timeout time.Duration
}

// RunFile executes the script at path.
func (s *Script) RunFile(ctx context.Context, path string) error {
	return s.run(ctx, path, func(L *lua.LState) error { return L.DoFile(path) })
}

// RunString executes src. name identifies the chunk in errors.
func (s *Script) RunString(ctx context.Context, name, src string) error {
	return s.run(ctx, name, func(L *lua.LState) error {
		fn, err := L.LoadString(src)
		if err != nil {
			return err
		}
		L.Push(fn)
		return L.PCall(0, lua.MultRet, nil)
	})
}

func (s *Script) run(ctx context.Context, name string, fn func(*lua.LState) error) (err error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, g := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(g, lua.LNil)
	}
	s.install(L)

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultScriptTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	L.SetContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: lua panic: %v", ErrScript, name, r)
		}
	}()
	if err := fn(L); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrScript, name, err)
	}
	return nil
}

func (s *Script) install(L *lua.LState) {
	L.SetGlobal("bind", L.NewFunction(s.luaBind))
	L.SetGlobal("unbind", L.NewFunction(s.luaUnbind))
	L.SetGlobal("unbindall", L.NewFunction(func(L *lua.LState) int {
		s.Store.ClearAll()
		return 0
	}))
	L.SetGlobal("binding", L.NewFunction(s.luaBinding))
	L.SetGlobal("keycode", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(key.FromString(L.CheckString(1))))
		return 1
	}))
	L.SetGlobal("keyname", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(key.ToString(key.Code(L.CheckInt(1)))))
		return 1
	}))
	L.SetGlobal("print", L.NewFunction(s.luaPrint))
	if s.Exec != nil {
		L.SetGlobal("exec", L.NewFunction(s.luaExec))
	}
}

func (s *Script) luaBind(L *lua.LState) int {
	name := L.CheckString(1)
	text := L.CheckString(2)
	c := key.FromString(name)
	if c == key.None {
		s.printf("\"%s\" isn't a valid key\n", name)
		L.Push(lua.LFalse)
		return 1
	}
	s.Store.Set(c, text)
	L.Push(lua.LTrue)
	return 1
}

func (s *Script) luaUnbind(L *lua.LState) int {
	name := L.CheckString(1)
	c := key.FromString(name)
	if c == key.None {
		s.printf("\"%s\" isn't a valid key\n", name)
		L.Push(lua.LFalse)
		return 1
	}
	s.Store.Clear(c)
	L.Push(lua.LTrue)
	return 1
}

func (s *Script) luaBinding(L *lua.LState) int {
	c := key.FromString(L.CheckString(1))
	if text, ok := s.Store.Get(c); ok {
		L.Push(lua.LString(text))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

func (s *Script) luaExec(L *lua.LState) int {
	if err := s.Exec.Execute(L.CheckString(1)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (s *Script) luaPrint(L *lua.LState) int {
	top := L.GetTop()
	var out []byte
	for i := 1; i <= top; i++ {
		if i > 1 {
			out = append(out, '\t')
		}
		out = append(out, L.ToStringMeta(L.Get(i)).String()...)
	}
	s.printf("%s\n", out)
	return 0
}

func (s *Script) printf(format string, args ...any) {
	if s.Printer != nil {
		s.Printer.Printf(format, args...)
	}
}
