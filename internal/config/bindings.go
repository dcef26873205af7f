package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/keyroute/internal/input/binding"
)

// BindingsHeader starts every written binding file.
const BindingsHeader = "// generated by keyroute, do not modify\n"

// Executor runs interpreter text.
type Executor interface {
	Execute(text string) error
}

// ExecFile executes the binding file at path through exec.
func ExecFile(path string, exec Executor) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("reading bindings %s: %w", path, err)
	}
	if err := exec.Execute(string(data)); err != nil {
		return fmt.Errorf("executing bindings %s: %w", path, err)
	}
	return nil
}

// WriteBindings persists every binding in store to path, one bind line per
// key. The file is replaced atomically.
func WriteBindings(path string, store *binding.Store) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".bindings-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if _, err = w.WriteString(BindingsHeader); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing bindings: %w", err)
	}
	if _, err = store.WriteTo(w); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing bindings: %w", err)
	}
	if err = w.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing bindings: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing bindings: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
