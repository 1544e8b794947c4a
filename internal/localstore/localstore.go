// Package localstore is the durable local storage for the CLI: a small
// file-per-key store under the user state directory. It plays the role the
// browser's localStorage plays for the web storefront: a single shared
// mutable slot per key with last-writer-wins semantics.
package localstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// Well-known keys shared between the session and cart stores.
const (
	KeyToken    = "token"
	KeyCart     = "cart.json"
	KeyReturnTo = "return_to"
)

// Store reads and writes keyed values under a base directory.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created lazily on the
// first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the base directory.
func (s *Store) Dir() string {
	return s.dir
}

// Get returns the value stored under key, or ok=false when the key is
// absent. Read errors other than absence are also reported as absence:
// persisted payloads are untrusted input and an unreadable value is treated
// the same as no value.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set writes the value under key atomically (temp file + rename), so a
// crashed write never leaves a half-written payload behind.
func (s *Store) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	target := filepath.Join(s.dir, key)
	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting mode on %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", key, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	return nil
}

// Delete removes the value under key. Removing an absent key is not an
// error.
func (s *Store) Delete(key string) error {
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}
