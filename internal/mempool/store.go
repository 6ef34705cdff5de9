package mempool

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const recordExt = ".json"

// Store reads records from and writes accepted records to directories of JSON files.
type Store struct{}

// NewStore constructs a Store.
func NewStore() *Store {
	return &Store{}
}

// List returns the record files of dir in lexical order.
func (s *Store) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), recordExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// Load reads and decodes a record file, returning the raw bytes alongside.
func (s *Store) Load(path string) (*Record, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	rec, err := Decode(data)
	if err != nil {
		return nil, data, fmt.Errorf("%s: %w", path, err)
	}
	return rec, data, nil
}

// CopyTo writes data under dir, creating it if needed, using the base name of path. It returns
// the new path.
func (s *Store) CopyTo(path string, data []byte, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	dest := filepath.Join(dir, filepath.Base(path))
	if err := writeFile(dest, data); err != nil {
		return "", err
	}
	return dest, nil
}

// AnnotateTxID inserts "txid" as the first member of the record at path. Records that already
// carry a txid are left untouched.
func (s *Store) AnnotateTxID(path, txid string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	rec, err := Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if rec.TxID != "" {
		return nil
	}

	annotated, err := withTxID(data, txid)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return writeFile(path, annotated)
}

func withTxID(data []byte, txid string) ([]byte, error) {
	open := bytes.IndexByte(data, '{')
	if open < 0 {
		return nil, fmt.Errorf("record is not a JSON object: %w", ErrInvalidField)
	}

	member := fmt.Sprintf("\n  %q: %q", "txid", txid)
	rest := data[open+1:]
	if len(bytes.TrimSpace(rest)) > 0 && bytes.TrimSpace(rest)[0] != '}' {
		member += ","
	}

	out := make([]byte, 0, len(data)+len(member))
	out = append(out, data[:open+1]...)
	out = append(out, member...)
	return append(out, rest...), nil
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
