// Package cas implements the emit record store.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EmitStore = (*Store)(nil)

// Store implements ports.EmitStore using one JSON file per output path,
// kept under <root>/.unbundle/store.
type Store struct{}

// NewStore creates a new EmitStore.
func NewStore() (*Store, error) {
	return &Store{}, nil
}

// Get retrieves the emit record for an output path below root.
func (s *Store) Get(root, path string) (*domain.EmitRecord, error) {
	filename := s.getFilename(root, path)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
	}

	var record domain.EmitRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", path)
	}

	return &record, nil
}

// Put stores the emit record.
func (s *Store) Put(root string, record domain.EmitRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, record.Path)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "dir", dir)
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", record.Path)
	}

	return nil
}

func (s *Store) getFilename(root, path string) string {
	hash := sha256.Sum256([]byte(path))
	hexHash := hex.EncodeToString(hash[:])
	storeDir := filepath.Join(root, domain.DefaultStorePath())
	return filepath.Join(storeDir, hexHash+".json")
}
