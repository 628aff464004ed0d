package fs

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputWriter = (*Writer)(nil)

// Writer writes output files atomically and skips content that is already on disk.
type Writer struct {
	store    ports.EmitStore
	hasher   ports.Hasher
	verifier *Verifier
	now      func() time.Time
}

// NewWriter creates a new Writer recording emitted hashes in store.
func NewWriter(store ports.EmitStore, hasher ports.Hasher, verifier *Verifier) *Writer {
	return &Writer{
		store:    store,
		hasher:   hasher,
		verifier: verifier,
		now:      time.Now,
	}
}

// Write stores data at rel below root. It reports false when the last emitted
// hash matches and the file on disk still holds that content.
func (w *Writer) Write(root, rel string, data []byte) (bool, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))
	hash := w.hasher.HashBytes(data)

	record, err := w.store.Get(root, rel)
	if err != nil {
		return false, err
	}
	if record != nil && record.Hash == hash {
		current, verifyErr := w.current(path, hash, len(data))
		if verifyErr != nil {
			return false, verifyErr
		}
		if current {
			return false, nil
		}
	}

	if err := writeAtomic(path, data); err != nil {
		return false, err
	}

	if err := w.store.Put(root, domain.EmitRecord{
		Path:      rel,
		Hash:      hash,
		Size:      len(data),
		Timestamp: w.now(),
	}); err != nil {
		return false, err
	}
	return true, nil
}

// current reports whether the file at path holds content with the given hash.
// Other writers such as tree copies may replace a file without touching the store.
func (w *Writer) current(path, hash string, size int) (bool, error) {
	present, err := w.verifier.VerifyOutput(path, size)
	if err != nil || !present {
		return false, err
	}
	onDisk, err := w.hasher.HashFile(path)
	if err != nil {
		return false, err
	}
	return onDisk == hash, nil
}

// writeAtomic writes data to a temporary file next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temporary file"), "path", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to write temporary file"), "path", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to close temporary file"), "path", tmpName)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to set file permissions"), "path", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to rename temporary file"), "path", path)
	}
	return nil
}
