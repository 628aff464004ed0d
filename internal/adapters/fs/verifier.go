package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/zerr"
)

// Verifier checks that previously written outputs are still on disk.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyOutput reports whether path is a regular file of the given size.
// A missing file is not an error.
func (v *Verifier) VerifyOutput(path string, size int) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", path)
	}
	return info.Mode().IsRegular() && info.Size() == int64(size), nil
}
