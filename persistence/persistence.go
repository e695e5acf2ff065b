// Package persistence opens the files taking part in hiding and recovering a
// secret. Outputs are staged in a temporary file and atomically moved in
// place on success, so a failed run leaves no partial artifact behind.
package persistence

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/Fahedshaikh32/Steganography/shared"
)

// OwnerReadWriteExec is a standard owner read / write / exec file permission.
const OwnerReadWriteExec = 0o700

// OwnerReadWrite is a standard owner read / write file permission.
const OwnerReadWrite = 0o600

const carrierSuffix = ".bmp"

// OpenCarrier opens the bitmap carrier at path for reading.
func OpenCarrier(path string) (*os.File, error) {
	if !strings.EqualFold(filepath.Ext(path), carrierSuffix) {
		return nil, fmt.Errorf("%w: %q must be a %s file", shared.ErrInvalidCarrierFormat, path, carrierSuffix)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrCarrierOpenFailed, err)
	}
	return f, nil
}

// Secret is an opened secret file.
type Secret struct {
	*os.File
	Size      int64
	Extension string
}

// OpenSecret opens the secret at path. The extension of path, including its
// leading dot, must be accepted by allowed.
func OpenSecret(path string, allowed func(ext string) bool) (*Secret, error) {
	ext := filepath.Ext(path)
	if ext == "" || ext == "." {
		return nil, fmt.Errorf("%w: %q has no extension", shared.ErrUnsupportedSecret, path)
	}
	if allowed != nil && !allowed(ext) {
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedSecret, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrSecretOpenFailed, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %w", shared.ErrSecretOpenFailed, err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %q is not a regular file", shared.ErrSecretOpenFailed, path)
	}

	return &Secret{
		File:      f,
		Size:      info.Size(),
		Extension: ext,
	}, nil
}

// SecretBaseName strips every extension from the file name of path, keeping
// its directory, so the recovered extension can be appended.
func SecretBaseName(path string) string {
	dir, name := filepath.Split(path)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return dir + name
}

// CloseAll closes every closer, returning all of the errors encountered.
func CloseAll(closers ...io.Closer) error {
	var result *multierror.Error
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
