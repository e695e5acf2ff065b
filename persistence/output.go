package persistence

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/Fahedshaikh32/Steganography/shared"
)

// Output is a file being written. Its content only appears at the
// destination path once committed.
type Output struct {
	dst string
	f   *os.File
	w   *bufio.Writer
}

// CreateOutput stages a new file that will replace dst when committed.
func CreateOutput(dst string) (*Output, error) {
	dir, name := filepath.Split(dst)
	if name == "" {
		return nil, fmt.Errorf("%w: %q is a directory", shared.ErrOutputCreateFailed, dst)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", name, uuid.NewString()))
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, OwnerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrOutputCreateFailed, err)
	}
	return &Output{
		dst: dst,
		f:   f,
		w:   bufio.NewWriter(f),
	}, nil
}

// Path returns the destination path.
func (o *Output) Path() string {
	return o.dst
}

func (o *Output) Write(p []byte) (int, error) {
	return o.w.Write(p)
}

// Commit flushes the staged content and atomically moves it to the
// destination path.
func (o *Output) Commit() error {
	if o.f == nil {
		return fmt.Errorf("%w: output %q already closed", shared.ErrWriteFailed, o.dst)
	}
	tmp := o.f.Name()

	if err := o.w.Flush(); err != nil {
		o.Abort()
		return fmt.Errorf("%w: %w", shared.ErrWriteFailed, err)
	}
	if err := o.f.Sync(); err != nil {
		o.Abort()
		return fmt.Errorf("%w: %w", shared.ErrWriteFailed, err)
	}
	err := o.f.Close()
	o.f, o.w = nil, nil
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %w", shared.ErrWriteFailed, err)
	}

	if err := atomic.ReplaceFile(tmp, o.dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %w", shared.ErrWriteFailed, err)
	}
	return nil
}

// Abort discards the staged content. It is a no-op after Commit.
func (o *Output) Abort() {
	if o.f == nil {
		return
	}
	tmp := o.f.Name()
	_ = o.f.Close()
	_ = os.Remove(tmp)
	o.f, o.w = nil, nil
}
