package persistence

import (
	"errors"
	"io"

	"github.com/Fahedshaikh32/Steganography/frame"
)

// SecretSink creates the recovered secret file once its extension is known.
type SecretSink struct {
	// BaseName is the output path without extension.
	BaseName string
	// CheckSpace enables a free disk space check before creating the file.
	CheckSpace bool

	out *Output
}

// Create stages BaseName with the recovered extension appended.
func (s *SecretSink) Create(meta frame.Metadata) (io.Writer, error) {
	if s.out != nil {
		return nil, errors.New("secret sink already created")
	}

	path := s.BaseName + meta.Extension
	if s.CheckSpace {
		if err := CheckAvailableSpace(path, uint64(meta.PayloadLength)); err != nil {
			return nil, err
		}
	}

	out, err := CreateOutput(path)
	if err != nil {
		return nil, err
	}
	s.out = out
	return out, nil
}

// Path returns the path of the recovered secret, or "" before Create.
func (s *SecretSink) Path() string {
	if s.out == nil {
		return ""
	}
	return s.out.Path()
}

// Commit publishes the recovered secret.
func (s *SecretSink) Commit() error {
	if s.out == nil {
		return errors.New("secret sink not created")
	}
	return s.out.Commit()
}

// Abort discards a partially recovered secret.
func (s *SecretSink) Abort() {
	if s.out != nil {
		s.out.Abort()
	}
}
