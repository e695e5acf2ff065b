package stego

import (
	"bytes"
	"io"

	"github.com/Fahedshaikh32/Steganography/frame"
)

// EncodeBytes hides payload, tagged with ext, in an in-memory carrier.
func EncodeBytes(c, payload []byte, ext string, opts ...OptionFunc) ([]byte, error) {
	out := bytes.NewBuffer(make([]byte, 0, len(c)))
	secret := Secret{
		Reader:    bytes.NewReader(payload),
		Size:      int64(len(payload)),
		Extension: ext,
	}
	if _, err := Encode(bytes.NewReader(c), secret, out, opts...); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DecodeBytes recovers the extension and payload hidden in an in-memory
// carrier.
func DecodeBytes(c []byte, opts ...OptionFunc) (string, []byte, error) {
	sink := &bufferSink{}
	res, err := Decode(bytes.NewReader(c), sink, opts...)
	if err != nil {
		return "", nil, err
	}
	return res.Metadata.Extension, sink.buf.Bytes(), nil
}

type bufferSink struct {
	buf bytes.Buffer
}

func (s *bufferSink) Create(meta frame.Metadata) (io.Writer, error) {
	return &s.buf, nil
}
