package stego_test

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/Fahedshaikh32/Steganography/carrier"
	"github.com/Fahedshaikh32/Steganography/config"
	"github.com/Fahedshaikh32/Steganography/frame"
	"github.com/Fahedshaikh32/Steganography/internal/testcarrier"
	"github.com/Fahedshaikh32/Steganography/shared"
	"github.com/Fahedshaikh32/Steganography/stego"
)

func TestRoundTrip(t *testing.T) {
	c := testcarrier.New(t, 64, 48)
	logger := zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))
	rng := rand.New(rand.NewSource(7))

	// Largest payload fitting a ".sh" extension.
	maxPayload := (48*64*3-2*32)/8 - 2 - 3

	for _, size := range []int{1, 2, 255, 256, 1000, maxPayload} {
		payload := make([]byte, size)
		rng.Read(payload)

		for _, ext := range []string{".txt", ".c", ".sh"} {
			if size == maxPayload && ext != ".sh" {
				continue
			}

			encoded, err := stego.EncodeBytes(c, payload, ext, stego.WithLogger(logger))
			require.NoError(t, err, "size %d ext %s", size, ext)
			require.Len(t, encoded, len(c))

			gotExt, gotPayload, err := stego.DecodeBytes(encoded, stego.WithLogger(logger))
			require.NoError(t, err)
			require.Equal(t, ext, gotExt)
			require.Equal(t, payload, gotPayload)
		}
	}
}

func TestEncode_Preservation(t *testing.T) {
	req := require.New(t)

	c := testcarrier.New(t, 16, 16)
	payload := []byte("preserve me")
	encoded, err := stego.EncodeBytes(c, payload, ".txt")
	req.NoError(err)

	// Header is unconditionally preserved.
	req.Equal(c[:carrier.HeaderSize], encoded[:carrier.HeaderSize])

	// Frame bytes only differ in their least-significant bit.
	end := carrier.HeaderSize + int(frame.RequiredBytes(2, 4, uint64(len(payload))))
	for i := carrier.HeaderSize; i < end; i++ {
		req.Equal(c[i]&^1, encoded[i]&^1, "byte %d", i)
	}

	// Padding is unchanged.
	req.Equal(c[end:], encoded[end:])
}

func TestEncode_Result(t *testing.T) {
	req := require.New(t)

	c := testcarrier.New(t, 16, 16)
	out := bytes.NewBuffer(nil)
	var progress []uint64
	res, err := stego.Encode(bytes.NewReader(c), stego.Secret{
		Reader:    bytes.NewReader([]byte("hi")),
		Size:      2,
		Extension: ".txt",
	}, out, stego.WithProgress(func(done, total uint64) {
		req.Equal(uint64(2), total)
		progress = append(progress, done)
	}))
	req.NoError(err)
	req.Equal([]uint64{1, 2}, progress)
	req.Equal(carrier.Geometry{Width: 16, Height: 16}, res.Geometry)
	req.Equal(uint64(768), res.Capacity)
	req.Equal(uint64(2*8+32+4*8+32+2*8), res.Required)
	req.Equal(frame.Metadata{Extension: ".txt", PayloadLength: 2}, res.Metadata)

	info, err := stego.Inspect(bytes.NewReader(out.Bytes()))
	req.NoError(err)
	req.Equal(res, info)
}

func TestScenario(t *testing.T) {
	req := require.New(t)

	// 333x1 pixels: 999 payload region bytes.
	c := testcarrier.Raw(333, 1, 999)
	opts := []stego.OptionFunc{stego.WithCarrierValidation(false)}

	encoded, err := stego.EncodeBytes(c, []byte("hi"), ".txt", opts...)
	req.NoError(err)
	ext, payload, err := stego.DecodeBytes(encoded, opts...)
	req.NoError(err)
	req.Equal(".txt", ext)
	req.Equal("hi", string(payload))

	_, err = stego.EncodeBytes(c, make([]byte, 990), ".txt", opts...)
	req.ErrorIs(err, shared.ErrCapacityExceeded)
}

func TestEncode_CapacityExceeded(t *testing.T) {
	req := require.New(t)

	c := testcarrier.New(t, 4, 4) // 48 bytes, less than an empty frame
	out := bytes.NewBuffer(nil)
	_, err := stego.Encode(bytes.NewReader(c), stego.Secret{
		Reader:    bytes.NewReader([]byte("x")),
		Size:      1,
		Extension: ".txt",
	}, out)
	req.ErrorIs(err, shared.ErrCapacityExceeded)
	req.Zero(out.Len(), "no output may be produced")

	var capErr *shared.CapacityError
	req.True(errors.As(err, &capErr))
	req.Equal(uint64(48), capErr.Available)
}

func TestEncode_EmptySecret(t *testing.T) {
	out := bytes.NewBuffer(nil)
	_, err := stego.Encode(bytes.NewReader(testcarrier.New(t, 8, 8)), stego.Secret{
		Reader:    bytes.NewReader(nil),
		Size:      0,
		Extension: ".txt",
	}, out)
	require.ErrorIs(t, err, shared.ErrEmptySecret)
	require.Zero(t, out.Len())

	_, err = stego.EncodeBytes(testcarrier.New(t, 8, 8), nil, ".txt")
	require.ErrorIs(t, err, shared.ErrEmptySecret)
}

func TestEncode_InvalidCarrier(t *testing.T) {
	c := testcarrier.Raw(8, 8, 8*8*3)

	_, err := stego.EncodeBytes(c, []byte("hi"), ".txt")
	require.ErrorIs(t, err, shared.ErrInvalidCarrierFormat)

	_, err = stego.EncodeBytes(c, []byte("hi"), ".txt", stego.WithCarrierValidation(false))
	require.NoError(t, err)

	_, err = stego.EncodeBytes(c[:20], []byte("hi"), ".txt")
	require.ErrorIs(t, err, shared.ErrUnexpectedEOF)
}

func TestEncode_ExtensionTooLong(t *testing.T) {
	_, err := stego.EncodeBytes(testcarrier.New(t, 8, 8), []byte("hi"), ".markdown", stego.WithMaxExtensionLength(4))
	require.ErrorIs(t, err, shared.ErrUnsupportedSecret)
}

func TestEncode_CarrierSmallerThanGeometry(t *testing.T) {
	c := testcarrier.New(t, 16, 16)
	_, err := stego.EncodeBytes(c[:carrier.HeaderSize+200], make([]byte, 50), ".txt")
	require.ErrorIs(t, err, shared.ErrUnexpectedEOF)

	var ferr *frame.Error
	require.True(t, errors.As(err, &ferr))
	require.Equal(t, frame.StatePayload, ferr.State)
}

func TestDecode_MagicMismatch(t *testing.T) {
	c := testcarrier.New(t, 8, 8)
	for i := carrier.HeaderSize; i < len(c); i++ {
		c[i] |= 1
	}

	sink := &countingSink{}
	_, err := stego.Decode(bytes.NewReader(c), sink)
	require.ErrorIs(t, err, shared.ErrMagicMismatch)
	require.Zero(t, sink.created, "sink must not be created for an unrecognized carrier")
}

func TestDecode_SinkError(t *testing.T) {
	encoded, err := stego.EncodeBytes(testcarrier.New(t, 8, 8), []byte("hi"), ".txt")
	require.NoError(t, err)

	errSink := errors.New("sink failed")
	_, err = stego.Decode(bytes.NewReader(encoded), &countingSink{err: errSink})
	require.ErrorIs(t, err, errSink)

	_, err = stego.Decode(bytes.NewReader(encoded), &countingSink{w: &failingWriter{}})
	require.ErrorIs(t, err, shared.ErrWriteFailed)
}

func TestConfigMagic(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Magic = "SECRET"

	encoded, err := stego.EncodeBytes(testcarrier.New(t, 8, 8), []byte("hi"), ".txt", stego.WithConfig(cfg))
	require.NoError(t, err)

	_, _, err = stego.DecodeBytes(encoded)
	require.ErrorIs(t, err, shared.ErrMagicMismatch)

	_, payload, err := stego.DecodeBytes(encoded, stego.WithMagic("SECRET"))
	require.NoError(t, err)
	require.Equal(t, "hi", string(payload))
}

func TestOptions(t *testing.T) {
	c := testcarrier.New(t, 8, 8)
	for _, opt := range []stego.OptionFunc{
		stego.WithConfig(nil),
		stego.WithConfig(&config.Config{}),
		stego.WithMagic(""),
		stego.WithMaxExtensionLength(0),
		stego.WithLogger(nil),
	} {
		_, err := stego.EncodeBytes(c, []byte("hi"), ".txt", opt)
		require.Error(t, err)
	}
}

func TestWithMaxExtensionLength_Bounds(t *testing.T) {
	tooLong := frame.MaxLength
	tooLong++

	for _, n := range []int{-1, 0, tooLong} {
		_, err := stego.Inspect(bytes.NewReader(nil), stego.WithMaxExtensionLength(n))
		require.ErrorContains(t, err, "max extension length")
		require.Nil(t, shared.KindOf(err), "rejected before reading the carrier")
	}

	_, err := stego.Inspect(bytes.NewReader(nil), stego.WithMaxExtensionLength(frame.MaxLength))
	require.ErrorIs(t, err, shared.ErrUnexpectedEOF)
}

type countingSink struct {
	created int
	err     error
	w       io.Writer
}

func (s *countingSink) Create(frame.Metadata) (io.Writer, error) {
	s.created++
	if s.err != nil {
		return nil, s.err
	}
	if s.w != nil {
		return s.w, nil
	}
	return io.Discard, nil
}

type failingWriter struct{}

func (*failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("read-only filesystem")
}
