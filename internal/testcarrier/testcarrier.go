// Package testcarrier builds bitmap carriers for tests.
package testcarrier

import (
	"bytes"
	"encoding/binary"
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// New returns an encoded 24-bit bitmap of width x height pixels filled with
// pseudo-random colors. Widths divisible by 4 produce rows without padding,
// so the file is exactly 54 + width*height*3 bytes.
func New(tb testing.TB, width, height int) []byte {
	tb.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rng := rand.New(rand.NewSource(int64(width)<<32 | int64(height)))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = byte(rng.Intn(256))
		img.Pix[i+1] = byte(rng.Intn(256))
		img.Pix[i+2] = byte(rng.Intn(256))
		img.Pix[i+3] = 0xff
	}

	buf := bytes.NewBuffer(nil)
	require.NoError(tb, bmp.Encode(buf, img))
	return buf.Bytes()
}

// Raw returns a carrier made of a 54-byte header declaring width x height,
// followed by size pseudo-random payload bytes. The header is not a valid
// bitmap header apart from the dimensions.
func Raw(width, height uint32, size int) []byte {
	data := make([]byte, 54+size)
	rng := rand.New(rand.NewSource(int64(size)))
	rng.Read(data)
	binary.LittleEndian.PutUint32(data[18:], width)
	binary.LittleEndian.PutUint32(data[22:], height)
	return data
}
