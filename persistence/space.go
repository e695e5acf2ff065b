package persistence

import (
	"fmt"
	"path/filepath"

	"code.cloudfoundry.org/bytefmt"
	"github.com/ricochet2200/go-disk-usage/du"

	"github.com/Fahedshaikh32/Steganography/shared"
)

// AvailableSpace returns the number of bytes available to the current user
// on the filesystem holding dir.
func AvailableSpace(dir string) uint64 {
	usage := du.NewDiskUsage(dir)
	return usage.Available()
}

// CheckAvailableSpace verifies that a file of required bytes can be created
// next to path.
func CheckAvailableSpace(path string, required uint64) error {
	dir := filepath.Dir(path)
	available := AvailableSpace(dir)
	if required > available {
		return fmt.Errorf("%w: not enough disk space. required: %v, available: %v",
			shared.ErrOutputCreateFailed, bytefmt.ByteSize(required), bytefmt.ByteSize(available))
	}
	return nil
}
