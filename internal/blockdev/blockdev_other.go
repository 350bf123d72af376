//go:build !linux

package blockdev

import (
	"fmt"
	"io"
	"os"
)

// deviceSize seeks to the end of the device where no size ioctl is known
func deviceSize(f *os.File) (uint64, error) {
	n, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to size %s: %w", f.Name(), err)
	}
	return uint64(n), nil
}
