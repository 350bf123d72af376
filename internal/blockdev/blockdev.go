// Package blockdev reports the size of partition nodes.
package blockdev

import (
	"fmt"
	"os"
)

// Size returns the size in bytes of the partition at path. Block devices are
// queried through the kernel, anything else reports its file size.
func Size(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if fi.Mode()&os.ModeDevice != 0 && fi.Mode()&os.ModeCharDevice == 0 {
		return deviceSize(f)
	}
	if fi.IsDir() {
		return 0, fmt.Errorf("%s is a directory", path)
	}
	return uint64(fi.Size()), nil
}
