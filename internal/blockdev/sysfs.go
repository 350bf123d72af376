package blockdev

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Uevent holds the sysfs uevent properties of a block device
type Uevent struct {
	Name     string // mmcblk0p6
	Major    string
	Minor    string
	PartName string // recovery, boot, FOTAKernel
	PartN    string
}

// ReadUevent reads /sys/class/block/<node>/uevent below root for the device
// node at path. by-name links are followed one level.
func ReadUevent(root, path string) (*Uevent, error) {
	name := filepath.Base(path)
	if target, err := os.Readlink(filepath.Join(root, path)); err == nil {
		name = filepath.Base(target)
	}

	file, err := os.Open(filepath.Join(root, "/sys/class/block", name, "uevent"))
	if err != nil {
		return nil, fmt.Errorf("failed to read uevent of %s: %w", name, err)
	}
	defer file.Close()

	ev := &Uevent{Name: name}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "DEVNAME":
			ev.Name = value
		case "MAJOR":
			ev.Major = value
		case "MINOR":
			ev.Minor = value
		case "PARTNAME":
			ev.PartName = value
		case "PARTN":
			ev.PartN = value
		}
	}
	return ev, scanner.Err()
}
