package platform

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// ErrNoIdentity is returned when no device name could be determined
var ErrNoIdentity = errors.New("device identity could not be determined")

// DefaultBuildProp is where Android keeps the build properties
const DefaultBuildProp = "/system/build.prop"

// Identity holds the raw platform identity strings of a handset
type Identity struct {
	Board        string `json:"board" yaml:"board,omitempty"`
	Model        string `json:"model" yaml:"model,omitempty"`
	Device       string `json:"device" yaml:"device,omitempty"`
	Manufacturer string `json:"manufacturer" yaml:"manufacturer,omitempty"`

	// RawDevice keeps the device name in its original case. The packaged
	// partition layouts are keyed by it.
	RawDevice string `json:"raw_device,omitempty" yaml:"-"`
}

// buildPropKeys maps identity fields to build.prop keys, in order of preference
var buildPropKeys = map[string][]string{
	"board":        {"ro.product.board", "ro.board.platform"},
	"model":        {"ro.product.model"},
	"device":       {"ro.product.device", "ro.build.product"},
	"manufacturer": {"ro.product.manufacturer", "ro.product.brand"},
}

// ReadBuildProp reads the identity from a build.prop style file
func ReadBuildProp(path string) (Identity, error) {
	file, err := os.Open(path)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to open build properties: %w", err)
	}
	defer file.Close()

	props := make(map[string]string)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		props[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if err := scanner.Err(); err != nil {
		return Identity{}, fmt.Errorf("failed to read build properties: %w", err)
	}

	return fromProps(props), nil
}

func fromProps(props map[string]string) Identity {
	pick := func(field string) string {
		for _, key := range buildPropKeys[field] {
			if v := props[key]; v != "" {
				return v
			}
		}
		return ""
	}

	id := Identity{
		Board:        pick("board"),
		Model:        pick("model"),
		Device:       pick("device"),
		Manufacturer: pick("manufacturer"),
	}
	id.RawDevice = id.Device
	return id
}

// Merge returns a copy of id with every non-empty field of override applied
func (id Identity) Merge(override Identity) Identity {
	if override.Board != "" {
		id.Board = override.Board
	}
	if override.Model != "" {
		id.Model = override.Model
	}
	if override.Device != "" {
		id.Device = override.Device
		id.RawDevice = override.Device
	}
	if override.RawDevice != "" {
		id.RawDevice = override.RawDevice
	}
	if override.Manufacturer != "" {
		id.Manufacturer = override.Manufacturer
	}
	return id
}

// Lower returns a copy with the matching fields lowercased. RawDevice is kept.
func (id Identity) Lower() Identity {
	if id.RawDevice == "" {
		id.RawDevice = id.Device
	}
	id.Board = strings.ToLower(id.Board)
	id.Model = strings.ToLower(id.Model)
	id.Device = strings.ToLower(id.Device)
	id.Manufacturer = strings.ToLower(id.Manufacturer)
	return id
}

// Validate fails when no device name is known
func (id Identity) Validate() error {
	if strings.TrimSpace(id.Device) == "" {
		return ErrNoIdentity
	}
	return nil
}

// Load reads build.prop at path and applies override on top of it.
// A missing build.prop is only fatal if the override does not name a device.
func Load(path string, override Identity) (Identity, error) {
	id, err := ReadBuildProp(path)
	if err != nil && override.Device == "" {
		return Identity{}, fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}

	id = id.Merge(override)
	if err := id.Validate(); err != nil {
		return Identity{}, err
	}
	return id.Lower(), nil
}

// KernelVersion returns the running kernel release as "Linux <release>"
func KernelVersion() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "Linux"
	}
	return "Linux " + unix.ByteSliceToString(uts.Release[:])
}
