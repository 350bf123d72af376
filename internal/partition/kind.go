package partition

import "fmt"

// Kind describes how a partition has to be written
type Kind int

const (
	// Unsupported means no way to write the partition is known
	Unsupported Kind = iota
	// RawBlock is a block device written with dd
	RawBlock
	// MTD is a legacy flash character device written with flash_image
	MTD
	// Overlay installs a new recovery from inside the running recovery
	Overlay
	// Repackaged stores the recovery in a vendor archive
	Repackaged
)

var kindNames = map[Kind]string{
	Unsupported: "unsupported",
	RawBlock:    "dd",
	MTD:         "mtd",
	Overlay:     "overlay",
	Repackaged:  "repackaged",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Supported reports whether any flashing strategy is known
func (k Kind) Supported() bool {
	return k != Unsupported
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses the String form of a Kind
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return Unsupported, fmt.Errorf("unknown partition kind %q", s)
}
