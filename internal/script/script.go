// Package script composes openrecoveryscript command files that a custom
// recovery runs on its next boot.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BioHaZard1/Rashr/internal/profile"
)

// Header is the first command of every composed script
const Header = "echo #####Script created by Rashr#####"

// DefaultPath is where the recovery looks for the script
const DefaultPath = "/cache/recovery/openrecoveryscript"

// ErrNotApplicable is returned for devices without a flashable recovery
var ErrNotApplicable = errors.New("recovery scripts need a supported recovery partition")

// Backup selects the partitions of a backup command
type Backup struct {
	Boot     bool
	Cache    bool
	Data     bool
	Recovery bool
	System   bool
}

func (b Backup) flags() string {
	var sb strings.Builder
	for _, f := range []struct {
		on   bool
		flag byte
	}{{b.Boot, 'B'}, {b.Cache, 'C'}, {b.Data, 'D'}, {b.Recovery, 'R'}, {b.System, 'S'}} {
		if f.on {
			sb.WriteByte(f.flag)
		}
	}
	return sb.String()
}

// Options describe the script to compose
type Options struct {
	Backup     Backup
	BackupName string
	WipeCache  bool
	WipeDalvik bool
	WipeData   bool
	// Install lists zip packages, installed in order
	Install []string
}

// Compose returns the script commands, Header first. Install paths are made
// absolute.
func Compose(opts Options) ([]string, error) {
	cmds := []string{Header}

	if flags := opts.Backup.flags(); flags != "" {
		cmd := "backup " + flags
		if opts.BackupName != "" {
			if err := checkArg(opts.BackupName); err != nil {
				return nil, err
			}
			cmd += " " + opts.BackupName
		}
		cmds = append(cmds, cmd)
	}

	if opts.WipeCache {
		cmds = append(cmds, "wipe cache")
	}
	if opts.WipeDalvik {
		cmds = append(cmds, "wipe dalvik")
	}
	if opts.WipeData {
		cmds = append(cmds, "wipe data")
	}

	for _, zip := range opts.Install {
		abs, err := filepath.Abs(zip)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", zip, err)
		}
		if err := checkArg(abs); err != nil {
			return nil, err
		}
		cmds = append(cmds, "install "+abs)
	}

	return cmds, nil
}

// checkArg rejects arguments that would split a command
func checkArg(s string) error {
	if strings.ContainsAny(s, ";\n") {
		return fmt.Errorf("invalid script argument %q", s)
	}
	return nil
}

// Preview numbers the commands from 1, leaving out the header
func Preview(cmds []string) string {
	var sb strings.Builder
	index := 1
	for _, cmd := range cmds {
		if cmd == "" || cmd == Header {
			continue
		}
		fmt.Fprintf(&sb, "%d. %s\n", index, cmd)
		index++
	}
	return sb.String()
}

// WriteTo writes one command per line
func WriteTo(w io.Writer, cmds []string) error {
	for _, cmd := range cmds {
		if cmd == "" {
			continue
		}
		if _, err := io.WriteString(w, cmd+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile appends the commands to the script at path
func WriteFile(path string, cmds []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create script directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	if err := WriteTo(f, cmds); err != nil {
		f.Close()
		return fmt.Errorf("failed to write script: %w", err)
	}
	return f.Close()
}

// Applicable checks whether the device can run a recovery script
func Applicable(p *profile.Profile) error {
	if !p.SupportsRecovery() {
		return fmt.Errorf("%w: %s has %s recovery", ErrNotApplicable, p.Device(), p.RecoveryKind())
	}
	return nil
}
