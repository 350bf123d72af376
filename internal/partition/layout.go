package partition

import (
	"archive/zip"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrEntryNotFound is returned when the layout archive has no entry for a device
var ErrEntryNotFound = errors.New("no partition layout for device")

// LayoutRecord is one name:device entry of a partition layout file
type LayoutRecord struct {
	Name   string
	Device string
}

// Path returns the absolute device node of the record
func (r LayoutRecord) Path() string {
	if strings.HasPrefix(r.Device, "/") {
		return r.Device
	}
	return "/dev/block/" + r.Device
}

// ParseLayout parses quoted, colon delimited name:device records.
// Lines that do not carry both fields are skipped.
func ParseLayout(r io.Reader) ([]LayoutRecord, error) {
	var records []LayoutRecord
	replacer := strings.NewReplacer(`"`, " ", ":", " ")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(replacer.Replace(scanner.Text()))
		if len(fields) < 2 {
			continue
		}
		records = append(records, LayoutRecord{Name: fields[0], Device: fields[len(fields)-1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read partition layout: %w", err)
	}
	return records, nil
}

// ExtractLayout copies the archive entry named device to dst, unless dst
// already exists.
func ExtractLayout(archive, device, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return nil
	}

	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("failed to open layout archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != device {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open layout entry %s: %w", f.Name, err)
		}
		defer rc.Close()

		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return fmt.Errorf("failed to create layout directory: %w", err)
		}
		tmp := dst + ".tmp"
		out, err := os.Create(tmp)
		if err != nil {
			return fmt.Errorf("failed to create layout file: %w", err)
		}
		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			os.Remove(tmp)
			return fmt.Errorf("failed to extract layout entry %s: %w", f.Name, err)
		}
		if err := out.Close(); err != nil {
			os.Remove(tmp)
			return err
		}
		return os.Rename(tmp, dst)
	}

	return fmt.Errorf("%w %q", ErrEntryNotFound, device)
}

// LayoutRequest describes a fallback layout lookup
type LayoutRequest struct {
	Archive   string // packaged archive of per-device layouts
	Dir       string // where the extracted layout is kept
	RawDevice string // archive entry name, in original case
	Recovery  bool   // recovery still needs a path
	Kernel    bool   // kernel still needs a path
}

// FallbackLayout resolves unresolved partitions from the packaged layout.
// A missing entry for the device is not an error.
func FallbackLayout(fs FS, req LayoutRequest) (recovery, kernel StepResult, err error) {
	recovery = notFound(StepLayout, TargetRecovery)
	kernel = notFound(StepLayout, TargetKernel)
	if !req.Recovery && !req.Kernel {
		return recovery, kernel, nil
	}

	dst := filepath.Join(req.Dir, req.RawDevice+".fstab")
	if err := ExtractLayout(req.Archive, req.RawDevice, dst); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			log.Debug().Str("device", req.RawDevice).Msg("no packaged layout")
			return recovery, kernel, nil
		}
		return errorBoth(req, err)
	}

	file, err := os.Open(dst)
	if err != nil {
		return errorBoth(req, fmt.Errorf("failed to open partition layout: %w", err))
	}
	defer file.Close()

	records, err := ParseLayout(file)
	if err != nil {
		return errorBoth(req, err)
	}

	for _, rec := range records {
		name := strings.ToLower(rec.Name)
		switch {
		case strings.Contains(name, "recovery"):
			if req.Recovery && recovery.Outcome != Found && fs.Exists(rec.Path()) {
				recovery = found(StepLayout, TargetRecovery, rec.Path(), RawBlock)
			}
		case strings.Contains(name, "boot") && !strings.Contains(name, "bootloader"):
			if req.Kernel && kernel.Outcome != Found && fs.Exists(rec.Path()) {
				kernel = found(StepLayout, TargetKernel, rec.Path(), RawBlock)
			}
		}
	}

	return recovery, kernel, nil
}

func errorBoth(req LayoutRequest, err error) (StepResult, StepResult, error) {
	recovery := notFound(StepLayout, TargetRecovery)
	kernel := notFound(StepLayout, TargetKernel)
	if req.Recovery {
		recovery = errored(StepLayout, TargetRecovery, err)
	}
	if req.Kernel {
		kernel = errored(StepLayout, TargetKernel, err)
	}
	return recovery, kernel, err
}
