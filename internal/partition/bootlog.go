package partition

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// UnknownRecoveryVersion is reported when no recovery banner is found
const UnknownRecoveryVersion = "Not recognized Recovery-Version"

// BootLog holds the signals extracted from a captured recovery boot log
type BootLog struct {
	Recovery        StepResult
	Kernel          StepResult
	RecoveryVersion string
}

// bootLogScan tracks one partition while scanning
type bootLogScan struct {
	target  Target
	marker  string
	exclude string
	path    string
	mtd     bool
}

func (s *bootLogScan) feed(fs FS, line string) {
	if s.path != "" {
		return
	}
	if !mentionsMountPoint(line, s.marker) {
		return
	}
	if s.exclude != "" && mentionsMountPoint(line, s.exclude) {
		return
	}

	if strings.Contains(line, "mtd") {
		s.mtd = true
		return
	}
	if !strings.Contains(line, "/dev/") {
		return
	}
	for _, tok := range strings.Fields(line) {
		tok = strings.TrimRight(tok, ",;:")
		if strings.HasPrefix(tok, "/dev/") && fs.Exists(tok) {
			s.path = tok
			return
		}
	}
}

// mentionsMountPoint reports whether mount appears in line as a whole path.
// "/boot" matches "/boot | emmc" and ".../by-name/boot" but not
// "/dev/block/bootdevice" or "/cache/recovery/log".
func mentionsMountPoint(line, mount string) bool {
	for i := 0; ; {
		j := strings.Index(line[i:], mount)
		if j < 0 {
			return false
		}
		end := i + j + len(mount)
		if end == len(line) || strings.IndexByte(" \t|:,;)]", line[end]) >= 0 {
			return true
		}
		i = end
	}
}

func (s *bootLogScan) result() StepResult {
	switch {
	case s.path != "":
		return found(StepBootLog, s.target, s.path, RawBlock)
	case s.mtd:
		return found(StepBootLog, s.target, "", MTD)
	default:
		return notFound(StepBootLog, s.target)
	}
}

// ParseBootLog scans a recovery log line by line. For each partition the
// first line naming its mount point and an existing /dev node wins; a line
// mentioning mtd marks the partition as MTD without setting a path.
func ParseBootLog(r io.Reader, fs FS) (BootLog, error) {
	recovery := &bootLogScan{target: TargetRecovery, marker: "/recovery"}
	kernel := &bootLogScan{target: TargetKernel, marker: "/boot", exclude: "/bootloader"}
	version := UnknownRecoveryVersion

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.NewReplacer(`"`, "", "'", "").Replace(scanner.Text())

		if version == UnknownRecoveryVersion {
			if v, ok := RecoveryBanner(line); ok {
				version = v
			}
		}

		kernel.feed(fs, line)
		recovery.feed(fs, line)
	}

	log := BootLog{
		Recovery:        recovery.result(),
		Kernel:          kernel.result(),
		RecoveryVersion: version,
	}
	if err := scanner.Err(); err != nil {
		return log, fmt.Errorf("failed to read boot log: %w", err)
	}
	return log, nil
}

// RecoveryBanner extracts a recovery version banner from a log line
func RecoveryBanner(line string) (string, bool) {
	switch {
	case strings.Contains(line, "ClockworkMod Recovery"), strings.Contains(line, "CWM"):
		return line, true
	case strings.Contains(line, "TWRP"):
		line = strings.Replace(line, "Starting ", "", 1)
		return strings.SplitN(line, " on", 2)[0], true
	case strings.Contains(line, "PhilZ"), strings.Contains(line, "4EXT"):
		return line, true
	}
	return "", false
}

// ReadBootLog opens the captured log at path and parses it. On failure both
// results are Errored and the version is unknown.
func ReadBootLog(path string, fs FS) (BootLog, error) {
	file, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("failed to open boot log: %w", err)
		return BootLog{
			Recovery:        errored(StepBootLog, TargetRecovery, err),
			Kernel:          errored(StepBootLog, TargetKernel, err),
			RecoveryVersion: UnknownRecoveryVersion,
		}, err
	}
	defer file.Close()

	log, err := ParseBootLog(file, fs)
	if err != nil {
		log.Recovery = errored(StepBootLog, TargetRecovery, err)
		log.Kernel = errored(StepBootLog, TargetKernel, err)
	}
	return log, err
}
