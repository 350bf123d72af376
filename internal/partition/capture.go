package partition

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// LogCapturer makes a privileged copy of the recovery log readable at dst.
// Obtaining root is up to the implementation.
type LogCapturer interface {
	Capture(ctx context.Context, dst string) error
}

// DefaultCaptureCommand copies the last recovery log with su. The single %s
// is replaced by the destination path.
const DefaultCaptureCommand = "su -c 'cat /cache/recovery/last_log > %[1]s && chmod 644 %[1]s'"

// ExecCapturer runs a shell command to capture the log
type ExecCapturer struct {
	// Command is a format string taking the destination path
	Command string
	Timeout time.Duration
}

// Capture runs the configured command under Timeout
func (c ExecCapturer) Capture(ctx context.Context, dst string) error {
	command := c.Command
	if command == "" {
		command = DefaultCaptureCommand
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", fmt.Sprintf(command, dst))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("log capture failed: %w: %s", err, msg)
		}
		return fmt.Errorf("log capture failed: %w", err)
	}
	return nil
}
