package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/BioHaZard1/Rashr/internal/config"
	"github.com/BioHaZard1/Rashr/internal/output"
	"github.com/BioHaZard1/Rashr/internal/partition"
	"github.com/BioHaZard1/Rashr/internal/profile"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Resolve the flashing profile of this device",
	Long: `Resolve the flashing profile of this device.

The device name from build.prop is normalized, then the recovery and boot
partitions are searched in the known node lists, the captured recovery log,
the built-in device table and finally the packaged partition layouts.
Problems along the way are reported as diagnostics; the scan itself only
fails when no device name is available.

Examples:
  rashr scan
  rashr scan -o json --sizes
  rashr scan --device i9300 --root ./testdata/i9300
  rashr scan --capture                 # capture the recovery log with su first`,
	Args: cobra.NoArgs,
	Run:  runScan,
}

func init() {
	scanCmd.Flags().AddFlagSet(outputFlags())
	scanCmd.Flags().AddFlagSet(deviceFlags())
	scanCmd.Flags().Bool("sizes", false, "Read partition sizes")
	scanCmd.Flags().Bool("capture", false, "Capture the recovery log before scanning")
	scanCmd.Flags().Bool("no-history", false, "Do not record the scan in the history database")
}

func runScan(cmd *cobra.Command, args []string) {
	outputFmt, _ := cmd.Flags().GetString("output")
	quiet, _ := cmd.Flags().GetBool("quiet")
	sizes, _ := cmd.Flags().GetBool("sizes")
	capture, _ := cmd.Flags().GetBool("capture")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	cfg := loadConfig(cmd)
	applyDeviceFlags(cmd, cfg)
	if capture {
		cfg.Capture.Enabled = true
	}

	p, err := scan(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: device support could not be determined: %v\n", err)
		os.Exit(1)
	}

	if !noHistory {
		database := openDB(cfg)
		if _, err := database.RecordScan(p); err != nil {
			log.Warn().Err(err).Msg("scan not recorded")
		}
		database.Close()
	}

	v := output.Report(p, partition.FS{Root: cfg.Root}, sizes)
	if quiet {
		output.PrintQuiet(os.Stdout, v)
		return
	}

	switch outputFmt {
	case "json":
		if err := output.PrintJSON(os.Stdout, v); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
	default:
		output.PrintTable(os.Stdout, v)
	}
}

// scan resolves in the background and gives up on SIGINT/SIGTERM
func scan(cfg *config.Config) (*profile.Profile, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case out := <-cfg.Resolver().ResolveAsync(ctx):
		return out.Profile, out.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
