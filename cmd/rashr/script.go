package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BioHaZard1/Rashr/internal/script"
)

var scriptCmd = &cobra.Command{
	Use:   "script [zip...]",
	Short: "Compose an openrecoveryscript for the next recovery boot",
	Long: `Compose an openrecoveryscript for the next recovery boot.

The commands are previewed and, with --write, appended to the script the
recovery executes on its next start.

Examples:
  rashr script --backup BS --backup-name pre-update --wipe-cache /sdcard/update.zip
  rashr script --wipe-data --wipe-dalvik --write`,
	Run: runScript,
}

func init() {
	scriptCmd.Flags().AddFlagSet(deviceFlags())
	scriptCmd.Flags().String("backup", "", "Partitions to back up: any of B(oot) C(ache) D(ata) R(ecovery) S(ystem)")
	scriptCmd.Flags().String("backup-name", "", "Name of the backup")
	scriptCmd.Flags().Bool("wipe-cache", false, "Wipe the cache partition")
	scriptCmd.Flags().Bool("wipe-dalvik", false, "Wipe the dalvik cache")
	scriptCmd.Flags().Bool("wipe-data", false, "Wipe user data")
	scriptCmd.Flags().Bool("write", false, "Append the commands to the recovery script")
	scriptCmd.Flags().String("path", script.DefaultPath, "Recovery script location")
}

func runScript(cmd *cobra.Command, args []string) {
	backup, _ := cmd.Flags().GetString("backup")
	backupName, _ := cmd.Flags().GetString("backup-name")
	wipeCache, _ := cmd.Flags().GetBool("wipe-cache")
	wipeDalvik, _ := cmd.Flags().GetBool("wipe-dalvik")
	wipeData, _ := cmd.Flags().GetBool("wipe-data")
	write, _ := cmd.Flags().GetBool("write")
	path, _ := cmd.Flags().GetString("path")

	b, err := parseBackup(backup)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmds, err := script.Compose(script.Options{
		Backup:     b,
		BackupName: backupName,
		WipeCache:  wipeCache,
		WipeDalvik: wipeDalvik,
		WipeData:   wipeData,
		Install:    args,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	preview := script.Preview(cmds)
	if preview == "" {
		fmt.Fprintln(os.Stderr, "Nothing to do")
		os.Exit(1)
	}
	fmt.Print(preview)

	if !write {
		return
	}

	cfg := loadConfig(cmd)
	applyDeviceFlags(cmd, cfg)
	p, err := cfg.Resolver().Current(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: device support could not be determined: %v\n", err)
		os.Exit(1)
	}
	if err := script.Applicable(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := script.WriteFile(path, cmds); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Script written to %s\n", path)
}

// parseBackup reads BCDRS style partition letters
func parseBackup(s string) (script.Backup, error) {
	var b script.Backup
	for _, c := range s {
		switch c {
		case 'B', 'b':
			b.Boot = true
		case 'C', 'c':
			b.Cache = true
		case 'D', 'd':
			b.Data = true
		case 'R', 'r':
			b.Recovery = true
		case 'S', 's':
			b.System = true
		default:
			return b, errors.New("unknown backup partition " + string(c))
		}
	}
	return b, nil
}
