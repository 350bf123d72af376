package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/BioHaZard1/Rashr/internal/db"
	"github.com/BioHaZard1/Rashr/internal/output"
	"github.com/BioHaZard1/Rashr/internal/profile"
)

var historyCmd = &cobra.Command{
	Use:   "history [scan-id]",
	Short: "Show recorded scans",
	Long: `Show recorded scans, newest first. With a scan id the stored profile
and its diagnostics are printed.

Examples:
  rashr history
  rashr history --device i9300 -n 5
  rashr history 0b8f6d3e-...
  rashr history --prune 720h`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().String("device", "", "Only show scans of this canonical device")
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of scans")
	historyCmd.Flags().Duration("prune", 0, "Delete scans older than this before listing")
}

func runHistory(cmd *cobra.Command, args []string) {
	device, _ := cmd.Flags().GetString("device")
	limit, _ := cmd.Flags().GetInt("limit")
	prune, _ := cmd.Flags().GetDuration("prune")

	cfg := loadConfig(cmd)
	database := openDB(cfg)
	defer database.Close()

	if len(args) == 1 {
		showScan(database, args[0])
		return
	}

	if prune > 0 {
		n, err := database.DeleteOldScans(prune)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error pruning history: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Pruned %d scans older than %s\n", n, prune.Round(time.Hour))
	}

	scans, err := database.RecentScans(device, limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		os.Exit(1)
	}
	output.PrintScans(os.Stdout, scans)
}

// showScan prints a stored profile followed by its diagnostics
func showScan(database *db.DB, id string) {
	rec, err := database.GetScan(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	diags, err := database.ScanDiagnostics(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading diagnostics: %v\n", err)
		os.Exit(1)
	}

	var v profile.View
	if err := json.Unmarshal([]byte(rec.ProfileJSON), &v); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding stored profile: %v\n", err)
		os.Exit(1)
	}
	v.Diagnostics = diags
	output.PrintTable(os.Stdout, v)
}
