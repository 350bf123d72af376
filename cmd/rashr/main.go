package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/BioHaZard1/Rashr/internal/config"
	"github.com/BioHaZard1/Rashr/internal/db"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "rashr",
	Short: "Recovery and kernel flashing profile tool",
	Long: `Rashr works out how the recovery and boot partitions of an Android
device can be flashed. It normalizes the device name, locates both partition
nodes, decides the flashing strategy and lists compatible images from the
recovery and kernel catalogs.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)
	},
}

// setupLogging writes human readable logs to stderr, keeping stdout for output
func setupLogging(level string) {
	consoleWriter := zerolog.ConsoleWriter{
		Out: colorable.NewColorableStderr(),
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		consoleWriter.TimeFormat = time.RFC3339
	} else {
		consoleWriter.NoColor = true
	}
	log.Logger = log.Output(consoleWriter)

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// loadConfig loads the configuration or exits. A --log-level flag overrides
// the configured level.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if !cmd.Flags().Changed("log-level") {
		setupLogging(cfg.LogLevel)
	}
	if cfg.Source != "" {
		log.Debug().Str("path", cfg.Source).Msg("config loaded")
	}
	return cfg
}

// openDB opens the scan history configured in cfg or exits
func openDB(cfg *config.Config) *db.DB {
	database, err := db.New(cfg.Path(cfg.Database))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return database
}

// outputFlags are shared by every command printing a profile
func outputFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("output", pflag.ExitOnError)
	fs.StringP("output", "o", "table", "Output format: table, json")
	fs.BoolP("quiet", "q", false, "Only output partition kinds and paths")
	return fs
}

// deviceFlags select the device a command works on
func deviceFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("device", pflag.ExitOnError)
	fs.StringP("device", "d", "", "Assume this canonical device id instead of the normalized one")
	fs.String("root", "", "Probe device nodes below this directory")
	return fs
}

// applyDeviceFlags copies device flag values into cfg
func applyDeviceFlags(cmd *cobra.Command, cfg *config.Config) {
	if device, _ := cmd.Flags().GetString("device"); device != "" {
		cfg.DeviceOverride = device
	}
	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.Root = root
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /data/local/rashr/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
