package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BioHaZard1/Rashr/internal/partition"
	"github.com/BioHaZard1/Rashr/internal/platform"
	"github.com/BioHaZard1/Rashr/internal/profile"
)

type Config struct {
	// FilesDir is the app data directory holding manifests, layouts and tools
	FilesDir        string `yaml:"files_dir"`
	BootLog         string `yaml:"boot_log"`
	RecoveryCatalog string `yaml:"recovery_catalog"`
	KernelCatalog   string `yaml:"kernel_catalog"`
	LayoutArchive   string `yaml:"layout_archive"`
	BuildProp       string `yaml:"build_prop"`
	Database        string `yaml:"database"`

	// Root prefixes every device node probe; empty on a real device
	Root string `yaml:"root,omitempty"`

	// DeviceOverride is assumed as the canonical id; build.prop still names
	// the hardware
	DeviceOverride string            `yaml:"device_override,omitempty"`
	Identity       platform.Identity `yaml:"identity,omitempty"`
	Capture        Capture           `yaml:"capture"`
	LogLevel       string            `yaml:"log_level"`

	// Source is the file the config was read from, empty for defaults
	Source string `yaml:"-"`
}

type Capture struct {
	Enabled bool          `yaml:"enabled"`
	Command string        `yaml:"command,omitempty"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultFilesDir is where the app keeps its data on a device
const DefaultFilesDir = "/data/data/de.mkrtchyan.recoverytools/files"

// defaultConfig provides baseline settings; relative names live in FilesDir
var defaultConfig = Config{
	FilesDir:        DefaultFilesDir,
	BootLog:         "last_log.txt",
	RecoveryCatalog: "recovery_sums",
	KernelCatalog:   "kernel_sums",
	LayoutArchive:   "partlayouts.zip",
	BuildProp:       platform.DefaultBuildProp,
	Database:        "rashr.db",
	Capture: Capture{
		Command: partition.DefaultCaptureCommand,
		Timeout: 30 * time.Second,
	},
	LogLevel: "info",
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}

// Candidates lists the config locations tried when no path is given
func Candidates() []string {
	return []string{
		"/data/local/rashr/config.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/rashr/config.yaml"),
		"config.yaml",
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		for _, c := range Candidates() {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		cfg = Config{}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		cfg.Source = path
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills every unset field from defaultConfig
func (c *Config) applyDefaults() {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.FilesDir, defaultConfig.FilesDir)
	fill(&c.BootLog, defaultConfig.BootLog)
	fill(&c.RecoveryCatalog, defaultConfig.RecoveryCatalog)
	fill(&c.KernelCatalog, defaultConfig.KernelCatalog)
	fill(&c.LayoutArchive, defaultConfig.LayoutArchive)
	fill(&c.BuildProp, defaultConfig.BuildProp)
	fill(&c.Database, defaultConfig.Database)
	fill(&c.Capture.Command, defaultConfig.Capture.Command)
	fill(&c.LogLevel, defaultConfig.LogLevel)
	if c.Capture.Timeout <= 0 {
		c.Capture.Timeout = defaultConfig.Capture.Timeout
	}
}

// Path resolves a file name against FilesDir. Absolute names are kept.
func (c *Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.FilesDir, name)
}

// Override is the identity forced on top of build.prop
func (c *Config) Override() platform.Identity {
	return c.Identity
}

// Sources maps the configured files to resolver inputs
func (c *Config) Sources() profile.Sources {
	return profile.Sources{
		BuildProp:       c.BuildProp,
		BootLog:         c.Path(c.BootLog),
		RecoveryCatalog: c.Path(c.RecoveryCatalog),
		KernelCatalog:   c.Path(c.KernelCatalog),
		LayoutArchive:   c.Path(c.LayoutArchive),
		FilesDir:        c.FilesDir,
	}
}

// Resolver builds a profile resolver from the configuration
func (c *Config) Resolver() *profile.Resolver {
	r := profile.New(partition.FS{Root: c.Root}, c.Sources(), c.Override())
	r.SetDevice(c.DeviceOverride)
	if c.Capture.Enabled {
		r.Capturer = partition.ExecCapturer{Command: c.Capture.Command, Timeout: c.Capture.Timeout}
	}
	return r
}
