package profile

import (
	"encoding/json"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/BioHaZard1/Rashr/internal/catalog"
	"github.com/BioHaZard1/Rashr/internal/partition"
	"github.com/BioHaZard1/Rashr/internal/platform"
)

// DefaultImageExt is the image extension unless a vendor rule overrides it
const DefaultImageExt = ".img"

// Profile is the resolved flashing profile of a device. It is built once per
// scan and never modified afterwards; rescans produce a new Profile.
type Profile struct {
	id      string
	scanned time.Time

	identity     platform.Identity
	device       string
	manufacturer string
	aliases      []string

	recoveryKind partition.Kind
	kernelKind   partition.Kind
	recoveryPath string
	kernelPath   string
	recoveryExt  string
	kernelExt    string
	fota         bool

	recoveryVersion string
	kernelVersion   string

	recoveryImages map[catalog.Flavor][]string
	kernelImages   map[catalog.Flavor][]string

	flashImage  string
	dumpImage   string
	vendorUtils bool

	steps       []partition.StepResult
	diagnostics []string
}

// ID is the unique identifier of the scan that produced the profile
func (p *Profile) ID() string { return p.id }

// ScannedAt is when the profile was resolved
func (p *Profile) ScannedAt() time.Time { return p.scanned }

// Identity returns the lowercased platform identity the profile was built from
func (p *Profile) Identity() platform.Identity { return p.identity }

// Device is the canonical device identifier
func (p *Profile) Device() string { return p.device }

// RawDevice is the hardware device name in its original case
func (p *Profile) RawDevice() string { return p.identity.RawDevice }

func (p *Profile) Manufacturer() string { return p.manufacturer }

// Aliases lists the alias rule families that matched, in order
func (p *Profile) Aliases() []string { return slices.Clone(p.aliases) }

func (p *Profile) RecoveryKind() partition.Kind { return p.recoveryKind }
func (p *Profile) KernelKind() partition.Kind   { return p.kernelKind }
func (p *Profile) RecoveryPath() string         { return p.recoveryPath }
func (p *Profile) KernelPath() string           { return p.kernelPath }
func (p *Profile) RecoveryExt() string          { return p.recoveryExt }
func (p *Profile) KernelExt() string            { return p.kernelExt }

// IsFOTA reports a FOTA style recovery partition
func (p *Profile) IsFOTA() bool { return p.fota }

// RecoveryVersion is the banner of the installed recovery, or
// partition.UnknownRecoveryVersion
func (p *Profile) RecoveryVersion() string { return p.recoveryVersion }

// KernelVersion is the running kernel release
func (p *Profile) KernelVersion() string { return p.kernelVersion }

// RecoveryImages returns the compatible recovery images of a flavor, newest first
func (p *Profile) RecoveryImages(f catalog.Flavor) []string {
	return slices.Clone(p.recoveryImages[f])
}

// KernelImages returns the compatible kernel images of a flavor, newest first
func (p *Profile) KernelImages(f catalog.Flavor) []string {
	return slices.Clone(p.kernelImages[f])
}

// FlashImage is the flash_image helper used for MTD devices
func (p *Profile) FlashImage() string { return p.flashImage }

// DumpImage is the dump_image helper used for MTD devices
func (p *Profile) DumpImage() string { return p.dumpImage }

// NeedsVendorUtils reports whether flashing needs the bundled vendor tools
func (p *Profile) NeedsVendorUtils() bool { return p.vendorUtils }

// Steps is the trace of every discovery step that ran
func (p *Profile) Steps() []partition.StepResult { return slices.Clone(p.steps) }

// Diagnostics are the non-fatal problems hit while resolving
func (p *Profile) Diagnostics() []string { return slices.Clone(p.diagnostics) }

func (p *Profile) SupportsRecovery() bool { return p.recoveryKind.Supported() }
func (p *Profile) SupportsKernel() bool   { return p.kernelKind.Supported() }

// SupportsRecoveryFlavor reports whether images of f can be flashed
func (p *Profile) SupportsRecoveryFlavor(f catalog.Flavor) bool {
	return len(p.recoveryImages[f]) > 0 && p.SupportsRecovery()
}

// SupportsStockKernel reports whether a stock kernel can be flashed
func (p *Profile) SupportsStockKernel() bool {
	return len(p.kernelImages[catalog.Stock]) > 0 && p.SupportsKernel()
}

// withImages returns a copy of p carrying new catalogs and extra diagnostics
func (p *Profile) withImages(recovery, kernel map[catalog.Flavor][]string, diags []string) *Profile {
	next := *p
	next.aliases = slices.Clone(p.aliases)
	next.steps = slices.Clone(p.steps)
	next.recoveryImages = recovery
	next.kernelImages = kernel
	next.diagnostics = append(slices.Clone(p.diagnostics), diags...)
	return &next
}

// View is the serialized form of a Profile
type View struct {
	ID              string                      `json:"id"`
	ScannedAt       time.Time                   `json:"scanned_at"`
	Identity        platform.Identity           `json:"identity"`
	Device          string                      `json:"device"`
	Manufacturer    string                      `json:"manufacturer"`
	Aliases         []string                    `json:"aliases,omitempty"`
	Recovery        PartitionView               `json:"recovery"`
	Kernel          PartitionView               `json:"kernel"`
	RecoveryVersion string                      `json:"recovery_version"`
	KernelVersion   string                      `json:"kernel_version"`
	FOTA            bool                        `json:"fota"`
	RecoveryImages  map[catalog.Flavor][]string `json:"recovery_images"`
	KernelImages    map[catalog.Flavor][]string `json:"kernel_images"`
	FlashImage      string                      `json:"flash_image"`
	DumpImage       string                      `json:"dump_image"`
	VendorUtils     bool                        `json:"vendor_utils"`
	Steps           []partition.StepResult      `json:"steps,omitempty"`
	Diagnostics     []string                    `json:"diagnostics"`
}

// PartitionView describes one partition in a View
type PartitionView struct {
	Kind     partition.Kind `json:"kind"`
	Path     string         `json:"path,omitempty"`
	ImageExt string         `json:"image_ext"`
	Size     uint64         `json:"size_bytes,omitempty"`
	Label    string         `json:"label,omitempty"`
}

// View returns the serializable form of p
func (p *Profile) View() View {
	return View{
		ID:              p.id,
		ScannedAt:       p.scanned,
		Identity:        p.identity,
		Device:          p.device,
		Manufacturer:    p.manufacturer,
		Aliases:         p.Aliases(),
		Recovery:        PartitionView{Kind: p.recoveryKind, Path: p.recoveryPath, ImageExt: p.recoveryExt},
		Kernel:          PartitionView{Kind: p.kernelKind, Path: p.kernelPath, ImageExt: p.kernelExt},
		RecoveryVersion: p.recoveryVersion,
		KernelVersion:   p.kernelVersion,
		FOTA:            p.fota,
		RecoveryImages:  cloneBuckets(p.recoveryImages),
		KernelImages:    cloneBuckets(p.kernelImages),
		FlashImage:      p.flashImage,
		DumpImage:       p.dumpImage,
		VendorUtils:     p.vendorUtils,
		Steps:           p.Steps(),
		Diagnostics:     p.Diagnostics(),
	}
}

// MarshalJSON implements json.Marshaler
func (p *Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.View())
}

func cloneBuckets(in map[catalog.Flavor][]string) map[catalog.Flavor][]string {
	out := maps.Clone(in)
	for f, images := range out {
		out[f] = slices.Clone(images)
	}
	return out
}
