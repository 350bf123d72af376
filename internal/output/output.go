// Package output renders profiles and scan history for the command line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/BioHaZard1/Rashr/internal/blockdev"
	"github.com/BioHaZard1/Rashr/internal/catalog"
	"github.com/BioHaZard1/Rashr/internal/db"
	"github.com/BioHaZard1/Rashr/internal/partition"
	"github.com/BioHaZard1/Rashr/internal/profile"
)

// Report builds the printable view of p. With sizes set, partition sizes and
// labels are read from the nodes below fs.
func Report(p *profile.Profile, fs partition.FS, sizes bool) profile.View {
	v := p.View()
	if sizes {
		v.Recovery.Size = partitionSize(fs, v.Recovery.Path)
		v.Kernel.Size = partitionSize(fs, v.Kernel.Path)
		v.Recovery.Label = partitionLabel(fs, v.Recovery.Path)
		v.Kernel.Label = partitionLabel(fs, v.Kernel.Path)
	}
	return v
}

func partitionLabel(fs partition.FS, path string) string {
	if path == "" {
		return ""
	}
	ev, err := blockdev.ReadUevent(fs.Root, path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("partition label unavailable")
		return ""
	}
	return ev.PartName
}

func partitionSize(fs partition.FS, path string) uint64 {
	if path == "" {
		return 0
	}
	size, err := blockdev.Size(fs.Real(path))
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("partition size unavailable")
		return 0
	}
	return size
}

// PrintJSON outputs the view as JSON
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintTable outputs the view as a formatted table
func PrintTable(w io.Writer, v profile.View) {
	fmt.Fprintf(w, "Device:     %s\n", v.Device)
	if v.Identity.RawDevice != "" && !strings.EqualFold(v.Identity.RawDevice, v.Device) {
		fmt.Fprintf(w, "Hardware:   %s\n", v.Identity.RawDevice)
	}
	fmt.Fprintf(w, "Scanned:    %s (%s)\n", humanize.Time(v.ScannedAt), v.ID)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-20s %s\n", "PROPERTY", "VALUE")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	printField(w, "Manufacturer", v.Manufacturer)
	printField(w, "Board", v.Identity.Board)
	printField(w, "Model", v.Identity.Model)
	if len(v.Aliases) > 0 {
		printField(w, "Alias Rules", strings.Join(v.Aliases, ", "))
	}

	printPartition(w, "Recovery", v.Recovery)
	if v.FOTA {
		printField(w, "", "FOTA partition")
	}
	printPartition(w, "Kernel", v.Kernel)

	printField(w, "Recovery Version", v.RecoveryVersion)
	printField(w, "Kernel Version", v.KernelVersion)
	if v.Recovery.Kind == partition.MTD || v.Kernel.Kind == partition.MTD {
		printField(w, "flash_image", v.FlashImage)
		printField(w, "dump_image", v.DumpImage)
	}
	if v.VendorUtils {
		printField(w, "Vendor Utils", "required")
	}

	for _, f := range []catalog.Flavor{catalog.Stock, catalog.CWM, catalog.TWRP, catalog.PhilZ} {
		if images := v.RecoveryImages[f]; len(images) > 0 {
			printField(w, "Recovery "+string(f), fmt.Sprintf("%d images, latest %s", len(images), images[0]))
		}
	}
	if images := v.KernelImages[catalog.Stock]; len(images) > 0 {
		printField(w, "Kernel stock", fmt.Sprintf("%d images, latest %s", len(images), images[0]))
	}

	if len(v.Diagnostics) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Diagnostics:")
		for _, d := range v.Diagnostics {
			fmt.Fprintf(w, "  - %s\n", d)
		}
	}
}

func printPartition(w io.Writer, label string, p profile.PartitionView) {
	value := p.Kind.String()
	if p.Path != "" {
		value += "  " + p.Path
	}
	if p.Size > 0 {
		value += "  (" + humanize.IBytes(p.Size) + ")"
	}
	if p.Label != "" {
		value += "  [" + p.Label + "]"
	}
	printField(w, label, value)
	printField(w, label+" Image", "*"+p.ImageExt)
}

// printField prints a field if value is non-empty
func printField(w io.Writer, label, value string) {
	if value != "" {
		fmt.Fprintf(w, "%-20s %s\n", label, value)
	}
}

// PrintQuiet outputs only the partition kinds and paths
func PrintQuiet(w io.Writer, v profile.View) {
	fmt.Fprintf(w, "recovery %s %s\n", v.Recovery.Kind, v.Recovery.Path)
	fmt.Fprintf(w, "kernel %s %s\n", v.Kernel.Kind, v.Kernel.Path)
}

// PrintImages lists catalog images, newest first
func PrintImages(w io.Writer, images []string) {
	for _, img := range images {
		fmt.Fprintln(w, img)
	}
}

// PrintScans outputs the scan history as a table
func PrintScans(w io.Writer, scans []*db.ScanRecord) {
	if len(scans) == 0 {
		fmt.Fprintln(w, "No scans recorded")
		return
	}

	fmt.Fprintf(w, "%-36s  %-14s  %-10s  %-10s  %-5s  %s\n", "ID", "DEVICE", "RECOVERY", "KERNEL", "DIAG", "WHEN")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, s := range scans {
		fmt.Fprintf(w, "%-36s  %-14s  %-10s  %-10s  %-5s  %s\n",
			s.ID, s.Device, s.RecoveryKind, s.KernelKind, humanize.Comma(int64(s.Diagnostics)), humanize.Time(s.ScannedAt))
	}
}
