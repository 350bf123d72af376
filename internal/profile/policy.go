package profile

import (
	"github.com/BioHaZard1/Rashr/internal/alias"
	"github.com/BioHaZard1/Rashr/internal/partition"
)

// Rule is one named step of the partition kind policy. Rules run in order on
// the same builder, so a later rule overrides what an earlier one decided.
type Rule struct {
	Name  string
	Apply func(b *builder)
}

// Policy is an ordered list of rules
type Policy []Rule

// DefaultPolicy decides the final partition kinds after discovery
var DefaultPolicy = Policy{
	{Name: "path-kind", Apply: pathKind},
	{Name: "overlay-family", Apply: overlayFamily},
	{Name: "mtd-mount-point", Apply: mtdMountPoint},
	{Name: "repackaged-family", Apply: repackagedFamily},
}

// Apply runs every rule on b
func (p Policy) Apply(b *builder) {
	for _, r := range p {
		r.Apply(b)
	}
}

// pathKind derives the kind from the discovered node. Without a node an MTD
// hint from the boot log still marks the partition as MTD.
func pathKind(b *builder) {
	b.recoveryKind = kindFor(b.recoveryPath, b.recoveryHint)
	b.kernelKind = kindFor(b.kernelPath, b.kernelHint)
}

func kindFor(path string, hint partition.Kind) partition.Kind {
	if path != "" {
		return partition.KindForPath(path)
	}
	if hint == partition.MTD {
		return partition.MTD
	}
	return partition.Unsupported
}

// overlayFamily flashes legacy devices through the running recovery
func overlayFamily(b *builder) {
	if alias.OverlayFamily[b.device] {
		b.recoveryKind = partition.Overlay
		b.recoveryExt = ".zip"
	}
}

// mtdMountPoint turns every partition without a raw block node into MTD
// when the MTD mount point exists.
func mtdMountPoint(b *builder) {
	if !b.mtdMount {
		return
	}
	if b.recoveryKind != partition.RawBlock {
		b.recoveryKind = partition.MTD
	}
	if b.kernelKind != partition.RawBlock {
		b.kernelKind = partition.MTD
	}
}

// repackagedFamily keeps the recovery inside the vendor archive
func repackagedFamily(b *builder) {
	if alias.RepackagedFamily[b.device] {
		b.recoveryKind = partition.Repackaged
	}
}
