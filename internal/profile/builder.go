package profile

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/BioHaZard1/Rashr/internal/catalog"
	"github.com/BioHaZard1/Rashr/internal/partition"
	"github.com/BioHaZard1/Rashr/internal/platform"
)

// builder accumulates a profile during one resolution pass
type builder struct {
	id       string
	scanned  time.Time
	identity platform.Identity
	device   string
	aliases  []string

	recoveryPath string
	kernelPath   string
	recoveryHint partition.Kind
	kernelHint   partition.Kind
	recoveryKind partition.Kind
	kernelKind   partition.Kind
	recoveryExt  string
	kernelExt    string
	mtdMount     bool

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

func newBuilder(id string, scanned time.Time) *builder {
	return &builder{
		id:              id,
		scanned:         scanned,
		recoveryExt:     DefaultImageExt,
		kernelExt:       DefaultImageExt,
		recoveryVersion: partition.UnknownRecoveryVersion,
		diagnostics:     []string{},
	}
}

// record keeps the step in the trace and takes its result for a partition
// that is still unresolved. Errored steps become diagnostics.
func (b *builder) record(res partition.StepResult) {
	b.steps = append(b.steps, res)

	switch res.Outcome {
	case partition.Errored:
		b.diagnose(res.Diagnostic())
	case partition.Found:
		log.Debug().Str("step", res.Step).Str("target", string(res.Target)).
			Str("path", res.Path).Str("kind", res.Kind.String()).Msg("partition found")
		switch res.Target {
		case partition.TargetRecovery:
			if b.recoveryPath == "" {
				b.recoveryPath = res.Path
			}
			if res.Kind == partition.MTD {
				b.recoveryHint = partition.MTD
			}
		case partition.TargetKernel:
			if b.kernelPath == "" {
				b.kernelPath = res.Path
			}
			if res.Kind == partition.MTD {
				b.kernelHint = partition.MTD
			}
		}
	}
}

func (b *builder) diagnose(msg string) {
	if msg == "" || slices.Contains(b.diagnostics, msg) {
		return
	}
	log.Warn().Str("device", b.device).Msg(msg)
	b.diagnostics = append(b.diagnostics, msg)
}

func (b *builder) build() *Profile {
	return &Profile{
		id:              b.id,
		scanned:         b.scanned,
		identity:        b.identity,
		device:          b.device,
		manufacturer:    b.identity.Manufacturer,
		aliases:         slices.Clone(b.aliases),
		recoveryKind:    b.recoveryKind,
		kernelKind:      b.kernelKind,
		recoveryPath:    b.recoveryPath,
		kernelPath:      b.kernelPath,
		recoveryExt:     b.recoveryExt,
		kernelExt:       b.kernelExt,
		fota:            partition.IsFOTA(b.recoveryPath),
		recoveryVersion: b.recoveryVersion,
		kernelVersion:   b.kernelVersion,
		recoveryImages:  cloneBuckets(b.recoveryImages),
		kernelImages:    cloneBuckets(b.kernelImages),
		flashImage:      b.flashImage,
		dumpImage:       b.dumpImage,
		vendorUtils:     b.vendorUtils,
		steps:           slices.Clone(b.steps),
		diagnostics:     slices.Clone(b.diagnostics),
	}
}
