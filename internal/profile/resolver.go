package profile

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BioHaZard1/Rashr/internal/alias"
	"github.com/BioHaZard1/Rashr/internal/cache"
	"github.com/BioHaZard1/Rashr/internal/catalog"
	"github.com/BioHaZard1/Rashr/internal/partition"
	"github.com/BioHaZard1/Rashr/internal/platform"
)

// Helper tool locations for MTD devices
const (
	SystemBinDir = "/system/bin"
	FlashImage   = "flash_image"
	DumpImage    = "dump_image"
)

// Sources are the files a resolution pass reads. Empty paths skip the step
// that needs them.
type Sources struct {
	BuildProp       string
	BootLog         string
	RecoveryCatalog string
	KernelCatalog   string
	LayoutArchive   string
	// FilesDir keeps extracted layouts and bundled helper tools
	FilesDir string
}

// Resolver builds device profiles
type Resolver struct {
	FS       partition.FS
	Sources  Sources
	Policy   Policy
	Capturer partition.LogCapturer

	// KernelVersion reports the running kernel; defaults to platform.KernelVersion
	KernelVersion func() string

	mu       sync.Mutex
	override platform.Identity
	// device is the assumed canonical id, empty to use the normalized one
	device string

	cache    *cache.Cache[*Profile]
	catalogs *cache.Cache[*catalog.Catalog]
}

// New creates a resolver. override is applied on top of build.prop.
func New(fs partition.FS, src Sources, override platform.Identity) *Resolver {
	return &Resolver{
		FS:            fs,
		Sources:       src,
		Policy:        DefaultPolicy,
		KernelVersion: platform.KernelVersion,
		override:      override,
		cache:         cache.New[*Profile](),
		catalogs:      cache.New[*catalog.Catalog](),
	}
}

const currentKey = "current"

// Outcome is delivered by ResolveAsync
type Outcome struct {
	Profile *Profile
	Err     error
}

// ResolveAsync resolves on a separate goroutine. The channel receives exactly
// one Outcome and is then closed.
func (r *Resolver) ResolveAsync(ctx context.Context) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		p, err := r.Resolve(ctx)
		ch <- Outcome{Profile: p, Err: err}
	}()
	return ch
}

// Current returns the profile of this session, resolving it on first use
func (r *Resolver) Current(ctx context.Context) (*Profile, error) {
	if p, ok := r.cache.Get(currentKey); ok {
		return p, nil
	}
	return r.Rescan(ctx)
}

// Rescan discards the session profile and resolves a new one
func (r *Resolver) Rescan(ctx context.Context) (*Profile, error) {
	r.cache.Delete(currentKey)
	r.catalogs.Cleanup()
	p, err := r.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.SetSession(currentKey, p)
	return p, nil
}

// SetDevice assumes device as the canonical id in place of the normalized
// one. The hardware identity is kept for layout and catalog lookups. An
// empty device returns to normalization. The next Current rescans.
func (r *Resolver) SetDevice(device string) {
	r.mu.Lock()
	r.device = strings.ToLower(strings.TrimSpace(device))
	r.mu.Unlock()
	r.cache.Delete(currentKey)
}

// AssumedDevice returns the id set with SetDevice
func (r *Resolver) AssumedDevice() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.device
}

// Resolve runs one full resolution pass. Only a missing identity is an
// error; every other failure ends up in the profile diagnostics.
func (r *Resolver) Resolve(ctx context.Context) (*Profile, error) {
	r.mu.Lock()
	override, assumed := r.override, r.device
	r.mu.Unlock()

	b := newBuilder(uuid.NewString(), time.Now().UTC())

	id, err := platform.Load(r.Sources.BuildProp, override)
	if err != nil {
		if assumed == "" {
			return nil, err
		}
		// The assumed id stands in for the missing hardware name
		b.diagnose(err.Error())
		id = platform.Identity{Device: assumed, RawDevice: assumed}
	}
	b.identity = id

	norm := alias.Normalize(id)
	b.device = norm.Device
	b.aliases = norm.Matched
	if norm.RecoveryExt != "" {
		b.recoveryExt = norm.RecoveryExt
	}
	if assumed != "" {
		b.device = assumed
	}
	log.Debug().Str("raw", id.RawDevice).Str("device", b.device).Str("assumed", assumed).
		Strs("rules", b.aliases).Msg("device normalized")

	r.discover(ctx, b)

	b.mtdMount = r.FS.Exists(partition.MTDMountPoint)
	policy := r.Policy
	if policy == nil {
		policy = DefaultPolicy
	}
	policy.Apply(b)

	b.recoveryImages, b.kernelImages = r.loadCatalogs(b.device, id.RawDevice, b.recoveryExt, b.kernelExt, false, b.diagnose)

	b.flashImage = r.tool(FlashImage)
	b.dumpImage = r.tool(DumpImage)
	b.vendorUtils = alias.VendorUtilsFamily[b.device]
	if r.KernelVersion != nil {
		b.kernelVersion = r.KernelVersion()
	}

	p := b.build()
	log.Info().Str("device", p.Device()).
		Str("recovery", p.RecoveryKind().String()).Str("kernel", p.KernelKind().String()).
		Int("diagnostics", len(p.diagnostics)).Msg("profile resolved")
	return p, nil
}

// discover runs the path discovery steps in priority order. Later steps only
// run for partitions still lacking a path.
func (r *Resolver) discover(ctx context.Context, b *builder) {
	b.record(partition.ProbeKnown(r.FS, partition.TargetRecovery))
	b.record(partition.ProbeKnown(r.FS, partition.TargetKernel))

	if r.Sources.BootLog != "" {
		if r.Capturer != nil {
			if err := r.Capturer.Capture(ctx, r.Sources.BootLog); err != nil {
				b.diagnose(err.Error())
			}
		}
		bootLog, _ := partition.ReadBootLog(r.Sources.BootLog, r.FS)
		b.recoveryVersion = bootLog.RecoveryVersion
		if b.recoveryPath == "" {
			b.record(bootLog.Recovery)
		}
		if b.kernelPath == "" {
			b.record(bootLog.Kernel)
		}
	}

	if b.recoveryPath == "" {
		b.record(partition.LookupCanonical(b.device, partition.TargetRecovery))
	}

	if r.Sources.LayoutArchive != "" && (b.recoveryPath == "" || b.kernelPath == "") {
		rec, kern, _ := partition.FallbackLayout(r.FS, partition.LayoutRequest{
			Archive:   r.Sources.LayoutArchive,
			Dir:       r.Sources.FilesDir,
			RawDevice: b.identity.RawDevice,
			Recovery:  b.recoveryPath == "",
			Kernel:    b.kernelPath == "",
		})
		if b.recoveryPath == "" {
			b.record(rec)
		}
		if b.kernelPath == "" {
			b.record(kern)
		}
	}
}

// loadCatalogs returns both catalogs for the device. Failures are reported
// through diagnose.
func (r *Resolver) loadCatalogs(device, rawDevice, recoveryExt, kernelExt string, reload bool, diagnose func(string)) (recovery, kernel map[catalog.Flavor][]string) {
	recovery = r.catalogBuckets("recovery", catalog.NewRecovery, r.Sources.RecoveryCatalog, recoveryExt, device, rawDevice, reload, diagnose)
	kernel = r.catalogBuckets("kernel", catalog.NewKernel, r.Sources.KernelCatalog, kernelExt, device, rawDevice, reload, diagnose)
	return recovery, kernel
}

// catalogBuckets returns the buckets of one manifest. Loaded catalogs are shared
// between scans for cache.TTLCatalog; reload or an expired entry re-reads
// the manifest into the shared catalog. A failed read keeps what the catalog
// held before and is not cached.
func (r *Resolver) catalogBuckets(kind string, fresh func() *catalog.Catalog, path, ext, device, rawDevice string, reload bool, diagnose func(string)) map[catalog.Flavor][]string {
	c := fresh()
	if path == "" {
		return c.Snapshot()
	}

	key := strings.Join([]string{kind, path, ext, device, rawDevice}, "|")
	if e := r.catalogs.GetEntry(key); e != nil {
		if !reload && !e.IsExpired() {
			log.Debug().Str("catalog", path).Dur("age", e.Age()).Msg("using loaded catalog")
			return e.Value.Snapshot()
		}
		c = e.Value
	}

	if err := c.LoadFile(path, ext, device, rawDevice); err != nil {
		diagnose(err.Error())
		return c.Snapshot()
	}
	r.catalogs.Set(key, c, cache.TTLCatalog)
	return c.Snapshot()
}

// ReloadCatalogs re-reads the manifests for p and returns the updated profile.
// p itself is left untouched. Later scans of the device share the result.
func (r *Resolver) ReloadCatalogs(p *Profile) *Profile {
	var diags []string
	recovery, kernel := r.loadCatalogs(p.device, p.RawDevice(), p.recoveryExt, p.kernelExt, true, func(msg string) {
		log.Warn().Str("device", p.device).Msg(msg)
		diags = append(diags, msg)
	})
	next := p.withImages(recovery, kernel, diags)

	if cur, ok := r.cache.Get(currentKey); ok && cur == p {
		r.cache.SetSession(currentKey, next)
	}
	return next
}

// tool prefers the system copy of a helper over the bundled one
func (r *Resolver) tool(name string) string {
	system := filepath.Join(SystemBinDir, name)
	if r.FS.Exists(system) {
		return system
	}
	return filepath.Join(r.Sources.FilesDir, name)
}
