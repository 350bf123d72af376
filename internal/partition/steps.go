package partition

import (
	"fmt"
	"strings"
)

// Target names the partition being discovered
type Target string

const (
	TargetRecovery Target = "recovery"
	TargetKernel   Target = "kernel"
)

// Outcome is the result class of a single discovery step
type Outcome int

const (
	NotFound Outcome = iota
	Found
	Errored
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Errored:
		return "errored"
	default:
		return "not_found"
	}
}

// Step names, in the order the resolver runs them
const (
	StepKnownPaths = "known-paths"
	StepBootLog    = "boot-log"
	StepCanonical  = "canonical-table"
	StepLayout     = "fallback-layout"
)

// StepResult is what one discovery step found for one partition.
// Kind is only a hint; the final kind is decided by the resolver policy.
type StepResult struct {
	Step    string  `json:"step"`
	Target  Target  `json:"target"`
	Outcome Outcome `json:"-"`
	Path    string  `json:"path,omitempty"`
	Kind    Kind    `json:"kind"`
	Err     error   `json:"-"`
}

func found(step string, target Target, path string, kind Kind) StepResult {
	return StepResult{Step: step, Target: target, Outcome: Found, Path: path, Kind: kind}
}

func notFound(step string, target Target) StepResult {
	return StepResult{Step: step, Target: target, Outcome: NotFound}
}

func errored(step string, target Target, err error) StepResult {
	return StepResult{Step: step, Target: target, Outcome: Errored, Err: err}
}

// Diagnostic renders an errored result for the diagnostics list
func (r StepResult) Diagnostic() string {
	if r.Err == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s): %v", r.Step, r.Target, r.Err)
}

// KindForPath classifies a discovered node: MTD style paths are MTD,
// everything else is written as a raw block device.
func KindForPath(path string) Kind {
	if path == "" {
		return Unsupported
	}
	if strings.Contains(path, "mtd") {
		return MTD
	}
	return RawBlock
}

// IsFOTA reports whether a recovery node uses FOTA style naming
func IsFOTA(path string) bool {
	return strings.Contains(strings.ToLower(path), "fota")
}

// FirstExisting returns the first path in candidates that exists
func FirstExisting(fs FS, candidates []string) (string, bool) {
	for _, p := range candidates {
		if fs.Exists(p) {
			return p, true
		}
	}
	return "", false
}

// ProbeKnown checks the static known-path lists
func ProbeKnown(fs FS, target Target) StepResult {
	candidates := RecoveryPaths
	if target == TargetKernel {
		candidates = KernelPaths
	}

	if p, ok := FirstExisting(fs, candidates); ok {
		return found(StepKnownPaths, target, p, KindForPath(p))
	}
	return notFound(StepKnownPaths, target)
}

// LookupCanonical looks up the recovery node by canonical device id.
// The table only knows recovery partitions.
func LookupCanonical(device string, target Target) StepResult {
	if target != TargetRecovery {
		return notFound(StepCanonical, target)
	}
	if p, ok := CanonicalRecoveryPaths[device]; ok {
		return found(StepCanonical, target, p, KindForPath(p))
	}
	return notFound(StepCanonical, target)
}
