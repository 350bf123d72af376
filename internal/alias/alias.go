// Package alias maps raw platform identity strings to canonical device
// identifiers.
//
// Vendors ship the same hardware under many names: regional variants,
// carrier rebadges and unified multi-board builds. Rules collapses them into
// one identifier per hardware family. The table is evaluated top to bottom
// and every matching rule is applied, so a later rule overrides an earlier
// one. Rules that narrow a broad match must stay below it.
package alias

import (
	"strings"

	"github.com/BioHaZard1/Rashr/internal/platform"
)

// Rule is a single declarative alias entry.
//
// Manufacturer, when set, must equal the manufacturer. The rule then matches
// if any of Device, DevicePrefix, Board or Model match. Device and
// DevicePrefix are compared against the identifier as rewritten by the rules
// above, Board and Model against the raw identity.
type Rule struct {
	Family       string
	Manufacturer string
	Device       []string
	DevicePrefix []string
	Board        []string
	Model        []string

	// Set replaces the current identifier (empty keeps it)
	Set string
	// RecoveryExt overrides the recovery image extension (empty keeps it)
	RecoveryExt string
}

// Result is the outcome of normalizing an identity
type Result struct {
	Device      string   `json:"device"`
	RecoveryExt string   `json:"recovery_ext,omitempty"`
	Matched     []string `json:"matched,omitempty"`
}

// Match reports whether the rule applies to the identity with the current
// device identifier.
func (r Rule) Match(id platform.Identity, device string) bool {
	if r.Manufacturer != "" && id.Manufacturer != r.Manufacturer {
		return false
	}
	return contains(r.Device, device) ||
		hasAnyPrefix(device, r.DevicePrefix) ||
		contains(r.Board, id.Board) ||
		contains(r.Model, id.Model)
}

// Normalize applies Rules to a lowercased identity
func Normalize(id platform.Identity) Result {
	return NormalizeWith(Rules, id)
}

// NormalizeWith applies rules in order. The last matching rule that sets an
// identifier wins. It never returns an empty device unless the input device
// was empty.
func NormalizeWith(rules []Rule, id platform.Identity) Result {
	res := Result{Device: id.Device}

	for _, r := range rules {
		if !r.Match(id, res.Device) {
			continue
		}
		if r.Set != "" {
			res.Device = r.Set
		}
		if r.RecoveryExt != "" {
			res.RecoveryExt = r.RecoveryExt
		}
		res.Matched = append(res.Matched, r.Family)
	}

	return res
}

func contains(list []string, s string) bool {
	if s == "" {
		return false
	}
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	if s == "" {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
