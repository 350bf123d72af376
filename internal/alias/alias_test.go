package alias

import (
	"testing"

	"github.com/BioHaZard1/Rashr/internal/platform"
)

func TestNormalize(t *testing.T) {
	for _, tt := range []struct {
		name string
		id   platform.Identity
		want string
	}{
		{"unknown device unchanged", platform.Identity{Device: "mako", Manufacturer: "lge"}, "mako"},
		{"note brazil", platform.Identity{Device: "gt-n7000b", Manufacturer: "samsung"}, "n7000"},
		{"note by board", platform.Identity{Board: "galaxynote", Device: "something"}, "n7000"},
		{"s4 unified prefix", platform.Identity{Device: "jfltexx", Manufacturer: "samsung"}, "jflte"},
		{"s4 prefix needs samsung", platform.Identity{Device: "jfltexx", Manufacturer: "other"}, "jfltexx"},
		{"note 3 unified", platform.Identity{Device: "hltetmo", Manufacturer: "samsung"}, "hlte"},
		{"m3 samsung", platform.Identity{Device: "m3", Manufacturer: "samsung"}, "i9300"},
		{"m3 not samsung", platform.Identity{Device: "m3", Manufacturer: "lge"}, "m3"},
		{"optimus l7 by model", platform.Identity{Model: "lg-p710", Device: "x"}, "p710"},
		{"xperia z", platform.Identity{Device: "c6603", Manufacturer: "sony"}, "yuga"},
		{"htc one sprint", platform.Identity{Device: "m7spr"}, "m7wls"},
		{"droid x by model", platform.Identity{Model: "droidx", Device: "cdma_whatever"}, "shadow"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.id).Device; got != tt.want {
				t.Errorf("Normalize(%+v) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestNormalizeLaterRuleWins(t *testing.T) {
	// Unified Motorola build prefix first, then the Atrix HD model override.
	id := platform.Identity{Board: "msm8960", Model: "mb886", Device: "mb886", Manufacturer: "motorola"}
	res := Normalize(id)
	if res.Device != "qinara" {
		t.Fatalf("Normalize() = %q, want qinara", res.Device)
	}
	if len(res.Matched) != 2 || res.Matched[0] != "Unified Motorola CM build" || res.Matched[1] != "Motorola Atrix HD" {
		t.Errorf("Matched = %v", res.Matched)
	}

	// Device rules see the rewritten name: once the Tab 2 model rule has
	// fired, the WiFi device rule no longer matches.
	id = platform.Identity{Model: "gt-p3110", Device: "espressowifi", Manufacturer: "samsung"}
	if got := Normalize(id).Device; got != "p3110" {
		t.Errorf("Normalize() = %q, want p3110", got)
	}

	// Note 2 LTE by device, narrowed to AT&T by board.
	id = platform.Identity{Board: "t0lteatt", Device: "gt-n7105", Manufacturer: "samsung"}
	if got := Normalize(id).Device; got != "t0lteatt" {
		t.Errorf("Normalize() = %q, want t0lteatt", got)
	}
}

func TestNormalizeWithOrder(t *testing.T) {
	rules := []Rule{
		{Family: "broad", DevicePrefix: []string{"abc"}, Set: "abc"},
		{Family: "narrow", Device: []string{"abc"}, Model: []string{"abc-2"}, Set: "abc2"},
	}
	id := platform.Identity{Model: "abc-2", Device: "abcxx"}
	if got := NormalizeWith(rules, id).Device; got != "abc2" {
		t.Errorf("NormalizeWith() = %q, want abc2", got)
	}

	reversed := []Rule{rules[1], rules[0]}
	if got := NormalizeWith(reversed, id).Device; got != "abc" {
		t.Errorf("NormalizeWith(reversed) = %q, want abc", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, r := range Rules {
		for _, dev := range r.Device {
			id := platform.Identity{Device: dev, Manufacturer: r.Manufacturer}
			first := Normalize(id).Device
			id.Device = first
			if again := Normalize(id).Device; again != first {
				t.Errorf("%s: Normalize(%q) = %q, but Normalize(%q) = %q", r.Family, dev, first, first, again)
			}
		}
		for _, b := range r.Board {
			id := platform.Identity{Board: b, Device: b, Manufacturer: r.Manufacturer}
			first := Normalize(id).Device
			id.Device = first
			if again := Normalize(id).Device; again != first {
				t.Errorf("%s: board %q normalizes to %q, then %q", r.Family, b, first, again)
			}
		}
	}
}

func TestSonyRecoveryExt(t *testing.T) {
	for _, dev := range []string{"c6602", "c6603"} {
		res := Normalize(platform.Identity{Device: dev, Manufacturer: "sony"})
		if res.RecoveryExt != ".tar" {
			t.Errorf("%s: RecoveryExt = %q, want .tar", dev, res.RecoveryExt)
		}
	}
	if res := Normalize(platform.Identity{Device: "mako"}); res.RecoveryExt != "" {
		t.Errorf("mako: RecoveryExt = %q, want empty", res.RecoveryExt)
	}
}

func TestFamiliesAreCanonical(t *testing.T) {
	for _, fam := range []map[string]bool{OverlayFamily, RepackagedFamily} {
		for dev := range fam {
			if got := Normalize(platform.Identity{Device: dev}).Device; got != dev {
				t.Errorf("family member %q normalizes to %q", dev, got)
			}
		}
	}
}
