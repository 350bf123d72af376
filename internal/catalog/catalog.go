package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ulikunitz/xz"
	"golang.org/x/exp/slices"
)

// Flavor names a bucket of compatible images
type Flavor string

const (
	Stock Flavor = "stock"
	CWM   Flavor = "cwm"
	TWRP  Flavor = "twrp"
	PhilZ Flavor = "philz"
)

// class maps manifest keywords to a flavor
type class struct {
	Flavor   Flavor
	Keywords []string
}

// RecoveryClasses classify recovery images. The first matching class wins.
var RecoveryClasses = []class{
	{Stock, []string{"stock"}},
	{CWM, []string{"clockwork", "cwm"}},
	{TWRP, []string{"twrp"}},
	{PhilZ, []string{"philz"}},
}

// KernelClasses classify kernel images
var KernelClasses = []class{
	{Stock, []string{"stock"}},
}

// Catalog holds the compatible images of one partition, bucketed by flavor.
// Buckets are ordered so the lexicographically greatest name comes first.
// A catalog may be reloaded while other goroutines take snapshots.
type Catalog struct {
	mu      sync.RWMutex
	classes []class
	buckets map[Flavor][]string
}

// NewRecovery creates an empty recovery catalog
func NewRecovery() *Catalog {
	return newCatalog(RecoveryClasses)
}

// NewKernel creates an empty kernel catalog
func NewKernel() *Catalog {
	return newCatalog(KernelClasses)
}

func newCatalog(classes []class) *Catalog {
	c := &Catalog{classes: classes}
	c.buckets = c.empty()
	return c
}

func (c *Catalog) empty() map[Flavor][]string {
	buckets := make(map[Flavor][]string, len(c.classes))
	for _, cl := range c.classes {
		buckets[cl.Flavor] = []string{}
	}
	return buckets
}

// Load replaces the catalog contents with the qualifying lines of r. A line
// qualifies when it ends with ext and contains one of names, both compared
// case-insensitively. Lines matching no flavor keyword are dropped. On a
// read error the previous contents are kept.
func (c *Catalog) Load(r io.Reader, ext string, names ...string) error {
	ext = strings.ToLower(ext)
	var lowered []string
	for _, n := range names {
		if n != "" {
			lowered = append(lowered, strings.ToLower(n))
		}
	}

	buckets := c.empty()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		low := strings.ToLower(line)
		if !strings.HasSuffix(low, ext) || !containsAny(low, lowered) {
			continue
		}
		flavor, ok := c.classify(low)
		if !ok {
			continue
		}
		name := line[strings.LastIndex(line, "/")+1:]
		buckets[flavor] = append(buckets[flavor], name)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	for _, images := range buckets {
		slices.Sort(images)
		slices.Reverse(images)
	}

	c.mu.Lock()
	c.buckets = buckets
	c.mu.Unlock()
	return nil
}

// LoadFile loads a manifest from disk. Files ending in .xz are decompressed.
func (c *Catalog) LoadFile(path, ext string, names ...string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(bufio.NewReader(file))
		if err != nil {
			return fmt.Errorf("failed to open compressed catalog %s: %w", path, err)
		}
		r = xr
	}
	return c.Load(r, ext, names...)
}

func (c *Catalog) classify(low string) (Flavor, bool) {
	for _, cl := range c.classes {
		if containsAny(low, cl.Keywords) {
			return cl.Flavor, true
		}
	}
	return "", false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Flavors lists the buckets of this catalog in classification order
func (c *Catalog) Flavors() []Flavor {
	flavors := make([]Flavor, 0, len(c.classes))
	for _, cl := range c.classes {
		flavors = append(flavors, cl.Flavor)
	}
	return flavors
}

// Snapshot copies every bucket
func (c *Catalog) Snapshot() map[Flavor][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[Flavor][]string, len(c.buckets))
	for f, images := range c.buckets {
		out[f] = slices.Clone(images)
	}
	return out
}

// ParseFlavor parses a flavor name, accepting clockwork for cwm
func ParseFlavor(s string) (Flavor, error) {
	switch strings.ToLower(s) {
	case "stock":
		return Stock, nil
	case "cwm", "clockwork", "clockworkmod":
		return CWM, nil
	case "twrp":
		return TWRP, nil
	case "philz":
		return PhilZ, nil
	}
	return "", fmt.Errorf("unknown flavor %q", s)
}
