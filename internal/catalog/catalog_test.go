package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ulikunitz/xz"
)

const manifest = `https://dl.example.org/recoveries/cwm-recovery-v6.0.4.5-mydevice.zip
https://dl.example.org/recoveries/cwm-recovery-v6.0.4.5-otherdevice.zip
https://dl.example.org/recoveries/twrp-2.6.3.0-mydevice.zip
https://dl.example.org/recoveries/twrp-2.7.0.0-mydevice.zip
https://dl.example.org/recoveries/TWRP-2.8.0.0-MyDevice.zip
https://dl.example.org/recoveries/philz_touch_6-mydevice.zip
https://dl.example.org/recoveries/stock-mydevice-clockwork.zip
https://dl.example.org/recoveries/unknown-mydevice.zip
https://dl.example.org/recoveries/twrp-2.7.0.0-mydevice.img
`

func TestLoadRecovery(t *testing.T) {
	c := NewRecovery()
	if err := c.Load(strings.NewReader(manifest), ".zip", "mydevice", ""); err != nil {
		t.Fatal(err)
	}

	want := map[Flavor][]string{
		Stock: {"stock-mydevice-clockwork.zip"},
		CWM:   {"cwm-recovery-v6.0.4.5-mydevice.zip"},
		TWRP:  {"twrp-2.7.0.0-mydevice.zip", "twrp-2.6.3.0-mydevice.zip", "TWRP-2.8.0.0-MyDevice.zip"},
		PhilZ: {"philz_touch_6-mydevice.zip"},
	}
	if diff := cmp.Diff(want, c.Snapshot()); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLongNoiseLine(t *testing.T) {
	c := NewRecovery()
	in := strings.Repeat("x", 200*1024) + "\ntwrp-2.7.0.0-mydevice.zip\n"
	if err := c.Load(strings.NewReader(in), ".zip", "mydevice"); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if diff := cmp.Diff([]string{"twrp-2.7.0.0-mydevice.zip"}, c.Snapshot()[TWRP]); diff != "" {
		t.Errorf("Snapshot()[TWRP] mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOrdering(t *testing.T) {
	c := NewRecovery()
	in := "twrp-a-v2.zip\ntwrp-a-v1.zip\ntwrp-a-v3.zip\n"
	if err := c.Load(strings.NewReader(in), ".zip", "twrp-a"); err != nil {
		t.Fatal(err)
	}
	want := []string{"twrp-a-v3.zip", "twrp-a-v2.zip", "twrp-a-v1.zip"}
	if diff := cmp.Diff(want, c.Snapshot()[TWRP]); diff != "" {
		t.Errorf("Snapshot()[TWRP] mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRawDeviceName(t *testing.T) {
	c := NewRecovery()
	in := "cwm-6.0-GT-N7000.zip\ncwm-6.0-n7000.zip\n"
	if err := c.Load(strings.NewReader(in), ".zip", "galaxynote", "GT-N7000"); err != nil {
		t.Fatal(err)
	}
	if got := c.Snapshot()[CWM]; len(got) != 1 || got[0] != "cwm-6.0-GT-N7000.zip" {
		t.Errorf("Snapshot()[CWM] = %v", got)
	}
}

func TestReloadReplaces(t *testing.T) {
	c := NewRecovery()
	for i := 0; i < 2; i++ {
		if err := c.Load(strings.NewReader(manifest), ".zip", "mydevice"); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.Snapshot()[TWRP]; len(got) != 3 {
		t.Errorf("Snapshot()[TWRP] after reload = %v", got)
	}

	if err := c.Load(strings.NewReader(""), ".zip", "mydevice"); err != nil {
		t.Fatal(err)
	}
	for f, images := range c.Snapshot() {
		if len(images) != 0 {
			t.Errorf("bucket %s not cleared: %v", f, images)
		}
	}
}

func TestLoadKernel(t *testing.T) {
	c := NewKernel()
	in := "kernels/stock-kernel-mako-1.img\nkernels/franco-mako.img\nkernels/stock-kernel-mako-2.img\n"
	if err := c.Load(strings.NewReader(in), ".img", "mako"); err != nil {
		t.Fatal(err)
	}
	want := map[Flavor][]string{Stock: {"stock-kernel-mako-2.img", "stock-kernel-mako-1.img"}}
	if diff := cmp.Diff(want, c.Snapshot()); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if got := c.Snapshot()[TWRP]; got != nil {
		t.Errorf("kernel catalog has a twrp bucket: %v", got)
	}
}

func TestLoadFileXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recovery_sums.xz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := xz.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	c := NewRecovery()
	if err := c.LoadFile(path, ".zip", "mydevice"); err != nil {
		t.Fatal(err)
	}
	if got := c.Snapshot()[CWM]; len(got) != 1 {
		t.Errorf("Snapshot()[CWM] = %v", got)
	}
}

func TestLoadFileMissingKeepsContents(t *testing.T) {
	c := NewRecovery()
	if err := c.Load(strings.NewReader(manifest), ".zip", "mydevice"); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadFile(filepath.Join(t.TempDir(), "recovery_sums"), ".zip", "mydevice"); err == nil {
		t.Fatal("LoadFile() succeeded on a missing file")
	}
	if got := c.Snapshot()[PhilZ]; len(got) != 1 {
		t.Errorf("Snapshot()[PhilZ] = %v", got)
	}
}

func TestParseFlavor(t *testing.T) {
	for in, want := range map[string]Flavor{"stock": Stock, "ClockworkMod": CWM, "cwm": CWM, "TWRP": TWRP, "philz": PhilZ} {
		got, err := ParseFlavor(in)
		if err != nil || got != want {
			t.Errorf("ParseFlavor(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFlavor("4ext"); err == nil {
		t.Error("ParseFlavor(4ext) succeeded")
	}
}
