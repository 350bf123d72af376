package blockdev

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSizeRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recovery.img")
	if err := os.WriteFile(path, make([]byte, 4096), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Size(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != 4096 {
		t.Errorf("Size() = %d, want 4096", got)
	}
}

func TestSizeErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Size(filepath.Join(dir, "missing")); err == nil {
		t.Error("Size() succeeded on a missing file")
	}
	if _, err := Size(dir); err == nil {
		t.Error("Size() succeeded on a directory")
	}
}

func TestReadUevent(t *testing.T) {
	root := t.TempDir()
	sys := filepath.Join(root, "sys", "class", "block", "mmcblk0p6")
	if err := os.MkdirAll(sys, 0755); err != nil {
		t.Fatal(err)
	}
	uevent := "MAJOR=179\nMINOR=6\nDEVNAME=mmcblk0p6\nDEVTYPE=partition\nPARTN=6\nPARTNAME=recovery\n"
	if err := os.WriteFile(filepath.Join(sys, "uevent"), []byte(uevent), 0644); err != nil {
		t.Fatal(err)
	}

	byName := filepath.Join(root, "dev", "block", "platform", "dw_mmc", "by-name")
	if err := os.MkdirAll(byName, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("/dev/block/mmcblk0p6", filepath.Join(byName, "recovery")); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"/dev/block/mmcblk0p6", "/dev/block/platform/dw_mmc/by-name/recovery"} {
		ev, err := ReadUevent(root, path)
		if err != nil {
			t.Fatalf("ReadUevent(%s) = %v", path, err)
		}
		want := Uevent{Name: "mmcblk0p6", Major: "179", Minor: "6", PartName: "recovery", PartN: "6"}
		if *ev != want {
			t.Errorf("ReadUevent(%s) = %+v, want %+v", path, *ev, want)
		}
	}

	if _, err := ReadUevent(root, "/dev/block/mmcblk0p7"); err == nil {
		t.Error("ReadUevent() succeeded without a sysfs entry")
	}
}
