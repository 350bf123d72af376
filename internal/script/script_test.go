package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/BioHaZard1/Rashr/internal/partition"
	"github.com/BioHaZard1/Rashr/internal/platform"
	"github.com/BioHaZard1/Rashr/internal/profile"
)

func TestCompose(t *testing.T) {
	got, err := Compose(Options{
		Backup:     Backup{Boot: true, Cache: true, Data: true, Recovery: true, System: true},
		BackupName: "before-update",
		WipeCache:  true,
		WipeDalvik: true,
		Install:    []string{"/sdcard/cm-11.zip", "/sdcard/gapps.zip"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		Header,
		"backup BCDRS before-update",
		"wipe cache",
		"wipe dalvik",
		"install /sdcard/cm-11.zip",
		"install /sdcard/gapps.zip",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compose() mismatch (-want +got):\n%s", diff)
	}

	wantPreview := "1. backup BCDRS before-update\n2. wipe cache\n3. wipe dalvik\n4. install /sdcard/cm-11.zip\n5. install /sdcard/gapps.zip\n"
	if diff := cmp.Diff(wantPreview, Preview(got)); diff != "" {
		t.Errorf("Preview() mismatch (-want +got):\n%s", diff)
	}
}

func TestComposePartialBackup(t *testing.T) {
	got, err := Compose(Options{Backup: Backup{Data: true, System: true}, WipeData: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{Header, "backup DS", "wipe data"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compose() mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeEmpty(t *testing.T) {
	got, err := Compose(Options{BackupName: "ignored"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{Header}, got); diff != "" {
		t.Errorf("Compose() mismatch (-want +got):\n%s", diff)
	}
	if Preview(got) != "" {
		t.Errorf("Preview() = %q, want empty", Preview(got))
	}
}

func TestComposeRejectsSeparators(t *testing.T) {
	if _, err := Compose(Options{Backup: Backup{Boot: true}, BackupName: "a;reboot"}); err == nil {
		t.Error("Compose() accepted a backup name with a separator")
	}
	if _, err := Compose(Options{Install: []string{"/sdcard/a;b.zip"}}); err == nil {
		t.Error("Compose() accepted an install path with a separator")
	}
}

func TestWriteFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recovery", "openrecoveryscript")
	for _, cmds := range [][]string{{Header, "wipe cache"}, {"install /sdcard/a.zip"}} {
		if err := WriteFile(path, cmds); err != nil {
			t.Fatal(err)
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Header + "\nwipe cache\ninstall /sdcard/a.zip\n"
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := WriteTo(&buf, []string{"", "wipe data"}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "wipe data\n" {
		t.Errorf("WriteTo() = %q", buf.String())
	}
}

func TestApplicable(t *testing.T) {
	dir := t.TempDir()
	prop := filepath.Join(dir, "build.prop")
	if err := os.WriteFile(prop, []byte("ro.product.device=mako\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r := profile.New(partition.FS{Root: dir}, profile.Sources{BuildProp: prop, FilesDir: dir}, platform.Identity{})

	p, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := Applicable(p); !errors.Is(err, ErrNotApplicable) {
		t.Errorf("Applicable() = %v, want ErrNotApplicable", err)
	}

	if err := os.MkdirAll(filepath.Join(dir, "dev"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "dev", "recovery"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	p, err = r.Rescan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := Applicable(p); err != nil {
		t.Errorf("Applicable() = %v", err)
	}
}
