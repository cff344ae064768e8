// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCVarRegistryDefaults(t *testing.T) {
	r := NewCVarRegistry()
	if !r.GetBool("r_vsync", false) {
		t.Errorf("r_vsync default = false, want true")
	}
	if got := r.GetInt("r_msaa", -1); got != 0 {
		t.Errorf("r_msaa default = %d, want 0", got)
	}
	if got, _ := r.Get("r_resolution"); got != "1280x720" {
		t.Errorf("r_resolution default = %q, want 1280x720", got)
	}
}

func TestCVarRegistrySetAndGet(t *testing.T) {
	r := NewCVarRegistry()
	r.Set("r_msaa", "4")
	if got := r.GetInt("r_msaa", 0); got != 4 {
		t.Errorf("GetInt after Set = %d, want 4", got)
	}

	r.Set("custom_key", "hello")
	if got, ok := r.Get("custom_key"); !ok || got != "hello" {
		t.Errorf("unrecognized key not retained: got %q, ok=%v", got, ok)
	}
}

func TestCVarRegistryGetFallbackOnUnparseable(t *testing.T) {
	r := NewCVarRegistry()
	r.Set("r_msaa", "not-a-number")
	if got := r.GetInt("r_msaa", 8); got != 8 {
		t.Errorf("GetInt on unparseable value = %d, want fallback 8", got)
	}
}

func TestCVarFileLoadAndSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.cvar")

	content := "# comment line\nr_msaa=4\nr_vsync=false\ncustom_option=yes\n\nr_resolution=1920x1080\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, err := LoadCVarFile(path)
	if err != nil {
		t.Fatalf("LoadCVarFile: %v", err)
	}
	if got := r.GetInt("r_msaa", -1); got != 4 {
		t.Errorf("r_msaa = %d, want 4", got)
	}
	if r.GetBool("r_vsync", true) {
		t.Errorf("r_vsync = true, want false")
	}
	if got, ok := r.Get("custom_option"); !ok || got != "yes" {
		t.Errorf("custom_option = %q, ok=%v, want yes/true", got, ok)
	}

	savedPath := filepath.Join(dir, "saved.cvar")
	if err := r.Save(savedPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := LoadCVarFile(savedPath)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	secondSavePath := filepath.Join(dir, "saved2.cvar")
	if err := reloaded.Save(secondSavePath); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	first, err := os.ReadFile(savedPath)
	if err != nil {
		t.Fatalf("read first save: %v", err)
	}
	second, err := os.ReadFile(secondSavePath)
	if err != nil {
		t.Fatalf("read second save: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("save->load->save not byte-identical:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestCVarFileSaveOrderIsAlphabeticalRegardlessOfLoadOrder(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.cvar")
	pathB := filepath.Join(dir, "b.cvar")

	os.WriteFile(pathA, []byte("r_vsync=true\nr_msaa=2\n"), 0o644)
	os.WriteFile(pathB, []byte("r_msaa=2\nr_vsync=true\n"), 0o644)

	ra, err := LoadCVarFile(pathA)
	if err != nil {
		t.Fatalf("load a: %v", err)
	}
	rb, err := LoadCVarFile(pathB)
	if err != nil {
		t.Fatalf("load b: %v", err)
	}

	savedA := filepath.Join(dir, "saved_a.cvar")
	savedB := filepath.Join(dir, "saved_b.cvar")
	if err := ra.Save(savedA); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := rb.Save(savedB); err != nil {
		t.Fatalf("save b: %v", err)
	}

	contentA, _ := os.ReadFile(savedA)
	contentB, _ := os.ReadFile(savedB)
	if string(contentA) != string(contentB) {
		t.Fatalf("differently-ordered inputs produced different save output:\nA: %q\nB: %q", contentA, contentB)
	}
}

func TestCVarToFrameConfig(t *testing.T) {
	r := NewCVarRegistry()
	r.Set("r_resolution", "1920x1080")
	r.Set("r_fullscreen", "true")
	r.Set("r_vsync", "false")

	cfg := r.ToFrameConfig()
	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("resolution = %dx%d, want 1920x1080", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Errorf("Fullscreen = false, want true")
	}
	if cfg.Window.VSync {
		t.Errorf("VSync = true, want false")
	}
}

func TestParseResolutionInvalid(t *testing.T) {
	cases := []string{"", "1920", "widexhigh", "1920x-1"}
	for _, c := range cases {
		if _, _, ok := parseResolution(c); ok {
			t.Errorf("parseResolution(%q) succeeded, want failure", c)
		}
	}
}
