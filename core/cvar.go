// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// CVarKind identifies how a registered CVar's value is parsed and
// re-serialized.
type CVarKind int

const (
	CVarBool CVarKind = iota
	CVarInt
	CVarFloat
	CVarString
)

// CVarDef describes one recognized configuration option.
type CVarDef struct {
	Name    string
	Kind    CVarKind
	Default string
}

// recognizedCVars is the fixed option set this module understands. An
// unrecognized key in a loaded file is kept verbatim (so round-tripping a
// file with foreign entries doesn't lose them) but is never validated.
var recognizedCVars = []CVarDef{
	{"r_vsync", CVarBool, "true"},
	{"r_msaa", CVarInt, "0"},
	{"r_resolution", CVarString, "1280x720"},
	{"r_fullscreen", CVarBool, "false"},
	{"r_texture_quality", CVarInt, "2"},
	{"audio_master", CVarFloat, "1.0"},
	{"debug_log_level", CVarInt, "2"},
	{"r_trackMemory", CVarBool, "false"},
	{"r_frame_arena_size_mb", CVarInt, "16"},
}

// CVarRegistry holds the current value of every loaded/set option as
// strings, plus the list of names that have been set. A CVarRegistry has
// no internal locking and is not safe for concurrent use.
type CVarRegistry struct {
	values map[string]string
	order  []string
}

// NewCVarRegistry returns a registry pre-populated with every recognized
// option's default value.
func NewCVarRegistry() *CVarRegistry {
	r := &CVarRegistry{values: make(map[string]string)}
	for _, def := range recognizedCVars {
		r.set(def.Name, def.Default)
	}
	return r
}

func (r *CVarRegistry) set(name, value string) {
	if _, exists := r.values[name]; !exists {
		r.order = append(r.order, name)
	}
	r.values[name] = value
}

// Get returns the raw string value of name and whether it is set.
func (r *CVarRegistry) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// GetBool parses name's value as a bool, defaulting to def if absent or
// unparseable.
func (r *CVarRegistry) GetBool(name string, def bool) bool {
	v, ok := r.values[name]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// GetInt parses name's value as an int, defaulting to def if absent or
// unparseable.
func (r *CVarRegistry) GetInt(name string, def int) int {
	v, ok := r.values[name]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetFloat parses name's value as a float64, defaulting to def if absent or
// unparseable.
func (r *CVarRegistry) GetFloat(name string, def float64) float64 {
	v, ok := r.values[name]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Set stores value under name, recording it for Save even if name is not
// one of recognizedCVars.
func (r *CVarRegistry) Set(name, value string) {
	r.set(name, value)
}

// LoadCVarFile parses a key=value text file, one entry per line, '#'
// starting a whole-line comment; blank lines are ignored. Unknown keys are
// kept for round-tripping.
func LoadCVarFile(path string) (*CVarRegistry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open cvar file: %v", ErrResourceLoadFailed, err)
	}
	defer f.Close()

	r := NewCVarRegistry()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		r.set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan cvar file: %v", ErrResourceLoadFailed, err)
	}
	return r, nil
}

// Save writes every archived entry as key=value, one per line, sorted
// alphabetically by key. Saving, loading into a fresh registry, and saving
// again yields byte-identical output.
func (r *CVarRegistry) Save(path string) error {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%s\n", name, r.values[name])
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: write cvar file: %v", ErrResourceLoadFailed, err)
	}
	return nil
}

// ToFrameConfig maps recognized options onto a FrameConfig, overlaying
// DefaultFrameConfig for anything not set in the registry.
func (r *CVarRegistry) ToFrameConfig() FrameConfig {
	cfg := DefaultFrameConfig()
	cfg.Window.VSync = r.GetBool("r_vsync", cfg.Window.VSync)
	cfg.Window.Fullscreen = r.GetBool("r_fullscreen", cfg.Window.Fullscreen)

	if res, ok := r.Get("r_resolution"); ok {
		if w, h, ok := parseResolution(res); ok {
			cfg.Window.Width = w
			cfg.Window.Height = h
		}
	}
	return cfg
}

func parseResolution(s string) (w, h uint32, ok bool) {
	wStr, hStr, found := strings.Cut(strings.ToLower(s), "x")
	if !found {
		return 0, 0, false
	}
	wi, err1 := strconv.Atoi(strings.TrimSpace(wStr))
	hi, err2 := strconv.Atoi(strings.TrimSpace(hStr))
	if err1 != nil || err2 != nil || wi <= 0 || hi <= 0 {
		return 0, 0, false
	}
	return uint32(wi), uint32(hi), true
}
