// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"testing"

	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

func TestRankSurfaceFormatPrefersHighestRanked(t *testing.T) {
	available := []vk.SurfaceFormatKHR{
		{Format: vk.FormatB8G8R8A8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinearKHR},
		{Format: vk.FormatR16G16B16A16Sfloat, ColorSpace: vk.ColorSpaceBt709LinearEXT},
		{Format: vk.FormatR16G16B16A16Sfloat, ColorSpace: vk.ColorSpaceExtendedSrgbLinearEXT},
	}
	got := rankSurfaceFormat(available)
	want := vk.SurfaceFormatKHR{Format: vk.FormatR16G16B16A16Sfloat, ColorSpace: vk.ColorSpaceExtendedSrgbLinearEXT}
	if got != want {
		t.Errorf("rankSurfaceFormat = %+v, want %+v", got, want)
	}
}

func TestRankSurfaceFormatFallsBackToFirstAvailable(t *testing.T) {
	fallback := vk.SurfaceFormatKHR{Format: vk.Format(9999), ColorSpace: vk.ColorSpaceKHR(9999)}
	available := []vk.SurfaceFormatKHR{fallback}
	if got := rankSurfaceFormat(available); got != fallback {
		t.Errorf("rankSurfaceFormat = %+v, want fallback %+v", got, fallback)
	}
}

func TestRankSurfaceFormatHDR10TakesPriorityOverEverything(t *testing.T) {
	available := []vk.SurfaceFormatKHR{
		{Format: vk.FormatB8G8R8A8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinearKHR},
		{Format: vk.FormatA2B10G10R10UnormPack32, ColorSpace: vk.ColorSpaceHdr10St2084EXT},
		{Format: vk.FormatA2B10G10R10UnormPack32, ColorSpace: vk.ColorSpaceHdr10HlgEXT},
	}
	got := rankSurfaceFormat(available)
	want := vk.SurfaceFormatKHR{Format: vk.FormatA2B10G10R10UnormPack32, ColorSpace: vk.ColorSpaceHdr10HlgEXT}
	if got != want {
		t.Errorf("rankSurfaceFormat = %+v, want HLG %+v", got, want)
	}
}

func TestRankPresentModePrefersImmediateOverMailboxOverFifo(t *testing.T) {
	cases := []struct {
		name      string
		available []vk.PresentModeKHR
		want      vk.PresentModeKHR
	}{
		{"all three", []vk.PresentModeKHR{vk.PresentModeFifoKHR, vk.PresentModeMailboxKHR, vk.PresentModeImmediateKHR}, vk.PresentModeImmediateKHR},
		{"mailbox and fifo", []vk.PresentModeKHR{vk.PresentModeFifoKHR, vk.PresentModeMailboxKHR}, vk.PresentModeMailboxKHR},
		{"fifo only", []vk.PresentModeKHR{vk.PresentModeFifoKHR}, vk.PresentModeFifoKHR},
	}
	for _, c := range cases {
		if got := rankPresentMode(c.available); got != c.want {
			t.Errorf("%s: rankPresentMode = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestRankPresentModeFallsBackToFifoWhenUnranked(t *testing.T) {
	if got := rankPresentMode([]vk.PresentModeKHR{vk.PresentModeKHR(9999)}); got != vk.PresentModeFifoKHR {
		t.Errorf("rankPresentMode = %v, want FIFO fallback", got)
	}
}
