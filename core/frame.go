// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"time"

	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

// PerformanceSink receives per-phase timing samples from the frame loop and
// layer stack. Implementations typically feed a ring buffer consumed by an
// overlay layer; a nil sink disables collection entirely.
type PerformanceSink interface {
	// RecordPhase records how long a named phase of the current frame took.
	RecordPhase(layer, phase string, d time.Duration)
}

// FrameInfo is handed to every layer phase for the duration of one frame.
// Fields are only valid between FrameLoop.begin and FrameLoop.end; layers
// must not retain a FrameInfo across frames.
type FrameInfo struct {
	// CurrentFrame is the frame-in-flight slot index, 0..MaxFramesInFlight-1.
	CurrentFrame uint32

	// GraphicsCmd is the primary graphics command buffer for this frame,
	// already in the recording state when layers.begin runs.
	GraphicsCmd vk.CommandBuffer

	// ComputeCmd is the primary compute command buffer for this frame.
	// Zero when the renderer has no compute-capable queue or ray tracing
	// is disabled; layers must check before recording into it.
	ComputeCmd vk.CommandBuffer

	// Extent is the current swapchain extent in pixels.
	Extent vk.Extent2D

	// DT is the time elapsed since the previous frame began.
	DT time.Duration

	// Perf is the optional performance sink for this frame; nil when
	// performance monitoring is disabled.
	Perf PerformanceSink

	// swapImage is the acquired swapchain image index for this frame,
	// recorded by Swapchain.BeginFrame and consumed by Swapchain.EndFrame.
	// Unexported: only the swapchain's begin/end pair needs it.
	swapImage uint32

	// beginErr/endErr carry a failed RenderLayer.Begin/End result back to
	// FrameLoop without requiring Layer.Begin/End to return an error value
	// (the interface is shared with every other layer's no-fail phases).
	beginErr error
	endErr   error
}

// WindowConfig describes the application window at startup.
type WindowConfig struct {
	Width      uint32
	Height     uint32
	Title      string
	Fullscreen bool
	VSync      bool
}

// RendererConfig describes renderer-wide toggles.
type RendererConfig struct {
	EnableRayTracing  bool
	MaxFramesInFlight uint32
}

// FrameConfig is the root configuration consumed at startup, typically
// populated by merging defaults with a CVar file (see cvar.go).
type FrameConfig struct {
	Window                      WindowConfig
	Renderer                    RendererConfig
	EnableValidation             bool
	EnablePerformanceMonitoring bool
}

// DefaultFrameConfig returns the configuration used when no CVar file is
// present: vsync on, ray tracing off, a 3-deep frame-in-flight pipeline.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "rtframe",
			VSync:  true,
		},
		Renderer: RendererConfig{
			EnableRayTracing:  false,
			MaxFramesInFlight: 3,
		},
	}
}
