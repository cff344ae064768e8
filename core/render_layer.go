// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

// RenderLayer is the built-in layer FrameLoop always pushes at the bottom
// of the stack. It is the only layer that talks to Swapchain directly:
// Begin performs the acquire/fence/cmd-begin/layout-transition sequence,
// End performs the final transition/submit/present/advance sequence. Every
// other layer just records into frame.GraphicsCmd / frame.ComputeCmd.
type RenderLayer struct {
	BaseLayer

	swapchain *Swapchain
}

// NewRenderLayer returns a RenderLayer bound to swapchain.
func NewRenderLayer(swapchain *Swapchain) *RenderLayer {
	return &RenderLayer{
		BaseLayer: NewBaseLayer("render"),
		swapchain: swapchain,
	}
}

// Begin implements Layer. It acquires the next swap image and begins
// recording frame.GraphicsCmd, which FrameLoop has already assigned for
// this frame's slot.
func (r *RenderLayer) Begin(frame *FrameInfo) {
	imageIndex, err := r.swapchain.BeginFrame(frame.GraphicsCmd)
	if err != nil {
		frame.beginErr = err
		return
	}
	frame.swapImage = imageIndex
}

// End implements Layer. It finalizes frame.GraphicsCmd, submits, and
// presents. Skipped if Begin failed (e.g. zero-area window).
func (r *RenderLayer) End(frame *FrameInfo) {
	if frame.beginErr != nil {
		return
	}
	frame.endErr = r.swapchain.EndFrame(frame.GraphicsCmd, frame.swapImage)
}
