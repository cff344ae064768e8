// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import "time"

// LayerStack holds the ordered set of Layers that FrameLoop drives each
// frame. Regular layers are appended before overlayInsertIndex; overlays
// (debug UI, HUD) are always appended after every regular layer, so overlays
// render last and receive events first.
type LayerStack struct {
	layers            []Layer
	overlayInsertIndex int
}

// NewLayerStack returns an empty stack.
func NewLayerStack() *LayerStack {
	return &LayerStack{}
}

// PushLayer inserts layer at overlayInsertIndex, ahead of any overlay, and
// calls Attach.
func (s *LayerStack) PushLayer(layer Layer) {
	s.layers = append(s.layers, nil)
	copy(s.layers[s.overlayInsertIndex+1:], s.layers[s.overlayInsertIndex:])
	s.layers[s.overlayInsertIndex] = layer
	s.overlayInsertIndex++
	layer.Attach()
}

// PushOverlay appends layer after every regular layer and calls Attach.
func (s *LayerStack) PushOverlay(layer Layer) {
	s.layers = append(s.layers, layer)
	layer.Attach()
}

// PopLayer removes the first occurrence of layer among the regular (non
// overlay) layers and calls Detach.
func (s *LayerStack) PopLayer(layer Layer) {
	for i := 0; i < s.overlayInsertIndex; i++ {
		if s.layers[i] == layer {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			s.overlayInsertIndex--
			layer.Detach()
			return
		}
	}
}

// PopOverlay removes the first occurrence of layer among the overlay layers
// and calls Detach.
func (s *LayerStack) PopOverlay(layer Layer) {
	for i := s.overlayInsertIndex; i < len(s.layers); i++ {
		if s.layers[i] == layer {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			layer.Detach()
			return
		}
	}
}

// Clear detaches every layer in reverse push order and empties the stack.
// Reverse order mirrors construction/destruction order elsewhere in the
// module: the last thing attached is the first thing torn down.
func (s *LayerStack) Clear() {
	for i := len(s.layers) - 1; i >= 0; i-- {
		s.layers[i].Detach()
	}
	s.layers = nil
	s.overlayInsertIndex = 0
}

// Layers returns the stack's current layers, bottom to top (render order).
func (s *LayerStack) Layers() []Layer {
	return s.layers
}

// timePhase runs fn and, if frame.Perf is set, records how long it took
// against layer's name and the given phase label. Every timed LayerStack
// method goes through this so a disabled (nil) sink costs one extra branch.
func timePhase(frame *FrameInfo, l Layer, phase string, fn func()) {
	if frame.Perf == nil {
		fn()
		return
	}
	start := time.Now()
	fn()
	frame.Perf.RecordPhase(l.LayerName(), phase, time.Since(start))
}

// Begin runs Begin on every enabled layer, bottom to top. The built-in
// render layer is pushed first (bottom of stack), so its Swapchain.BeginFrame
// call runs before any layer above it records GPU work.
func (s *LayerStack) Begin(frame *FrameInfo) {
	for _, l := range s.layers {
		if l.Enabled() {
			timePhase(frame, l, "begin", func() { l.Begin(frame) })
		}
	}
}

// Prepare runs Prepare on every enabled layer, bottom to top. Prepare takes
// no FrameInfo, so it has no PerformanceSink to record against; timing it
// would need a sink threaded onto LayerStack independent of the frame.
func (s *LayerStack) Prepare(dt time.Duration) {
	for _, l := range s.layers {
		if l.Enabled() {
			l.Prepare(dt)
		}
	}
}

// Update runs Update on every enabled layer, bottom to top.
func (s *LayerStack) Update(frame *FrameInfo) {
	for _, l := range s.layers {
		if l.Enabled() {
			timePhase(frame, l, "update", func() { l.Update(frame) })
		}
	}
}

// Render runs Render on every enabled layer, bottom to top, so overlays
// drawn last composite on top of everything beneath them.
func (s *LayerStack) Render(frame *FrameInfo) {
	for _, l := range s.layers {
		if l.Enabled() {
			timePhase(frame, l, "render", func() { l.Render(frame) })
		}
	}
}

// End runs End on every enabled layer, bottom to top, mirroring Begin's
// order. The render layer sits at the bottom, so its Swapchain.EndFrame call
// (submit+present) runs first, and the End of every layer above it runs
// after the frame has been submitted.
func (s *LayerStack) End(frame *FrameInfo) {
	for _, l := range s.layers {
		if l.Enabled() {
			timePhase(frame, l, "end", func() { l.End(frame) })
		}
	}
}

// DispatchEvent walks the stack top to bottom (overlays first) and stops as
// soon as a layer marks the event handled, matching the module's "topmost
// owns input first" convention for modal overlays and debug UI.
func (s *LayerStack) DispatchEvent(e *Event) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		l := s.layers[i]
		if !l.Enabled() {
			continue
		}
		l.OnEvent(e)
		if e.Handled() {
			return
		}
	}
}
