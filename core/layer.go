// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import "time"

// Layer is the capability set FrameLoop drives every frame. A Layer may
// implement only the phases it needs: LayerStack guards every per-frame
// phase call (not Attach/Detach) behind Enabled(), so a disabled
// debug-overlay layer costs nothing beyond the Enabled() check.
type Layer interface {
	// Attach is called once when the layer is pushed onto the stack.
	Attach()
	// Detach is called once when the layer is popped or the stack is torn
	// down, in reverse push order.
	Detach()

	// Begin opens the frame. The built-in render layer invokes
	// Swapchain.BeginFrame here (acquire, fence wait, primary-cmd begin,
	// UNDEFINED->GENERAL transition).
	Begin(frame *FrameInfo)

	// Prepare runs on the main thread only, before Update/Render, and is the
	// only phase allowed to touch OS-window or input-device state.
	Prepare(dt time.Duration)
	Update(frame *FrameInfo)
	Render(frame *FrameInfo)

	// End closes the frame. The built-in render layer invokes
	// Swapchain.EndFrame here (final transition, submit, present, advance
	// current_frame).
	End(frame *FrameInfo)

	// OnEvent handles a dispatched Event. Implementations that consume the
	// event should call Event.MarkHandled to stop it propagating further
	// down the stack.
	OnEvent(e *Event)

	// Enabled reports whether FrameLoop and LayerStack should drive this
	// layer's phases this frame.
	Enabled() bool

	// LayerName identifies this layer in PerformanceSink.RecordPhase calls.
	LayerName() string
}

// BaseLayer provides no-op implementations of every Layer method plus an
// Enabled flag, so concrete layers embed it and override only what they use
// - following the module's convention of small structs embedding a base
// rather than requiring every layer to implement the full interface by hand.
type BaseLayer struct {
	EnabledFlag bool
	Name        string
}

// NewBaseLayer returns a BaseLayer that starts enabled.
func NewBaseLayer(name string) BaseLayer {
	return BaseLayer{EnabledFlag: true, Name: name}
}

func (b *BaseLayer) Attach()                  {}
func (b *BaseLayer) Detach()                  {}
func (b *BaseLayer) Begin(frame *FrameInfo)   {}
func (b *BaseLayer) Prepare(dt time.Duration) {}
func (b *BaseLayer) Update(frame *FrameInfo)  {}
func (b *BaseLayer) Render(frame *FrameInfo)  {}
func (b *BaseLayer) End(frame *FrameInfo)     {}
func (b *BaseLayer) OnEvent(e *Event)         {}
func (b *BaseLayer) Enabled() bool            { return b.EnabledFlag }
func (b *BaseLayer) SetEnabled(enabled bool)  { b.EnabledFlag = enabled }
func (b *BaseLayer) LayerName() string        { return b.Name }
