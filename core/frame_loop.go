// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/rtframe/hal"
	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

// Window is the surface FrameLoop polls every frame. Platform window
// creation is outside this module's scope; callers supply an adapter over
// whatever windowing library they use (GLFW, SDL, a native win32/X11 shim).
type Window interface {
	PollEvents()
	ShouldClose() bool
	Extent() vk.Extent2D
}

// mainThreadOwner is the fixed owner token FrameLoop uses when asking
// GpuContext for its command pool, distinguishing the render thread's pool
// from worker-goroutine pools registered under their own tokens.
const mainThreadOwner uint64 = 0

// FrameLoop drives the per-frame sequence: poll events, drain the event bus
// into the layer stack, assign this frame's command buffers, then run
// begin/prepare/update/render/end across every layer, splicing in worker
// secondaries between render and end.
type FrameLoop struct {
	ctx       *GpuContext
	swapchain *Swapchain
	eventBus  *EventBus
	layers    *LayerStack
	marshal   *SecondaryCmdMarshal

	graphicsPool vk.CommandPool
	computePool  vk.CommandPool
	graphicsCmds [MaxFramesInFlight]vk.CommandBuffer
	computeCmds  [MaxFramesInFlight]vk.CommandBuffer

	lastFrameTime time.Time
	perf          PerformanceSink
}

// NewFrameLoop wires together an already-constructed GpuContext, Swapchain,
// and EventBus, pushes the built-in RenderLayer at the bottom of a fresh
// LayerStack, and pre-allocates one primary graphics and compute command
// buffer per frame slot.
func NewFrameLoop(ctx *GpuContext, swapchain *Swapchain, eventBus *EventBus) (*FrameLoop, error) {
	fl := &FrameLoop{
		ctx:       ctx,
		swapchain: swapchain,
		eventBus:  eventBus,
		layers:    NewLayerStack(),
		marshal:   NewSecondaryCmdMarshal(ctx),
	}

	graphicsPool, err := ctx.PoolForCurrentThread(mainThreadOwner, ctx.GraphicsQueueFamily)
	if err != nil {
		return nil, err
	}
	fl.graphicsPool = graphicsPool

	computePool := graphicsPool
	if ctx.ComputeQueueFamily != ctx.GraphicsQueueFamily {
		pool, err := ctx.PoolForCurrentThread(mainThreadOwner+1, ctx.ComputeQueueFamily)
		if err != nil {
			return nil, err
		}
		computePool = pool
	}
	fl.computePool = computePool

	if err := fl.allocatePrimaryBuffers(); err != nil {
		return nil, err
	}

	fl.layers.PushLayer(NewRenderLayer(swapchain))
	return fl, nil
}

func (fl *FrameLoop) allocatePrimaryBuffers() error {
	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        fl.graphicsPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: MaxFramesInFlight,
	}
	if result := fl.ctx.Cmds.AllocateCommandBuffers(fl.ctx.Device, &allocInfo, &fl.graphicsCmds[0]); result != vk.Success {
		return fmt.Errorf("%w: vkAllocateCommandBuffers (primary graphics): %d", ErrInitialization, result)
	}

	computeAllocInfo := allocInfo
	computeAllocInfo.CommandPool = fl.computePool
	if result := fl.ctx.Cmds.AllocateCommandBuffers(fl.ctx.Device, &computeAllocInfo, &fl.computeCmds[0]); result != vk.Success {
		return fmt.Errorf("%w: vkAllocateCommandBuffers (primary compute): %d", ErrInitialization, result)
	}
	return nil
}

// Layers exposes the stack so callers can PushLayer/PushOverlay additional
// layers (a scene renderer, a debug-UI overlay) before calling Run.
func (fl *FrameLoop) Layers() *LayerStack { return fl.layers }

// EventBus returns the bus FrameLoop drains each frame; platform input
// callbacks post to it directly.
func (fl *FrameLoop) EventBus() *EventBus { return fl.eventBus }

// Marshal returns the secondary-command collector workers record into.
func (fl *FrameLoop) Marshal() *SecondaryCmdMarshal { return fl.marshal }

// SetPerformanceSink installs sink as the PerformanceSink every FrameInfo
// carries from this point on, enabling per-phase layer timing. Pass nil to
// disable collection again.
func (fl *FrameLoop) SetPerformanceSink(sink PerformanceSink) {
	fl.perf = sink
}

// Run executes the loop until window reports ShouldClose or an
// unrecoverable device error occurs. It returns nil on a clean window-close
// exit and a non-nil error on a fatal device condition.
func (fl *FrameLoop) Run(window Window) error {
	fl.lastFrameTime = time.Now()

	for !window.ShouldClose() {
		if err := fl.runOneFrame(window); err != nil {
			if errors.Is(err, hal.ErrZeroArea) {
				continue
			}
			return err
		}
	}
	return nil
}

// runOneFrame executes the nine-step sequence once. A zero-area window
// surfaces as hal.ErrZeroArea so Run can skip the frame without treating it
// as fatal.
func (fl *FrameLoop) runOneFrame(window Window) error {
	// 1. Poll OS events (producer side; callbacks post to fl.eventBus).
	window.PollEvents()

	// 2. Drain the event bus into the layer stack.
	fl.eventBus.DrainInto(fl.layers.DispatchEvent)

	// 3. Compute dt, assign this slot's command buffers, set extent.
	now := time.Now()
	dt := now.Sub(fl.lastFrameTime)
	fl.lastFrameTime = now

	slot := fl.swapchain.CurrentFrame()
	frame := &FrameInfo{
		CurrentFrame: slot,
		GraphicsCmd:  fl.graphicsCmds[slot],
		ComputeCmd:   fl.computeCmds[slot],
		Extent:       window.Extent(),
		DT:           dt,
		Perf:         fl.perf,
	}

	// 4. layers.begin(frame) - built-in RenderLayer calls Swapchain.BeginFrame.
	fl.layers.Begin(frame)
	if frame.beginErr != nil {
		return frame.beginErr
	}

	// 5. layers.prepare(dt) - main-thread-only, no GPU recording.
	fl.layers.Prepare(dt)

	// 6. layers.update(frame) - may record GPU work.
	fl.layers.Update(frame)

	// 7. layers.render(frame) - main GPU recording.
	fl.layers.Render(frame)

	// 8. marshal.execute_collected(primary) - splice worker secondaries in.
	fl.marshal.ExecuteCollected(frame.GraphicsCmd)

	// 9. layers.end(frame) - built-in RenderLayer calls Swapchain.EndFrame.
	fl.layers.End(frame)
	if frame.endErr != nil {
		return frame.endErr
	}

	fl.marshal.ReleaseSubmitted()
	return nil
}
