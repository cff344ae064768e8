// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command rtframe-demo lays out the wiring of the frame-orchestration
// kernel in order: Adapter, GpuContext, Swapchain, EventBus, LayerStack,
// FrameLoop, BvhBuilder, and RaytracingCore. It renders nothing of its own -
// there is no scene, no shaders.
//
// As shipped, createSurface is a placeholder that always returns an error,
// so run creates the instance and the device (steps 1 and 2) and then stops
// at step 3 with that error; the Swapchain, FrameLoop, BvhBuilder and
// RaytracingCore steps are not reached.
//
// Platform window creation is outside this module's scope (see core.Window).
// The later steps drive FrameLoop with headlessWindow, a fixed-extent stub
// that never closes on its own; a real embedding application supplies its
// own Window backed by GLFW, SDL, or a native windowing library.
package main

import (
	"fmt"
	"os"

	"github.com/gogpu/rtframe/core"
	"github.com/gogpu/rtframe/core/raytracing"
	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

const (
	demoWidth  = 1280
	demoHeight = 720
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("FATAL: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("=== rtframe demo ===")

	fmt.Print("1. Creating Vulkan instance and selecting physical device... ")
	adapter, err := core.NewAdapter(demoTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("creating adapter: %w", err)
	}
	defer adapter.Destroy()
	fmt.Println("OK")

	fmt.Print("2. Opening logical device... ")
	deviceExtensions := []string{
		"VK_KHR_acceleration_structure",
		"VK_KHR_ray_tracing_pipeline",
		"VK_KHR_buffer_device_address",
		"VK_KHR_deferred_host_operations",
		"VK_KHR_swapchain",
	}
	ctx, err := adapter.OpenDevice(deviceExtensions)
	if err != nil {
		return fmt.Errorf("opening device: %w", err)
	}
	defer ctx.Close()
	fmt.Println("OK")

	fmt.Print("3. Creating swapchain... ")
	window := newHeadlessWindow(demoWidth, demoHeight)
	surface, err := createSurface(adapter, window)
	if err != nil {
		return fmt.Errorf("creating surface: %w", err)
	}
	swapchain, err := core.NewSwapchain(ctx, adapter.PhysicalDevice(), surface, window.Extent())
	if err != nil {
		return fmt.Errorf("creating swapchain: %w", err)
	}
	fmt.Println("OK")

	fmt.Print("4. Wiring event bus and frame loop... ")
	eventBus := core.NewEventBus()
	frameLoop, err := core.NewFrameLoop(ctx, swapchain, eventBus)
	if err != nil {
		return fmt.Errorf("creating frame loop: %w", err)
	}
	fmt.Println("OK")

	fmt.Print("5. Starting BVH builder and ray-tracing core... ")
	bvhBuilder, err := raytracing.NewBvhBuilder(ctx, frameLoop.Marshal(), 4)
	if err != nil {
		return fmt.Errorf("creating BVH builder: %w", err)
	}
	rtCore := raytracing.NewRaytracingCore(bvhBuilder, sameDigest)
	_ = rtCore
	fmt.Println("OK")

	fmt.Println("6. Running frame loop (headless window never closes on its own;")
	fmt.Println("   send SIGINT to exit)...")
	return frameLoop.Run(window)
}

const demoTitle = "rtframe-demo"

// sameDigest is the SceneDigestComparator this demo uses: scene digests are
// plain ints here (no real scene), so equality is just ==.
func sameDigest(prev, next any) bool {
	return prev == next
}

// headlessWindow is a fixed-extent core.Window stub used when no real
// windowing library is wired in: PollEvents is a no-op, ShouldClose never
// returns true on its own. A real application replaces this with an adapter
// over its own window (GLFW, SDL, a native win32/X11/Cocoa shim).
type headlessWindow struct {
	extent vk.Extent2D
}

func newHeadlessWindow(width, height uint32) *headlessWindow {
	return &headlessWindow{extent: vk.Extent2D{Width: width, Height: height}}
}

func (w *headlessWindow) PollEvents()         {}
func (w *headlessWindow) ShouldClose() bool   { return false }
func (w *headlessWindow) Extent() vk.Extent2D { return w.extent }

// createSurface is a placeholder for the platform-specific
// vkCreateXxxSurfaceKHR call (Win32/Xlib/Wayland/Metal) a real embedding
// application performs using its own window handle. Surface creation is
// platform windowing, which core.Window's doc comment already marks out of
// this module's scope.
func createSurface(adapter *core.Adapter, window *headlessWindow) (vk.SurfaceKHR, error) {
	_ = adapter
	_ = window
	return 0, fmt.Errorf("createSurface: platform surface creation is not implemented by this demo; supply a real Window/surface pair")
}
