// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vk provides Pure Go Vulkan bindings for the subset of the API this
// module's frame-orchestration kernel uses: instance/device/queue setup,
// command pools and buffers, fences and semaphores, swapchains, buffer and
// image memory, and the VK_KHR_acceleration_structure /
// VK_KHR_ray_tracing_pipeline extensions.
//
// This package contains hand-written Vulkan types, constants, and function
// pointer tables called through github.com/go-webgpu/goffi. It does not use
// CGO.
//
// # Usage
//
// Initialize Vulkan and load function pointers:
//
//	if err := vk.Init(); err != nil {
//	    log.Fatal(err)
//	}
//
//	var cmds vk.Commands
//	cmds.LoadGlobal()
//
//	// Create instance...
//	cmds.LoadInstance(instance)
//
// # Platform Support
//
// - Windows: vulkan-1.dll
// - Linux: libvulkan.so.1
// - macOS: libvulkan.dylib via MoltenVK
package vk
