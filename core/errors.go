// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import "errors"

// Sentinel errors for the frame-orchestration kernel, grouped by kind.
// Callers use errors.Is against these to select a retry/fallback/skip/abort
// strategy; hal.ErrDeviceLost and hal.ErrSurfaceOutdated are propagated
// unwrapped from the HAL layer and handled the same way.
var (
	// ErrInitialization covers failures setting up the GpuContext, Swapchain,
	// or RaytracingCore (missing extension, unsupported format, etc.).
	ErrInitialization = errors.New("rtframe: initialization failed")

	// ErrResourceLoadFailed covers a failed upload or build that the caller
	// can retry or skip.
	ErrResourceLoadFailed = errors.New("rtframe: resource load failed")

	// ErrAllocation is returned by GpuContext.AllocateMemory when no memory
	// type satisfies the requested properties.
	ErrAllocation = errors.New("rtframe: allocation failed")

	// ErrInvalidState is returned when an operation is attempted out of its
	// required lifecycle order (e.g. EndSecondary without BeginSecondary).
	ErrInvalidState = errors.New("rtframe: invalid state")

	// ErrOperationNotSupported covers ray tracing calls made when the device
	// lacks VK_KHR_ray_tracing_pipeline / VK_KHR_acceleration_structure.
	ErrOperationNotSupported = errors.New("rtframe: operation not supported")

	// ErrThreadPoolShutdown is returned by BvhBuilder when a build is
	// submitted after Shutdown.
	ErrThreadPoolShutdown = errors.New("rtframe: thread pool shut down")

	// ErrWorkItemFailed wraps a failed BLAS/TLAS build or secondary-buffer
	// recording task; the underlying cause is available via errors.Unwrap.
	ErrWorkItemFailed = errors.New("rtframe: work item failed")
)
