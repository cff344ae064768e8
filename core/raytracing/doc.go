// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package raytracing implements the acceleration-structure build pipeline
// and shader binding table on top of core.GpuContext and
// core.SecondaryCmdMarshal: BvhBuilder owns a worker-thread pool that
// records BLAS/TLAS builds onto secondary command buffers, RaytracingCore
// decides when a rebuild is needed and publishes the result set the render
// thread reads, and ShaderBindingTable lays out the ray-tracing pipeline's
// shader-group handles.
//
// Nothing here calls vkQueueSubmit directly; every acceleration-structure
// build is recorded onto a worker secondary buffer and becomes usable only
// after the render thread's next SecondaryCmdMarshal.ExecuteCollected call,
// matching the rest of the module's worker/render-thread split.
package raytracing
