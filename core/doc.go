// Package core implements the frame-orchestration kernel: the components
// that sit between a HAL device and application render logic.
//
// It owns the GPU context, the secondary-command-buffer marshal, the
// swapchain and frame-pacing state machine, the event bus, the layer
// stack, the per-frame loop, and - in the core/raytracing subpackage -
// the BVH builder and ray-tracing core.
//
// Architecture:
//
//	core/           → Adapter, GpuContext, SecondaryCmdMarshal, Swapchain,
//	                  EventBus, LayerStack, FrameLoop (this package)
//	core/raytracing → BvhBuilder, RaytracingCore, SBT
//	hal/              → Shared error sentinels and logging hook
//	hal/vulkan/vk   → Pure Go Vulkan bindings
//
// ID System:
//
// Resources tracked across frames (geometry, BLAS/TLAS, layers, swap
// images, in-flight BVH requests) use type-safe IDs that combine an
// index and epoch, so a stale ID from a recycled slot is rejected:
//
//	type GeometryID = ID[geometryMarker]
//	id := NewID[geometryMarker](index, epoch)
//	index, epoch := id.Unzip()
//
// Registry Pattern:
//
//	registry := NewRegistry[Geometry, geometryMarker]()
//	id := registry.Register(geom)
//	geom, err := registry.Get(id)
//	registry.Unregister(id)
//
// Thread Safety:
//
// All types in this package are safe for concurrent use unless
// explicitly documented otherwise.
package core
