// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"sync"

	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

// SceneDigestComparator reports whether two opaque scene digests represent
// the same built geometry set. Computing the digest itself is outside this
// package: the bridge that feeds GeometryData in (mesh streaming, scene
// graph traversal) is also responsible for producing one, deterministically,
// once per candidate rebuild. RaytracingCore only ever compares two values
// through this function to decide whether a rebuild can be skipped.
type SceneDigestComparator func(prev, next any) bool

// pendingRequest is a RequestRebuild call that arrived while a build was
// already in flight; it is replayed from OnComplete once that build
// finishes, so at most one build runs at a time and the most recent request
// always wins.
type pendingRequest struct {
	digest     any
	geoms      []GeometryData
	transforms []vk.TransformMatrixKHR
}

// RaytracingCore owns the published BLAS/TLAS set a renderer traces
// against, a BvhBuilder to rebuild it, and a shader binding table for
// whatever ray-tracing pipeline is current. It implements BuildCompletion
// itself, so builder.BuildScene's worker-thread callback lands here; the
// render thread only ever reads Current() between frames and never touches
// BLAS/TLAS handles mid-build.
type RaytracingCore struct {
	builder       *BvhBuilder
	compareDigest SceneDigestComparator

	mu               sync.Mutex
	hasDigest        bool
	lastDigest       any
	blas             []BlasResult
	tlas             *TlasResult
	buildInProgress  bool
	pending          *pendingRequest
	descriptorsDirty bool

	sbt         *ShaderBindingTable
	outputImage vk.Image
}

// NewRaytracingCore binds a RaytracingCore to an already-constructed
// BvhBuilder and digest comparator. compareDigest must not be nil: without
// one RequestRebuild would have no way to skip an unneeded rebuild and
// would resubmit the whole scene's geometry every frame.
func NewRaytracingCore(builder *BvhBuilder, compareDigest SceneDigestComparator) *RaytracingCore {
	return &RaytracingCore{builder: builder, compareDigest: compareDigest}
}

// RequestRebuild compares digest against the digest of the last build this
// core started. If they compare equal, nothing happens. If a build is
// already in flight, this request is recorded and replayed once that build
// completes (superseding any request recorded earlier). Otherwise a new
// BvhBuilder.BuildScene batch is dispatched immediately.
func (r *RaytracingCore) RequestRebuild(digest any, geoms []GeometryData, transforms []vk.TransformMatrixKHR) error {
	r.mu.Lock()
	if r.hasDigest && r.compareDigest(r.lastDigest, digest) {
		r.mu.Unlock()
		return nil
	}
	if r.buildInProgress {
		r.pending = &pendingRequest{digest: digest, geoms: geoms, transforms: transforms}
		r.mu.Unlock()
		return nil
	}
	r.buildInProgress = true
	r.lastDigest = digest
	r.hasDigest = true
	r.mu.Unlock()

	return r.builder.BuildScene(geoms, transforms, r)
}

// OnComplete implements BuildCompletion. It publishes the new BLAS/TLAS set
// under lock, marks descriptorsDirty so the render thread re-publishes
// descriptor sets referencing the new TLAS and the output storage image
// exactly once, then - if a newer RequestRebuild arrived mid-build - replays
// it. Runs on the worker thread that ended the TLAS recording.
func (r *RaytracingCore) OnComplete(blas []BlasResult, tlas *TlasResult) {
	r.mu.Lock()
	r.blas = blas
	r.tlas = tlas
	r.buildInProgress = false
	r.descriptorsDirty = true
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	if pending != nil {
		_ = r.RequestRebuild(pending.digest, pending.geoms, pending.transforms)
	}
}

// Current returns the most recently published BLAS/TLAS set. Safe to call
// from the render thread at any point between frames; it never blocks on
// an in-flight build.
func (r *RaytracingCore) Current() ([]BlasResult, *TlasResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blas, r.tlas
}

// BuildInProgress reports whether a build dispatched by RequestRebuild has
// not yet published its result through OnComplete.
func (r *RaytracingCore) BuildInProgress() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buildInProgress
}

// ConsumeDescriptorsDirty reports whether a new TLAS was published since the
// last call to ConsumeDescriptorsDirty, clearing the flag as it reports it.
// The render thread calls this once per frame, between FrameLoop.begin and
// FrameLoop.render: a true result means descriptor sets referencing the TLAS
// and OutputImage must be re-written before this frame's trace-rays
// dispatch. Because the flag is cleared on read, it is true for exactly one
// subsequent frame after a publication.
func (r *RaytracingCore) ConsumeDescriptorsDirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	dirty := r.descriptorsDirty
	r.descriptorsDirty = false
	return dirty
}

// SetOutputImage records the storage image the ray-tracing pipeline writes
// into, so descriptor sets rebuilt in response to ConsumeDescriptorsDirty
// can bind it alongside the current TLAS. Callers own the image's lifetime;
// RaytracingCore only stores the handle.
func (r *RaytracingCore) SetOutputImage(image vk.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputImage = image
}

// OutputImage returns the storage image set by SetOutputImage, or the zero
// vk.Image if none has been set yet.
func (r *RaytracingCore) OutputImage() vk.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outputImage
}

// SetShaderBindingTable replaces the current shader binding table,
// destroying the one it replaces. Called whenever the owning ray-tracing
// pipeline is rebuilt, since a pipeline rebuild invalidates every
// previously queried shader-group handle.
func (r *RaytracingCore) SetShaderBindingTable(sbt *ShaderBindingTable) {
	r.mu.Lock()
	old := r.sbt
	r.sbt = sbt
	r.mu.Unlock()
	if old != nil {
		old.Destroy()
	}
}

// ShaderBindingTable returns the current table, or nil if none has been set.
func (r *RaytracingCore) ShaderBindingTable() *ShaderBindingTable {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sbt
}

// Close releases the builder's worker threads and the current shader
// binding table. Callers must ensure no build is in flight.
func (r *RaytracingCore) Close() {
	r.builder.Close()
	r.mu.Lock()
	sbt := r.sbt
	r.sbt = nil
	r.mu.Unlock()
	if sbt != nil {
		sbt.Destroy()
	}
}
