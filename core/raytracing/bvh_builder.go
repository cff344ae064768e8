// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/rtframe/core"
	"github.com/gogpu/rtframe/hal/vulkan/vk"
	"github.com/gogpu/rtframe/internal/thread"
)

// workerOwnerBase is the first GpuContext pool-owner token BvhBuilder hands
// out. FrameLoop claims 0 and 1 for the render thread's graphics/compute
// pools, so worker pools start well clear of those.
const workerOwnerBase = 0x1000

// bvhWorker pairs one dedicated OS thread with the single command pool it
// records into; a pool is only ever touched from the thread that owns it.
type bvhWorker struct {
	thread *thread.Thread
	pool   vk.CommandPool
	owner  uint64
}

// BvhBuilder owns a fixed pool of worker threads and records BLAS/TLAS
// acceleration-structure builds onto secondary command buffers collected by
// the shared SecondaryCmdMarshal. No build here ever calls vkQueueSubmit;
// a recorded structure only becomes traceable once the render thread's next
// ExecuteCollected has run and its submission has completed.
type BvhBuilder struct {
	ctx      *core.GpuContext
	marshal  *core.SecondaryCmdMarshal
	workers  []*bvhWorker
	next     atomic.Uint32
	requests *core.BvhRequestTracker

	outstanding atomic.Int32
}

// NewBvhBuilder starts workerCount dedicated worker threads, each acquiring
// its own command pool against the compute queue family (acceleration
// structure builds are recorded on any queue that supports compute, per
// VK_KHR_acceleration_structure).
func NewBvhBuilder(ctx *core.GpuContext, marshal *core.SecondaryCmdMarshal, workerCount int) (*BvhBuilder, error) {
	if workerCount < 1 {
		workerCount = 1
	}
	b := &BvhBuilder{ctx: ctx, marshal: marshal, requests: core.NewBvhRequestTracker()}
	for i := 0; i < workerCount; i++ {
		owner := uint64(workerOwnerBase + i)
		pool, err := ctx.PoolForCurrentThread(owner, ctx.ComputeQueueFamily)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.workers = append(b.workers, &bvhWorker{thread: thread.New(), pool: pool, owner: owner})
	}
	return b, nil
}

// Close stops every worker thread and releases its command pool. Callers
// must not call Close while Outstanding() is non-zero.
func (b *BvhBuilder) Close() {
	for _, w := range b.workers {
		if w.thread != nil {
			w.thread.Stop()
		}
		b.ctx.ReleasePool(w.owner)
	}
}

// Pools returns every worker's command pool, for ResetAllWorkerPools calls
// the render thread makes once per frame after ReleaseSubmitted.
func (b *BvhBuilder) Pools() []vk.CommandPool {
	pools := make([]vk.CommandPool, len(b.workers))
	for i, w := range b.workers {
		pools[i] = w.pool
	}
	return pools
}

// Outstanding reports how many BuildScene batches are currently mid-flight.
func (b *BvhBuilder) Outstanding() int32 { return b.outstanding.Load() }

// OutstandingRequests reports how many batches have been registered with
// the request tracker but not yet released by their completion callback.
// Differs from Outstanding only in the brief window between a batch's last
// worker call returning and its deferred End running.
func (b *BvhBuilder) OutstandingRequests() uint64 { return b.requests.Outstanding() }

func (b *BvhBuilder) nextWorker() *bvhWorker {
	n := b.next.Add(1)
	return b.workers[int(n-1)%len(b.workers)]
}

// BuildScene builds one BLAS per entry in geoms, then - once every BLAS in
// the batch has ended its secondary recording - one TLAS instancing all of
// them with the matching transform. Enqueuing the TLAS before that point
// would violate the ordering the acceleration-structure builder is required
// to preserve, so BuildScene enforces it internally with a WaitGroup
// instead of leaving it to the caller.
//
// An empty geoms is a no-op: a scene with no geometry builds nothing and
// completion is never called.
//
// completion.OnComplete runs on a worker thread: the one that recorded the
// TLAS, or, if a BLAS build in the batch failed, the next worker in
// rotation, with a nil TLAS (if geoms is empty it is never called at all) -
// never on the caller's goroutine and never on the render thread.
func (b *BvhBuilder) BuildScene(geoms []GeometryData, transforms []vk.TransformMatrixKHR, completion BuildCompletion) error {
	if len(geoms) == 0 {
		return nil
	}
	if len(transforms) != len(geoms) {
		return fmt.Errorf("%w: BuildScene: %d geometries but %d transforms", core.ErrInvalidState, len(geoms), len(transforms))
	}

	b.outstanding.Add(1)
	reqID := b.requests.Begin(nil, len(geoms))
	go b.runSceneBuild(reqID, geoms, transforms, completion)
	return nil
}

func (b *BvhBuilder) runSceneBuild(reqID core.BvhRequestID, geoms []GeometryData, transforms []vk.TransformMatrixKHR, completion BuildCompletion) {
	defer b.outstanding.Add(-1)
	defer func() { _ = b.requests.End(reqID) }()

	results := make([]BlasResult, len(geoms))
	errs := make([]error, len(geoms))

	var wg sync.WaitGroup
	for i := range geoms {
		wg.Add(1)
		idx := i
		go func() {
			defer wg.Done()
			w := b.nextWorker()
			w.thread.CallVoid(func() {
				res, err := b.buildBlas(w.pool, geoms[idx])
				results[idx] = res
				errs[idx] = err
			})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			w := b.nextWorker()
			w.thread.CallVoid(func() { completion.OnComplete(results, nil) })
			return
		}
	}

	instances := make([]InstanceData, len(results))
	for i, r := range results {
		instances[i] = NewInstanceData(r.DeviceAddress, transforms[i], uint32(i))
	}

	w := b.nextWorker()
	w.thread.CallVoid(func() {
		tlas, err := b.buildTlas(w.pool, instances)
		if err != nil {
			completion.OnComplete(results, nil)
			return
		}
		completion.OnComplete(results, &tlas)
	})
}

// buildBlas runs the module's fixed seven-step BLAS build: query build
// sizes, allocate the acceleration-structure storage buffer, create the
// structure handle, allocate a scratch buffer as a pending resource, record
// the build onto a worker secondary with a single build range spanning the
// whole mesh, end the secondary into the marshal, then resolve the built
// structure's device address.
func (b *BvhBuilder) buildBlas(pool vk.CommandPool, geom GeometryData) (BlasResult, error) {
	triangleCount := geom.IndexCount / 3

	triangles := vk.AccelerationStructureGeometryTrianglesDataKHR{
		SType:        vk.StructureTypeAccelerationStructureGeometryTrianglesDataKHR,
		VertexFormat: vk.FormatR32G32B32Sfloat,
		VertexData:   vk.DeviceOrHostAddressConstKHR{DeviceAddress: geom.VertexAddr},
		VertexStride: vk.DeviceSize(geom.VertexStride),
		MaxVertex:    geom.VertexCount - 1,
		IndexType:    vk.IndexTypeUint32,
		IndexData:    vk.DeviceOrHostAddressConstKHR{DeviceAddress: geom.IndexAddr},
	}
	var geometry vk.AccelerationStructureGeometryKHR
	geometry.SType = vk.StructureTypeAccelerationStructureGeometryKHR
	geometry.Flags = vk.GeometryOpaqueBitKHR
	geometry.SetTriangles(triangles)

	buildInfo := vk.AccelerationStructureBuildGeometryInfoKHR{
		SType:         vk.StructureTypeAccelerationStructureBuildGeometryInfoKHR,
		Type:          vk.AccelerationStructureTypeBottomLevelKHR,
		Flags:         vk.BuildAccelerationStructurePreferFastTraceBitKHR,
		Mode:          vk.BuildAccelerationStructureModeBuildKHR,
		GeometryCount: 1,
		PGeometries:   uintptr(unsafe.Pointer(&geometry)),
	}

	var sizeInfo vk.AccelerationStructureBuildSizesInfoKHR
	sizeInfo.SType = vk.StructureTypeAccelerationStructureBuildSizesInfoKHR
	maxPrimitives := triangleCount
	b.ctx.Cmds.GetAccelerationStructureBuildSizesKHR(b.ctx.Device, vk.AccelerationStructureBuildTypeDeviceKHR, &buildInfo, &maxPrimitives, &sizeInfo)

	asBuffer, asMemory, err := createBuffer(b.ctx, sizeInfo.AccelerationStructureSize,
		vk.BufferUsageAccelerationStructureStorageBitKHR|vk.BufferUsageShaderDeviceAddressBit,
		vk.MemoryPropertyDeviceLocalBit, false)
	if err != nil {
		return BlasResult{}, fmt.Errorf("blas storage buffer: %w", err)
	}

	createInfo := vk.AccelerationStructureCreateInfoKHR{
		SType:  vk.StructureTypeAccelerationStructureCreateInfoKHR,
		Buffer: asBuffer,
		Size:   sizeInfo.AccelerationStructureSize,
		Type:   vk.AccelerationStructureTypeBottomLevelKHR,
	}
	var as vk.AccelerationStructureKHR
	if result := b.ctx.Cmds.CreateAccelerationStructureKHR(b.ctx.Device, &createInfo, &as); result != vk.Success {
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, asBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, asMemory)
		return BlasResult{}, fmt.Errorf("vkCreateAccelerationStructureKHR: %d", result)
	}

	scratchBuffer, scratchMemory, err := createBuffer(b.ctx, sizeInfo.BuildScratchSize,
		vk.BufferUsageStorageBufferBit|vk.BufferUsageShaderDeviceAddressBit,
		vk.MemoryPropertyDeviceLocalBit, true)
	if err != nil {
		b.ctx.Cmds.DestroyAccelerationStructureKHR(b.ctx.Device, as)
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, asBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, asMemory)
		return BlasResult{}, fmt.Errorf("blas scratch buffer: %w", err)
	}

	buildInfo.DstAccelerationStructure = as
	buildInfo.ScratchData = vk.DeviceOrHostAddressKHR{DeviceAddress: bufferDeviceAddress(b.ctx, scratchBuffer)}

	rangeInfo := vk.AccelerationStructureBuildRangeInfoKHR{PrimitiveCount: triangleCount}
	rangePtr := unsafe.Pointer(&rangeInfo)

	cmd, err := b.marshal.BeginSecondary(pool)
	if err != nil {
		b.ctx.Cmds.DestroyAccelerationStructureKHR(b.ctx.Device, as)
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, asBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, asMemory)
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, scratchBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, scratchMemory)
		return BlasResult{}, err
	}
	b.ctx.Cmds.CmdBuildAccelerationStructuresKHR(cmd, 1, &buildInfo, uintptr(unsafe.Pointer(&rangePtr)))

	pending := []core.PendingResource{pendingBuffer{buffer: scratchBuffer, memory: scratchMemory}}
	if err := b.marshal.EndSecondary(pool, cmd, pending, false); err != nil {
		b.ctx.Cmds.DestroyAccelerationStructureKHR(b.ctx.Device, as)
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, asBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, asMemory)
		return BlasResult{}, err
	}

	addrInfo := vk.AccelerationStructureDeviceAddressInfoKHR{
		SType:                 vk.StructureTypeAccelerationStructureDeviceAddressInfoKHR,
		AccelerationStructure: as,
	}
	addr := b.ctx.Cmds.GetAccelerationStructureDeviceAddressKHR(b.ctx.Device, &addrInfo)

	return BlasResult{
		GeometryID:            geom.GeometryID,
		AccelerationStructure: as,
		Buffer:                asBuffer,
		Memory:                asMemory,
		DeviceAddress:         addr,
	}, nil
}

// buildTlas follows the same recipe as buildBlas but against an
// instance-array geometry: the instance data is first copied into a
// host-visible, device-addressable buffer vkCmdBuildAccelerationStructuresKHR
// reads back through AccelerationStructureGeometryInstancesDataKHR.
func (b *BvhBuilder) buildTlas(pool vk.CommandPool, instances []InstanceData) (TlasResult, error) {
	packed := make([]vk.AccelerationStructureInstanceKHR, len(instances))
	for i, inst := range instances {
		packed[i] = vk.NewAccelerationStructureInstanceKHR(inst.Transform, inst.CustomIndex, inst.Mask, inst.SbtOffset, inst.Flags, inst.BlasDeviceAddress)
	}
	instanceBytes := vk.DeviceSize(len(packed)) * vk.DeviceSize(unsafe.Sizeof(vk.AccelerationStructureInstanceKHR{}))

	instanceBuffer, instanceMemory, err := createBuffer(b.ctx, instanceBytes,
		vk.BufferUsageAccelerationStructureBuildInputReadOnlyBitKHR|vk.BufferUsageShaderDeviceAddressBit,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit, true)
	if err != nil {
		return TlasResult{}, fmt.Errorf("tlas instance buffer: %w", err)
	}

	var mapped unsafe.Pointer
	if result := b.ctx.Cmds.MapMemory(b.ctx.Device, instanceMemory, 0, instanceBytes, &mapped); result != vk.Success {
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, instanceBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, instanceMemory)
		return TlasResult{}, fmt.Errorf("vkMapMemory (tlas instances): %d", result)
	}
	dst := unsafe.Slice((*vk.AccelerationStructureInstanceKHR)(mapped), len(packed))
	copy(dst, packed)
	b.ctx.Cmds.UnmapMemory(b.ctx.Device, instanceMemory)

	instancesData := vk.AccelerationStructureGeometryInstancesDataKHR{
		SType: vk.StructureTypeAccelerationStructureGeometryInstancesDataKHR,
		Data:  vk.DeviceOrHostAddressConstKHR{DeviceAddress: bufferDeviceAddress(b.ctx, instanceBuffer)},
	}
	var geometry vk.AccelerationStructureGeometryKHR
	geometry.SType = vk.StructureTypeAccelerationStructureGeometryKHR
	geometry.SetInstances(instancesData)

	buildInfo := vk.AccelerationStructureBuildGeometryInfoKHR{
		SType:         vk.StructureTypeAccelerationStructureBuildGeometryInfoKHR,
		Type:          vk.AccelerationStructureTypeTopLevelKHR,
		Flags:         vk.BuildAccelerationStructurePreferFastTraceBitKHR,
		Mode:          vk.BuildAccelerationStructureModeBuildKHR,
		GeometryCount: 1,
		PGeometries:   uintptr(unsafe.Pointer(&geometry)),
	}

	var sizeInfo vk.AccelerationStructureBuildSizesInfoKHR
	sizeInfo.SType = vk.StructureTypeAccelerationStructureBuildSizesInfoKHR
	instanceCount := uint32(len(instances))
	b.ctx.Cmds.GetAccelerationStructureBuildSizesKHR(b.ctx.Device, vk.AccelerationStructureBuildTypeDeviceKHR, &buildInfo, &instanceCount, &sizeInfo)

	asBuffer, asMemory, err := createBuffer(b.ctx, sizeInfo.AccelerationStructureSize,
		vk.BufferUsageAccelerationStructureStorageBitKHR|vk.BufferUsageShaderDeviceAddressBit,
		vk.MemoryPropertyDeviceLocalBit, false)
	if err != nil {
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, instanceBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, instanceMemory)
		return TlasResult{}, fmt.Errorf("tlas storage buffer: %w", err)
	}

	createInfo := vk.AccelerationStructureCreateInfoKHR{
		SType:  vk.StructureTypeAccelerationStructureCreateInfoKHR,
		Buffer: asBuffer,
		Size:   sizeInfo.AccelerationStructureSize,
		Type:   vk.AccelerationStructureTypeTopLevelKHR,
	}
	var as vk.AccelerationStructureKHR
	if result := b.ctx.Cmds.CreateAccelerationStructureKHR(b.ctx.Device, &createInfo, &as); result != vk.Success {
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, asBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, asMemory)
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, instanceBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, instanceMemory)
		return TlasResult{}, fmt.Errorf("vkCreateAccelerationStructureKHR (tlas): %d", result)
	}

	scratchBuffer, scratchMemory, err := createBuffer(b.ctx, sizeInfo.BuildScratchSize,
		vk.BufferUsageStorageBufferBit|vk.BufferUsageShaderDeviceAddressBit,
		vk.MemoryPropertyDeviceLocalBit, true)
	if err != nil {
		b.ctx.Cmds.DestroyAccelerationStructureKHR(b.ctx.Device, as)
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, asBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, asMemory)
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, instanceBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, instanceMemory)
		return TlasResult{}, fmt.Errorf("tlas scratch buffer: %w", err)
	}

	buildInfo.DstAccelerationStructure = as
	buildInfo.ScratchData = vk.DeviceOrHostAddressKHR{DeviceAddress: bufferDeviceAddress(b.ctx, scratchBuffer)}

	rangeInfo := vk.AccelerationStructureBuildRangeInfoKHR{PrimitiveCount: instanceCount}
	rangePtr := unsafe.Pointer(&rangeInfo)

	cmd, err := b.marshal.BeginSecondary(pool)
	if err != nil {
		b.ctx.Cmds.DestroyAccelerationStructureKHR(b.ctx.Device, as)
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, asBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, asMemory)
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, instanceBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, instanceMemory)
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, scratchBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, scratchMemory)
		return TlasResult{}, err
	}
	b.ctx.Cmds.CmdBuildAccelerationStructuresKHR(cmd, 1, &buildInfo, uintptr(unsafe.Pointer(&rangePtr)))

	pending := []core.PendingResource{pendingBuffer{buffer: scratchBuffer, memory: scratchMemory}}
	if err := b.marshal.EndSecondary(pool, cmd, pending, false); err != nil {
		b.ctx.Cmds.DestroyAccelerationStructureKHR(b.ctx.Device, as)
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, asBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, asMemory)
		b.ctx.Cmds.DestroyBuffer(b.ctx.Device, instanceBuffer)
		b.ctx.Cmds.FreeMemory(b.ctx.Device, instanceMemory)
		return TlasResult{}, err
	}

	addrInfo := vk.AccelerationStructureDeviceAddressInfoKHR{
		SType:                 vk.StructureTypeAccelerationStructureDeviceAddressInfoKHR,
		AccelerationStructure: as,
	}
	addr := b.ctx.Cmds.GetAccelerationStructureDeviceAddressKHR(b.ctx.Device, &addrInfo)

	return TlasResult{
		AccelerationStructure: as,
		Buffer:                asBuffer,
		Memory:                asMemory,
		InstanceBuffer:        instanceBuffer,
		InstanceMemory:        instanceMemory,
		DeviceAddress:         addr,
	}, nil
}
