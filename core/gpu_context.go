// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/gogpu/rtframe/hal"
	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

// layoutTransition is one row of the fixed image-layout -> access/stage
// table. GpuContext.TransitionImageLayout derives barrier masks from this
// table instead of accepting them as parameters, following the module's
// unified-layout convention: GENERAL is the default working layout for any
// image that isn't actively presenting or being sampled.
type layoutTransition struct {
	access vk.AccessFlags
	stage  vk.PipelineStageFlags
}

// layoutTable implements the access/stage derivation table.
var layoutTable = map[vk.ImageLayout]layoutTransition{
	vk.ImageLayoutUndefined: {0, vk.PipelineStageTopOfPipeBit},
	vk.ImageLayoutGeneral: {
		vk.AccessShaderReadBit | vk.AccessShaderWriteBit,
		vk.PipelineStageAllCommandsBit,
	},
	vk.ImageLayoutColorAttachmentOptimal: {
		vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit,
		vk.PipelineStageColorAttachmentOutputBit,
	},
	vk.ImageLayoutDepthStencilAttachmentOptimal: {
		vk.AccessDepthStencilAttachmentReadBit | vk.AccessDepthStencilAttachmentWriteBit,
		vk.PipelineStageEarlyFragmentTestsBit,
	},
	vk.ImageLayoutTransferSrcOptimal: {vk.AccessTransferReadBit, vk.PipelineStageTransferBit},
	vk.ImageLayoutTransferDstOptimal: {vk.AccessTransferWriteBit, vk.PipelineStageTransferBit},
	vk.ImageLayoutShaderReadOnlyOptimal: {
		vk.AccessShaderReadBit,
		vk.PipelineStageFragmentShaderBit,
	},
	vk.ImageLayoutPresentSrcKHR: {0, vk.PipelineStageBottomOfPipeBit},
}

// threadPool is one thread's dedicated command pool plus the buffers
// allocated from it, keyed by goroutine-local ownership rather than by
// goroutine ID: callers obtain theirs once via PoolForCurrentThread and keep
// reusing it for the lifetime of the worker.
type threadPool struct {
	pool vk.CommandPool
}

// GpuContext owns the Vulkan device, queues, and the per-thread command
// pool registry. It is the single object every other kernel component
// (SecondaryCmdMarshal, Swapchain, BvhBuilder, RaytracingCore) reaches
// through to talk to the GPU; none of them call into vk.Commands directly.
type GpuContext struct {
	Cmds   *vk.Commands
	Device vk.Device

	GraphicsQueue       vk.Queue
	GraphicsQueueFamily uint32
	ComputeQueue        vk.Queue
	ComputeQueueFamily  uint32

	memProps vk.PhysicalDeviceMemoryProperties

	// submitMu serializes vkQueueSubmit / vkQueuePresentKHR / vkQueueWaitIdle
	// against a given queue, since the Vulkan spec requires external
	// synchronization on queue access.
	graphicsSubmitMu sync.Mutex
	computeSubmitMu  sync.Mutex

	poolsMu sync.Mutex
	pools   map[uint64]*threadPool // keyed by an opaque per-goroutine owner token
}

// NewGpuContext wraps an already-created device and its queues. Instance
// and physical-device selection happen before this call; GpuContext's job
// starts once a VkDevice exists.
func NewGpuContext(cmds *vk.Commands, physicalDevice vk.PhysicalDevice, device vk.Device, graphicsFamily, computeFamily uint32) *GpuContext {
	ctx := &GpuContext{
		Cmds:                cmds,
		Device:              device,
		GraphicsQueueFamily: graphicsFamily,
		ComputeQueueFamily:  computeFamily,
		pools:               make(map[uint64]*threadPool),
	}
	cmds.GetDeviceQueue(device, graphicsFamily, 0, &ctx.GraphicsQueue)
	if computeFamily != graphicsFamily {
		cmds.GetDeviceQueue(device, computeFamily, 0, &ctx.ComputeQueue)
	} else {
		ctx.ComputeQueue = ctx.GraphicsQueue
	}
	cmds.GetPhysicalDeviceMemoryProperties(physicalDevice, &ctx.memProps)
	return ctx
}

// PoolForCurrentThread returns the command pool registered under owner,
// creating one the first time a given owner token is seen. owner is an
// opaque per-worker identifier (e.g. a worker index or OS-thread handle)
// supplied by the caller; GpuContext does not inspect goroutine identity
// itself since Go does not expose it.
func (c *GpuContext) PoolForCurrentThread(owner uint64, queueFamily uint32) (vk.CommandPool, error) {
	c.poolsMu.Lock()
	defer c.poolsMu.Unlock()

	if tp, ok := c.pools[owner]; ok {
		return tp.pool, nil
	}

	createInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: queueFamily,
	}
	var pool vk.CommandPool
	if result := c.Cmds.CreateCommandPool(c.Device, &createInfo, &pool); result != vk.Success {
		return 0, fmt.Errorf("%w: vkCreateCommandPool: %d", ErrInitialization, result)
	}
	c.pools[owner] = &threadPool{pool: pool}
	return pool, nil
}

// ReleasePool destroys the command pool owned by owner, if any. Called when
// a worker goroutine in the BvhBuilder thread pool shuts down.
func (c *GpuContext) ReleasePool(owner uint64) {
	c.poolsMu.Lock()
	defer c.poolsMu.Unlock()

	tp, ok := c.pools[owner]
	if !ok {
		return
	}
	c.Cmds.DestroyCommandPool(c.Device, tp.pool)
	delete(c.pools, owner)
}

// Close destroys every command pool opened through PoolForCurrentThread and
// then the logical device itself. Callers must ensure no other goroutine is
// still using ctx (submitting work, building BVHs) when Close runs, and must
// call Close before destroying the Adapter that produced this context, since
// Vulkan requires a device be destroyed before its owning instance.
func (c *GpuContext) Close() {
	c.poolsMu.Lock()
	for owner, tp := range c.pools {
		c.Cmds.DestroyCommandPool(c.Device, tp.pool)
		delete(c.pools, owner)
	}
	c.poolsMu.Unlock()

	c.Cmds.DestroyDevice(c.Device)
}

// QueueSubmit submits to the graphics queue under the graphics queue mutex.
func (c *GpuContext) QueueSubmit(submits []vk.SubmitInfo, fence vk.Fence) error {
	c.graphicsSubmitMu.Lock()
	defer c.graphicsSubmitMu.Unlock()

	var p *vk.SubmitInfo
	if len(submits) > 0 {
		p = &submits[0]
	}
	//nolint:gosec // G115: submit batches are always far below 2^32
	if result := c.Cmds.QueueSubmit(c.GraphicsQueue, uint32(len(submits)), p, fence); result != vk.Success {
		if result == vk.ErrorDeviceLost {
			return hal.ErrDeviceLost
		}
		return fmt.Errorf("vkQueueSubmit: %d", result)
	}
	return nil
}

// ComputeQueueSubmit submits to the compute queue under its own mutex,
// separate from the graphics queue so a concurrent BVH-build submission on
// the compute queue never blocks behind a graphics submit.
func (c *GpuContext) ComputeQueueSubmit(submits []vk.SubmitInfo, fence vk.Fence) error {
	c.computeSubmitMu.Lock()
	defer c.computeSubmitMu.Unlock()

	var p *vk.SubmitInfo
	if len(submits) > 0 {
		p = &submits[0]
	}
	//nolint:gosec // G115: submit batches are always far below 2^32
	if result := c.Cmds.QueueSubmit(c.ComputeQueue, uint32(len(submits)), p, fence); result != vk.Success {
		if result == vk.ErrorDeviceLost {
			return hal.ErrDeviceLost
		}
		return fmt.Errorf("vkQueueSubmit (compute): %d", result)
	}
	return nil
}

// QueueWaitIdle blocks until the graphics queue is idle, used before
// swapchain recreation.
func (c *GpuContext) QueueWaitIdle() error {
	c.graphicsSubmitMu.Lock()
	defer c.graphicsSubmitMu.Unlock()

	if result := c.Cmds.QueueWaitIdle(c.GraphicsQueue); result != vk.Success {
		if result == vk.ErrorDeviceLost {
			return hal.ErrDeviceLost
		}
		return fmt.Errorf("vkQueueWaitIdle: %d", result)
	}
	return nil
}

// QueuePresent presents presentInfo on the graphics queue under the same
// mutex used for submission, since present and submit share the queue.
func (c *GpuContext) QueuePresent(presentInfo *vk.PresentInfoKHR) vk.Result {
	c.graphicsSubmitMu.Lock()
	defer c.graphicsSubmitMu.Unlock()
	return c.Cmds.QueuePresentKHR(c.GraphicsQueue, presentInfo)
}

// AllocateMemory performs the module's linear-scan memory type selection:
// walk memory types in index order, pick the first whose type bit is set
// in typeBits and whose properties are a superset of required. Returns
// ErrAllocation if none match.
func (c *GpuContext) AllocateMemory(size vk.DeviceSize, typeBits uint32, required vk.MemoryPropertyFlags, deviceAddress bool) (vk.DeviceMemory, error) {
	memTypeIndex, ok := c.findMemoryType(typeBits, required)
	if !ok {
		return 0, fmt.Errorf("%w: no memory type for typeBits=%#x properties=%#x", ErrAllocation, typeBits, required)
	}

	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  size,
		MemoryTypeIndex: memTypeIndex,
	}
	var flagsInfo vk.MemoryAllocateFlagsInfo
	if deviceAddress {
		flagsInfo = vk.MemoryAllocateFlagsInfo{
			SType: vk.StructureTypeMemoryAllocateFlagsInfo,
			Flags: vk.MemoryAllocateDeviceAddressBit,
		}
		allocInfo.PNext = uintptr(unsafe.Pointer(&flagsInfo))
	}

	var memory vk.DeviceMemory
	if result := c.Cmds.AllocateMemory(c.Device, &allocInfo, &memory); result != vk.Success {
		if result == vk.ErrorOutOfDeviceMemory || result == vk.ErrorOutOfHostMemory {
			return 0, hal.ErrDeviceOutOfMemory
		}
		return 0, fmt.Errorf("%w: vkAllocateMemory: %d", ErrAllocation, result)
	}
	return memory, nil
}

// findMemoryType is the linear scan described above, split out so tests can
// exercise the selection policy without a live device.
func (c *GpuContext) findMemoryType(typeBits uint32, required vk.MemoryPropertyFlags) (uint32, bool) {
	for i := uint32(0); i < c.memProps.MemoryTypeCount; i++ {
		bit := uint32(1) << i
		if typeBits&bit == 0 {
			continue
		}
		if c.memProps.MemoryTypes[i].PropertyFlags&required == required {
			return i, true
		}
	}
	return 0, false
}

// TransitionImageLayout records a pipeline barrier moving image from oldLayout
// to newLayout using the module's fixed layout/stage derivation table; callers
// never pass access or stage masks directly.
func (c *GpuContext) TransitionImageLayout(cmd vk.CommandBuffer, image vk.Image, oldLayout, newLayout vk.ImageLayout, aspectMask uint32) {
	oldT, ok := layoutTable[oldLayout]
	if !ok {
		oldT = layoutTable[vk.ImageLayoutGeneral]
	}
	newT, ok := layoutTable[newLayout]
	if !ok {
		newT = layoutTable[vk.ImageLayoutGeneral]
	}

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       oldT.access,
		DstAccessMask:       newT.access,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               image,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspectMask,
			LevelCount:     1,
			LayerCount:     1,
		},
	}
	c.Cmds.CmdPipelineBarrier(cmd, oldT.stage, newT.stage, 1, &barrier)
}
