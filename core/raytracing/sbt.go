// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/rtframe/core"
	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

// minShaderBindingTableRecords is the floor this module always allocates
// for, even when the ray-tracing pipeline has fewer groups: one raygen, one
// miss, one closest-hit, so a scene with a single material still has a
// well-formed table to index into.
const minShaderBindingTableRecords = 3

// ShaderBindingTable lays out a ray-tracing pipeline's shader-group handles
// into a device-addressable buffer vkCmdTraceRaysKHR reads through a set of
// StridedDeviceAddressRegionKHR values. It is rebuilt whenever the owning
// RT pipeline is rebuilt - there is no in-place update path, since the
// handle bytes are opaque driver data with no stable identity across
// pipeline rebuilds.
type ShaderBindingTable struct {
	ctx    *core.GpuContext
	buffer vk.Buffer
	memory vk.DeviceMemory
	addr   vk.DeviceAddress

	stride      vk.DeviceSize
	recordCount uint32
}

// NewShaderBindingTable copies groupCount shader-group handles out of
// pipeline and lays them out at a stride of
// align_up(handle_size, base_alignment), zero-padding every record (the
// trailing bytes of each handle's record, and every byte of the padding
// records added to reach the three-record floor).
func NewShaderBindingTable(ctx *core.GpuContext, pipeline vk.Pipeline, groupCount uint32, props vk.PhysicalDeviceRayTracingPipelinePropertiesKHR) (*ShaderBindingTable, error) {
	recordCount := groupCount
	if recordCount < minShaderBindingTableRecords {
		recordCount = minShaderBindingTableRecords
	}
	stride := vk.DeviceSize(alignUp(props.ShaderGroupHandleSize, props.ShaderGroupBaseAlignment))

	var handles []byte
	if groupCount > 0 {
		handles = make([]byte, vk.DeviceSize(groupCount)*vk.DeviceSize(props.ShaderGroupHandleSize))
		if result := ctx.Cmds.GetRayTracingShaderGroupHandlesKHR(ctx.Device, pipeline, 0, groupCount, uint64(len(handles)), unsafe.Pointer(&handles[0])); result != vk.Success {
			return nil, fmt.Errorf("vkGetRayTracingShaderGroupHandlesKHR: %d", result)
		}
	}

	tableSize := vk.DeviceSize(recordCount) * stride
	buffer, memory, err := createBuffer(ctx, tableSize,
		vk.BufferUsageShaderBindingTableBitKHR|vk.BufferUsageShaderDeviceAddressBit,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit, true)
	if err != nil {
		return nil, fmt.Errorf("sbt buffer: %w", err)
	}

	var mapped unsafe.Pointer
	if result := ctx.Cmds.MapMemory(ctx.Device, memory, 0, tableSize, &mapped); result != vk.Success {
		ctx.Cmds.DestroyBuffer(ctx.Device, buffer)
		ctx.Cmds.FreeMemory(ctx.Device, memory)
		return nil, fmt.Errorf("vkMapMemory (sbt): %d", result)
	}
	dst := unsafe.Slice((*byte)(mapped), tableSize)
	for i := range dst {
		dst[i] = 0
	}
	handleSize := vk.DeviceSize(props.ShaderGroupHandleSize)
	for i := uint32(0); i < groupCount; i++ {
		recordOffset := vk.DeviceSize(i) * stride
		handleOffset := vk.DeviceSize(i) * handleSize
		copy(dst[recordOffset:recordOffset+handleSize], handles[handleOffset:handleOffset+handleSize])
	}
	ctx.Cmds.UnmapMemory(ctx.Device, memory)

	return &ShaderBindingTable{
		ctx:         ctx,
		buffer:      buffer,
		memory:      memory,
		addr:        bufferDeviceAddress(ctx, buffer),
		stride:      stride,
		recordCount: recordCount,
	}, nil
}

// alignUp rounds size up to the next multiple of alignment.
func alignUp(size, alignment uint32) uint32 {
	if alignment == 0 {
		return size
	}
	return (size + alignment - 1) / alignment * alignment
}

// RecordCount returns the number of records actually allocated (always at
// least minShaderBindingTableRecords).
func (t *ShaderBindingTable) RecordCount() uint32 { return t.recordCount }

// Stride returns the per-record stride in bytes.
func (t *ShaderBindingTable) Stride() vk.DeviceSize { return t.stride }

// Region returns the StridedDeviceAddressRegionKHR covering count records
// starting at firstRecord, suitable for one of vkCmdTraceRaysKHR's four
// region arguments (raygen, miss, hit, callable).
func (t *ShaderBindingTable) Region(firstRecord, count uint32) vk.StridedDeviceAddressRegionKHR {
	if count == 0 {
		return vk.StridedDeviceAddressRegionKHR{}
	}
	return vk.StridedDeviceAddressRegionKHR{
		DeviceAddress: t.addr + vk.DeviceAddress(vk.DeviceSize(firstRecord)*t.stride),
		Stride:        t.stride,
		Size:          vk.DeviceSize(count) * t.stride,
	}
}

// Destroy releases the table's buffer and memory. Callers must ensure no
// vkCmdTraceRaysKHR referencing it is still in flight.
func (t *ShaderBindingTable) Destroy() {
	t.ctx.Cmds.DestroyBuffer(t.ctx.Device, t.buffer)
	t.ctx.Cmds.FreeMemory(t.ctx.Device, t.memory)
}
