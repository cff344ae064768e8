// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"fmt"

	"github.com/gogpu/rtframe/core"
	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

// GeometryData is one BLAS build input: a single triangle mesh addressed by
// device pointers already uploaded by the caller.
type GeometryData struct {
	VertexAddr   vk.DeviceAddress
	IndexAddr    vk.DeviceAddress
	VertexStride uint32
	VertexCount  uint32
	IndexCount   uint32
	MaterialID   uint32
	GeometryID   core.GeometryID
}

// InstanceData is one TLAS instance referencing an already-built BLAS.
type InstanceData struct {
	BlasDeviceAddress vk.DeviceAddress
	Transform         vk.TransformMatrixKHR
	CustomIndex       uint32
	Mask              uint8
	SbtOffset         uint32
	Flags             uint8
}

// NewInstanceData fills Mask/SbtOffset/Flags with the spec's fixed values
// (mask=0xFF, sbt_offset=0, flags=0), leaving only the address, transform,
// and custom index caller-supplied.
func NewInstanceData(blasAddress vk.DeviceAddress, transform vk.TransformMatrixKHR, customIndex uint32) InstanceData {
	return InstanceData{
		BlasDeviceAddress: blasAddress,
		Transform:         transform,
		CustomIndex:       customIndex,
		Mask:              0xFF,
		SbtOffset:         0,
		Flags:             0,
	}
}

// BlasResult is handed to BuildCompletion.OnComplete once a BLAS build has
// been recorded (not yet executed - see package doc).
type BlasResult struct {
	GeometryID            core.GeometryID
	AccelerationStructure vk.AccelerationStructureKHR
	Buffer                vk.Buffer
	Memory                vk.DeviceMemory
	DeviceAddress         vk.DeviceAddress
}

// TlasResult is published alongside a batch's BlasResults once the TLAS
// build referencing them has been recorded.
type TlasResult struct {
	AccelerationStructure vk.AccelerationStructureKHR
	Buffer                vk.Buffer
	Memory                vk.DeviceMemory
	InstanceBuffer        vk.Buffer
	InstanceMemory        vk.DeviceMemory
	DeviceAddress         vk.DeviceAddress
}

// BuildCompletion is the capability set a build-request caller implements
// to learn when a batch's acceleration structures become available. The
// callback runs on the worker that ended the batch's last secondary
// recording - never on the render thread - so implementations must not
// touch GPU state directly; they may only stage the result for later
// publication (see RaytracingCore.OnComplete).
type BuildCompletion interface {
	OnComplete(blas []BlasResult, tlas *TlasResult)
}

// pendingBuffer is a scratch buffer that must outlive the
// secondary command buffer referencing it. It implements
// core.PendingResource so SecondaryCmdMarshal releases it once the marshal
// has executed and the matching frame fence has signaled.
type pendingBuffer struct {
	buffer vk.Buffer
	memory vk.DeviceMemory
}

func (p pendingBuffer) Release(ctx *core.GpuContext) {
	ctx.Cmds.DestroyBuffer(ctx.Device, p.buffer)
	ctx.Cmds.FreeMemory(ctx.Device, p.memory)
}

// createBuffer allocates a buffer+memory pair bound together, following the
// module's fixed create->query-requirements->allocate->bind sequence.
func createBuffer(ctx *core.GpuContext, size vk.DeviceSize, usage vk.BufferUsageFlags, props vk.MemoryPropertyFlags, deviceAddress bool) (vk.Buffer, vk.DeviceMemory, error) {
	createInfo := vk.BufferCreateInfo{
		SType: vk.StructureTypeBufferCreateInfo,
		Size:  size,
		Usage: usage,
	}
	var buffer vk.Buffer
	if result := ctx.Cmds.CreateBuffer(ctx.Device, &createInfo, &buffer); result != vk.Success {
		return 0, 0, fmt.Errorf("vkCreateBuffer: %d", result)
	}

	var req vk.MemoryRequirements
	ctx.Cmds.GetBufferMemoryRequirements(ctx.Device, buffer, &req)

	memory, err := ctx.AllocateMemory(req.Size, req.MemoryTypeBits, props, deviceAddress)
	if err != nil {
		ctx.Cmds.DestroyBuffer(ctx.Device, buffer)
		return 0, 0, err
	}
	if result := ctx.Cmds.BindBufferMemory(ctx.Device, buffer, memory, 0); result != vk.Success {
		ctx.Cmds.DestroyBuffer(ctx.Device, buffer)
		ctx.Cmds.FreeMemory(ctx.Device, memory)
		return 0, 0, fmt.Errorf("vkBindBufferMemory: %d", result)
	}
	return buffer, memory, nil
}

// bufferDeviceAddress resolves buffer's device address via
// vkGetBufferDeviceAddress, used to publish BlasResult.DeviceAddress and
// the TLAS instance buffer's address.
func bufferDeviceAddress(ctx *core.GpuContext, buffer vk.Buffer) vk.DeviceAddress {
	info := vk.BufferDeviceAddressInfo{SType: vk.StructureTypeBufferDeviceAddressInfo, Buffer: buffer}
	return ctx.Cmds.GetBufferDeviceAddress(ctx.Device, &info)
}
