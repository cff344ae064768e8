// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
)

// loadRTDevice resolves the acceleration-structure / ray-tracing-pipeline
// device-level function pointers. Split from LoadDevice so the extension
// surface stays grouped with its own wrapper methods below, the way the
// teacher keeps its dynamic-rendering entry points apart from core drawing
// calls.
func (c *Commands) loadRTDevice(load func(string) unsafe.Pointer) {
	c.createAccelerationStructureKHR = load("vkCreateAccelerationStructureKHR")
	c.destroyAccelerationStructureKHR = load("vkDestroyAccelerationStructureKHR")
	c.getAccelerationStructureBuildSizesKHR = load("vkGetAccelerationStructureBuildSizesKHR")
	c.cmdBuildAccelerationStructuresKHR = load("vkCmdBuildAccelerationStructuresKHR")
	c.getAccelerationStructureDeviceAddressKHR = load("vkGetAccelerationStructureDeviceAddressKHR")
	c.createRayTracingPipelinesKHR = load("vkCreateRayTracingPipelinesKHR")
	c.getRayTracingShaderGroupHandlesKHR = load("vkGetRayTracingShaderGroupHandlesKHR")
	c.cmdTraceRaysKHR = load("vkCmdTraceRaysKHR")
}

// CreateAccelerationStructureKHR wraps vkCreateAccelerationStructureKHR.
func (c *Commands) CreateAccelerationStructureKHR(device Device, createInfo *AccelerationStructureCreateInfoKHR, as *AccelerationStructureKHR) Result {
	var alloc uintptr
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&alloc), unsafe.Pointer(&as)}
	return callResult(&SigResultHandlePtrPtrPtr, c.createAccelerationStructureKHR, args[:])
}

// DestroyAccelerationStructureKHR wraps vkDestroyAccelerationStructureKHR.
func (c *Commands) DestroyAccelerationStructureKHR(device Device, as AccelerationStructureKHR) {
	var alloc uintptr
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&as), unsafe.Pointer(&alloc)}
	callVoid(&SigVoidHandleHandlePtr, c.destroyAccelerationStructureKHR, args[:])
}

// GetAccelerationStructureBuildSizesKHR wraps vkGetAccelerationStructureBuildSizesKHR,
// used to size the BLAS/TLAS storage and scratch buffers before building.
func (c *Commands) GetAccelerationStructureBuildSizesKHR(device Device, buildType AccelerationStructureBuildTypeKHR, buildInfo *AccelerationStructureBuildGeometryInfoKHR, maxPrimitiveCounts *uint32, sizeInfo *AccelerationStructureBuildSizesInfoKHR) {
	args := [5]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buildType), unsafe.Pointer(&buildInfo), unsafe.Pointer(&maxPrimitiveCounts), unsafe.Pointer(&sizeInfo)}
	callVoid(&SigVoidHandleU32PtrPtrPtr, c.getAccelerationStructureBuildSizesKHR, args[:])
}

// CmdBuildAccelerationStructuresKHR wraps vkCmdBuildAccelerationStructuresKHR.
// infoCount build infos are submitted in one call; ppBuildRangeInfos holds
// one *AccelerationStructureBuildRangeInfoKHR pointer per info.
func (c *Commands) CmdBuildAccelerationStructuresKHR(cmd CommandBuffer, infoCount uint32, buildInfos *AccelerationStructureBuildGeometryInfoKHR, ppBuildRangeInfos uintptr) {
	args := [4]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&infoCount), unsafe.Pointer(&buildInfos), unsafe.Pointer(&ppBuildRangeInfos)}
	callVoid(&SigVoidHandleU32PtrPtr, c.cmdBuildAccelerationStructuresKHR, args[:])
}

// GetAccelerationStructureDeviceAddressKHR wraps vkGetAccelerationStructureDeviceAddressKHR,
// used to resolve a built BLAS's address for referencing from TLAS instances.
func (c *Commands) GetAccelerationStructureDeviceAddressKHR(device Device, info *AccelerationStructureDeviceAddressInfoKHR) DeviceAddress {
	if c.getAccelerationStructureDeviceAddressKHR == nil {
		return 0
	}
	var result uint64
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info)}
	_ = ffi.CallFunction(&SigU64HandlePtr, c.getAccelerationStructureDeviceAddressKHR, unsafe.Pointer(&result), args[:])
	return DeviceAddress(result)
}

// CreateRayTracingPipelinesKHR wraps vkCreateRayTracingPipelinesKHR. deferredOperation
// and pipelineCache are always VK_NULL_HANDLE for this module's synchronous
// pipeline build.
func (c *Commands) CreateRayTracingPipelinesKHR(device Device, createInfoCount uint32, createInfos *RayTracingPipelineCreateInfoKHR, pipelines *Pipeline) Result {
	var deferredOperation, pipelineCache uint64
	var alloc uintptr
	args := [7]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&deferredOperation),
		unsafe.Pointer(&pipelineCache),
		unsafe.Pointer(&createInfoCount),
		unsafe.Pointer(&createInfos),
		unsafe.Pointer(&alloc),
		unsafe.Pointer(&pipelines),
	}
	return callResult(&SigResultCreateRayTracingPipelines, c.createRayTracingPipelinesKHR, args[:])
}

// GetRayTracingShaderGroupHandlesKHR wraps vkGetRayTracingShaderGroupHandlesKHR,
// copying groupCount opaque shader identifiers (each ShaderGroupHandleSize
// bytes, per PhysicalDeviceRayTracingPipelinePropertiesKHR) into data for
// the shader binding table.
func (c *Commands) GetRayTracingShaderGroupHandlesKHR(device Device, pipeline Pipeline, firstGroup, groupCount uint32, dataSize uint64, data unsafe.Pointer) Result {
	args := [6]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pipeline), unsafe.Pointer(&firstGroup), unsafe.Pointer(&groupCount), unsafe.Pointer(&dataSize), unsafe.Pointer(&data)}
	return callResult(&SigResultGetShaderGroupHandles, c.getRayTracingShaderGroupHandlesKHR, args[:])
}

// CmdTraceRaysKHR wraps vkCmdTraceRaysKHR.
func (c *Commands) CmdTraceRaysKHR(cmd CommandBuffer, raygen, miss, hit, callable *StridedDeviceAddressRegionKHR, width, height, depth uint32) {
	args := [8]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&raygen),
		unsafe.Pointer(&miss),
		unsafe.Pointer(&hit),
		unsafe.Pointer(&callable),
		unsafe.Pointer(&width),
		unsafe.Pointer(&height),
		unsafe.Pointer(&depth),
	}
	callVoid(&SigVoidCmdTraceRays, c.cmdTraceRaysKHR, args[:])
}

// AccelerationStructureBuildTypeKHR mirrors VkAccelerationStructureBuildTypeKHR.
type AccelerationStructureBuildTypeKHR int32

const (
	AccelerationStructureBuildTypeHostKHR   AccelerationStructureBuildTypeKHR = 0
	AccelerationStructureBuildTypeDeviceKHR AccelerationStructureBuildTypeKHR = 1
)
