// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Additional CallInterface signature templates for entry points the
// teacher's generic WebGPU backend never calls: device-address queries and
// the acceleration-structure / ray-tracing-pipeline extensions. Grouped
// separately from signatures.go so that file stays a faithful copy of the
// teacher's own signature catalogue.

package vk

import (
	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	// u64(handle, ptr) - vkGetBufferDeviceAddress, vkGetAccelerationStructureDeviceAddressKHR
	SigU64HandlePtr types.CallInterface

	// void(handle, u32, ptr, ptr, ptr) - vkGetAccelerationStructureBuildSizesKHR
	SigVoidHandleU32PtrPtrPtr types.CallInterface

	// void(handle, u32, ptr, ptr) - vkCmdBuildAccelerationStructuresKHR
	SigVoidHandleU32PtrPtr types.CallInterface

	// VkResult(handle, handle, handle, u32, ptr, ptr, ptr) - vkCreateRayTracingPipelinesKHR
	SigResultCreateRayTracingPipelines types.CallInterface

	// VkResult(handle, handle, u32, u32, u64, ptr) - vkGetRayTracingShaderGroupHandlesKHR
	SigResultGetShaderGroupHandles types.CallInterface

	// void(handle, ptr, ptr, ptr, ptr, u32, u32, u32) - vkCmdTraceRaysKHR
	SigVoidCmdTraceRays types.CallInterface

	// void(handle, u32, handle, u32) - vkCmdWriteTimestamp, needed by the
	// teacher's commands_manual.go wrapper.
	SigVoidHandleU32HandleU32 types.CallInterface

	// void(handle, handle, u32, u32, handle, u64, u64, u32) - vkCmdCopyQueryPoolResults
	SigVoidCmdCopyQueryPoolResults types.CallInterface

	// VkResult(handle, ptr, u64) - vkWaitSemaphores
	SigResultHandlePtrU64 types.CallInterface
)

// InitRTSignatures prepares the acceleration-structure/ray-tracing-pipeline
// CallInterface templates. Called once from doInit alongside InitSignatures.
func InitRTSignatures() error {
	ptr := types.PointerTypeDescriptor
	u32 := types.UInt32TypeDescriptor
	u64 := types.UInt64TypeDescriptor
	voidRet := types.VoidTypeDescriptor
	resultRet := types.SInt32TypeDescriptor
	u64Ret := types.UInt64TypeDescriptor

	if err := ffi.PrepareCallInterface(&SigU64HandlePtr, types.DefaultCall, u64Ret,
		[]*types.TypeDescriptor{u64, ptr}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&SigVoidHandleU32PtrPtrPtr, types.DefaultCall, voidRet,
		[]*types.TypeDescriptor{u64, u32, ptr, ptr, ptr}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&SigVoidHandleU32PtrPtr, types.DefaultCall, voidRet,
		[]*types.TypeDescriptor{u64, u32, ptr, ptr}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&SigResultCreateRayTracingPipelines, types.DefaultCall, resultRet,
		[]*types.TypeDescriptor{u64, u64, u64, u32, ptr, ptr, ptr}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&SigResultGetShaderGroupHandles, types.DefaultCall, resultRet,
		[]*types.TypeDescriptor{u64, u64, u32, u32, u64, ptr}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&SigVoidCmdTraceRays, types.DefaultCall, voidRet,
		[]*types.TypeDescriptor{u64, ptr, ptr, ptr, ptr, u32, u32, u32}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&SigVoidHandleU32HandleU32, types.DefaultCall, voidRet,
		[]*types.TypeDescriptor{u64, u32, u64, u32}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&SigVoidCmdCopyQueryPoolResults, types.DefaultCall, voidRet,
		[]*types.TypeDescriptor{u64, u64, u32, u32, u64, u64, u64, u32}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&SigResultHandlePtrU64, types.DefaultCall, resultRet,
		[]*types.TypeDescriptor{u64, ptr, u64}); err != nil {
		return err
	}

	return nil
}
