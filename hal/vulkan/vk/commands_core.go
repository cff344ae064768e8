// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Commands holds function pointers resolved via vkGetInstanceProcAddr /
// vkGetDeviceProcAddr (wrapped in loader.go). Mirrors the teacher's
// three-stage loading discipline (LoadGlobal -> LoadInstance -> LoadDevice,
// defined below), restricted to the entry points this module's core package calls. Fields
// for the acceleration-structure / ray-tracing extensions are loaded by
// loadRTDevice in commands_rt.go.
type Commands struct {
	// Global / instance-level
	createInstance                         unsafe.Pointer
	destroyInstance                        unsafe.Pointer
	enumeratePhysicalDevices               unsafe.Pointer
	getPhysicalDeviceMemoryProperties      unsafe.Pointer
	getPhysicalDeviceQueueFamilyProperties unsafe.Pointer
	createDevice                           unsafe.Pointer
	destroyDevice                          unsafe.Pointer

	// Device-level: queues and sync
	getDeviceQueue   unsafe.Pointer
	queueSubmit      unsafe.Pointer
	queueWaitIdle    unsafe.Pointer
	queuePresentKHR  unsafe.Pointer
	createFence      unsafe.Pointer
	destroyFence     unsafe.Pointer
	resetFences      unsafe.Pointer
	waitForFences    unsafe.Pointer
	getFenceStatus   unsafe.Pointer
	createSemaphore  unsafe.Pointer
	destroySemaphore unsafe.Pointer

	// Device-level: command pools/buffers
	createCommandPool      unsafe.Pointer
	destroyCommandPool     unsafe.Pointer
	resetCommandPool       unsafe.Pointer
	allocateCommandBuffers unsafe.Pointer
	freeCommandBuffers     unsafe.Pointer
	beginCommandBuffer     unsafe.Pointer
	endCommandBuffer       unsafe.Pointer
	cmdExecuteCommands     unsafe.Pointer
	cmdPipelineBarrier     unsafe.Pointer
	cmdCopyBuffer          unsafe.Pointer

	// Device-level: swapchain
	createSwapchainKHR    unsafe.Pointer
	destroySwapchainKHR   unsafe.Pointer
	getSwapchainImagesKHR unsafe.Pointer
	acquireNextImageKHR   unsafe.Pointer
	createImageView       unsafe.Pointer
	destroyImageView      unsafe.Pointer
	createImage           unsafe.Pointer
	destroyImage          unsafe.Pointer

	// Instance-level: surface queries, used by Swapchain's format/present-mode/
	// extent selection.
	getPhysicalDeviceSurfaceCapabilitiesKHR unsafe.Pointer
	getPhysicalDeviceSurfaceFormatsKHR      unsafe.Pointer
	getPhysicalDeviceSurfacePresentModesKHR unsafe.Pointer

	// Device-level: memory and buffers
	allocateMemory              unsafe.Pointer
	freeMemory                  unsafe.Pointer
	bindBufferMemory            unsafe.Pointer
	bindImageMemory             unsafe.Pointer
	getBufferMemoryRequirements unsafe.Pointer
	getImageMemoryRequirements  unsafe.Pointer
	createBuffer                unsafe.Pointer
	destroyBuffer               unsafe.Pointer
	mapMemory                   unsafe.Pointer
	unmapMemory                 unsafe.Pointer
	getBufferDeviceAddress      unsafe.Pointer

	// Device-level: acceleration structures / ray tracing, loaded by loadRTDevice.
	createAccelerationStructureKHR           unsafe.Pointer
	destroyAccelerationStructureKHR          unsafe.Pointer
	getAccelerationStructureBuildSizesKHR    unsafe.Pointer
	cmdBuildAccelerationStructuresKHR        unsafe.Pointer
	getAccelerationStructureDeviceAddressKHR unsafe.Pointer
	createRayTracingPipelinesKHR             unsafe.Pointer
	getRayTracingShaderGroupHandlesKHR       unsafe.Pointer
	cmdTraceRaysKHR                          unsafe.Pointer

	// Manual wrappers in commands_manual.go reuse these fields verbatim.
	cmdWriteTimestamp       unsafe.Pointer
	cmdCopyQueryPoolResults unsafe.Pointer
	waitSemaphores          unsafe.Pointer
}

// LoadGlobal resolves function pointers that require no instance.
func (c *Commands) LoadGlobal() {
	c.createInstance = GetInstanceProcAddr(0, "vkCreateInstance")
}

// LoadInstance resolves instance-level function pointers.
func (c *Commands) LoadInstance(instance Instance) {
	load := func(name string) unsafe.Pointer { return GetInstanceProcAddr(instance, name) }

	c.destroyInstance = load("vkDestroyInstance")
	c.enumeratePhysicalDevices = load("vkEnumeratePhysicalDevices")
	c.getPhysicalDeviceMemoryProperties = load("vkGetPhysicalDeviceMemoryProperties")
	c.getPhysicalDeviceQueueFamilyProperties = load("vkGetPhysicalDeviceQueueFamilyProperties")
	c.createDevice = load("vkCreateDevice")
	c.getPhysicalDeviceSurfaceCapabilitiesKHR = load("vkGetPhysicalDeviceSurfaceCapabilitiesKHR")
	c.getPhysicalDeviceSurfaceFormatsKHR = load("vkGetPhysicalDeviceSurfaceFormatsKHR")
	c.getPhysicalDeviceSurfacePresentModesKHR = load("vkGetPhysicalDeviceSurfacePresentModesKHR")

	SetDeviceProcAddr(instance)
}

// LoadDevice resolves device-level function pointers, including extensions.
func (c *Commands) LoadDevice(device Device) {
	load := func(name string) unsafe.Pointer { return GetDeviceProcAddr(device, name) }

	c.destroyDevice = load("vkDestroyDevice")
	c.getDeviceQueue = load("vkGetDeviceQueue")
	c.queueSubmit = load("vkQueueSubmit")
	c.queueWaitIdle = load("vkQueueWaitIdle")
	c.queuePresentKHR = load("vkQueuePresentKHR")
	c.createFence = load("vkCreateFence")
	c.destroyFence = load("vkDestroyFence")
	c.resetFences = load("vkResetFences")
	c.waitForFences = load("vkWaitForFences")
	c.getFenceStatus = load("vkGetFenceStatus")
	c.createSemaphore = load("vkCreateSemaphore")
	c.destroySemaphore = load("vkDestroySemaphore")

	c.createCommandPool = load("vkCreateCommandPool")
	c.destroyCommandPool = load("vkDestroyCommandPool")
	c.resetCommandPool = load("vkResetCommandPool")
	c.allocateCommandBuffers = load("vkAllocateCommandBuffers")
	c.freeCommandBuffers = load("vkFreeCommandBuffers")
	c.beginCommandBuffer = load("vkBeginCommandBuffer")
	c.endCommandBuffer = load("vkEndCommandBuffer")
	c.cmdExecuteCommands = load("vkCmdExecuteCommands")
	c.cmdPipelineBarrier = load("vkCmdPipelineBarrier")
	c.cmdCopyBuffer = load("vkCmdCopyBuffer")

	c.createSwapchainKHR = load("vkCreateSwapchainKHR")
	c.destroySwapchainKHR = load("vkDestroySwapchainKHR")
	c.getSwapchainImagesKHR = load("vkGetSwapchainImagesKHR")
	c.acquireNextImageKHR = load("vkAcquireNextImageKHR")
	c.createImageView = load("vkCreateImageView")
	c.destroyImageView = load("vkDestroyImageView")
	c.createImage = load("vkCreateImage")
	c.destroyImage = load("vkDestroyImage")

	c.allocateMemory = load("vkAllocateMemory")
	c.freeMemory = load("vkFreeMemory")
	c.bindBufferMemory = load("vkBindBufferMemory")
	c.bindImageMemory = load("vkBindImageMemory")
	c.getBufferMemoryRequirements = load("vkGetBufferMemoryRequirements")
	c.getImageMemoryRequirements = load("vkGetImageMemoryRequirements")
	c.createBuffer = load("vkCreateBuffer")
	c.destroyBuffer = load("vkDestroyBuffer")
	c.mapMemory = load("vkMapMemory")
	c.unmapMemory = load("vkUnmapMemory")
	c.getBufferDeviceAddress = load("vkGetBufferDeviceAddress")

	c.loadRTDevice(load)

	c.cmdWriteTimestamp = load("vkCmdWriteTimestamp")
	c.cmdCopyQueryPoolResults = load("vkCmdCopyQueryPoolResults")
	c.waitSemaphores = load("vkWaitSemaphores")
}

func callResult(sig *types.CallInterface, fn unsafe.Pointer, args []unsafe.Pointer) Result {
	if fn == nil {
		return ErrorInitializationFailed
	}
	var result int32
	if err := ffi.CallFunction(sig, fn, unsafe.Pointer(&result), args); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func callVoid(sig *types.CallInterface, fn unsafe.Pointer, args []unsafe.Pointer) {
	if fn == nil {
		return
	}
	_ = ffi.CallFunction(sig, fn, nil, args)
}

// CreateInstance wraps vkCreateInstance.
func (c *Commands) CreateInstance(createInfo *InstanceCreateInfo, instance *Instance) Result {
	var alloc uintptr
	args := [3]unsafe.Pointer{unsafe.Pointer(&createInfo), unsafe.Pointer(&alloc), unsafe.Pointer(&instance)}
	return callResult(&SigResultPtrPtrPtr, c.createInstance, args[:])
}

// DestroyInstance wraps vkDestroyInstance.
func (c *Commands) DestroyInstance(instance Instance) {
	var alloc uintptr
	args := [2]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&alloc)}
	callVoid(&SigVoidHandlePtr, c.destroyInstance, args[:])
}

// EnumeratePhysicalDevices wraps vkEnumeratePhysicalDevices.
func (c *Commands) EnumeratePhysicalDevices(instance Instance, count *uint32, devices *PhysicalDevice) Result {
	args := [3]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&count), unsafe.Pointer(&devices)}
	return callResult(&SigResultHandlePtrPtr, c.enumeratePhysicalDevices, args[:])
}

// GetPhysicalDeviceMemoryProperties wraps vkGetPhysicalDeviceMemoryProperties.
func (c *Commands) GetPhysicalDeviceMemoryProperties(pd PhysicalDevice, props *PhysicalDeviceMemoryProperties) {
	args := [2]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&props)}
	callVoid(&SigVoidHandlePtr, c.getPhysicalDeviceMemoryProperties, args[:])
}

// GetPhysicalDeviceQueueFamilyProperties wraps
// vkGetPhysicalDeviceQueueFamilyProperties. Call once with props nil to
// obtain count, then again with a count-sized slice, following the
// Vulkan two-call query idiom used throughout this package.
func (c *Commands) GetPhysicalDeviceQueueFamilyProperties(pd PhysicalDevice, count *uint32, props *QueueFamilyProperties) {
	args := [3]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&count), unsafe.Pointer(&props)}
	callVoid(&SigVoidHandlePtrPtr, c.getPhysicalDeviceQueueFamilyProperties, args[:])
}

// CreateDevice wraps vkCreateDevice.
func (c *Commands) CreateDevice(pd PhysicalDevice, createInfo *DeviceCreateInfo, device *Device) Result {
	var alloc uintptr
	args := [4]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&createInfo), unsafe.Pointer(&alloc), unsafe.Pointer(&device)}
	return callResult(&SigResultHandlePtrPtrPtr, c.createDevice, args[:])
}

// DestroyDevice wraps vkDestroyDevice.
func (c *Commands) DestroyDevice(device Device) {
	var alloc uintptr
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&alloc)}
	callVoid(&SigVoidHandlePtr, c.destroyDevice, args[:])
}

// GetDeviceQueue wraps vkGetDeviceQueue.
func (c *Commands) GetDeviceQueue(device Device, familyIndex, queueIndex uint32, queue *Queue) {
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&familyIndex), unsafe.Pointer(&queueIndex), unsafe.Pointer(&queue)}
	callVoid(&SigVoidDeviceU32Ptr, c.getDeviceQueue, args[:])
}

// QueueSubmit wraps vkQueueSubmit. Callers serialize access with their own
// queue mutex; this wrapper performs no synchronization of its own.
func (c *Commands) QueueSubmit(queue Queue, submitCount uint32, submits *SubmitInfo, fence Fence) Result {
	args := [4]unsafe.Pointer{unsafe.Pointer(&queue), unsafe.Pointer(&submitCount), unsafe.Pointer(&submits), unsafe.Pointer(&fence)}
	return callResult(&SigResultHandleU32PtrHandle, c.queueSubmit, args[:])
}

// QueueWaitIdle wraps vkQueueWaitIdle.
func (c *Commands) QueueWaitIdle(queue Queue) Result {
	args := [1]unsafe.Pointer{unsafe.Pointer(&queue)}
	return callResult(&SigResultHandle, c.queueWaitIdle, args[:])
}

// QueuePresentKHR wraps vkQueuePresentKHR.
func (c *Commands) QueuePresentKHR(queue Queue, presentInfo *PresentInfoKHR) Result {
	args := [2]unsafe.Pointer{unsafe.Pointer(&queue), unsafe.Pointer(&presentInfo)}
	return callResult(&SigResultHandlePtr, c.queuePresentKHR, args[:])
}

// CreateFence wraps vkCreateFence.
func (c *Commands) CreateFence(device Device, createInfo *FenceCreateInfo, fence *Fence) Result {
	var alloc uintptr
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&alloc), unsafe.Pointer(&fence)}
	return callResult(&SigResultHandlePtrPtrPtr, c.createFence, args[:])
}

// DestroyFence wraps vkDestroyFence.
func (c *Commands) DestroyFence(device Device, fence Fence) {
	var alloc uintptr
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence), unsafe.Pointer(&alloc)}
	callVoid(&SigVoidHandleHandlePtr, c.destroyFence, args[:])
}

// ResetFences wraps vkResetFences.
func (c *Commands) ResetFences(device Device, count uint32, fences *Fence) Result {
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fences)}
	return callResult(&SigResultHandleU32Ptr, c.resetFences, args[:])
}

// WaitForFences wraps vkWaitForFences.
func (c *Commands) WaitForFences(device Device, count uint32, fences *Fence, waitAll uint32, timeout uint64) Result {
	args := [5]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fences), unsafe.Pointer(&waitAll), unsafe.Pointer(&timeout)}
	return callResult(&SigResultWaitForFences, c.waitForFences, args[:])
}

// GetFenceStatus wraps vkGetFenceStatus.
func (c *Commands) GetFenceStatus(device Device, fence Fence) Result {
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence)}
	return callResult(&SigResultHandleHandle, c.getFenceStatus, args[:])
}

// CreateSemaphore wraps vkCreateSemaphore.
func (c *Commands) CreateSemaphore(device Device, createInfo *SemaphoreCreateInfo, semaphore *Semaphore) Result {
	var alloc uintptr
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&alloc), unsafe.Pointer(&semaphore)}
	return callResult(&SigResultHandlePtrPtrPtr, c.createSemaphore, args[:])
}

// DestroySemaphore wraps vkDestroySemaphore.
func (c *Commands) DestroySemaphore(device Device, semaphore Semaphore) {
	var alloc uintptr
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&semaphore), unsafe.Pointer(&alloc)}
	callVoid(&SigVoidHandleHandlePtr, c.destroySemaphore, args[:])
}

// CreateCommandPool wraps vkCreateCommandPool.
func (c *Commands) CreateCommandPool(device Device, createInfo *CommandPoolCreateInfo, pool *CommandPool) Result {
	var alloc uintptr
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&alloc), unsafe.Pointer(&pool)}
	return callResult(&SigResultHandlePtrPtrPtr, c.createCommandPool, args[:])
}

// DestroyCommandPool wraps vkDestroyCommandPool.
func (c *Commands) DestroyCommandPool(device Device, pool CommandPool) {
	var alloc uintptr
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&alloc)}
	callVoid(&SigVoidHandleHandlePtr, c.destroyCommandPool, args[:])
}

// ResetCommandPool wraps vkResetCommandPool. Only safe when no worker
// thread holds a recording secondary allocated from pool.
func (c *Commands) ResetCommandPool(device Device, pool CommandPool, flags uint32) Result {
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&flags)}
	return callResult(&SigResultHandleHandleU32, c.resetCommandPool, args[:])
}

// AllocateCommandBuffers wraps vkAllocateCommandBuffers.
func (c *Commands) AllocateCommandBuffers(device Device, allocInfo *CommandBufferAllocateInfo, buffers *CommandBuffer) Result {
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&allocInfo), unsafe.Pointer(&buffers)}
	return callResult(&SigResultHandlePtrPtr, c.allocateCommandBuffers, args[:])
}

// FreeCommandBuffers wraps vkFreeCommandBuffers.
func (c *Commands) FreeCommandBuffers(device Device, pool CommandPool, count uint32, buffers *CommandBuffer) {
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&count), unsafe.Pointer(&buffers)}
	callVoid(&SigVoidHandleHandleU32Ptr, c.freeCommandBuffers, args[:])
}

// BeginCommandBuffer wraps vkBeginCommandBuffer.
func (c *Commands) BeginCommandBuffer(cmd CommandBuffer, beginInfo *CommandBufferBeginInfo) Result {
	args := [2]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&beginInfo)}
	return callResult(&SigResultHandlePtr, c.beginCommandBuffer, args[:])
}

// EndCommandBuffer wraps vkEndCommandBuffer.
func (c *Commands) EndCommandBuffer(cmd CommandBuffer) Result {
	args := [1]unsafe.Pointer{unsafe.Pointer(&cmd)}
	return callResult(&SigResultHandle, c.endCommandBuffer, args[:])
}

// CmdExecuteCommands wraps vkCmdExecuteCommands: the only place secondaries
// recorded by worker threads enter the primary buffer.
func (c *Commands) CmdExecuteCommands(primary CommandBuffer, count uint32, secondaries *CommandBuffer) {
	args := [3]unsafe.Pointer{unsafe.Pointer(&primary), unsafe.Pointer(&count), unsafe.Pointer(&secondaries)}
	callVoid(&SigVoidHandleU32Ptr, c.cmdExecuteCommands, args[:])
}

// CmdPipelineBarrier wraps vkCmdPipelineBarrier, used for every layout
// transition derived by the fixed access-mask/stage table. Only the image
// barrier array is populated; memory and buffer barrier counts are always 0.
func (c *Commands) CmdPipelineBarrier(cmd CommandBuffer, srcStage, dstStage PipelineStageFlags, imageBarrierCount uint32, imageBarriers *ImageMemoryBarrier) {
	var dependencyFlags, zeroCount uint32
	var zeroPtr uintptr
	args := [10]unsafe.Pointer{
		unsafe.Pointer(&cmd),
		unsafe.Pointer(&srcStage),
		unsafe.Pointer(&dstStage),
		unsafe.Pointer(&dependencyFlags),
		unsafe.Pointer(&zeroCount), unsafe.Pointer(&zeroPtr),
		unsafe.Pointer(&zeroCount), unsafe.Pointer(&zeroPtr),
		unsafe.Pointer(&imageBarrierCount), unsafe.Pointer(&imageBarriers),
	}
	callVoid(&SigVoidCmdPipelineBarrier, c.cmdPipelineBarrier, args[:])
}

// CmdCopyBuffer wraps vkCmdCopyBuffer, used by worker secondaries to stage
// upload data for BVH builds and other deferred resources.
func (c *Commands) CmdCopyBuffer(cmd CommandBuffer, src, dst Buffer, regionCount uint32, regions uintptr) {
	args := [5]unsafe.Pointer{unsafe.Pointer(&cmd), unsafe.Pointer(&src), unsafe.Pointer(&dst), unsafe.Pointer(&regionCount), unsafe.Pointer(&regions)}
	callVoid(&SigVoidCmdCopyBuffer, c.cmdCopyBuffer, args[:])
}

// CreateSwapchainKHR wraps vkCreateSwapchainKHR.
func (c *Commands) CreateSwapchainKHR(device Device, createInfo *SwapchainCreateInfoKHR, swapchain *SwapchainKHR) Result {
	var alloc uintptr
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&alloc), unsafe.Pointer(&swapchain)}
	return callResult(&SigResultHandlePtrPtrPtr, c.createSwapchainKHR, args[:])
}

// DestroySwapchainKHR wraps vkDestroySwapchainKHR.
func (c *Commands) DestroySwapchainKHR(device Device, swapchain SwapchainKHR) {
	var alloc uintptr
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&swapchain), unsafe.Pointer(&alloc)}
	callVoid(&SigVoidHandleHandlePtr, c.destroySwapchainKHR, args[:])
}

// GetSwapchainImagesKHR wraps vkGetSwapchainImagesKHR.
func (c *Commands) GetSwapchainImagesKHR(device Device, swapchain SwapchainKHR, count *uint32, images *Image) Result {
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&swapchain), unsafe.Pointer(&count), unsafe.Pointer(&images)}
	return callResult(&SigResultHandleHandlePtrPtr, c.getSwapchainImagesKHR, args[:])
}

// AcquireNextImageKHR wraps vkAcquireNextImageKHR.
func (c *Commands) AcquireNextImageKHR(device Device, swapchain SwapchainKHR, timeout uint64, semaphore Semaphore, fence Fence, imageIndex *uint32) Result {
	args := [6]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&swapchain), unsafe.Pointer(&timeout), unsafe.Pointer(&semaphore), unsafe.Pointer(&fence), unsafe.Pointer(&imageIndex)}
	return callResult(&SigResultAcquireNextImage, c.acquireNextImageKHR, args[:])
}

// CreateImageView wraps vkCreateImageView. createInfo is an opaque pointer
// to a VkImageViewCreateInfo built by the swapchain layer, which owns the
// full struct layout (including the pNext chain for HDR views).
func (c *Commands) CreateImageView(device Device, createInfo uintptr, view *ImageView) Result {
	var alloc uintptr
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&alloc), unsafe.Pointer(&view)}
	return callResult(&SigResultHandlePtrPtrPtr, c.createImageView, args[:])
}

// DestroyImageView wraps vkDestroyImageView.
func (c *Commands) DestroyImageView(device Device, view ImageView) {
	var alloc uintptr
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&view), unsafe.Pointer(&alloc)}
	callVoid(&SigVoidHandleHandlePtr, c.destroyImageView, args[:])
}

// CreateImage wraps vkCreateImage. createInfo is an opaque pointer to a
// VkImageCreateInfo built by the swapchain layer, mirroring CreateImageView's
// convention above.
func (c *Commands) CreateImage(device Device, createInfo uintptr, image *Image) Result {
	var alloc uintptr
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&alloc), unsafe.Pointer(&image)}
	return callResult(&SigResultHandlePtrPtrPtr, c.createImage, args[:])
}

// DestroyImage wraps vkDestroyImage.
func (c *Commands) DestroyImage(device Device, image Image) {
	var alloc uintptr
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&image), unsafe.Pointer(&alloc)}
	callVoid(&SigVoidHandleHandlePtr, c.destroyImage, args[:])
}

// GetPhysicalDeviceSurfaceCapabilitiesKHR wraps vkGetPhysicalDeviceSurfaceCapabilitiesKHR.
func (c *Commands) GetPhysicalDeviceSurfaceCapabilitiesKHR(pd PhysicalDevice, surface SurfaceKHR, caps *SurfaceCapabilitiesKHR) Result {
	args := [3]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&surface), unsafe.Pointer(&caps)}
	return callResult(&SigResultHandleHandlePtr, c.getPhysicalDeviceSurfaceCapabilitiesKHR, args[:])
}

// GetPhysicalDeviceSurfaceFormatsKHR wraps vkGetPhysicalDeviceSurfaceFormatsKHR.
// Called twice per the standard Vulkan enumeration idiom: once with formats
// nil to retrieve count, once with a sized slice to retrieve the values.
func (c *Commands) GetPhysicalDeviceSurfaceFormatsKHR(pd PhysicalDevice, surface SurfaceKHR, count *uint32, formats *SurfaceFormatKHR) Result {
	args := [4]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&surface), unsafe.Pointer(&count), unsafe.Pointer(&formats)}
	return callResult(&SigResultHandleHandlePtrPtr, c.getPhysicalDeviceSurfaceFormatsKHR, args[:])
}

// GetPhysicalDeviceSurfacePresentModesKHR wraps vkGetPhysicalDeviceSurfacePresentModesKHR.
func (c *Commands) GetPhysicalDeviceSurfacePresentModesKHR(pd PhysicalDevice, surface SurfaceKHR, count *uint32, modes *PresentModeKHR) Result {
	args := [4]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&surface), unsafe.Pointer(&count), unsafe.Pointer(&modes)}
	return callResult(&SigResultHandleHandlePtrPtr, c.getPhysicalDeviceSurfacePresentModesKHR, args[:])
}

// AllocateMemory wraps vkAllocateMemory.
func (c *Commands) AllocateMemory(device Device, allocInfo *MemoryAllocateInfo, memory *DeviceMemory) Result {
	var alloc uintptr
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&allocInfo), unsafe.Pointer(&alloc), unsafe.Pointer(&memory)}
	return callResult(&SigResultHandlePtrPtrPtr, c.allocateMemory, args[:])
}

// FreeMemory wraps vkFreeMemory.
func (c *Commands) FreeMemory(device Device, memory DeviceMemory) {
	var alloc uintptr
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&memory), unsafe.Pointer(&alloc)}
	callVoid(&SigVoidHandleHandlePtr, c.freeMemory, args[:])
}

// BindBufferMemory wraps vkBindBufferMemory.
func (c *Commands) BindBufferMemory(device Device, buffer Buffer, memory DeviceMemory, offset DeviceSize) Result {
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buffer), unsafe.Pointer(&memory), unsafe.Pointer(&offset)}
	return callResult(&SigResultHandle4, c.bindBufferMemory, args[:])
}

// BindImageMemory wraps vkBindImageMemory.
func (c *Commands) BindImageMemory(device Device, image Image, memory DeviceMemory, offset DeviceSize) Result {
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&image), unsafe.Pointer(&memory), unsafe.Pointer(&offset)}
	return callResult(&SigResultHandle4, c.bindImageMemory, args[:])
}

// GetBufferMemoryRequirements wraps vkGetBufferMemoryRequirements.
func (c *Commands) GetBufferMemoryRequirements(device Device, buffer Buffer, req *MemoryRequirements) {
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buffer), unsafe.Pointer(&req)}
	callVoid(&SigVoidHandleHandlePtr, c.getBufferMemoryRequirements, args[:])
}

// GetImageMemoryRequirements wraps vkGetImageMemoryRequirements.
func (c *Commands) GetImageMemoryRequirements(device Device, image Image, req *MemoryRequirements) {
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&image), unsafe.Pointer(&req)}
	callVoid(&SigVoidHandleHandlePtr, c.getImageMemoryRequirements, args[:])
}

// CreateBuffer wraps vkCreateBuffer.
func (c *Commands) CreateBuffer(device Device, createInfo *BufferCreateInfo, buffer *Buffer) Result {
	var alloc uintptr
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&createInfo), unsafe.Pointer(&alloc), unsafe.Pointer(&buffer)}
	return callResult(&SigResultHandlePtrPtrPtr, c.createBuffer, args[:])
}

// DestroyBuffer wraps vkDestroyBuffer.
func (c *Commands) DestroyBuffer(device Device, buffer Buffer) {
	var alloc uintptr
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buffer), unsafe.Pointer(&alloc)}
	callVoid(&SigVoidHandleHandlePtr, c.destroyBuffer, args[:])
}

// MapMemory wraps vkMapMemory.
func (c *Commands) MapMemory(device Device, memory DeviceMemory, offset, size DeviceSize, data *unsafe.Pointer) Result {
	var flags uint32
	args := [6]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&memory), unsafe.Pointer(&offset), unsafe.Pointer(&size), unsafe.Pointer(&flags), unsafe.Pointer(&data)}
	return callResult(&SigResultMapMemory, c.mapMemory, args[:])
}

// UnmapMemory wraps vkUnmapMemory.
func (c *Commands) UnmapMemory(device Device, memory DeviceMemory) {
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&memory)}
	callVoid(&SigVoidHandleHandle, c.unmapMemory, args[:])
}

// GetBufferDeviceAddress wraps vkGetBufferDeviceAddress, used to resolve
// BLAS/TLAS/SBT buffer addresses for build and trace commands.
func (c *Commands) GetBufferDeviceAddress(device Device, info *BufferDeviceAddressInfo) DeviceAddress {
	if c.getBufferDeviceAddress == nil {
		return 0
	}
	var result uint64
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info)}
	_ = ffi.CallFunction(&SigU64HandlePtr, c.getBufferDeviceAddress, unsafe.Pointer(&result), args[:])
	return DeviceAddress(result)
}
