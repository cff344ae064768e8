// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

// apiVersion1_3 is VK_API_VERSION_1_3, computed the same way Vulkan's
// VK_MAKE_API_VERSION macro does: (variant<<29)|(major<<22)|(minor<<12)|patch
// with variant and patch both zero.
const apiVersion1_3 = (1 << 22) | (3 << 12)

// Adapter bootstraps a Vulkan instance and selects the physical device the
// kernel runs on. It owns only the instance-level state; GpuContext owns
// the logical device produced by OpenDevice.
//
// This is the single Vulkan-only `core.Adapter` the frame-orchestration
// kernel needs - unlike a multi-backend adapter abstraction, it never has
// to branch on backend kind, so it talks directly to vk.Commands rather
// than through an intermediate hal.Adapter interface.
type Adapter struct {
	cmds           vk.Commands
	instance       vk.Instance
	physicalDevice vk.PhysicalDevice
	graphicsFamily uint32
	computeFamily  uint32
}

// NewAdapter loads the Vulkan library, creates an instance with appName
// identifying the application in validation-layer/driver logs, and selects
// the first physical device exposing both a graphics and a compute queue
// family.
func NewAdapter(appName string, layers, extensions []string) (*Adapter, error) {
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("%w: vk.Init: %w", ErrInitialization, err)
	}

	a := &Adapter{}
	a.cmds.LoadGlobal()

	appNameBytes := append([]byte(appName), 0)
	engineNameBytes := []byte("rtframe\x00")
	appInfo := vk.ApplicationInfo{
		SType:            vk.StructureTypeApplicationInfo,
		PApplicationName: uintptr(unsafe.Pointer(&appNameBytes[0])),
		PEngineName:      uintptr(unsafe.Pointer(&engineNameBytes[0])),
		APIVersion:       apiVersion1_3,
	}

	layerPtrs, layersKeepAlive := cStringArray(layers)
	extPtrs, extKeepAlive := cStringArray(extensions)
	_ = layersKeepAlive
	_ = extKeepAlive

	createInfo := vk.InstanceCreateInfo{
		SType:                 vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:      uintptr(unsafe.Pointer(&appInfo)),
		EnabledLayerCount:     uint32(len(layers)),
		EnabledExtensionCount: uint32(len(extensions)),
	}
	if len(layerPtrs) > 0 {
		createInfo.PpEnabledLayerNames = uintptr(unsafe.Pointer(&layerPtrs[0]))
	}
	if len(extPtrs) > 0 {
		createInfo.PpEnabledExtensionNames = uintptr(unsafe.Pointer(&extPtrs[0]))
	}

	if result := a.cmds.CreateInstance(&createInfo, &a.instance); result != vk.Success {
		return nil, fmt.Errorf("%w: vkCreateInstance: %d", ErrInitialization, result)
	}
	a.cmds.LoadInstance(a.instance)

	if err := a.selectPhysicalDevice(); err != nil {
		a.cmds.DestroyInstance(a.instance)
		return nil, err
	}
	return a, nil
}

// cStringArray converts Go strings into a slice of raw pointers into
// null-terminated byte copies, returning both; the caller must keep the
// second return value alive for as long as the pointers are used, since it
// owns the backing bytes the pointers reference.
func cStringArray(strs []string) ([]uintptr, [][]byte) {
	ptrs := make([]uintptr, len(strs))
	keepAlive := make([][]byte, len(strs))
	for i, s := range strs {
		keepAlive[i] = append([]byte(s), 0)
		ptrs[i] = uintptr(unsafe.Pointer(&keepAlive[i][0]))
	}
	return ptrs, keepAlive
}

// selectPhysicalDevice enumerates every physical device and picks the first
// one exposing a graphics-capable and a compute-capable queue family
// (possibly the same family). Returns ErrInitialization if none qualifies.
func (a *Adapter) selectPhysicalDevice() error {
	var count uint32
	if result := a.cmds.EnumeratePhysicalDevices(a.instance, &count, nil); result != vk.Success || count == 0 {
		return fmt.Errorf("%w: vkEnumeratePhysicalDevices: %d devices, result %d", ErrInitialization, count, result)
	}
	devices := make([]vk.PhysicalDevice, count)
	if result := a.cmds.EnumeratePhysicalDevices(a.instance, &count, &devices[0]); result != vk.Success {
		return fmt.Errorf("%w: vkEnumeratePhysicalDevices: %d", ErrInitialization, result)
	}

	for _, pd := range devices {
		graphicsFamily, computeFamily, ok := queueFamiliesFor(&a.cmds, pd)
		if !ok {
			continue
		}
		a.physicalDevice = pd
		a.graphicsFamily = graphicsFamily
		a.computeFamily = computeFamily
		return nil
	}
	return fmt.Errorf("%w: no physical device exposes both a graphics and a compute queue family", ErrInitialization)
}

// queueFamiliesFor returns the first graphics-capable and first
// compute-capable queue family index on pd, and whether both were found.
func queueFamiliesFor(cmds *vk.Commands, pd vk.PhysicalDevice) (graphics, compute uint32, ok bool) {
	var count uint32
	cmds.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	if count == 0 {
		return 0, 0, false
	}
	families := make([]vk.QueueFamilyProperties, count)
	cmds.GetPhysicalDeviceQueueFamilyProperties(pd, &count, &families[0])

	graphicsFound, computeFound := false, false
	for i, family := range families {
		if !graphicsFound && family.QueueFlags&vk.QueueGraphicsBit != 0 {
			graphics = uint32(i)
			graphicsFound = true
		}
		if !computeFound && family.QueueFlags&vk.QueueComputeBit != 0 {
			compute = uint32(i)
			computeFound = true
		}
	}
	return graphics, compute, graphicsFound && computeFound
}

// PhysicalDevice returns the selected physical device handle, for callers
// that need it directly (surface capability queries, memory properties).
func (a *Adapter) PhysicalDevice() vk.PhysicalDevice { return a.physicalDevice }

// Instance returns the Vulkan instance handle.
func (a *Adapter) Instance() vk.Instance { return a.instance }

// OpenDevice creates a logical device enabling deviceExtensions (callers
// pass at least VK_KHR_acceleration_structure, VK_KHR_ray_tracing_pipeline,
// and VK_KHR_buffer_device_address to use RaytracingCore) on the selected
// physical device's graphics and compute queue families, and returns a
// GpuContext ready for PoolForCurrentThread calls.
func (a *Adapter) OpenDevice(deviceExtensions []string) (*GpuContext, error) {
	queuePriority := float32(1.0)
	priorityPtr := uintptr(unsafe.Pointer(&queuePriority))
	queueInfos := []vk.DeviceQueueCreateInfo{
		{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: a.graphicsFamily,
			QueueCount:       1,
			PQueuePriorities: priorityPtr,
		},
	}
	if a.computeFamily != a.graphicsFamily {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: a.computeFamily,
			QueueCount:       1,
			PQueuePriorities: priorityPtr,
		})
	}

	extPtrs, extKeepAlive := cStringArray(deviceExtensions)
	_ = extKeepAlive

	createInfo := vk.DeviceCreateInfo{
		SType:                 vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:  uint32(len(queueInfos)),
		PQueueCreateInfos:     uintptr(unsafe.Pointer(&queueInfos[0])),
		EnabledExtensionCount: uint32(len(deviceExtensions)),
	}
	if len(extPtrs) > 0 {
		createInfo.PpEnabledExtensionNames = uintptr(unsafe.Pointer(&extPtrs[0]))
	}

	var device vk.Device
	if result := a.cmds.CreateDevice(a.physicalDevice, &createInfo, &device); result != vk.Success {
		return nil, fmt.Errorf("%w: vkCreateDevice: %d", ErrInitialization, result)
	}
	a.cmds.LoadDevice(device)

	return NewGpuContext(&a.cmds, a.physicalDevice, device, a.graphicsFamily, a.computeFamily), nil
}

// Destroy destroys the Vulkan instance. Callers must call Close on every
// GpuContext opened from this adapter first; Vulkan requires a device be
// destroyed before its owning instance.
func (a *Adapter) Destroy() {
	a.cmds.DestroyInstance(a.instance)
}
