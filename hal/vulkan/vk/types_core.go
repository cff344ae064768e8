// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// Handle types. Vulkan dispatchable and non-dispatchable handles are both
// represented as opaque 64-bit values, matching the u64 TypeDescriptor used
// for every handle argument in signatures.go.
type (
	Instance            uint64
	PhysicalDevice      uint64
	Device              uint64
	Queue               uint64
	CommandPool         uint64
	CommandBuffer       uint64
	Fence               uint64
	Semaphore           uint64
	DeviceMemory        uint64
	Buffer              uint64
	Image               uint64
	ImageView           uint64
	SurfaceKHR          uint64
	SwapchainKHR        uint64
	AccelerationStructureKHR uint64
	Pipeline            uint64
	PipelineLayout      uint64
	ShaderModule        uint64
	DescriptorSetLayout uint64
	DescriptorPool      uint64
	DescriptorSet       uint64
	QueryPool           uint64
)

// DeviceSize, DeviceAddress mirror VkDeviceSize / VkDeviceAddress (both u64).
type (
	DeviceSize   uint64
	DeviceAddress uint64
)

// Result mirrors VkResult (int32).
type Result int32

const (
	Success                     Result = 0
	NotReady                    Result = 1
	Timeout                     Result = 2
	EventSet                    Result = 3
	EventReset                  Result = 4
	Incomplete                  Result = 5
	ErrorOutOfHostMemory        Result = -1
	ErrorOutOfDeviceMemory      Result = -2
	ErrorInitializationFailed   Result = -3
	ErrorDeviceLost             Result = -4
	ErrorMemoryMapFailed        Result = -5
	ErrorExtensionNotPresent    Result = -7
	ErrorFeatureNotPresent      Result = -8
	ErrorTooManyObjects         Result = -10
	ErrorSurfaceLostKHR         Result = -1000000000
	ErrorNativeWindowInUseKHR   Result = -1000000001
	SuboptimalKHR               Result = 1000001003
	ErrorOutOfDateKHR           Result = -1000001004
)

// StructureType mirrors VkStructureType (int32). Only the values this
// module's call sites construct are enumerated.
type StructureType int32

const (
	StructureTypeApplicationInfo                 StructureType = 0
	StructureTypeInstanceCreateInfo               StructureType = 1
	StructureTypeDeviceQueueCreateInfo             StructureType = 2
	StructureTypeDeviceCreateInfo                  StructureType = 3
	StructureTypeSubmitInfo                        StructureType = 4
	StructureTypeMemoryAllocateInfo                 StructureType = 5
	StructureTypeFenceCreateInfo                    StructureType = 8
	StructureTypeSemaphoreCreateInfo                StructureType = 9
	StructureTypeBufferCreateInfo                   StructureType = 12
	StructureTypeImageCreateInfo                     StructureType = 14
	StructureTypeImageViewCreateInfo                 StructureType = 15
	StructureTypeCommandPoolCreateInfo               StructureType = 39
	StructureTypeCommandBufferAllocateInfo            StructureType = 40
	StructureTypeCommandBufferInheritanceInfo          StructureType = 41
	StructureTypeCommandBufferBeginInfo               StructureType = 42
	StructureTypeMemoryBarrier                       StructureType = 46
	StructureTypeBufferMemoryBarrier                   StructureType = 44
	StructureTypeImageMemoryBarrier                    StructureType = 45
	StructureTypeSwapchainCreateInfoKHR               StructureType = 1000001000
	StructureTypePresentInfoKHR                       StructureType = 1000001001
	StructureTypeMemoryRequirements2                  StructureType = 1000146003
	StructureTypeBufferDeviceAddressInfo              StructureType = 1000244001
	StructureTypeAccelerationStructureBuildGeometryInfoKHR StructureType = 1000150000
	StructureTypeAccelerationStructureCreateInfoKHR    StructureType = 1000150002
	StructureTypeAccelerationStructureDeviceAddressInfoKHR StructureType = 1000150005
	StructureTypeAccelerationStructureGeometryKHR      StructureType = 1000150006
	StructureTypeAccelerationStructureBuildSizesInfoKHR  StructureType = 1000150020
	StructureTypeAccelerationStructureGeometryTrianglesDataKHR StructureType = 1000150003
	StructureTypeAccelerationStructureGeometryInstancesDataKHR StructureType = 1000150004
	StructureTypeRayTracingPipelineCreateInfoKHR       StructureType = 1000150015
	StructureTypeRayTracingShaderGroupCreateInfoKHR    StructureType = 1000150017
	StructureTypePhysicalDeviceRayTracingPipelinePropertiesKHR StructureType = 1000150016
	StructureTypePipelineLayoutCreateInfo              StructureType = 30
	StructureTypeMemoryAllocateFlagsInfo               StructureType = 1000060000
	StructureTypeSemaphoreTypeCreateInfo                StructureType = 1000207002
	StructureTypeSemaphoreWaitInfo                     StructureType = 1000207003
)

// Format mirrors VkFormat (int32); only presented/depth/geometry candidates
// are named.
type Format int32

const (
	FormatUndefined               Format = 0
	FormatR32G32B32Sfloat          Format = 106
	FormatD32Sfloat                Format = 126
	FormatD32SfloatS8Uint            Format = 130
	FormatD24UnormS8Uint             Format = 129
	FormatR16G16B16A16Sfloat          Format = 97
	FormatB8G8R8A8Srgb               Format = 50
	FormatA2B10G10R10UnormPack32      Format = 64
)

// ColorSpaceKHR mirrors VkColorSpaceKHR (int32); only ranked candidates named.
type ColorSpaceKHR int32

const (
	ColorSpaceSrgbNonlinearKHR        ColorSpaceKHR = 0
	ColorSpaceExtendedSrgbLinearEXT    ColorSpaceKHR = 1000104014
	ColorSpaceHdr10St2084EXT           ColorSpaceKHR = 1000104008
	ColorSpaceHdr10HlgEXT              ColorSpaceKHR = 1000104012
	ColorSpaceBt709LinearEXT           ColorSpaceKHR = 1000104002
)

// PresentModeKHR mirrors VkPresentModeKHR (int32).
type PresentModeKHR int32

const (
	PresentModeImmediateKHR PresentModeKHR = 0
	PresentModeMailboxKHR   PresentModeKHR = 1
	PresentModeFifoKHR      PresentModeKHR = 2
)

// SurfaceFormatKHR mirrors VkSurfaceFormatKHR.
type SurfaceFormatKHR struct {
	Format     Format
	ColorSpace ColorSpaceKHR
}

// SurfaceCapabilitiesKHR mirrors VkSurfaceCapabilitiesKHR.
type SurfaceCapabilitiesKHR struct {
	MinImageCount           uint32
	MaxImageCount           uint32
	CurrentExtent           Extent2D
	MinImageExtent          Extent2D
	MaxImageExtent          Extent2D
	MaxImageArrayLayers     uint32
	SupportedTransforms     uint32
	CurrentTransform        uint32
	SupportedCompositeAlpha uint32
	SupportedUsageFlags     uint32
}

// ImageLayout mirrors VkImageLayout (int32); only layouts named in the
// layout/stage derivation table are enumerated.
type ImageLayout int32

const (
	ImageLayoutUndefined                     ImageLayout = 0
	ImageLayoutGeneral                       ImageLayout = 1
	ImageLayoutColorAttachmentOptimal          ImageLayout = 2
	ImageLayoutDepthStencilAttachmentOptimal     ImageLayout = 3
	ImageLayoutTransferSrcOptimal               ImageLayout = 6
	ImageLayoutTransferDstOptimal                ImageLayout = 7
	ImageLayoutShaderReadOnlyOptimal              ImageLayout = 5
	ImageLayoutPresentSrcKHR                    ImageLayout = 1000001002
)

// AccessFlags mirrors VkAccessFlags bits used by the layout table.
type AccessFlags uint32

const (
	AccessShaderReadBit            AccessFlags = 0x00000020
	AccessShaderWriteBit            AccessFlags = 0x00000040
	AccessColorAttachmentReadBit      AccessFlags = 0x00000080
	AccessColorAttachmentWriteBit     AccessFlags = 0x00000100
	AccessDepthStencilAttachmentReadBit AccessFlags = 0x00000200
	AccessDepthStencilAttachmentWriteBit AccessFlags = 0x00000400
	AccessTransferReadBit            AccessFlags = 0x00000800
	AccessTransferWriteBit            AccessFlags = 0x00001000
)

// PipelineStageFlags mirrors VkPipelineStageFlags bits used by the layout table.
type PipelineStageFlags uint32

const (
	PipelineStageTopOfPipeBit           PipelineStageFlags = 0x00000001
	PipelineStageTransferBit              PipelineStageFlags = 0x00001000
	PipelineStageBottomOfPipeBit          PipelineStageFlags = 0x00002000
	PipelineStageColorAttachmentOutputBit   PipelineStageFlags = 0x00000400
	PipelineStageEarlyFragmentTestsBit      PipelineStageFlags = 0x00000100
	PipelineStageFragmentShaderBit          PipelineStageFlags = 0x00000080
	PipelineStageAllCommandsBit            PipelineStageFlags = 0x00010000
)

// CommandBufferUsageFlags mirrors VkCommandBufferUsageFlags bits.
type CommandBufferUsageFlags uint32

const (
	CommandBufferUsageOneTimeSubmitBit CommandBufferUsageFlags = 0x00000001
	CommandBufferUsageSimultaneousUseBit CommandBufferUsageFlags = 0x00000004
)

// CommandBufferLevel mirrors VkCommandBufferLevel.
type CommandBufferLevel int32

const (
	CommandBufferLevelPrimary   CommandBufferLevel = 0
	CommandBufferLevelSecondary CommandBufferLevel = 1
)

// FenceCreateFlags mirrors VkFenceCreateFlags.
type FenceCreateFlags uint32

const FenceCreateSignaledBit FenceCreateFlags = 0x00000001

// MemoryPropertyFlags mirrors VkMemoryPropertyFlags bits.
type MemoryPropertyFlags uint32

const (
	MemoryPropertyDeviceLocalBit  MemoryPropertyFlags = 0x00000001
	MemoryPropertyHostVisibleBit    MemoryPropertyFlags = 0x00000002
	MemoryPropertyHostCoherentBit    MemoryPropertyFlags = 0x00000004
)

// MemoryAllocateFlags mirrors VkMemoryAllocateFlags.
type MemoryAllocateFlags uint32

const MemoryAllocateDeviceAddressBit MemoryAllocateFlags = 0x00000001

// BufferUsageFlags mirrors VkBufferUsageFlags bits used by this module.
type BufferUsageFlags uint32

const (
	BufferUsageTransferSrcBit                                    BufferUsageFlags = 0x00000001
	BufferUsageTransferDstBit                                    BufferUsageFlags = 0x00000002
	BufferUsageStorageBufferBit                                  BufferUsageFlags = 0x00000020
	BufferUsageShaderDeviceAddressBit                             BufferUsageFlags = 0x00020000
	BufferUsageAccelerationStructureBuildInputReadOnlyBitKHR        BufferUsageFlags = 0x00080000
	BufferUsageAccelerationStructureStorageBitKHR                  BufferUsageFlags = 0x00100000
	BufferUsageShaderBindingTableBitKHR                            BufferUsageFlags = 0x00000400
)

const QueueFamilyIgnored uint32 = 0xFFFFFFFF
const WholeSize uint64 = ^uint64(0)

// ApplicationInfo mirrors VkApplicationInfo.
type ApplicationInfo struct {
	SType              StructureType
	PNext              uintptr
	PApplicationName   uintptr
	ApplicationVersion uint32
	PEngineName        uintptr
	EngineVersion      uint32
	APIVersion         uint32
}

// InstanceCreateInfo mirrors VkInstanceCreateInfo.
type InstanceCreateInfo struct {
	SType                   StructureType
	PNext                   uintptr
	Flags                   uint32
	PApplicationInfo        uintptr
	EnabledLayerCount       uint32
	PpEnabledLayerNames     uintptr
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames uintptr
}

// DeviceQueueCreateInfo mirrors VkDeviceQueueCreateInfo.
type DeviceQueueCreateInfo struct {
	SType            StructureType
	PNext            uintptr
	Flags            uint32
	QueueFamilyIndex uint32
	QueueCount       uint32
	PQueuePriorities uintptr
}

// DeviceCreateInfo mirrors VkDeviceCreateInfo.
type DeviceCreateInfo struct {
	SType                   StructureType
	PNext                   uintptr
	Flags                   uint32
	QueueCreateInfoCount    uint32
	PQueueCreateInfos       uintptr
	EnabledLayerCount       uint32
	PpEnabledLayerNames     uintptr
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames uintptr
	PEnabledFeatures        uintptr
}

// CommandPoolCreateInfo mirrors VkCommandPoolCreateInfo.
type CommandPoolCreateInfo struct {
	SType            StructureType
	PNext            uintptr
	Flags            uint32
	QueueFamilyIndex uint32
}

// CommandBufferAllocateInfo mirrors VkCommandBufferAllocateInfo.
type CommandBufferAllocateInfo struct {
	SType              StructureType
	PNext              uintptr
	CommandPool        CommandPool
	Level              CommandBufferLevel
	CommandBufferCount uint32
}

// CommandBufferInheritanceInfo mirrors VkCommandBufferInheritanceInfo.
// A "null-render-pass" secondary inheritance record: RenderPass/Framebuffer
// left zero because this module always records secondaries outside any
// render pass (dynamic rendering, compute/transfer/AS-build work only).
type CommandBufferInheritanceInfo struct {
	SType                StructureType
	PNext                uintptr
	RenderPass           uint64
	Subpass              uint32
	Framebuffer          uint64
	OcclusionQueryEnable uint32
	QueryFlags           uint32
	PipelineStatistics   uint32
}

// CommandBufferBeginInfo mirrors VkCommandBufferBeginInfo.
type CommandBufferBeginInfo struct {
	SType            StructureType
	PNext            uintptr
	Flags            CommandBufferUsageFlags
	PInheritanceInfo *CommandBufferInheritanceInfo
}

// SubmitInfo mirrors VkSubmitInfo.
type SubmitInfo struct {
	SType                StructureType
	PNext                uintptr
	WaitSemaphoreCount   uint32
	PWaitSemaphores      uintptr
	PWaitDstStageMask    uintptr
	CommandBufferCount   uint32
	PCommandBuffers      uintptr
	SignalSemaphoreCount uint32
	PSignalSemaphores    uintptr
}

// PresentInfoKHR mirrors VkPresentInfoKHR.
type PresentInfoKHR struct {
	SType              StructureType
	PNext              uintptr
	WaitSemaphoreCount uint32
	PWaitSemaphores    uintptr
	SwapchainCount     uint32
	PSwapchains        uintptr
	PImageIndices      uintptr
	PResults           uintptr
}

// FenceCreateInfo mirrors VkFenceCreateInfo.
type FenceCreateInfo struct {
	SType StructureType
	PNext uintptr
	Flags FenceCreateFlags
}

// SemaphoreCreateInfo mirrors VkSemaphoreCreateInfo.
type SemaphoreCreateInfo struct {
	SType StructureType
	PNext uintptr
	Flags uint32
}

// SwapchainCreateInfoKHR mirrors VkSwapchainCreateInfoKHR.
type SwapchainCreateInfoKHR struct {
	SType                 StructureType
	PNext                 uintptr
	Flags                 uint32
	Surface               SurfaceKHR
	MinImageCount         uint32
	ImageFormat           Format
	ImageColorSpace       ColorSpaceKHR
	ImageExtent           Extent2D
	ImageArrayLayers      uint32
	ImageUsage            uint32
	ImageSharingMode      int32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   uintptr
	PreTransform          uint32
	CompositeAlpha        uint32
	PresentMode           PresentModeKHR
	Clipped               uint32
	OldSwapchain          SwapchainKHR
}

// Extent2D mirrors VkExtent2D.
type Extent2D struct {
	Width  uint32
	Height uint32
}

// Extent3D mirrors VkExtent3D.
type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// QueueFlags mirrors VkQueueFlags, the capability bits a queue family
// advertises via vkGetPhysicalDeviceQueueFamilyProperties.
type QueueFlags uint32

// Queue capability bits. Only the ones this module's bootstrap code
// inspects (graphics, compute) are named; the rest of VkQueueFlagBits
// (transfer, sparse binding, protected, video) are irrelevant to selecting
// the kernel's graphics/compute queue families.
const (
	QueueGraphicsBit QueueFlags = 1 << 0
	QueueComputeBit  QueueFlags = 1 << 1
)

// QueueFamilyProperties mirrors VkQueueFamilyProperties.
type QueueFamilyProperties struct {
	QueueFlags                  QueueFlags
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

// ImageSubresourceRange mirrors VkImageSubresourceRange.
type ImageSubresourceRange struct {
	AspectMask     uint32
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// ImageMemoryBarrier mirrors VkImageMemoryBarrier.
type ImageMemoryBarrier struct {
	SType               StructureType
	PNext               uintptr
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	OldLayout           ImageLayout
	NewLayout           ImageLayout
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               Image
	SubresourceRange    ImageSubresourceRange
}

// MemoryRequirements mirrors VkMemoryRequirements.
type MemoryRequirements struct {
	Size           DeviceSize
	Alignment      DeviceSize
	MemoryTypeBits uint32
}

// MemoryAllocateFlagsInfo mirrors VkMemoryAllocateFlagsInfo, chained via PNext
// when MemoryAllocateDeviceAddressBit is required (acceleration-structure and
// SBT buffers must be allocated with the device-address flag).
type MemoryAllocateFlagsInfo struct {
	SType      StructureType
	PNext      uintptr
	Flags      MemoryAllocateFlags
	DeviceMask uint32
}

// MemoryAllocateInfo mirrors VkMemoryAllocateInfo.
type MemoryAllocateInfo struct {
	SType           StructureType
	PNext           uintptr
	AllocationSize  DeviceSize
	MemoryTypeIndex uint32
}

// BufferCreateInfo mirrors VkBufferCreateInfo.
type BufferCreateInfo struct {
	SType                 StructureType
	PNext                 uintptr
	Flags                 uint32
	Size                  DeviceSize
	Usage                 BufferUsageFlags
	SharingMode           int32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   uintptr
}

// BufferDeviceAddressInfo mirrors VkBufferDeviceAddressInfo.
type BufferDeviceAddressInfo struct {
	SType  StructureType
	PNext  uintptr
	Buffer Buffer
}

// PhysicalDeviceMemoryProperties mirrors VkPhysicalDeviceMemoryProperties,
// sized to the Vulkan-spec-mandated maximums (32 types, 16 heaps).
type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [32]MemoryType
	MemoryHeapCount uint32
	MemoryHeaps     [16]MemoryHeap
}

// MemoryType mirrors VkMemoryType.
type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

// MemoryHeap mirrors VkMemoryHeap.
type MemoryHeap struct {
	Size  DeviceSize
	Flags uint32
}

// PipelineStageFlagBits is the bit-valued alias commands_manual.go's
// timestamp wrapper expects; same underlying bits as PipelineStageFlags.
type PipelineStageFlagBits = PipelineStageFlags

// QueryResultFlags mirrors VkQueryResultFlags bits.
type QueryResultFlags uint32

const (
	QueryResult64Bit QueryResultFlags = 0x00000001
	QueryResultWaitBit QueryResultFlags = 0x00000002
)

// SemaphoreWaitInfo mirrors VkSemaphoreWaitInfo (timeline semaphores).
type SemaphoreWaitInfo struct {
	SType          StructureType
	PNext          uintptr
	Flags          uint32
	SemaphoreCount uint32
	PSemaphores    uintptr
	PValues        uintptr
}
