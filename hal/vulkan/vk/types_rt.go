// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// Acceleration-structure and ray-tracing-pipeline types (VK_KHR_acceleration_structure,
// VK_KHR_ray_tracing_pipeline). These extensions have no presence in the
// teacher's generated core (a generic WebGPU backend never touches them), so
// every type and entry point below is new, following the layout and naming
// convention the rest of this package uses for core Vulkan.

// AccelerationStructureTypeKHR mirrors VkAccelerationStructureTypeKHR.
type AccelerationStructureTypeKHR int32

const (
	AccelerationStructureTypeTopLevelKHR    AccelerationStructureTypeKHR = 0
	AccelerationStructureTypeBottomLevelKHR AccelerationStructureTypeKHR = 1
)

// BuildAccelerationStructureModeKHR mirrors VkBuildAccelerationStructureModeKHR.
type BuildAccelerationStructureModeKHR int32

const (
	BuildAccelerationStructureModeBuildKHR BuildAccelerationStructureModeKHR = 0
)

// BuildAccelerationStructureFlagsKHR mirrors VkBuildAccelerationStructureFlagsKHR bits.
type BuildAccelerationStructureFlagsKHR uint32

const (
	BuildAccelerationStructurePreferFastTraceBitKHR BuildAccelerationStructureFlagsKHR = 0x00000001
)

// GeometryTypeKHR mirrors VkGeometryTypeKHR.
type GeometryTypeKHR int32

const (
	GeometryTypeTrianglesKHR GeometryTypeKHR = 0
	GeometryTypeInstancesKHR GeometryTypeKHR = 2
)

// GeometryFlagsKHR mirrors VkGeometryFlagsKHR bits.
type GeometryFlagsKHR uint32

const GeometryOpaqueBitKHR GeometryFlagsKHR = 0x00000001

// IndexType mirrors VkIndexType.
type IndexType int32

const (
	IndexTypeUint16 IndexType = 0
	IndexTypeUint32 IndexType = 1
)

// AccelerationStructureCreateInfoKHR mirrors VkAccelerationStructureCreateInfoKHR.
type AccelerationStructureCreateInfoKHR struct {
	SType         StructureType
	PNext         uintptr
	CreateFlags   uint32
	Buffer        Buffer
	Offset        DeviceSize
	Size          DeviceSize
	Type          AccelerationStructureTypeKHR
	DeviceAddress DeviceAddress
}

// DeviceOrHostAddressConstKHR is a union of a device address and a host
// pointer; this module only ever populates the device-address arm (all
// geometry/instance buffers used for builds are device-local or
// device-addressable host-visible buffers per spec.md §4.6).
type DeviceOrHostAddressConstKHR struct {
	DeviceAddress DeviceAddress
}

// DeviceOrHostAddressKHR is the non-const counterpart, used for scratch data.
type DeviceOrHostAddressKHR struct {
	DeviceAddress DeviceAddress
}

// AccelerationStructureGeometryTrianglesDataKHR mirrors the Vulkan struct of
// the same name, restricted to the fields GeometryData in spec.md §4.6 needs.
type AccelerationStructureGeometryTrianglesDataKHR struct {
	SType         StructureType
	PNext         uintptr
	VertexFormat  Format
	VertexData    DeviceOrHostAddressConstKHR
	VertexStride  DeviceSize
	MaxVertex     uint32
	IndexType     IndexType
	IndexData     DeviceOrHostAddressConstKHR
	TransformData DeviceOrHostAddressConstKHR
}

// AccelerationStructureGeometryInstancesDataKHR mirrors the Vulkan struct,
// used for TLAS builds (spec.md §4.6 InstanceData).
type AccelerationStructureGeometryInstancesDataKHR struct {
	SType           StructureType
	PNext           uintptr
	ArrayOfPointers uint32
	Data            DeviceOrHostAddressConstKHR
}

// accelerationStructureGeometryDataKHR is the union payload; Go has no
// native union, so both variants are carried and the active one is selected
// by GeometryType in AccelerationStructureGeometryKHR, matching how the
// teacher's convert.go picks one branch of a tagged Resource kind.
type accelerationStructureGeometryDataKHR struct {
	Triangles AccelerationStructureGeometryTrianglesDataKHR
	Instances AccelerationStructureGeometryInstancesDataKHR
}

// AccelerationStructureGeometryKHR mirrors VkAccelerationStructureGeometryKHR.
type AccelerationStructureGeometryKHR struct {
	SType        StructureType
	PNext        uintptr
	GeometryType GeometryTypeKHR
	Geometry     accelerationStructureGeometryDataKHR
	Flags        GeometryFlagsKHR
}

// SetTriangles populates the union with triangle geometry data.
func (g *AccelerationStructureGeometryKHR) SetTriangles(d AccelerationStructureGeometryTrianglesDataKHR) {
	g.GeometryType = GeometryTypeTrianglesKHR
	g.Geometry.Triangles = d
}

// SetInstances populates the union with instance geometry data.
func (g *AccelerationStructureGeometryKHR) SetInstances(d AccelerationStructureGeometryInstancesDataKHR) {
	g.GeometryType = GeometryTypeInstancesKHR
	g.Geometry.Instances = d
}

// AccelerationStructureBuildGeometryInfoKHR mirrors the Vulkan struct.
type AccelerationStructureBuildGeometryInfoKHR struct {
	SType                     StructureType
	PNext                     uintptr
	Type                      AccelerationStructureTypeKHR
	Flags                     BuildAccelerationStructureFlagsKHR
	Mode                      BuildAccelerationStructureModeKHR
	SrcAccelerationStructure  AccelerationStructureKHR
	DstAccelerationStructure  AccelerationStructureKHR
	GeometryCount             uint32
	PGeometries               uintptr
	PpGeometries              uintptr
	ScratchData               DeviceOrHostAddressKHR
}

// AccelerationStructureBuildRangeInfoKHR mirrors the Vulkan struct.
type AccelerationStructureBuildRangeInfoKHR struct {
	PrimitiveCount  uint32
	PrimitiveOffset uint32
	FirstVertex     uint32
	TransformOffset uint32
}

// AccelerationStructureBuildSizesInfoKHR mirrors the Vulkan struct.
type AccelerationStructureBuildSizesInfoKHR struct {
	SType                       StructureType
	PNext                       uintptr
	AccelerationStructureSize   DeviceSize
	UpdateScratchSize           DeviceSize
	BuildScratchSize            DeviceSize
}

// AccelerationStructureDeviceAddressInfoKHR mirrors the Vulkan struct.
type AccelerationStructureDeviceAddressInfoKHR struct {
	SType                  StructureType
	PNext                  uintptr
	AccelerationStructure AccelerationStructureKHR
}

// TransformMatrixKHR mirrors VkTransformMatrixKHR: a row-major 3x4 affine
// transform, matching spec.md §3 InstanceData's "3x4 transform".
type TransformMatrixKHR struct {
	Matrix [3][4]float32
}

// AccelerationStructureInstanceKHR mirrors VkAccelerationStructureInstanceKHR.
// Field packing matches the Vulkan spec bit layout: the low 24 bits of
// instanceCustomIndexAndMask hold the custom index, the high 8 bits the
// mask; instanceShaderBindingTableRecordOffsetAndFlags packs similarly.
type AccelerationStructureInstanceKHR struct {
	Transform                              TransformMatrixKHR
	InstanceCustomIndexAndMask             uint32
	InstanceShaderBindingTableRecordOffsetAndFlags uint32
	AccelerationStructureReference          DeviceAddress
}

// NewAccelerationStructureInstanceKHR packs spec.md §3's InstanceData fields
// into the Vulkan wire layout.
func NewAccelerationStructureInstanceKHR(transform TransformMatrixKHR, customIndex uint32, mask uint8, sbtOffset uint32, flags uint8, blasAddress DeviceAddress) AccelerationStructureInstanceKHR {
	return AccelerationStructureInstanceKHR{
		Transform:                       transform,
		InstanceCustomIndexAndMask:      (customIndex & 0x00FFFFFF) | (uint32(mask) << 24),
		InstanceShaderBindingTableRecordOffsetAndFlags: (sbtOffset & 0x00FFFFFF) | (uint32(flags) << 24),
		AccelerationStructureReference:  blasAddress,
	}
}

// --- Ray tracing pipeline ---

// ShaderStageFlagBits mirrors VkShaderStageFlagBits bits used by RT shader groups.
type ShaderStageFlagBits uint32

const (
	ShaderStageRaygenBitKHR     ShaderStageFlagBits = 0x00000100
	ShaderStageMissBitKHR       ShaderStageFlagBits = 0x00000200
	ShaderStageClosestHitBitKHR ShaderStageFlagBits = 0x00000400
)

// RayTracingShaderGroupTypeKHR mirrors VkRayTracingShaderGroupTypeKHR.
type RayTracingShaderGroupTypeKHR int32

const (
	RayTracingShaderGroupTypeGeneralKHR           RayTracingShaderGroupTypeKHR = 0
	RayTracingShaderGroupTypeTrianglesHitGroupKHR RayTracingShaderGroupTypeKHR = 1
)

const ShaderUnusedKHR uint32 = 0xFFFFFFFF

// RayTracingShaderGroupCreateInfoKHR mirrors the Vulkan struct.
type RayTracingShaderGroupCreateInfoKHR struct {
	SType              StructureType
	PNext              uintptr
	Type               RayTracingShaderGroupTypeKHR
	GeneralShader      uint32
	ClosestHitShader   uint32
	AnyHitShader       uint32
	IntersectionShader uint32
}

// PipelineShaderStageCreateInfo mirrors VkPipelineShaderStageCreateInfo.
type PipelineShaderStageCreateInfo struct {
	SType  StructureType
	PNext  uintptr
	Flags  uint32
	Stage  ShaderStageFlagBits
	Module ShaderModule
	PName  uintptr
}

// RayTracingPipelineCreateInfoKHR mirrors the Vulkan struct, restricted to
// the fields this module populates.
type RayTracingPipelineCreateInfoKHR struct {
	SType                        StructureType
	PNext                        uintptr
	Flags                        uint32
	StageCount                   uint32
	PStages                      uintptr
	GroupCount                   uint32
	PGroups                      uintptr
	MaxPipelineRayRecursionDepth uint32
	Layout                       PipelineLayout
	BasePipelineHandle           Pipeline
	BasePipelineIndex            int32
}

// PhysicalDeviceRayTracingPipelinePropertiesKHR mirrors the Vulkan struct;
// ShaderGroupHandleSize and ShaderGroupBaseAlignment drive §4.7's SBT stride.
type PhysicalDeviceRayTracingPipelinePropertiesKHR struct {
	SType                                      StructureType
	PNext                                      uintptr
	ShaderGroupHandleSize                      uint32
	MaxRayRecursionDepth                       uint32
	MaxShaderGroupStride                       uint32
	ShaderGroupBaseAlignment                   uint32
	ShaderGroupHandleCaptureReplaySize         uint32
	MaxRayDispatchInvocationCount              uint32
	ShaderGroupHandleAlignment                 uint32
	MaxRayHitAttributeSize                     uint32
}

// StridedDeviceAddressRegionKHR mirrors the Vulkan struct: one SBT region
// (raygen, miss, hit, or callable) handed to vkCmdTraceRaysKHR.
type StridedDeviceAddressRegionKHR struct {
	DeviceAddress DeviceAddress
	Stride        DeviceSize
	Size          DeviceSize
}
