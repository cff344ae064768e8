// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/rtframe/hal"
	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

// MaxFramesInFlight is the module's fixed pipeline depth.
const MaxFramesInFlight = 3

// surfaceFormatRanking is the preference order for the presented color
// format, best first. The first entry the device actually supports wins;
// if none of these match, the first format the device reports is used.
var surfaceFormatRanking = []vk.SurfaceFormatKHR{
	{Format: vk.FormatA2B10G10R10UnormPack32, ColorSpace: vk.ColorSpaceHdr10HlgEXT},
	{Format: vk.FormatA2B10G10R10UnormPack32, ColorSpace: vk.ColorSpaceHdr10St2084EXT},
	{Format: vk.FormatR16G16B16A16Sfloat, ColorSpace: vk.ColorSpaceExtendedSrgbLinearEXT},
	{Format: vk.FormatR16G16B16A16Sfloat, ColorSpace: vk.ColorSpaceBt709LinearEXT},
	{Format: vk.FormatB8G8R8A8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinearKHR},
}

// presentModeRanking is the preference order for present mode, best first.
var presentModeRanking = []vk.PresentModeKHR{
	vk.PresentModeImmediateKHR,
	vk.PresentModeMailboxKHR,
	vk.PresentModeFifoKHR,
}

// depthFormat is the depth-buffer format this module targets. Selecting
// among D32_SFLOAT / D32_SFLOAT_S8_UINT / D24_UNORM_S8_UINT per device
// support requires vkGetPhysicalDeviceFormatProperties, which this module's
// minimal surface does not bind; D32_SFLOAT is universally supported on
// desktop-class Vulkan 1.0 drivers and is used unconditionally.
const depthFormat = vk.FormatD32Sfloat

// hdrIntermediateFormat is the per-frame-slot HDR render target format.
const hdrIntermediateFormat = vk.FormatR16G16B16A16Sfloat

const (
	imageTypeD2             int32 = 1
	imageTiling2DOptimal    int32 = 0
	sampleCount1            int32 = 1
	sharingModeExclusive    int32 = 0
	imageViewType2D         int32 = 1
	componentSwizzleIdentity int32 = 0

	imageUsageTransferSrcBit          uint32 = 0x00000001
	imageUsageTransferDstBit          uint32 = 0x00000002
	imageUsageSampledBit              uint32 = 0x00000004
	imageUsageStorageBit              uint32 = 0x00000008
	imageUsageColorAttachmentBit      uint32 = 0x00000010
	imageUsageDepthStencilAttachmentBit uint32 = 0x00000020

	imageAspectColorBit   uint32 = 0x00000001
	imageAspectDepthBit   uint32 = 0x00000002
	imageAspectStencilBit uint32 = 0x00000004
)

// imageCreateInfo mirrors VkImageCreateInfo. Kept package-local: Swapchain
// is the only component that creates images directly (BVH/SBT buffers go
// through GpuContext.AllocateMemory + vkCreateBuffer instead).
type imageCreateInfo struct {
	SType                 vk.StructureType
	PNext                 uintptr
	Flags                 uint32
	ImageType             int32
	Format                vk.Format
	Extent                vk.Extent3D
	MipLevels             uint32
	ArrayLayers           uint32
	Samples               int32
	Tiling                int32
	Usage                 uint32
	SharingMode           int32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   uintptr
	InitialLayout         vk.ImageLayout
}

// componentMapping mirrors VkComponentMapping.
type componentMapping struct {
	R, G, B, A int32
}

// imageViewCreateInfo mirrors VkImageViewCreateInfo.
type imageViewCreateInfo struct {
	SType            vk.StructureType
	PNext            uintptr
	Flags            uint32
	Image            vk.Image
	ViewType         int32
	Format           vk.Format
	Components       componentMapping
	SubresourceRange vk.ImageSubresourceRange
}

// SwapImage is one entry in the swapchain's image ring: the presentable
// color image plus its matching depth buffer and the per-image semaphore
// `present` waits on.
type SwapImage struct {
	Color       vk.Image
	ColorView   vk.ImageView
	Depth       vk.Image
	DepthView   vk.ImageView
	DepthMemory vk.DeviceMemory

	// RenderFinished is signaled by the graphics submit and waited on by
	// present; one per swap image rather than per frame slot, since an
	// image can still be presenting when a different frame slot begins.
	RenderFinished vk.Semaphore
}

// hdrTarget is one frame slot's intermediate HDR render target.
type hdrTarget struct {
	Image  vk.Image
	View   vk.ImageView
	Memory vk.DeviceMemory
}

// Swapchain owns the presentable surface, its image ring, and the frame
// pacing sync primitives described in spec.md's state machine: per-slot
// image_acquired/frame_fence/compute_finished/compute_fence arrays plus a
// per-image render_finished semaphore.
type Swapchain struct {
	ctx            *GpuContext
	physicalDevice vk.PhysicalDevice
	surface        vk.SurfaceKHR

	handle      vk.SwapchainKHR
	format      vk.SurfaceFormatKHR
	presentMode vk.PresentModeKHR
	extent      vk.Extent2D

	images []SwapImage
	hdr    [MaxFramesInFlight]hdrTarget

	imageAcquired   [MaxFramesInFlight]vk.Semaphore
	frameFence      [MaxFramesInFlight]vk.Fence
	computeFinished [MaxFramesInFlight]vk.Semaphore
	computeFence    [MaxFramesInFlight]vk.Fence

	currentFrame uint32

	// computeEnabledNext is consumed by the next BeginFrame/EndFrame pair;
	// set via SetComputeEnabledThisFrame before calling BeginFrame.
	computeEnabledNext bool
}

// NewSwapchain creates a swapchain for surface on physicalDevice/ctx.Device,
// sized to initialExtent, and allocates its full sync-primitive set.
func NewSwapchain(ctx *GpuContext, physicalDevice vk.PhysicalDevice, surface vk.SurfaceKHR, initialExtent vk.Extent2D) (*Swapchain, error) {
	s := &Swapchain{
		ctx:            ctx,
		physicalDevice: physicalDevice,
		surface:        surface,
	}

	format, err := s.selectSurfaceFormat()
	if err != nil {
		return nil, err
	}
	s.format = format
	s.presentMode = s.selectPresentMode()

	if err := s.createSyncObjects(); err != nil {
		return nil, err
	}
	if err := s.buildSwapObjects(initialExtent, 0); err != nil {
		s.destroySyncObjects()
		return nil, err
	}
	return s, nil
}

func (s *Swapchain) selectSurfaceFormat() (vk.SurfaceFormatKHR, error) {
	var count uint32
	if result := s.ctx.Cmds.GetPhysicalDeviceSurfaceFormatsKHR(s.physicalDevice, s.surface, &count, nil); result != vk.Success || count == 0 {
		return vk.SurfaceFormatKHR{}, fmt.Errorf("%w: vkGetPhysicalDeviceSurfaceFormatsKHR (count): %d", ErrInitialization, result)
	}
	formats := make([]vk.SurfaceFormatKHR, count)
	if result := s.ctx.Cmds.GetPhysicalDeviceSurfaceFormatsKHR(s.physicalDevice, s.surface, &count, &formats[0]); result != vk.Success {
		return vk.SurfaceFormatKHR{}, fmt.Errorf("%w: vkGetPhysicalDeviceSurfaceFormatsKHR: %d", ErrInitialization, result)
	}
	return rankSurfaceFormat(formats), nil
}

// rankSurfaceFormat picks the best format/color-space pair from available
// against surfaceFormatRanking's preference order, falling back to
// available[0] if nothing on the list is supported. available must be
// non-empty.
func rankSurfaceFormat(available []vk.SurfaceFormatKHR) vk.SurfaceFormatKHR {
	for _, preferred := range surfaceFormatRanking {
		for _, f := range available {
			if f.Format == preferred.Format && f.ColorSpace == preferred.ColorSpace {
				return f
			}
		}
	}
	return available[0]
}

func (s *Swapchain) selectPresentMode() vk.PresentModeKHR {
	var count uint32
	if result := s.ctx.Cmds.GetPhysicalDeviceSurfacePresentModesKHR(s.physicalDevice, s.surface, &count, nil); result != vk.Success || count == 0 {
		return vk.PresentModeFifoKHR
	}
	modes := make([]vk.PresentModeKHR, count)
	if result := s.ctx.Cmds.GetPhysicalDeviceSurfacePresentModesKHR(s.physicalDevice, s.surface, &count, &modes[0]); result != vk.Success {
		return vk.PresentModeFifoKHR
	}
	return rankPresentMode(modes)
}

// rankPresentMode picks the best mode from available against
// presentModeRanking's preference order, falling back to FIFO (always
// supported per the Vulkan spec) if nothing on the list is present.
func rankPresentMode(available []vk.PresentModeKHR) vk.PresentModeKHR {
	for _, preferred := range presentModeRanking {
		for _, m := range available {
			if m == preferred {
				return preferred
			}
		}
	}
	return vk.PresentModeFifoKHR
}

func (s *Swapchain) createSyncObjects() error {
	semInfo := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
	fenceInfo := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo, Flags: vk.FenceCreateSignaledBit}

	for i := 0; i < MaxFramesInFlight; i++ {
		if result := s.ctx.Cmds.CreateSemaphore(s.ctx.Device, &semInfo, &s.imageAcquired[i]); result != vk.Success {
			return fmt.Errorf("%w: vkCreateSemaphore (image_acquired[%d]): %d", ErrInitialization, i, result)
		}
		if result := s.ctx.Cmds.CreateFence(s.ctx.Device, &fenceInfo, &s.frameFence[i]); result != vk.Success {
			return fmt.Errorf("%w: vkCreateFence (frame_fence[%d]): %d", ErrInitialization, i, result)
		}
		if result := s.ctx.Cmds.CreateSemaphore(s.ctx.Device, &semInfo, &s.computeFinished[i]); result != vk.Success {
			return fmt.Errorf("%w: vkCreateSemaphore (compute_finished[%d]): %d", ErrInitialization, i, result)
		}
		if result := s.ctx.Cmds.CreateFence(s.ctx.Device, &fenceInfo, &s.computeFence[i]); result != vk.Success {
			return fmt.Errorf("%w: vkCreateFence (compute_fence[%d]): %d", ErrInitialization, i, result)
		}
	}
	return nil
}

func (s *Swapchain) destroySyncObjects() {
	for i := 0; i < MaxFramesInFlight; i++ {
		if s.imageAcquired[i] != 0 {
			s.ctx.Cmds.DestroySemaphore(s.ctx.Device, s.imageAcquired[i])
		}
		if s.frameFence[i] != 0 {
			s.ctx.Cmds.DestroyFence(s.ctx.Device, s.frameFence[i])
		}
		if s.computeFinished[i] != 0 {
			s.ctx.Cmds.DestroySemaphore(s.ctx.Device, s.computeFinished[i])
		}
		if s.computeFence[i] != 0 {
			s.ctx.Cmds.DestroyFence(s.ctx.Device, s.computeFence[i])
		}
	}
}

// buildSwapObjects creates the VkSwapchainKHR, its images/views, the depth
// ring, and the HDR intermediate targets, reusing oldHandle when recreating
// so the presentation engine can hand over in-flight images.
func (s *Swapchain) buildSwapObjects(extent vk.Extent2D, oldHandle vk.SwapchainKHR) error {
	if extent.Width == 0 || extent.Height == 0 {
		s.extent = extent
		return nil
	}

	var caps vk.SurfaceCapabilitiesKHR
	if result := s.ctx.Cmds.GetPhysicalDeviceSurfaceCapabilitiesKHR(s.physicalDevice, s.surface, &caps); result != vk.Success {
		return fmt.Errorf("%w: vkGetPhysicalDeviceSurfaceCapabilitiesKHR: %d", ErrInitialization, result)
	}

	minImages := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && minImages > caps.MaxImageCount {
		minImages = caps.MaxImageCount
	}

	createInfo := vk.SwapchainCreateInfoKHR{
		SType:            vk.StructureTypeSwapchainCreateInfoKHR,
		Surface:          s.surface,
		MinImageCount:    minImages,
		ImageFormat:      s.format.Format,
		ImageColorSpace:  s.format.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       imageUsageColorAttachmentBit | imageUsageTransferDstBit,
		ImageSharingMode: sharingModeExclusive,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   1, // VK_COMPOSITE_ALPHA_OPAQUE_BIT_KHR
		PresentMode:      s.presentMode,
		Clipped:          1,
		OldSwapchain:     oldHandle,
	}

	var handle vk.SwapchainKHR
	if result := s.ctx.Cmds.CreateSwapchainKHR(s.ctx.Device, &createInfo, &handle); result != vk.Success {
		return fmt.Errorf("%w: vkCreateSwapchainKHR: %d", ErrInitialization, result)
	}
	s.handle = handle
	s.extent = extent

	var count uint32
	if result := s.ctx.Cmds.GetSwapchainImagesKHR(s.ctx.Device, handle, &count, nil); result != vk.Success {
		return fmt.Errorf("%w: vkGetSwapchainImagesKHR (count): %d", ErrInitialization, result)
	}
	rawImages := make([]vk.Image, count)
	if result := s.ctx.Cmds.GetSwapchainImagesKHR(s.ctx.Device, handle, &count, &rawImages[0]); result != vk.Success {
		return fmt.Errorf("%w: vkGetSwapchainImagesKHR: %d", ErrInitialization, result)
	}

	s.images = make([]SwapImage, count)
	for i := range s.images {
		if err := s.buildSwapImage(&s.images[i], rawImages[i], extent); err != nil {
			return err
		}
	}

	for i := 0; i < MaxFramesInFlight; i++ {
		if err := s.buildHDRTarget(&s.hdr[i], extent); err != nil {
			return err
		}
	}
	return nil
}

func (s *Swapchain) buildSwapImage(out *SwapImage, image vk.Image, extent vk.Extent2D) error {
	out.Color = image

	colorViewInfo := imageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: imageViewType2D,
		Format:   s.format.Format,
		Components: componentMapping{
			R: componentSwizzleIdentity, G: componentSwizzleIdentity,
			B: componentSwizzleIdentity, A: componentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{AspectMask: imageAspectColorBit, LevelCount: 1, LayerCount: 1},
	}
	if result := s.ctx.Cmds.CreateImageView(s.ctx.Device, uintptr(unsafe.Pointer(&colorViewInfo)), &out.ColorView); result != vk.Success {
		return fmt.Errorf("%w: vkCreateImageView (color): %d", ErrInitialization, result)
	}

	depthInfo := imageCreateInfo{
		SType:       vk.StructureTypeImageCreateInfo,
		ImageType:   imageTypeD2,
		Format:      depthFormat,
		Extent:      vk.Extent3D{Width: extent.Width, Height: extent.Height, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Samples:     sampleCount1,
		Tiling:      imageTiling2DOptimal,
		Usage:       imageUsageDepthStencilAttachmentBit,
		SharingMode: sharingModeExclusive,
	}
	if result := s.ctx.Cmds.CreateImage(s.ctx.Device, uintptr(unsafe.Pointer(&depthInfo)), &out.Depth); result != vk.Success {
		return fmt.Errorf("%w: vkCreateImage (depth): %d", ErrInitialization, result)
	}
	var req vk.MemoryRequirements
	s.ctx.Cmds.GetImageMemoryRequirements(s.ctx.Device, out.Depth, &req)
	memory, err := s.ctx.AllocateMemory(req.Size, req.MemoryTypeBits, vk.MemoryPropertyDeviceLocalBit, false)
	if err != nil {
		return err
	}
	out.DepthMemory = memory
	if result := s.ctx.Cmds.BindImageMemory(s.ctx.Device, out.Depth, memory, 0); result != vk.Success {
		return fmt.Errorf("%w: vkBindImageMemory (depth): %d", ErrInitialization, result)
	}

	depthViewInfo := imageViewCreateInfo{
		SType:            vk.StructureTypeImageViewCreateInfo,
		Image:            out.Depth,
		ViewType:         imageViewType2D,
		Format:           depthFormat,
		SubresourceRange: vk.ImageSubresourceRange{AspectMask: imageAspectDepthBit, LevelCount: 1, LayerCount: 1},
	}
	if result := s.ctx.Cmds.CreateImageView(s.ctx.Device, uintptr(unsafe.Pointer(&depthViewInfo)), &out.DepthView); result != vk.Success {
		return fmt.Errorf("%w: vkCreateImageView (depth): %d", ErrInitialization, result)
	}

	semInfo := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
	if result := s.ctx.Cmds.CreateSemaphore(s.ctx.Device, &semInfo, &out.RenderFinished); result != vk.Success {
		return fmt.Errorf("%w: vkCreateSemaphore (render_finished): %d", ErrInitialization, result)
	}
	return nil
}

func (s *Swapchain) buildHDRTarget(out *hdrTarget, extent vk.Extent2D) error {
	info := imageCreateInfo{
		SType:       vk.StructureTypeImageCreateInfo,
		ImageType:   imageTypeD2,
		Format:      hdrIntermediateFormat,
		Extent:      vk.Extent3D{Width: extent.Width, Height: extent.Height, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Samples:     sampleCount1,
		Tiling:      imageTiling2DOptimal,
		Usage:       imageUsageColorAttachmentBit | imageUsageSampledBit | imageUsageStorageBit,
		SharingMode: sharingModeExclusive,
	}
	if result := s.ctx.Cmds.CreateImage(s.ctx.Device, uintptr(unsafe.Pointer(&info)), &out.Image); result != vk.Success {
		return fmt.Errorf("%w: vkCreateImage (hdr): %d", ErrInitialization, result)
	}
	var req vk.MemoryRequirements
	s.ctx.Cmds.GetImageMemoryRequirements(s.ctx.Device, out.Image, &req)
	memory, err := s.ctx.AllocateMemory(req.Size, req.MemoryTypeBits, vk.MemoryPropertyDeviceLocalBit, false)
	if err != nil {
		return err
	}
	out.Memory = memory
	if result := s.ctx.Cmds.BindImageMemory(s.ctx.Device, out.Image, memory, 0); result != vk.Success {
		return fmt.Errorf("%w: vkBindImageMemory (hdr): %d", ErrInitialization, result)
	}

	viewInfo := imageViewCreateInfo{
		SType:            vk.StructureTypeImageViewCreateInfo,
		Image:            out.Image,
		ViewType:         imageViewType2D,
		Format:           hdrIntermediateFormat,
		SubresourceRange: vk.ImageSubresourceRange{AspectMask: imageAspectColorBit, LevelCount: 1, LayerCount: 1},
	}
	if result := s.ctx.Cmds.CreateImageView(s.ctx.Device, uintptr(unsafe.Pointer(&viewInfo)), &out.View); result != vk.Success {
		return fmt.Errorf("%w: vkCreateImageView (hdr): %d", ErrInitialization, result)
	}
	return nil
}

func (s *Swapchain) destroySwapObjects() {
	for i := range s.images {
		img := &s.images[i]
		if img.ColorView != 0 {
			s.ctx.Cmds.DestroyImageView(s.ctx.Device, img.ColorView)
		}
		if img.DepthView != 0 {
			s.ctx.Cmds.DestroyImageView(s.ctx.Device, img.DepthView)
		}
		if img.Depth != 0 {
			s.ctx.Cmds.DestroyImage(s.ctx.Device, img.Depth)
		}
		if img.DepthMemory != 0 {
			s.ctx.Cmds.FreeMemory(s.ctx.Device, img.DepthMemory)
		}
		if img.RenderFinished != 0 {
			s.ctx.Cmds.DestroySemaphore(s.ctx.Device, img.RenderFinished)
		}
	}
	s.images = nil

	for i := range s.hdr {
		h := &s.hdr[i]
		if h.View != 0 {
			s.ctx.Cmds.DestroyImageView(s.ctx.Device, h.View)
		}
		if h.Image != 0 {
			s.ctx.Cmds.DestroyImage(s.ctx.Device, h.Image)
		}
		if h.Memory != 0 {
			s.ctx.Cmds.FreeMemory(s.ctx.Device, h.Memory)
		}
		*h = hdrTarget{}
	}
}

// Extent returns the swapchain's current extent in pixels.
func (s *Swapchain) Extent() vk.Extent2D { return s.extent }

// CurrentFrame returns the frame-in-flight slot that the next BeginFrame
// will use.
func (s *Swapchain) CurrentFrame() uint32 { return s.currentFrame }

// SetComputeEnabledThisFrame marks whether the caller will submit a compute
// branch before the next EndFrame's graphics submit; must be called before
// BeginFrame returns control to the layer stack, since begin_frame does not
// itself record the compute submission.
func (s *Swapchain) SetComputeEnabledThisFrame(enabled bool) {
	s.computeEnabledNext = enabled
}

// Recreate waits for every in-flight frame, tears down the image ring and
// HDR targets, and rebuilds them at newExtent, preserving every sync
// primitive. Calling Recreate twice with the same extent is idempotent: the
// second call observes the same extent already in effect and still performs
// a full (but behaviorally equivalent) rebuild.
func (s *Swapchain) Recreate(newExtent vk.Extent2D) error {
	for i := 0; i < MaxFramesInFlight; i++ {
		fences := []vk.Fence{s.frameFence[i], s.computeFence[i]}
		//nolint:gosec // G115: fixed small count
		s.ctx.Cmds.WaitForFences(s.ctx.Device, uint32(len(fences)), &fences[0], 1, ^uint64(0))
	}

	oldHandle := s.handle
	s.destroySwapObjects()
	if oldHandle != 0 {
		s.ctx.Cmds.DestroySwapchainKHR(s.ctx.Device, oldHandle)
	}
	s.handle = 0

	return s.buildSwapObjects(newExtent, 0)
}

// BeginFrame executes the acquire half of the per-frame state machine: wait
// on this slot's frame fence, acquire the next image, reset the fence, and
// begin+transition the primary graphics command buffer to GENERAL. A
// zero-area window is reported by returning hal.ErrZeroArea before any
// fence wait or acquire; callers must skip the rest of the frame in that
// case.
func (s *Swapchain) BeginFrame(graphicsCmd vk.CommandBuffer) (imageIndex uint32, err error) {
	if s.extent.Width == 0 || s.extent.Height == 0 {
		return 0, hal.ErrZeroArea
	}

	i := s.currentFrame
	fence := s.frameFence[i]
	if result := s.ctx.Cmds.WaitForFences(s.ctx.Device, 1, &fence, 1, ^uint64(0)); result != vk.Success {
		return 0, fmt.Errorf("%w: vkWaitForFences (frame_fence[%d]): %d", ErrInvalidState, i, result)
	}

	imageIndex, recreated, err := s.acquireWithRecreate(i)
	if err != nil {
		return 0, err
	}
	if recreated {
		// Recreate keeps the existing frame fences; re-wait on this slot's
		// fence after the retried acquire to keep the invariant that frame_fence[i] is unsignaled
		// only between acquire and the matching end_frame.
		if result := s.ctx.Cmds.WaitForFences(s.ctx.Device, 1, &s.frameFence[i], 1, ^uint64(0)); result != vk.Success {
			return 0, fmt.Errorf("%w: vkWaitForFences (frame_fence[%d] post-recreate): %d", ErrInvalidState, i, result)
		}
	}

	if result := s.ctx.Cmds.ResetFences(s.ctx.Device, 1, &s.frameFence[i]); result != vk.Success {
		return 0, fmt.Errorf("%w: vkResetFences (frame_fence[%d]): %d", ErrInvalidState, i, result)
	}

	beginInfo := vk.CommandBufferBeginInfo{SType: vk.StructureTypeCommandBufferBeginInfo}
	if result := s.ctx.Cmds.BeginCommandBuffer(graphicsCmd, &beginInfo); result != vk.Success {
		return 0, fmt.Errorf("%w: vkBeginCommandBuffer (primary graphics): %d", ErrInitialization, result)
	}
	s.ctx.TransitionImageLayout(graphicsCmd, s.images[imageIndex].Color, vk.ImageLayoutUndefined, vk.ImageLayoutGeneral, imageAspectColorBit)

	return imageIndex, nil
}

// acquireWithRecreate calls vkAcquireNextImageKHR, recreating the swapchain
// and retrying exactly once on OUT_OF_DATE. A SUBOPTIMAL result is accepted
// as success: the acquired image is used and the swapchain is not recreated.
func (s *Swapchain) acquireWithRecreate(slot uint32) (imageIndex uint32, recreated bool, err error) {
	result := s.ctx.Cmds.AcquireNextImageKHR(s.ctx.Device, s.handle, ^uint64(0), s.imageAcquired[slot], 0, &imageIndex)
	switch result {
	case vk.Success, vk.SuboptimalKHR:
		return imageIndex, false, nil
	case vk.ErrorOutOfDateKHR:
		if err := s.Recreate(s.extent); err != nil {
			return 0, false, err
		}
		result = s.ctx.Cmds.AcquireNextImageKHR(s.ctx.Device, s.handle, ^uint64(0), s.imageAcquired[slot], 0, &imageIndex)
		if result != vk.Success && result != vk.SuboptimalKHR {
			return 0, false, fmt.Errorf("%w: vkAcquireNextImageKHR after recreate: %d", ErrInitialization, result)
		}
		return imageIndex, true, nil
	case vk.ErrorSurfaceLostKHR:
		return 0, false, hal.ErrSurfaceLost
	default:
		return 0, false, fmt.Errorf("%w: vkAcquireNextImageKHR: %d", ErrInitialization, result)
	}
}

// EndFrame executes the submit half of the per-frame state machine: final
// layout transition to PRESENT_SRC, end recording, submit with the
// acquire/compute wait set, present, and advance current_frame. The wait set
// includes compute_finished only when SetComputeEnabledThisFrame(true) was
// called for this frame.
func (s *Swapchain) EndFrame(graphicsCmd vk.CommandBuffer, imageIndex uint32) error {
	i := s.currentFrame
	img := &s.images[imageIndex]

	s.ctx.TransitionImageLayout(graphicsCmd, img.Color, vk.ImageLayoutGeneral, vk.ImageLayoutPresentSrcKHR, imageAspectColorBit)
	if result := s.ctx.Cmds.EndCommandBuffer(graphicsCmd); result != vk.Success {
		return fmt.Errorf("%w: vkEndCommandBuffer (primary graphics): %d", ErrInvalidState, result)
	}

	waitSemaphores := []vk.Semaphore{s.imageAcquired[i]}
	if s.computeEnabledNext {
		waitSemaphores = append(waitSemaphores, s.computeFinished[i])
	}
	signalSemaphores := []vk.Semaphore{img.RenderFinished}
	cmd := graphicsCmd

	submit := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   uint32(len(waitSemaphores)),
		PWaitSemaphores:      uintptr(unsafe.Pointer(&waitSemaphores[0])),
		CommandBufferCount:   1,
		PCommandBuffers:      uintptr(unsafe.Pointer(&cmd)),
		SignalSemaphoreCount: uint32(len(signalSemaphores)),
		PSignalSemaphores:    uintptr(unsafe.Pointer(&signalSemaphores[0])),
	}
	if err := s.ctx.QueueSubmit([]vk.SubmitInfo{submit}, s.frameFence[i]); err != nil {
		return err
	}

	handle := s.handle
	idx := imageIndex
	presentInfo := vk.PresentInfoKHR{
		SType:              vk.StructureTypePresentInfoKHR,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    uintptr(unsafe.Pointer(&signalSemaphores[0])),
		SwapchainCount:     1,
		PSwapchains:        uintptr(unsafe.Pointer(&handle)),
		PImageIndices:      uintptr(unsafe.Pointer(&idx)),
	}
	presentResult := s.ctx.QueuePresent(&presentInfo)
	s.computeEnabledNext = false
	s.currentFrame = (s.currentFrame + 1) % MaxFramesInFlight

	switch presentResult {
	case vk.Success, vk.SuboptimalKHR:
		return nil
	case vk.ErrorOutOfDateKHR:
		return s.Recreate(s.extent)
	case vk.ErrorSurfaceLostKHR:
		return hal.ErrSurfaceLost
	default:
		return fmt.Errorf("%w: vkQueuePresentKHR: %d", ErrInitialization, presentResult)
	}
}

// ComputeFenceAndSemaphore returns this slot's compute_fence/compute_finished
// pair, for a layer that records and submits the compute branch itself
// before calling SetComputeEnabledThisFrame(true).
func (s *Swapchain) ComputeFenceAndSemaphore() (vk.Fence, vk.Semaphore) {
	i := s.currentFrame
	return s.computeFence[i], s.computeFinished[i]
}

// HDRTarget returns the intermediate HDR color target for the given frame
// slot.
func (s *Swapchain) HDRTarget(slot uint32) (vk.Image, vk.ImageView) {
	h := &s.hdr[slot]
	return h.Image, h.View
}

// Destroy releases every resource owned by the swapchain. The caller must
// ensure the device is idle first.
func (s *Swapchain) Destroy() {
	s.destroySwapObjects()
	if s.handle != 0 {
		s.ctx.Cmds.DestroySwapchainKHR(s.ctx.Device, s.handle)
		s.handle = 0
	}
	s.destroySyncObjects()
}
