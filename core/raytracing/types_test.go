// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"testing"

	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

func TestNewInstanceDataFixedFields(t *testing.T) {
	transform := vk.TransformMatrixKHR{Matrix: [3][4]float32{
		{1, 0, 0, 5},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}}
	inst := NewInstanceData(0xABCD, transform, 42)

	if inst.BlasDeviceAddress != 0xABCD {
		t.Errorf("BlasDeviceAddress = %#x, want 0xABCD", inst.BlasDeviceAddress)
	}
	if inst.CustomIndex != 42 {
		t.Errorf("CustomIndex = %d, want 42", inst.CustomIndex)
	}
	if inst.Mask != 0xFF {
		t.Errorf("Mask = %#x, want 0xFF", inst.Mask)
	}
	if inst.SbtOffset != 0 {
		t.Errorf("SbtOffset = %d, want 0", inst.SbtOffset)
	}
	if inst.Flags != 0 {
		t.Errorf("Flags = %d, want 0", inst.Flags)
	}
	if inst.Transform != transform {
		t.Errorf("Transform not carried through unchanged")
	}
}
