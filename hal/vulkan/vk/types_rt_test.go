// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "testing"

func TestNewAccelerationStructureInstanceKHRPacking(t *testing.T) {
	transform := TransformMatrixKHR{Matrix: [3][4]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}}
	inst := NewAccelerationStructureInstanceKHR(transform, 0x00112233, 0xAB, 0x00445566, 0xCD, 0x1234)

	wantCustomAndMask := uint32(0x112233) | (uint32(0xAB) << 24)
	if inst.InstanceCustomIndexAndMask != wantCustomAndMask {
		t.Errorf("InstanceCustomIndexAndMask = %#x, want %#x", inst.InstanceCustomIndexAndMask, wantCustomAndMask)
	}

	wantOffsetAndFlags := uint32(0x445566) | (uint32(0xCD) << 24)
	if inst.InstanceShaderBindingTableRecordOffsetAndFlags != wantOffsetAndFlags {
		t.Errorf("InstanceShaderBindingTableRecordOffsetAndFlags = %#x, want %#x", inst.InstanceShaderBindingTableRecordOffsetAndFlags, wantOffsetAndFlags)
	}

	if inst.AccelerationStructureReference != 0x1234 {
		t.Errorf("AccelerationStructureReference = %#x, want 0x1234", inst.AccelerationStructureReference)
	}
	if inst.Transform != transform {
		t.Errorf("Transform not carried through unchanged")
	}
}

func TestNewAccelerationStructureInstanceKHRCustomIndexTruncatedTo24Bits(t *testing.T) {
	// customIndex values above the 24-bit range must not bleed into the
	// mask byte.
	inst := NewAccelerationStructureInstanceKHR(TransformMatrixKHR{}, 0xFFFFFFFF, 0x01, 0, 0, 0)
	if inst.InstanceCustomIndexAndMask != (0x00FFFFFF | (1 << 24)) {
		t.Errorf("InstanceCustomIndexAndMask = %#x, want customIndex truncated to 24 bits with mask=0x01", inst.InstanceCustomIndexAndMask)
	}
}
