// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import "testing"

// These tests exercise OnComplete/Current/descriptor-dirty bookkeeping
// directly, without a BvhBuilder: that path needs a live device and is not
// covered here (see bvh_builder_test.go).

func digestsEqual(prev, next any) bool { return prev == next }

func TestOnCompleteMarksDescriptorsDirtyOnce(t *testing.T) {
	r := NewRaytracingCore(nil, digestsEqual)

	if r.ConsumeDescriptorsDirty() {
		t.Fatal("descriptorsDirty true before any publication")
	}

	r.OnComplete([]BlasResult{{}}, &TlasResult{})

	if !r.ConsumeDescriptorsDirty() {
		t.Fatal("ConsumeDescriptorsDirty() = false right after OnComplete, want true")
	}
	if r.ConsumeDescriptorsDirty() {
		t.Fatal("ConsumeDescriptorsDirty() stayed true on second call, want it cleared after one read")
	}
}

func TestOnCompletePublishesCurrent(t *testing.T) {
	r := NewRaytracingCore(nil, digestsEqual)
	blas := []BlasResult{{}, {}}
	tlas := &TlasResult{}

	r.OnComplete(blas, tlas)

	gotBlas, gotTlas := r.Current()
	if len(gotBlas) != 2 || gotTlas != tlas {
		t.Fatalf("Current() = (%v, %v), want published blas/tlas", gotBlas, gotTlas)
	}
}

func TestOutputImageRoundTrip(t *testing.T) {
	r := NewRaytracingCore(nil, digestsEqual)

	if r.OutputImage() != 0 {
		t.Fatalf("OutputImage() = %v before SetOutputImage, want zero value", r.OutputImage())
	}

	r.SetOutputImage(0x1234)
	if r.OutputImage() != 0x1234 {
		t.Fatalf("OutputImage() = %#x, want 0x1234", r.OutputImage())
	}
}
