// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package raytracing

import (
	"errors"
	"testing"

	"github.com/gogpu/rtframe/core"
	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

// These tests exercise BuildScene's synchronous input validation, which
// runs before anything touches a worker thread or GpuContext. The dispatch
// path beyond that point needs a live Vulkan device and is not covered here.

type recordingCompletion struct {
	called bool
}

func (c *recordingCompletion) OnComplete(blas []BlasResult, tlas *TlasResult) {
	c.called = true
}

func TestBuildSceneEmptyGeomsIsNoOp(t *testing.T) {
	b := &BvhBuilder{requests: core.NewBvhRequestTracker()}
	completion := &recordingCompletion{}

	if err := b.BuildScene(nil, nil, completion); err != nil {
		t.Fatalf("BuildScene(empty) error = %v, want nil", err)
	}
	if completion.called {
		t.Error("completion.OnComplete called for an empty batch")
	}
	if b.Outstanding() != 0 {
		t.Errorf("Outstanding() = %d, want 0", b.Outstanding())
	}
}

func TestBuildSceneMismatchedTransformCountIsRejected(t *testing.T) {
	b := &BvhBuilder{requests: core.NewBvhRequestTracker()}
	geoms := []GeometryData{{}, {}}
	transforms := []vk.TransformMatrixKHR{{}}

	err := b.BuildScene(geoms, transforms, &recordingCompletion{})
	if !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("BuildScene(mismatched) error = %v, want core.ErrInvalidState", err)
	}
	if b.Outstanding() != 0 {
		t.Errorf("Outstanding() = %d, want 0 after a rejected batch", b.Outstanding())
	}
	if b.OutstandingRequests() != 0 {
		t.Errorf("OutstandingRequests() = %d, want 0 after a rejected batch", b.OutstandingRequests())
	}
}
