// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/rtframe/hal/vulkan/vk"
)

// PendingResource is anything a recorded secondary command buffer references
// and that must outlive the submission that executes it - a scratch buffer
// backing an acceleration-structure build, a staging buffer backing an
// upload. SecondaryCmdMarshal keeps these alive until ExecuteCollected has
// run, then lets the caller release them.
type PendingResource interface {
	Release(ctx *GpuContext)
}

// SecondaryCmd is one recorded secondary command buffer plus the resources
// it depends on.
type SecondaryCmd struct {
	Pool              vk.CommandPool
	Buffer            vk.CommandBuffer
	PendingResources  []PendingResource
	OwningPoolIsMain  bool
}

// SecondaryCmdMarshal collects secondary command buffers recorded by worker
// goroutines and funnels them into the main thread's primary command buffer
// via vkCmdExecuteCommands, once per frame.
//
// Workers append to a write-side pending slice selected by an atomic index;
// ExecuteCollected swaps the index so new appends land in the other slice
// while the just-swapped-out slice is drained and executed. This keeps
// append() a pure append under a short mutex, never blocked behind a frame's
// worth of GPU work.
type SecondaryCmdMarshal struct {
	ctx *GpuContext

	appendMu   sync.Mutex
	pending    [2][]*SecondaryCmd
	writeIndex atomic.Uint32

	submittedMu sync.Mutex
	submitted   []*SecondaryCmd
}

// NewSecondaryCmdMarshal creates a marshal bound to ctx.
func NewSecondaryCmdMarshal(ctx *GpuContext) *SecondaryCmdMarshal {
	return &SecondaryCmdMarshal{ctx: ctx}
}

// BeginSecondary allocates a new secondary command buffer from pool (one
// per call; no buffer is reused) and begins recording it with the
// null-render-pass inheritance info.
func (m *SecondaryCmdMarshal) BeginSecondary(pool vk.CommandPool) (vk.CommandBuffer, error) {
	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelSecondary,
		CommandBufferCount: 1,
	}
	var cmd vk.CommandBuffer
	if result := m.ctx.Cmds.AllocateCommandBuffers(m.ctx.Device, &allocInfo, &cmd); result != vk.Success {
		return 0, fmt.Errorf("%w: vkAllocateCommandBuffers (secondary): %d", ErrInitialization, result)
	}

	inheritance := vk.CommandBufferInheritanceInfo{
		SType: vk.StructureTypeCommandBufferInheritanceInfo,
	}
	// ONE_TIME_SUBMIT only: it and SIMULTANEOUS_USE are mutually exclusive in
	// Vulkan (a buffer reused across submits without re-recording can't also
	// promise its commands run exactly once), and every secondary here is
	// re-recorded fresh each frame, never replayed, so ONE_TIME_SUBMIT is the
	// correct flag of the pair.
	beginInfo := vk.CommandBufferBeginInfo{
		SType:            vk.StructureTypeCommandBufferBeginInfo,
		Flags:            vk.CommandBufferUsageOneTimeSubmitBit,
		PInheritanceInfo: &inheritance,
	}
	if result := m.ctx.Cmds.BeginCommandBuffer(cmd, &beginInfo); result != vk.Success {
		return 0, fmt.Errorf("%w: vkBeginCommandBuffer (secondary): %d", ErrInitialization, result)
	}
	return cmd, nil
}

// EndSecondary ends recording and appends the secondary to the current
// write-side pending slice. Resources in pending are retained until the
// buffer has been executed by ExecuteCollected.
func (m *SecondaryCmdMarshal) EndSecondary(pool vk.CommandPool, cmd vk.CommandBuffer, pending []PendingResource, ownedByMainPool bool) error {
	if result := m.ctx.Cmds.EndCommandBuffer(cmd); result != vk.Success {
		return fmt.Errorf("%w: vkEndCommandBuffer (secondary): %d", ErrInvalidState, result)
	}

	sc := &SecondaryCmd{
		Pool:             pool,
		Buffer:           cmd,
		PendingResources: pending,
		OwningPoolIsMain: ownedByMainPool,
	}

	m.appendMu.Lock()
	idx := m.writeIndex.Load()
	m.pending[idx] = append(m.pending[idx], sc)
	m.appendMu.Unlock()
	return nil
}

// ExecuteCollected swaps the write-side index, then records
// vkCmdExecuteCommands for every secondary collected since the last call,
// on primary, and moves them to the submitted list for resource-lifetime
// bookkeeping. Must be called from the main/render thread once per frame,
// before the primary buffer is submitted.
func (m *SecondaryCmdMarshal) ExecuteCollected(primary vk.CommandBuffer) {
	m.appendMu.Lock()
	drainIdx := m.writeIndex.Load()
	m.writeIndex.Store(1 - drainIdx)
	batch := m.pending[drainIdx]
	m.pending[drainIdx] = nil
	m.appendMu.Unlock()

	if len(batch) == 0 {
		return
	}

	buffers := make([]vk.CommandBuffer, len(batch))
	for i, sc := range batch {
		buffers[i] = sc.Buffer
	}
	//nolint:gosec // G115: secondary batches are always far below 2^32
	m.ctx.Cmds.CmdExecuteCommands(primary, uint32(len(buffers)), &buffers[0])

	m.submittedMu.Lock()
	m.submitted = append(m.submitted, batch...)
	m.submittedMu.Unlock()
}

// ReleaseSubmitted releases the pending resources of every secondary
// executed so far and empties the submitted list. Buffers allocated from the
// main pool (ownedByMainPool=true) are freed here directly; buffers from a
// worker's own pool are not freed here and are recycled when that pool is
// reset (see ResetAllWorkerPools).
func (m *SecondaryCmdMarshal) ReleaseSubmitted() {
	m.submittedMu.Lock()
	batch := m.submitted
	m.submitted = nil
	m.submittedMu.Unlock()

	for _, sc := range batch {
		for _, res := range sc.PendingResources {
			res.Release(m.ctx)
		}
		if sc.OwningPoolIsMain {
			cmd := sc.Buffer
			m.ctx.Cmds.FreeCommandBuffers(m.ctx.Device, sc.Pool, 1, &cmd)
		}
	}
}

// ClearPending discards any secondaries recorded but not yet executed,
// without freeing their command buffers - used when a worker pool is
// being reset and its buffers will be destroyed along with the pool.
func (m *SecondaryCmdMarshal) ClearPending() {
	m.appendMu.Lock()
	m.pending[0] = nil
	m.pending[1] = nil
	m.appendMu.Unlock()
}

// ResetAllWorkerPools resets every command pool in pools, recycling their
// command buffers instead of freeing them individually. Intended to run once per frame after
// ReleaseSubmitted, for pools owned by worker threads rather than the main
// thread.
func (m *SecondaryCmdMarshal) ResetAllWorkerPools(pools []vk.CommandPool) {
	for _, pool := range pools {
		m.ctx.Cmds.ResetCommandPool(m.ctx.Device, pool, 0)
	}
}
