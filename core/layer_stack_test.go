// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"testing"
	"time"
)

// recordingLayer logs every phase call it receives, by name, so tests can
// assert both which layers ran and in what order.
type recordingLayer struct {
	BaseLayer
	log        *[]string
	handles    bool
	attachSeen bool
	detachSeen bool
}

func newRecordingLayer(name string, log *[]string) *recordingLayer {
	l := &recordingLayer{log: log}
	l.BaseLayer = NewBaseLayer(name)
	return l
}

func (l *recordingLayer) Attach() { l.attachSeen = true; *l.log = append(*l.log, l.Name+":attach") }
func (l *recordingLayer) Detach() { l.detachSeen = true; *l.log = append(*l.log, l.Name+":detach") }
func (l *recordingLayer) Begin(frame *FrameInfo)   { *l.log = append(*l.log, l.Name+":begin") }
func (l *recordingLayer) Prepare(dt time.Duration) { *l.log = append(*l.log, l.Name+":prepare") }
func (l *recordingLayer) Update(frame *FrameInfo)  { *l.log = append(*l.log, l.Name+":update") }
func (l *recordingLayer) Render(frame *FrameInfo)  { *l.log = append(*l.log, l.Name+":render") }
func (l *recordingLayer) End(frame *FrameInfo)     { *l.log = append(*l.log, l.Name+":end") }
func (l *recordingLayer) OnEvent(e *Event) {
	*l.log = append(*l.log, l.Name+":event")
	if l.handles {
		e.MarkHandled()
	}
}

func TestLayerStackPushOrder(t *testing.T) {
	var log []string
	stack := NewLayerStack()

	scene := newRecordingLayer("scene", &log)
	renderer := newRecordingLayer("renderer", &log)
	overlay := newRecordingLayer("overlay", &log)

	stack.PushLayer(scene)
	stack.PushLayer(renderer)
	stack.PushOverlay(overlay)

	layers := stack.Layers()
	if len(layers) != 3 {
		t.Fatalf("got %d layers, want 3", len(layers))
	}
	if layers[0] != Layer(scene) || layers[1] != Layer(renderer) || layers[2] != Layer(overlay) {
		t.Fatalf("unexpected layer order")
	}
	if !scene.attachSeen || !renderer.attachSeen || !overlay.attachSeen {
		t.Fatalf("Attach not called for every pushed layer")
	}
}

func TestLayerStackPushLayerInsertsBeforeOverlay(t *testing.T) {
	var log []string
	stack := NewLayerStack()

	base := newRecordingLayer("base", &log)
	overlay := newRecordingLayer("overlay", &log)
	later := newRecordingLayer("later", &log)

	stack.PushLayer(base)
	stack.PushOverlay(overlay)
	stack.PushLayer(later) // must land before overlay, not after

	layers := stack.Layers()
	if layers[0] != Layer(base) || layers[1] != Layer(later) || layers[2] != Layer(overlay) {
		t.Fatalf("PushLayer did not insert ahead of the overlay: %v", layers)
	}
}

func TestLayerStackBeginUpdateRenderEndOrder(t *testing.T) {
	var log []string
	stack := NewLayerStack()
	stack.PushLayer(newRecordingLayer("bottom", &log))
	stack.PushOverlay(newRecordingLayer("top", &log))

	frame := &FrameInfo{}
	log = nil // drop Attach entries
	stack.Begin(frame)
	stack.Prepare(16 * time.Millisecond)
	stack.Update(frame)
	stack.Render(frame)
	stack.End(frame)

	want := []string{
		"bottom:begin", "top:begin",
		"bottom:prepare", "top:prepare",
		"bottom:update", "top:update",
		"bottom:render", "top:render",
		"bottom:end", "top:end",
	}
	if len(log) != len(want) {
		t.Fatalf("got %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("got %v, want %v", log, want)
		}
	}
}

func TestLayerStackDispatchEventTopToBottomStopsOnHandled(t *testing.T) {
	var log []string
	stack := NewLayerStack()

	bottom := newRecordingLayer("bottom", &log)
	middle := newRecordingLayer("middle", &log)
	top := newRecordingLayer("top", &log)
	middle.handles = true

	stack.PushLayer(bottom)
	stack.PushLayer(middle)
	stack.PushOverlay(top)

	log = nil
	e := &Event{Kind: EventKeyPress, Category: EventCategoryInput}
	stack.DispatchEvent(e)

	want := []string{"top:event", "middle:event"}
	if len(log) != len(want) {
		t.Fatalf("got %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("got %v, want %v", log, want)
		}
	}
	if !e.Handled() {
		t.Errorf("event not marked handled")
	}
}

func TestLayerStackDisabledLayerSkipped(t *testing.T) {
	var log []string
	stack := NewLayerStack()

	disabled := newRecordingLayer("disabled", &log)
	disabled.SetEnabled(false)
	enabled := newRecordingLayer("enabled", &log)

	stack.PushLayer(disabled)
	stack.PushLayer(enabled)

	log = nil
	stack.Begin(&FrameInfo{})

	if len(log) != 1 || log[0] != "enabled:begin" {
		t.Fatalf("got %v, want only enabled:begin", log)
	}
}

func TestLayerStackClearDetachesInReverseOrder(t *testing.T) {
	var log []string
	stack := NewLayerStack()
	stack.PushLayer(newRecordingLayer("first", &log))
	stack.PushLayer(newRecordingLayer("second", &log))
	stack.PushOverlay(newRecordingLayer("overlay", &log))

	log = nil
	stack.Clear()

	want := []string{"overlay:detach", "second:detach", "first:detach"}
	if len(log) != len(want) {
		t.Fatalf("got %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("got %v, want %v", log, want)
		}
	}
	if len(stack.Layers()) != 0 {
		t.Errorf("stack not empty after Clear")
	}
}

func TestLayerStackPopLayerAndPopOverlay(t *testing.T) {
	var log []string
	stack := NewLayerStack()
	a := newRecordingLayer("a", &log)
	b := newRecordingLayer("b", &log)
	ov := newRecordingLayer("ov", &log)
	stack.PushLayer(a)
	stack.PushLayer(b)
	stack.PushOverlay(ov)

	stack.PopLayer(a)
	if !a.detachSeen {
		t.Errorf("PopLayer did not call Detach")
	}
	layers := stack.Layers()
	if len(layers) != 2 || layers[0] != Layer(b) || layers[1] != Layer(ov) {
		t.Fatalf("unexpected layers after PopLayer: %v", layers)
	}

	stack.PopOverlay(ov)
	if !ov.detachSeen {
		t.Errorf("PopOverlay did not call Detach")
	}
	if len(stack.Layers()) != 1 {
		t.Fatalf("unexpected layers after PopOverlay: %v", stack.Layers())
	}
}

// recordingSink collects RecordPhase calls so tests can assert which
// layer/phase pairs were timed.
type recordingSink struct {
	calls []string
}

func (s *recordingSink) RecordPhase(layer, phase string, d time.Duration) {
	s.calls = append(s.calls, layer+":"+phase)
}

func TestLayerStackRecordsPhaseTimingWhenPerfSet(t *testing.T) {
	var log []string
	stack := NewLayerStack()
	stack.PushLayer(newRecordingLayer("bottom", &log))

	sink := &recordingSink{}
	frame := &FrameInfo{Perf: sink}

	stack.Begin(frame)
	stack.Update(frame)
	stack.Render(frame)
	stack.End(frame)

	want := []string{"bottom:begin", "bottom:update", "bottom:render", "bottom:end"}
	if len(sink.calls) != len(want) {
		t.Fatalf("got %v, want %v", sink.calls, want)
	}
	for i := range want {
		if sink.calls[i] != want[i] {
			t.Fatalf("got %v, want %v", sink.calls, want)
		}
	}
}

func TestLayerStackNoPhaseTimingWhenPerfNil(t *testing.T) {
	var log []string
	stack := NewLayerStack()
	stack.PushLayer(newRecordingLayer("bottom", &log))

	frame := &FrameInfo{}
	stack.Begin(frame) // must not panic with a nil Perf
}
