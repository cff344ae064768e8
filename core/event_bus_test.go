// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package core

import (
	"sync"
	"testing"
)

func TestEventBusPostAndDrain(t *testing.T) {
	b := NewEventBus()
	b.Post(Event{Kind: EventWindowResize, Category: EventCategoryWindow, Width: 800, Height: 600})
	b.Post(Event{Kind: EventKeyPress, Category: EventCategoryInput, KeyCode: 65})

	var seen []EventKind
	b.DrainInto(func(e *Event) {
		seen = append(seen, e.Kind)
	})

	if len(seen) != 2 {
		t.Fatalf("drained %d events, want 2", len(seen))
	}
	if seen[0] != EventWindowResize || seen[1] != EventKeyPress {
		t.Errorf("drained in wrong order: %v", seen)
	}

	var again []EventKind
	b.DrainInto(func(e *Event) { again = append(again, e.Kind) })
	if len(again) != 0 {
		t.Errorf("second drain saw %d events, want 0", len(again))
	}
}

func TestEventBusCategoryFilter(t *testing.T) {
	b := NewEventBus()
	b.SetCategoryEnabled(EventCategoryInput, false)

	b.Post(Event{Kind: EventKeyPress, Category: EventCategoryInput})
	b.Post(Event{Kind: EventWindowResize, Category: EventCategoryWindow})

	var seen []EventKind
	b.DrainInto(func(e *Event) { seen = append(seen, e.Kind) })

	if len(seen) != 1 || seen[0] != EventWindowResize {
		t.Fatalf("got %v, want only EventWindowResize", seen)
	}
}

func TestEventBusClear(t *testing.T) {
	b := NewEventBus()
	b.Post(Event{Kind: EventKeyPress, Category: EventCategoryInput})
	b.Clear()

	var seen int
	b.DrainInto(func(e *Event) { seen++ })
	if seen != 0 {
		t.Errorf("got %d events after Clear, want 0", seen)
	}
}

func TestEventBusPostImmediateBypassesQueue(t *testing.T) {
	b := NewEventBus()
	var immediate, queued int

	b.PostImmediate(Event{Kind: EventCameraUpdated, Category: EventCategoryApplication}, func(e *Event) {
		immediate++
	})
	b.Post(Event{Kind: EventSceneLoaded, Category: EventCategoryApplication})

	b.DrainInto(func(e *Event) { queued++ })

	if immediate != 1 {
		t.Errorf("immediate dispatch ran %d times, want 1", immediate)
	}
	if queued != 1 {
		t.Errorf("queued drain saw %d events, want 1 (PostImmediate must not enqueue)", queued)
	}
}

// TestEventBusConcurrentPostFanIn posts from many producer goroutines while
// a single consumer repeatedly drains in the background, checking every
// posted event is eventually observed exactly once and that a single
// producer's events are always drained in the order it posted them.
func TestEventBusConcurrentPostFanIn(t *testing.T) {
	b := NewEventBus()
	const producers = 10
	const perProducer = 1000

	counts := make([]int, producers)
	lastSeen := make([]int, producers)
	for i := range lastSeen {
		lastSeen[i] = -1
	}
	var drainMu sync.Mutex
	drain := func() {
		drainMu.Lock()
		defer drainMu.Unlock()
		b.DrainInto(func(e *Event) {
			p := e.MouseButton
			if e.KeyCode <= lastSeen[p] {
				t.Errorf("producer %d: event out of order, got %d after %d", p, e.KeyCode, lastSeen[p])
			}
			lastSeen[p] = e.KeyCode
			counts[p]++
		})
	}

	stop := make(chan struct{})
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-stop:
				drain() // final drain to catch anything posted just before stop
				return
			default:
				drain()
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		p := p
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				b.Post(Event{Kind: EventMouseMove, Category: EventCategoryInput, MouseButton: p, KeyCode: i})
			}
		}()
	}
	wg.Wait()
	close(stop)
	<-consumerDone

	for p := 0; p < producers; p++ {
		if counts[p] != perProducer {
			t.Errorf("producer %d: saw %d events, want %d", p, counts[p], perProducer)
		}
	}
}
