package em3071x

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWatch_ReportsOnEdge(t *testing.T) {
	v, bus, sink, err := newTestDevice(testConfig)
	if err != nil {
		t.Fatalf("newTestDevice err=%v", err)
	}

	bus.regs[INT_STATUS] = INT_FLAG
	bus.regs[PROXIMITY_RAW] = 100

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pin := &fakePin{edges: []bool{true, false, true}}
	pin.onWait = func() {
		// raise the flag again for the second edge
		if pin.waits == 3 {
			bus.regs[INT_STATUS] = INT_FLAG
		}
		if pin.waits > 3 {
			cancel()
		}
	}

	err = v.Watch(ctx, pin)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if len(sink.events) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(sink.events))
	}

	if !v.TimeoutOccurred() {
		t.Fatalf("expected a timeout to be recorded")
	}

	if v.TimeoutOccurred() {
		t.Fatalf("TimeoutOccurred should reset")
	}
}

func TestWatch_EdgeWithoutFlag(t *testing.T) {
	v, _, sink, err := newTestDevice(testConfig)
	if err != nil {
		t.Fatalf("newTestDevice err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pin := &fakePin{edges: []bool{true}}
	pin.onWait = func() {
		if pin.waits > 1 {
			cancel()
		}
	}

	if err := v.Watch(ctx, pin); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if len(sink.events) != 0 {
		t.Fatalf("expected no reports, got %d", len(sink.events))
	}
}

func TestWatch_WaitTimeout(t *testing.T) {
	v, _, _, err := newTestDevice(testConfig)
	if err != nil {
		t.Fatalf("newTestDevice err=%v", err)
	}

	if v.waitTimeout() != DefaultEdgeTimeout {
		t.Fatalf("got %s", v.waitTimeout())
	}

	v.SetTimeout(0)

	if v.waitTimeout() >= 0 {
		t.Fatalf("zero timeout should wait forever, got %s", v.waitTimeout())
	}
}

func TestPoll_ReportsUntilCancelled(t *testing.T) {
	v, bus, sink, err := newTestDevice(testConfig)
	if err != nil {
		t.Fatalf("newTestDevice err=%v", err)
	}

	bus.regs[PROXIMITY_RAW] = 205

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err = v.Poll(ctx, 5*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	if len(sink.events) == 0 {
		t.Fatalf("expected reports while polling")
	}

	for _, ev := range sink.events {
		if ev.value != 0 {
			t.Fatalf("expected distance 0, got %d", ev.value)
		}
	}
}

func TestPoll_ContinuesAfterFailure(t *testing.T) {
	v, bus, sink, err := newTestDevice(testConfig)
	if err != nil {
		t.Fatalf("newTestDevice err=%v", err)
	}

	bus.failRead[PROXIMITY_RAW] = true

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := v.Poll(ctx, 5*time.Millisecond); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	if len(sink.events) != 0 {
		t.Fatalf("expected no reports")
	}

	attempts := 0
	for _, r := range bus.reads {
		if r == PROXIMITY_RAW {
			attempts++
		}
	}

	if attempts < 2 {
		t.Fatalf("expected repeated attempts, got %d", attempts)
	}
}

func TestPoll_InvalidInterval(t *testing.T) {
	v, _, _, err := newTestDevice(testConfig)
	if err != nil {
		t.Fatalf("newTestDevice err=%v", err)
	}

	if err := v.Poll(context.Background(), 0); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestRun_NotReady(t *testing.T) {
	v, err := newDevice(newFakeBus(), testConfig, nil, nil)
	if err != nil {
		t.Fatalf("newDevice err=%v", err)
	}

	if err := v.Poll(context.Background(), time.Millisecond); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}

	if err := v.Watch(context.Background(), &fakePin{}); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}
