package dispatch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestDispatcher_PumpsOnlyWhileInterested(t *testing.T) {
	var pumps atomic.Int64
	d := Start(func() {
		pumps.Add(1)
		time.Sleep(time.Millisecond)
	})
	defer d.Close()

	// No guard: the dispatcher should settle into its parked state.
	time.Sleep(3 * idleTimeout)
	before := pumps.Load()
	time.Sleep(3 * idleTimeout)
	if after := pumps.Load(); after != before {
		t.Fatalf("pump ran %d times while idle, want 0", after-before)
	}

	g := d.Acquire()
	time.Sleep(2 * idleTimeout)
	if pumps.Load() == before {
		t.Fatalf("pump did not run after Acquire")
	}

	g.Release()
	time.Sleep(2 * idleTimeout)
	quiesced := pumps.Load()
	time.Sleep(3 * idleTimeout)
	if after := pumps.Load(); after != quiesced {
		t.Fatalf("pump ran %d times after Release, want 0", after-quiesced)
	}
}

func TestDispatcher_RetiresWhenClosedAndIdle(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := Start(func() {})
	g := d.Acquire()
	g.Release()
	d.Close()

	// The goroutine retires within one idle-timeout window of the last
	// release; give it a few.
	time.Sleep(5 * idleTimeout)
}

func TestDispatcher_PendingGuardOutlivesClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	var pumps atomic.Int64
	d := Start(func() {
		pumps.Add(1)
		time.Sleep(time.Millisecond)
	})

	g := d.Acquire()
	d.Close()

	// The owning handle is gone but a call is still in flight: the
	// dispatcher must keep pumping.
	time.Sleep(2 * idleTimeout)
	if pumps.Load() == 0 {
		t.Fatalf("pump stopped while a guard was still live")
	}

	g.Release()
	time.Sleep(5 * idleTimeout)
}

func TestGuard_ReleaseIsIdempotent(t *testing.T) {
	d := Start(func() {})
	defer d.Close()

	g := d.Acquire()
	g.Release()
	g.Release()
	g.Release()

	if n := d.interest.Load(); n != 0 {
		t.Fatalf("interest counter = %d after repeated Release, want 0", n)
	}
}

func TestDispatcher_InterestNeverNegative(t *testing.T) {
	d := Start(func() {})
	defer d.Close()

	guards := make([]*Guard, 0, 8)
	for i := 0; i < 8; i++ {
		guards = append(guards, d.Acquire())
	}
	for _, g := range guards {
		g.Release()
		g.Release() // double release must not drive the counter below zero
		if n := d.interest.Load(); n < 0 {
			t.Fatalf("interest counter went negative: %d", n)
		}
	}
}

func TestDispatcher_DeliversThroughPump(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Model the native SDK: a callback queued for the next pump invocation.
	var pending atomic.Value

	d := Start(func() {
		if fn, ok := pending.Load().(func()); ok && fn != nil {
			pending.Store(func() {})
			fn()
		}
	})

	g := d.Acquire()
	tx, rx := NewResult[int]()
	pending.Store(func() {
		tx.Send(1234)
		g.Release()
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got, err := rx.Await(ctx)
	if err != nil {
		t.Fatalf("Await error = %v, want nil", err)
	}
	if got != 1234 {
		t.Fatalf("Await = %d, want 1234", got)
	}

	d.Close()
	time.Sleep(5 * idleTimeout)
}
