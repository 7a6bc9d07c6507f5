package dispatch

import (
	"sync"
	"sync/atomic"
	"time"
)

// idleTimeout bounds how long the dispatcher sleeps between interest checks
// while no operation is outstanding. It covers the wake race where a guard is
// acquired between the interest check and the park.
const idleTimeout = 100 * time.Millisecond

// Dispatcher owns the goroutine that drives a callback-pump function. The
// pump runs in a tight loop while any operation is outstanding and parks
// otherwise. The goroutine retires once no guard is live and the owning
// handle has been closed.
type Dispatcher struct {
	pump      func()
	interest  atomic.Int64
	refs      atomic.Int64
	wake      chan struct{}
	closeOnce sync.Once
}

// Start launches the dispatcher goroutine for pump. The caller holds the
// owning reference and must Close it to let the goroutine retire.
func Start(pump func()) *Dispatcher {
	d := &Dispatcher{
		pump: pump,
		wake: make(chan struct{}, 1),
	}
	d.refs.Store(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	for {
		for d.interest.Load() > 0 {
			d.pump()
		}

		select {
		case <-d.wake:
		case <-time.After(idleTimeout):
		}

		if d.interest.Load() == 0 && d.refs.Load() == 0 {
			return
		}
	}
}

// signal nudges a parked dispatcher without blocking the caller.
func (d *Dispatcher) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Close releases the owning reference. Pending operations keep the
// dispatcher alive; once the last guard releases, the goroutine retires
// within one idle-timeout window.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.refs.Add(-1)
		d.signal()
	})
}

// Guard marks one in-flight native callback as interested in the pump
// running. Exactly one guard exists per pending call.
type Guard struct {
	d    *Dispatcher
	once sync.Once
}

// Acquire registers interest and wakes the dispatcher in case it is parked.
func (d *Dispatcher) Acquire() *Guard {
	d.refs.Add(1)
	d.interest.Add(1)
	d.signal()
	return &Guard{d: d}
}

// Release withdraws the guard's interest. Idempotent: the counter is
// decremented at most once per guard, so it can never go negative.
func (g *Guard) Release() {
	g.once.Do(func() {
		g.d.interest.Add(-1)
		g.d.refs.Add(-1)
		g.d.signal()
	})
}
