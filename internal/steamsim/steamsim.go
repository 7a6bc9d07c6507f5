// Package steamsim implements workshop.API as an in-memory backend. Results
// are queued at call time and delivered only when RunCallbacks is pumped,
// matching the native SDK's dispatch model. It backs the binary's simulate
// mode and the session-level tests.
package steamsim

import (
	"fmt"
	"log"
	"sync"

	"github.com/4onen/AwSW-Workshop-Uploader/internal/workshop"
)

// Backend is a pump-driven fake of the workshop platform.
type Backend struct {
	app workshop.AppID

	mu      sync.Mutex
	pending []pendingCall
	items   map[workshop.ItemID]workshop.ItemSummary
	nextID  workshop.ItemID

	// Latency is how many RunCallbacks pumps a queued result waits before
	// delivery. Zero delivers on the next pump.
	Latency int

	// AgreementRequired is echoed on every create and submit result.
	AgreementRequired bool

	// SubmitErr, when set, fails every submission with this error.
	SubmitErr error

	// SubmittedUpdates records every update transaction, newest last.
	SubmittedUpdates []workshop.UpdateRequest
}

type pendingCall struct {
	after int
	fire  func()
}

// New builds a backend for app with an empty item registry.
func New(app workshop.AppID) *Backend {
	return &Backend{
		app:    app,
		items:  make(map[workshop.ItemID]workshop.ItemSummary),
		nextID: 3_000_000_000,
	}
}

// Seed registers an existing item so lookups can find it.
func (b *Backend) Seed(summary workshop.ItemSummary) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items[summary.ID] = summary
	if summary.ID >= b.nextID {
		b.nextID = summary.ID + 1
	}
}

// AppID implements workshop.API.
func (b *Backend) AppID() workshop.AppID { return b.app }

// RunCallbacks delivers every queued result whose latency has elapsed.
func (b *Backend) RunCallbacks() {
	b.mu.Lock()
	var ready []func()
	remaining := b.pending[:0]
	for _, call := range b.pending {
		if call.after <= 0 {
			ready = append(ready, call.fire)
			continue
		}
		call.after--
		remaining = append(remaining, call)
	}
	b.pending = remaining
	b.mu.Unlock()

	for _, fire := range ready {
		fire()
	}
}

// Flush makes every queued result eligible for the next pump, regardless of
// remaining latency.
func (b *Backend) Flush() {
	b.mu.Lock()
	for i := range b.pending {
		b.pending[i].after = 0
	}
	b.mu.Unlock()
}

func (b *Backend) enqueue(fire func()) {
	b.mu.Lock()
	b.pending = append(b.pending, pendingCall{after: b.Latency, fire: fire})
	b.mu.Unlock()
}

// QueryItem implements workshop.API.
func (b *Backend) QueryItem(id workshop.ItemID, _ workshop.QueryOptions, fn func(workshop.ItemSummary, error)) {
	b.mu.Lock()
	summary, ok := b.items[id]
	b.mu.Unlock()

	b.enqueue(func() {
		if !ok {
			fn(workshop.ItemSummary{}, fmt.Errorf("file not found"))
			return
		}
		fn(summary, nil)
	})
}

// CreateItem implements workshop.API.
func (b *Backend) CreateItem(app workshop.AppID, fn func(workshop.CreateResult, error)) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.items[id] = workshop.ItemSummary{
		ID:               id,
		FileType:         workshop.FileTypeCommunity,
		ConsumerAppID:    app,
		KnownConsumerApp: true,
	}
	b.mu.Unlock()

	b.enqueue(func() {
		fn(workshop.CreateResult{ID: id, AgreementRequired: b.AgreementRequired}, nil)
	})
}

// SubmitUpdate implements workshop.API.
func (b *Backend) SubmitUpdate(app workshop.AppID, id workshop.ItemID, req workshop.UpdateRequest, fn func(workshop.SubmitResult, error)) {
	b.mu.Lock()
	if b.SubmitErr == nil {
		summary := b.items[id]
		summary.ID = id
		summary.Title = req.Title
		summary.FileType = workshop.FileTypeCommunity
		summary.ConsumerAppID = app
		summary.KnownConsumerApp = true
		b.items[id] = summary
		b.SubmittedUpdates = append(b.SubmittedUpdates, req)
	}
	err := b.SubmitErr
	b.mu.Unlock()

	b.enqueue(func() {
		if err != nil {
			fn(workshop.SubmitResult{}, err)
			return
		}
		fn(workshop.SubmitResult{ID: id, AgreementRequired: b.AgreementRequired}, nil)
	})
}

// OpenURL implements workshop.API. The simulator has no overlay; the visit
// is logged instead.
func (b *Backend) OpenURL(url string) {
	log.Printf("steamsim: open %s", url)
}

// Ensure Backend implements workshop.API at compile time.
var _ workshop.API = (*Backend)(nil)
