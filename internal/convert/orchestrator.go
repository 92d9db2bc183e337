// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pdiddy/docview/pkg/types"
)

// noticeProcessing is shown while a request is in flight.
const noticeProcessing = "Converting document..."

// Snapshot is a consistent view of the orchestrator's state.
type Snapshot struct {
	State types.RequestState
	// Notice is the user-visible status line: validation and busy notices,
	// progress, or the failure message.
	Notice string
	// Document is the held result; nil unless State is succeeded.
	Document *types.ParsedDocument
}

// Orchestrator owns the request lifecycle:
//
//	idle -> processing -> succeeded | failed -> processing -> ...
//
// At most one request is in flight; Submit returns ErrBusy otherwise.
// Invalid submissions leave the state and document untouched and only set
// the notice.
type Orchestrator struct {
	conv Converter
	log  *slog.Logger

	// emitMu is held across a transition and its delivery so subscribers
	// see snapshots in transition order.
	emitMu sync.Mutex

	mu     sync.Mutex
	snap   Snapshot
	subs   map[int]func(Snapshot)
	nextID int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// NewOrchestrator returns an idle orchestrator that converts through conv.
func NewOrchestrator(conv Converter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		conv: conv,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		snap: Snapshot{State: types.Idle()},
		subs: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap
}

// Subscribe registers fn to receive a snapshot after every state change.
// Callbacks run one at a time; they may call Snapshot but not Submit.
// The returned function removes the subscription.
func (o *Orchestrator) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}

// Submit validates sub and, if no request is in flight, starts exactly one
// conversion in the background. The returned channel is closed when the
// attempt has settled as succeeded or failed.
//
// An invalid submission returns a *types.ValidationError without any I/O.
// A submission while processing returns ErrBusy. In both cases the state and
// the held document are unchanged.
//
// The request is detached from ctx's cancellation: once started it runs to
// completion or transport failure. ctx values are kept.
func (o *Orchestrator) Submit(ctx context.Context, sub types.Submission) (<-chan struct{}, error) {
	if err := sub.Validate(); err != nil {
		o.transition(func(s *Snapshot) { s.Notice = err.Error() })
		o.log.Info("submission rejected", "error", err)
		return nil, err
	}

	o.emitMu.Lock()
	o.mu.Lock()
	if o.snap.State.InFlight() {
		o.snap.Notice = ErrBusy.Error()
		snap := o.snap
		o.mu.Unlock()
		o.deliver(snap)
		o.emitMu.Unlock()
		o.log.Warn("submission rejected", "error", ErrBusy)
		return nil, ErrBusy
	}
	o.snap = Snapshot{State: types.Processing(), Notice: noticeProcessing}
	snap := o.snap
	o.mu.Unlock()
	o.deliver(snap)
	o.emitMu.Unlock()

	o.log.Info("conversion started",
		"file", sub.File.Name,
		"loading_method", sub.LoadingMethod,
		"parsing_option", sub.ParsingOption,
	)

	done := make(chan struct{})
	go o.run(context.WithoutCancel(ctx), sub, done)
	return done, nil
}

func (o *Orchestrator) run(ctx context.Context, sub types.Submission, done chan<- struct{}) {
	defer close(done)

	start := time.Now()
	doc, err := o.conv.Convert(ctx, sub)
	if err == nil && doc == nil {
		err = malformed("empty document")
	}

	if err != nil {
		msg := "Conversion failed: " + err.Error()
		o.transition(func(s *Snapshot) {
			*s = Snapshot{State: types.Failed(msg), Notice: msg}
		})
		o.log.Warn("conversion failed",
			"file", sub.File.Name,
			"kind", errorKind(err),
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return
	}

	o.transition(func(s *Snapshot) {
		*s = Snapshot{State: types.Succeeded(), Notice: "Conversion complete.", Document: doc}
	})
	o.log.Info("conversion succeeded",
		"file", sub.File.Name,
		"items", len(doc.Content),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// transition applies mutate to the state and notifies subscribers.
func (o *Orchestrator) transition(mutate func(*Snapshot)) {
	o.emitMu.Lock()
	defer o.emitMu.Unlock()

	o.mu.Lock()
	next := o.snap
	mutate(&next)
	o.snap = next
	o.mu.Unlock()

	o.deliver(next)
}

// deliver calls every subscriber with snap. The caller holds emitMu.
func (o *Orchestrator) deliver(snap Snapshot) {
	o.mu.Lock()
	subs := make([]func(Snapshot), 0, len(o.subs))
	for id := 0; id < o.nextID; id++ {
		if fn, ok := o.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	o.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func errorKind(err error) string {
	var (
		transport *TransportError
		server    *ServerError
		bad       *MalformedResponseError
	)
	switch {
	case errors.As(err, &server):
		return "server"
	case errors.As(err, &transport):
		return "transport"
	case errors.As(err, &bad):
		return "malformed_response"
	default:
		return "other"
	}
}
