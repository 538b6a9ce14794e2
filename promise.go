package promise

import (
	sync "github.com/sasha-s/go-deadlock"
)

// Promise is a deferred value: created pending, settled at most once as
// either fulfilled with a value or rejected with an error, optionally
// emitting progress updates while still pending. All reactions registered
// through Then run on the Scheduler the promise was constructed with, never
// on the stack frame that settled it.
//
// A promise's state, outcome and listeners are private to it; the mutex is
// held only across check-and-set and snapshot, so hosts whose scheduler runs
// tasks on more than one OS thread stay correct.
type Promise struct {
	mu        sync.Mutex
	scheduler Scheduler

	state  State
	value  interface{}
	reason error

	listeners map[string][]listener
}

// New creates a pending promise and synchronously runs executor with the
// promise's three settlement capabilities. A panic raised by the executor
// rejects the promise instead of propagating. New itself panics if scheduler
// or executor is nil; that is the one synchronous failure mode.
func New(scheduler Scheduler, executor Executor) *Promise {
	return NewWithCanceller(scheduler, executor, nil)
}

// NewWithCanceller is New with a canceller that runs synchronously when the
// promise is cancelled, before the cancellation rejection is scheduled. A
// panic raised by the canceller is discarded.
func NewWithCanceller(scheduler Scheduler, executor Executor, canceller Canceller) *Promise {
	requireScheduler(scheduler)
	if nil == executor {
		panic("promise: New requires a non-nil executor")
	}

	p := newPending(scheduler)
	if nil != canceller {
		p.on(eventCancelled, func(interface{}) {
			canceller()
		})
	}
	runExecutor(p, executor)

	return p
}

// Resolve creates a promise resolved with value. A Thenable value is adopted,
// so handing Resolve another promise mirrors that promise instead of
// fulfilling with it.
func Resolve(scheduler Scheduler, value interface{}) *Promise {
	requireScheduler(scheduler)

	p := newPending(scheduler)
	p.resolveValue(value)

	return p
}

// Reject creates a promise rejected with reason.
func Reject(scheduler Scheduler, reason error) *Promise {
	requireScheduler(scheduler)

	p := newPending(scheduler)
	p.reject(reason)

	return p
}

// Then creates and returns a promise derived from p. When p fulfills, the
// derived promise settles from onFulfilled's outcome; when p rejects, from
// onRejected's; progress updates flow through onProgress for as long as p is
// pending. Any of the three may be nil, giving that branch pass-through
// semantics: a Then with only an onRejected still forwards fulfillment values
// unchanged, and the other way around.
//
// The reaction runs on a later scheduler turn whether p is already settled
// or settles afterwards; the two cases are indistinguishable to callers.
func (p *Promise) Then(onFulfilled FulfillHandler, onRejected RejectHandler, onProgress ProgressHandler) *Promise {
	derived := newPending(p.scheduler)

	p.mu.Lock()
	switch p.state {
	case StateFulfilled:
		value := p.value
		p.mu.Unlock()
		p.scheduler.Schedule(func() {
			derived.reactFulfilled(onFulfilled, value)
		})

	case StateRejected:
		reason := p.reason
		p.mu.Unlock()
		p.scheduler.Schedule(func() {
			derived.reactRejected(onRejected, reason)
		})

	default:
		p.onLocked(eventResolved, func(value interface{}) {
			derived.reactFulfilled(onFulfilled, value)
		})
		p.onLocked(eventRejected, func(payload interface{}) {
			// a nil rejection reason arrives as a nil interface payload
			reason, _ := payload.(error)
			derived.reactRejected(onRejected, reason)
		})
		p.mu.Unlock()
	}

	// registered regardless of settlement state; it only ever fires while p
	// is pending
	p.on(eventNotified, func(update interface{}) {
		derived.reactProgress(onProgress, update)
	})

	return derived
}

// Catch is Then with only a rejection handler.
func (p *Promise) Catch(onRejected RejectHandler) *Promise {
	return p.Then(nil, onRejected, nil)
}

// Progress is Then with only a progress handler.
func (p *Promise) Progress(onProgress ProgressHandler) *Promise {
	return p.Then(nil, nil, onProgress)
}

// Finally registers callback to run once p settles, whichever way. The
// derived promise mirrors p's outcome; callback cannot observe or change it,
// though a panic inside callback rejects the derived promise.
func (p *Promise) Finally(callback func()) *Promise {
	if nil == callback {
		return p.Then(nil, nil, nil)
	}

	return p.Then(
		func(value interface{}) (interface{}, error) {
			callback()

			return value, nil
		},
		func(reason error) (interface{}, error) {
			callback()

			return nil, reason
		},
		nil,
	)
}

// Cancel requests a best-effort abort of a pending promise: the cancelled
// event fires synchronously within this call (running any Canceller and
// forwarding the abort to an adopted thenable), then the promise rejects
// with ErrCancelled on a later turn. No-op when already settled. It returns
// p to permit call chaining.
func (p *Promise) Cancel() *Promise {
	p.cancelSettle()
	return p
}

// State returns the current settlement state of p.
func (p *Promise) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// Settled reports whether p has left the pending state.
func (p *Promise) Settled() bool {
	return StatePending != p.State()
}

func newPending(scheduler Scheduler) *Promise {
	return &Promise{
		scheduler: scheduler,
		state:     StatePending,
	}
}

// runExecutor invokes executor with p's settlement capabilities; a panic
// inside it becomes p's rejection reason.
func runExecutor(p *Promise, executor Executor) {
	defer func() {
		if r := recover(); nil != r {
			p.reject(recoveredError(r))
		}
	}()

	executor(p.resolveValue, p.reject, p.notify)
}

func requireScheduler(scheduler Scheduler) {
	if nil == scheduler {
		panic("promise: a non-nil Scheduler is required")
	}
}
