package promise

import (
	"reflect"
	"sync/atomic"
)

// fulfill settles p as fulfilled with value. The resolved emission is handed
// to the scheduler, never run on the calling stack, so a handler registered
// right after settlement still observes it. No-op once settled.
func (p *Promise) fulfill(value interface{}) {
	p.mu.Lock()
	if StatePending != p.state {
		p.mu.Unlock()
		return
	}
	p.state = StateFulfilled
	p.value = value
	p.mu.Unlock()

	p.scheduler.Schedule(func() {
		p.emit(eventResolved, value)
	})
}

// reject settles p as rejected with reason, deferring the rejected emission
// like fulfill. No-op once settled.
func (p *Promise) reject(reason error) {
	p.mu.Lock()
	if StatePending != p.state {
		p.mu.Unlock()
		return
	}
	p.state = StateRejected
	p.reason = reason
	p.mu.Unlock()

	p.scheduler.Schedule(func() {
		p.emit(eventRejected, reason)
	})
}

// notify emits a progress update on a later turn without changing state.
// No-op once settled.
func (p *Promise) notify(update interface{}) {
	p.mu.Lock()
	if StatePending != p.state {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.scheduler.Schedule(func() {
		p.emit(eventNotified, update)
	})
}

// cancelSettle settles p as rejected with ErrCancelled. The cancelled event
// fires synchronously, after the state flip but before the rejected emission
// is scheduled, so cancellation forwarders (adopted thenables, a registered
// Canceller) run before any asynchronous work proceeds. No-op once settled.
func (p *Promise) cancelSettle() {
	p.mu.Lock()
	if StatePending != p.state {
		p.mu.Unlock()
		return
	}
	p.state = StateRejected
	p.reason = ErrCancelled
	p.mu.Unlock()

	p.emit(eventCancelled, nil)
	p.scheduler.Schedule(func() {
		p.emit(eventRejected, ErrCancelled)
	})
}

// resolveValue is the resolution procedure: plain values fulfill p directly,
// Thenable values are adopted. Resolving p with itself degenerates to plain
// fulfillment with itself as the value, since the adoption path cannot
// operate on p.
func (p *Promise) resolveValue(value interface{}) {
	if identical(p, value) || !p.adoptThenable(value) {
		p.fulfill(value)
	}
}

// adoptThenable delegates p's outcome to value when value exposes the
// Thenable capability, and reports whether adoption applied. A false return
// means value is a plain value and the caller falls back to fulfillment.
//
// Adoption wires three things: a cancellation forwarder when value is also
// Cancelable, a one-shot subscription mirroring value's settlement into p,
// and a progress relay. A panic raised by the foreign Then while subscribing
// rejects p and still counts as adoption applied.
func (p *Promise) adoptThenable(value interface{}) (adopted bool) {
	if identical(p, value) {
		// a second resolution attempt carrying p itself: a callback returned
		// the promise derived from it
		p.reject(ErrSelfResolution)
		return true
	}

	thenable, ok := value.(Thenable)
	if !ok {
		return false
	}

	defer func() {
		if r := recover(); nil != r {
			p.reject(recoveredError(r))
			adopted = true
		}
	}()

	if cancelable, ok := value.(Cancelable); ok {
		p.on(eventCancelled, func(interface{}) {
			cancelable.Cancel()
		})
	}

	// A broken Then implementation may invoke more than one of its callbacks;
	// only the first settlement signal may drive p.
	var settled uint32

	thenable.Then(
		func(inner interface{}) (interface{}, error) {
			if !atomic.CompareAndSwapUint32(&settled, 0, 1) {
				return nil, nil
			}
			if identical(value, inner) {
				// a thenable fulfilled with itself would otherwise re-enter
				// adoption forever
				p.fulfill(inner)
			} else {
				p.resolveValue(inner)
			}
			return nil, nil
		},
		func(reason error) (interface{}, error) {
			if !atomic.CompareAndSwapUint32(&settled, 0, 1) {
				return nil, nil
			}
			p.reject(reason)
			return nil, nil
		},
		func(update interface{}) (interface{}, error) {
			p.notify(update)
			return update, nil
		},
	)

	return true
}

// identical reports pointer-style identity between two resolution values.
// Values of a non-comparable dynamic type never count as identical. For
// comparable value types, which have no stable identity once copied,
// equality stands in for identity; that keeps a value-typed thenable
// fulfilled with an equal copy of itself on the plain-fulfillment path
// instead of re-entering adoption without end.
func identical(a, b interface{}) bool {
	if nil == a || nil == b {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
