package promise

// State identifies the settlement state of a promise. Cancellation is not a
// state of its own: a cancelled promise is a rejected promise whose reason is
// ErrCancelled.
type State string

const (
	StatePending   = State("pending")
	StateFulfilled = State("fulfilled")
	StateRejected  = State("rejected")
)

type Resolver func(value interface{})
type Rejector func(reason error)
type Notifier func(update interface{})

// Executor is invoked synchronously, exactly once, by New. It receives the
// three settlement capabilities of the promise under construction; they are
// the only way outside code settles or notifies that promise.
type Executor func(resolve Resolver, reject Rejector, notify Notifier)

// Canceller runs synchronously when the promise it was registered on is
// cancelled. A panic inside it is discarded.
type Canceller func()

// FulfillHandler transforms a fulfillment value into the outcome of the
// derived promise. A non-nil err, or a panic, rejects the derived promise;
// a Thenable result is adopted instead of being used as a plain value.
type FulfillHandler func(value interface{}) (result interface{}, err error)

// RejectHandler transforms a rejection reason into the outcome of the derived
// promise, following the same rules as FulfillHandler. Returning a nil error
// recovers the chain into fulfillment.
type RejectHandler func(reason error) (result interface{}, err error)

// ProgressHandler transforms a progress notification before it is re-emitted
// on the derived promise. A non-nil err, or a panic, silently stops that one
// notification: nothing is re-emitted and the derived promise is unaffected.
type ProgressHandler func(update interface{}) (result interface{}, err error)

// Thenable is the capability recognized by the resolution algorithm: a value
// whose eventual outcome a promise can adopt. *Promise satisfies it; foreign
// implementations interoperate by invoking, at most once between them, the
// first two callbacks when they settle, and the third for interim progress.
// The return value is ignored during adoption, so implementations that cannot
// produce a derived promise may return nil.
type Thenable interface {
	Then(onFulfilled FulfillHandler, onRejected RejectHandler, onProgress ProgressHandler) *Promise
}

// Cancelable marks a Thenable that accepts a best-effort abort request.
// During adoption the adopting promise forwards its own cancellation to the
// adopted value through this interface. The return value is ignored there.
type Cancelable interface {
	Cancel() *Promise
}

// Scheduler is the deferred-execution capability every promise is constructed
// with. Schedule hands task to the host to run on a later turn of its logical
// thread; tasks scheduled by this package must run in FIFO order relative to
// each other, and task must never be invoked before Schedule returns.
//
// This package never blocks on a scheduler and never implements one: an event
// loop, a microtask queue or a serialized worker all qualify, as long as they
// keep the two guarantees above.
type Scheduler interface {
	Schedule(task func())
}

// SchedulerFunc adapts a plain function to the Scheduler interface.
type SchedulerFunc func(task func())

func (f SchedulerFunc) Schedule(task func()) {
	f(task)
}
