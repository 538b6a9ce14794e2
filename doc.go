// Package promise implements a Promise/A+ style deferred value extended with
// two non-standard capabilities: cancellation and progress notification.
//
// A Promise is created pending and settles at most once, either fulfilled
// with a value or rejected with an error. Later settlement attempts are
// silent no-ops, and the outcome never changes once written. Chaining works
// the JavaScript way: Then returns a new promise whose outcome is produced
// by the handler that ran, handlers that return a Thenable have that value
// adopted, and handlers that fail (error return or panic) reject the derived
// promise.
//
// The package assumes a cooperatively scheduled host and never blocks or
// spawns goroutines itself. Every constructor takes a Scheduler, the host's
// "run this on a later turn" capability; all reactions are deferred through
// it, so code observing a promise can never tell whether it settled before
// or after the reaction was registered. The scheduler is consumed, not
// provided: an event loop, a microtask queue or a serialized worker pool all
// fit behind the one-method interface.
//
// Cancellation is cooperative and best-effort. Cancelling a pending promise
// rejects it with ErrCancelled; the cancelled event itself fires
// synchronously inside Cancel so that a registered Canceller, and the
// cancel-forwarding wired when a cancelable thenable was adopted, run before
// any further asynchronous work.
//
// Progress notifications are interim values a pending promise may emit any
// number of times before settling. They flow down chains through the
// onProgress handler of Then, and a failing progress handler only drops that
// one notification: deliberately, unlike fulfillment and rejection handlers,
// it never rejects the chain.
package promise
