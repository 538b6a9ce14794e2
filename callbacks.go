package promise

// reactFulfilled runs the fulfillment reaction of a derived promise. With no
// handler the incoming value passes through the resolution procedure
// unchanged; with one, the handler's outcome becomes the derived promise's
// outcome. No-op when the derived promise is already settled.
func (p *Promise) reactFulfilled(cb FulfillHandler, value interface{}) {
	if p.Settled() {
		return
	}
	if nil == cb {
		p.resolveValue(value)
		return
	}

	result, err := runHandler(func() (interface{}, error) {
		return cb(value)
	})
	p.completeReaction(result, err)
}

// reactRejected runs the rejection reaction of a derived promise. With no
// handler the reason passes through untouched, keeping the chain rejected;
// with one, the handler's outcome becomes the derived promise's outcome,
// which is how a chain recovers. No-op when already settled.
func (p *Promise) reactRejected(cb RejectHandler, reason error) {
	if p.Settled() {
		return
	}
	if nil == cb {
		p.reject(reason)
		return
	}

	result, err := runHandler(func() (interface{}, error) {
		return cb(reason)
	})
	p.completeReaction(result, err)
}

// completeReaction feeds a handler's outcome into the derived promise.
// Thenable results are adopted before plain resolution is considered, so a
// handler returning the promise derived from it hits the self-adoption
// rejection rather than fulfilling the promise with itself.
func (p *Promise) completeReaction(result interface{}, err error) {
	if nil != err {
		p.reject(err)
		return
	}
	if p.adoptThenable(result) {
		return
	}
	p.resolveValue(result)
}

// reactProgress relays a progress notification into a derived promise. With
// no handler the update is re-emitted unchanged. A handler error or panic
// stops this one notification and nothing else: no re-emission, no
// settlement. No-op when already settled.
func (p *Promise) reactProgress(cb ProgressHandler, update interface{}) {
	if p.Settled() {
		return
	}
	if nil == cb {
		p.notify(update)
		return
	}

	result, err := runHandler(func() (interface{}, error) {
		return cb(update)
	})
	if nil != err {
		return
	}
	p.notify(result)
}

// runHandler invokes a user callback, converting a panic into the error
// return so reactions deal with a single failure channel.
func runHandler(fn func() (interface{}, error)) (result interface{}, err error) {
	defer func() {
		if r := recover(); nil != r {
			result, err = nil, recoveredError(r)
		}
	}()

	return fn()
}
