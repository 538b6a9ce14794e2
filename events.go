package promise

// The four event kinds a promise emits over its lifetime. The resolved and
// rejected kinds fire at most once, on a scheduler turn after settlement;
// notified fires any number of times before settlement; cancelled fires at
// most once, synchronously inside Cancel.
const (
	eventResolved  = "promise:resolved"
	eventRejected  = "promise:rejected"
	eventNotified  = "promise:notified"
	eventCancelled = "promise:cancelled"
)

// listener consumes a single event payload.
type listener func(payload interface{})

// on appends l to the ordered listener sequence for kind.
func (p *Promise) on(kind string, l listener) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.onLocked(kind, l)
}

// onLocked is on for callers already holding p.mu.
func (p *Promise) onLocked(kind string, l listener) {
	if nil == p.listeners {
		p.listeners = make(map[string][]listener)
	}

	p.listeners[kind] = append(p.listeners[kind], l)
}

// emit invokes, in registration order, every listener recorded for kind at
// the moment emit runs. It iterates over a snapshot, so listeners registered
// during the emission are not invoked by it, and a listener appending to the
// sequence cannot corrupt the iteration. Each listener is isolated: one
// panicking does not stop the ones after it, and nothing propagates to the
// caller.
func (p *Promise) emit(kind string, payload interface{}) {
	p.mu.Lock()
	registered := p.listeners[kind]
	if 0 == len(registered) {
		p.mu.Unlock()
		return
	}
	snapshot := make([]listener, len(registered))
	copy(snapshot, registered)
	p.mu.Unlock()

	for _, l := range snapshot {
		invokeListener(l, payload)
	}
}

func invokeListener(l listener, payload interface{}) {
	defer func() {
		_ = recover()
	}()

	l(payload)
}
