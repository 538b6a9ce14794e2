package promise

import (
	"strings"
	"testing"

	sync "github.com/sasha-s/go-deadlock"
	"github.com/stretchr/testify/require"
)

func NewCallsRegistry(expectedCalls uint) *callsRegistry {
	registry := callsRegistry{
		expectedCalls: expectedCalls,
	}

	return &registry
}

// callsRegistry records the order in which handlers fire. Calls beyond the
// expected count are recorded with an "unexpected:" prefix rather than
// panicking, because panics raised inside promise handlers are recovered by
// the library and would hide the surplus call; this way double settlement
// and similar bugs surface in the summary comparison instead.
type callsRegistry struct {
	mutex sync.RWMutex

	registry      []string
	expectedCalls uint
}

func (r *callsRegistry) Register(place string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if 0 == r.expectedCalls {
		r.registry = append(r.registry, "unexpected:"+place)
		return
	}

	r.registry = append(r.registry, place)
	r.expectedCalls--
}

func (r *callsRegistry) Summarize() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return strings.Join(r.registry, "|")
}

// AssertCallsAre requires that every expected call has been made, in
// exactly the given order.
func (r *callsRegistry) AssertCallsAre(t *testing.T, expectedRegistry string) {
	t.Helper()

	require.Zero(t, r.expectedCalls, "there are still expected call(s) left, registered: %v", r.registry)
	require.Equal(t, expectedRegistry, r.Summarize())
}

func (r *callsRegistry) AssertCurrentCallsStackIs(t *testing.T, expectedRegistry string) {
	t.Helper()

	require.Equal(t, expectedRegistry, r.Summarize())
}

func (r *callsRegistry) AssertThereAreNCallsLeft(t *testing.T, callsLeftNumber uint) {
	t.Helper()

	require.Equal(t, callsLeftNumber, r.expectedCalls)
}
