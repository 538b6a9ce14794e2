package promise

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsCancelled(t *testing.T) {
	t.Run("True for ErrCancelled itself", func(t *testing.T) {
		require.True(t, IsCancelled(ErrCancelled))
		require.EqualError(t, ErrCancelled, "Cancelled")
	})

	t.Run("True for a wrapped cancellation", func(t *testing.T) {
		require.True(t, IsCancelled(fmt.Errorf("aborting: %w", ErrCancelled)))
	})

	t.Run("False for other errors", func(t *testing.T) {
		require.False(t, IsCancelled(errors.New("error reason")))
	})

	t.Run("False for nil", func(t *testing.T) {
		require.False(t, IsCancelled(nil))
	})
}

func TestRecoveredError(t *testing.T) {
	t.Run("Keeps error values as they are", func(t *testing.T) {
		boom := errors.New("boom")

		require.Same(t, boom, recoveredError(boom))
	})

	t.Run("Converts plain values", func(t *testing.T) {
		require.EqualError(t, recoveredError("zap"), "promise: recovered panic: zap")
	})
}
