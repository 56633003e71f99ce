package customErrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOfWrappedError(t *testing.T) {
	base := New(ErrIndexOutOfRange, "index %d is out of range", 4)
	wrapped := fmt.Errorf("failed to delete transaction: %w", base)

	require.Equal(t, ErrIndexOutOfRange, CodeOf(wrapped))
	require.True(t, Is(wrapped, ErrIndexOutOfRange))
	require.False(t, Is(wrapped, ErrStorage))
	require.Equal(t, "", CodeOf(errors.New("plain")))
	require.False(t, Is(nil, ErrStorage))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := Wrap(ErrStorage, cause, "Failed to save the transaction.")

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "disk I/O error")
	require.Contains(t, err.Error(), ErrStorage)
}
