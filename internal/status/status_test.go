package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeMatching(t *testing.T) {
	err := New(InvalidArgument, "size mismatch: %d != %d", 1, 2)
	require.True(t, Is(err, InvalidArgument))
	require.False(t, Is(err, Internal))
	require.Equal(t, "INVALID_ARGUMENT: size mismatch: 1 != 2", err.Error())
}

func TestTaggedError(t *testing.T) {
	err := NewWithTag(InvalidArgument, MaxValueSizeIsZero, "maxLen must be positive")
	require.True(t, HasTag(err, MaxValueSizeIsZero))
	require.False(t, HasTag(New(InvalidArgument, "other"), MaxValueSizeIsZero))
}
