package provider

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceProviderReserveAndView(t *testing.T) {
	p := NewSlice([]byte("hello"))
	require.True(t, p.IsDirect())
	require.NoError(t, p.ReserveItem(0))
	require.Equal(t, byte('h'), p.ViewItem(0))
	require.NoError(t, p.ReserveSlice(1, 3))
	require.Equal(t, "ell", string(p.ViewSlice(1, 3)))
}

func TestSliceProviderEndOfStream(t *testing.T) {
	p := NewSlice([]byte("hi"))
	require.ErrorIs(t, p.ReserveItem(2), ErrEndOfStream)
	require.ErrorIs(t, p.ReserveSlice(1, 5), ErrEndOfStream)
}

func TestSliceProviderDropIsBookkeepingOnly(t *testing.T) {
	p := NewSlice([]byte("hello"))
	require.Equal(t, 0, p.ConsumedCount())
	p.Drop(2)
	require.Equal(t, 2, p.ConsumedCount())
	// The bytes are still viewable: a direct provider never frees storage.
	require.Equal(t, byte('h'), p.ViewItem(0))
}
