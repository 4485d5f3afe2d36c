package eval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlignPaddingNoConstraint(t *testing.T) {
	require.Equal(t, 0, alignPadding(5, 0))
	require.Equal(t, 0, alignPadding(5, 1))
}

func TestAlignPaddingRoundsUpToBoundary(t *testing.T) {
	require.Equal(t, 0, alignPadding(8, 4))
	require.Equal(t, 3, alignPadding(1, 4))
}

func TestAlignmentForPrefersOperatorOverDefault(t *testing.T) {
	defer SetDefaultAlignment(defaultAlignment)
	SetDefaultAlignment(8)

	require.Equal(t, 4, alignmentFor(4))
	require.Equal(t, 8, alignmentFor(0))
}

func TestSetDefaultAlignmentIgnoresNonPositive(t *testing.T) {
	defer SetDefaultAlignment(defaultAlignment)
	SetDefaultAlignment(8)

	SetDefaultAlignment(0)
	require.Equal(t, 8, alignmentFor(0))

	SetDefaultAlignment(-1)
	require.Equal(t, 8, alignmentFor(0))
}
