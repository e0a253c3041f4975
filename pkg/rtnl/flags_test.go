package rtnl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesToFlags(t *testing.T) {
	flags, touched, err := NamesToFlags([]string{"up", "!promisc"})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1), flags)
	assert.Equal(t, uint32(0x101), touched)

	flags, touched, err = NamesToFlags([]string{"up", "multicast", "!noarp"})
	require.NoError(t, err)
	assert.Equal(t, FlagUp|FlagMulticast, flags)
	assert.Equal(t, FlagUp|FlagMulticast|FlagNoarp, touched)

	flags, touched, err = NamesToFlags(nil)
	require.NoError(t, err)
	assert.Zero(t, flags)
	assert.Zero(t, touched)

	_, _, err = NamesToFlags([]string{"up", "warp_drive"})
	assert.ErrorIs(t, err, ErrUnknownFlagName)
}

func TestFlagsToNames(t *testing.T) {
	// promisc is in the mask but its bit is clear, so it stays out.
	names := FlagsToNames(0x1, 0x101)
	assert.Equal(t, []string{"up"}, names)

	// Catalogue order, not insertion order.
	names = FlagsToNames(FlagEcho|FlagUp|FlagRunning, ^uint32(0))
	assert.Equal(t, []string{"up", "running", "echo"}, names)

	// Bits outside the catalogue are dropped.
	names = FlagsToNames(1<<30, ^uint32(0))
	assert.Empty(t, names)
}

func TestFlagNameRoundTrip(t *testing.T) {
	in := []string{"up", "broadcast", "multicast", "!promisc", "!debug"}

	flags, touched, err := NamesToFlags(in)
	require.NoError(t, err)

	// The non-negated names come back, in catalogue order.
	assert.Equal(t, []string{"up", "broadcast", "multicast"}, FlagsToNames(flags, touched))
}

func TestDerivedMasks(t *testing.T) {
	assert.Equal(t, uint32(0x1|0x4|0x20|0x80|0x100|0x200), SettableFlags)
	assert.Equal(t, uint32(0x8|0x10|0x2|0x40000|0x400|0x800|0x40|0x10000|0x20000), VolatileFlags)
	assert.Zero(t, SettableFlags&VolatileFlags)
}
