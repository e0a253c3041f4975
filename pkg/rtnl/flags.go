package rtnl

import (
	"errors"
	"fmt"
	"strings"
)

// Interface flag bits (the IFF set).
const (
	FlagUp          uint32 = 0x1     // interface is up
	FlagBroadcast   uint32 = 0x2     // broadcast address valid
	FlagDebug       uint32 = 0x4     // turn on debugging
	FlagLoopback    uint32 = 0x8     // is a loopback net
	FlagPointopoint uint32 = 0x10    // interface has p-p link
	FlagNotrailers  uint32 = 0x20    // avoid use of trailers
	FlagRunning     uint32 = 0x40    // interface RFC2863 OPER_UP
	FlagNoarp       uint32 = 0x80    // no ARP protocol
	FlagPromisc     uint32 = 0x100   // receive all packets
	FlagAllmulti    uint32 = 0x200   // receive all multicast packets
	FlagMaster      uint32 = 0x400   // master of a load balancer
	FlagSlave       uint32 = 0x800   // slave of a load balancer
	FlagMulticast   uint32 = 0x1000  // supports multicast
	FlagPortsel     uint32 = 0x2000  // can set media type
	FlagAutomedia   uint32 = 0x4000  // auto media select active
	FlagDynamic     uint32 = 0x8000  // dialup device with changing addresses
	FlagLowerUp     uint32 = 0x10000 // driver signals L1 up
	FlagDormant     uint32 = 0x20000 // driver signals dormant
	FlagEcho        uint32 = 0x40000 // echo sent packets
)

// SettableFlags covers the flags userspace may change directly.
const SettableFlags = FlagUp | FlagDebug | FlagNotrailers | FlagNoarp |
	FlagPromisc | FlagAllmulti

// VolatileFlags covers the flags owned by the kernel or the driver.
const VolatileFlags = FlagLoopback | FlagPointopoint | FlagBroadcast |
	FlagEcho | FlagMaster | FlagSlave | FlagRunning | FlagLowerUp |
	FlagDormant

// ErrUnknownFlagName indicates a flag name outside the catalogue.
var ErrUnknownFlagName = errors.New("unknown interface flag name")

// flagCatalogue lists the flags in bit order.
var flagCatalogue = []struct {
	name string
	bit  uint32
}{
	{"up", FlagUp},
	{"broadcast", FlagBroadcast},
	{"debug", FlagDebug},
	{"loopback", FlagLoopback},
	{"pointopoint", FlagPointopoint},
	{"notrailers", FlagNotrailers},
	{"running", FlagRunning},
	{"noarp", FlagNoarp},
	{"promisc", FlagPromisc},
	{"allmulti", FlagAllmulti},
	{"master", FlagMaster},
	{"slave", FlagSlave},
	{"multicast", FlagMulticast},
	{"portsel", FlagPortsel},
	{"automedia", FlagAutomedia},
	{"dynamic", FlagDynamic},
	{"lower_up", FlagLowerUp},
	{"dormant", FlagDormant},
	{"echo", FlagEcho},
}

// FlagsToNames translates a flag word to the names of the set bits,
// in bit order. mask restricts the translation to the bits it covers;
// pass ^uint32(0) for all of them. Bits outside the catalogue are
// dropped.
func FlagsToNames(flags, mask uint32) []string {
	var names []string
	for _, f := range flagCatalogue {
		if flags&mask&f.bit == f.bit {
			names = append(names, f.name)
		}
	}
	return names
}

// NamesToFlags translates flag names to a (value, touched) pair: the
// flag word and the mask of bits the names mention. A name prefixed
// with "!" clears its bit, contributing to the mask only. Unknown
// names fail with ErrUnknownFlagName.
func NamesToFlags(names []string) (flags, touched uint32, err error) {
	for _, name := range names {
		negated := strings.HasPrefix(name, "!")
		bit, ok := flagBit(strings.TrimPrefix(name, "!"))
		if !ok {
			return 0, 0, fmt.Errorf("%w: %q", ErrUnknownFlagName, name)
		}
		if !negated {
			flags |= bit
		}
		touched |= bit
	}
	return flags, touched, nil
}

func flagBit(name string) (uint32, bool) {
	for _, f := range flagCatalogue {
		if f.name == name {
			return f.bit, true
		}
	}
	return 0, false
}
