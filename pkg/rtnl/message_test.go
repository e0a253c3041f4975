package rtnl

import (
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rtnl-protocol/rtnl-go/pkg/log"
	"github.com/rtnl-protocol/rtnl-go/pkg/nla"
	"github.com/rtnl-protocol/rtnl-go/pkg/nlenc"
)

// memLogger collects events for assertions.
type memLogger struct {
	events []log.Event
}

func (m *memLogger) Log(e log.Event) { m.events = append(m.events, e) }

func TestMessageHeaderRoundTrip(t *testing.T) {
	in := &Message{
		Header: Header{
			Family: 0,
			Type:   1, // ARPHRD_ETHER
			Index:  -3,
			Flags:  FlagUp | FlagRunning,
			Change: 0xffffffff,
		},
	}

	b, err := EncodeMessage(in)
	require.NoError(t, err)
	require.Len(t, b, HeaderLen)
	assert.Zero(t, b[1], "alignment pad must encode as zero")

	out, err := DecodeMessage(b)
	require.NoError(t, err)
	assert.Equal(t, in.Header, out.Header)
}

func TestDecodeShortMessage(t *testing.T) {
	_, err := DecodeMessage(make([]byte, HeaderLen-1))
	assert.ErrorIs(t, err, ErrShortMessage)
}

func TestMessageRoundTrip(t *testing.T) {
	in := &Message{
		Header: Header{Type: 1, Index: 2},
		Attrs: nla.Tree{
			{Name: "IFNAME", Value: "eth0.100"},
			{Name: "ADDRESS", Value: net.HardwareAddr{0x02, 0x42, 0xac, 0x11, 0x00, 0x02}},
			{Name: "MTU", Value: uint32(1500)},
			{Name: "OPERSTATE", Value: "UP"},
			{Name: "LINKINFO", Value: nla.Tree{
				{Name: "KIND", Value: "vlan"},
				{Name: "DATA", Value: nla.Tree{
					{Name: "ID", Value: uint16(100)},
					{Name: "FLAGS", Value: VlanFlags{Flags: 1, Mask: 0xffffffff}},
				}},
			}},
		},
	}

	b, err := EncodeMessage(in)
	require.NoError(t, err)

	out, err := DecodeMessage(b)
	require.NoError(t, err)

	assert.Equal(t, "eth0.100", out.Attrs.Value("IFNAME"))
	assert.Equal(t, uint32(1500), out.Attrs.Value("MTU"))
	assert.Equal(t, "UP", out.Attrs.Value("OPERSTATE"))

	info := out.Attrs.Value("LINKINFO").(nla.Tree)
	assert.Equal(t, "vlan", info.Value("KIND"))
	data := info.Value("DATA").(nla.Tree)
	assert.Equal(t, uint16(100), data.Value("ID"))
	assert.Equal(t, VlanFlags{Flags: 1, Mask: 0xffffffff}, data.Value("FLAGS"))

	// A decoded message re-encodes byte-identically.
	again, err := EncodeMessage(out)
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestUnknownKindStaysOpaque(t *testing.T) {
	raw := []byte{0x64, 0x00, 0x00, 0x00}
	in := &Message{
		Attrs: nla.Tree{
			{Name: "LINKINFO", Value: nla.Tree{
				{Name: "KIND", Value: "wireguard"},
				{Name: "DATA", Value: raw},
			}},
		},
	}

	b, err := EncodeMessage(in)
	require.NoError(t, err)

	out, err := DecodeMessage(b)
	require.NoError(t, err)

	info := out.Attrs.Value("LINKINFO").(nla.Tree)
	assert.Equal(t, raw, info.Value("DATA"), "unknown kinds decode as raw bytes")

	again, err := EncodeMessage(out)
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestVethPeerRecursion(t *testing.T) {
	peer := &Message{
		Header: Header{Index: 9},
		Attrs: nla.Tree{
			{Name: "IFNAME", Value: "veth-peer"},
			{Name: "MTU", Value: uint32(9000)},
		},
	}
	in := &Message{
		Attrs: nla.Tree{
			{Name: "IFNAME", Value: "veth0"},
			{Name: "LINKINFO", Value: nla.Tree{
				{Name: "KIND", Value: "veth"},
				{Name: "DATA", Value: nla.Tree{
					{Name: "PEER", Value: peer},
				}},
			}},
		},
	}

	b, err := EncodeMessage(in)
	require.NoError(t, err)

	out, err := DecodeMessage(b)
	require.NoError(t, err)

	info := out.Attrs.Value("LINKINFO").(nla.Tree)
	data := info.Value("DATA").(nla.Tree)
	decoded, ok := data.Value("PEER").(*Message)
	require.True(t, ok, "the peer payload is a complete interface message")
	assert.Equal(t, int32(9), decoded.Header.Index)
	assert.Equal(t, "veth-peer", decoded.Attrs.Value("IFNAME"))
	assert.Equal(t, uint32(9000), decoded.Attrs.Value("MTU"))
}

func TestVethPeerEventsReachCodecLogger(t *testing.T) {
	peer := &Message{
		Attrs: nla.Tree{
			{Name: "IFNAME", Value: "veth-peer"},
			{ID: 500, Value: []byte{9, 9, 9}}, // not in the registry
		},
	}
	in := &Message{
		Attrs: nla.Tree{
			{Name: "LINKINFO", Value: nla.Tree{
				{Name: "KIND", Value: "veth"},
				{Name: "DATA", Value: nla.Tree{
					{Name: "PEER", Value: peer},
				}},
			}},
		},
	}

	b, err := EncodeMessage(in)
	require.NoError(t, err)

	var fallbacks []log.Event
	codec := NewCodec(WithLogger(log.FuncLogger(func(e log.Event) {
		if e.Category == log.CategoryFallback {
			fallbacks = append(fallbacks, e)
		}
	})))

	out, err := codec.Decode(b)
	require.NoError(t, err)

	require.Len(t, fallbacks, 1, "events inside the peer message reach the codec's logger")
	assert.Equal(t, uint16(500), fallbacks[0].AttrID)

	// The unknown record survives the round trip byte-for-byte.
	again, err := codec.Encode(out)
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestVethPeerHonorsByteOrder(t *testing.T) {
	peer := &Message{
		Header: Header{Index: 0x01020304},
		Attrs:  nla.Tree{{Name: "MTU", Value: uint32(9000)}},
	}

	opts := []nla.Option{nla.WithByteOrder(nlenc.Network)}
	b, err := peerCodec{}.EncodeValueOpts(peer, nlenc.Network, opts)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, b[4:8], "peer header follows the given order")

	v, err := peerCodec{}.DecodeValueOpts(b, nlenc.Network, opts)
	require.NoError(t, err)
	out := v.(*Message)
	assert.Equal(t, int32(0x01020304), out.Header.Index)
	assert.Equal(t, uint32(9000), out.Attrs.Value("MTU"))
}

func TestAFSpecFamilies(t *testing.T) {
	conf := make(Counters)
	for _, name := range inetConfNames {
		conf[name] = 0
	}
	conf["forwarding"] = 1
	conf["rp_filter"] = 2

	in := &Message{
		Attrs: nla.Tree{
			{Name: "AF_SPEC", Value: nla.Tree{
				{Name: "INET", Value: conf},
				{Name: "INET6", Value: nla.Tree{
					{Name: "FLAGS", Value: uint32(0x80)},
					{Name: "TOKEN", Value: net.ParseIP("fe80::1")},
					{Name: "ADDR_GEN_MODE", Value: uint8(1)},
				}},
				// A family without a structured payload stays opaque.
				{Name: "BRIDGE", Value: []byte{1, 2, 3, 4}},
			}},
		},
	}

	b, err := EncodeMessage(in)
	require.NoError(t, err)

	out, err := DecodeMessage(b)
	require.NoError(t, err)

	spec := out.Attrs.Value("AF_SPEC").(nla.Tree)

	inet := spec.Value("INET").(Counters)
	assert.Equal(t, uint64(1), inet["forwarding"])
	assert.Equal(t, uint64(2), inet["rp_filter"])
	assert.Len(t, inet, len(inetConfNames))

	inet6 := spec.Value("INET6").(nla.Tree)
	assert.Equal(t, uint32(0x80), inet6.Value("FLAGS"))
	assert.True(t, net.ParseIP("fe80::1").Equal(inet6.Value("TOKEN").(net.IP)))

	assert.Equal(t, []byte{1, 2, 3, 4}, spec.Value("BRIDGE"))
}

func TestUnknownTopLevelAttribute(t *testing.T) {
	b, err := EncodeMessage(&Message{
		Attrs: nla.Tree{{Name: "MTU", Value: uint32(1500)}},
	})
	require.NoError(t, err)

	// A record this registry predates, odd payload length.
	b, err = nla.AppendFrame(b, 900, []byte{0xca, 0xfe, 0x01})
	require.NoError(t, err)

	out, err := DecodeMessage(b)
	require.NoError(t, err)
	require.Len(t, out.Attrs, 2)

	unknown := out.Attrs[1]
	assert.Empty(t, unknown.Name)
	assert.Equal(t, uint16(900), unknown.ID)
	assert.Equal(t, []byte{0xca, 0xfe, 0x01}, unknown.Value)

	again, err := EncodeMessage(out)
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestMessageFlagNames(t *testing.T) {
	m := &Message{}
	require.NoError(t, m.SetFlagNames([]string{"up", "!promisc"}))
	assert.Equal(t, uint32(0x1), m.Header.Flags)
	assert.Equal(t, uint32(0x101), m.Header.Change)
	assert.Equal(t, []string{"up"}, m.FlagNames())

	assert.ErrorIs(t, m.SetFlagNames([]string{"bogus"}), ErrUnknownFlagName)
}

func TestCodecLogging(t *testing.T) {
	logger := &memLogger{}
	codec := NewCodec(WithLogger(logger))

	b, err := codec.Encode(&Message{
		Attrs: nla.Tree{{Name: "IFNAME", Value: "lo"}},
	})
	require.NoError(t, err)

	_, err = codec.Decode(b)
	require.NoError(t, err)

	require.Len(t, logger.events, 2)
	assert.Equal(t, log.DirectionEncode, logger.events[0].Direction)
	assert.Equal(t, log.CategoryMessage, logger.events[0].Category)
	assert.Equal(t, len(b), logger.events[0].Size)
	assert.Equal(t, log.DirectionDecode, logger.events[1].Direction)
}

type linkFixture struct {
	Name   string   `yaml:"name"`
	Index  int32    `yaml:"index"`
	MTU    uint32   `yaml:"mtu"`
	Flags  []string `yaml:"flags"`
	State  string   `yaml:"state"`
	Kind   string   `yaml:"kind"`
	VlanID uint16   `yaml:"vlan_id"`
}

func TestLinkFixtures(t *testing.T) {
	raw, err := os.ReadFile("testdata/links.yaml")
	require.NoError(t, err)

	var fixtures []linkFixture
	require.NoError(t, yaml.Unmarshal(raw, &fixtures))
	require.NotEmpty(t, fixtures)

	for _, fx := range fixtures {
		t.Run(fx.Name, func(t *testing.T) {
			m := &Message{Header: Header{Index: fx.Index}}
			require.NoError(t, m.SetFlagNames(fx.Flags))
			m.Attrs = nla.Tree{
				{Name: "IFNAME", Value: fx.Name},
				{Name: "MTU", Value: fx.MTU},
				{Name: "OPERSTATE", Value: fx.State},
			}
			if fx.Kind != "" {
				data := nla.Tree{}
				if fx.Kind == "vlan" {
					data = nla.Tree{{Name: "ID", Value: fx.VlanID}}
				}
				m.Attrs = append(m.Attrs, nla.Attr{Name: "LINKINFO", Value: nla.Tree{
					{Name: "KIND", Value: fx.Kind},
					{Name: "DATA", Value: data},
				}})
			}

			b, err := EncodeMessage(m)
			require.NoError(t, err)

			out, err := DecodeMessage(b)
			require.NoError(t, err)

			assert.Equal(t, fx.Index, out.Header.Index)
			assert.Equal(t, fx.Name, out.Attrs.Value("IFNAME"))
			assert.Equal(t, fx.MTU, out.Attrs.Value("MTU"))
			assert.Equal(t, fx.State, out.Attrs.Value("OPERSTATE"))
			assert.ElementsMatch(t, FlagsToNames(out.Header.Flags, ^uint32(0)), out.FlagNames())
		})
	}
}
