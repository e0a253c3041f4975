package nla

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtnl-protocol/rtnl-go/pkg/log"
)

var (
	codecVlan = NewSchema("CV_",
		Entry{ID: 1, Name: "CV_ID", Strategy: U16},
	)

	codecInfo = NewSchema("CI_",
		Entry{ID: 1, Name: "CI_KIND", Strategy: AsciiZ},
		Entry{ID: 2, Name: "CI_DATA", Strategy: Dynamic(BySibling("KIND", map[string]Strategy{
			"vlan": Nested(codecVlan),
		}))},
	)

	codecTop = NewSchema("C_",
		Entry{ID: 1, Name: "C_NAME", Strategy: AsciiZ},
		Entry{ID: 2, Name: "C_MTU", Strategy: U32},
		Entry{ID: 3, Name: "C_INFO", Strategy: Nested(codecInfo)},
		Entry{ID: 4, Name: "C_INDEX", Strategy: I32},
		Entry{ID: 5, Name: "C_PROTO", Strategy: U16},
	)
)

// memLogger collects events for assertions.
type memLogger struct {
	events []log.Event
}

func (m *memLogger) Log(e log.Event) { m.events = append(m.events, e) }

func TestTreeRoundTrip(t *testing.T) {
	in := Tree{
		{Name: "NAME", Value: "eth0"},
		{Name: "MTU", Value: uint32(1500)},
		{Name: "INDEX", Value: int32(-2)},
		{Name: "INFO", Value: Tree{
			{Name: "KIND", Value: "vlan"},
			{Name: "DATA", Value: Tree{
				{Name: "ID", Value: uint16(100)},
			}},
		}},
	}

	b, err := EncodeTree(in, codecTop)
	require.NoError(t, err)

	out, err := DecodeTree(b, codecTop)
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, "eth0", out.Value("NAME"))
	assert.Equal(t, uint32(1500), out.Value("MTU"))
	assert.Equal(t, int32(-2), out.Value("INDEX"))

	info, ok := out.Value("INFO").(Tree)
	require.True(t, ok)
	assert.Equal(t, "vlan", info.Value("KIND"))

	data, ok := info.Value("DATA").(Tree)
	require.True(t, ok, "DATA should decode against the vlan sub-schema")
	assert.Equal(t, uint16(100), data.Value("ID"))

	// Decoded identifiers survive a second encode byte-for-byte.
	again, err := EncodeTree(out, codecTop)
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestUnknownAttributeRoundTrip(t *testing.T) {
	b, err := EncodeTree(Tree{{Name: "MTU", Value: uint32(9000)}}, codecTop)
	require.NoError(t, err)

	// Append a record the schema does not know, odd-length payload.
	b, err = AppendFrame(b, 99, []byte{0xde, 0xad, 0xbe})
	require.NoError(t, err)

	logger := &memLogger{}
	out, err := DecodeTree(b, codecTop, WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, out, 2)

	unknown := out[1]
	assert.Equal(t, uint16(99), unknown.ID)
	assert.Empty(t, unknown.Name)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe}, unknown.Value)

	require.Len(t, logger.events, 1)
	assert.Equal(t, log.CategoryFallback, logger.events[0].Category)
	assert.Equal(t, "#99", logger.events[0].Path)
	assert.Equal(t, uint16(99), logger.events[0].AttrID)

	// The opaque payload re-encodes byte-for-byte.
	again, err := EncodeTree(out, codecTop)
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestDynamicFallback(t *testing.T) {
	in := Tree{
		{Name: "INFO", Value: Tree{
			{Name: "KIND", Value: "wireguard"},
			{Name: "DATA", Value: []byte{1, 2, 3, 4}},
		}},
	}

	b, err := EncodeTree(in, codecTop)
	require.NoError(t, err)

	logger := &memLogger{}
	out, err := DecodeTree(b, codecTop, WithLogger(logger))
	require.NoError(t, err)

	info := out.Value("INFO").(Tree)
	assert.Equal(t, []byte{1, 2, 3, 4}, info.Value("DATA"),
		"unresolvable DATA should stay raw bytes")

	require.Len(t, logger.events, 1)
	assert.Equal(t, log.CategoryFallback, logger.events[0].Category)
	assert.Equal(t, "INFO/DATA", logger.events[0].Path)
}

func TestDecodeTruncatedScalar(t *testing.T) {
	// MTU is a 32-bit scalar; offer it two bytes.
	b, err := AppendFrame(nil, 2, []byte{1, 2})
	require.NoError(t, err)

	logger := &memLogger{}
	_, err = DecodeTree(b, codecTop, WithLogger(logger))
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Contains(t, err.Error(), "MTU")

	require.Len(t, logger.events, 1)
	assert.Equal(t, log.CategoryTruncation, logger.events[0].Category)
}

func TestNetByteOrderFlag(t *testing.T) {
	in := Tree{{Name: "PROTO", Flags: FlagNetByteOrder, Value: uint16(0x8100)}}

	b, err := EncodeTree(in, codecTop)
	require.NoError(t, err)

	// Payload starts after the 4-byte header, big-endian regardless of
	// host order.
	assert.Equal(t, []byte{0x81, 0x00}, b[4:6])

	out, err := DecodeTree(b, codecTop)
	require.NoError(t, err)
	assert.Equal(t, FlagNetByteOrder, out[0].Flags)
	assert.Equal(t, uint16(0x8100), out.Value("PROTO"))
}

func TestEncodeErrors(t *testing.T) {
	_, err := EncodeTree(Tree{{Name: "NO_SUCH", Value: 1}}, codecTop)
	assert.ErrorIs(t, err, ErrUnknownAttributeName)

	_, err = EncodeTree(Tree{{Name: "MTU", Value: "not a number"}}, codecTop)
	assert.ErrorIs(t, err, ErrValueType)

	_, err = EncodeTree(Tree{{Name: "NAME", Value: 42}}, codecTop)
	assert.ErrorIs(t, err, ErrValueType)
}
