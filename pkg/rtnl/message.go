package rtnl

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rtnl-protocol/rtnl-go/pkg/log"
	"github.com/rtnl-protocol/rtnl-go/pkg/nla"
	"github.com/rtnl-protocol/rtnl-go/pkg/nlenc"
)

// HeaderLen is the size of the fixed interface message header.
const HeaderLen = 16

// ErrShortMessage indicates a buffer shorter than the fixed header.
var ErrShortMessage = errors.New("message shorter than the fixed header")

// Header is the fixed interface message header. The byte after Family
// is alignment padding: zero on encode, ignored on decode.
type Header struct {
	// Family is the address family, usually AF_UNSPEC.
	Family uint8

	// Type is the link layer device type.
	Type uint16

	// Index is the interface index.
	Index int32

	// Flags is the interface flag word.
	Flags uint32

	// Change masks the flag bits a request means to change.
	Change uint32
}

// Message is one interface information message: the fixed header and
// the attribute tree.
type Message struct {
	Header Header
	Attrs  nla.Tree
}

// SetFlagNames fills Flags and Change from symbolic flag names. A
// name prefixed with "!" clears its bit; the change mask covers every
// named bit either way.
func (m *Message) SetFlagNames(names []string) error {
	flags, touched, err := NamesToFlags(names)
	if err != nil {
		return err
	}
	m.Header.Flags = flags
	m.Header.Change = touched
	return nil
}

// FlagNames returns the names of the set flag bits.
func (m *Message) FlagNames() []string {
	return FlagsToNames(m.Header.Flags, ^uint32(0))
}

// Codec decodes and encodes interface information messages.
type Codec struct {
	order    binary.ByteOrder
	logger   log.Logger
	treeOpts []nla.Option
}

// Option configures a Codec.
type Option func(*Codec)

// WithByteOrder overrides the default (host) byte order.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(c *Codec) { c.order = order }
}

// WithLogger routes codec events to the given logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Codec) {
		if logger == nil {
			logger = log.NoopLogger{}
		}
		c.logger = logger
	}
}

// NewCodec returns a Codec with the given options applied.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		order:  nlenc.Native,
		logger: log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.treeOpts = []nla.Option{
		nla.WithByteOrder(c.order),
		nla.WithLogger(c.logger),
	}
	return c
}

// decodeHeader reads the fixed header from the front of b. The caller
// guarantees HeaderLen bytes.
func decodeHeader(b []byte, order binary.ByteOrder) Header {
	return Header{
		Family: nlenc.Uint8(b),
		Type:   nlenc.Uint16(order, b[2:]),
		Index:  nlenc.Int32(order, b[4:]),
		Flags:  nlenc.Uint32(order, b[8:]),
		Change: nlenc.Uint32(order, b[12:]),
	}
}

// putHeader writes the fixed header into the first HeaderLen bytes of b.
func putHeader(b []byte, order binary.ByteOrder, h Header) {
	nlenc.PutUint8(b, h.Family)
	nlenc.PutUint16(order, b[2:], h.Type)
	nlenc.PutInt32(order, b[4:], h.Index)
	nlenc.PutUint32(order, b[8:], h.Flags)
	nlenc.PutUint32(order, b[12:], h.Change)
}

// Decode decodes a complete interface information message.
func (c *Codec) Decode(b []byte) (*Message, error) {
	if len(b) < HeaderLen {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrShortMessage, len(b), HeaderLen)
	}
	m := &Message{Header: decodeHeader(b, c.order)}
	attrs, err := nla.DecodeTree(b[HeaderLen:], IfInfoSchema, c.treeOpts...)
	if err != nil {
		return nil, err
	}
	m.Attrs = attrs
	c.logger.Log(log.NewMessageEvent(log.DirectionDecode, len(b)))
	return m, nil
}

// Encode encodes the message back to wire bytes.
func (c *Codec) Encode(m *Message) ([]byte, error) {
	b := make([]byte, HeaderLen)
	putHeader(b, c.order, m.Header)

	attrs, err := nla.EncodeTree(m.Attrs, IfInfoSchema, c.treeOpts...)
	if err != nil {
		return nil, err
	}
	b = append(b, attrs...)
	c.logger.Log(log.NewMessageEvent(log.DirectionEncode, len(b)))
	return b, nil
}

// defaultCodec serves the package-level convenience functions.
var defaultCodec = NewCodec()

// DecodeMessage decodes a message with the default codec.
func DecodeMessage(b []byte) (*Message, error) {
	return defaultCodec.Decode(b)
}

// EncodeMessage encodes a message with the default codec.
func EncodeMessage(m *Message) ([]byte, error) {
	return defaultCodec.Encode(m)
}

// Encode encodes the message with the default codec.
func (m *Message) Encode() ([]byte, error) {
	return defaultCodec.Encode(m)
}

// peerCodec codes the veth peer attribute, whose payload is a
// complete interface message for the other end of the pair. It
// implements nla.OptionCodec so the running call's byte order and
// logger carry into the embedded message instead of resetting to
// defaults.
type peerCodec struct{}

var _ nla.OptionCodec = peerCodec{}

func (peerCodec) DecodeValue(payload []byte, order binary.ByteOrder) (any, error) {
	return decodePeer(payload, order, []nla.Option{nla.WithByteOrder(order)})
}

func (peerCodec) DecodeValueOpts(payload []byte, order binary.ByteOrder, opts []nla.Option) (any, error) {
	return decodePeer(payload, order, opts)
}

func (peerCodec) EncodeValue(v any, order binary.ByteOrder) ([]byte, error) {
	return encodePeer(v, order, []nla.Option{nla.WithByteOrder(order)})
}

func (peerCodec) EncodeValueOpts(v any, order binary.ByteOrder, opts []nla.Option) ([]byte, error) {
	return encodePeer(v, order, opts)
}

func decodePeer(payload []byte, order binary.ByteOrder, opts []nla.Option) (any, error) {
	if len(payload) < HeaderLen {
		return nil, fmt.Errorf("%w: peer payload is %d bytes, need %d", ErrShortMessage, len(payload), HeaderLen)
	}
	attrs, err := nla.DecodeTree(payload[HeaderLen:], IfInfoSchema, opts...)
	if err != nil {
		return nil, err
	}
	return &Message{Header: decodeHeader(payload, order), Attrs: attrs}, nil
}

func encodePeer(v any, order binary.ByteOrder, opts []nla.Option) ([]byte, error) {
	peer, ok := v.(*Message)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a peer interface message", nla.ErrValueType, v)
	}
	b := make([]byte, HeaderLen)
	putHeader(b, order, peer.Header)
	attrs, err := nla.EncodeTree(peer.Attrs, IfInfoSchema, opts...)
	if err != nil {
		return nil, err
	}
	return append(b, attrs...), nil
}
