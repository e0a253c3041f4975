package nla

import (
	"errors"
	"fmt"

	"github.com/rtnl-protocol/rtnl-go/pkg/nlenc"
)

// Frame layout constants.
const (
	// FrameHeaderLen is the size of the record header: a 16-bit
	// length followed by a 16-bit type.
	FrameHeaderLen = 4

	// Align is the record alignment. Records are padded with zero
	// bytes so the next record starts on a 4-byte boundary.
	Align = 4
)

// The two high bits of the type field are flags, not part of the
// attribute identifier space.
const (
	// FlagNested marks a payload that is itself an attribute list.
	FlagNested uint16 = 0x8000

	// FlagNetByteOrder marks a payload carried in network (big-endian)
	// byte order instead of host order.
	FlagNetByteOrder uint16 = 0x4000

	// TypeMask extracts the 14-bit attribute identifier.
	TypeMask uint16 = 0x3fff
)

// Frame errors.
var (
	// ErrTruncated indicates a buffer shorter than a record or field
	// declares.
	ErrTruncated = errors.New("truncated attribute record")

	// ErrFrameOverflow indicates a payload too long for the 16-bit
	// record length field.
	ErrFrameOverflow = errors.New("attribute payload too long for record length field")
)

// MaxPayloadLen is the longest payload one record can frame. The
// 16-bit length field counts the 4-byte header too.
const MaxPayloadLen = 0xffff - FrameHeaderLen

// Header is one decoded record header.
type Header struct {
	// Len is the declared payload length, excluding the 4-byte header
	// and excluding padding.
	Len uint16

	// Type is the raw type field including flag bits.
	Type uint16
}

// ID returns the attribute identifier with the flag bits cleared.
func (h Header) ID() uint16 { return h.Type & TypeMask }

// Flags returns the flag bits of the type field.
func (h Header) Flags() uint16 { return h.Type &^ TypeMask }

// Nested reports whether the nested flag bit is set.
func (h Header) Nested() bool { return h.Type&FlagNested != 0 }

// NetByteOrder reports whether the net-byte-order flag bit is set.
func (h Header) NetByteOrder() bool { return h.Type&FlagNetByteOrder != 0 }

// AlignUp rounds n up to the next record alignment boundary.
func AlignUp(n int) int {
	return (n + Align - 1) &^ (Align - 1)
}

// DecodeFrame decodes the record starting at off in b. It returns the
// record header, the payload (h.Len bytes, padding excluded), and the
// offset of the next record.
//
// The next offset lands on a 4-byte boundary; for a terminal record
// whose sender omitted the trailing padding it is capped at len(b).
// DecodeFrame fails with ErrTruncated when fewer than 4 bytes remain
// at off or the declared length overruns the buffer.
func DecodeFrame(b []byte, off int) (h Header, payload []byte, next int, err error) {
	if len(b)-off < FrameHeaderLen {
		return h, nil, 0, fmt.Errorf("%w: %d bytes remain at offset %d, header needs %d",
			ErrTruncated, len(b)-off, off, FrameHeaderLen)
	}
	h.Len = nlenc.Uint16(nlenc.Native, b[off:])
	h.Type = nlenc.Uint16(nlenc.Native, b[off+2:])
	// The wire length counts the header; a value below the header size
	// cannot frame a record.
	if h.Len < FrameHeaderLen {
		return h, nil, 0, fmt.Errorf("%w: declared record length %d below header size",
			ErrTruncated, h.Len)
	}
	end := off + int(h.Len)
	if end > len(b) {
		return h, nil, 0, fmt.Errorf("%w: declared record length %d overruns buffer (%d bytes remain)",
			ErrTruncated, h.Len, len(b)-off)
	}
	payload = b[off+FrameHeaderLen : end]
	h.Len -= FrameHeaderLen // expose the payload size, not the wire field
	next = off + AlignUp(end-off)
	if next > len(b) {
		next = len(b)
	}
	return h, payload, next, nil
}

// AppendFrame appends one encoded record to dst: header with the
// unpadded payload length, the payload, and zero padding to the next
// 4-byte boundary. typ is written as given, flag bits included.
// Payloads longer than MaxPayloadLen fail with ErrFrameOverflow.
func AppendFrame(dst []byte, typ uint16, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadLen {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrFrameOverflow, len(payload), MaxPayloadLen)
	}
	total := FrameHeaderLen + len(payload)

	var hdr [FrameHeaderLen]byte
	nlenc.PutUint16(nlenc.Native, hdr[:], uint16(total))
	nlenc.PutUint16(nlenc.Native, hdr[2:], typ)

	dst = append(dst, hdr[:]...)
	dst = append(dst, payload...)
	for n := total; n < AlignUp(total); n++ {
		dst = append(dst, 0)
	}
	return dst, nil
}

// EncodeFrame encodes one record into a fresh buffer.
func EncodeFrame(typ uint16, payload []byte) ([]byte, error) {
	return AppendFrame(make([]byte, 0, AlignUp(FrameHeaderLen+len(payload))), typ, payload)
}
