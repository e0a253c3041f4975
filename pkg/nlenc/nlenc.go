package nlenc

import "encoding/binary"

// Native is the host byte order, the wire order for rtnetlink headers
// and for attribute payloads without the net-byte-order flag.
var Native binary.ByteOrder = binary.NativeEndian

// Network is the byte order for attribute payloads carrying the
// net-byte-order flag.
var Network binary.ByteOrder = binary.BigEndian

// Uint8 decodes a single byte.
func Uint8(b []byte) uint8 { return b[0] }

// PutUint8 encodes a single byte.
func PutUint8(b []byte, v uint8) { b[0] = v }

// Uint16 decodes a 16-bit unsigned integer in the given order.
func Uint16(order binary.ByteOrder, b []byte) uint16 { return order.Uint16(b) }

// PutUint16 encodes a 16-bit unsigned integer in the given order.
func PutUint16(order binary.ByteOrder, b []byte, v uint16) { order.PutUint16(b, v) }

// Uint32 decodes a 32-bit unsigned integer in the given order.
func Uint32(order binary.ByteOrder, b []byte) uint32 { return order.Uint32(b) }

// PutUint32 encodes a 32-bit unsigned integer in the given order.
func PutUint32(order binary.ByteOrder, b []byte, v uint32) { order.PutUint32(b, v) }

// Uint64 decodes a 64-bit unsigned integer in the given order.
func Uint64(order binary.ByteOrder, b []byte) uint64 { return order.Uint64(b) }

// PutUint64 encodes a 64-bit unsigned integer in the given order.
func PutUint64(order binary.ByteOrder, b []byte, v uint64) { order.PutUint64(b, v) }

// Int32 decodes a 32-bit signed integer in the given order.
// Used for the interface index header field.
func Int32(order binary.ByteOrder, b []byte) int32 { return int32(order.Uint32(b)) }

// PutInt32 encodes a 32-bit signed integer in the given order.
func PutInt32(order binary.ByteOrder, b []byte, v int32) { order.PutUint32(b, uint32(v)) }

// String decodes a NUL-terminated string payload. Bytes from the first
// NUL onward are discarded; a payload without a NUL is taken whole.
func String(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// Bytes encodes s as a NUL-terminated string payload.
func Bytes(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}
