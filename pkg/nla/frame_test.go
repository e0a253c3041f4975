package nla

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rtnl-protocol/rtnl-go/pkg/nlenc"
)

// mustFrame encodes one record, failing the test on error.
func mustFrame(t *testing.T, typ uint16, payload []byte) []byte {
	t.Helper()
	b, err := EncodeFrame(typ, payload)
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}
	return b
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{1, 4},
		{2, 4},
		{3, 4},
		{4, 4},
		{5, 8},
		{8, 8},
		{9, 12},
	}
	for _, tt := range tests {
		if got := AlignUp(tt.in); got != tt.want {
			t.Errorf("AlignUp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHeaderBits(t *testing.T) {
	h := Header{Type: FlagNested | FlagNetByteOrder | 0x1234}
	if got := h.ID(); got != 0x1234 {
		t.Errorf("ID() = %#x, want 0x1234", got)
	}
	if got := h.Flags(); got != FlagNested|FlagNetByteOrder {
		t.Errorf("Flags() = %#x", got)
	}
	if !h.Nested() || !h.NetByteOrder() {
		t.Error("flag accessors did not report set bits")
	}

	h = Header{Type: 7}
	if h.Nested() || h.NetByteOrder() {
		t.Error("flag accessors reported unset bits")
	}
}

func TestFrameRoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	b := mustFrame(t, 42, payload)

	if len(b) != 12 {
		t.Fatalf("frame length = %d, want 12 (4 header + 5 payload + 3 padding)", len(b))
	}
	if !bytes.Equal(b[9:], []byte{0, 0, 0}) {
		t.Errorf("padding bytes = %v, want zeros", b[9:])
	}

	h, got, next, err := DecodeFrame(b, 0)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if h.ID() != 42 {
		t.Errorf("ID = %d, want 42", h.ID())
	}
	if h.Len != 5 {
		t.Errorf("Len = %d, want payload size 5", h.Len)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %v, want %v", got, payload)
	}
	if next != 12 {
		t.Errorf("next = %d, want 12", next)
	}
}

func TestFrameSequence(t *testing.T) {
	b, err := AppendFrame(nil, 1, []byte{0xaa})
	if err != nil {
		t.Fatalf("AppendFrame: %v", err)
	}
	b, err = AppendFrame(b, 2, []byte{0xbb, 0xcc, 0xdd, 0xee})
	if err != nil {
		t.Fatalf("AppendFrame: %v", err)
	}

	h, _, next, err := DecodeFrame(b, 0)
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if h.ID() != 1 || next != 8 {
		t.Errorf("first record: ID %d next %d, want 1/8", h.ID(), next)
	}

	h, payload, next, err := DecodeFrame(b, next)
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if h.ID() != 2 || !bytes.Equal(payload, []byte{0xbb, 0xcc, 0xdd, 0xee}) {
		t.Errorf("second record: ID %d payload %v", h.ID(), payload)
	}
	if next != len(b) {
		t.Errorf("next = %d, want end of buffer %d", next, len(b))
	}
}

func TestFrameTerminalWithoutPadding(t *testing.T) {
	// A terminal record whose sender omitted the trailing padding:
	// total length 6, buffer ends there.
	b := mustFrame(t, 9, []byte{1, 2})[:6]

	_, payload, next, err := DecodeFrame(b, 0)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if !bytes.Equal(payload, []byte{1, 2}) {
		t.Errorf("payload = %v", payload)
	}
	if next != 6 {
		t.Errorf("next = %d, want capped at buffer end 6", next)
	}
}

func TestFrameTruncation(t *testing.T) {
	// A record declaring a 2-byte total length cannot frame its own
	// header.
	undersized := mustFrame(t, 1, nil)
	nlenc.PutUint16(nlenc.Native, undersized, 2)

	tests := []struct {
		name string
		b    []byte
	}{
		{"short header", mustFrame(t, 1, nil)[:3]},
		{"length below header size", undersized},
		{"declared length overruns", mustFrame(t, 1, []byte{1, 2, 3, 4, 5, 6, 7, 8})[:8]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := DecodeFrame(tt.b, 0); !errors.Is(err, ErrTruncated) {
				t.Errorf("err = %v, want ErrTruncated", err)
			}
		})
	}
}

func TestFrameOverflow(t *testing.T) {
	if _, err := AppendFrame(nil, 1, make([]byte, MaxPayloadLen+1)); !errors.Is(err, ErrFrameOverflow) {
		t.Fatalf("err = %v, want ErrFrameOverflow", err)
	}

	// The largest payload that fits still round-trips.
	b := mustFrame(t, 1, make([]byte, MaxPayloadLen))
	h, payload, _, err := DecodeFrame(b, 0)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if int(h.Len) != MaxPayloadLen || len(payload) != MaxPayloadLen {
		t.Errorf("Len = %d, payload = %d bytes, want %d", h.Len, len(payload), MaxPayloadLen)
	}
}
