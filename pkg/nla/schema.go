package nla

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// Registry errors.
var (
	// ErrUnknownAttributeName indicates a reverse lookup for a name
	// absent from the schema.
	ErrUnknownAttributeName = errors.New("unknown attribute name")
)

// Kind selects how an attribute payload is decoded and encoded.
type Kind uint8

const (
	// KindOpaque carries the payload as raw bytes. It is also the
	// fallback for identifiers a schema does not know.
	KindOpaque Kind = iota
	// KindU8 is an unsigned 8-bit scalar.
	KindU8
	// KindU16 is an unsigned 16-bit scalar.
	KindU16
	// KindU32 is an unsigned 32-bit scalar.
	KindU32
	// KindU64 is an unsigned 64-bit scalar.
	KindU64
	// KindI32 is a signed 32-bit scalar.
	KindI32
	// KindString is a NUL-terminated string.
	KindString
	// KindBinary is a fixed-shape byte payload (addresses and such).
	KindBinary
	// KindNested is an attribute list governed by a sub-schema.
	KindNested
	// KindCustom delegates to a ValueCodec.
	KindCustom
	// KindDynamic resolves the concrete strategy at run time.
	KindDynamic
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOpaque:
		return "OPAQUE"
	case KindU8:
		return "U8"
	case KindU16:
		return "U16"
	case KindU32:
		return "U32"
	case KindU64:
		return "U64"
	case KindI32:
		return "I32"
	case KindString:
		return "STRING"
	case KindBinary:
		return "BINARY"
	case KindNested:
		return "NESTED"
	case KindCustom:
		return "CUSTOM"
	case KindDynamic:
		return "DYNAMIC"
	default:
		return "UNKNOWN"
	}
}

// ValueCodec converts between a payload and an in-memory value for
// payloads with a shape the primitive kinds cannot express.
type ValueCodec interface {
	// DecodeValue decodes a payload. order is the byte order selected
	// by the record's flags.
	DecodeValue(payload []byte, order binary.ByteOrder) (any, error)

	// EncodeValue encodes a value back to payload bytes.
	EncodeValue(v any, order binary.ByteOrder) ([]byte, error)
}

// OptionCodec is a ValueCodec whose payload embeds a complete
// schema-governed message. The tree codec hands it the options of the
// running call, so logging and byte-order settings carry into the
// embedded tree instead of resetting to defaults.
type OptionCodec interface {
	ValueCodec

	DecodeValueOpts(payload []byte, order binary.ByteOrder, opts []Option) (any, error)
	EncodeValueOpts(v any, order binary.ByteOrder, opts []Option) ([]byte, error)
}

// Strategy describes how one attribute is coded.
type Strategy struct {
	Kind    Kind
	Sub     *Schema    // KindNested
	Codec   ValueCodec // KindCustom
	Resolve Resolver   // KindDynamic
}

// Prepared primitive strategies, named after the payload shapes the
// wire format distinguishes.
var (
	U8     = Strategy{Kind: KindU8}
	U16    = Strategy{Kind: KindU16}
	U32    = Strategy{Kind: KindU32}
	U64    = Strategy{Kind: KindU64}
	I32    = Strategy{Kind: KindI32}
	AsciiZ = Strategy{Kind: KindString}
	Binary = Strategy{Kind: KindBinary}
	Hex    = Strategy{Kind: KindOpaque}
)

// Nested returns a strategy decoding the payload with sub.
func Nested(sub *Schema) Strategy {
	return Strategy{Kind: KindNested, Sub: sub}
}

// Custom returns a strategy delegating to codec.
func Custom(codec ValueCodec) Strategy {
	return Strategy{Kind: KindCustom, Codec: codec}
}

// Dynamic returns a strategy resolved per attribute at run time.
func Dynamic(r Resolver) Strategy {
	return Strategy{Kind: KindDynamic, Resolve: r}
}

// Entry is one schema row.
type Entry struct {
	// ID is the attribute identifier (14-bit space).
	ID uint16

	// Name is the full attribute name including the schema prefix,
	// e.g. "IFLA_MTU" in a schema with prefix "IFLA_".
	Name string

	// Strategy selects the payload coding.
	Strategy Strategy
}

// Schema maps attribute identifiers to names and strategies for one
// message kind or nested group. Schemas are values built once and read
// concurrently; they must not be mutated after construction.
type Schema struct {
	prefix  string
	entries map[uint16]Entry
	byName  map[string]uint16
}

// NewSchema builds a schema from entries whose names all carry prefix.
// The prefix is stripped to form the short external name and restored
// on reverse lookup. NewSchema panics on a duplicate identifier or
// name, or an entry missing the prefix: schemas are static tables and
// such a mistake is a programming error caught at init.
func NewSchema(prefix string, entries ...Entry) *Schema {
	s := &Schema{
		prefix:  prefix,
		entries: make(map[uint16]Entry, len(entries)),
		byName:  make(map[string]uint16, len(entries)),
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name, prefix) {
			panic(fmt.Sprintf("schema entry %q lacks prefix %q", e.Name, prefix))
		}
		if _, dup := s.entries[e.ID]; dup {
			panic(fmt.Sprintf("schema entry %q: duplicate identifier %d", e.Name, e.ID))
		}
		short := strings.TrimPrefix(e.Name, prefix)
		if _, dup := s.byName[short]; dup {
			panic(fmt.Sprintf("schema entry %q: duplicate name", e.Name))
		}
		s.entries[e.ID] = e
		s.byName[short] = e.ID
	}
	return s
}

// Prefix returns the shared name prefix.
func (s *Schema) Prefix() string { return s.prefix }

// Lookup returns the entry for id. Identifiers outside the table get
// the opaque fallback entry with an empty name; Lookup never fails, so
// unknown attributes decode as raw bytes instead of aborting the tree.
func (s *Schema) Lookup(id uint16) Entry {
	if e, ok := s.entries[id]; ok {
		return e
	}
	return Entry{ID: id, Strategy: Hex}
}

// Contains reports whether id has an entry in the table.
func (s *Schema) Contains(id uint16) bool {
	_, ok := s.entries[id]
	return ok
}

// TypeOf returns the identifier for name. Both the short name ("MTU")
// and the prefixed name ("IFLA_MTU") are accepted. It fails with
// ErrUnknownAttributeName when the name is not in the table.
func (s *Schema) TypeOf(name string) (uint16, error) {
	if id, ok := s.byName[strings.TrimPrefix(name, s.prefix)]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttributeName, name)
}

// NameOf returns the short name for id, or the empty string for
// identifiers outside the table.
func (s *Schema) NameOf(id uint16) string {
	return s.entries[id].nameShort(s.prefix)
}

func (e Entry) nameShort(prefix string) string {
	return strings.TrimPrefix(e.Name, prefix)
}
