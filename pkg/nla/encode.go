package nla

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rtnl-protocol/rtnl-go/pkg/nlenc"
)

// Encode errors.
var (
	// ErrValueType indicates an attribute value of a Go type the
	// attribute's strategy cannot encode.
	ErrValueType = errors.New("unsupported value type for attribute")
)

// EncodeTree encodes a Tree back to wire bytes using schema.
// Attributes are written in tree order. Nodes carrying a Name are
// resolved through the schema by name; nameless nodes (opaque
// attributes from an earlier decode) use their identifier and
// re-encode their raw bytes unchanged.
func EncodeTree(tree Tree, schema *Schema, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts...)
	return encodeList(nil, tree, schema, cfg, "")
}

func encodeList(dst []byte, tree Tree, schema *Schema, cfg config, path string) ([]byte, error) {
	for _, a := range tree {
		id := a.ID
		if a.Name != "" {
			var err error
			id, err = schema.TypeOf(a.Name)
			if err != nil {
				return nil, err
			}
		}

		nodePath := joinPath(path, nodeName(schema, id))
		st := schema.Lookup(id).Strategy
		if st.Kind == KindDynamic {
			st = st.Resolve.ResolveStrategy(Header{Type: id | a.Flags}, tree)
		}

		order := cfg.order
		if a.Flags&FlagNetByteOrder != 0 {
			order = nlenc.Network
		}

		payload, err := encodeValue(a.Value, st, order, cfg, nodePath)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", nodePath, err)
		}
		dst, err = AppendFrame(dst, id|a.Flags, payload)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", nodePath, err)
		}
	}
	return dst, nil
}

func encodeValue(v any, st Strategy, order binary.ByteOrder, cfg config, path string) ([]byte, error) {
	switch st.Kind {
	case KindU8:
		n, err := toUint64(v)
		if err != nil {
			return nil, err
		}
		return []byte{uint8(n)}, nil
	case KindU16:
		n, err := toUint64(v)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 2)
		nlenc.PutUint16(order, b, uint16(n))
		return b, nil
	case KindU32:
		n, err := toUint64(v)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 4)
		nlenc.PutUint32(order, b, uint32(n))
		return b, nil
	case KindU64:
		n, err := toUint64(v)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 8)
		nlenc.PutUint64(order, b, n)
		return b, nil
	case KindI32:
		var n int32
		switch x := v.(type) {
		case int32:
			n = x
		case int:
			n = int32(x)
		default:
			return nil, fmt.Errorf("%w: %T is not a signed scalar", ErrValueType, v)
		}
		b := make([]byte, 4)
		nlenc.PutInt32(order, b, n)
		return b, nil
	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not a string", ErrValueType, v)
		}
		return nlenc.Bytes(s), nil
	case KindNested:
		sub, ok := v.(Tree)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not a nested attribute list", ErrValueType, v)
		}
		return encodeList(nil, sub, st.Sub, cfg, path)
	case KindCustom:
		if oc, ok := st.Codec.(OptionCodec); ok {
			return oc.EncodeValueOpts(v, order, cfg.opts)
		}
		return st.Codec.EncodeValue(v, order)
	default:
		b, ok := v.([]byte)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not a byte payload", ErrValueType, v)
		}
		return b, nil
	}
}

// toUint64 widens the accepted unsigned scalar types. Plain int is
// accepted so literals work with Tree.Set.
func toUint64(v any) (uint64, error) {
	switch x := v.(type) {
	case uint8:
		return uint64(x), nil
	case uint16:
		return uint64(x), nil
	case uint32:
		return uint64(x), nil
	case uint64:
		return x, nil
	case int:
		return uint64(x), nil
	default:
		return 0, fmt.Errorf("%w: %T is not an unsigned scalar", ErrValueType, v)
	}
}
