package nla

import (
	"encoding/binary"
	"fmt"

	"github.com/rtnl-protocol/rtnl-go/pkg/log"
	"github.com/rtnl-protocol/rtnl-go/pkg/nlenc"
)

// DecodeTree decodes an attribute list into a Tree using schema.
// Attributes decode in wire order, so a selector attribute is visible
// to the dynamically typed attributes that follow it. Identifiers the
// schema does not know are carried as raw bytes; a record or known
// payload shorter than it declares fails the whole decode.
func DecodeTree(b []byte, schema *Schema, opts ...Option) (Tree, error) {
	cfg := newConfig(opts...)
	return decodeList(b, schema, cfg, "")
}

func decodeList(b []byte, schema *Schema, cfg config, path string) (Tree, error) {
	var tree Tree
	for off := 0; off < len(b); {
		hdr, payload, next, err := DecodeFrame(b, off)
		if err != nil {
			cfg.logger.Log(log.NewTruncationEvent(log.DirectionDecode, path, err))
			return nil, err
		}

		entry := schema.Lookup(hdr.ID())
		nodePath := joinPath(path, nodeName(schema, hdr.ID()))

		st := entry.Strategy
		if st.Kind == KindDynamic {
			st = st.Resolve.ResolveStrategy(hdr, tree)
			if st.Kind == KindOpaque {
				cfg.logger.Log(log.NewFallbackEvent(log.DirectionDecode, nodePath, hdr.ID(), len(payload)))
			}
		}
		if !schema.Contains(hdr.ID()) {
			cfg.logger.Log(log.NewFallbackEvent(log.DirectionDecode, nodePath, hdr.ID(), len(payload)))
		}

		order := cfg.order
		if hdr.NetByteOrder() {
			order = nlenc.Network
		}

		v, err := decodeValue(payload, st, order, cfg, nodePath)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", nodePath, err)
		}
		tree = append(tree, Attr{
			ID:    hdr.ID(),
			Flags: hdr.Flags(),
			Name:  schema.NameOf(hdr.ID()),
			Value: v,
		})
		off = next
	}
	return tree, nil
}

func decodeValue(payload []byte, st Strategy, order binary.ByteOrder, cfg config, path string) (any, error) {
	switch st.Kind {
	case KindU8:
		if err := needLen(payload, 1, cfg, path); err != nil {
			return nil, err
		}
		return nlenc.Uint8(payload), nil
	case KindU16:
		if err := needLen(payload, 2, cfg, path); err != nil {
			return nil, err
		}
		return nlenc.Uint16(order, payload), nil
	case KindU32:
		if err := needLen(payload, 4, cfg, path); err != nil {
			return nil, err
		}
		return nlenc.Uint32(order, payload), nil
	case KindU64:
		if err := needLen(payload, 8, cfg, path); err != nil {
			return nil, err
		}
		return nlenc.Uint64(order, payload), nil
	case KindI32:
		if err := needLen(payload, 4, cfg, path); err != nil {
			return nil, err
		}
		return nlenc.Int32(order, payload), nil
	case KindString:
		return nlenc.String(payload), nil
	case KindNested:
		return decodeList(payload, st.Sub, cfg, path)
	case KindCustom:
		if oc, ok := st.Codec.(OptionCodec); ok {
			return oc.DecodeValueOpts(payload, order, cfg.opts)
		}
		return st.Codec.DecodeValue(payload, order)
	default:
		// Opaque and binary payloads are copied so the tree does not
		// alias the caller's buffer.
		return append([]byte(nil), payload...), nil
	}
}

// needLen checks a scalar payload against its fixed width.
func needLen(payload []byte, want int, cfg config, path string) error {
	if len(payload) >= want {
		return nil
	}
	err := fmt.Errorf("%w: payload is %d bytes, field needs %d", ErrTruncated, len(payload), want)
	cfg.logger.Log(log.NewTruncationEvent(log.DirectionDecode, path, err))
	return err
}

func nodeName(schema *Schema, id uint16) string {
	if n := schema.NameOf(id); n != "" {
		return n
	}
	return fmt.Sprintf("#%d", id)
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "/" + name
}
