// Package nla implements the generic netlink attribute (NLA) tree
// codec: type-length-value records with 4-byte alignment, recursive
// nesting, and schema-driven typing.
//
// The codec is split into three layers:
//
//   - frame: one wire record (length, type, payload, padding) and the
//     two reserved flag bits in the type field;
//   - schema: a per-message-kind table mapping attribute identifiers
//     to names and decode/encode strategies, with an opaque fallback
//     for identifiers the table does not know;
//   - tree: DecodeTree/EncodeTree walk a byte buffer into a []Attr and
//     back, recursing through nested and dynamically resolved
//     sub-schemas.
//
// # Context-sensitive attributes
//
// Some attributes cannot be typed by their identifier alone. A "data"
// attribute may be interpreted according to a "kind" string decoded
// earlier in the same attribute list, and address-family groups select
// a sub-schema from the member's own identifier. Both cases go through
// the Resolver abstraction: decode proceeds in wire order and hands
// the resolver the partially decoded sibling set, so a selector
// attribute is visible to the consumers that follow it.
//
// # Forward compatibility
//
// Unknown attribute identifiers never fail a decode. Their payloads
// are carried as raw bytes and re-encoded byte-for-byte, so a tree
// containing attributes this schema predates still round-trips.
package nla
