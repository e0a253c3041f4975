// Package nlenc encodes and decodes the fixed-width scalar fields used
// in rtnetlink message headers and attribute payloads.
//
// Netlink scalar fields are host byte order by default; attribute
// payloads flagged with the net-byte-order bit are big-endian. Every
// function takes the byte order explicitly so the caller decides per
// field, with Native as the common case.
//
// Functions in this package operate on exact-width slices and follow
// the encoding/binary contract: a slice shorter than the value panics.
// Length validation against untrusted wire input belongs to the record
// layer (pkg/nla), which checks declared lengths before slicing.
package nlenc
