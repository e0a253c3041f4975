// Package rtnl implements the codec for rtnetlink interface
// information messages: the 16-byte fixed header followed by the IFLA
// attribute tree.
//
// The attribute registries follow the kernel's if_link tables. The
// link-info group is context sensitive: the payload of the DATA
// attribute is typed by the KIND string decoded earlier in the same
// list (vlan, bond, veth), and the per-family groups inside AF_SPEC
// select their sub-schema from the member's own identifier. A veth
// DATA carries a complete peer interface message, so the codec is
// recursive at that point.
//
// Beyond the attribute tree the package carries the symbolic
// vocabularies of the message: interface flag names with "!" negation
// and a derived change mask, operational state names, and the named
// counter blocks (device statistics, per-family configuration,
// neighbour cache timing).
package rtnl
