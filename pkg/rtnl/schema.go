package rtnl

import (
	"github.com/rtnl-protocol/rtnl-go/pkg/nla"
)

// infoData resolves the payload schema of the link-info DATA
// attributes from the KIND string decoded earlier in the same list.
// Kinds outside the table stay opaque.
var infoData = nla.Dynamic(nla.BySibling("KIND", map[string]nla.Strategy{
	"vlan": nla.Nested(VlanSchema),
	"bond": nla.Nested(BondSchema),
	"veth": nla.Nested(VethSchema),
}))

// afFamily resolves a per-family group inside AF_SPEC from the
// member's own identifier, which carries the address family number.
var afFamily = nla.Dynamic(nla.ByType(map[uint16]nla.Strategy{
	2:  nla.Custom(inetConfBlock), // AF_INET
	10: nla.Nested(Inet6Schema),   // AF_INET6
}))

// IfInfoSchema is the top-level attribute registry of the interface
// information message.
var IfInfoSchema = nla.NewSchema("IFLA_",
	nla.Entry{ID: 0, Name: "IFLA_UNSPEC", Strategy: nla.Hex},
	nla.Entry{ID: 1, Name: "IFLA_ADDRESS", Strategy: nla.Custom(macCodec{})},
	nla.Entry{ID: 2, Name: "IFLA_BROADCAST", Strategy: nla.Custom(macCodec{})},
	nla.Entry{ID: 3, Name: "IFLA_IFNAME", Strategy: nla.AsciiZ},
	nla.Entry{ID: 4, Name: "IFLA_MTU", Strategy: nla.U32},
	nla.Entry{ID: 5, Name: "IFLA_LINK", Strategy: nla.U32},
	nla.Entry{ID: 6, Name: "IFLA_QDISC", Strategy: nla.AsciiZ},
	nla.Entry{ID: 7, Name: "IFLA_STATS", Strategy: nla.Custom(statsBlock)},
	nla.Entry{ID: 8, Name: "IFLA_COST", Strategy: nla.Hex},
	nla.Entry{ID: 9, Name: "IFLA_PRIORITY", Strategy: nla.Hex},
	nla.Entry{ID: 10, Name: "IFLA_MASTER", Strategy: nla.U32},
	nla.Entry{ID: 11, Name: "IFLA_WIRELESS", Strategy: nla.Hex},
	nla.Entry{ID: 12, Name: "IFLA_PROTINFO", Strategy: nla.Hex},
	nla.Entry{ID: 13, Name: "IFLA_TXQLEN", Strategy: nla.U32},
	nla.Entry{ID: 14, Name: "IFLA_MAP", Strategy: nla.Custom(ifMapCodec{})},
	nla.Entry{ID: 15, Name: "IFLA_WEIGHT", Strategy: nla.Hex},
	nla.Entry{ID: 16, Name: "IFLA_OPERSTATE", Strategy: nla.Custom(operStateCodec{})},
	nla.Entry{ID: 17, Name: "IFLA_LINKMODE", Strategy: nla.U8},
	nla.Entry{ID: 18, Name: "IFLA_LINKINFO", Strategy: nla.Nested(LinkInfoSchema)},
	nla.Entry{ID: 19, Name: "IFLA_NET_NS_PID", Strategy: nla.U32},
	nla.Entry{ID: 20, Name: "IFLA_IFALIAS", Strategy: nla.Hex},
	nla.Entry{ID: 21, Name: "IFLA_NUM_VF", Strategy: nla.U32},
	nla.Entry{ID: 22, Name: "IFLA_VFINFO_LIST", Strategy: nla.Hex},
	nla.Entry{ID: 23, Name: "IFLA_STATS64", Strategy: nla.Custom(stats64Block)},
	nla.Entry{ID: 24, Name: "IFLA_VF_PORTS", Strategy: nla.Hex},
	nla.Entry{ID: 25, Name: "IFLA_PORT_SELF", Strategy: nla.Hex},
	nla.Entry{ID: 26, Name: "IFLA_AF_SPEC", Strategy: nla.Nested(AFSpecSchema)},
	nla.Entry{ID: 27, Name: "IFLA_GROUP", Strategy: nla.U32},
	nla.Entry{ID: 28, Name: "IFLA_NET_NS_FD", Strategy: nla.Custom(NetnsFD)},
	nla.Entry{ID: 29, Name: "IFLA_EXT_MASK", Strategy: nla.Hex},
	nla.Entry{ID: 30, Name: "IFLA_PROMISCUITY", Strategy: nla.U32},
	nla.Entry{ID: 31, Name: "IFLA_NUM_TX_QUEUES", Strategy: nla.U32},
	nla.Entry{ID: 32, Name: "IFLA_NUM_RX_QUEUES", Strategy: nla.U32},
	nla.Entry{ID: 33, Name: "IFLA_CARRIER", Strategy: nla.U8},
	nla.Entry{ID: 34, Name: "IFLA_PHYS_PORT_ID", Strategy: nla.Hex},
	nla.Entry{ID: 35, Name: "IFLA_CARRIER_CHANGES", Strategy: nla.U32},
)

// LinkInfoSchema is the link-info group: the kind string and the
// kind-typed data payloads.
var LinkInfoSchema = nla.NewSchema("IFLA_INFO_",
	nla.Entry{ID: 0, Name: "IFLA_INFO_UNSPEC", Strategy: nla.Hex},
	nla.Entry{ID: 1, Name: "IFLA_INFO_KIND", Strategy: nla.AsciiZ},
	nla.Entry{ID: 2, Name: "IFLA_INFO_DATA", Strategy: infoData},
	nla.Entry{ID: 3, Name: "IFLA_INFO_XSTATS", Strategy: nla.Hex},
	nla.Entry{ID: 4, Name: "IFLA_INFO_SLAVE_KIND", Strategy: nla.AsciiZ},
	nla.Entry{ID: 5, Name: "IFLA_INFO_SLAVE_DATA", Strategy: infoData},
)

// VethSchema is the veth link-info data group. The peer attribute
// carries a complete interface message for the other end of the pair.
var VethSchema = nla.NewSchema("VETH_INFO_",
	nla.Entry{ID: 0, Name: "VETH_INFO_UNSPEC", Strategy: nla.Hex},
	nla.Entry{ID: 1, Name: "VETH_INFO_PEER", Strategy: nla.Custom(peerCodec{})},
)

// VlanSchema is the vlan link-info data group.
var VlanSchema = nla.NewSchema("IFLA_VLAN_",
	nla.Entry{ID: 0, Name: "IFLA_VLAN_UNSPEC", Strategy: nla.Hex},
	nla.Entry{ID: 1, Name: "IFLA_VLAN_ID", Strategy: nla.U16},
	nla.Entry{ID: 2, Name: "IFLA_VLAN_FLAGS", Strategy: nla.Custom(vlanFlagsCodec{})},
	nla.Entry{ID: 3, Name: "IFLA_VLAN_EGRESS_QOS", Strategy: nla.Hex},
	nla.Entry{ID: 4, Name: "IFLA_VLAN_INGRESS_QOS", Strategy: nla.Hex},
)

// BondSchema is the bonding link-info data group.
var BondSchema = nla.NewSchema("IFLA_BOND_",
	nla.Entry{ID: 0, Name: "IFLA_BOND_UNSPEC", Strategy: nla.Hex},
	nla.Entry{ID: 1, Name: "IFLA_BOND_MODE", Strategy: nla.U8},
	nla.Entry{ID: 2, Name: "IFLA_BOND_ACTIVE_SLAVE", Strategy: nla.U32},
	nla.Entry{ID: 3, Name: "IFLA_BOND_MIIMON", Strategy: nla.U32},
	nla.Entry{ID: 4, Name: "IFLA_BOND_UPDELAY", Strategy: nla.U32},
	nla.Entry{ID: 5, Name: "IFLA_BOND_DOWNDELAY", Strategy: nla.U32},
	nla.Entry{ID: 6, Name: "IFLA_BOND_USE_CARRIER", Strategy: nla.U8},
	nla.Entry{ID: 7, Name: "IFLA_BOND_ARP_INTERVAL", Strategy: nla.U32},
	nla.Entry{ID: 8, Name: "IFLA_BOND_ARP_IP_TARGET", Strategy: nla.Custom(arpTargetsCodec{})},
	nla.Entry{ID: 9, Name: "IFLA_BOND_ARP_VALIDATE", Strategy: nla.U32},
	nla.Entry{ID: 10, Name: "IFLA_BOND_ARP_ALL_TARGETS", Strategy: nla.U32},
	nla.Entry{ID: 11, Name: "IFLA_BOND_PRIMARY", Strategy: nla.U32},
	nla.Entry{ID: 12, Name: "IFLA_BOND_PRIMARY_RESELECT", Strategy: nla.U8},
	nla.Entry{ID: 13, Name: "IFLA_BOND_FAIL_OVER_MAC", Strategy: nla.U8},
	nla.Entry{ID: 14, Name: "IFLA_BOND_XMIT_HASH_POLICY", Strategy: nla.U8},
	nla.Entry{ID: 15, Name: "IFLA_BOND_RESEND_IGMP", Strategy: nla.U32},
	nla.Entry{ID: 16, Name: "IFLA_BOND_NUM_PEER_NOTIF", Strategy: nla.U8},
	nla.Entry{ID: 17, Name: "IFLA_BOND_ALL_SLAVES_ACTIVE", Strategy: nla.U8},
	nla.Entry{ID: 18, Name: "IFLA_BOND_MIN_LINKS", Strategy: nla.U32},
	nla.Entry{ID: 19, Name: "IFLA_BOND_LP_INTERVAL", Strategy: nla.U32},
	nla.Entry{ID: 20, Name: "IFLA_BOND_PACKETS_PER_SLAVE", Strategy: nla.U32},
	nla.Entry{ID: 21, Name: "IFLA_BOND_AD_LACP_RATE", Strategy: nla.U8},
	nla.Entry{ID: 22, Name: "IFLA_BOND_AD_SELECT", Strategy: nla.U8},
	nla.Entry{ID: 23, Name: "IFLA_BOND_AD_INFO", Strategy: nla.Nested(BondADInfoSchema)},
)

// BondADInfoSchema is the 802.3ad aggregation state group.
var BondADInfoSchema = nla.NewSchema("IFLA_BOND_AD_INFO_",
	nla.Entry{ID: 0, Name: "IFLA_BOND_AD_INFO_UNSPEC", Strategy: nla.Hex},
	nla.Entry{ID: 1, Name: "IFLA_BOND_AD_INFO_AGGREGATOR", Strategy: nla.U16},
	nla.Entry{ID: 2, Name: "IFLA_BOND_AD_INFO_NUM_PORTS", Strategy: nla.U16},
	nla.Entry{ID: 3, Name: "IFLA_BOND_AD_INFO_ACTOR_KEY", Strategy: nla.U16},
	nla.Entry{ID: 4, Name: "IFLA_BOND_AD_INFO_PARTNER_KEY", Strategy: nla.U16},
	nla.Entry{ID: 5, Name: "IFLA_BOND_AD_INFO_PARTNER_MAC", Strategy: nla.Custom(macCodec{})},
)

// AFSpecSchema is the per-address-family group. Each member's
// identifier is an address family number; the two families with a
// structured payload resolve through afFamily, every other family
// stays opaque.
var AFSpecSchema = nla.NewSchema("AF_",
	nla.Entry{ID: 0, Name: "AF_UNSPEC", Strategy: nla.Hex},
	nla.Entry{ID: 1, Name: "AF_UNIX", Strategy: nla.Hex},
	nla.Entry{ID: 2, Name: "AF_INET", Strategy: afFamily},
	nla.Entry{ID: 3, Name: "AF_AX25", Strategy: nla.Hex},
	nla.Entry{ID: 4, Name: "AF_IPX", Strategy: nla.Hex},
	nla.Entry{ID: 5, Name: "AF_APPLETALK", Strategy: nla.Hex},
	nla.Entry{ID: 6, Name: "AF_NETROM", Strategy: nla.Hex},
	nla.Entry{ID: 7, Name: "AF_BRIDGE", Strategy: nla.Hex},
	nla.Entry{ID: 8, Name: "AF_ATMPVC", Strategy: nla.Hex},
	nla.Entry{ID: 9, Name: "AF_X25", Strategy: nla.Hex},
	nla.Entry{ID: 10, Name: "AF_INET6", Strategy: afFamily},
)

// Inet6Schema is the IPv6 per-device group inside AF_SPEC.
var Inet6Schema = nla.NewSchema("IFLA_INET6_",
	nla.Entry{ID: 0, Name: "IFLA_INET6_UNSPEC", Strategy: nla.Hex},
	nla.Entry{ID: 1, Name: "IFLA_INET6_FLAGS", Strategy: nla.U32},
	nla.Entry{ID: 2, Name: "IFLA_INET6_CONF", Strategy: nla.Custom(inet6ConfBlock)},
	nla.Entry{ID: 3, Name: "IFLA_INET6_STATS", Strategy: nla.Custom(inet6StatsBlock)},
	nla.Entry{ID: 4, Name: "IFLA_INET6_MCAST", Strategy: nla.Hex},
	nla.Entry{ID: 5, Name: "IFLA_INET6_CACHEINFO", Strategy: nla.Custom(cacheInfoBlock)},
	nla.Entry{ID: 6, Name: "IFLA_INET6_ICMP6STATS", Strategy: nla.Custom(icmp6StatsBlock)},
	nla.Entry{ID: 7, Name: "IFLA_INET6_TOKEN", Strategy: nla.Custom(ip6Codec{})},
	nla.Entry{ID: 8, Name: "IFLA_INET6_ADDR_GEN_MODE", Strategy: nla.U8},
)
