package rtnl

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rtnl-protocol/rtnl-go/pkg/nla"
	"github.com/rtnl-protocol/rtnl-go/pkg/nlenc"
)

// Counter block errors.
var (
	// ErrTruncatedCounters indicates a counter block payload shorter
	// than its declared layout.
	ErrTruncatedCounters = errors.New("truncated counter block")

	// ErrUnknownCounterName indicates an encode map key outside the
	// block's layout.
	ErrUnknownCounterName = errors.New("unknown counter name")
)

// Counters is a decoded counter block, keyed by counter name.
type Counters map[string]uint64

// CounterBlock codes a block of equally sized counters laid out in a
// fixed order. The same codec shape covers the device statistics
// blocks (32- and 64-bit), the per-family configuration blocks, the
// IPv6 traffic and ICMPv6 blocks, and the neighbour cache timing
// block.
type CounterBlock struct {
	// Names lists the counters in wire order.
	Names []string

	// Width is the per-counter width in bytes, 4 or 8.
	Width int
}

// DecodeValue decodes the block into a Counters map. The payload must
// cover every named counter; trailing bytes added by a newer layout
// are ignored.
func (c CounterBlock) DecodeValue(payload []byte, order binary.ByteOrder) (any, error) {
	need := c.Width * len(c.Names)
	if len(payload) < need {
		return nil, fmt.Errorf("%w: payload is %d bytes, layout needs %d",
			ErrTruncatedCounters, len(payload), need)
	}
	counters := make(Counters, len(c.Names))
	for i, name := range c.Names {
		off := i * c.Width
		if c.Width == 8 {
			counters[name] = nlenc.Uint64(order, payload[off:])
		} else {
			counters[name] = uint64(nlenc.Uint32(order, payload[off:]))
		}
	}
	return counters, nil
}

// EncodeValue encodes a Counters map back to the block layout.
// Counters absent from the map encode as zero; a key outside the
// layout fails the encode.
func (c CounterBlock) EncodeValue(v any, order binary.ByteOrder) ([]byte, error) {
	counters, ok := v.(Counters)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a counter map", nla.ErrValueType, v)
	}
	for name := range counters {
		if !c.contains(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCounterName, name)
		}
	}
	payload := make([]byte, c.Width*len(c.Names))
	for i, name := range c.Names {
		off := i * c.Width
		if c.Width == 8 {
			nlenc.PutUint64(order, payload[off:], counters[name])
		} else {
			nlenc.PutUint32(order, payload[off:], uint32(counters[name]))
		}
	}
	return payload, nil
}

func (c CounterBlock) contains(name string) bool {
	for _, n := range c.Names {
		if n == name {
			return true
		}
	}
	return false
}

// statsNames is the device statistics layout, shared by the 32-bit
// and 64-bit blocks.
var statsNames = []string{
	"rx_packets",
	"tx_packets",
	"rx_bytes",
	"tx_bytes",
	"rx_errors",
	"tx_errors",
	"rx_dropped",
	"tx_dropped",
	"multicast",
	"collisions",
	"rx_length_errors",
	"rx_over_errors",
	"rx_crc_errors",
	"rx_frame_errors",
	"rx_fifo_errors",
	"rx_missed_errors",
	"tx_aborted_errors",
	"tx_carrier_errors",
	"tx_fifo_errors",
	"tx_heartbeat_errors",
	"tx_window_errors",
	"rx_compressed",
	"tx_compressed",
}

// inetConfNames is the IPv4 per-device configuration layout
// (struct ipv4_devconf).
var inetConfNames = []string{
	"sysctl",
	"forwarding",
	"mc_forwarding",
	"proxy_arp",
	"accept_redirects",
	"secure_redirects",
	"send_redirects",
	"shared_media",
	"rp_filter",
	"accept_source_route",
	"bootp_relay",
	"log_martians",
	"tag",
	"arp_filter",
	"medium_id",
	"disable_xfrm",
	"disable_policy",
	"force_igmp_version",
	"arp_announce",
	"arp_ignore",
	"promote_secondaries",
	"arp_accept",
	"arp_notify",
	"accept_local",
	"src_valid_mark",
	"proxy_arp_pvlan",
	"route_localnet",
}

// inet6ConfNames is the IPv6 per-device configuration layout
// (the DEVCONF_ order).
var inet6ConfNames = []string{
	"forwarding",
	"hop_limit",
	"mtu",
	"accept_ra",
	"accept_redirects",
	"autoconf",
	"dad_transmits",
	"router_solicitations",
	"router_solicitation_interval",
	"router_solicitation_delay",
	"use_tempaddr",
	"temp_valid_lft",
	"temp_prefered_lft",
	"regen_max_retry",
	"max_desync_factor",
	"max_addresses",
	"force_mld_version",
	"accept_ra_defrtr",
	"accept_ra_pinfo",
	"accept_ra_rtr_pref",
	"router_probe_interval",
	"accept_ra_rt_info_max_plen",
	"proxy_ndp",
	"optimistic_dad",
	"accept_source_route",
	"mc_forwarding",
	"disable_ipv6",
	"accept_dad",
	"force_tllao",
	"ndisc_notify",
}

// inet6StatsNames is the IPv6 traffic statistics layout.
var inet6StatsNames = []string{
	"inoctets",
	"fragcreates",
	"indiscards",
	"num",
	"outoctets",
	"outnoroutes",
	"inbcastoctets",
	"outforwdatagrams",
	"outpkts",
	"reasmtimeout",
	"inhdrerrors",
	"reasmreqds",
	"fragfails",
	"outmcastpkts",
	"inaddrerrors",
	"inmcastpkts",
	"reasmfails",
	"outdiscards",
	"outbcastoctets",
	"inmcastoctets",
	"inpkts",
	"fragoks",
	"intoobigerrors",
	"inunknownprotos",
	"intruncatedpkts",
	"outbcastpkts",
	"reasmoks",
	"inbcastpkts",
	"innoroutes",
	"indelivers",
	"outmcastoctets",
}

// icmp6StatsNames is the ICMPv6 statistics layout, 64-bit counters.
var icmp6StatsNames = []string{
	"num",
	"inerrors",
	"outmsgs",
	"outerrors",
	"inmsgs",
}

// cacheInfoNames is the neighbour cache timing layout
// (struct ifla_cacheinfo).
var cacheInfoNames = []string{
	"max_reasm_len",
	"tstamp",
	"reachable_time",
	"retrans_time",
}

// The counter block instances wired into the attribute registries.
var (
	statsBlock      = CounterBlock{Names: statsNames, Width: 4}
	stats64Block    = CounterBlock{Names: statsNames, Width: 8}
	inetConfBlock   = CounterBlock{Names: inetConfNames, Width: 4}
	inet6ConfBlock  = CounterBlock{Names: inet6ConfNames, Width: 4}
	inet6StatsBlock = CounterBlock{Names: inet6StatsNames, Width: 4}
	icmp6StatsBlock = CounterBlock{Names: icmp6StatsNames, Width: 8}
	cacheInfoBlock  = CounterBlock{Names: cacheInfoNames, Width: 4}
)
