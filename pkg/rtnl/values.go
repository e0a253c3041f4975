package rtnl

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/rtnl-protocol/rtnl-go/pkg/nla"
	"github.com/rtnl-protocol/rtnl-go/pkg/nlenc"
)

// macCodec codes a link-layer address payload as net.HardwareAddr.
type macCodec struct{}

func (macCodec) DecodeValue(payload []byte, _ binary.ByteOrder) (any, error) {
	return net.HardwareAddr(append([]byte(nil), payload...)), nil
}

func (macCodec) EncodeValue(v any, _ binary.ByteOrder) ([]byte, error) {
	switch a := v.(type) {
	case net.HardwareAddr:
		return a, nil
	case []byte:
		return a, nil
	case string:
		hw, err := net.ParseMAC(a)
		if err != nil {
			return nil, err
		}
		return hw, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a hardware address", nla.ErrValueType, v)
	}
}

// ip6Codec codes a 16-byte IPv6 address payload as net.IP.
type ip6Codec struct{}

func (ip6Codec) DecodeValue(payload []byte, _ binary.ByteOrder) (any, error) {
	if len(payload) < net.IPv6len {
		return nil, fmt.Errorf("%w: address payload is %d bytes, need %d",
			nla.ErrTruncated, len(payload), net.IPv6len)
	}
	return net.IP(append([]byte(nil), payload[:net.IPv6len]...)), nil
}

func (ip6Codec) EncodeValue(v any, _ binary.ByteOrder) ([]byte, error) {
	switch a := v.(type) {
	case net.IP:
		if ip := a.To16(); ip != nil {
			return ip, nil
		}
		return nil, fmt.Errorf("%w: %q is not an IPv6 address", nla.ErrValueType, a)
	case string:
		ip := net.ParseIP(a)
		if ip == nil || ip.To16() == nil {
			return nil, fmt.Errorf("%w: %q is not an IPv6 address", nla.ErrValueType, a)
		}
		return ip.To16(), nil
	default:
		return nil, fmt.Errorf("%w: %T is not an IP address", nla.ErrValueType, v)
	}
}

// VlanFlags is the decoded vlan flags attribute: a flag word and the
// mask of bits the sender means to change.
type VlanFlags struct {
	Flags uint32
	Mask  uint32
}

// vlanFlagsCodec codes the 8-byte vlan flags payload.
type vlanFlagsCodec struct{}

func (vlanFlagsCodec) DecodeValue(payload []byte, order binary.ByteOrder) (any, error) {
	if len(payload) < 8 {
		return nil, fmt.Errorf("%w: vlan flags payload is %d bytes, need 8",
			nla.ErrTruncated, len(payload))
	}
	return VlanFlags{
		Flags: nlenc.Uint32(order, payload),
		Mask:  nlenc.Uint32(order, payload[4:]),
	}, nil
}

func (vlanFlagsCodec) EncodeValue(v any, order binary.ByteOrder) ([]byte, error) {
	vf, ok := v.(VlanFlags)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a vlan flags pair", nla.ErrValueType, v)
	}
	payload := make([]byte, 8)
	nlenc.PutUint32(order, payload, vf.Flags)
	nlenc.PutUint32(order, payload[4:], vf.Mask)
	return payload, nil
}

// IfMap is the decoded device memory map attribute
// (struct ifmap).
type IfMap struct {
	MemStart uint64
	MemEnd   uint64
	BaseAddr uint64
	IRQ      uint16
	DMA      uint8
	Port     uint8
}

const ifMapLen = 28

// ifMapCodec codes the packed ifmap payload.
type ifMapCodec struct{}

func (ifMapCodec) DecodeValue(payload []byte, order binary.ByteOrder) (any, error) {
	if len(payload) < ifMapLen {
		return nil, fmt.Errorf("%w: ifmap payload is %d bytes, need %d",
			nla.ErrTruncated, len(payload), ifMapLen)
	}
	return IfMap{
		MemStart: nlenc.Uint64(order, payload),
		MemEnd:   nlenc.Uint64(order, payload[8:]),
		BaseAddr: nlenc.Uint64(order, payload[16:]),
		IRQ:      nlenc.Uint16(order, payload[24:]),
		DMA:      nlenc.Uint8(payload[26:]),
		Port:     nlenc.Uint8(payload[27:]),
	}, nil
}

func (ifMapCodec) EncodeValue(v any, order binary.ByteOrder) ([]byte, error) {
	m, ok := v.(IfMap)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a device memory map", nla.ErrValueType, v)
	}
	payload := make([]byte, ifMapLen)
	nlenc.PutUint64(order, payload, m.MemStart)
	nlenc.PutUint64(order, payload[8:], m.MemEnd)
	nlenc.PutUint64(order, payload[16:], m.BaseAddr)
	nlenc.PutUint16(order, payload[24:], m.IRQ)
	nlenc.PutUint8(payload[26:], m.DMA)
	nlenc.PutUint8(payload[27:], m.Port)
	return payload, nil
}

// arpTargetSlots is the fixed slot count of the bond ARP target list.
const arpTargetSlots = 16

// arpTargetsCodec codes the bond ARP target attribute, a fixed array
// of sixteen 32-bit slots. Decode returns every full slot present;
// encode pads the list out to the full array.
type arpTargetsCodec struct{}

func (arpTargetsCodec) DecodeValue(payload []byte, order binary.ByteOrder) (any, error) {
	n := len(payload) / 4
	if n > arpTargetSlots {
		n = arpTargetSlots
	}
	targets := make([]uint32, n)
	for i := range targets {
		targets[i] = nlenc.Uint32(order, payload[i*4:])
	}
	return targets, nil
}

func (arpTargetsCodec) EncodeValue(v any, order binary.ByteOrder) ([]byte, error) {
	targets, ok := v.([]uint32)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a target list", nla.ErrValueType, v)
	}
	if len(targets) > arpTargetSlots {
		return nil, fmt.Errorf("%w: %d targets exceed the %d slots",
			nla.ErrValueType, len(targets), arpTargetSlots)
	}
	payload := make([]byte, arpTargetSlots*4)
	for i, t := range targets {
		nlenc.PutUint32(order, payload[i*4:], t)
	}
	return payload, nil
}
