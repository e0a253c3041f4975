package rtnl

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rtnl-protocol/rtnl-go/pkg/nla"
)

// Operational state errors.
var (
	// ErrUnknownStateName indicates an encode with a state name
	// outside the table.
	ErrUnknownStateName = errors.New("unknown operational state name")

	// ErrUnknownStateCode indicates a decode of a state code outside
	// the table.
	ErrUnknownStateCode = errors.New("unknown operational state code")
)

// stateNames maps RFC 2863 operational state codes to names, indexed
// by code.
var stateNames = []string{
	"UNKNOWN",
	"NOTPRESENT",
	"DOWN",
	"LOWERLAYERDOWN",
	"TESTING",
	"DORMANT",
	"UP",
}

// operStateCodec codes the one-byte operational state attribute as
// its symbolic name.
type operStateCodec struct{}

func (operStateCodec) DecodeValue(payload []byte, _ binary.ByteOrder) (any, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("%w: empty state payload", nla.ErrTruncated)
	}
	code := payload[0]
	if int(code) >= len(stateNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStateCode, code)
	}
	return stateNames[code], nil
}

func (operStateCodec) EncodeValue(v any, _ binary.ByteOrder) ([]byte, error) {
	name, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a state name", ErrUnknownStateName, v)
	}
	for code, n := range stateNames {
		if n == name {
			return []byte{uint8(code)}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStateName, name)
}
