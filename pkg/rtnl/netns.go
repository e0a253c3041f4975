package rtnl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rtnl-protocol/rtnl-go/pkg/log"
	"github.com/rtnl-protocol/rtnl-go/pkg/nla"
	"github.com/rtnl-protocol/rtnl-go/pkg/nlenc"
)

// NetnsRunDir is the directory where named network namespaces live.
var NetnsRunDir = "/var/run/netns"

// ErrNetnsOpen indicates a named namespace that could not be opened.
var ErrNetnsOpen = errors.New("cannot open network namespace")

// NetnsFDCodec codes the namespace file descriptor attribute. The
// value may be given two ways on encode:
//
//   - an integer descriptor, encoded as is: the caller owns the
//     descriptor and its lifetime;
//   - a namespace name, opened under NetnsRunDir for the duration of
//     the encode and closed before EncodeValue returns. The kernel
//     only needs the descriptor while the message is processed, so a
//     caller that sends the message later must pass a descriptor it
//     keeps open instead.
//
// Decode always yields the raw uint32 descriptor value.
type NetnsFDCodec struct {
	// Open opens a namespace file. Nil means os.Open.
	Open func(path string) (*os.File, error)

	// Logger receives resource events for namespace opens. Nil
	// disables them.
	Logger log.Logger
}

// NetnsFD is the codec instance wired into the attribute registry.
// Replace its Open function to intercept namespace opens.
var NetnsFD = &NetnsFDCodec{}

func (c *NetnsFDCodec) DecodeValue(payload []byte, order binary.ByteOrder) (any, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("%w: descriptor payload is %d bytes, need 4",
			nla.ErrTruncated, len(payload))
	}
	return nlenc.Uint32(order, payload), nil
}

func (c *NetnsFDCodec) EncodeValue(v any, order binary.ByteOrder) ([]byte, error) {
	var fd uint32
	switch x := v.(type) {
	case int:
		fd = uint32(x)
	case uint32:
		fd = x
	case string:
		open := c.Open
		if open == nil {
			open = os.Open
		}
		f, err := open(filepath.Join(NetnsRunDir, x))
		c.logResource(x, err)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrNetnsOpen, x, err)
		}
		defer f.Close()
		fd = uint32(f.Fd())
	default:
		return nil, fmt.Errorf("%w: %T is not a descriptor or namespace name", nla.ErrValueType, v)
	}
	payload := make([]byte, 4)
	nlenc.PutUint32(order, payload, fd)
	return payload, nil
}

func (c *NetnsFDCodec) logResource(name string, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Log(log.NewResourceEvent("NET_NS_FD", name, err))
}
