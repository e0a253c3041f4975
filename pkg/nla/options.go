package nla

import (
	"encoding/binary"

	"github.com/rtnl-protocol/rtnl-go/pkg/log"
	"github.com/rtnl-protocol/rtnl-go/pkg/nlenc"
)

// config holds the codec settings assembled from options. The opts
// slice keeps the original options so codecs for embedded messages
// can replay them on their inner trees.
type config struct {
	order  binary.ByteOrder
	logger log.Logger
	opts   []Option
}

func newConfig(opts ...Option) config {
	cfg := config{
		order:  nlenc.Native,
		logger: log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.opts = opts
	return cfg
}

// Option configures a DecodeTree or EncodeTree call.
type Option func(*config)

// WithByteOrder overrides the default (host) byte order for scalar
// payloads. Records carrying the net-byte-order flag use big-endian
// regardless of this setting.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(cfg *config) {
		cfg.order = order
	}
}

// WithLogger routes codec events (opaque fallbacks, truncations) to
// the given logger. A nil logger disables logging.
func WithLogger(logger log.Logger) Option {
	return func(cfg *config) {
		if logger == nil {
			logger = log.NoopLogger{}
		}
		cfg.logger = logger
	}
}
