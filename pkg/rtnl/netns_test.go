package rtnl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtnl-protocol/rtnl-go/pkg/log"
	"github.com/rtnl-protocol/rtnl-go/pkg/nla"
	"github.com/rtnl-protocol/rtnl-go/pkg/nlenc"
)

func TestNetnsFDLiteralDescriptor(t *testing.T) {
	codec := &NetnsFDCodec{
		Open: func(string) (*os.File, error) {
			t.Fatal("a literal descriptor must not open anything")
			return nil, nil
		},
	}

	b, err := codec.EncodeValue(7, nlenc.Native)
	require.NoError(t, err)

	v, err := codec.DecodeValue(b, nlenc.Native)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
}

func TestNetnsFDNamedOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blue"), nil, 0644))

	old := NetnsRunDir
	NetnsRunDir = dir
	defer func() { NetnsRunDir = old }()

	var opened *os.File
	opens := 0
	logger := &memLogger{}
	codec := &NetnsFDCodec{
		Open: func(path string) (*os.File, error) {
			opens++
			f, err := os.Open(path)
			opened = f
			return f, err
		},
		Logger: logger,
	}

	b, err := codec.EncodeValue("blue", nlenc.Native)
	require.NoError(t, err)
	require.Len(t, b, 4)
	assert.Equal(t, 1, opens)

	// The descriptor was closed before EncodeValue returned.
	require.NotNil(t, opened)
	assert.ErrorIs(t, opened.Close(), os.ErrClosed)

	require.Len(t, logger.events, 1)
	assert.Equal(t, log.CategoryResource, logger.events[0].Category)
	assert.Equal(t, "blue", logger.events[0].Detail)
	assert.Empty(t, logger.events[0].Error)
}

func TestNetnsFDOpenFailure(t *testing.T) {
	old := NetnsRunDir
	NetnsRunDir = t.TempDir()
	defer func() { NetnsRunDir = old }()

	logger := &memLogger{}
	codec := &NetnsFDCodec{Logger: logger}

	_, err := codec.EncodeValue("missing", nlenc.Native)
	assert.ErrorIs(t, err, ErrNetnsOpen)

	require.Len(t, logger.events, 1)
	assert.NotEmpty(t, logger.events[0].Error)
}

func TestNetnsFDValueType(t *testing.T) {
	codec := &NetnsFDCodec{}
	_, err := codec.EncodeValue(3.14, nlenc.Native)
	assert.ErrorIs(t, err, nla.ErrValueType)

	_, err = codec.DecodeValue([]byte{1, 2}, nlenc.Native)
	assert.ErrorIs(t, err, nla.ErrTruncated)
}
