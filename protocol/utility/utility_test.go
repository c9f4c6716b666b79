package utility

import (
	"testing"

	"github.com/danmuck/midi2/internal/testutil/testlog"
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/stretchr/testify/require"
)

func TestBuildJitterReductionClock(t *testing.T) {
	testlog.Start(t)
	b := NewJitterReductionClock(buffer.NewFixed[uint32](1))
	b.SetTime(0x1234)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0x0010_1234}, m.Data())
	require.Equal(t, uint16(0x1234), m.Time())
}

func TestBuildDeltaClockstamp(t *testing.T) {
	testlog.Start(t)
	b := NewDeltaClockstamp(buffer.NewGrowable[uint32]())
	b.SetTicks(0xF_ABCD)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0x004F_ABCD}, m.Data())

	b = NewDeltaClockstamp(buffer.NewGrowable[uint32]())
	b.SetTicks(0x10_0000)
	_, err = b.Build()
	require.ErrorIs(t, err, protocol.ErrOutOfRange)
}

func TestNoOp(t *testing.T) {
	testlog.Start(t)
	m, err := NewNoOp(buffer.NewFixed[uint32](1))
	require.NoError(t, err)
	require.Equal(t, []uint32{0}, m.Data())
	_, err = NewNoOp(buffer.NewFixed[uint32](0))
	require.ErrorIs(t, err, protocol.ErrBufferOverflow)
}

func TestParseRoutesByStatus(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		word uint32
		want string
	}{
		{0x0000_0000, "NoOp"},
		{0x0010_0001, "JitterReductionClock"},
		{0x0020_0001, "JitterReductionTimestamp"},
		{0x0030_0060, "DeltaClockstampTPQ"},
		{0x0040_0001, "DeltaClockstamp"},
	}
	for _, tc := range cases {
		m, err := Parse([]uint32{tc.word})
		require.NoError(t, err)
		require.Equal(t, tc.want, m.Descriptor().Name())
	}

	ts, err := Parse([]uint32{0x0020_BEEF})
	require.NoError(t, err)
	require.Equal(t, uint16(0xBEEF), ts.(JitterReductionTimestamp).Time())
}

func TestParseRejects(t *testing.T) {
	testlog.Start(t)
	_, err := Parse(nil)
	require.ErrorIs(t, err, protocol.ErrSliceTooShort)
	_, err = Parse([]uint32{0x1000_0000})
	require.ErrorIs(t, err, protocol.ErrWrongMessageType)
	m, err := Parse([]uint32{0x0050_0000})
	require.ErrorIs(t, err, protocol.ErrInvalidData)
	require.Nil(t, m)
}
