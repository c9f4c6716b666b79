package systemcommon

import (
	"testing"

	"github.com/danmuck/midi2/internal/testutil/testlog"
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func TestSongPositionPointerWord(t *testing.T) {
	testlog.Start(t)
	b := NewSongPositionPointer(buffer.NewFixed[uint32](1))
	b.SetGroup(0xA)
	b.SetPosition(0x367D)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0x1AF2_7D6C}, m.Data())

	parsed, err := ParseSongPositionPointer([]uint32{0x1AF2_7D6C})
	require.NoError(t, err)
	require.Equal(t, uint8(0xA), parsed.Group())
	require.Equal(t, uint16(0x367D), parsed.Position())
}

func TestSongPositionPointerBytes(t *testing.T) {
	testlog.Start(t)
	b := NewSongPositionPointer(buffer.NewFixed[uint8](3))
	b.SetPosition(0x367D)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint8{0xF2, 0x7D, 0x6C}, m.Data(), "least significant seven bits first")

	parsed, err := ParseSongPositionPointer([]uint8{0xF2, 0x7D, 0x6C})
	require.NoError(t, err)
	require.Equal(t, uint16(0x367D), parsed.Position())
}

func TestParseUnion(t *testing.T) {
	testlog.Start(t)
	m, err := Parse([]uint32{0x15F1_5F00})
	require.NoError(t, err)
	tc, ok := m.(TimeCode[uint32])
	require.True(t, ok)
	require.Equal(t, uint8(0x5F), tc.TimeCode())
	require.Equal(t, uint8(0x5), tc.Group())

	b, err := Parse([]uint8{0xF3, 0x4D})
	require.NoError(t, err)
	require.Equal(t, uint8(0x4D), b.(SongSelect[uint8]).Song())
}

func TestParseRoutesEveryStatus(t *testing.T) {
	testlog.Start(t)
	cases := map[uint8]string{
		StatusTimeCode:            "TimeCode",
		StatusSongPositionPointer: "SongPositionPointer",
		StatusSongSelect:          "SongSelect",
		StatusTuneRequest:         "TuneRequest",
		StatusTimingClock:         "TimingClock",
		StatusStart:               "Start",
		StatusContinue:            "Continue",
		StatusStop:                "Stop",
		StatusActiveSensing:       "ActiveSensing",
		StatusReset:               "Reset",
	}
	for status, name := range cases {
		m, err := Parse([]uint32{0x1000_0000 | uint32(status)<<16})
		require.NoError(t, err, name)
		require.Equal(t, name, m.Descriptor().Name())

		data := make([]uint8, Kind(status).MinSize(buffer.Byte))
		data[0] = status
		bm, err := Parse(data)
		require.NoError(t, err, name)
		require.Equal(t, name, bm.Descriptor().Name())
	}
	for _, status := range []uint8{0xF0, 0xF4, 0xF5, 0xF7, 0xF9, 0xFD, 0x90} {
		_, err := Parse([]uint8{status, 0, 0})
		require.ErrorIs(t, err, protocol.ErrInvalidData, "status=%#x", status)
	}
}

func TestParseRejectsWrongType(t *testing.T) {
	testlog.Start(t)
	_, err := Parse([]uint32{0x20F8_0000})
	require.ErrorIs(t, err, protocol.ErrWrongMessageType)
	_, err = Parse([]uint32{})
	require.Equal(t, "slice too short", protocol.Reason(err))
	_, err = ParseSongPositionPointer([]uint8{0xF2, 0x01})
	require.ErrorIs(t, err, protocol.ErrSliceTooShort)
}

func TestByteFormRejectsStatusInData(t *testing.T) {
	testlog.Start(t)
	_, err := ParseSongPositionPointer([]uint8{0xF2, 0x7D, 0xF8})
	require.ErrorIs(t, err, protocol.ErrDataByte)
	_, err = Parse([]uint8{0xF1, 0x90})
	require.ErrorIs(t, err, protocol.ErrDataByte)
}

func TestStatusBuilderMatchesOracle(t *testing.T) {
	testlog.Start(t)
	oracle := map[uint8]midi.Message{
		StatusTuneRequest:   midi.Tune(),
		StatusTimingClock:   midi.TimingClock(),
		StatusStart:         midi.Start(),
		StatusContinue:      midi.Continue(),
		StatusStop:          midi.Stop(),
		StatusActiveSensing: midi.Activesense(),
		StatusReset:         midi.Reset(),
	}
	for status, want := range oracle {
		m, err := NewStatus(status, buffer.NewFixed[uint8](1)).Build()
		require.NoError(t, err)
		require.Equal(t, []byte(want), []byte(m.Data()))
	}

	b := NewSongSelect(buffer.NewFixed[uint8](2))
	b.SetSong(0x11)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []byte(midi.SongSelect(0x11)), []byte(m.Data()))
}

func TestNewStatusRejectsDataStatuses(t *testing.T) {
	testlog.Start(t)
	_, err := NewStatus(StatusSongSelect, buffer.NewGrowable[uint32]()).Build()
	require.ErrorIs(t, err, protocol.ErrWrongStatus)
	_, err = NewStatus(0xF4, buffer.NewGrowable[uint32]()).Build()
	require.ErrorIs(t, err, protocol.ErrWrongStatus)
}

func TestCapacityBoundary(t *testing.T) {
	testlog.Start(t)
	_, err := NewSongPositionPointer(buffer.NewFixed[uint8](3)).Build()
	require.NoError(t, err)
	_, err = NewSongPositionPointer(buffer.NewFixed[uint8](2)).Build()
	require.ErrorIs(t, err, protocol.ErrBufferOverflow)
	_, err = NewSongPositionPointer(buffer.NewFixed[uint32](0)).Build()
	require.ErrorIs(t, err, protocol.ErrBufferOverflow)
}

func TestTranslation(t *testing.T) {
	testlog.Start(t)
	src, err := Parse([]uint8{0xF2, 0x7D, 0x6C})
	require.NoError(t, err)
	u, err := ToUmp(src, 0xA, buffer.NewFixed[uint32](1))
	require.NoError(t, err)
	require.Equal(t, []uint32{0x1AF2_7D6C}, u.Data())
	require.IsType(t, SongPositionPointer[uint32]{}, u)

	back, err := ToBytes(u, buffer.NewFixed[uint8](3))
	require.NoError(t, err)
	require.Equal(t, []uint8{0xF2, 0x7D, 0x6C}, back.Data())

	clock, err := Parse([]uint32{0x13F8_0000})
	require.NoError(t, err)
	cb, err := ToBytes(clock, buffer.NewFixed[uint8](1))
	require.NoError(t, err)
	require.Equal(t, []uint8{0xF8}, cb.Data())
}
