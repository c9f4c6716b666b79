package bytestream

import (
	"testing"

	"github.com/danmuck/midi2/internal/testutil/testlog"
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/channelvoice1"
	"github.com/danmuck/midi2/protocol/channelvoice2"
	"github.com/danmuck/midi2/protocol/sysex7"
	"github.com/danmuck/midi2/protocol/systemcommon"
	"github.com/danmuck/midi2/protocol/ump"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func TestChannelPressureToUmp(t *testing.T) {
	testlog.Start(t)
	m, err := Parse([]uint8{0xD6, 0x09})
	require.NoError(t, err)
	cp := m.(channelvoice1.ChannelPressure[uint8])
	require.Equal(t, uint8(0x6), cp.Channel())
	require.Equal(t, uint8(0x09), cp.Pressure())

	out, err := ToUmp(m, 0x0, buffer.NewFixed[uint32](1))
	require.NoError(t, err)
	require.Equal(t, []uint32{0x20D6_0900}, out.Data())
	require.Equal(t, ump.ChannelVoice1, ump.CategoryOf(out))

	back, err := ToBytes(out, buffer.NewFixed[uint8](2))
	require.NoError(t, err)
	require.Equal(t, []uint8{0xD6, 0x09}, back.Data())
}

func TestParseRoutesByStatus(t *testing.T) {
	testlog.Start(t)
	tests := []struct {
		name string
		data []uint8
		size int
		want any
	}{
		{"note on", midi.NoteOn(3, 60, 100), 3, channelvoice1.NoteOn[uint8]{}},
		{"program change", midi.ProgramChange(1, 12), 2, channelvoice1.ProgramChange[uint8]{}},
		{"song position", midi.SPP(0x367D), 3, systemcommon.SongPositionPointer[uint8]{}},
		{"timing clock", midi.TimingClock(), 1, systemcommon.TimingClock[uint8]{}},
		{"sysex", midi.SysEx([]byte{0x7E, 0x01, 0x02}), 5, sysex7.Sysex7[uint8]{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.data)
			require.NoError(t, err)
			require.IsType(t, tt.want, m)
			require.Len(t, m.Data(), tt.size)
		})
	}
}

func TestParseRejects(t *testing.T) {
	testlog.Start(t)
	_, err := Parse(nil)
	require.ErrorIs(t, err, protocol.ErrSliceTooShort)

	_, err = Parse([]uint8{0x3C, 0x64})
	require.ErrorIs(t, err, errRunningStatus)
	require.Equal(t, "running status not supported", protocol.Reason(err))

	_, err = Parse([]uint8{0xF7})
	require.ErrorIs(t, err, errStrayEnd)

	for _, status := range []uint8{0xF4, 0xF5, 0xF9, 0xFD} {
		_, err = Parse([]uint8{status})
		require.ErrorIs(t, err, protocol.ErrInvalidData, "status %X", status)
	}

	_, err = Parse([]uint8{0x90, 0x3C})
	require.ErrorIs(t, err, protocol.ErrSliceTooShort)
}

func TestNextSplitsStream(t *testing.T) {
	testlog.Start(t)
	var stream []uint8
	stream = append(stream, midi.NoteOn(0, 60, 100)...)
	stream = append(stream, midi.TimingClock()...)
	stream = append(stream, midi.SysEx([]byte{0x01, 0x02, 0x03})...)
	stream = append(stream, midi.Pitchbend(2, 0)...)

	var sizes []int
	for rest := stream; len(rest) > 0; {
		m, next, err := Next(rest)
		require.NoError(t, err)
		sizes = append(sizes, len(m.Data()))
		rest = next
	}
	require.Equal(t, []int{3, 1, 5, 3}, sizes)
}

func TestNextResyncsOnStatus(t *testing.T) {
	testlog.Start(t)
	stream := []uint8{0x40, 0x41, 0xF4, 0xB0, 0x07, 0x64}
	_, rest, err := Next(stream)
	require.ErrorIs(t, err, errRunningStatus)
	require.Equal(t, []uint8{0xF4, 0xB0, 0x07, 0x64}, rest)

	_, rest, err = Next(rest)
	require.ErrorIs(t, err, protocol.ErrInvalidData)

	m, rest, err := Next(rest)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.IsType(t, channelvoice1.ControlChange[uint8]{}, m)
}

func TestNextRecoversFromTruncatedMessage(t *testing.T) {
	testlog.Start(t)
	stream := []uint8{0x90, 0x3C, 0x80, 0x3C, 0x00}
	_, rest, err := Next(stream)
	require.ErrorIs(t, err, protocol.ErrDataByte)
	require.Equal(t, []uint8{0x80, 0x3C, 0x00}, rest)

	m, rest, err := Next(rest)
	require.NoError(t, err)
	require.Empty(t, rest)
	off, ok := m.(channelvoice1.NoteOff[uint8])
	require.True(t, ok)
	require.Equal(t, uint8(0x3C), off.Note())
}

func TestParseRejectsStatusInDataPosition(t *testing.T) {
	testlog.Start(t)
	for _, raw := range [][]uint8{
		{0x90, 0xF8, 0xFF},
		{0xB0, 0x07, 0x90},
		{0xC0, 0xC1},
		{0xF2, 0x7D, 0xF8},
		{0xF3, 0x80},
	} {
		_, err := Parse(raw)
		require.ErrorIs(t, err, protocol.ErrDataByte, "% X", raw)
	}
}

func TestSysexRoundTrip(t *testing.T) {
	testlog.Start(t)
	raw := midi.SysEx([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	m, err := Parse(raw)
	require.NoError(t, err)

	words, err := ToUmp(m, 0x0, buffer.NewGrowable[uint32]())
	require.NoError(t, err)
	want := []uint32{0x3016_0001, 0x0203_0405, 0x3034_0607, 0x0809_0000}
	if diff := cmp.Diff(want, words.Data()); diff != "" {
		t.Fatalf("sysex7 packets mismatch (-want +got):\n%s", diff)
	}

	back, err := ToBytes(words, buffer.NewGrowable[uint8]())
	require.NoError(t, err)
	require.Equal(t, []uint8(raw), back.Data())
}

func TestSystemCommonRoundTrip(t *testing.T) {
	testlog.Start(t)
	m, err := Parse([]byte{0xF2, 0x7D, 0x6C})
	require.NoError(t, err)
	out, err := ToUmp(m, 0xA, buffer.NewFixed[uint32](1))
	require.NoError(t, err)
	require.Equal(t, []uint32{0x1AF2_7D6C}, out.Data())
	require.Equal(t, uint16(0x367D), out.(systemcommon.SongPositionPointer[uint32]).Position())
}

func TestToBytesRejectsMidi2(t *testing.T) {
	testlog.Start(t)
	m, err := ump.Parse([]uint32{0x43B9_3000, 0x2468_1012})
	require.NoError(t, err)
	require.IsType(t, channelvoice2.ControlChange{}, m)
	_, err = ToBytes(m, buffer.NewGrowable[uint8]())
	require.ErrorIs(t, err, protocol.ErrUnsupportedUnit)
}

func TestCategoryOf(t *testing.T) {
	testlog.Start(t)
	c, ok := CategoryOf(0x95)
	require.True(t, ok)
	require.Equal(t, ump.ChannelVoice1, c)
	c, ok = CategoryOf(0xF0)
	require.True(t, ok)
	require.Equal(t, ump.Sysex7, c)
	c, ok = CategoryOf(0xFE)
	require.True(t, ok)
	require.Equal(t, ump.SystemCommon, c)
	_, ok = CategoryOf(0x7F)
	require.False(t, ok)
}

func FuzzNext(f *testing.F) {
	f.Add([]byte{0x90, 0x3C, 0x64})
	f.Add([]byte{0xF0, 0x7E, 0x01, 0xF7, 0xF8})
	f.Add([]byte{0xF2, 0x7D, 0x6C, 0x40})
	f.Fuzz(func(t *testing.T, raw []byte) {
		for rest := raw; len(rest) > 0; {
			m, next, err := Next(rest)
			require.Less(t, len(next), len(rest))
			if err != nil {
				require.ErrorIs(t, err, protocol.ErrInvalidData)
			} else {
				require.Equal(t, rest[:len(m.Data())], m.Data())
			}
			rest = next
		}
	})
}
