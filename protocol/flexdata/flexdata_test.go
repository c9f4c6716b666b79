package flexdata

import (
	"testing"

	"github.com/danmuck/midi2/internal/testutil/testlog"
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/segment"
	"github.com/stretchr/testify/require"
)

func TestSetTempo(t *testing.T) {
	testlog.Start(t)
	b := NewSetTempo(buffer.NewFixed[uint32](4))
	b.SetGroup(0x7)
	b.SetTempo(50_000_000)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0xD710_0000, 0x02FA_F080, 0, 0}, m.Data())

	parsed, err := Parse(m.Data())
	require.NoError(t, err)
	tempo := parsed.(SetTempo)
	require.Equal(t, uint32(50_000_000), tempo.Tempo())
	_, ok := tempo.Channel()
	require.False(t, ok)
}

func TestSetKeySignature(t *testing.T) {
	testlog.Start(t)
	b := NewSetKeySignature(buffer.NewFixed[uint32](4))
	b.SetChannel(0x3)
	b.SetSharpsFlats(-3)
	b.SetTonic(F)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0xD003_0005, 0xD600_0000, 0, 0}, m.Data())
	require.Equal(t, int8(-3), m.SharpsFlats())
	require.Equal(t, F, m.Tonic())
	ch, ok := m.Channel()
	require.True(t, ok)
	require.Equal(t, uint8(0x3), ch)

	def, err := NewSetKeySignature(buffer.NewFixed[uint32](4)).Build()
	require.NoError(t, err)
	require.Equal(t, C, def.Tonic())
}

func TestTonicValidationCompleteness(t *testing.T) {
	testlog.Start(t)
	for nibble := uint32(0); nibble < 16; nibble++ {
		_, err := Parse([]uint32{0xD010_0005, nibble << 24, 0, 0})
		if nibble <= 7 {
			require.NoError(t, err, "tonic %d", nibble)
			continue
		}
		require.ErrorIs(t, err, protocol.ErrInvalidData)
		require.Equal(t, "couldn't interpret tonic field", protocol.Reason(err))
	}
	require.Equal(t, "G", G.String())
	require.Equal(t, "non-standard", NonStandard.String())
}

func TestAddressValidation(t *testing.T) {
	testlog.Start(t)
	_, err := Parse([]uint32{0xD020_0000, 0, 0, 0})
	require.ErrorIs(t, err, errAddress)
	_, err = Parse([]uint32{0xD030_0000, 0, 0, 0})
	require.ErrorIs(t, err, errAddress)
}

func TestSetupMessagesMustBeComplete(t *testing.T) {
	testlog.Start(t)
	_, err := Parse([]uint32{0xD050_0000, 0, 0, 0})
	require.ErrorIs(t, err, protocol.ErrPacketSequence)
}

func TestTimeSignatureAndMetronome(t *testing.T) {
	testlog.Start(t)
	ts := NewSetTimeSignature(buffer.NewFixed[uint32](4))
	ts.SetNumerator(6)
	ts.SetDenominator(3)
	ts.SetThirtySecondNotes(8)
	m, err := ts.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0xD010_0001, 0x0603_0800, 0, 0}, m.Data())

	mb := NewSetMetronome(buffer.NewFixed[uint32](4))
	mb.SetClocksPerClick(24)
	mb.SetBarAccents([3]uint8{4, 0, 0})
	mb.SetSubdivisionClicks([2]uint8{2, 3})
	met, err := mb.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0xD010_0002, 0x1804_0000, 0x0203_0000, 0}, met.Data())
	require.Equal(t, [3]uint8{4, 0, 0}, met.BarAccents())
	require.Equal(t, [2]uint8{2, 3}, met.SubdivisionClicks())
}

func TestTextSpansPackets(t *testing.T) {
	testlog.Start(t)
	b := NewText(buffer.NewGrowable[uint32]())
	b.SetBank(BankPerformance)
	b.SetStatus(0x01)
	b.SetText("Hello world, lyric")
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{
		0xD050_0201, 0x4865_6C6C, 0x6F20_776F, 0x726C_642C,
		0xD0D0_0201, 0x206C_7972, 0x6963_0000, 0x0000_0000,
	}, m.Data())
	require.Equal(t, "Hello world, lyric", m.Text())
	require.Equal(t, 18, m.PayloadLen())

	parsed, err := Parse(m.Data())
	require.NoError(t, err)
	require.Equal(t, "Hello world, lyric", parsed.(Text).Text())
}

func TestTextRoles(t *testing.T) {
	testlog.Start(t)
	for _, n := range []int{0, 12, 13, 24, 25, 60} {
		b := NewText(buffer.NewGrowable[uint32]())
		text := make([]byte, n)
		for i := range text {
			text[i] = 'a' + byte(i%26)
		}
		b.SetText(string(text))
		m, err := b.Build()
		require.NoError(t, err)
		packets := TextFormat.Packets(n)
		require.Len(t, m.Data(), packets*4)
		for i, role := range segment.Roles(packets) {
			require.Equal(t, uint32(role), m.Data()[i*4]>>22&0x3)
		}
		require.Equal(t, string(text), m.Text())
	}
}

func TestTextRejectsForeignBanks(t *testing.T) {
	testlog.Start(t)
	b := NewText(buffer.NewGrowable[uint32]())
	b.SetBank(BankSetup)
	_, err := b.Build()
	require.ErrorIs(t, err, errTextBank)

	_, err = Parse([]uint32{0xD010_0300, 0, 0, 0})
	require.ErrorIs(t, err, protocol.ErrInvalidData)
	_, err = Parse([]uint32{0xD010_0009, 0, 0, 0})
	require.ErrorIs(t, err, protocol.ErrInvalidData)
}

func TestCapacityBoundary(t *testing.T) {
	testlog.Start(t)
	_, err := NewSetTempo(buffer.NewFixed[uint32](4)).Build()
	require.NoError(t, err)
	_, err = NewSetTempo(buffer.NewFixed[uint32](3)).Build()
	require.ErrorIs(t, err, protocol.ErrBufferOverflow)

	b := NewText(buffer.NewFixed[uint32](4))
	b.SetText("twelve bytes")
	_, err = b.Build()
	require.NoError(t, err)
	b = NewText(buffer.NewFixed[uint32](4))
	b.SetText("thirteen byte")
	_, err = b.Build()
	require.ErrorIs(t, err, protocol.ErrBufferOverflow)
}
