package channelvoice2

import (
	"testing"

	"github.com/danmuck/midi2/internal/testutil/testlog"
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/buffer"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

func TestAssignableController(t *testing.T) {
	testlog.Start(t)
	b := NewAssignableController(buffer.NewFixed[uint32](2))
	b.SetGroup(0xC)
	b.SetChannel(0x8)
	b.SetBank(0x51)
	b.SetIndex(0x38)
	b.SetControllerData(0x3F3A_DD42)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0x4C38_5138, 0x3F3A_DD42}, m.Data())

	parsed, err := ParseAs[AssignableController]([]uint32{0x4C38_5138, 0x3F3A_DD42})
	require.NoError(t, err)
	require.Equal(t, uint8(0xC), parsed.Group())
	require.Equal(t, uint8(0x8), parsed.Channel())
	require.Equal(t, uint8(0x51), parsed.Bank())
	require.Equal(t, uint8(0x38), parsed.Index())
	require.Equal(t, uint32(0x3F3A_DD42), parsed.ControllerData())
}

func TestControlChange(t *testing.T) {
	testlog.Start(t)
	b := NewControlChange(buffer.NewGrowable[uint32]())
	b.SetGroup(0x3)
	b.SetChannel(0x9)
	b.SetControl(0x30)
	b.SetControlData(0x2468_1012)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0x43B9_3000, 0x2468_1012}, m.Data())
}

func TestChannelPitchBend(t *testing.T) {
	testlog.Start(t)
	b := NewChannelPitchBend(buffer.NewFixed[uint32](4))
	b.SetGroup(0xB)
	b.SetChannel(0x9)
	b.SetBend(0x0830_6AF8)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0x4BE9_0000, 0x0830_6AF8}, m.Data())

	centred, err := NewChannelPitchBend(buffer.NewFixed[uint32](2)).Build()
	require.NoError(t, err)
	require.Equal(t, uint32(0x8000_0000), centred.Bend())
}

func TestNoteOffWithAttribute(t *testing.T) {
	testlog.Start(t)
	m, err := ParseAs[NoteOff]([]uint32{0x408A_6301, 0xABCD_1234})
	require.NoError(t, err)
	require.Equal(t, uint8(0xA), m.Channel())
	require.Equal(t, uint8(0x63), m.Note())
	require.Equal(t, uint16(0xABCD), m.Velocity())
	require.Equal(t, Attribute{Type: AttributeManufacturerSpecific, Data: 0x1234}, m.Attribute())

	b := NewNoteOff(buffer.NewFixed[uint32](2))
	b.SetGroup(0x5)
	b.SetChannel(0x2)
	b.SetNote(0x7B)
	b.SetVelocity(0x07A0)
	built, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0x4582_7B00, 0x07A0_0000}, built.Data())
}

func TestPitchAttribute(t *testing.T) {
	testlog.Start(t)
	m, err := ParseAs[NoteOn]([]uint32{0x4090_4003, 0x7F00_3333})
	require.NoError(t, err)
	a := m.Attribute()
	require.Equal(t, AttributePitch7_9, a.Type)
	require.Equal(t, uint8(0b0011001), a.Note())
	require.Equal(t, uint16(0b1_0011_0011), a.Fraction())
	require.Equal(t, a, Pitch7_9(a.Note(), a.Fraction()))
}

func TestAttributeValidationCompleteness(t *testing.T) {
	testlog.Start(t)
	for kind := uint32(0); kind < 256; kind++ {
		_, err := Parse([]uint32{0x4090_4000 | kind, 0})
		if kind <= 3 {
			require.NoError(t, err, "attribute type %d", kind)
			continue
		}
		require.ErrorIs(t, err, protocol.ErrInvalidData, "attribute type %d", kind)
	}

	b := NewNoteOn(buffer.NewFixed[uint32](2))
	b.SetAttribute(Attribute{Type: 9})
	_, err := b.Build()
	require.ErrorIs(t, err, errAttributeType)
}

func TestProgramChange(t *testing.T) {
	testlog.Start(t)
	b := NewProgramChange(buffer.NewFixed[uint32](2))
	b.SetGroup(0x1)
	b.SetChannel(0x2)
	b.SetProgram(0x40)
	b.SetBank(0x2A05)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0x41C2_0001, 0x4000_5405}, m.Data())
	bank, ok := m.Bank()
	require.True(t, ok)
	require.Equal(t, uint16(0x2A05), bank)

	noBank, err := ParseAs[ProgramChange]([]uint32{0x41C2_0000, 0x4000_0000})
	require.NoError(t, err)
	_, ok = noBank.Bank()
	require.False(t, ok)
}

func TestPerNoteManagement(t *testing.T) {
	testlog.Start(t)
	b := NewPerNoteManagement(buffer.NewFixed[uint32](2))
	b.SetNote(0x3C)
	b.SetDetach(true)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []uint32{0x40F0_3C02, 0}, m.Data())
	require.True(t, m.Detach())
	require.False(t, m.Reset())
}

func TestRelativeControllerIsSigned(t *testing.T) {
	testlog.Start(t)
	b := NewRelativeRegisteredController(buffer.NewFixed[uint32](2))
	b.SetControllerData(-2)
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, uint32(0xFFFF_FFFE), m.Data()[1])
	require.Equal(t, int32(-2), m.ControllerData())
}

func TestDiscriminantRouting(t *testing.T) {
	testlog.Start(t)
	for op := uint8(0); op < 16; op++ {
		d := Kind(op)
		m, err := Parse([]uint32{0x4000_0000 | uint32(op)<<20, 0x8000_0000})
		if d == nil {
			require.Equal(t, uint8(0x7), op)
			require.ErrorIs(t, err, protocol.ErrInvalidData)
			continue
		}
		require.NoError(t, err, d.Name())
		require.Same(t, d, m.Descriptor())
	}
	_, err := ParseAs[NoteOn]([]uint32{0x4080_0000, 0})
	require.ErrorIs(t, err, protocol.ErrWrongStatus)
	_, err = Parse([]uint32{0x2090_0000, 0})
	require.ErrorIs(t, err, protocol.ErrWrongMessageType)
	_, err = Parse([]uint32{0x4090_0000})
	require.ErrorIs(t, err, protocol.ErrSliceTooShort)
}

func TestCapacityBoundary(t *testing.T) {
	testlog.Start(t)
	_, err := NewKeyPressure(buffer.NewFixed[uint32](2)).Build()
	require.NoError(t, err)
	_, err = NewKeyPressure(buffer.NewFixed[uint32](1)).Build()
	require.ErrorIs(t, err, protocol.ErrBufferOverflow)
}

func TestKeyPressureRoundTrip(t *testing.T) {
	testlog.Start(t)
	type fields struct {
		Group, Channel, Note uint8
		Pressure             uint32
	}
	f := fuzz.NewWithSeed(11)
	for range 200 {
		var in fields
		f.Fuzz(&in)
		in.Group &= 0xF
		in.Channel &= 0xF
		in.Note &= 0x7F

		b := NewKeyPressure(buffer.NewGrowable[uint32]())
		b.SetGroup(in.Group)
		b.SetChannel(in.Channel)
		b.SetNote(in.Note)
		b.SetPressure(in.Pressure)
		m, err := b.Build()
		require.NoError(t, err)

		got, err := ParseAs[KeyPressure](m.Data())
		require.NoError(t, err)
		require.Equal(t, in, fields{got.Group(), got.Channel(), got.Note(), got.Pressure()})
	}
}
