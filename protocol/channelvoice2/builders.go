package channelvoice2

import (
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/message"
)

// Builders write defaults on construction: zero fields, centred pitch bends
// and no note attribute.

type RegisteredPerNoteControllerBuilder struct{ perNoteControllerBuilder }

func NewRegisteredPerNoteController(buf buffer.Mutable[uint32]) RegisteredPerNoteControllerBuilder {
	b := message.NewBuilder(RegisteredPerNoteControllerKind, buf)
	return RegisteredPerNoteControllerBuilder{perNoteControllerBuilder{notedBuilder{voiceBuilder{b}}}}
}

func (b RegisteredPerNoteControllerBuilder) Build() (RegisteredPerNoteController, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) RegisteredPerNoteController {
		return wrap(m).(RegisteredPerNoteController)
	})
}

type AssignablePerNoteControllerBuilder struct{ perNoteControllerBuilder }

func NewAssignablePerNoteController(buf buffer.Mutable[uint32]) AssignablePerNoteControllerBuilder {
	b := message.NewBuilder(AssignablePerNoteControllerKind, buf)
	return AssignablePerNoteControllerBuilder{perNoteControllerBuilder{notedBuilder{voiceBuilder{b}}}}
}

func (b AssignablePerNoteControllerBuilder) Build() (AssignablePerNoteController, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) AssignablePerNoteController {
		return wrap(m).(AssignablePerNoteController)
	})
}

type RegisteredControllerBuilder struct{ controllerBuilder }

func NewRegisteredController(buf buffer.Mutable[uint32]) RegisteredControllerBuilder {
	b := message.NewBuilder(RegisteredControllerKind, buf)
	return RegisteredControllerBuilder{controllerBuilder{voiceBuilder{b}}}
}

func (b RegisteredControllerBuilder) SetControllerData(v uint32) { message.Set(b.Builder, data32, v) }

func (b RegisteredControllerBuilder) Build() (RegisteredController, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) RegisteredController { return wrap(m).(RegisteredController) })
}

type AssignableControllerBuilder struct{ controllerBuilder }

func NewAssignableController(buf buffer.Mutable[uint32]) AssignableControllerBuilder {
	b := message.NewBuilder(AssignableControllerKind, buf)
	return AssignableControllerBuilder{controllerBuilder{voiceBuilder{b}}}
}

func (b AssignableControllerBuilder) SetControllerData(v uint32) { message.Set(b.Builder, data32, v) }

func (b AssignableControllerBuilder) Build() (AssignableController, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) AssignableController { return wrap(m).(AssignableController) })
}

type RelativeRegisteredControllerBuilder struct{ controllerBuilder }

func NewRelativeRegisteredController(buf buffer.Mutable[uint32]) RelativeRegisteredControllerBuilder {
	b := message.NewBuilder(RelativeRegisteredControllerKind, buf)
	return RelativeRegisteredControllerBuilder{controllerBuilder{voiceBuilder{b}}}
}

func (b RelativeRegisteredControllerBuilder) SetControllerData(v int32) {
	message.Set(b.Builder, data32, uint32(v))
}

func (b RelativeRegisteredControllerBuilder) Build() (RelativeRegisteredController, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) RelativeRegisteredController {
		return wrap(m).(RelativeRegisteredController)
	})
}

type RelativeAssignableControllerBuilder struct{ controllerBuilder }

func NewRelativeAssignableController(buf buffer.Mutable[uint32]) RelativeAssignableControllerBuilder {
	b := message.NewBuilder(RelativeAssignableControllerKind, buf)
	return RelativeAssignableControllerBuilder{controllerBuilder{voiceBuilder{b}}}
}

func (b RelativeAssignableControllerBuilder) SetControllerData(v int32) {
	message.Set(b.Builder, data32, uint32(v))
}

func (b RelativeAssignableControllerBuilder) Build() (RelativeAssignableController, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) RelativeAssignableController {
		return wrap(m).(RelativeAssignableController)
	})
}

type PerNotePitchBendBuilder struct{ notedBuilder }

func NewPerNotePitchBend(buf buffer.Mutable[uint32]) PerNotePitchBendBuilder {
	b := message.NewBuilder(PerNotePitchBendKind, buf)
	return PerNotePitchBendBuilder{notedBuilder{voiceBuilder{b}}}
}

func (b PerNotePitchBendBuilder) SetBend(v uint32) { message.Set(b.Builder, bend, v) }

func (b PerNotePitchBendBuilder) Build() (PerNotePitchBend, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) PerNotePitchBend { return wrap(m).(PerNotePitchBend) })
}

type NoteOffBuilder struct{ notedBuilder }

func NewNoteOff(buf buffer.Mutable[uint32]) NoteOffBuilder {
	b := message.NewBuilder(NoteOffKind, buf)
	return NoteOffBuilder{notedBuilder{voiceBuilder{b}}}
}

func (b NoteOffBuilder) SetVelocity(v uint16) { message.Set(b.Builder, velocity, v) }

func (b NoteOffBuilder) SetAttribute(v Attribute) { message.Set(b.Builder, attribute, v) }

func (b NoteOffBuilder) Build() (NoteOff, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) NoteOff { return wrap(m).(NoteOff) })
}

type NoteOnBuilder struct{ notedBuilder }

func NewNoteOn(buf buffer.Mutable[uint32]) NoteOnBuilder {
	b := message.NewBuilder(NoteOnKind, buf)
	return NoteOnBuilder{notedBuilder{voiceBuilder{b}}}
}

func (b NoteOnBuilder) SetVelocity(v uint16) { message.Set(b.Builder, velocity, v) }

func (b NoteOnBuilder) SetAttribute(v Attribute) { message.Set(b.Builder, attribute, v) }

func (b NoteOnBuilder) Build() (NoteOn, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) NoteOn { return wrap(m).(NoteOn) })
}

type KeyPressureBuilder struct{ notedBuilder }

func NewKeyPressure(buf buffer.Mutable[uint32]) KeyPressureBuilder {
	b := message.NewBuilder(KeyPressureKind, buf)
	return KeyPressureBuilder{notedBuilder{voiceBuilder{b}}}
}

func (b KeyPressureBuilder) SetPressure(v uint32) { message.Set(b.Builder, data32, v) }

func (b KeyPressureBuilder) Build() (KeyPressure, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) KeyPressure { return wrap(m).(KeyPressure) })
}

type ControlChangeBuilder struct{ voiceBuilder }

func NewControlChange(buf buffer.Mutable[uint32]) ControlChangeBuilder {
	b := message.NewBuilder(ControlChangeKind, buf)
	return ControlChangeBuilder{voiceBuilder{b}}
}

func (b ControlChangeBuilder) SetControl(v uint8) { message.Set(b.Builder, control, v) }

func (b ControlChangeBuilder) SetControlData(v uint32) { message.Set(b.Builder, data32, v) }

func (b ControlChangeBuilder) Build() (ControlChange, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) ControlChange { return wrap(m).(ControlChange) })
}

type ProgramChangeBuilder struct{ voiceBuilder }

func NewProgramChange(buf buffer.Mutable[uint32]) ProgramChangeBuilder {
	b := message.NewBuilder(ProgramChangeKind, buf)
	return ProgramChangeBuilder{voiceBuilder{b}}
}

func (b ProgramChangeBuilder) SetProgram(v uint8) { message.Set(b.Builder, program, v) }

// SetBank stores a 14-bit bank and marks it valid.
func (b ProgramChangeBuilder) SetBank(v uint16) {
	message.Set(b.Builder, programBank, v)
	message.Set(b.Builder, bankValid, true)
}

func (b ProgramChangeBuilder) Build() (ProgramChange, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) ProgramChange { return wrap(m).(ProgramChange) })
}

type ChannelPressureBuilder struct{ voiceBuilder }

func NewChannelPressure(buf buffer.Mutable[uint32]) ChannelPressureBuilder {
	b := message.NewBuilder(ChannelPressureKind, buf)
	return ChannelPressureBuilder{voiceBuilder{b}}
}

func (b ChannelPressureBuilder) SetPressure(v uint32) { message.Set(b.Builder, data32, v) }

func (b ChannelPressureBuilder) Build() (ChannelPressure, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) ChannelPressure { return wrap(m).(ChannelPressure) })
}

type ChannelPitchBendBuilder struct{ voiceBuilder }

func NewChannelPitchBend(buf buffer.Mutable[uint32]) ChannelPitchBendBuilder {
	b := message.NewBuilder(ChannelPitchBendKind, buf)
	return ChannelPitchBendBuilder{voiceBuilder{b}}
}

func (b ChannelPitchBendBuilder) SetBend(v uint32) { message.Set(b.Builder, bend, v) }

func (b ChannelPitchBendBuilder) Build() (ChannelPitchBend, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) ChannelPitchBend { return wrap(m).(ChannelPitchBend) })
}

type PerNoteManagementBuilder struct{ notedBuilder }

func NewPerNoteManagement(buf buffer.Mutable[uint32]) PerNoteManagementBuilder {
	b := message.NewBuilder(PerNoteManagementKind, buf)
	return PerNoteManagementBuilder{notedBuilder{voiceBuilder{b}}}
}

func (b PerNoteManagementBuilder) SetDetach(v bool) { message.Set(b.Builder, detach, v) }

func (b PerNoteManagementBuilder) SetReset(v bool) { message.Set(b.Builder, reset, v) }

func (b PerNoteManagementBuilder) Build() (PerNoteManagement, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) PerNoteManagement { return wrap(m).(PerNoteManagement) })
}
