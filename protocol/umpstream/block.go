package umpstream

import (
	"github.com/danmuck/midi2/protocol"
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/message"
	"github.com/danmuck/midi2/protocol/schema"
)

// Protocols negotiated by stream configuration.
const (
	ProtocolMidi1 = 0x01
	ProtocolMidi2 = 0x02
)

// Direction of a function block, from the endpoint's point of view.
type Direction uint8

const (
	DirectionInput         Direction = 1
	DirectionOutput        Direction = 2
	DirectionBidirectional Direction = 3
)

// UIHint tells a host how to present a function block.
type UIHint uint8

const (
	UIHintUnknown       UIHint = 0
	UIHintReceiver      UIHint = 1
	UIHintSender        UIHint = 2
	UIHintBidirectional UIHint = 3
)

// Midi1Mode describes how a function block treats MIDI 1.0 streams.
type Midi1Mode uint8

const (
	Midi1ModeNone         Midi1Mode = 0
	Midi1ModeUnrestricted Midi1Mode = 1
	Midi1ModeRestricted   Midi1Mode = 2
)

var (
	errDirection = protocol.InvalidData("invalid function block direction")
	errMidi1Mode = protocol.InvalidData("invalid function block midi1 mode")

	protocolField = schema.U8("protocol", schema.Ump(0x0000_FF00), schema.Bytes())
	receiveJR     = schema.Flag("receive jr timestamps", schema.Ump(0x0000_0002))
	transmitJR    = schema.Flag("transmit jr timestamps", schema.Ump(0x0000_0001))

	blockNumber = schema.U7("function block", schema.Ump(0x0000_7F00), schema.Bytes())
	blockFilter = schema.U8("filter", schema.Ump(0x0000_00FF), schema.Bytes())
	allBlocks   = schema.U8("function block", schema.Ump(0x0000_FF00), schema.Bytes())

	active    = schema.Flag("active", schema.Ump(0x0000_8000))
	uiHint    = schema.New(schema.Define("ui hint", schema.Ump(0x0000_0030), schema.Bytes()), schema.Uint[UIHint]{})
	midi1Mode = schema.New(schema.Define("midi1 mode", schema.Ump(0x0000_000C), schema.Bytes()),
		schema.OneOf(errMidi1Mode, Midi1ModeNone, Midi1ModeUnrestricted, Midi1ModeRestricted))
	direction = schema.New(schema.Define("direction", schema.Ump(0x0000_0003), schema.Bytes()),
		schema.OneOf(errDirection, DirectionInput, DirectionOutput, DirectionBidirectional)).WithDefault(DirectionBidirectional)
	firstGroup   = schema.U8("first group", schema.Ump(0, 0xFF00_0000), schema.Bytes())
	groupCount   = schema.U8("groups", schema.Ump(0, 0x00FF_0000), schema.Bytes())
	ciVersion    = schema.U8("midi-ci version", schema.Ump(0, 0x0000_FF00), schema.Bytes())
	sysex8Limit  = schema.U8("max sysex8 streams", schema.Ump(0, 0x0000_00FF), schema.Bytes())
	blockNameNum = schema.U8("function block", schema.Ump(0x0000_FF00), schema.Bytes())
)

var (
	StreamConfigurationRequestKind = define("StreamConfigurationRequest", StatusStreamConfigurationRequest,
		protocolField, receiveJR, transmitJR)
	StreamConfigurationNotificationKind = define("StreamConfigurationNotification", StatusStreamConfigurationNotification,
		protocolField, receiveJR, transmitJR)
	FunctionBlockDiscoveryKind = define("FunctionBlockDiscovery", StatusFunctionBlockDiscovery, allBlocks, blockFilter)
	FunctionBlockInfoKind      = define("FunctionBlockInfo", StatusFunctionBlockInfo,
		active, blockNumber, uiHint, midi1Mode, direction, firstGroup, groupCount, ciVersion, sysex8Limit)
	FunctionBlockNameKind = defineText("FunctionBlockName", StatusFunctionBlockName, BlockNameFormat, blockNameNum)
	StartOfClipKind       = define("StartOfClip", StatusStartOfClip)
	EndOfClipKind         = define("EndOfClip", StatusEndOfClip)
)

// AllFunctionBlocks addresses every block in a function block discovery.
const AllFunctionBlocks = 0xFF

// Function block discovery filter bits.
const (
	FilterFunctionBlockInfo = 0x01
	FilterFunctionBlockName = 0x02
)

// configuration is the body shared by stream configuration requests and
// notifications.
type configuration struct{ stream }

func (m configuration) Protocol() uint8  { return message.Get(m.Message, protocolField) }
func (m configuration) ReceiveJR() bool  { return message.Get(m.Message, receiveJR) }
func (m configuration) TransmitJR() bool { return message.Get(m.Message, transmitJR) }

type configurationBuilder struct{ *message.Builder[uint32] }

func (b configurationBuilder) SetProtocol(v uint8)  { message.Set(b.Builder, protocolField, v) }
func (b configurationBuilder) SetReceiveJR(v bool)  { message.Set(b.Builder, receiveJR, v) }
func (b configurationBuilder) SetTransmitJR(v bool) { message.Set(b.Builder, transmitJR, v) }

type StreamConfigurationRequest struct{ configuration }

type StreamConfigurationNotification struct{ configuration }

type StreamConfigurationRequestBuilder struct{ configurationBuilder }

func NewStreamConfigurationRequest(buf buffer.Mutable[uint32]) StreamConfigurationRequestBuilder {
	return StreamConfigurationRequestBuilder{configurationBuilder{newBuilder(StreamConfigurationRequestKind, buf)}}
}

func (b StreamConfigurationRequestBuilder) Build() (StreamConfigurationRequest, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) StreamConfigurationRequest {
		return wrap(m).(StreamConfigurationRequest)
	})
}

type StreamConfigurationNotificationBuilder struct{ configurationBuilder }

func NewStreamConfigurationNotification(buf buffer.Mutable[uint32]) StreamConfigurationNotificationBuilder {
	return StreamConfigurationNotificationBuilder{configurationBuilder{newBuilder(StreamConfigurationNotificationKind, buf)}}
}

func (b StreamConfigurationNotificationBuilder) Build() (StreamConfigurationNotification, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) StreamConfigurationNotification {
		return wrap(m).(StreamConfigurationNotification)
	})
}

type FunctionBlockDiscovery struct{ stream }

// FunctionBlock is the requested block, or AllFunctionBlocks.
func (m FunctionBlockDiscovery) FunctionBlock() uint8 { return message.Get(m.Message, allBlocks) }
func (m FunctionBlockDiscovery) Filter() uint8        { return message.Get(m.Message, blockFilter) }

type FunctionBlockDiscoveryBuilder struct{ *message.Builder[uint32] }

func NewFunctionBlockDiscovery(buf buffer.Mutable[uint32]) FunctionBlockDiscoveryBuilder {
	return FunctionBlockDiscoveryBuilder{newBuilder(FunctionBlockDiscoveryKind, buf)}
}

func (b FunctionBlockDiscoveryBuilder) SetFunctionBlock(v uint8) {
	message.Set(b.Builder, allBlocks, v)
}
func (b FunctionBlockDiscoveryBuilder) SetFilter(v uint8) { message.Set(b.Builder, blockFilter, v) }

func (b FunctionBlockDiscoveryBuilder) Build() (FunctionBlockDiscovery, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) FunctionBlockDiscovery {
		return wrap(m).(FunctionBlockDiscovery)
	})
}

type FunctionBlockInfo struct{ stream }

func (m FunctionBlockInfo) Active() bool            { return message.Get(m.Message, active) }
func (m FunctionBlockInfo) FunctionBlock() uint8    { return message.Get(m.Message, blockNumber) }
func (m FunctionBlockInfo) UIHint() UIHint          { return message.Get(m.Message, uiHint) }
func (m FunctionBlockInfo) Midi1Mode() Midi1Mode    { return message.Get(m.Message, midi1Mode) }
func (m FunctionBlockInfo) Direction() Direction    { return message.Get(m.Message, direction) }
func (m FunctionBlockInfo) FirstGroup() uint8       { return message.Get(m.Message, firstGroup) }
func (m FunctionBlockInfo) Groups() uint8           { return message.Get(m.Message, groupCount) }
func (m FunctionBlockInfo) CIVersion() uint8        { return message.Get(m.Message, ciVersion) }
func (m FunctionBlockInfo) MaxSysex8Streams() uint8 { return message.Get(m.Message, sysex8Limit) }

type FunctionBlockInfoBuilder struct{ *message.Builder[uint32] }

// NewFunctionBlockInfo starts an inactive bidirectional block.
func NewFunctionBlockInfo(buf buffer.Mutable[uint32]) FunctionBlockInfoBuilder {
	return FunctionBlockInfoBuilder{newBuilder(FunctionBlockInfoKind, buf)}
}

func (b FunctionBlockInfoBuilder) SetActive(v bool)         { message.Set(b.Builder, active, v) }
func (b FunctionBlockInfoBuilder) SetFunctionBlock(v uint8) { message.Set(b.Builder, blockNumber, v) }
func (b FunctionBlockInfoBuilder) SetUIHint(v UIHint)       { message.Set(b.Builder, uiHint, v) }
func (b FunctionBlockInfoBuilder) SetMidi1Mode(v Midi1Mode) { message.Set(b.Builder, midi1Mode, v) }
func (b FunctionBlockInfoBuilder) SetDirection(v Direction) { message.Set(b.Builder, direction, v) }
func (b FunctionBlockInfoBuilder) SetFirstGroup(v uint8)    { message.Set(b.Builder, firstGroup, v) }
func (b FunctionBlockInfoBuilder) SetGroups(v uint8)        { message.Set(b.Builder, groupCount, v) }
func (b FunctionBlockInfoBuilder) SetCIVersion(v uint8)     { message.Set(b.Builder, ciVersion, v) }
func (b FunctionBlockInfoBuilder) SetMaxSysex8Streams(v uint8) {
	message.Set(b.Builder, sysex8Limit, v)
}

func (b FunctionBlockInfoBuilder) Build() (FunctionBlockInfo, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) FunctionBlockInfo {
		return wrap(m).(FunctionBlockInfo)
	})
}

type FunctionBlockName struct{ named }

func (m FunctionBlockName) FunctionBlock() uint8 { return message.Get(m.Message, blockNameNum) }

type FunctionBlockNameBuilder struct{ *namedBuilder }

func NewFunctionBlockName(buf buffer.Mutable[uint32]) FunctionBlockNameBuilder {
	return FunctionBlockNameBuilder{&namedBuilder{Builder: message.NewBuilder(FunctionBlockNameKind, buf), format: BlockNameFormat}}
}

// SetFunctionBlock must be called before Build so every packet repeats the
// block number.
func (b FunctionBlockNameBuilder) SetFunctionBlock(v uint8) { message.Set(b.Builder, blockNameNum, v) }

func (b FunctionBlockNameBuilder) Build() (FunctionBlockName, error) {
	m, err := b.build()
	if err != nil {
		return FunctionBlockName{}, err
	}
	return m.(FunctionBlockName), nil
}

// StartOfClip and EndOfClip bracket a clip file's performance data.
type StartOfClip struct{ stream }

type EndOfClip struct{ stream }

type ClipBuilder struct{ *message.Builder[uint32] }

func NewStartOfClip(buf buffer.Mutable[uint32]) ClipBuilder {
	return ClipBuilder{newBuilder(StartOfClipKind, buf)}
}

func NewEndOfClip(buf buffer.Mutable[uint32]) ClipBuilder {
	return ClipBuilder{newBuilder(EndOfClipKind, buf)}
}

func (b ClipBuilder) Build() (Message, error) {
	m, err := b.Builder.Build()
	if err != nil {
		return nil, err
	}
	return wrap(m), nil
}
