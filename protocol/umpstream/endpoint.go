package umpstream

import (
	"github.com/danmuck/midi2/protocol/buffer"
	"github.com/danmuck/midi2/protocol/message"
	"github.com/danmuck/midi2/protocol/schema"
)

var (
	versionMajor = schema.U8("ump version major", schema.Ump(0x0000_FF00), schema.Bytes())
	versionMinor = schema.U8("ump version minor", schema.Ump(0x0000_00FF), schema.Bytes())
	filter       = schema.U8("filter", schema.Ump(0, 0x0000_00FF), schema.Bytes())

	staticBlocks   = schema.Flag("static function blocks", schema.Ump(0, 0x8000_0000))
	blockCount     = schema.U7("function blocks", schema.Ump(0, 0x7F00_0000), schema.Bytes())
	supportsMidi2  = schema.Flag("midi2 protocol", schema.Ump(0, 0x0000_0200))
	supportsMidi1  = schema.Flag("midi1 protocol", schema.Ump(0, 0x0000_0100))
	infoReceiveJR  = schema.Flag("receive jr timestamps", schema.Ump(0, 0x0000_0002))
	infoTransmitJR = schema.Flag("transmit jr timestamps", schema.Ump(0, 0x0000_0001))

	manufacturer = [3]schema.Property[uint8]{
		schema.U7("manufacturer 1", schema.Ump(0, 0x007F_0000), schema.Bytes()),
		schema.U7("manufacturer 2", schema.Ump(0, 0x0000_7F00), schema.Bytes()),
		schema.U7("manufacturer 3", schema.Ump(0, 0x0000_007F), schema.Bytes()),
	}
	family   = schema.New(schema.Define("family", schema.Ump(0, 0, 0x7F7F_0000), schema.Bytes(), schema.WithOrder(schema.LSBFirst)), schema.Uint[uint16]{})
	model    = schema.New(schema.Define("model", schema.Ump(0, 0, 0x0000_7F7F), schema.Bytes(), schema.WithOrder(schema.LSBFirst)), schema.Uint[uint16]{})
	revision = [4]schema.Property[uint8]{
		schema.U7("software revision 1", schema.Ump(0, 0, 0, 0x7F00_0000), schema.Bytes()),
		schema.U7("software revision 2", schema.Ump(0, 0, 0, 0x007F_0000), schema.Bytes()),
		schema.U7("software revision 3", schema.Ump(0, 0, 0, 0x0000_7F00), schema.Bytes()),
		schema.U7("software revision 4", schema.Ump(0, 0, 0, 0x0000_007F), schema.Bytes()),
	}
)

var (
	EndpointDiscoveryKind = define("EndpointDiscovery", StatusEndpointDiscovery, versionMajor, versionMinor, filter)
	EndpointInfoKind      = define("EndpointInfo", StatusEndpointInfo,
		versionMajor, versionMinor, staticBlocks, blockCount, supportsMidi2, supportsMidi1, infoReceiveJR, infoTransmitJR)
	DeviceIdentityKind = define("DeviceIdentity", StatusDeviceIdentity,
		manufacturer[0], manufacturer[1], manufacturer[2], family, model,
		revision[0], revision[1], revision[2], revision[3])
	EndpointNameKind      = defineText("EndpointName", StatusEndpointName, NameFormat)
	ProductInstanceIDKind = defineText("ProductInstanceID", StatusProductInstanceID, NameFormat)
)

// Endpoint discovery filter bits.
const (
	FilterEndpointInfo      = 0x01
	FilterDeviceIdentity    = 0x02
	FilterEndpointName      = 0x04
	FilterProductInstanceID = 0x08
	FilterStreamConfig      = 0x10
)

// EndpointDiscovery asks an endpoint to report the messages selected by
// Filter.
type EndpointDiscovery struct{ stream }

func (m EndpointDiscovery) Version() (major, minor uint8) {
	return message.Get(m.Message, versionMajor), message.Get(m.Message, versionMinor)
}

func (m EndpointDiscovery) Filter() uint8 { return message.Get(m.Message, filter) }

type EndpointDiscoveryBuilder struct{ *message.Builder[uint32] }

func NewEndpointDiscovery(buf buffer.Mutable[uint32]) EndpointDiscoveryBuilder {
	return EndpointDiscoveryBuilder{newBuilder(EndpointDiscoveryKind, buf)}
}

func (b EndpointDiscoveryBuilder) SetVersion(major, minor uint8) {
	message.Set(b.Builder, versionMajor, major)
	message.Set(b.Builder, versionMinor, minor)
}

func (b EndpointDiscoveryBuilder) SetFilter(v uint8) { message.Set(b.Builder, filter, v) }

func (b EndpointDiscoveryBuilder) Build() (EndpointDiscovery, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) EndpointDiscovery { return wrap(m).(EndpointDiscovery) })
}

type EndpointInfo struct{ stream }

func (m EndpointInfo) Version() (major, minor uint8) {
	return message.Get(m.Message, versionMajor), message.Get(m.Message, versionMinor)
}

func (m EndpointInfo) StaticFunctionBlocks() bool { return message.Get(m.Message, staticBlocks) }
func (m EndpointInfo) FunctionBlocks() uint8      { return message.Get(m.Message, blockCount) }
func (m EndpointInfo) SupportsMidi2() bool        { return message.Get(m.Message, supportsMidi2) }
func (m EndpointInfo) SupportsMidi1() bool        { return message.Get(m.Message, supportsMidi1) }
func (m EndpointInfo) ReceiveJR() bool            { return message.Get(m.Message, infoReceiveJR) }
func (m EndpointInfo) TransmitJR() bool           { return message.Get(m.Message, infoTransmitJR) }

type EndpointInfoBuilder struct{ *message.Builder[uint32] }

func NewEndpointInfo(buf buffer.Mutable[uint32]) EndpointInfoBuilder {
	return EndpointInfoBuilder{newBuilder(EndpointInfoKind, buf)}
}

func (b EndpointInfoBuilder) SetVersion(major, minor uint8) {
	message.Set(b.Builder, versionMajor, major)
	message.Set(b.Builder, versionMinor, minor)
}

func (b EndpointInfoBuilder) SetStaticFunctionBlocks(v bool) { message.Set(b.Builder, staticBlocks, v) }
func (b EndpointInfoBuilder) SetFunctionBlocks(v uint8)      { message.Set(b.Builder, blockCount, v) }
func (b EndpointInfoBuilder) SetSupportsMidi2(v bool)        { message.Set(b.Builder, supportsMidi2, v) }
func (b EndpointInfoBuilder) SetSupportsMidi1(v bool)        { message.Set(b.Builder, supportsMidi1, v) }
func (b EndpointInfoBuilder) SetReceiveJR(v bool)            { message.Set(b.Builder, infoReceiveJR, v) }
func (b EndpointInfoBuilder) SetTransmitJR(v bool)           { message.Set(b.Builder, infoTransmitJR, v) }

func (b EndpointInfoBuilder) Build() (EndpointInfo, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) EndpointInfo { return wrap(m).(EndpointInfo) })
}

// DeviceIdentity reports the SysEx identity of the device.
type DeviceIdentity struct{ stream }

// Manufacturer is the SysEx manufacturer id. One-byte ids occupy the last
// element.
func (m DeviceIdentity) Manufacturer() [3]uint8 { return [3]uint8(getAll(m.Message, manufacturer[:])) }
func (m DeviceIdentity) Family() uint16         { return message.Get(m.Message, family) }
func (m DeviceIdentity) Model() uint16          { return message.Get(m.Message, model) }

func (m DeviceIdentity) SoftwareRevision() [4]uint8 { return [4]uint8(getAll(m.Message, revision[:])) }

type DeviceIdentityBuilder struct{ *message.Builder[uint32] }

func NewDeviceIdentity(buf buffer.Mutable[uint32]) DeviceIdentityBuilder {
	return DeviceIdentityBuilder{newBuilder(DeviceIdentityKind, buf)}
}

func (b DeviceIdentityBuilder) SetManufacturer(v [3]uint8) { setAll(b.Builder, manufacturer[:], v[:]) }
func (b DeviceIdentityBuilder) SetFamily(v uint16)         { message.Set(b.Builder, family, v) }
func (b DeviceIdentityBuilder) SetModel(v uint16)          { message.Set(b.Builder, model, v) }

func (b DeviceIdentityBuilder) SetSoftwareRevision(v [4]uint8) {
	setAll(b.Builder, revision[:], v[:])
}

func (b DeviceIdentityBuilder) Build() (DeviceIdentity, error) {
	return message.Wrap(b.Builder, func(m message.Message[uint32]) DeviceIdentity { return wrap(m).(DeviceIdentity) })
}

type EndpointName struct{ named }

type ProductInstanceID struct{ named }

type EndpointNameBuilder struct{ *namedBuilder }

func NewEndpointName(buf buffer.Mutable[uint32]) EndpointNameBuilder {
	return EndpointNameBuilder{&namedBuilder{Builder: message.NewBuilder(EndpointNameKind, buf), format: NameFormat}}
}

func (b EndpointNameBuilder) Build() (EndpointName, error) {
	m, err := b.build()
	if err != nil {
		return EndpointName{}, err
	}
	return m.(EndpointName), nil
}

type ProductInstanceIDBuilder struct{ *namedBuilder }

func NewProductInstanceID(buf buffer.Mutable[uint32]) ProductInstanceIDBuilder {
	return ProductInstanceIDBuilder{&namedBuilder{Builder: message.NewBuilder(ProductInstanceIDKind, buf), format: NameFormat}}
}

func (b ProductInstanceIDBuilder) Build() (ProductInstanceID, error) {
	m, err := b.build()
	if err != nil {
		return ProductInstanceID{}, err
	}
	return m.(ProductInstanceID), nil
}

func getAll(m message.Message[uint32], props []schema.Property[uint8]) []uint8 {
	out := make([]uint8, len(props))
	for i, p := range props {
		out[i] = message.Get(m, p)
	}
	return out
}

func setAll(b *message.Builder[uint32], props []schema.Property[uint8], v []uint8) {
	for i, p := range props {
		message.Set(b, p, v[i])
	}
}
