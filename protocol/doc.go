// Package protocol owns the Universal MIDI Packet and MIDI 1.0 byte-stream
// wire contract.
//
// Ownership boundary:
// - buffer: wire units (32-bit words, 8-bit bytes) and storage backends
// - bits: nibble/octet/field primitives on a single unit
// - schema: per-field bit placement and typed properties
// - message: descriptors, borrowed/owned messages, builders, rebuffering
// - segment: multi-packet payloads (sysex, names, text)
// - ump, bytestream: discriminant dispatch over the two wire forms
//
// Every decode is validate-then-read: nothing is read from a buffer until
// each field it owns has been checked against its domain.
//
// Allocation: typed parsers (channelvoice1.ParseNoteOn and friends) and
// builders over Fixed storage do not allocate. The union Parse functions in
// each catalogue package and in ump and bytestream return an interface, which
// costs one allocation per message to box the typed value.
package protocol
