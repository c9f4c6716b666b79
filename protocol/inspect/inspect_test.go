package inspect

import (
	"encoding/json"
	"testing"

	"github.com/danmuck/midi2/internal/testutil/testlog"
	"github.com/danmuck/midi2/protocol/bytestream"
	"github.com/danmuck/midi2/protocol/ump"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestDescribeControlChange(t *testing.T) {
	testlog.Start(t)
	m, err := ump.Parse([]uint32{0x2AB7_3637})
	require.NoError(t, err)
	r := Describe[uint32](m)

	want := Record{
		Kind:     "ControlChange",
		Category: "midi1 channel voice",
		Unit:     "ump",
		Data:     "2AB73637",
		Fields: []Field{
			{"type", uint32(0x2)},
			{"status", uint32(0xB)},
			{"group", uint8(0xA)},
			{"channel", uint8(0x7)},
			{"control", uint8(0x36)},
			{"control data", uint8(0x37)},
		},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "ControlChange (midi1 channel voice) [2AB73637] type=2 status=11 group=10 channel=7 control=54 control_data=55", r.String())
}

func TestDescribeByteForm(t *testing.T) {
	testlog.Start(t)
	m, err := bytestream.Parse([]uint8{0xD6, 0x09})
	require.NoError(t, err)
	r := Describe[uint8](m)
	require.Equal(t, "bytes", r.Unit)
	require.Equal(t, "D6 09", r.Data)
	require.Equal(t, []Field{
		{"status", uint32(0xD)},
		{"channel", uint8(0x6)},
		{"pressure", uint8(0x09)},
	}, r.Fields)
}

func TestDescribePayload(t *testing.T) {
	testlog.Start(t)
	m, err := ump.Parse([]uint32{0x3016_0001, 0x0203_0405, 0x3034_0607, 0x0809_0000})
	require.NoError(t, err)
	r := Describe[uint32](m)
	require.Equal(t, "Sysex7", r.Kind)
	require.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, r.Payload)
	require.Contains(t, r.String(), "payload=00 01 02 03 04 05 06 07 08 09")
}

func TestRecordEncodings(t *testing.T) {
	testlog.Start(t)
	m, err := ump.Parse([]uint32{0xF021_0000, 0, 0, 0})
	require.NoError(t, err)
	r := Describe[uint32](m)

	packed, err := msgpack.Marshal(r)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, msgpack.Unmarshal(packed, &decoded))
	require.Equal(t, "EndOfClip", decoded["kind"])
	require.Equal(t, "ump stream", decoded["category"])
	require.NotContains(t, decoded, "payload")

	text, err := json.Marshal(r)
	require.NoError(t, err)
	require.Contains(t, string(text), `"kind":"EndOfClip"`)
}
