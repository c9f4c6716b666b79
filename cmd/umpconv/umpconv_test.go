package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/midi2/internal/testutil/testlog"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDecodeUmpText(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "decode", "0x2AB7_3637", "30160001020304053034060708090000")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "ControlChange (midi1 channel voice) [2AB73637]"), lines[0])
	require.Contains(t, lines[0], "control=54")
	require.Contains(t, lines[1], "payload=00 01 02 03 04 05 06 07 08 09")
}

func TestDecodeBytesJSON(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "decode", "--input", "bytes", "--output", "json", "D6 09", "F8")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	require.Equal(t, "ChannelPressure", records[0]["kind"])
	require.Equal(t, "D6 09", records[0]["data"])
	require.NotEmpty(t, records[0]["midi"])
	require.Equal(t, "TimingClock", records[1]["kind"])
}

func TestDecodeMsgpack(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "decode", "--output", "msgpack", "F0210000", "00000000", "00000000", "00000000")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, msgpack.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	require.Equal(t, "EndOfClip", records[0]["kind"])
}

func TestDecodeReportsRejected(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "decode", "B0000000", "00000000", "00000000", "2AB73637")
	require.ErrorContains(t, err, "1 input(s) rejected")
	require.Contains(t, out, "ControlChange")

	_, err = run(t, "decode", "2AB736")
	require.ErrorContains(t, err, "multiple of 8")
}

func TestConvert(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "convert", "--to", "ump", "D609", "F27D6C")
	require.NoError(t, err)
	require.Equal(t, "20D60900\n10F27D6C\n", out)

	out, err = run(t, "convert", "--to", "ump", "--group", "10", "F27D6C")
	require.NoError(t, err)
	require.Equal(t, "1AF27D6C\n", out)

	out, err = run(t, "convert", "--to", "bytes", "20D60900", "30160001", "02030405", "30340607", "08090000")
	require.NoError(t, err)
	require.Equal(t, "D6 09\nF0 00 01 02 03 04 05 06 07 08 09 F7\n", out)

	_, err = run(t, "convert", "--to", "bytes", "43B93000", "24681012")
	require.ErrorContains(t, err, "convert to bytes")

	_, err = run(t, "convert", "--to", "midi", "D609")
	require.ErrorContains(t, err, "--to must be")
}

func TestConfigCommandsAndMetrics(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "umpconv.toml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	require.Contains(t, out, "wrote config template")

	_, err = run(t, "config", "validate", path)
	require.NoError(t, err)

	metrics := filepath.Join(dir, "umpconv.prom")
	body := "input = \"bytes\"\ngroup = 3\nmetrics_file = \"" + filepath.ToSlash(metrics) + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	out, err = run(t, "--config", path, "convert", "D609")
	require.NoError(t, err)
	require.Equal(t, "23D60900\n", out)

	out, err = run(t, "--config", path, "decode", "9045 64")
	require.NoError(t, err)
	require.Contains(t, out, "NoteOn")

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	require.Contains(t, string(prom), "midi2_decode_messages_total")

	require.NoError(t, os.WriteFile(path, []byte("group = 99\n"), 0o600))
	_, err = run(t, "config", "validate", path)
	require.ErrorContains(t, err, "out of range")
}

func TestDecodeFile(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	words := filepath.Join(dir, "capture.ump")
	require.NoError(t, os.WriteFile(words, []byte{
		0x2A, 0xB7, 0x36, 0x37,
		0xB0, 0x00, 0x00, 0x00, 0, 0, 0, 0, 0, 0, 0, 0,
		0xF0, 0x21, 0x00, 0x00, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}, 0o600))

	out, err := run(t, "decode", "--file", words)
	require.ErrorContains(t, err, "1 input(s) rejected")
	require.Contains(t, out, "ControlChange")
	require.Contains(t, out, "EndOfClip")

	raw := filepath.Join(dir, "capture.mid")
	require.NoError(t, os.WriteFile(raw, []byte{0xF8, 0xC0, 0x05}, 0o600))
	out, err = run(t, "decode", "--input", "bytes", "--file", raw)
	require.NoError(t, err)
	require.Contains(t, out, "TimingClock")
	require.Contains(t, out, "ProgramChange")

	_, err = run(t, "decode", "--file", raw, "2AB73637")
	require.ErrorContains(t, err, "either --file or hex")
}
