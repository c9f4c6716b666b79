package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/midi2/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	before := testutil.ToFloat64(decodedMessages.WithLabelValues("ump", "midi1 channel voice", "NoteOn"))
	RecordDecoded("ump", "midi1 channel voice", "NoteOn")
	RecordDecoded("ump", "midi1 channel voice", "NoteOn")
	after := testutil.ToFloat64(decodedMessages.WithLabelValues("ump", "midi1 channel voice", "NoteOn"))
	require.Equal(t, before+2, after)

	RecordRejected("bytes", "running status not supported")
	require.GreaterOrEqual(t, testutil.ToFloat64(rejectedMessages.WithLabelValues("bytes", "running status not supported")), 1.0)

	RecordConverted("bytes", "ump", true)
	require.GreaterOrEqual(t, testutil.ToFloat64(convertedMessages.WithLabelValues("bytes", "ump", "true")), 1.0)
}

func TestWriteTextfile(t *testing.T) {
	testlog.Start(t)
	RecordDecoded("bytes", "system common", "TimingClock")

	path := filepath.Join(t.TempDir(), "umpconv.prom")
	require.NoError(t, WriteTextfile(path))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(body), `midi2_decode_messages_total{category="system common",input="bytes",kind="TimingClock"}`)

	require.Error(t, WriteTextfile(filepath.Join(t.TempDir(), "missing", "umpconv.prom")))
}
