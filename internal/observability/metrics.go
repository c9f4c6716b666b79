package observability

import (
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	decodedMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "midi2",
			Subsystem: "decode",
			Name:      "messages_total",
			Help:      "Messages decoded, by input form, category and kind.",
		},
		[]string{"input", "category", "kind"},
	)
	rejectedMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "midi2",
			Subsystem: "decode",
			Name:      "rejected_total",
			Help:      "Inputs rejected by the decoder, by input form and reason.",
		},
		[]string{"input", "reason"},
	)
	convertedMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "midi2",
			Subsystem: "convert",
			Name:      "messages_total",
			Help:      "Messages translated between wire forms.",
		},
		[]string{"from", "to", "success"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(decodedMessages, rejectedMessages, convertedMessages)
	})
}

func RecordDecoded(input, category, kind string) {
	RegisterMetrics()
	decodedMessages.WithLabelValues(input, category, kind).Inc()
}

func RecordRejected(input, reason string) {
	RegisterMetrics()
	rejectedMessages.WithLabelValues(input, reason).Inc()
}

func RecordConverted(from, to string, success bool) {
	RegisterMetrics()
	convertedMessages.WithLabelValues(from, to, strconv.FormatBool(success)).Inc()
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for collection by a node exporter textfile collector.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return errors.Wrapf(prometheus.WriteToTextfile(path, prometheus.DefaultGatherer), "write metrics %s", path)
}
