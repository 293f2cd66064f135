package promrecorder

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

const namespace = "udpout"

// Recorder implements secondary.MetricsRecorder with Prometheus counters on
// a private registry.
type Recorder struct {
	registry *prometheus.Registry

	datagramsSent prometheus.Counter
	bytesSent     prometheus.Counter
	sendRetries   prometheus.Counter
	sendFailures  *prometheus.CounterVec
	eventsDropped *prometheus.CounterVec
}

var _ secondary.MetricsRecorder = (*Recorder)(nil)

// New creates a Recorder with forwarding counters plus Go runtime and
// process collectors.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		datagramsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datagrams_sent_total",
			Help:      "Total number of datagrams written to the socket",
		}),
		bytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_sent_total",
			Help:      "Total payload bytes written to the socket",
		}),
		sendRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "send_retries_total",
			Help:      "Total number of send retries scheduled after a transient failure",
		}),
		sendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "send_failures_total",
			Help:      "Total number of events that ended in a failed send",
		}, []string{"kind"}),
		eventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Total number of events dropped before sending",
		}, []string{"reason"}),
	}

	r.registry.MustRegister(
		r.datagramsSent,
		r.bytesSent,
		r.sendRetries,
		r.sendFailures,
		r.eventsDropped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// DatagramSent increments the datagram counter and adds to the byte counter.
func (r *Recorder) DatagramSent(bytes int) {
	r.datagramsSent.Inc()
	r.bytesSent.Add(float64(bytes))
}

// SendRetried increments the retry counter.
func (r *Recorder) SendRetried() {
	r.sendRetries.Inc()
}

// SendFailed increments the failure counter for kind.
func (r *Recorder) SendFailed(kind string) {
	r.sendFailures.WithLabelValues(kind).Inc()
}

// EventDropped increments the dropped-event counter for reason.
func (r *Recorder) EventDropped(reason string) {
	r.eventsDropped.WithLabelValues(reason).Inc()
}
