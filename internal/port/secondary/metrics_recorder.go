package secondary

// MetricsRecorder receives forwarding counters.
type MetricsRecorder interface {
	// DatagramSent counts one delivered datagram of the given size.
	DatagramSent(bytes int)
	// SendRetried counts one retry scheduled after a failed attempt.
	SendRetried()
	// SendFailed counts one abandoned send, labelled by failure kind.
	SendFailed(kind string)
	// EventDropped counts one event discarded before sending.
	EventDropped(reason string)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

// DatagramSent does nothing.
func (NopMetrics) DatagramSent(int) {}

// SendRetried does nothing.
func (NopMetrics) SendRetried() {}

// SendFailed does nothing.
func (NopMetrics) SendFailed(string) {}

// EventDropped does nothing.
func (NopMetrics) EventDropped(string) {}
