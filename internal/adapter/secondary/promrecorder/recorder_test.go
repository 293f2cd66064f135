package promrecorder

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.DatagramSent(10)
	r.DatagramSent(32)
	r.SendRetried()
	r.SendFailed("oversize")
	r.SendFailed("transient")
	r.SendFailed("transient")
	r.EventDropped("port_resolution")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.datagramsSent))
	assert.Equal(t, 42.0, testutil.ToFloat64(r.bytesSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sendRetries))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sendFailures.WithLabelValues("oversize")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.sendFailures.WithLabelValues("transient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.eventsDropped.WithLabelValues("port_resolution")))
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.DatagramSent(5)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "udpout_datagrams_sent_total 1")
	assert.Contains(t, string(body), "udpout_bytes_sent_total 5")
}
