package influx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceline/f1-telemetry/internal/config"
)

type fakeInflux struct {
	mu     sync.Mutex
	bodies []string
}

func (f *fakeInflux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/ping":
		w.WriteHeader(http.StatusNoContent)
	case "/api/v2/write":
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.bodies = append(f.bodies, string(body))
		f.mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeInflux) written() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return strings.Join(f.bodies, "\n")
}

func TestWriterWritesPoints(t *testing.T) {
	fake := &fakeInflux{}
	server := httptest.NewServer(fake)
	defer server.Close()

	cfg := &config.Config{
		InfluxURL:       server.URL,
		InfluxToken:     "token",
		InfluxOrg:       "f1",
		InfluxBucket:    "telemetry",
		InfluxBatchSize: 10,
	}

	writer := NewWriter(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, writer.Ping(context.Background()))

	writer.WritePoint(influxdb2_write.NewPoint(
		MeasurementCarTelemetry,
		map[string]string{"car": "0"},
		map[string]interface{}{"speed": uint16(200)},
		testTime,
	))
	writer.Close()

	assert.Eventually(t, func() bool {
		return strings.Contains(fake.written(), "car_telemetry,car=0 speed=200u")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWriterPingFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	writer := NewWriter(&config.Config{InfluxURL: server.URL, InfluxBatchSize: 1}, slog.New(slog.DiscardHandler))
	defer writer.Close()

	assert.Error(t, writer.Ping(context.Background()))
}
