package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inventory/config"
	"inventory/internal/domain/service"
	"inventory/internal/infra/metrics"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent() *service.StockEvent {
	return &service.StockEvent{
		RequestID:  "req-1",
		EventType:  service.EventProductQuantityUpdated,
		ProductID:  42,
		SKU:        "PHN-001",
		Quantity:   7,
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	var (
		got       PushMessage
		requestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	require.NoError(t, publisher.PublishStockEvent(context.Background(), sampleEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, localSubscription, got.Subscription)
	assert.NotEmpty(t, got.Message.MessageID)
	assert.Equal(t, "42", got.Message.Attributes["product_id"])
	assert.Equal(t, service.EventProductQuantityUpdated, got.Message.Attributes["event_type"])

	raw, err := base64.StdEncoding.DecodeString(got.Message.Data)
	require.NoError(t, err)

	var decoded service.StockEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, int64(7), decoded.Quantity)
	assert.Equal(t, "PHN-001", decoded.SKU)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	err := publisher.PublishStockEvent(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNewPublisher_ProviderSelection(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr string
	}{
		{name: "nil config is no-op", cfg: nil},
		{name: "empty provider is no-op", cfg: &config.PubSubConfig{}},
		{name: "local", cfg: &config.PubSubConfig{Provider: ProviderLocal, LocalEndpoint: "http://localhost:9999"}},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: ProviderLocal}, wantErr: "local endpoint is required"},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: ProviderGoogle, TopicID: "t"}, wantErr: "project ID is required"},
		{name: "google without topic", cfg: &config.PubSubConfig{Provider: ProviderGoogle, ProjectID: "p"}, wantErr: "topic ID is required"},
		{name: "unknown", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: "unknown pubsub provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := newPublisher(context.Background(), tt.cfg, discardLogger())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.NotNil(t, publisher)
			assert.NoError(t, publisher.Close())
		})
	}
}

type failingPublisher struct{}

func (failingPublisher) PublishStockEvent(context.Context, *service.StockEvent) error {
	return errors.New("unavailable")
}

func (failingPublisher) Close() error { return nil }

func TestInstrumentedPublisher_CountsResults(t *testing.T) {
	m := metrics.New()

	ok := &instrumentedPublisher{next: &noopPublisher{logger: discardLogger()}, metrics: m}
	failing := &instrumentedPublisher{next: failingPublisher{}, metrics: m}

	require.NoError(t, ok.PublishStockEvent(context.Background(), sampleEvent()))
	require.Error(t, failing.PublishStockEvent(context.Background(), sampleEvent()))
	require.Error(t, failing.PublishStockEvent(context.Background(), sampleEvent()))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.StockEventsTotal.WithLabelValues(service.EventProductQuantityUpdated, "success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.StockEventsTotal.WithLabelValues(service.EventProductQuantityUpdated, "failure")))
}
