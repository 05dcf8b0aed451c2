package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inventory/config"
	"inventory/internal/domain/service"
	"inventory/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(verify bool) (*PushHandler, *metrics.Metrics) {
	m := metrics.New()
	h := NewPushHandler(PushHandlerParams{
		Config: &config.Config{
			Worker: &config.WorkerConfig{LowStockThreshold: 5, VerifyPushAuth: verify},
		},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: m,
	})

	return h, m
}

func pushBody(t *testing.T, event any, attrs map[string]string) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = "msg-1"
	msg.Message.Attributes = attrs
	msg.Subscription = "projects/local/subscriptions/stock-events-sub"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func servePush(h *PushHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestPushHandler_HandlePush(t *testing.T) {
	tests := []struct {
		name        string
		body        func(t *testing.T) string
		wantStatus  int
		wantOutcome string
		eventType   string
		wantAlerts  float64
	}{
		{
			name: "processed",
			body: func(t *testing.T) string {
				return pushBody(t, service.StockEvent{EventType: service.EventProductCreated, ProductID: 1, SKU: "A", Quantity: 50}, nil)
			},
			wantStatus:  http.StatusOK,
			wantOutcome: OutcomeProcessed,
			eventType:   service.EventProductCreated,
		},
		{
			name: "low stock at threshold",
			body: func(t *testing.T) string {
				return pushBody(t, service.StockEvent{EventType: service.EventProductQuantityUpdated, ProductID: 1, SKU: "A", Quantity: 5}, nil)
			},
			wantStatus:  http.StatusOK,
			wantOutcome: OutcomeLowStock,
			eventType:   service.EventProductQuantityUpdated,
			wantAlerts:  1,
		},
		{
			name: "unknown event type",
			body: func(t *testing.T) string {
				return pushBody(t, service.StockEvent{EventType: "product.deleted", ProductID: 1}, nil)
			},
			wantStatus:  http.StatusBadRequest,
			wantOutcome: OutcomeRejected,
			eventType:   "product.deleted",
		},
		{
			name: "invalid product id",
			body: func(t *testing.T) string {
				return pushBody(t, service.StockEvent{EventType: service.EventProductCreated}, nil)
			},
			wantStatus:  http.StatusBadRequest,
			wantOutcome: OutcomeRejected,
			eventType:   service.EventProductCreated,
		},
		{
			name: "data not base64",
			body: func(*testing.T) string {
				return `{"message":{"data":"%%%","messageId":"1"}}`
			},
			wantStatus:  http.StatusBadRequest,
			wantOutcome: OutcomeRejected,
			eventType:   "unknown",
		},
		{
			name: "data not an event",
			body: func(*testing.T) string {
				return `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("nope")) + `"}}`
			},
			wantStatus:  http.StatusBadRequest,
			wantOutcome: OutcomeRejected,
			eventType:   "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(false)

			rec := servePush(h, tt.body(t))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.InDelta(t, 1, testutil.ToFloat64(m.StockEventsReceived.WithLabelValues(tt.eventType, tt.wantOutcome)), 0)
			assert.InDelta(t, tt.wantAlerts, testutil.ToFloat64(m.LowStockAlerts), 0)
		})
	}
}

func TestPushHandler_VerifiesToken(t *testing.T) {
	h, m := newTestHandler(true)
	h.verifyToken = func(*http.Request) error { return errors.New("bad token") }

	rec := servePush(h, pushBody(t, service.StockEvent{EventType: service.EventProductCreated, ProductID: 1, Quantity: 9}, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.InDelta(t, 0, testutil.ToFloat64(m.StockEventsReceived.WithLabelValues(service.EventProductCreated, OutcomeProcessed)), 0)

	h.verifyToken = func(*http.Request) error { return nil }
	rec = servePush(h, pushBody(t, service.StockEvent{EventType: service.EventProductCreated, ProductID: 1, Quantity: 9}, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_ExtractRequestID(t *testing.T) {
	h, _ := newTestHandler(false)
	req := httptest.NewRequest(http.MethodPost, "/push", nil)

	msg := &PubSubMessage{}
	msg.Message.Attributes = map[string]string{"request_id": "from-attrs"}
	assert.Equal(t, "from-attrs", h.extractRequestID(req.Context(), msg, &service.StockEvent{RequestID: "from-event"}))

	assert.Equal(t, "from-event", h.extractRequestID(req.Context(), &PubSubMessage{}, &service.StockEvent{RequestID: "from-event"}))

	assert.NotEmpty(t, h.extractRequestID(req.Context(), &PubSubMessage{}, &service.StockEvent{}))
}

func TestVerifyPubSubToken_RejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/push", nil)
	require.Error(t, verifyPubSubToken(req))

	req.Header.Set("Authorization", "Basic abc")
	require.Error(t, verifyPubSubToken(req))
}
