package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"inventory/config"
	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/service"
	"inventory/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// Outcomes recorded for every consumed push.
const (
	OutcomeProcessed = "processed"
	OutcomeLowStock  = "low_stock"
	OutcomeRejected  = "rejected"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// TokenVerifier validates the OIDC token attached to a push request.
type TokenVerifier func(req *http.Request) error

// PushHandler consumes stock events pushed by Pub/Sub or the local publisher.
type PushHandler struct {
	verifyPushAuth    bool
	verifyToken       TokenVerifier
	lowStockThreshold int64
	logger            *slog.Logger
	metrics           *metrics.Metrics
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	h := &PushHandler{
		verifyToken: verifyPubSubToken,
		logger:      params.Logger,
		metrics:     params.Metrics,
	}
	if params.Config.Worker != nil {
		h.verifyPushAuth = params.Config.Worker.VerifyPushAuth
		h.lowStockThreshold = params.Config.Worker.LowStockThreshold
	}

	return h
}

// HandlePush handles incoming Pub/Sub push messages. Malformed pushes are
// answered with 400; everything else is acknowledged with 200.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		return h.reject(c, "", errors.Wrap(err, "parse push message"))
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		return h.reject(c, "", errors.Wrap(err, "decode message data"))
	}

	var event service.StockEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return h.reject(c, "", errors.Wrap(err, "parse stock event"))
	}
	if err := validateEvent(&event); err != nil {
		return h.reject(c, event.EventType, err)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	attrs := []any{
		slog.String("message_id", pushMsg.Message.MessageID),
		slog.String("event_type", event.EventType),
		slog.Int64("product_id", event.ProductID),
		slog.String("sku", event.SKU),
		slog.Int64("quantity", event.Quantity),
	}

	if event.Quantity <= h.lowStockThreshold {
		h.metrics.LowStockAlerts.Inc()
		h.metrics.StockEventsReceived.WithLabelValues(event.EventType, OutcomeLowStock).Inc()
		reqLogger.Warn("[Worker] Low stock", append(attrs, slog.Int64("threshold", h.lowStockThreshold))...)

		return c.NoContent(http.StatusOK)
	}

	h.metrics.StockEventsReceived.WithLabelValues(event.EventType, OutcomeProcessed).Inc()
	reqLogger.Info("[Worker] Stock event processed", attrs...)

	return c.NoContent(http.StatusOK)
}

func (h *PushHandler) reject(c echo.Context, eventType string, err error) error {
	if eventType == "" {
		eventType = "unknown"
	}
	h.metrics.StockEventsReceived.WithLabelValues(eventType, OutcomeRejected).Inc()
	h.logger.Error("[Worker] Rejected push message", slog.Any("error", err))

	return c.NoContent(http.StatusBadRequest)
}

func validateEvent(event *service.StockEvent) error {
	switch event.EventType {
	case service.EventProductCreated, service.EventProductQuantityUpdated:
	default:
		return errors.Errorf("unknown event type %q", event.EventType)
	}
	if event.ProductID <= 0 {
		return errors.Errorf("invalid product id %d", event.ProductID)
	}
	if event.Quantity < 0 {
		return errors.Errorf("invalid quantity %d", event.Quantity)
	}

	return nil
}

// extractRequestID prefers message attributes, then the event payload, then
// the X-Request-Id of the push itself, and finally a fresh UUID.
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.StockEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}
	if event.RequestID != "" {
		return event.RequestID
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// googleIssuers are the issuers Google uses for Pub/Sub push tokens.
var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// verifyPubSubToken validates the Google-signed OIDC token Pub/Sub attaches to
// authenticated push subscriptions. The audience is the push endpoint URL.
func verifyPubSubToken(req *http.Request) error {
	scheme, token, found := strings.Cut(req.Header.Get(echo.HeaderAuthorization), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return errors.New("missing or malformed bearer token")
	}

	proto := "https"
	if req.TLS == nil {
		proto = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", proto, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "validate push token")
	}
	if !googleIssuers[payload.Issuer] {
		return errors.Errorf("unexpected token issuer %q", payload.Issuer)
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return errors.New("push service account email is not verified")
	}

	return nil
}
