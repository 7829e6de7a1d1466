package services

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

const (
	operationSwitch  = "switch"
	operationRefresh = "refresh"

	outcomeSuccess = "success"
	outcomeError   = "error"
)

type sessionMetrics struct {
	syncs metric.Int64Counter
}

func (m *sessionMetrics) record(ctx context.Context, operation string, broker models.BrokerName, outcome string) {
	if m == nil || m.syncs == nil {
		return
	}

	m.syncs.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("broker", string(broker)),
		attribute.String("outcome", outcome),
	))
}

func newSessionMetrics() *sessionMetrics {
	meter := otel.Meter(instrumentationName)

	syncs, err := meter.Int64Counter(
		"broker_session.syncs",
		metric.WithDescription("Broker switch and refresh attempts by outcome"),
	)
	if err != nil {
		log.Warnf("newSessionMetrics: failed to create counter: %v", err)
		return &sessionMetrics{}
	}

	return &sessionMetrics{syncs: syncs}
}
