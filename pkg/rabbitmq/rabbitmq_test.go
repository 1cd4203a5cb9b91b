package rabbitmq_test

import (
	"testing"

	"gudang/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAuditHandler_LogsEvent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := rabbitmq.AuditHandler(zap.New(core))

	err := handler(amqp.Delivery{
		RoutingKey: "product.created",
		Body:       []byte(`{"type":"product.created","occurred_at":"2024-01-02T03:04:05Z","data":{"id":"p1"}}`),
	})
	assert.NoError(t, err)

	entries := logs.FilterMessage("audit event").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "product.created", fields["type"])
		assert.Equal(t, `{"id":"p1"}`, fields["data"])
	}
}

func TestAuditHandler_FallsBackToRoutingKey(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := rabbitmq.AuditHandler(zap.New(core))

	assert.NoError(t, handler(amqp.Delivery{RoutingKey: "user.registered", Body: []byte(`{"data":{}}`)}))
	assert.Equal(t, "user.registered", logs.All()[0].ContextMap()["type"])
}

func TestAuditHandler_RejectsMalformedBody(t *testing.T) {
	handler := rabbitmq.AuditHandler(zap.NewNop())
	assert.Error(t, handler(amqp.Delivery{Body: []byte("not json")}))
}
