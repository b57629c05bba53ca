package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/skyops/pss/pkg/logger"
)

// RabbitMQPublisher publishes events to one durable queue per event name,
// declared on first use. This is the default backend.
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel

	mu       sync.Mutex
	declared map[string]bool
}

// NewRabbitMQPublisher dials the broker and opens a publishing channel
func NewRabbitMQPublisher(uri string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	logger.Logger.Info().Msg("RabbitMQ publisher initialized")

	return &RabbitMQPublisher{
		conn:     conn,
		channel:  channel,
		declared: make(map[string]bool),
	}, nil
}

// Publish declares the queue named after the event (idempotent) and sends
// the payload as a persistent JSON message through the default exchange.
func (p *RabbitMQPublisher) Publish(ctx context.Context, eventName string, payload interface{}) error {
	tracer := otel.Tracer("events-publisher")
	ctx, span := tracer.Start(ctx, "events.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination", eventName),
			attribute.String("event.type", eventName),
		),
	)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.declareQueue(eventName); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to declare queue")
		publishFailuresTotal.WithLabelValues(eventName, BackendRabbitMQ).Inc()
		return err
	}

	// Propagate trace context through message headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := amqp.Table{}
	for key, value := range carrier {
		headers[key] = value
	}

	err = p.channel.PublishWithContext(ctx,
		"",        // default exchange
		eventName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Headers:      headers,
			Body:         body,
		},
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish")
		publishFailuresTotal.WithLabelValues(eventName, BackendRabbitMQ).Inc()
		logger.Logger.Error().
			Err(err).
			Str("queue", eventName).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to publish event %s: %w", eventName, err)
	}

	publishedTotal.WithLabelValues(eventName, BackendRabbitMQ).Inc()
	span.SetStatus(codes.Ok, "Event published")

	logger.Logger.Info().
		Str("event_type", eventName).
		Str("queue", eventName).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Event published")

	return nil
}

func (p *RabbitMQPublisher) declareQueue(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.declared[name] {
		return nil
	}

	_, err := p.channel.QueueDeclare(
		name,  // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", name, err)
	}

	p.declared[name] = true
	return nil
}

// Close closes the channel and connection
func (p *RabbitMQPublisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
