package events

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Publisher delivers an event to the destination named after the event type.
// Delivery is at-most-once from the caller's perspective; the caller observes
// no acknowledgment beyond the returned error.
type Publisher interface {
	Publish(ctx context.Context, eventName string, payload interface{}) error
	Close() error
}

// Broker backends
const (
	BackendRabbitMQ = "rabbitmq"
	BackendKafka    = "kafka"
)

// NewBrokerPublisher builds the publisher for the configured broker backend
func NewBrokerPublisher(backend, rabbitURI string, kafkaBrokers []string) (Publisher, error) {
	switch backend {
	case BackendRabbitMQ:
		return NewRabbitMQPublisher(rabbitURI)
	case BackendKafka:
		return NewKafkaPublisher(kafkaBrokers)
	default:
		return nil, fmt.Errorf("unknown event broker %q", backend)
	}
}

var (
	publishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pss_events_published_total",
			Help: "Total number of events published, by event name and backend",
		},
		[]string{"event", "backend"},
	)
	publishFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pss_events_publish_failures_total",
			Help: "Total number of failed event publications, by event name and backend",
		},
		[]string{"event", "backend"},
	)
)

func init() {
	prometheus.MustRegister(publishedTotal)
	prometheus.MustRegister(publishFailuresTotal)
}
