package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skyops/pss/pkg/logger"
)

// OutboxRecord is a durably stored event awaiting broker delivery. Records
// are drained by the outbox relay, which marks them published.
type OutboxRecord struct {
	ID          uint64     `gorm:"primaryKey"`
	EventID     string     `gorm:"size:36;not null;uniqueIndex"`
	EventName   string     `gorm:"size:64;not null;index"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time  `gorm:"not null"`
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the table name
func (OutboxRecord) TableName() string {
	return "event_outbox"
}

// OutboxSink implements Publisher by writing events to the outbox table
// instead of the broker. Delivery becomes at-least-once once the relay picks
// the record up; a broker outage no longer loses events.
type OutboxSink struct {
	db *gorm.DB
}

// NewOutboxSink creates a sink backed by the given database
func NewOutboxSink(db *gorm.DB) *OutboxSink {
	return &OutboxSink{db: db}
}

// Publish stores the event for later delivery
func (s *OutboxSink) Publish(ctx context.Context, eventName string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	record := &OutboxRecord{
		EventID:   uuid.NewString(),
		EventName: eventName,
		Payload:   body,
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		publishFailuresTotal.WithLabelValues(eventName, "outbox").Inc()
		return fmt.Errorf("failed to store outbox event %s: %w", eventName, err)
	}

	publishedTotal.WithLabelValues(eventName, "outbox").Inc()
	logger.Info(ctx).
		Str("event_type", eventName).
		Str("event_id", record.EventID).
		Msg("Event recorded in outbox")

	return nil
}

// Close is a no-op; the sink does not own the database connection
func (s *OutboxSink) Close() error {
	return nil
}
