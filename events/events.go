// Package events defines the change events this system emits and the
// publishers that deliver them. One named destination exists per event type
// and is declared on demand.
package events

import "time"

// Event names double as queue (RabbitMQ) or topic (Kafka) names
const (
	EventScheduleCreated    = "ScheduleCreated"
	EventInventoryUpdated   = "InventoryUpdated"
	EventPassengerCheckedIn = "PassengerCheckedIn"
	EventPassengerBoarded   = "PassengerBoarded"
	EventPassengerOffloaded = "PassengerOffloaded"
)

// ScheduleCreatedEvent announces the post-write state of a schedule upsert.
// The same event name is used for inserts and updates.
type ScheduleCreatedEvent struct {
	FlightID             uint   `json:"flight_id"`
	FlightNumber         string `json:"flight_number"`
	DepartureDate        string `json:"departure_date"`
	Origin               string `json:"origin"`
	Destination          string `json:"destination"`
	BusinessSeatCapacity int    `json:"business_seat_capacity"`
	EconomySeatCapacity  int    `json:"economy_seat_capacity"`
}

// InventoryUpdatedEvent announces the post-write state of an inventory
// upsert, including computed availability.
type InventoryUpdatedEvent struct {
	InventoryID            uint   `json:"inventory_id"`
	FlightID               uint   `json:"flight_id"`
	FlightNumber           string `json:"flight_number"`
	DepartureDate          string `json:"departure_date"`
	BookedBusinessSeats    int    `json:"booked_business_seats"`
	BookedEconomySeats     int    `json:"booked_economy_seats"`
	AvailableBusinessSeats int    `json:"available_business_seats"`
	AvailableEconomySeats  int    `json:"available_economy_seats"`
}

// Envelope wraps passenger events with their type and emission time
type Envelope struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEnvelope builds an envelope stamped with the current UTC time
func NewEnvelope(eventType string, data interface{}) Envelope {
	return Envelope{
		EventType: eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}
