package po

import (
	"encoding/json"
	"time"

	"mealshop/domain/shared"
)

// OutboxEventPO Outbox event persistence object
// Implements transactional outbox pattern for reliable event publishing
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AggregateID string    `gorm:"size:64;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"`          // e.g., "meal.added_to_menu", "shop_order.created"
	Payload     string    `gorm:"type:json;not null"`               // JSON serialized event data
	Status      string    `gorm:"size:20;default:PENDING;not null"` // PENDING, PROCESSING, PUBLISHED, FAILED
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus Outbox event status enum
type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// FromDomainEvent Convert domain event to outbox persistence object.
// The row id is the event id, so a double save of the same event fails on
// the primary key instead of duplicating it.
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializeEventToJSON(event)
	if err != nil {
		return nil, err
	}

	return &OutboxEventPO{
		ID:          event.EventID().String(),
		AggregateID: event.AggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		RetryCount:  0,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// serializeEventToJSON Serialize domain event to JSON string
func serializeEventToJSON(event shared.DomainEvent) (string, error) {
	eventData := map[string]interface{}{
		"event_id":     event.EventID().String(),
		"event_name":   event.EventName(),
		"aggregate_id": event.AggregateID(),
		"occurred_on":  event.OccurredOn(),
	}
	for key, value := range event.Payload() {
		eventData[key] = value
	}

	data, err := json.Marshal(eventData)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToEventData Extract event data from outbox PO (for debugging/testing)
func (po *OutboxEventPO) ToEventData() (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(po.Payload), &data); err != nil {
		return nil, err
	}
	return data, nil
}
