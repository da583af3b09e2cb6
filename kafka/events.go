package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseCompletedEvent is emitted after a purchase transaction commits
type PurchaseCompletedEvent struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	PurchaseID uint            `json:"purchase_id"`
	Reference  string          `json:"reference"`
	ClientID   uint            `json:"client_id"`
	ProductID  uint            `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Total      decimal.Decimal `json:"total"`
	Stock      int             `json:"stock"` // stock remaining after the decrement
	Timestamp  time.Time       `json:"timestamp"`
}

// RecordDeletedEvent is emitted after any entity is deleted
type RecordDeletedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	EntityTable string    `json:"entity_table"`
	RecordID    uint      `json:"record_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypePurchaseCompleted = "purchase.completed"
	EventTypeRecordDeleted     = "record.deleted"
)

// Kafka topics
const (
	TopicPurchaseCompleted = "purchase-completed"
	TopicRecordDeleted     = "record-deleted"
)
