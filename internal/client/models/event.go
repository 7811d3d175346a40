package models

import (
	"encoding/json"
	"time"
)

// OrderEventType classifies a live order update pushed over the WebSocket
// channel.
type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventUpdated       OrderEventType = "order.updated"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)

// OrderEvent is the envelope of a live order update.
type OrderEvent struct {
	Type       OrderEventType `json:"type"`
	OrderID    string         `json:"orderId"`
	TableID    string         `json:"tableId,omitempty"`
	Status     OrderStatus    `json:"status,omitempty"`
	Order      *Order         `json:"order,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// DecodeOrderEvent parses a raw WebSocket frame into an OrderEvent.
func DecodeOrderEvent(data []byte) (*OrderEvent, error) {
	var ev OrderEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
