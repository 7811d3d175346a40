package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_Total(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItem
		want  int64
	}{
		{name: "empty order", items: nil, want: 0},
		{
			name: "single item",
			items: []OrderItem{
				{Name: "espresso", Quantity: 2, UnitPrice: 250},
			},
			want: 500,
		},
		{
			name: "mixed items",
			items: []OrderItem{
				{Name: "burger", Quantity: 1, UnitPrice: 1250},
				{Name: "fries", Quantity: 2, UnitPrice: 450},
				{Name: "cola", Quantity: 3, UnitPrice: 300},
			},
			want: 3050,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Items: tt.items}
			assert.Equal(t, tt.want, o.Total())
		})
	}
}

func TestDecodeOrderEvent(t *testing.T) {
	raw := []byte(`{
		"type": "order.status_changed",
		"orderId": "ord-1",
		"tableId": "tbl-4",
		"status": "ready",
		"occurredAt": "2025-03-01T12:00:00Z"
	}`)

	ev, err := DecodeOrderEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, OrderEventStatusChanged, ev.Type)
	assert.Equal(t, "ord-1", ev.OrderID)
	assert.Equal(t, OrderStatusReady, ev.Status)
}

func TestDecodeOrderEvent_InvalidJSON(t *testing.T) {
	_, err := DecodeOrderEvent([]byte(`{not json`))
	require.Error(t, err)
}
