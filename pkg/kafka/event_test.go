package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderPlaced struct {
	OrderID string  `json:"orderId"`
	Total   float64 `json:"total"`
}

func TestNewEvent(t *testing.T) {
	evt, err := NewEvent("order.created", "order_1", "order", "justzmatbaa", orderPlaced{
		OrderID: "order_1", Total: 14250,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, evt.EventID)
	assert.Equal(t, "order.created", evt.EventType)
	assert.Equal(t, "order_1", evt.AggregateID)
	assert.Equal(t, "order", evt.AggregateType)
	assert.Equal(t, 1, evt.Version)
	assert.False(t, evt.Timestamp.IsZero())
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("x", "y", "z", "s", make(chan int))
	assert.Error(t, err)
}

func TestEvent_RoundTrip(t *testing.T) {
	evt, err := NewEvent("order.created", "order_1", "order", "justzmatbaa", orderPlaced{
		OrderID: "order_1", Total: 14250,
	})
	require.NoError(t, err)
	evt.WithCorrelationID("corr-1")

	data, err := evt.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, evt.EventID, decoded.EventID)
	assert.Equal(t, "corr-1", decoded.CorrelationID)

	var payload orderPlaced
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "order_1", payload.OrderID)
	assert.Equal(t, 14250.0, payload.Total)
}
