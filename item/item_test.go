package item_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinicius-dias23/roteiro3/item"
)

func TestFormatTime(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2025, 1, 2, 0, 0, 0, 0, loc)

	assert.Equal(t, "2025-01-02T03:00:00.000Z", item.FormatTime(ts))
}

func TestNextTimestamp(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		prev string
		now  time.Time
		want string
	}{
		{"no previous", "", base, "2025-01-01T12:00:00.000Z"},
		{"clock advanced", "2025-01-01T11:59:59.000Z", base, "2025-01-01T12:00:00.000Z"},
		{"same millisecond", "2025-01-01T12:00:00.000Z", base, "2025-01-01T12:00:00.001Z"},
		{"clock behind", "2025-01-01T12:00:05.000Z", base, "2025-01-01T12:00:05.001Z"},
		{"sub-millisecond now", "2025-01-01T12:00:00.000Z", base.Add(300 * time.Microsecond), "2025-01-01T12:00:00.001Z"},
		{"unparseable previous", "yesterday", base, "2025-01-01T12:00:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, item.NextTimestamp(tt.prev, tt.now))
		})
	}
}

func TestEvents(t *testing.T) {
	it := item.Item{
		ID:        "abc",
		Name:      "Widget",
		CreatedAt: "2025-01-01T00:00:00.000Z",
		UpdatedAt: "2025-01-02T00:00:00.000Z",
	}

	created := item.CreatedEvent(it)
	assert.Equal(t, item.EventItemCreated, created.Event)
	assert.Equal(t, it.CreatedAt, created.Timestamp)
	assert.Equal(t, "Item created", created.Subject())

	updated := item.UpdatedEvent(it)
	assert.Equal(t, item.EventItemUpdated, updated.Event)
	assert.Equal(t, it.UpdatedAt, updated.Timestamp)
	assert.Equal(t, "Item updated", updated.Subject())
}

func TestEventWireFormat(t *testing.T) {
	b, err := json.Marshal(item.Event{
		Event:     item.EventItemCreated,
		ItemID:    "abc",
		ItemName:  "Widget",
		Timestamp: "2025-01-01T00:00:00.000Z",
	})
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"event":"ITEM_CREATED","itemId":"abc","itemName":"Widget","timestamp":"2025-01-01T00:00:00.000Z"}`,
		string(b))
}
