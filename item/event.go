package item

// EventType names an item mutation announced on the topic.
type EventType string

const (
	EventItemCreated EventType = "ITEM_CREATED"
	EventItemUpdated EventType = "ITEM_UPDATED"
)

// Event is the notification published after a successful create or update.
// It is a snapshot of the item at the moment of the mutation.
type Event struct {
	Event     EventType `json:"event"`
	ItemID    string    `json:"itemId"`
	ItemName  string    `json:"itemName"`
	Timestamp string    `json:"timestamp"`
}

// CreatedEvent builds the ITEM_CREATED event for a freshly stored item.
func CreatedEvent(it Item) Event {
	return Event{
		Event:     EventItemCreated,
		ItemID:    it.ID,
		ItemName:  it.Name,
		Timestamp: it.CreatedAt,
	}
}

// UpdatedEvent builds the ITEM_UPDATED event from the post-update item.
func UpdatedEvent(it Item) Event {
	return Event{
		Event:     EventItemUpdated,
		ItemID:    it.ID,
		ItemName:  it.Name,
		Timestamp: it.UpdatedAt,
	}
}

// Subject returns the message subject used when publishing the event.
func (e Event) Subject() string {
	switch e.Event {
	case EventItemCreated:
		return "Item created"
	case EventItemUpdated:
		return "Item updated"
	default:
		return "Item event"
	}
}
