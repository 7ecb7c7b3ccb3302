package domain

import "time"

// EventType classifies a lifecycle event.
type EventType string

const (
	EventEntryCreated EventType = "entryCreated"
	EventEntryUpdated EventType = "entryUpdated"
	EventEntryDeleted EventType = "entryDeleted"
)

// TopicManagers is the topic every manager approval queue subscribes to.
const TopicManagers = "managers"

// TopicOwner returns the per-contributor topic for status change notifications.
func TopicOwner(ownerID string) string {
	return "owner:" + ownerID
}

// LifecycleEvent is published after a committed write. It is a wake-up signal,
// not a state transfer: subscribers re-query rather than trusting the payload.
type LifecycleEvent struct {
	Type      EventType   `json:"type"`
	EntryID   string      `json:"entry_id"`
	OwnerID   string      `json:"owner_id"`
	NewStatus EntryStatus `json:"new_status,omitempty"`
	At        time.Time   `json:"at"`
}

// Topics returns the topics this event is fanned out to: all managers, plus
// the owning contributor's private topic.
func (e LifecycleEvent) Topics() []string {
	return []string{TopicManagers, TopicOwner(e.OwnerID)}
}
