// Package multiplayer provides the connection wizard backend for hosting or
// joining an island session. It communicates with consuming UI code
// exclusively through a bounded event channel and never touches the island
// authoring state.
package multiplayer

// EventKind discriminates wizard events.
type EventKind int

// Wizard event kinds.
const (
	// EventMessage carries human-readable status for the UI, including the
	// published host address.
	EventMessage EventKind = iota
	// EventError carries a non-fatal failure description.
	EventError
	// EventLogEntry carries one replication log entry.
	EventLogEntry
)

// ReplicationLogEntry is one opaque entry of the island replication stream.
type ReplicationLogEntry struct {
	Entry uint64
	Value []byte
}

// Event is one item on the wizard's UI channel.
type Event struct {
	Kind  EventKind
	Text  string
	Entry ReplicationLogEntry
}

// MessageEvent builds a status event.
func MessageEvent(text string) Event { return Event{Kind: EventMessage, Text: text} }

// ErrorEvent builds a failure event.
func ErrorEvent(text string) Event { return Event{Kind: EventError, Text: text} }

// LogEntryEvent builds a replication log event.
func LogEntryEvent(entry ReplicationLogEntry) Event {
	return Event{Kind: EventLogEntry, Entry: entry}
}
