package history

import (
	"encoding/json"
	"fmt"
)

// EntryAdded is published when a computation is recorded.
type EntryAdded struct {
	Index int   `json:"index"`
	Entry Entry `json:"entry"`
}

// EntrySelected is published when an entry is picked for replay.
type EntrySelected struct {
	Index int `json:"index"`
	ID    ID  `json:"id"`
}

// Event is a change in the log, delivered to sinks in order.
type Event interface {
	evType() string
}

func (*EntryAdded) evType() string    { return "add" }
func (*EntrySelected) evType() string { return "select" }

type jsonEvent struct {
	Type  string `json:"type"`
	Event Event  `json:"event"`
}

func writeEvent(enc *json.Encoder, ev Event) error {
	jsev := &jsonEvent{Type: ev.evType(), Event: ev}
	return enc.Encode(jsev)
}

// rawEvent is a transcript record before its payload type is known.
type rawEvent struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}

func readEvent(dec *json.Decoder) (Event, error) {
	var raw rawEvent
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw.Event == nil {
		return nil, fmt.Errorf("%q record without \"event\" key", raw.Type)
	}
	var ev Event
	switch raw.Type {
	case "add":
		ev = new(EntryAdded)
	case "select":
		ev = new(EntrySelected)
	default:
		return nil, fmt.Errorf("unknown event type %q", raw.Type)
	}
	if err := json.Unmarshal(raw.Event, ev); err != nil {
		return nil, fmt.Errorf("%s event: %w", raw.Type, err)
	}
	return ev, nil
}
