// Package bot defines the wire contract between the external dialogue engine
// and this action server: the engine POSTs the name of the action to run plus
// the session tracker, and receives slot events and messages back.
package bot

import (
	"fmt"
	"strconv"
)

// ActionRequest is the inbound payload for one action run.
type ActionRequest struct {
	NextAction string  `json:"next_action" binding:"required"`
	SenderID   string  `json:"sender_id"`
	Tracker    Tracker `json:"tracker"`
}

// Tracker carries the per-session state the dialogue engine persists
// between turns: the slot map and the latest parsed user message.
type Tracker struct {
	SenderID      string         `json:"sender_id"`
	Slots         map[string]any `json:"slots"`
	LatestMessage LatestMessage  `json:"latest_message"`
}

// LatestMessage is the most recent user message as parsed by the engine.
type LatestMessage struct {
	Text     string   `json:"text"`
	Intent   Intent   `json:"intent"`
	Entities []Entity `json:"entities"`
}

// Intent names the classified intent of the latest message.
type Intent struct {
	Name string `json:"name"`
}

// Entity is one extracted entity from the latest message.
type Entity struct {
	Entity string `json:"entity"`
	Value  any    `json:"value"`
}

// StringSlot returns a slot value as a string, or "" when unset or not
// string-shaped.
func (t *Tracker) StringSlot(name string) string {
	v, ok := t.Slots[name]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// IntSlot returns a slot value as an int. Slot values round-trip through
// JSON, so numbers arrive as float64 and button payloads often carry them
// as strings; both are accepted. Anything else falls back to 0.
func (t *Tracker) IntSlot(name string) int {
	v, ok := t.Slots[name]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// BoolSlot returns a slot value as a bool, false when unset.
func (t *Tracker) BoolSlot(name string) bool {
	v, ok := t.Slots[name]
	if !ok || v == nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		return false
	}
	return b
}

// EntityValue returns the first value of the named entity from the latest
// message, rendered as a string.
func (t *Tracker) EntityValue(name string) (string, bool) {
	for _, e := range t.LatestMessage.Entities {
		if e.Entity != name {
			continue
		}
		switch v := e.Value.(type) {
		case string:
			return v, true
		case float64:
			// Whole numbers must not pick up a trailing ".000000".
			if v == float64(int64(v)) {
				return strconv.FormatInt(int64(v), 10), true
			}
			return strconv.FormatFloat(v, 'f', -1, 64), true
		case nil:
			return "", false
		default:
			return fmt.Sprintf("%v", v), true
		}
	}
	return "", false
}

// Event is a tracker event returned to the dialogue engine.
type Event map[string]any

// SlotSet builds a slot update event. A nil value unsets the slot.
func SlotSet(name string, value any) Event {
	return Event{"event": "slot", "name": name, "value": value}
}

// FollowupAction asks the engine to run another action immediately after
// this one.
func FollowupAction(name string) Event {
	return Event{"event": "followup", "name": name}
}

// Button is one suggested reply. Payload encodes the next intent and
// optional entity values as /intent{"key":"value"}.
type Button struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// Message is one outbound message to render to the user.
type Message struct {
	Text    string   `json:"text"`
	Buttons []Button `json:"buttons,omitempty"`
}

// ActionResponse is the outbound payload for one action run.
type ActionResponse struct {
	Events    []Event   `json:"events"`
	Responses []Message `json:"responses"`
}
