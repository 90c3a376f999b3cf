package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlot(t *testing.T) {
	tr := &Tracker{Slots: map[string]any{
		"view_type": "bestseller",
		"page":      float64(2),
		"gone":      nil,
	}}

	assert.Equal(t, "bestseller", tr.StringSlot("view_type"))
	assert.Empty(t, tr.StringSlot("page"))
	assert.Empty(t, tr.StringSlot("gone"))
	assert.Empty(t, tr.StringSlot("missing"))
}

func TestIntSlotCoercions(t *testing.T) {
	tr := &Tracker{Slots: map[string]any{
		"json_number": float64(3),
		"go_int":      4,
		"payload":     "5",
		"junk":        "not a number",
		"unset":       nil,
	}}

	assert.Equal(t, 3, tr.IntSlot("json_number"))
	assert.Equal(t, 4, tr.IntSlot("go_int"))
	assert.Equal(t, 5, tr.IntSlot("payload"))
	assert.Equal(t, 0, tr.IntSlot("junk"))
	assert.Equal(t, 0, tr.IntSlot("unset"))
	assert.Equal(t, 0, tr.IntSlot("missing"))
}

func TestBoolSlot(t *testing.T) {
	tr := &Tracker{Slots: map[string]any{
		"ready":  true,
		"string": "true",
	}}

	assert.True(t, tr.BoolSlot("ready"))
	assert.False(t, tr.BoolSlot("string"))
	assert.False(t, tr.BoolSlot("missing"))
}

func TestEntityValue(t *testing.T) {
	tr := &Tracker{LatestMessage: LatestMessage{Entities: []Entity{
		{Entity: "product_idx", Value: float64(7)},
		{Entity: "order_id", Value: "ORD-123456"},
		{Entity: "fraction", Value: 2.5},
	}}}

	v, ok := tr.EntityValue("product_idx")
	require.True(t, ok)
	assert.Equal(t, "7", v)

	v, ok = tr.EntityValue("order_id")
	require.True(t, ok)
	assert.Equal(t, "ORD-123456", v)

	v, ok = tr.EntityValue("fraction")
	require.True(t, ok)
	assert.Equal(t, "2.5", v)

	_, ok = tr.EntityValue("missing")
	assert.False(t, ok)
}

func TestSlotSetEvent(t *testing.T) {
	ev := SlotSet("view_type", "discount")
	assert.Equal(t, Event{"event": "slot", "name": "view_type", "value": "discount"}, ev)

	unset := SlotSet("view_type", nil)
	assert.Nil(t, unset["value"])
}

func TestDispatcherCollectsMessages(t *testing.T) {
	d := NewDispatcher()
	assert.Empty(t, d.Messages())

	d.Utter("hello")
	d.Utter("pick one", Button{Title: "A", Payload: "/a"})

	msgs := d.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Text)
	assert.Empty(t, msgs[0].Buttons)
	require.Len(t, msgs[1].Buttons, 1)
	assert.Equal(t, "/a", msgs[1].Buttons[0].Payload)
}
