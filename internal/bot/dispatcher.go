package bot

// Dispatcher collects the messages a handler wants rendered. Handlers append
// through Utter and the HTTP layer drains the result into the response.
type Dispatcher struct {
	messages []Message
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Utter queues a message with optional buttons.
func (d *Dispatcher) Utter(text string, buttons ...Button) {
	d.messages = append(d.messages, Message{Text: text, Buttons: buttons})
}

// Messages returns everything queued so far.
func (d *Dispatcher) Messages() []Message {
	if d.messages == nil {
		return []Message{}
	}
	return d.messages
}
