package botshared

import "time"

// Event type of conversation event
const (
	EventMessageIncoming = "message.incoming"
	EventMessageOutgoing = "message.outgoing"
	EventMessageHistory  = "message.history"
)

// ConversationEvent published for every persisted message
type ConversationEvent struct {
	Event     string    `json:"event"`
	ThreadID  string    `json:"threadId"`
	MessageID string    `json:"messageId"`
	Kind      string    `json:"kind"`
	BotName   string    `json:"botName,omitempty"`
	SentOn    time.Time `json:"sentOn"`
	Text      string    `json:"text,omitempty"`
}
