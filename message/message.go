package message

import (
	"time"

	"github.com/golangid/botkit/template"
)

// Direction of a message relative to the client
type Direction string

// Direction values
const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

// Component one renderable unit of a message, payload is plain text or serialized json
type Component struct {
	Kind    template.Kind `json:"kind" bson:"kind"`
	Payload string        `json:"payload" bson:"payload"`
}

// Message sent or received chat entry. Only ShowMore changes after persistence.
type Message struct {
	ID              string      `json:"id" bson:"_id"`
	ThreadID        string      `json:"threadId" bson:"threadId"`
	Direction       Direction   `json:"direction" bson:"direction"`
	SentOn          time.Time   `json:"sentOn" bson:"sentOn"`
	IconURL         string      `json:"iconUrl,omitempty" bson:"iconUrl,omitempty"`
	Components      []Component `json:"components" bson:"components"`
	ShowMore        bool        `json:"showMore" bson:"showMore"`
	ClientMessageID int64       `json:"clientMessageId,omitempty" bson:"clientMessageId,omitempty"`
}

// Kind of the first component, text when the message has none
func (m *Message) Kind() template.Kind {
	if len(m.Components) == 0 {
		return template.KindText
	}
	return m.Components[0].Kind
}

// Text first text component payload, empty when there is none
func (m *Message) Text() string {
	for _, c := range m.Components {
		if c.Kind == template.KindText {
			return c.Payload
		}
	}
	return ""
}

// Thread conversation container
type Thread struct {
	ID        string    `json:"id" bson:"_id"`
	BotName   string    `json:"botName" bson:"botName"`
	CreatedOn time.Time `json:"createdOn" bson:"createdOn"`
}
