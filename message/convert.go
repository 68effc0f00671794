package message

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/golangid/botkit/bothelper"
	"github.com/golangid/botkit/template"
	"github.com/google/uuid"
)

// history message types, seen from the bot side
const (
	historyFromUser = "incoming"
	historyFromBot  = "outgoing"
)

var now = time.Now

// FromBotResponse convert a bot_response frame into an incoming message
func FromBotResponse(threadID string, resp BotResponse) Message {
	msg := Message{
		ID:        resp.MessageID,
		ThreadID:  threadID,
		Direction: DirectionIncoming,
		SentOn:    bothelper.ParseBotTime(resp.CreatedOn),
		IconURL:   resp.Icon,
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.SentOn.IsZero() {
		msg.SentOn = now()
	}
	for _, mm := range resp.Message {
		if c, ok := componentFrom(mm); ok {
			msg.Components = append(msg.Components, c)
		}
	}
	return msg
}

// FromHistory convert a history api message
func FromHistory(threadID string, h HistoryMessage) Message {
	msg := Message{
		ID:        h.ID,
		ThreadID:  threadID,
		Direction: DirectionIncoming,
		SentOn:    bothelper.ParseBotTime(h.CreatedOn),
	}
	if h.Type == historyFromUser {
		msg.Direction = DirectionOutgoing
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	for _, hc := range h.Components {
		text, _ := hc.Data["text"].(string)
		if c, ok := historyComponent(text); ok {
			msg.Components = append(msg.Components, c)
		}
	}
	return msg
}

// NewTextMessage build an outgoing text message, text is trimmed
func NewTextMessage(threadID, text string) Message {
	sentOn := now()
	return Message{
		ID:              uuid.NewString(),
		ThreadID:        threadID,
		Direction:       DirectionOutgoing,
		SentOn:          sentOn,
		Components:      []Component{{Kind: template.KindText, Payload: strings.TrimSpace(text)}},
		ClientMessageID: sentOn.UnixMilli(),
	}
}

// history store templates as the serialized component in data.text
func historyComponent(text string) (Component, bool) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		var cm ComponentModel
		if json.Unmarshal([]byte(trimmed), &cm) == nil && cm.Type != "" && len(cm.Payload) > 0 {
			return componentFrom(MessageModel{Component: &cm})
		}
	}
	if text == "" {
		return Component{}, false
	}
	return Component{Kind: template.KindText, Payload: text}, true
}

func componentFrom(mm MessageModel) (Component, bool) {
	c := mm.Component
	if c == nil {
		if body, ok := mm.CInfo["body"].(string); ok && body != "" {
			return Component{Kind: template.KindText, Payload: body}, true
		}
		return Component{}, false
	}

	switch c.Type {
	case template.ComponentTemplate:
		body, templateType, tableDesign := templateBody(c.Payload)
		kind := template.ClassifyComponent(c.Type, templateType, tableDesign)
		if kind == template.KindText {
			text := rawText(body)
			return Component{Kind: kind, Payload: text}, text != ""
		}
		return Component{Kind: kind, Payload: string(body)}, true
	case template.ComponentText, "":
		text := rawText(c.Payload)
		if text == "" {
			text, _ = mm.CInfo["body"].(string)
		}
		return Component{Kind: template.KindText, Payload: text}, text != ""
	}

	kind := template.ClassifyComponent(c.Type, "", "")
	if kind == template.KindText {
		text := rawText(c.Payload)
		return Component{Kind: kind, Payload: text}, text != ""
	}
	return Component{Kind: kind, Payload: unquote(c.Payload)}, true
}

// templateBody unwrap {"type":"template","payload":{"template_type":...}}, the bare inner form is accepted too
func templateBody(raw json.RawMessage) (body json.RawMessage, templateType, tableDesign string) {
	var head struct {
		Payload      json.RawMessage `json:"payload"`
		TemplateType string          `json:"template_type"`
		TableDesign  string          `json:"table_design"`
	}
	body = json.RawMessage(unquote(raw))
	if json.Unmarshal(body, &head) != nil {
		return body, "", ""
	}
	if head.TemplateType == "" && len(head.Payload) > 0 && head.Payload[0] == '{' {
		return templateBody(head.Payload)
	}
	return body, head.TemplateType, head.TableDesign
}

// rawText read text from a json string, an object with text, or the raw bytes
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		Text *string `json:"text"`
	}
	if json.Unmarshal(raw, &obj) == nil && obj.Text != nil {
		return *obj.Text
	}
	return string(raw)
}

// unquote payload sent as a json encoded string
func unquote(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	var s string
	if len(raw) > 0 && raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}
