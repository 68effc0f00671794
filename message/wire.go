package message

import "encoding/json"

// Frame type of the rtm socket
const (
	FrameBotResponse = "bot_response"
	FrameAck         = "ack"
	FrameUserMessage = "user_message"
	FramePong        = "pong"

	ResourceBotMessage = "/bot.message"
)

// BotInfo identify the bot in every request
type BotInfo struct {
	ChatBot   string `json:"chatBot" validate:"required"`
	TaskBotID string `json:"taskBotId" validate:"required"`
}

// Frame envelope, only type is read before the concrete decode
type Frame struct {
	Type string `json:"type"`
}

type (
	// BotResponse bot_response frame
	BotResponse struct {
		Type      string         `json:"type"`
		From      string         `json:"from"`
		Icon      string         `json:"icon"`
		Message   []MessageModel `json:"message"`
		CreatedOn string         `json:"createdOn"`
		MessageID string         `json:"messageId"`
	}

	// MessageModel one entry of a bot response
	MessageModel struct {
		Type      string                 `json:"type"`
		ClientID  string                 `json:"clientId,omitempty"`
		Component *ComponentModel        `json:"component"`
		CInfo     map[string]interface{} `json:"cInfo,omitempty"`
	}

	// ComponentModel raw component, payload shape depend on type
	ComponentModel struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}

	// Ack acknowledge of a sent user message
	Ack struct {
		Type    string `json:"type,omitempty"`
		OK      bool   `json:"ok"`
		ReplyTo int64  `json:"replyto"`
	}

	// UserMessage frame written to the rtm socket
	UserMessage struct {
		ClientMessageID int64           `json:"clientMessageId"`
		Message         UserMessageBody `json:"message"`
		ResourceID      string          `json:"resourceid"`
		BotInfo         BotInfo         `json:"botInfo"`
		ID              int64           `json:"id"`
	}

	// UserMessageBody body of a user message
	UserMessageBody struct {
		Body        string        `json:"body"`
		Attachments []interface{} `json:"attachments"`
	}

	// HistoryMessage one message of the history api
	HistoryMessage struct {
		ID          string             `json:"_id"`
		Type        string             `json:"type"`
		CreatedBy   string             `json:"createdBy"`
		CreatedOn   string             `json:"createdOn"`
		LModifiedOn string             `json:"lmodifiedOn"`
		ResourceID  string             `json:"resourceid"`
		TN          string             `json:"tN"`
		BotID       string             `json:"botId"`
		Components  []HistoryComponent `json:"components"`
	}

	// HistoryComponent component of a history message
	HistoryComponent struct {
		CT   string                 `json:"cT"`
		Data map[string]interface{} `json:"data"`
	}

	// HistoryPage response of the history api
	HistoryPage struct {
		Icon          string           `json:"icon"`
		MoreAvailable bool             `json:"moreAvailable"`
		Messages      []HistoryMessage `json:"messages"`
	}
)

// NewUserMessage build the frame sending text as the user
func NewUserMessage(clientMessageID int64, text string, botInfo BotInfo) UserMessage {
	return UserMessage{
		ClientMessageID: clientMessageID,
		Message:         UserMessageBody{Body: text, Attachments: []interface{}{}},
		ResourceID:      ResourceBotMessage,
		BotInfo:         botInfo,
		ID:              clientMessageID,
	}
}
