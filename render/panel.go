package render

import (
	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/template"
)

// PanelKind state of the panel under the conversation
type PanelKind string

// PanelKind values
const (
	PanelHidden     PanelKind = "hidden"
	PanelQuickReply PanelKind = "quickReply"
	PanelPicker     PanelKind = "picker"
	PanelSessionEnd PanelKind = "sessionEnd"
	PanelProgress   PanelKind = "progress"
)

// Panel bottom panel content, driven by the newest message only
type Panel struct {
	Kind    PanelKind `json:"kind"`
	Text    string    `json:"text,omitempty"`
	Words   []Word    `json:"words,omitempty"`
	Values  []string  `json:"values,omitempty"`
	Buttons []Action  `json:"buttons,omitempty"`
}

// PanelFor compute the panel after last was appended, outgoing bubbles hide it
func PanelFor(last Bubble) Panel {
	if last.Direction != message.DirectionIncoming || len(last.Views) == 0 {
		return Panel{Kind: PanelHidden}
	}
	v := last.Views[0]
	switch v.Kind {
	case template.KindQuickReply:
		return Panel{Kind: PanelQuickReply, Words: v.Words}
	case template.KindPicker:
		return Panel{Kind: PanelPicker, Text: v.Text, Values: v.Values}
	case template.KindSessionEnd:
		return Panel{Kind: PanelSessionEnd, Text: v.Text, Values: v.Values, Buttons: v.Buttons}
	case template.KindShowProgress:
		return Panel{Kind: PanelProgress, Text: v.Text}
	}
	return Panel{Kind: PanelHidden}
}
