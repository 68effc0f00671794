package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listPayload(n int) string {
	var els []string
	for i := 0; i < n; i++ {
		els = append(els, fmt.Sprintf(`{"title":"item %d","buttons":[{"type":"postback","title":"Pick","payload":"P%d"}]}`, i, i))
	}
	return `{"template_type":"list","elements":[` + strings.Join(els, ",") +
		`],"buttons":[{"type":"postback","title":"Show more","payload":"MORE"}]}`
}

func incoming(components ...message.Component) message.Message {
	return message.Message{ID: "m1", ThreadID: "t1", Direction: message.DirectionIncoming, Components: components}
}

func TestBuild_OmitsBrokenComponent(t *testing.T) {
	b := Build(incoming(
		message.Component{Kind: template.KindText, Payload: "before"},
		message.Component{Kind: template.KindList, Payload: `{"buttons":[]}`},
		message.Component{Kind: template.KindText, Payload: "after"},
	))
	require.Len(t, b.Views, 2)
	assert.Equal(t, "before", b.Views[0].Text)
	assert.Equal(t, "after", b.Views[1].Text)
	assert.Equal(t, "m1", b.MessageID)
}

func TestBuild_List(t *testing.T) {
	msg := incoming(message.Component{Kind: template.KindList, Payload: listPayload(6)})

	b := Build(msg)
	require.Len(t, b.Views, 1)
	v := b.Views[0]
	assert.Len(t, v.Options, ListElementsLimit)
	assert.True(t, v.Truncated)
	require.NotNil(t, v.MoreButton)
	assert.Equal(t, "MORE", v.MoreButton.Payload)
	assert.Equal(t, Action{Type: ActionPostback, Title: "Pick", Payload: "P0"}, *v.Options[0].Button)

	msg.ShowMore = true
	v = Build(msg).Views[0]
	assert.Len(t, v.Options, 6)
	assert.False(t, v.Truncated)

	v = Build(incoming(message.Component{Kind: template.KindList, Payload: listPayload(3)})).Views[0]
	assert.Len(t, v.Options, 3)
	assert.False(t, v.Truncated)
}

func TestBuild_Carousel(t *testing.T) {
	var cards []string
	for i := 0; i < 12; i++ {
		cards = append(cards, fmt.Sprintf(`{"title":"card %d","default_action":{"type":"web_url","url":"https://x/%d"}}`, i, i))
	}
	cards[1] = `{"title":"postback card","default_action":{"type":"postback","payload":"CARD"}}`
	v := Build(incoming(message.Component{Kind: template.KindCarousel, Payload: `{"elements":[` + strings.Join(cards, ",") + `]}`})).Views[0]

	assert.Len(t, v.Cards, CarouselCardsLimit)
	assert.Equal(t, Action{Type: ActionLink, URL: "https://x/0"}, *v.Cards[0].Default)
	assert.Equal(t, Action{Type: ActionPostback, Payload: "CARD"}, *v.Cards[1].Default)
}

func TestBuild_Chart(t *testing.T) {
	v := Build(incoming(message.Component{Kind: template.KindChart,
		Payload: `{"template_type":"piechart","elements":[{"title":"Food","value":10},{"title":"Rent","value":30}]}`})).Views[0]
	assert.Equal(t, DefaultCurrency, v.Currency)
	assert.Equal(t, "piechart", v.ChartType)
	assert.Equal(t, []ChartEntry{{Label: "Food", Value: 10}, {Label: "Rent", Value: 30}}, v.Entries)

	v = Build(incoming(message.Component{Kind: template.KindChart,
		Payload: `{"elements":[{"title":"Food","value":10,"currency":"Rp"}]}`})).Views[0]
	assert.Equal(t, "Rp", v.Currency)
}

func TestBuild_Panels(t *testing.T) {
	tests := map[string]struct {
		component message.Component
		want      Panel
	}{
		"quick replies": {
			component: message.Component{Kind: template.KindQuickReply, Payload: `{"text":"Pick","quick_replies":[{"title":"Yes","payload":"Y","image_url":"https://i/y.png"},{"title":"No"}]}`},
			want: Panel{Kind: PanelQuickReply, Words: []Word{
				{Title: "Yes", Payload: "Y", ImageURL: "https://i/y.png"}, {Title: "No", Payload: "No"},
			}},
		},
		"picker": {
			component: message.Component{Kind: template.KindPicker, Payload: `{"elements":[{"title":"Mon"},{"title":"Tue"}]}`},
			want:      Panel{Kind: PanelPicker, Values: []string{"Mon", "Tue"}},
		},
		"session end": {
			component: message.Component{Kind: template.KindSessionEnd, Payload: `{"text":"Bye","buttons":[{"title":"Restart","payload":"RESTART"}]}`},
			want: Panel{Kind: PanelSessionEnd, Text: "Bye", Values: []string{"Restart"},
				Buttons: []Action{{Type: ActionPostback, Title: "Restart", Payload: "RESTART"}}},
		},
		"show progress": {
			component: message.Component{Kind: template.KindShowProgress, Payload: `{"text":"Working on it"}`},
			want:      Panel{Kind: PanelProgress, Text: "Working on it"},
		},
		"text hides panel": {
			component: message.Component{Kind: template.KindText, Payload: "hello"},
			want:      Panel{Kind: PanelHidden},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, PanelFor(Build(incoming(tt.component))))
		})
	}

	out := Build(message.Message{Direction: message.DirectionOutgoing, Components: []message.Component{
		{Kind: template.KindQuickReply, Payload: `{"quick_replies":[]}`},
	}})
	assert.Equal(t, PanelHidden, PanelFor(out).Kind)
	assert.Equal(t, PanelHidden, PanelFor(Bubble{Direction: message.DirectionIncoming}).Kind)
}

func TestBuild_Tables(t *testing.T) {
	v := Build(incoming(message.Component{Kind: template.KindResponsiveTable,
		Payload: `{"columns":[["Item"],["Price","right"]],"elements":[{"Values":["Coffee",3]}]}`})).Views[0]
	assert.Equal(t, template.KindResponsiveTable, v.Kind)
	require.Len(t, v.Tables, 1)
	assert.Equal(t, []Column{{Title: "Item"}, {Title: "Price", Align: "right"}}, v.Tables[0].Columns)
	assert.Equal(t, [][]string{{"Coffee", "3"}}, v.Tables[0].Rows)

	v = Build(incoming(message.Component{Kind: template.KindMiniTable,
		Payload: `{"elements":[{"primary":[["Total"],["Amount","right"]],"additional":[["Tax",2]]}, {"primary":[], "additional":[]}]}`})).Views[0]
	assert.Len(t, v.Tables, 2)
	assert.Equal(t, [][]string{{"Tax", "2"}}, v.Tables[0].Rows)
}

func TestBuild_OptionsAndMenu(t *testing.T) {
	v := Build(incoming(message.Component{Kind: template.KindOptions,
		Payload: `{"text":"Choose","buttons":[{"type":"web_url","title":"Site","url":"https://example.com"},{"type":"postback","title":"Call me"}]}`})).Views[0]
	assert.Equal(t, "Choose", v.Text)
	assert.Equal(t, []Action{
		{Type: ActionLink, Title: "Site", URL: "https://example.com"},
		{Type: ActionPostback, Title: "Call me", Payload: "Call me"},
	}, v.Buttons)

	v = Build(incoming(message.Component{Kind: template.KindMenu,
		Payload: `{"heading":"Menu","elements":[{"title":"Help","type":"postback","payload":"HELP"}]}`})).Views[0]
	assert.Equal(t, "Menu", v.Text)
	assert.Equal(t, "HELP", v.Buttons[0].Payload)
}

func TestSpeechText(t *testing.T) {
	b := Build(incoming(
		message.Component{Kind: template.KindText, Payload: "<b>Hello</b> there"},
		message.Component{Kind: template.KindImage, Payload: `{"url":"https://i/a.png"}`},
		message.Component{Kind: template.KindText, Payload: "bye"},
	))
	assert.Equal(t, "Hello there bye", SpeechText(b))

	b.Direction = message.DirectionOutgoing
	assert.Equal(t, "", SpeechText(b))
}
