package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Text(t *testing.T) {
	p, err := Decode(KindText, "hello there")
	require.NoError(t, err)
	assert.Equal(t, &TextPayload{Text: "hello there"}, p)

	p, err = Decode(KindText, `{"text":"from json"}`)
	require.NoError(t, err)
	assert.Equal(t, "from json", p.(*TextPayload).Text)

	p, err = Decode(KindText, `{"other":1}`)
	require.NoError(t, err)
	assert.Equal(t, `{"other":1}`, p.(*TextPayload).Text)
}

func TestDecode_List(t *testing.T) {
	payload := `{
		"template_type": "list",
		"elements": [
			{"title": "Classic T-Shirt", "subtitle": "100% Cotton",
			 "default_action": {"type": "web_url", "url": "https://shop.example.com/tee"},
			 "buttons": [{"type": "postback", "title": "Buy", "payload": "BUY_TEE"}]},
			{"title": "Plain"}
		],
		"buttons": [{"type": "postback", "title": "View More", "payload": "MORE"}]
	}`
	p, err := Decode(KindList, payload)
	require.NoError(t, err)

	list, ok := p.(*ListPayload)
	require.True(t, ok)
	assert.Equal(t, KindList, list.Kind())
	require.Len(t, list.Elements, 2)
	assert.Equal(t, "https://shop.example.com/tee", list.Elements[0].DefaultAction.URL)
	assert.Equal(t, "BUY_TEE", list.Elements[0].Buttons[0].Payload)
	assert.Equal(t, "", list.Elements[1].Subtitle)
	assert.Equal(t, "", list.Elements[1].ImageURL)
	assert.Nil(t, list.Elements[1].DefaultAction)
	assert.Equal(t, "View More", list.Buttons[0].Title)
}

func TestDecode_Mismatch(t *testing.T) {
	tests := map[string]struct {
		kind    Kind
		payload string
	}{
		"list without elements":        {kind: KindList, payload: `{"buttons":[]}`},
		"list elements not array":      {kind: KindList, payload: `{"elements":"x"}`},
		"options without buttons":      {kind: KindOptions, payload: `{"text":"pick one"}`},
		"quick reply wrong item type":  {kind: KindQuickReply, payload: `{"quick_replies":["yes","no"]}`},
		"carousel not json":            {kind: KindCarousel, payload: `not json`},
		"picker scalar field mismatch": {kind: KindPicker, payload: `{"elements":[{"title":12}]}`},
		"session end without buttons":  {kind: KindSessionEnd, payload: `{"text":"bye"}`},
		"chart payload is array":       {kind: KindChart, payload: `[1,2]`},
		"unknown kind":                 {kind: Kind(42), payload: `{}`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := Decode(tt.kind, tt.payload)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ErrPayloadMismatch), "got %v", err)
		})
	}
}

func TestDecode_Table(t *testing.T) {
	payload := `{"template_type":"table","table_design":"regular",
		"columns":[["Item"],["Price","right"]],
		"elements":[{"Values":["Coffee", 3.5]},{"Values":["Tea", true, null]}]}`

	p, err := Decode(KindTable, payload)
	require.NoError(t, err)
	table := p.(*TablePayload)
	assert.Equal(t, KindTable, table.Kind())
	assert.Equal(t, []Cell{"Coffee", "3.5"}, table.Elements[0].Values)
	assert.Equal(t, []Cell{"Tea", "true", ""}, table.Elements[1].Values)

	p, err = Decode(KindResponsiveTable, payload)
	require.NoError(t, err)
	assert.Equal(t, KindResponsiveTable, p.Kind())
}

func TestDecode_Others(t *testing.T) {
	p, err := Decode(KindQuickReply, `{"text":"Pick","quick_replies":[{"title":"Yes","payload":"Y"},{"title":"No"}]}`)
	require.NoError(t, err)
	qr := p.(*QuickReplyPayload)
	assert.Equal(t, "Y", qr.QuickReplies[0].Payload)
	assert.Equal(t, "", qr.QuickReplies[1].ImageURL)

	p, err = Decode(KindChart, `{"template_type":"piechart","elements":[{"title":"Food","value":120.5}]}`)
	require.NoError(t, err)
	assert.Equal(t, 120.5, p.(*ChartPayload).Elements[0].Value)

	p, err = Decode(KindShowProgress, `{}`)
	require.NoError(t, err)
	assert.Equal(t, "", p.(*ShowProgressPayload).Text)

	p, err = Decode(KindImage, `{"url":"https://img.example.com/a.png"}`)
	require.NoError(t, err)
	assert.Equal(t, KindImage, p.Kind())

	p, err = Decode(KindMiniTable, `{"elements":[{"primary":[["Total"],["42","right"]],"additional":[["a",1]]}]}`)
	require.NoError(t, err)
	assert.Equal(t, Cell("1"), p.(*MiniTablePayload).Elements[0].Additional[0][1])
}
