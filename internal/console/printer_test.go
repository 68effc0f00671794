package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/render"
	"github.com/golangid/botkit/rtm"
	"github.com/golangid/botkit/template"
	"github.com/stretchr/testify/assert"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	sentOn := time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local)

	p.OnConnectionState(rtm.StateConnected)
	p.OnMessage(render.Bubble{
		Direction: message.DirectionOutgoing,
		SentOn:    sentOn,
		Views:     []render.View{{Kind: template.KindText, Text: "hello"}},
	})
	p.OnMessage(render.Bubble{
		MessageID: "ms-1",
		Direction: message.DirectionIncoming,
		SentOn:    sentOn,
		Views: []render.View{{
			Kind:      template.KindList,
			Truncated: true,
			Options: []render.Option{
				{Title: "Shirt", Subtitle: "blue", Default: &render.Action{Type: render.ActionLink, URL: "https://shop/shirt"}},
			},
			MoreButton: &render.Action{Type: render.ActionPostback, Title: "Show more", Payload: "more"},
		}},
	})
	p.OnPanel(render.Panel{Kind: render.PanelQuickReply, Words: []render.Word{{Title: "Yes", Payload: "yes"}}})

	out := buf.String()
	assert.Contains(t, out, "-- Connected --")
	assert.Contains(t, out, "[09:30] you> hello")
	assert.Contains(t, out, "[09:30] bot> <list>")
	assert.Contains(t, out, "[1] Shirt - blue (https://shop/shirt)")
	assert.Contains(t, out, "[2] Show more (more)")
	assert.Contains(t, out, "[3] Yes (yes)")
	assert.Contains(t, out, "type /more")
	assert.Equal(t, "ms-1", p.TruncatedMessageID())

	a, ok := p.Action(3)
	assert.True(t, ok)
	assert.Equal(t, "yes", a.Payload)
	_, ok = p.Action(4)
	assert.False(t, ok)

	// a new incoming bubble reset the choices
	p.OnMessage(render.Bubble{Direction: message.DirectionIncoming, SentOn: sentOn, Views: []render.View{{Kind: template.KindText, Text: "<b>done</b>"}}})
	_, ok = p.Action(1)
	assert.False(t, ok)
	assert.Empty(t, p.TruncatedMessageID())
	assert.Contains(t, buf.String(), "bot> done")
}

func TestPrinter_Chart(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.OnMessage(render.Bubble{
		Direction: message.DirectionIncoming,
		Views: []render.View{{
			Kind:     template.KindChart,
			Text:     "Spending",
			Currency: "$",
			Entries:  []render.ChartEntry{{Label: "Food", Value: 12.5}, {Label: "Rent", DisplayValue: "1k"}},
		}},
	})
	assert.Contains(t, buf.String(), "Food: $12.5")
	assert.Contains(t, buf.String(), "Rent: 1k")
}
