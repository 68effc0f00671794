package render

import (
	"fmt"
	"strings"

	"github.com/golangid/botkit/bothelper"
	"github.com/golangid/botkit/logger"
	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/template"
	"go.uber.org/zap/zapcore"
)

// Build bubble of a message, components whose payload does not decode are left out
func Build(msg message.Message) Bubble {
	b := Bubble{
		MessageID: msg.ID,
		ThreadID:  msg.ThreadID,
		Direction: msg.Direction,
		SentOn:    msg.SentOn,
		IconURL:   msg.IconURL,
		ShowMore:  msg.ShowMore,
	}
	for i, c := range msg.Components {
		p, err := template.Decode(c.Kind, c.Payload)
		if err != nil {
			logger.Log(zapcore.WarnLevel, fmt.Sprintf("skip component %d of message %s: %v", i, msg.ID, err), "render", "build")
			continue
		}
		b.Views = append(b.Views, viewOf(p, msg.ShowMore))
	}
	return b
}

// SpeechText html stripped text of the text views of an incoming bubble
func SpeechText(b Bubble) string {
	if b.Direction != message.DirectionIncoming {
		return ""
	}
	var parts []string
	for _, v := range b.Views {
		if v.Kind != template.KindText {
			continue
		}
		if s := bothelper.StripHTML(v.Text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func viewOf(p template.Payload, showMore bool) View {
	v := View{Kind: p.Kind()}
	switch pl := p.(type) {
	case *template.TextPayload:
		v.Text = pl.Text
	case *template.ImagePayload:
		v.ImageURL, v.Text = pl.URL, pl.Text
	case *template.ErrorPayload:
		v.Text, v.Color = pl.Text, pl.Color
	case *template.OptionsPayload:
		v.Text = pl.Text
		v.Buttons = buttonActions(pl.Buttons)
	case *template.QuickReplyPayload:
		v.Text = pl.Text
		for _, qr := range pl.QuickReplies {
			v.Words = append(v.Words, Word{Title: qr.Title, Payload: firstNonEmpty(qr.Payload, qr.Title), ImageURL: qr.ImageURL})
		}
	case *template.ListPayload:
		listView(&v, pl, showMore)
	case *template.CarouselPayload:
		for i, el := range pl.Elements {
			if i == CarouselCardsLimit {
				break
			}
			v.Cards = append(v.Cards, Card{
				Title:    el.Title,
				Subtitle: el.Subtitle,
				ImageURL: el.ImageURL,
				Default:  defaultAction(el.DefaultAction),
				Buttons:  buttonActions(el.Buttons),
			})
		}
	case *template.ChartPayload:
		chartView(&v, pl)
	case *template.TablePayload:
		v.Text = pl.Text
		v.Tables = []Table{tableOf(pl)}
	case *template.MiniTablePayload:
		v.Text = pl.Text
		for _, mt := range pl.Elements {
			v.Tables = append(v.Tables, miniTableOf(mt))
		}
	case *template.MenuPayload:
		v.Text = pl.Heading
		for _, item := range pl.Elements {
			v.Buttons = append(v.Buttons, actionOf(item.Type, item.Title, item.Payload, item.URL))
		}
	case *template.PickerPayload:
		v.Text = pl.Text
		for _, el := range pl.Elements {
			v.Values = append(v.Values, el.Title)
		}
	case *template.SessionEndPayload:
		v.Text = pl.Text
		v.Buttons = buttonActions(pl.Buttons)
		for _, b := range pl.Buttons {
			v.Values = append(v.Values, b.Title)
		}
	case *template.ShowProgressPayload:
		v.Text = pl.Text
	}
	return v
}

func listView(v *View, pl *template.ListPayload, showMore bool) {
	elements := pl.Elements
	if !showMore && len(elements) > ListElementsLimit {
		elements = elements[:ListElementsLimit]
		v.Truncated = true
	}
	for _, el := range elements {
		opt := Option{
			Title:    el.Title,
			Subtitle: el.Subtitle,
			ImageURL: el.ImageURL,
			Default:  defaultAction(el.DefaultAction),
		}
		if len(el.Buttons) > 0 {
			a := buttonAction(el.Buttons[0])
			opt.Button = &a
		}
		v.Options = append(v.Options, opt)
	}
	if len(pl.Buttons) > 0 {
		a := buttonAction(pl.Buttons[0])
		v.MoreButton = &a
	}
}

func chartView(v *View, pl *template.ChartPayload) {
	v.Text = pl.Text
	v.ChartType = pl.TemplateType
	v.XAxis = pl.XAxis
	v.Currency = DefaultCurrency
	for _, el := range pl.Elements {
		if el.Currency != "" {
			v.Currency = el.Currency
		}
		v.Entries = append(v.Entries, ChartEntry{
			Label:        el.Title,
			Value:        el.Value,
			Values:       el.Values,
			DisplayValue: el.DisplayValue,
		})
	}
}

func tableOf(pl *template.TablePayload) Table {
	t := Table{}
	for _, col := range pl.Columns {
		c := Column{}
		if len(col) > 0 {
			c.Title = col[0]
		}
		if len(col) > 1 {
			c.Align = col[1]
		}
		t.Columns = append(t.Columns, c)
	}
	for _, row := range pl.Elements {
		t.Rows = append(t.Rows, cells(row.Values))
	}
	return t
}

func miniTableOf(mt template.MiniTable) Table {
	t := Table{}
	for _, col := range mt.Primary {
		c := Column{}
		if len(col) > 0 {
			c.Title = string(col[0])
		}
		if len(col) > 1 {
			c.Align = string(col[1])
		}
		t.Columns = append(t.Columns, c)
	}
	for _, row := range mt.Additional {
		t.Rows = append(t.Rows, cells(row))
	}
	return t
}

func cells(in []template.Cell) []string {
	out := make([]string, len(in))
	for i, c := range in {
		out[i] = string(c)
	}
	return out
}

func buttonActions(buttons []template.Button) (actions []Action) {
	for _, b := range buttons {
		actions = append(actions, buttonAction(b))
	}
	return actions
}

func buttonAction(b template.Button) Action {
	return actionOf(b.Type, b.Title, b.Payload, b.URL)
}

func defaultAction(d *template.DefaultAction) *Action {
	if d == nil {
		return nil
	}
	a := actionOf(d.Type, d.Title, d.Payload, d.URL)
	return &a
}

// actionOf web_url open url, postback send payload, other types decided by which field is set
func actionOf(typ, title, payload, url string) Action {
	if typ == template.ActionWebURL || (typ != template.ActionPostback && payload == "" && url != "") {
		return Action{Type: ActionLink, Title: title, URL: url}
	}
	return Action{Type: ActionPostback, Title: title, Payload: firstNonEmpty(payload, title)}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
