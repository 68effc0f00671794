// Package console print conversation bubbles as plain text lines.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/golangid/botkit/bothelper"
	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/render"
	"github.com/golangid/botkit/rtm"
	"github.com/golangid/botkit/template"
)

// Printer session listener writing to w, numbered actions of the newest
// incoming bubble and panel can be picked with Action
type Printer struct {
	mu       sync.Mutex
	w        io.Writer
	color    bool
	actions  []render.Action
	lastList string
}

// NewPrinter constructor, color enable ansi colored banners
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

// Action numbered action n (1 based) of the newest choices
func (p *Printer) Action(n int) (render.Action, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n < 1 || n > len(p.actions) {
		return render.Action{}, false
	}
	return p.actions[n-1], true
}

// TruncatedMessageID id of the newest list that has more elements to show
func (p *Printer) TruncatedMessageID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastList
}

// OnMessage method
func (p *Printer) OnMessage(b render.Bubble) {
	p.mu.Lock()
	defer p.mu.Unlock()

	who := "bot"
	if b.Direction == message.DirectionOutgoing {
		who = "you"
	} else {
		p.actions = nil
		p.lastList = ""
	}
	stamp := b.SentOn.Local().Format("15:04")

	if len(b.Views) == 0 {
		fmt.Fprintf(p.w, "[%s] %s> (empty)\n", stamp, who)
		return
	}
	for _, v := range b.Views {
		fmt.Fprintf(p.w, "[%s] %s> %s\n", stamp, who, headline(v))
		if b.Direction == message.DirectionIncoming {
			p.printDetail(v)
			if v.Truncated {
				p.lastList = b.MessageID
				fmt.Fprintln(p.w, "    type /more to show all")
			}
		}
	}
}

// OnPanel method
func (p *Printer) OnPanel(panel render.Panel) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch panel.Kind {
	case render.PanelQuickReply:
		for _, w := range panel.Words {
			p.printAction(render.Action{Type: render.ActionPostback, Title: w.Title, Payload: w.Payload})
		}
	case render.PanelPicker:
		for _, v := range panel.Values {
			p.printAction(render.Action{Type: render.ActionPostback, Title: v, Payload: v})
		}
	case render.PanelProgress:
		fmt.Fprintf(p.w, "    ... %s\n", panel.Text)
	}
}

// OnOpenURL method
func (p *Printer) OnOpenURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "    open %s\n", url)
}

// OnSpeak method
func (p *Printer) OnSpeak(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "    (speak) %s\n", text)
}

// OnConnectionState method
func (p *Printer) OnConnectionState(state rtm.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	banner := state.Banner()
	if p.color {
		if state == rtm.StateConnected {
			banner = bothelper.StringGreen(banner)
		} else {
			banner = bothelper.StringYellow(banner)
		}
	}
	fmt.Fprintf(p.w, "-- %s --\n", banner)
}

func headline(v render.View) string {
	text := bothelper.StripHTML(v.Text)
	switch v.Kind {
	case template.KindImage:
		return strings.TrimSpace(text + " <image " + v.ImageURL + ">")
	case template.KindError:
		return "error: " + text
	case template.KindText:
		return text
	}
	if text == "" {
		return "<" + v.Kind.String() + ">"
	}
	return text
}

func (p *Printer) printDetail(v render.View) {
	for _, a := range v.Buttons {
		p.printAction(a)
	}
	for _, opt := range v.Options {
		line := opt.Title
		if opt.Subtitle != "" {
			line += " - " + opt.Subtitle
		}
		if opt.Default != nil {
			p.printAction(withTitle(*opt.Default, line))
		} else {
			fmt.Fprintf(p.w, "    * %s\n", line)
		}
		if opt.Button != nil {
			p.printAction(*opt.Button)
		}
	}
	if v.MoreButton != nil {
		p.printAction(*v.MoreButton)
	}
	for _, c := range v.Cards {
		fmt.Fprintf(p.w, "    # %s\n", strings.TrimSpace(c.Title+" "+c.Subtitle))
		if c.Default != nil {
			p.printAction(withTitle(*c.Default, c.Title))
		}
		for _, a := range c.Buttons {
			p.printAction(a)
		}
	}
	for _, e := range v.Entries {
		value := e.DisplayValue
		if value == "" {
			value = fmt.Sprintf("%s%g", v.Currency, e.Value)
		}
		fmt.Fprintf(p.w, "    %s: %s\n", e.Label, value)
	}
	for _, t := range v.Tables {
		var cols []string
		for _, c := range t.Columns {
			cols = append(cols, c.Title)
		}
		if len(cols) > 0 {
			fmt.Fprintf(p.w, "    | %s |\n", strings.Join(cols, " | "))
		}
		for _, row := range t.Rows {
			fmt.Fprintf(p.w, "    | %s |\n", strings.Join(row, " | "))
		}
	}
}

func (p *Printer) printAction(a render.Action) {
	p.actions = append(p.actions, a)
	target := a.Payload
	if a.Type == render.ActionLink {
		target = a.URL
	}
	fmt.Fprintf(p.w, "    [%d] %s (%s)\n", len(p.actions), a.Title, target)
}

func withTitle(a render.Action, title string) render.Action {
	if a.Title == "" {
		a.Title = title
	}
	return a
}
