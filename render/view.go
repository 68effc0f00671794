package render

import (
	"time"

	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/template"
)

// Limits of collection views
const (
	ListElementsLimit  = 4
	CarouselCardsLimit = 10
	DefaultCurrency    = "$"
)

// ActionType what a tap does
type ActionType string

// ActionType values
const (
	// ActionPostback send Payload back to the bot as user text
	ActionPostback ActionType = "postback"
	// ActionLink open URL
	ActionLink ActionType = "link"
)

// Action tap target of a button, row or card
type Action struct {
	Type    ActionType `json:"type"`
	Title   string     `json:"title"`
	Payload string     `json:"payload,omitempty"`
	URL     string     `json:"url,omitempty"`
}

// Option one row of a list
type Option struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Default  *Action `json:"default,omitempty"`
	Button   *Action `json:"button,omitempty"`
}

// Card one carousel card
type Card struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Default  *Action  `json:"default,omitempty"`
	Buttons  []Action `json:"buttons,omitempty"`
}

// ChartEntry one slice or series of a chart
type ChartEntry struct {
	Label        string    `json:"label"`
	Value        float64   `json:"value"`
	Values       []float64 `json:"values,omitempty"`
	DisplayValue string    `json:"displayValue,omitempty"`
}

// Word quick reply chip
type Word struct {
	Title    string `json:"title"`
	Payload  string `json:"payload"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Column table header
type Column struct {
	Title string `json:"title"`
	Align string `json:"align,omitempty"`
}

// Table header and rows of a table view
type Table struct {
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// View render model of one component, fields used depend on Kind
type View struct {
	Kind     template.Kind `json:"kind"`
	Text     string        `json:"text,omitempty"`
	ImageURL string        `json:"imageUrl,omitempty"`
	Color    string        `json:"color,omitempty"`

	Buttons []Action `json:"buttons,omitempty"`
	Options []Option `json:"options,omitempty"`
	// MoreButton trailing list button
	MoreButton *Action `json:"moreButton,omitempty"`
	// Truncated list has more elements than shown
	Truncated bool   `json:"truncated,omitempty"`
	Cards     []Card `json:"cards,omitempty"`

	ChartType string       `json:"chartType,omitempty"`
	Currency  string       `json:"currency,omitempty"`
	XAxis     []string     `json:"xAxis,omitempty"`
	Entries   []ChartEntry `json:"entries,omitempty"`

	Words  []Word   `json:"words,omitempty"`
	Values []string `json:"values,omitempty"`
	Tables []Table  `json:"tables,omitempty"`
}

// Bubble render model of one message
type Bubble struct {
	MessageID string            `json:"messageId"`
	ThreadID  string            `json:"threadId"`
	Direction message.Direction `json:"direction"`
	SentOn    time.Time         `json:"sentOn"`
	IconURL   string            `json:"iconUrl,omitempty"`
	ShowMore  bool              `json:"showMore"`
	Views     []View            `json:"views"`
}

// Kind of the first view, text for an empty bubble
func (b Bubble) Kind() template.Kind {
	if len(b.Views) == 0 {
		return template.KindText
	}
	return b.Views[0].Kind
}
