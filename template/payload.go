package template

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Payload decoded component payload, concrete type depend on the kind
type Payload interface {
	Kind() Kind
}

// Action type of buttons and default actions
const (
	ActionPostback = "postback"
	ActionWebURL   = "web_url"
)

// Button model
type Button struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Payload string `json:"payload"`
	URL     string `json:"url"`
}

// DefaultAction triggered when the whole element is tapped
type DefaultAction struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Payload string `json:"payload"`
	URL     string `json:"url"`
}

// Cell table value, json string, number or bool read as text
type Cell string

// UnmarshalJSON method
func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Cell(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case float64:
		*c = Cell(strconv.FormatFloat(val, 'f', -1, 64))
	case bool:
		*c = Cell(strconv.FormatBool(val))
	default:
		*c = Cell(b)
	}
	return nil
}

type (
	// TextPayload plain text
	TextPayload struct {
		Text string `json:"text"`
	}

	// ImagePayload image attachment
	ImagePayload struct {
		URL  string `json:"url"`
		Text string `json:"text"`
	}

	// OptionsPayload text with buttons, template type "button"
	OptionsPayload struct {
		Text    string   `json:"text"`
		Buttons []Button `json:"buttons"`
	}

	// QuickReply single quick reply chip
	QuickReply struct {
		ContentType string `json:"content_type"`
		Title       string `json:"title"`
		Payload     string `json:"payload"`
		ImageURL    string `json:"image_url"`
	}

	// QuickReplyPayload template type "quick_replies"
	QuickReplyPayload struct {
		Text         string       `json:"text"`
		QuickReplies []QuickReply `json:"quick_replies"`
	}

	// ListElement one row of a list
	ListElement struct {
		Title         string         `json:"title"`
		Subtitle      string         `json:"subtitle"`
		ImageURL      string         `json:"image_url"`
		DefaultAction *DefaultAction `json:"default_action"`
		Buttons       []Button       `json:"buttons"`
	}

	// ListPayload template type "list", the first of Buttons is the show more button
	ListPayload struct {
		Elements []ListElement `json:"elements"`
		Buttons  []Button      `json:"buttons"`
	}

	// CarouselElement one card of a carousel
	CarouselElement struct {
		Title         string         `json:"title"`
		Subtitle      string         `json:"subtitle"`
		ImageURL      string         `json:"image_url"`
		DefaultAction *DefaultAction `json:"default_action"`
		Buttons       []Button       `json:"buttons"`
	}

	// CarouselPayload template type "carousel"
	CarouselPayload struct {
		Elements []CarouselElement `json:"elements"`
	}

	// ChartElement one slice of a pie chart, or one series of a line/bar chart
	ChartElement struct {
		Title        string    `json:"title"`
		Value        float64   `json:"value"`
		Values       []float64 `json:"values"`
		Currency     string    `json:"currency"`
		DisplayValue string    `json:"displayValue"`
	}

	// ChartPayload template type "piechart", "linechart" and "barchart"
	ChartPayload struct {
		TemplateType string         `json:"template_type"`
		PieType      string         `json:"pie_type"`
		Text         string         `json:"text"`
		XAxis        []string       `json:"X_axis"`
		Elements     []ChartElement `json:"elements"`
	}

	// TableRow one row of a table
	TableRow struct {
		Values []Cell `json:"Values"`
	}

	// TablePayload template type "table", columns hold [title, alignment]
	TablePayload struct {
		TableDesign string     `json:"table_design"`
		Text        string     `json:"text"`
		Columns     [][]string `json:"columns"`
		Elements    []TableRow `json:"elements"`

		kind Kind
	}

	// MiniTable one small table inside a mini table payload
	MiniTable struct {
		Primary    [][]Cell `json:"primary"`
		Additional [][]Cell `json:"additional"`
	}

	// MiniTablePayload template type "mini_table"
	MiniTablePayload struct {
		Text     string      `json:"text"`
		Elements []MiniTable `json:"elements"`
	}

	// MenuItem one entry of a menu
	MenuItem struct {
		Title   string `json:"title"`
		Type    string `json:"type"`
		Payload string `json:"payload"`
		URL     string `json:"url"`
	}

	// MenuPayload template type "menu"
	MenuPayload struct {
		Heading  string     `json:"heading"`
		Elements []MenuItem `json:"elements"`
	}

	// PickerElement one value of a picker
	PickerElement struct {
		Title string `json:"title"`
		Value string `json:"value"`
	}

	// PickerPayload template type "picker"
	PickerPayload struct {
		Text     string          `json:"text"`
		Elements []PickerElement `json:"elements"`
	}

	// ErrorPayload error component
	ErrorPayload struct {
		Text  string `json:"text"`
		Color string `json:"color"`
	}

	// SessionEndPayload session end component
	SessionEndPayload struct {
		Text    string   `json:"text"`
		Buttons []Button `json:"buttons"`
	}

	// ShowProgressPayload show progress component
	ShowProgressPayload struct {
		Text string `json:"text"`
	}
)

// Kind method
func (TextPayload) Kind() Kind { return KindText }

// Kind method
func (ImagePayload) Kind() Kind { return KindImage }

// Kind method
func (OptionsPayload) Kind() Kind { return KindOptions }

// Kind method
func (QuickReplyPayload) Kind() Kind { return KindQuickReply }

// Kind method
func (ListPayload) Kind() Kind { return KindList }

// Kind method
func (CarouselPayload) Kind() Kind { return KindCarousel }

// Kind method
func (ChartPayload) Kind() Kind { return KindChart }

// Kind method, table and responsive table share this payload
func (t TablePayload) Kind() Kind {
	if t.kind == KindTable {
		return KindTable
	}
	return KindResponsiveTable
}

// Kind method
func (MiniTablePayload) Kind() Kind { return KindMiniTable }

// Kind method
func (MenuPayload) Kind() Kind { return KindMenu }

// Kind method
func (PickerPayload) Kind() Kind { return KindPicker }

// Kind method
func (ErrorPayload) Kind() Kind { return KindError }

// Kind method
func (SessionEndPayload) Kind() Kind { return KindSessionEnd }

// Kind method
func (ShowProgressPayload) Kind() Kind { return KindShowProgress }
