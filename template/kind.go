package template

import "fmt"

// Kind of a renderable message component
type Kind int

// Kind values
const (
	KindText Kind = iota
	KindImage
	KindOptions
	KindQuickReply
	KindList
	KindCarousel
	KindChart
	KindTable
	KindResponsiveTable
	KindMiniTable
	KindMenu
	KindPicker
	KindError
	KindShowProgress
	KindSessionEnd
)

var kindNames = [...]string{
	KindText:            "text",
	KindImage:           "image",
	KindOptions:         "options",
	KindQuickReply:      "quickReply",
	KindList:            "list",
	KindCarousel:        "carousel",
	KindChart:           "chart",
	KindTable:           "table",
	KindResponsiveTable: "responsiveTable",
	KindMiniTable:       "miniTable",
	KindMenu:            "menu",
	KindPicker:          "picker",
	KindError:           "error",
	KindShowProgress:    "showProgress",
	KindSessionEnd:      "sessionEnd",
}

// Kinds return every kind in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind inverse of Kind.String
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return KindText, fmt.Errorf("template: unknown kind %q", s)
}

// MarshalText implement encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implement encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(b []byte) (err error) {
	*k, err = ParseKind(string(b))
	return err
}
