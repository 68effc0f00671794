package template

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golangid/botkit/bothelper"
	"github.com/golangid/botkit/validator"
)

// ErrPayloadMismatch payload shape does not match the classified kind
var ErrPayloadMismatch = errors.New("template: payload does not match kind")

//go:embed schema/*.json
var schemaFS embed.FS

var (
	schemaOnce      sync.Once
	schemaValidator *validator.JSONSchemaValidator
	schemaErr       error
)

func payloadValidator() (*validator.JSONSchemaValidator, error) {
	schemaOnce.Do(func() {
		var storage validator.Storage
		storage, schemaErr = validator.NewFSStorage(schemaFS, "schema")
		schemaValidator = validator.NewJSONSchemaValidator(validator.SetSchemaStorageJSONSchemaValidatorOption(storage))
	})
	return schemaValidator, schemaErr
}

// schemaID json schema of the kind, table kinds share one schema
func schemaID(kind Kind) string {
	if kind == KindResponsiveTable {
		return KindTable.String()
	}
	return kind.String()
}

func newPayload(kind Kind) Payload {
	switch kind {
	case KindImage:
		return &ImagePayload{}
	case KindOptions:
		return &OptionsPayload{}
	case KindQuickReply:
		return &QuickReplyPayload{}
	case KindList:
		return &ListPayload{}
	case KindCarousel:
		return &CarouselPayload{}
	case KindChart:
		return &ChartPayload{}
	case KindTable, KindResponsiveTable:
		return &TablePayload{kind: kind}
	case KindMiniTable:
		return &MiniTablePayload{}
	case KindMenu:
		return &MenuPayload{}
	case KindPicker:
		return &PickerPayload{}
	case KindError:
		return &ErrorPayload{}
	case KindSessionEnd:
		return &SessionEndPayload{}
	case KindShowProgress:
		return &ShowProgressPayload{}
	}
	return nil
}

// Decode payload under kind, returned value is a pointer to the kind payload struct
// (*TextPayload, *ListPayload, ...). Text kind accept plain text or a json object with "text".
// A payload that does not fit the kind return an error wrapping ErrPayloadMismatch.
func Decode(kind Kind, payload string) (p Payload, err error) {
	if kind == KindText {
		return decodeText(payload), nil
	}

	p = newPayload(kind)
	if p == nil {
		return nil, fmt.Errorf("%w: unknown kind %s", ErrPayloadMismatch, kind)
	}

	err = bothelper.Recover(func() error {
		v, err := payloadValidator()
		if err != nil {
			return err
		}
		if err := v.ValidateDocument(schemaID(kind), payload); err != nil {
			return err
		}
		return json.Unmarshal([]byte(payload), p)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPayloadMismatch, kind, err)
	}
	return p, nil
}

func decodeText(payload string) *TextPayload {
	trimmed := strings.TrimSpace(payload)
	if strings.HasPrefix(trimmed, "{") {
		var t struct {
			Text *string `json:"text"`
		}
		if json.Unmarshal([]byte(trimmed), &t) == nil && t.Text != nil {
			return &TextPayload{Text: *t.Text}
		}
	}
	return &TextPayload{Text: payload}
}
