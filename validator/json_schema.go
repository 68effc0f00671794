package validator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golangid/botkit/bothelper"
	"github.com/golangid/gojsonschema"
)

var notShowErrorListType = map[string]bool{
	"condition_else": true, "condition_then": true,
}

// JSONSchemaValidator validator
type JSONSchemaValidator struct {
	storage Storage

	mu       sync.Mutex
	compiled map[string]*gojsonschema.Schema
}

// JSONSchemaValidatorOptionFunc type
type JSONSchemaValidatorOptionFunc func(*JSONSchemaValidator)

// SetSchemaStorageJSONSchemaValidatorOption option func
func SetSchemaStorageJSONSchemaValidatorOption(s Storage) JSONSchemaValidatorOptionFunc {
	return func(v *JSONSchemaValidator) {
		v.storage = s
	}
}

// NewJSONSchemaValidator constructor
func NewJSONSchemaValidator(opts ...JSONSchemaValidatorOptionFunc) *JSONSchemaValidator {
	v := &JSONSchemaValidator{
		storage:  NewInMemStorage(),
		compiled: make(map[string]*gojsonschema.Schema),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *JSONSchemaValidator) getSchema(schemaID string) (*gojsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.compiled[schemaID]; ok {
		return s, nil
	}
	src, err := v.storage.Get(schemaID)
	if err != nil {
		return nil, err
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		return nil, fmt.Errorf("schema '%s': %w", schemaID, err)
	}
	v.compiled[schemaID] = s
	return s, nil
}

// ValidateDocument based on schema id, document is json []byte / string or a go value
func (v *JSONSchemaValidator) ValidateDocument(schemaID string, document interface{}) error {
	schema, err := v.getSchema(schemaID)
	if err != nil {
		return err
	}

	var loader gojsonschema.JSONLoader
	switch d := document.(type) {
	case []byte:
		loader = gojsonschema.NewBytesLoader(d)
	case string:
		loader = gojsonschema.NewStringLoader(d)
	default:
		loader = gojsonschema.NewGoLoader(d)
	}

	multiError := bothelper.NewMultiError()
	result, err := schema.Validate(loader)
	if err != nil {
		multiError.Append("document", fmt.Errorf("invalid json document: %w", err))
		return multiError
	}

	for _, desc := range result.Errors() {
		if notShowErrorListType[desc.Type()] {
			continue
		}
		field := desc.Field()
		if desc.Type() == "required" || desc.Type() == "additional_property_not_allowed" {
			field = fmt.Sprintf("%s.%s", field, desc.Details()["property"])
			field = strings.TrimPrefix(field, "(root).")
		}
		multiError.Append(field, errors.New(desc.Description()))
	}

	if multiError.HasError() {
		return multiError
	}
	return nil
}
