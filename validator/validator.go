package validator

// Validator instance, jsonschema & struct validator (github.com/go-playground/validator)
type Validator struct {
	*JSONSchemaValidator
	*StructValidator
}

// NewValidator constructor, schemas read from storage
func NewValidator(storage Storage) *Validator {
	return &Validator{
		JSONSchemaValidator: NewJSONSchemaValidator(SetSchemaStorageJSONSchemaValidatorOption(storage)),
		StructValidator:     NewStructValidator(),
	}
}
