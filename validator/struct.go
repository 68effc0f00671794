package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	validatorengine "github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/golangid/botkit/bothelper"
)

// StructValidator struct, field errors translated to english
type StructValidator struct {
	Validator  *validatorengine.Validate
	translator ut.Translator
}

// NewStructValidator using https://github.com/go-playground/validator (all struct tags will be here)
func NewStructValidator() *StructValidator {
	ve := validatorengine.New()
	ve.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(ve, trans)

	return &StructValidator{Validator: ve, translator: trans}
}

// ValidateStruct function
func (v *StructValidator) ValidateStruct(data interface{}) error {
	err := v.Validator.Struct(data)
	if err == nil {
		return nil
	}

	var errs validatorengine.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	multiError := bothelper.NewMultiError()
	for _, e := range errs {
		field := e.Field()
		if field == "" {
			field = strings.ToLower(e.StructField())
		}
		multiError.Append(field, errors.New(e.Translate(v.translator)))
	}
	return multiError
}
