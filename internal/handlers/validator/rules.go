package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

// jsonTagName reports fields by their json name.
func jsonTagName() func(v *validator.Validate) {
	return func(v *validator.Validate) {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func NewTranscriptionValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: jsonTagName(),
		},
		{
			Rule: registerFn("audio_url", audioURLValidator),
		},
		{
			Rule: registerFn("filename", filenameValidator),
		},
		{
			Rule: registerFn("not_blank", notBlankValidator),
		},
	}
}
