package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// envHints names the environment variable to set for required fields that are
// never read from the config file.
var envHints = map[string]string{
	"openrouter.api_key": "OPENROUTER_API_KEY",
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterTranslation("required", trans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is a required field", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		t, _ := ut.T("required", field)
		if env, ok := envHints[field]; ok {
			t = fmt.Sprintf("%s (set the %s environment variable)", t, env)
		}
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register required translation: %w", err)
	}

	return validate, trans, nil
}
