package validator

import (
	stdErrors "errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// WhisperModels lists the model sizes accepted by the whisper backend
var WhisperModels = []string{"tiny", "base", "small", "medium", "large", "large-v2", "large-v3"}

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator with the pipeline tags registered:
// whisper_model and audio_source.
func New() *CustomValidator {
	v := validator.New()

	// report json/form names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	_ = v.RegisterValidation("whisper_model", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, m := range WhisperModels {
			if value == m {
				return true
			}
		}
		return false
	})
	_ = v.RegisterValidation("audio_source", func(fl validator.FieldLevel) bool {
		return validAudioSource(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stdErrors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "whisper_model":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(WhisperModels, ", "))
	case "audio_source":
		return fe.Field() + " must be a file path or an http(s) URL"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// validAudioSource accepts a non-blank path (quotes allowed) or an http(s) URL
func validAudioSource(s string) bool {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	if s == "" {
		return false
	}
	if !strings.Contains(s, "://") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
