package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/samber/lo"
)

var (
	reOTP        = regexp.MustCompile(`^[0-9]{4}$`)
	rePersonName = regexp.MustCompile(`^[\p{L}][\p{L} .'\-]*$`)
)

// bcrypt ignores everything past 72 bytes, so longer passwords are rejected.
const (
	passwordMinChars = 8
	passwordMaxBytes = 72
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("validator: translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError maps a JSON field name to its message.
type V10ValidationError map[string]string

func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// NewV10Validator constructs a V10Validator with English messages and the
// password, otp and personname rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)

	enLang := en.New()
	enTrans, ok := ut.New(enLang, enLang).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	if err := registerRules(validate, enTrans); err != nil {
		return nil, err
	}

	return &V10Validator{validate: validate, translator: enTrans}, nil
}

func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) {
		return err
	}

	errV10 := make(V10ValidationError, len(validateErrs))
	for _, fe := range validateErrs {
		errV10[fe.Field()] = fe.Translate(v.translator)
	}
	return errV10
}

// fieldName prefers the json tag and falls back to the snake_case Go name.
func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return lo.SnakeCase(f.Name)
	}
	return name
}

type rule struct {
	tag     string
	message string
	fn      validator.Func
}

func stringRule(match func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && match(s)
	}
}

func registerRules(validate *validator.Validate, trans ut.Translator) error {
	rules := []rule{
		{
			tag:     "password",
			message: "{0} must be at least 8 characters and at most 72 bytes",
			fn: stringRule(func(s string) bool {
				return len(s) <= passwordMaxBytes && utf8.RuneCountInString(s) >= passwordMinChars
			}),
		},
		{
			tag:     "otp",
			message: "{0} must be a 4 digit code",
			fn:      stringRule(reOTP.MatchString),
		},
		{
			tag:     "personname",
			message: "{0} can contain only letters, spaces, dots, apostrophes and hyphens",
			fn:      stringRule(rePersonName.MatchString),
		},
	}

	for _, r := range rules {
		if err := validate.RegisterValidation(r.tag, r.fn); err != nil {
			return err
		}

		msg := r.message
		err := validate.RegisterTranslation(r.tag, trans,
			func(t ut.Translator) error { return t.Add(r.tag, msg, false) },
			func(t ut.Translator, fe validator.FieldError) string {
				out, err := t.T(fe.Tag(), fe.Field())
				if err != nil {
					return fe.Error()
				}
				return out
			},
		)
		if err != nil {
			return err
		}
	}

	return nil
}
