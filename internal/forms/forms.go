// Package forms declares the input schemas accepted by pages and the API.
// Each schema is a struct whose validate tags are the rules and whose
// messages table holds the user-facing text per field and rule.
package forms

import (
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("password_classes", func(fl validator.FieldLevel) bool {
		return hasPasswordClasses(fl.Field().String())
	})
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && d.IsPositive() && d.Exponent() >= -2
	})
	return v
}

// hasPasswordClasses requires a lowercase letter, an uppercase letter and a digit.
func hasPasswordClasses(pw string) bool {
	var lower, upper, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// Errors maps a form field to the first message reported for it.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Get returns the message for field or "".
func (e Errors) Get(field string) string { return e[field] }

// Messages is keyed by "field.rule"; "field" alone is the fallback.
type Messages map[string]string

func check(form any, msgs Messages) Errors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{"_": err.Error()}
	}
	out := Errors{}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := msgs[field+"."+fe.Tag()]
		if !ok {
			msg, ok = msgs[field]
		}
		if !ok {
			msg = "Invalid value"
		}
		out[field] = msg
	}
	return out
}

// merge adds extra into errs without overriding existing messages.
func merge(errs Errors, extra Errors) Errors {
	if len(extra) == 0 {
		return errs
	}
	if errs == nil {
		errs = Errors{}
	}
	for k, v := range extra {
		if _, ok := errs[k]; !ok {
			errs[k] = v
		}
	}
	return errs
}
