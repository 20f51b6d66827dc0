package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/2beens/fitcalc/pkg"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return toSnake(fld.Name)
		}
		return name
	})
	return v
}

// Error carries one message per offending input field, keyed by the field's json name.
type Error struct {
	Fields map[string]string `json:"errors"`
}

func NewError(field, message string) *Error {
	return &Error{Fields: map[string]string{field: message}}
}

// Add records another field message and returns the same error, so checks can be chained.
func (e *Error) Add(field, message string) *Error {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
	return e
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Message returns the message for a single field, or empty string.
func (e *Error) Message(field string) string {
	return e.Fields[field]
}

// AsError unwraps err into *Error when it is one.
func AsError(err error) (*Error, bool) {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// Struct runs the validate tags of v. A nil return means v is valid, otherwise
// the returned error is a *Error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	vErr := &Error{Fields: map[string]string{}}
	for _, fe := range fieldErrs {
		field := fieldPath(fe)
		vErr.Add(field, message(field, fe))
	}
	return vErr
}

// fieldPath drops the root struct name from the namespace, keeping
// slice indexes for nested (dive) elements: exercises[0].sets
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func message(field string, fe validator.FieldError) string {
	param := fe.Param()
	switch fe.ActualTag() {
	case "required", "required_if", "required_with":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "gte", "min":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("%s must contain at least %s items", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "lte", "max":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("%s must contain at most %s items", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(param), ", "))
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, toSnake(param))
	case "ltfield":
		return fmt.Sprintf("%s must be less than %s", field, toSnake(param))
	case "datetime":
		return fmt.Sprintf("%s must be a date in the format %s", field, param)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func isCollection(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array || k == reflect.Map
}

// toSnake turns a Go field name into its json form: RestingHR -> resting_hr
func toSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WriteHTTPError answers with 400 and the field messages: {"errors": {"field": "message"}}
func WriteHTTPError(w http.ResponseWriter, err *Error) {
	pkg.WriteJSON(w, http.StatusBadRequest, err)
}
