package calculators

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/2beens/fitcalc/internal/validation"
)

var (
	ErrUnknownCalculator = errors.New("unknown calculator")
	ErrMalformedInput    = errors.New("malformed input")
)

type Meta struct {
	Slug     string  `json:"slug"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Summary  string  `json:"summary"`
	Path     string  `json:"path"`
	Fields   []Field `json:"fields,omitempty"`

	description string // markdown
}

// Outcome is a computed result together with the (normalized) input it came from.
type Outcome struct {
	Calculator string `json:"calculator"`
	Title      string `json:"title"`
	Input      any    `json:"input"`
	Result     any    `json:"result"`
	Summary    string `json:"summary"`
}

type Calculator interface {
	Meta() Meta
	Calculate(raw []byte) (*Outcome, error)
}

// normalizer is implemented by inputs that accept imperial units; it converts
// them to metric in place, before the range checks run.
type normalizer interface {
	normalize()
}

type calc[In, Out any] struct {
	meta     Meta
	defaults func(in *In)
	// check runs after the tag based validation, for cross-field rules
	check   func(in *In) error
	compute func(in In) (Out, error)
	summary func(in In, out Out) string
}

func newCalc[In, Out any](
	meta Meta,
	defaults func(in *In),
	check func(in *In) error,
	compute func(in In) (Out, error),
	summary func(in In, out Out) string,
) *calc[In, Out] {
	c := &calc[In, Out]{
		meta:     meta,
		defaults: defaults,
		check:    check,
		compute:  compute,
		summary:  summary,
	}
	c.meta.Path = "/calculators/" + meta.Slug

	var zero In
	if defaults != nil {
		defaults(&zero)
	}
	c.meta.Fields = fieldsOf(reflect.ValueOf(zero))
	return c
}

// Markdown returns the long-form description source.
func (m Meta) Markdown() string {
	return m.description
}

func (c *calc[In, Out]) Meta() Meta {
	return c.meta
}

func (c *calc[In, Out]) Calculate(raw []byte) (*Outcome, error) {
	var in In
	if c.defaults != nil {
		c.defaults(&in)
	}

	if err := decodeStrict(raw, &in); err != nil {
		return nil, err
	}

	if n, ok := any(&in).(normalizer); ok {
		n.normalize()
	}

	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if c.check != nil {
		if err := c.check(&in); err != nil {
			return nil, err
		}
	}

	out, err := c.compute(in)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Calculator: c.meta.Slug,
		Title:      c.meta.Title,
		Input:      in,
		Result:     out,
	}
	if c.summary != nil {
		outcome.Summary = c.summary(in, out)
	}
	return outcome, nil
}

// decodeStrict decodes a single JSON object, rejecting unknown fields.
// An empty body is treated as an empty object so missing fields get reported.
func decodeStrict(raw []byte, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return validation.NewError(typeErr.Field, fmt.Sprintf("%s must be a %s", typeErr.Field, jsonKind(typeErr.Type)))
		}
		return fmt.Errorf("%w: %s", ErrMalformedInput, strings.TrimPrefix(err.Error(), "json: "))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after input object", ErrMalformedInput)
	}
	return nil
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "whole number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return "string"
	}
}
