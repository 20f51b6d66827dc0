package calculators

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/2beens/fitcalc/internal/validation"
)

type FieldType string

const (
	FieldNumber  FieldType = "number"
	FieldInteger FieldType = "integer"
	FieldSelect  FieldType = "select"
	FieldText    FieldType = "text"
	FieldDate    FieldType = "date"
	FieldBoolean FieldType = "boolean"
	FieldList    FieldType = "list"
)

// Field describes one form input of a calculator. It is derived from the
// input struct tags: json (name), label, unit and validate (bounds, options).
type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Unit     string    `json:"unit,omitempty"`
	Required bool      `json:"required"`
	Min      *float64  `json:"min,omitempty"`
	Max      *float64  `json:"max,omitempty"`
	Options  []string  `json:"options,omitempty"`
	Default  any       `json:"default,omitempty"`
	Help     string    `json:"help,omitempty"`
}

func fieldsOf(v reflect.Value) []Field {
	t := v.Type()
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			continue
		}

		f := Field{
			Name:  name,
			Label: sf.Tag.Get("label"),
			Unit:  sf.Tag.Get("unit"),
			Help:  sf.Tag.Get("help"),
			Type:  fieldType(sf),
		}
		if f.Label == "" {
			f.Label = name
		}
		applyValidateTag(&f, sf.Tag.Get("validate"))
		if f.Type == FieldText && len(f.Options) > 0 {
			f.Type = FieldSelect
		}

		if fv := v.Field(i); !fv.IsZero() {
			f.Default = fv.Interface()
		}

		fields = append(fields, f)
	}
	return fields
}

func fieldType(sf reflect.StructField) FieldType {
	switch sf.Type.Kind() {
	case reflect.Float32, reflect.Float64:
		return FieldNumber
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FieldInteger
	case reflect.Bool:
		return FieldBoolean
	case reflect.Slice, reflect.Array:
		return FieldList
	}
	if strings.Contains(sf.Tag.Get("validate"), "datetime=") {
		return FieldDate
	}
	return FieldText
}

func applyValidateTag(f *Field, tag string) {
	for _, rule := range strings.Split(tag, ",") {
		if rule == "dive" {
			// the rest applies to list elements
			return
		}
		key, param, _ := strings.Cut(rule, "=")
		switch key {
		case "required":
			f.Required = true
		case "oneof":
			f.Options = strings.Fields(param)
		case "gt", "gte", "min":
			if f.Type == FieldList {
				continue
			}
			if n, err := strconv.ParseFloat(param, 64); err == nil {
				f.Min = &n
			}
		case "lt", "lte", "max":
			if f.Type == FieldList {
				continue
			}
			if n, err := strconv.ParseFloat(param, 64); err == nil {
				f.Max = &n
			}
		}
	}
}

// FormToJSON converts urlencoded form values into the JSON object a calculator
// accepts, using the calculator's field types. Form keys that do not match a
// field are ignored, so submit buttons and the like pass through harmlessly.
func FormToJSON(meta Meta, form url.Values) ([]byte, error) {
	obj := make(map[string]any, len(meta.Fields))
	vErr := &validation.Error{}

	for _, f := range meta.Fields {
		raw := strings.TrimSpace(form.Get(f.Name))
		if raw == "" {
			continue
		}

		switch f.Type {
		case FieldNumber:
			n, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
			if err != nil || !finite(n) {
				vErr.Add(f.Name, fmt.Sprintf("%s must be a number", f.Name))
				continue
			}
			obj[f.Name] = n
		case FieldInteger:
			n, err := strconv.Atoi(raw)
			if err != nil {
				vErr.Add(f.Name, fmt.Sprintf("%s must be a whole number", f.Name))
				continue
			}
			obj[f.Name] = n
		case FieldBoolean:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				// checkbox inputs post "on"
				b = raw == "on"
			}
			obj[f.Name] = b
		case FieldList:
			var list []any
			if err := json.Unmarshal([]byte(raw), &list); err != nil {
				vErr.Add(f.Name, fmt.Sprintf("%s must be a list", f.Name))
				continue
			}
			obj[f.Name] = list
		default:
			obj[f.Name] = raw
		}
	}

	if len(vErr.Fields) > 0 {
		return nil, vErr
	}
	return json.Marshal(obj)
}
