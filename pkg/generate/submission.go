package generate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-compositor/pkg/schema"
)

// FieldError reports a submitted value that does not fit its column.
type FieldError struct {
	Column string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("generate: column %q value %q: %v", e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// FormValues normalises values submitted from a generated form. Only form
// columns are kept. Checkboxes become bools (absent means false), blank
// values become nil, numeric columns are parsed (int64 for INTEGER, float64
// for REAL) and everything else stays a string. Submitted values may be
// scalars or []string as found in url.Values.
func FormValues(columns []string, submitted map[string]any) (map[string]any, error) {
	out := make(map[string]any)
	var errs []error

	for _, descriptor := range columns {
		spec, err := schema.ParseColumn(descriptor)
		if err != nil || spec.Skip() {
			continue
		}

		raw, present := submitted[spec.Name]
		if spec.Type == schema.TypeBoolean {
			out[spec.Name] = present && Truthy(firstValue(raw))
			continue
		}
		if !present {
			continue
		}

		value := firstValue(raw)
		text, isString := value.(string)
		if value == nil || (isString && strings.TrimSpace(text) == "") {
			out[spec.Name] = nil
			continue
		}
		if !isString {
			out[spec.Name] = value
			continue
		}

		switch spec.Type {
		case schema.TypeInteger:
			n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
			if err != nil {
				errs = append(errs, &FieldError{Column: spec.Name, Value: text, Err: err})
				continue
			}
			out[spec.Name] = n
		case schema.TypeReal:
			f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
			if err != nil {
				errs = append(errs, &FieldError{Column: spec.Name, Value: text, Err: err})
				continue
			}
			out[spec.Name] = f
		default:
			if spec.Enumerated() && !contains(spec.EnumValues, text) {
				errs = append(errs, &FieldError{Column: spec.Name, Value: text, Err: errors.New("not an allowed value")})
				continue
			}
			out[spec.Name] = text
		}
	}

	return out, errors.Join(errs...)
}

func firstValue(raw any) any {
	switch v := raw.(type) {
	case []string:
		if len(v) == 0 {
			return nil
		}
		return v[0]
	case []any:
		if len(v) == 0 {
			return nil
		}
		return v[0]
	default:
		return v
	}
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
