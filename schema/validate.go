package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation messages
const (
	MsgMissing    = "This field is missing."
	MsgUnexpected = "This field was not expected."
	MsgBlank      = "This value should not be blank."
	MsgChoice     = "The value you selected is not a valid choice."
	MsgURL        = "This value is not a valid URL."
)

// MsgType returns the type mismatch message for t
func MsgType(t Type) string {
	return fmt.Sprintf("This value should be of type %s.", t)
}

// MsgMin returns the lower bound message for min
func MsgMin(min int64) string {
	return fmt.Sprintf("This value should be %d or more.", min)
}

// MsgMax returns the upper bound message for max
func MsgMax(max int64) string {
	return fmt.Sprintf("This value should be %d or less.", max)
}

var validate = validator.New()

// Violation is a single failed constraint
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// Violations is the ordered result of Schema.Validate
type Violations []Violation

func (vs Violations) Error() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}

// Has reports whether vs contains a violation of field with message
func (vs Violations) Has(field, message string) bool {
	for _, v := range vs {
		if v.Field == field && v.Message == message {
			return true
		}
	}
	return false
}

// For returns the messages reported for field
func (vs Violations) For(field string) []string {
	var msgs []string
	for _, v := range vs {
		if v.Field == field {
			msgs = append(msgs, v.Message)
		}
	}
	return msgs
}

// ErrInvalid is matched by errors.Is on any non-empty Violations
var ErrInvalid = errors.New("invalid parameters")

func (vs Violations) Is(target error) bool {
	return target == ErrInvalid && len(vs) > 0
}

// Validate checks params against the schema and returns every violation found.
// Violations are ordered by field declaration, then unexpected fields by name.
// A nil result means params are valid.
func (s *Schema) Validate(params map[string]any) Violations {
	var out Violations

	for _, f := range s.fields {
		v, present := params[f.Name]
		if !present {
			if f.Required {
				out = append(out, Violation{f.Name, MsgMissing})
			}
			continue
		}
		out = append(out, f.check(v)...)
	}

	var unexpected []string
	for name := range params {
		if _, ok := s.index[name]; !ok {
			unexpected = append(unexpected, name)
		}
	}
	sort.Strings(unexpected)
	for _, name := range unexpected {
		out = append(out, Violation{name, MsgUnexpected})
	}

	return out
}

func (f Field) check(v any) Violations {
	var out Violations
	add := func(msg string) {
		out = append(out, Violation{f.Name, msg})
	}

	if v == nil {
		if f.NotBlank {
			add(MsgBlank)
		}
		return out
	}

	if !f.Type.accepts(v) {
		add(MsgType(f.Type))
		return out
	}

	empty := v == ""
	if empty && f.NotBlank {
		add(MsgBlank)
	}

	if len(f.Choices) > 0 && !f.allows(v) {
		add(MsgChoice)
	}

	// range and URL checks do not apply to an empty string
	if empty {
		return out
	}

	if f.Min != nil || f.Max != nil {
		if n, ok := toInt64(v); ok {
			if f.Min != nil && validate.Var(n, fmt.Sprintf("gte=%d", *f.Min)) != nil {
				add(MsgMin(*f.Min))
			}
			if f.Max != nil && validate.Var(n, fmt.Sprintf("lte=%d", *f.Max)) != nil {
				add(MsgMax(*f.Max))
			}
		}
	}

	if f.URL {
		if s, ok := v.(string); !ok || validate.Var(s, "url") != nil {
			add(MsgURL)
		}
	}

	return out
}

func (t Type) accepts(v any) bool {
	switch t {
	case String:
		_, ok := v.(string)
		return ok
	case Boolean:
		_, ok := v.(bool)
		return ok
	case Integer:
		_, ok := toInt64(v)
		return ok
	default:
		return true
	}
}

// toInt64 converts any integer kind or integral json.Number. Unsigned values
// beyond the int64 range saturate at math.MaxInt64.
func toInt64(v any) (int64, bool) {
	if n, ok := v.(json.Number); ok {
		i, err := n.Int64()
		return i, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return math.MaxInt64, true
		}
		return int64(u), true
	default:
		return 0, false
	}
}

func (f Field) allows(v any) bool {
	s := fmt.Sprint(v)
	if s == "" {
		return slices.Contains(f.Choices, "")
	}
	return validate.Var(s, oneOfTag(f.Choices)) == nil
}

func oneOfTag(choices []string) string {
	quoted := make([]string, len(choices))
	for i, c := range choices {
		quoted[i] = "'" + c + "'"
	}
	return "oneof=" + strings.Join(quoted, " ")
}
