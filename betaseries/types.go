package betaseries

import (
	"fmt"
	"strconv"
)

// Params are the arguments of one call, keyed by parameter name
type Params map[string]any

// Result is a decoded response object. JSON numbers are float64.
type Result map[string]any

// Object returns the nested object stored under key
func (r Result) Object(key string) (Result, bool) {
	m, ok := r[key].(map[string]any)
	return Result(m), ok
}

// List returns the array stored under key
func (r Result) List(key string) ([]any, bool) {
	l, ok := r[key].([]any)
	return l, ok
}

// String returns the value under key as a string. Numbers and booleans are formatted.
func (r Result) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the number under key truncated to int64
func (r Result) Int(key string) (int64, bool) {
	switch v := r[key].(type) {
	case float64:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Bool returns the boolean under key. The API sends some flags as 0/1.
func (r Result) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v == "1" || v == "true"
	default:
		return false
	}
}
