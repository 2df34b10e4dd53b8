package betaseries

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxDepth is the deepest object/array nesting a response may have
const MaxDepth = 512

// Decode turns a transport response into a result or an error.
// Only the first entry of the "errors" list is consulted.
func Decode(resp *Response) (Result, error) {
	res, _, err := decode(resp)
	return res, err
}

// decode also reports whether the error object used the legacy scalar shape
func decode(resp *Response) (Result, bool, error) {
	if resp == nil {
		return nil, false, ErrEmptyResponse
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		if !ok {
			return nil, false, &HTTPError{StatusCode: resp.StatusCode}
		}
		return nil, false, ErrEmptyResponse
	}

	if !utf8.Valid(body) {
		return nil, false, &DecodeError{Reason: ReasonUTF8}
	}
	if exceedsDepth(body, MaxDepth) {
		return nil, false, &DecodeError{Reason: ReasonDepth}
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false, syntaxError(err)
	}
	obj, isObject := payload.(map[string]any)
	if !isObject {
		return nil, false, &DecodeError{Reason: ReasonMismatch}
	}

	bsErr, legacy, err := errorObject(obj["errors"])
	if err != nil {
		return nil, false, err
	}
	if bsErr != nil {
		return nil, legacy, bsErr
	}

	if !ok {
		return nil, false, &HTTPError{StatusCode: resp.StatusCode, Body: resp.Body}
	}
	return Result(obj), false, nil
}

func syntaxError(err error) error {
	var synErr *json.SyntaxError
	if errors.As(err, &synErr) {
		if strings.Contains(synErr.Error(), "in string literal") {
			return &DecodeError{Reason: ReasonCtrlChar, Err: err}
		}
		return &DecodeError{Reason: ReasonSyntax, Err: err}
	}
	return &DecodeError{Reason: ReasonUndefined, Err: err}
}

// errorObject extracts the API error from the "errors" member. The list form is
// current; a bare object is the legacy shape.
func errorObject(v any) (*BetaSeriesError, bool, error) {
	switch errs := v.(type) {
	case nil:
		return nil, false, nil
	case []any:
		if len(errs) == 0 {
			return nil, false, nil
		}
		entry, ok := errs[0].(map[string]any)
		if !ok {
			return nil, false, &DecodeError{Reason: ReasonMismatch}
		}
		bsErr, err := newBetaSeriesError(entry)
		return bsErr, false, err
	case map[string]any:
		if len(errs) == 0 {
			return nil, false, nil
		}
		bsErr, err := newBetaSeriesError(errs)
		return bsErr, true, err
	default:
		return nil, false, &DecodeError{Reason: ReasonMismatch}
	}
}

func newBetaSeriesError(entry map[string]any) (*BetaSeriesError, error) {
	var code string
	switch c := entry["code"].(type) {
	case string:
		code = c
	case float64:
		code = strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return nil, &DecodeError{Reason: ReasonMismatch}
	}

	text, _ := entry["text"].(string)
	return &BetaSeriesError{
		Kind: kindOf(code),
		Code: code,
		Text: text,
	}, nil
}

// exceedsDepth scans raw JSON and reports whether brackets nest deeper than max
func exceedsDepth(data []byte, max int) bool {
	depth := 0
	inString, escaped := false, false
	for _, b := range data {
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case '{', '[':
			depth++
			if depth > max {
				return true
			}
		case '}', ']':
			depth--
		}
	}
	return false
}
