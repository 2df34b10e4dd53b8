package betaseries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Do resolves endpoint ("<category>/<action>") for method, validates params
// against its schema, sends the request and decodes the response.
func (c *Client) Do(ctx context.Context, method, endpoint string, params Params) (Result, error) {
	category, action, ok := SplitEndpoint(endpoint)
	if !ok {
		return nil, &ConfigurationError{Method: strings.ToUpper(method), Path: endpoint}
	}
	return c.call(ctx, c.currentSession(), method, category, action, params)
}

func (c *Client) call(ctx context.Context, s *session, method, category, action string, params Params) (Result, error) {
	ep, ok := c.registry.Lookup(method, category, action)
	if !ok {
		k := keyOf(method, category, action)
		return nil, &ConfigurationError{Method: k.method, Path: k.category + "/" + k.action}
	}

	c.logger.Debug().
		Str("endpoint", ep.String()).
		Int("params", len(params)).
		Msg("Resolved BetaSeries endpoint")

	if vs := ep.Schema.Validate(params); len(vs) > 0 {
		return nil, &ValidationError{Method: ep.Method, Path: ep.Name(), Violations: vs}
	}

	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	req := buildRequest(s, ep, params)

	// the query may carry the member token, so only the path is logged
	c.logger.Debug().
		Str("method", req.Method).
		Str("path", ep.Path()).
		Msg("Making BetaSeries API request")

	resp, err := s.transport.Send(ctx, req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Int("size", len(resp.Body)).
		Msg("Received BetaSeries API response")

	res, legacy, err := decode(resp)
	if legacy {
		c.logger.Warn().
			Str("endpoint", ep.String()).
			Msg("BetaSeries returned a deprecated scalar error object")
	}
	return res, err
}

func buildRequest(s *session, ep Endpoint, params Params) *Request {
	values := encodeParams(params)
	req := &Request{
		Method: ep.Method,
		URL:    s.host + ep.Path(),
		Header: s.header.Clone(),
	}

	switch ep.Method {
	case http.MethodPost:
		req.Body = values
	default:
		if len(values) > 0 {
			req.URL += "?" + values.Encode()
		}
	}
	return req
}

// encodeParams stringifies params, dropping nil, empty strings and empty
// slices or maps. Maps are flattened as key[sub]=value.
func encodeParams(params Params) url.Values {
	values := url.Values{}
	for k, v := range params {
		addValue(values, k, v)
	}
	return values
}

func addValue(values url.Values, key string, v any) {
	if v == nil {
		return
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		if rv.Len() == 0 {
			return
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, mk := range keys {
			addValue(values, fmt.Sprintf("%s[%v]", key, mk.Interface()), rv.MapIndex(mk).Interface())
		}
		return
	}

	if s, ok := formatValue(v); ok {
		values.Set(key, s)
	}
}

// formatValue renders a scalar or slice the way the API expects it
func formatValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, x != ""
	case bool:
		if x {
			return "1", true
		}
		return "0", true
	case json.Number:
		return x.String(), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case []string:
		return strings.Join(x, ","), len(x) > 0
	}

	// integer kinds are sent as numbers even when they implement fmt.Stringer,
	// matching how the validator reads them
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	}

	if x, ok := v.(fmt.Stringer); ok {
		s := x.String()
		return s, s != ""
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return "", false
		}
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if s, ok := formatValue(rv.Index(i).Interface()); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), len(parts) > 0
	case reflect.Ptr:
		if rv.IsNil() {
			return "", false
		}
		return formatValue(rv.Elem().Interface())
	}
	return fmt.Sprint(v), true
}
