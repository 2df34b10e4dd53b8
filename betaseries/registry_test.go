package betaseries

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/betaseries/schema"
)

func TestDefaultRegistry(t *testing.T) {
	require.Equal(t, 16, DefaultRegistry.Len())

	for _, ep := range DefaultRegistry.Endpoints() {
		assert.NotNil(t, ep.Schema, ep.String())
		assert.NotEmpty(t, ep.Description, ep.String())
	}

	ep, ok := DefaultRegistry.Lookup("get", " Members ", "BADGES")
	require.True(t, ok)
	assert.Equal(t, http.MethodGet, ep.Method)
	assert.Equal(t, "/members/badges", ep.Path())
	assert.Equal(t, "GET members/badges", ep.String())

	_, ok = DefaultRegistry.Lookup(http.MethodPost, "members", "badges")
	assert.False(t, ok)

	add, ok := DefaultRegistry.Lookup(http.MethodPost, "shows", "show")
	require.True(t, ok)
	remove, ok := DefaultRegistry.Lookup(http.MethodDelete, "shows", "show")
	require.True(t, ok)
	assert.Equal(t, add.Path(), remove.Path())
}

func TestRegistryEndpointsSorted(t *testing.T) {
	eps := DefaultRegistry.Endpoints()
	for i := 1; i < len(eps); i++ {
		prev, cur := eps[i-1], eps[i]
		assert.True(t, prev.Name() < cur.Name() || (prev.Name() == cur.Name() && prev.Method < cur.Method),
			"%s before %s", prev, cur)
	}
}

func TestNewRegistryRejectsInvalid(t *testing.T) {
	s := schema.New()

	tests := []struct {
		name      string
		endpoints []Endpoint
	}{
		{"unsupported method", []Endpoint{{Method: http.MethodPut, Category: "a", Action: "b", Schema: s}}},
		{"missing action", []Endpoint{{Method: http.MethodGet, Category: "a", Schema: s}}},
		{"missing schema", []Endpoint{{Method: http.MethodGet, Category: "a", Action: "b"}}},
		{"duplicate", []Endpoint{
			{Method: http.MethodGet, Category: "a", Action: "b", Schema: s},
			{Method: "get", Category: "A", Action: "b", Schema: s},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.endpoints...)
			assert.Error(t, err)
		})
	}

	assert.Panics(t, func() {
		MustRegistry(Endpoint{Method: http.MethodGet, Category: "a", Action: "b"})
	})
}

func TestNewRegistryNormalizes(t *testing.T) {
	r, err := NewRegistry(Endpoint{Method: "post", Category: " Foo ", Action: "Bar", Schema: schema.New()})
	require.NoError(t, err)

	ep, ok := r.Lookup(http.MethodPost, "foo", "bar")
	require.True(t, ok)
	assert.Equal(t, "POST", ep.Method)
	assert.Equal(t, "/foo/bar", ep.Path())
}

// validParams returns a value accepted by every declared field of s
func validParams(s *schema.Schema) Params {
	params := Params{}
	for _, f := range s.Fields() {
		switch {
		case len(f.Choices) > 0:
			params[f.Name] = f.Choices[0]
		case f.URL:
			params[f.Name] = "https://example.com/callback"
		case f.Type == schema.Integer && f.Min != nil:
			params[f.Name] = *f.Min
		case f.Type == schema.Integer && f.Max != nil:
			params[f.Name] = *f.Max
		case f.Type == schema.Integer:
			params[f.Name] = int64(1)
		case f.Type == schema.Boolean:
			params[f.Name] = true
		default:
			params[f.Name] = "x"
		}
	}
	return params
}

func with(params Params, key string, v any) Params {
	out := make(Params, len(params)+1)
	for k, val := range params {
		out[k] = val
	}
	out[key] = v
	return out
}

func TestDefaultRegistrySchemas(t *testing.T) {
	for _, ep := range DefaultRegistry.Endpoints() {
		t.Run(ep.String(), func(t *testing.T) {
			s := ep.Schema
			valid := validParams(s)
			require.Empty(t, s.Validate(valid))

			for _, name := range s.Required() {
				params := with(valid, name, nil)
				delete(params, name)
				assert.Equal(t, schema.Violations{{Field: name, Message: schema.MsgMissing}}, s.Validate(params), name)
			}

			assert.Equal(t,
				schema.Violations{{Field: "gru", Message: schema.MsgUnexpected}},
				s.Validate(with(valid, "gru", "x")))

			for _, f := range s.Fields() {
				if len(f.Choices) > 0 {
					for _, bad := range []string{"not-a-choice", ""} {
						assert.Equal(t,
							schema.Violations{{Field: f.Name, Message: schema.MsgChoice}},
							s.Validate(with(valid, f.Name, bad)), "%s=%q", f.Name, bad)
					}
				}
				if f.Min != nil {
					assert.Equal(t,
						schema.Violations{{Field: f.Name, Message: schema.MsgMin(*f.Min)}},
						s.Validate(with(valid, f.Name, *f.Min-1)), f.Name)
				}
				if f.Max != nil {
					assert.Equal(t,
						schema.Violations{{Field: f.Name, Message: schema.MsgMax(*f.Max)}},
						s.Validate(with(valid, f.Name, *f.Max+1)), f.Name)
				}
			}
		})
	}
}
