package betaseries

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/s0up4200/betaseries/schema"
)

// Endpoint describes one remote API command
type Endpoint struct {
	Method      string
	Category    string
	Action      string
	Description string
	Schema      *schema.Schema
}

// Path returns the URL path of the endpoint, e.g. "/members/badges"
func (e Endpoint) Path() string {
	return "/" + e.Name()
}

// Name returns "<category>/<action>"
func (e Endpoint) Name() string {
	return e.Category + "/" + e.Action
}

func (e Endpoint) String() string {
	return e.Method + " " + e.Name()
}

type endpointKey struct {
	method, category, action string
}

func keyOf(method, category, action string) endpointKey {
	return endpointKey{
		method:   strings.ToUpper(strings.TrimSpace(method)),
		category: strings.ToLower(strings.TrimSpace(category)),
		action:   strings.ToLower(strings.TrimSpace(action)),
	}
}

// Registry is a read-only set of endpoints keyed by (method, category, action)
type Registry struct {
	endpoints map[endpointKey]Endpoint
	ordered   []Endpoint
}

var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodDelete: true,
}

// NewRegistry builds a registry. Every endpoint needs a supported method, a
// category, an action and a schema; triples must be unique.
func NewRegistry(endpoints ...Endpoint) (*Registry, error) {
	r := &Registry{endpoints: make(map[endpointKey]Endpoint, len(endpoints))}
	for _, ep := range endpoints {
		k := keyOf(ep.Method, ep.Category, ep.Action)
		if !supportedMethods[k.method] {
			return nil, fmt.Errorf("endpoint %s: unsupported method %q", ep.Name(), ep.Method)
		}
		if k.category == "" || k.action == "" {
			return nil, fmt.Errorf("endpoint %q: category and action are required", ep.Name())
		}
		if ep.Schema == nil {
			return nil, fmt.Errorf("endpoint %s: missing schema", ep)
		}
		if _, dup := r.endpoints[k]; dup {
			return nil, fmt.Errorf("endpoint %s registered twice", ep)
		}
		ep.Method, ep.Category, ep.Action = k.method, k.category, k.action
		r.endpoints[k] = ep
		r.ordered = append(r.ordered, ep)
	}

	sort.SliceStable(r.ordered, func(i, j int) bool {
		a, b := r.ordered[i], r.ordered[j]
		if a.Name() != b.Name() {
			return a.Name() < b.Name()
		}
		return a.Method < b.Method
	})
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error
func MustRegistry(endpoints ...Endpoint) *Registry {
	r, err := NewRegistry(endpoints...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup finds an endpoint. Method is matched case-insensitively, category and
// action after lower-casing and trimming.
func (r *Registry) Lookup(method, category, action string) (Endpoint, bool) {
	ep, ok := r.endpoints[keyOf(method, category, action)]
	return ep, ok
}

// Endpoints returns all endpoints sorted by name then method
func (r *Registry) Endpoints() []Endpoint {
	out := make([]Endpoint, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of registered endpoints
func (r *Registry) Len() int {
	return len(r.ordered)
}

// SplitEndpoint splits "<category>/<action>" into its parts
func SplitEndpoint(endpoint string) (category, action string, ok bool) {
	category, action, found := strings.Cut(strings.Trim(strings.TrimSpace(endpoint), "/"), "/")
	if !found || category == "" || action == "" || strings.Contains(action, "/") {
		return "", "", false
	}
	return category, action, true
}

var (
	fieldToken    = schema.Str("token").Require().DisallowBlank()
	fieldOptToken = schema.Str("token").DisallowBlank()
	fieldID       = schema.Int("id").Require()
)

// DefaultRegistry holds every endpoint the client knows about
var DefaultRegistry = MustRegistry(
	// members
	Endpoint{
		Method: http.MethodGet, Category: "members", Action: "badges",
		Description: "List the badges of a member",
		Schema:      schema.New(fieldToken, fieldID),
	},
	Endpoint{
		Method: http.MethodGet, Category: "members", Action: "infos",
		Description: "Get a member's information",
		Schema: schema.New(
			fieldOptToken,
			fieldID,
			schema.Bool("summary"),
			schema.Value("only").Require().OneOf("movies", "shows"),
		),
	},
	Endpoint{
		Method: http.MethodGet, Category: "members", Action: "is_active",
		Description: "Check that a token is still active",
		Schema:      schema.New(fieldToken),
	},
	Endpoint{
		Method: http.MethodGet, Category: "members", Action: "notifications",
		Description: "List a member's notifications",
		Schema: schema.New(
			fieldToken,
			schema.Int("since_id"),
			schema.Int("number").Range(1, 100),
			schema.Value("sort").OneOf("ASC", "DESC"),
			schema.Str("types"),
			schema.Bool("auto_delete"),
		),
	},
	Endpoint{
		Method: http.MethodPost, Category: "members", Action: "access_token",
		Description: "Exchange an OAuth code for a token",
		Schema: schema.New(
			schema.Str("client_id").Require(),
			schema.Str("client_secret").Require(),
			schema.Str("redirect_uri").Require().AsURL(),
			schema.Str("code").Require(),
		),
	},
	Endpoint{
		Method: http.MethodPost, Category: "members", Action: "auth",
		Description: "Authenticate a member with login and MD5 password",
		Schema: schema.New(
			schema.Str("login").Require(),
			schema.Str("password").Require(),
		),
	},
	Endpoint{
		Method: http.MethodPost, Category: "members", Action: "lost",
		Description: "Send a password reset email",
		Schema:      schema.New(schema.Str("find").Require().DisallowBlank()),
	},
	Endpoint{
		Method: http.MethodPost, Category: "members", Action: "destroy",
		Description: "Destroy the session of a token",
		Schema:      schema.New(fieldToken),
	},
	Endpoint{
		Method: http.MethodDelete, Category: "members", Action: "avatar",
		Description: "Delete a member's avatar",
		Schema:      schema.New(fieldToken),
	},

	// shows
	Endpoint{
		Method: http.MethodGet, Category: "shows", Action: "display",
		Description: "Display a show",
		Schema: schema.New(
			schema.Int("id"),
			schema.Int("thetvdb_id"),
			schema.Str("token"),
		),
	},
	Endpoint{
		Method: http.MethodGet, Category: "shows", Action: "search",
		Description: "Search shows by title",
		Schema: schema.New(
			schema.Str("title").Require().DisallowBlank(),
			schema.Bool("summary"),
			schema.Value("order").OneOf("title", "popularity", "followers"),
			schema.Int("nbpp").Range(1, 100),
			schema.Int("page").AtLeast(1),
		),
	},
	Endpoint{
		Method: http.MethodPost, Category: "shows", Action: "show",
		Description: "Add a show to the member's account",
		Schema:      schema.New(fieldToken, fieldID),
	},
	Endpoint{
		Method: http.MethodDelete, Category: "shows", Action: "show",
		Description: "Remove a show from the member's account",
		Schema:      schema.New(fieldToken, fieldID),
	},

	// episodes
	Endpoint{
		Method: http.MethodGet, Category: "episodes", Action: "list",
		Description: "List unwatched episodes",
		Schema: schema.New(
			fieldToken,
			schema.Int("showsNumber").AtLeast(1),
			schema.Bool("specials"),
		),
	},
	Endpoint{
		Method: http.MethodPost, Category: "episodes", Action: "watched",
		Description: "Mark an episode as watched",
		Schema: schema.New(
			fieldToken,
			fieldID,
			schema.Bool("bulk"),
			schema.Int("note").Range(1, 5),
		),
	},
	Endpoint{
		Method: http.MethodDelete, Category: "episodes", Action: "watched",
		Description: "Mark an episode as not watched",
		Schema:      schema.New(fieldToken, fieldID),
	},
)
