package filter

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/s0up4200/betaseries/betaseries"
	"github.com/s0up4200/betaseries/schema"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Method == "GET"`,
			wantErr:    false,
		},
		{
			name:        "empty expression",
			expression:  "  ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `hasParam("unclosed`,
			wantErr:    true,
		},
		{
			name:       "unknown variable",
			expression: `Year > 2020`,
			wantErr:    true,
		},
		{
			name:       "not a boolean",
			expression: `Category`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `Category == "members" and (requires("token") or "id" in Params) and not startsWith(Action, "is_")`,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				var compErr *CompilationError
				if !errors.As(err, &compErr) {
					t.Errorf("expected *CompilationError, got %T", err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Expression() != strings.TrimSpace(tt.expression) {
				t.Errorf("Expression() = %q", f.Expression())
			}
		})
	}
}

func TestCompileErrorPosition(t *testing.T) {
	_, err := Compile(`Method == "GET" and Year > 2020`)

	var compErr *CompilationError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected *CompilationError, got %T", err)
	}
	if compErr.Position <= 0 {
		t.Errorf("Position = %d, want the offset of Year", compErr.Position)
	}
	if !strings.Contains(err.Error(), "at position") {
		t.Errorf("error %q does not report a position", err.Error())
	}
	if !strings.Contains(compErr.Reason, "Year") {
		t.Errorf("Reason %q does not name the unknown variable", compErr.Reason)
	}
}

func TestMatch(t *testing.T) {
	badges := betaseries.Endpoint{
		Method:      http.MethodGet,
		Category:    "members",
		Action:      "badges",
		Description: "List the badges of a member",
		Schema: schema.New(
			schema.Str("token").Require(),
			schema.Int("id").Require(),
			schema.Bool("summary"),
		),
	}

	tests := []struct {
		expression string
		want       bool
	}{
		{`Method == "GET"`, true},
		{`Method == "POST"`, false},
		{`Name == "members/badges"`, true},
		{`Path == "/members/badges"`, true},
		{`hasParam("summary")`, true},
		{`requires("summary")`, false},
		{`requires("token") and requires("id")`, true},
		{`"id" in Required`, true},
		{`len(Params) == 3`, true},
		{`contains(Description, "BADGES")`, true},
		{`endsWith(Action, "ges")`, true},
		{`upper(Category) == "MEMBERS"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			got, err := f.Match(badges)
			if err != nil {
				t.Fatalf("match: %v", err)
			}
			if got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	f, err := Compile(`Category == "shows" and Method != "GET"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	got, err := f.Select(betaseries.DefaultRegistry.Endpoints())
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(got))
	}
	for _, ep := range got {
		if ep.Name() != "shows/show" {
			t.Errorf("unexpected endpoint %s", ep)
		}
	}
}

func TestEndpointWithoutSchema(t *testing.T) {
	f, err := Compile(`len(Params) == 0 and not hasParam("token")`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	got, err := f.Match(betaseries.Endpoint{Method: http.MethodGet, Category: "a", Action: "b"})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !got {
		t.Error("expected a match")
	}
}
