// Package filter selects endpoints with boolean expr-lang expressions, e.g.
//
//	Method == "GET" and Category == "members" and not requires("token")
//	hasParam("id") and contains(Description, "show")
//
// Variables: Method, Category, Action, Name, Path, Description, Params and Required.
// Functions: hasParam, requires, contains, startsWith, endsWith, lower and upper.
package filter

import (
	"errors"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/betaseries/betaseries"
)

// CompiledFilter is a compiled expression, safe for concurrent use
type CompiledFilter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression that must evaluate to a boolean.
// Unknown variables are rejected at compile time.
func Compile(expression string) (*CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(newEnv(betaseries.Endpoint{})),
		expr.AsBool(),
	)
	if err != nil {
		cerr := &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   -1,
			Err:        err,
		}
		var ferr *file.Error
		if errors.As(err, &ferr) {
			cerr.Reason = ferr.Message
			cerr.Position = ferr.Column
		}
		return nil, cerr
	}

	return &CompiledFilter{
		expression: expression,
		program:    program,
	}, nil
}

// Match evaluates the filter against ep
func (f *CompiledFilter) Match(ep betaseries.Endpoint) (bool, error) {
	result, err := expr.Run(f.program, newEnv(ep))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Endpoint:   ep.String(),
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	// AsBool guarantees the type
	return result.(bool), nil
}

// Select returns the endpoints matching the filter, in input order
func (f *CompiledFilter) Select(endpoints []betaseries.Endpoint) ([]betaseries.Endpoint, error) {
	var out []betaseries.Endpoint
	for _, ep := range endpoints {
		ok, err := f.Match(ep)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, ep)
		}
	}
	return out, nil
}

// Expression returns the source expression
func (f *CompiledFilter) Expression() string {
	return f.expression
}

// EndpointEnv is the data an expression sees for one endpoint
type EndpointEnv struct {
	Method      string
	Category    string
	Action      string
	Name        string
	Path        string
	Description string
	Params      []string
	Required    []string
}

// NewEndpointEnv extracts the expression variables of ep
func NewEndpointEnv(ep betaseries.Endpoint) EndpointEnv {
	env := EndpointEnv{
		Method:      ep.Method,
		Category:    ep.Category,
		Action:      ep.Action,
		Name:        ep.Name(),
		Path:        ep.Path(),
		Description: ep.Description,
		Params:      []string{},
		Required:    []string{},
	}
	if ep.Schema != nil {
		env.Params = ep.Schema.Names()
		if req := ep.Schema.Required(); req != nil {
			env.Required = req
		}
	}
	return env
}

// HasParam reports whether the endpoint accepts name
func (e EndpointEnv) HasParam(name string) bool {
	return slices.Contains(e.Params, name)
}

// Requires reports whether name is mandatory
func (e EndpointEnv) Requires(name string) bool {
	return slices.Contains(e.Required, name)
}

func newEnv(ep betaseries.Endpoint) map[string]any {
	e := NewEndpointEnv(ep)

	env := make(map[string]any, 16)
	addHelperFunctions(env)

	env["Method"] = e.Method
	env["Category"] = e.Category
	env["Action"] = e.Action
	env["Name"] = e.Name
	env["Path"] = e.Path
	env["Description"] = e.Description
	env["Params"] = e.Params
	env["Required"] = e.Required

	env["hasParam"] = e.HasParam
	env["requires"] = e.Requires

	return env
}

// addHelperFunctions adds the string helpers
func addHelperFunctions(env map[string]any) {
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}
