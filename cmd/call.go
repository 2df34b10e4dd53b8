package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/s0up4200/betaseries/betaseries"
	"github.com/s0up4200/betaseries/schema"
)

const (
	methodGet    = http.MethodGet
	methodPost   = http.MethodPost
	methodDelete = http.MethodDelete
)

// newCallCmd builds the generic get/post/delete command for method
func newCallCmd(method string) *cobra.Command {
	var jqExpr string

	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " <category/action> [key=value ...]",
		Short: fmt.Sprintf("Call a %s endpoint", method),
		Long: fmt.Sprintf(`Call any registered %s endpoint and print the JSON response.

Values are converted to the type the endpoint declares for each parameter;
integers and booleans that fail to parse are sent to validation as strings
so the error names the offending field.

Example:
  betaseries %s members/badges token=abc id=1 --jq '.badges[].name'`, method, strings.ToLower(method)),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(client.Registry(), method, args[0], args[1:])
			if err != nil {
				return err
			}

			res, err := client.Do(cmd.Context(), method, args[0], params)
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), res, jqExpr)
		},
	}

	cmd.Flags().StringVar(&jqExpr, "jq", "", "jq expression applied to the response")
	return cmd
}

// parseParams turns key=value arguments into params typed after the endpoint schema
func parseParams(registry *betaseries.Registry, method, endpoint string, args []string) (betaseries.Params, error) {
	var s *schema.Schema
	if category, action, ok := betaseries.SplitEndpoint(endpoint); ok {
		if ep, found := registry.Lookup(method, category, action); found {
			s = ep.Schema
		}
	}

	params := make(betaseries.Params, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", arg)
		}
		params[key] = coerce(s, key, raw)
	}
	return params, nil
}

func coerce(s *schema.Schema, key, raw string) any {
	if s == nil {
		return raw
	}
	f, ok := s.Field(key)
	if !ok {
		return raw
	}

	switch f.Type {
	case schema.Integer:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	case schema.Boolean:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

// printResult writes res as indented JSON, or the outputs of jqExpr applied to it
func printResult(w io.Writer, res betaseries.Result, jqExpr string) error {
	if jqExpr == "" {
		return printJSON(w, map[string]any(res))
	}

	outputs, err := applyJQ(map[string]any(res), jqExpr)
	if err != nil {
		return err
	}
	for _, out := range outputs {
		if s, ok := out.(string); ok {
			fmt.Fprintln(w, s)
			continue
		}
		if err := printJSON(w, out); err != nil {
			return err
		}
	}
	return nil
}

func applyJQ(data any, expression string) ([]any, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	iter := query.Run(data)

	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("jq error: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
