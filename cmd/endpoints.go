package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s0up4200/betaseries/betaseries"
	"github.com/s0up4200/betaseries/filter"
)

var (
	filterExpr string
	preset     string
)

// endpointsCmd represents the endpoints command
var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the endpoints the client knows",
	Long: `List every registered endpoint with its parameters.
Required parameters are marked with *.

Filter expressions use expr syntax over Method, Category, Action, Name, Path,
Description, Params and Required, e.g.

  betaseries endpoints --filter 'Method == "POST" and requires("token")'`,
	Annotations: map[string]string{configAnnotation: configOptional},
	RunE:        runEndpoints,
}

func init() {
	endpointsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	endpointsCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runEndpoints(cmd *cobra.Command, args []string) error {
	endpoints := client.Registry().Endpoints()

	expr, err := getFilterExpression()
	if err != nil {
		return err
	}
	if expr != "" {
		logger.Debug().Str("filter", expr).Msg("Filtering endpoints")

		f, err := filter.Compile(expr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		if endpoints, err = f.Select(endpoints); err != nil {
			return err
		}
	}

	if len(endpoints) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No endpoints match the filter.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, ep := range endpoints {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ep.Method, ep.Name(), formatFields(ep), ep.Description)
	}
	return tw.Flush()
}

func formatFields(ep betaseries.Endpoint) string {
	fields := ep.Schema.Fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if expr, ok := cfg.Filter[preset]; ok {
			return expr, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return "", nil
}
