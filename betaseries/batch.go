package betaseries

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency is the number of calls Batch runs at once
const DefaultBatchConcurrency = 4

// Call is one request of a batch
type Call struct {
	Method   string
	Endpoint string
	Params   Params
}

// BatchResult is the outcome of one Call
type BatchResult struct {
	Call   Call
	Result Result
	Err    error
}

// Batch runs independent calls concurrently. Results are returned in the
// order of calls; a failing call does not stop the others.
func (c *Client) Batch(ctx context.Context, calls []Call) []BatchResult {
	results := make([]BatchResult, len(calls))
	if len(calls) == 0 {
		return results
	}

	s := c.currentSession()

	g := new(errgroup.Group)
	g.SetLimit(c.batchConcurrency)

	for i, call := range calls {
		results[i].Call = call
		g.Go(func() error {
			method := call.Method
			if method == "" {
				method = http.MethodGet
			}

			var res Result
			var err error
			if category, action, ok := SplitEndpoint(call.Endpoint); ok {
				res, err = c.call(ctx, s, method, category, action, call.Params)
			} else {
				err = &ConfigurationError{Method: strings.ToUpper(method), Path: call.Endpoint}
			}

			if err != nil {
				c.logger.Debug().
					Err(err).
					Str("endpoint", call.Endpoint).
					Msg("Batch call failed")
			}

			// each goroutine owns its slot
			results[i].Result = res
			results[i].Err = err
			return nil
		})
	}

	_ = g.Wait()
	return results
}
