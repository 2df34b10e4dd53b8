// Package betaseriestest provides fakes for testing code built on the betaseries client:
// an in-memory Transport that records requests and an httptest server that speaks
// a small part of the BetaSeries API.
package betaseriestest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/s0up4200/betaseries/betaseries"
)

// HandlerFunc produces the response of a recorded request
type HandlerFunc func(req *betaseries.Request) (*betaseries.Response, error)

// Transport is a betaseries.Transport that records every request
type Transport struct {
	mu       sync.Mutex
	handler  HandlerFunc
	requests []*betaseries.Request
}

var _ betaseries.Transport = (*Transport)(nil)

// NewTransport creates a transport answering with h. A nil h answers
// every request with an empty success payload.
func NewTransport(h HandlerFunc) *Transport {
	if h == nil {
		h = Reply(http.StatusOK, `{"errors":[]}`)
	}
	return &Transport{handler: h}
}

func (t *Transport) Send(ctx context.Context, req *betaseries.Request) (*betaseries.Response, error) {
	t.mu.Lock()
	t.requests = append(t.requests, req)
	h := t.handler
	t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h(req)
}

// Handle replaces the response handler
func (t *Transport) Handle(h HandlerFunc) {
	t.mu.Lock()
	t.handler = h
	t.mu.Unlock()
}

// Requests returns the recorded requests in send order
func (t *Transport) Requests() []*betaseries.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*betaseries.Request, len(t.requests))
	copy(out, t.requests)
	return out
}

// Last returns the most recent request, or nil
func (t *Transport) Last() *betaseries.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return nil
	}
	return t.requests[len(t.requests)-1]
}

// Count returns the number of recorded requests
func (t *Transport) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// Reset forgets the recorded requests
func (t *Transport) Reset() {
	t.mu.Lock()
	t.requests = nil
	t.mu.Unlock()
}

// Reply answers with a fixed status and body
func Reply(status int, body string) HandlerFunc {
	return func(*betaseries.Request) (*betaseries.Response, error) {
		return &betaseries.Response{StatusCode: status, Body: []byte(body)}, nil
	}
}

// JSON answers with v marshaled as the body
func JSON(status int, v any) HandlerFunc {
	return func(*betaseries.Request) (*betaseries.Response, error) {
		body, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return &betaseries.Response{StatusCode: status, Body: body}, nil
	}
}

// Fail answers every request with a transport error
func Fail(err error) HandlerFunc {
	return func(*betaseries.Request) (*betaseries.Response, error) {
		return nil, err
	}
}

// ErrorPayload builds the BetaSeries error body for code and text
func ErrorPayload(code any, text string) map[string]any {
	return map[string]any{
		"errors": []any{
			map[string]any{"code": code, "text": text},
		},
	}
}
