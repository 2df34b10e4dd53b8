package betaseries

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resp(status int, body string) *Response {
	return &Response{StatusCode: status, Body: []byte(body)}
}

func TestDecodeSuccess(t *testing.T) {
	res, err := Decode(resp(http.StatusOK, `{"member":{"id":1,"login":"bob"},"errors":[]}`))
	require.NoError(t, err)

	member, ok := res.Object("member")
	require.True(t, ok)
	assert.Equal(t, "bob", member.String("login"))
	id, ok := member.Int("id")
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)
}

func TestDecodeWithoutErrorsMember(t *testing.T) {
	res, err := Decode(resp(http.StatusOK, `{"active":1}`))
	require.NoError(t, err)
	assert.True(t, res.Bool("active"))
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode(resp(http.StatusOK, ""))
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = Decode(resp(http.StatusOK, "  \n"))
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestDecodeHTTPError(t *testing.T) {
	_, err := Decode(resp(http.StatusNotFound, ""))

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "http error 404", err.Error())
	assert.True(t, httpErr.IsNotFound())
	assert.True(t, IsNotFound(err))
}

func TestDecodeNon2xxWithoutErrorObject(t *testing.T) {
	_, err := Decode(resp(http.StatusInternalServerError, `{"errors":[]}`))

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, `{"errors":[]}`, string(httpErr.Body))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{"invalid utf8", "{\"a\":\"\xff\"}", ReasonUTF8},
		{"truncated", `{"a":`, ReasonSyntax},
		{"garbage", `not json`, ReasonSyntax},
		{"trailing data", `{} {}`, ReasonSyntax},
		{"control character", "{\"a\":\"b\nc\"}", ReasonCtrlChar},
		{"too deep", strings.Repeat("[", MaxDepth+1) + strings.Repeat("]", MaxDepth+1), ReasonDepth},
		{"array payload", `[1,2]`, ReasonMismatch},
		{"string payload", `"ok"`, ReasonMismatch},
		{"errors is a string", `{"errors":"oops"}`, ReasonMismatch},
		{"errors entry is not an object", `{"errors":[1]}`, ReasonMismatch},
		{"error without code", `{"errors":[{"text":"x"}]}`, ReasonMismatch},
		{"number out of range", `{"a":1e400}`, ReasonUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(resp(http.StatusOK, tt.body))

			var decErr *DecodeError
			require.True(t, errors.As(err, &decErr), "got %v", err)
			assert.Equal(t, tt.reason, decErr.Reason)
		})
	}
}

func TestDecodeDepthLimitIsInclusive(t *testing.T) {
	body := strings.Repeat(`{"a":`, MaxDepth-1) + `{}` + strings.Repeat("}", MaxDepth-1)
	_, err := Decode(resp(http.StatusOK, body))
	assert.NoError(t, err)
}

func TestDecodeBracketsInStringsDoNotCount(t *testing.T) {
	body := `{"a":"` + strings.Repeat("[", MaxDepth+10) + `\"{"}`
	_, err := Decode(resp(http.StatusOK, body))
	assert.NoError(t, err)
}

func TestDecodeBetaSeriesError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		kind     Kind
		code     string
		sentinel error
		is       func(error) bool
	}{
		{"api numeric code", `{"errors":[{"code":1001,"text":"Invalid API key"}]}`, KindAPI, "1001", ErrAPI, IsAPIError},
		{"user", `{"errors":[{"code":"2001","text":"Invalid token"}]}`, KindUser, "2001", ErrUser, IsUserError},
		{"variable", `{"errors":[{"code":"3004","text":"Wrong value"}]}`, KindVariable, "3004", ErrVariable, IsVariableError},
		{"database", `{"errors":[{"code":"4002","text":"No such member"}]}`, KindDatabase, "4002", ErrDatabase, IsDatabaseError},
		{"first entry wins", `{"errors":[{"code":"2001","text":"a"},{"code":"1001","text":"b"}]}`, KindUser, "2001", ErrUser, IsUserError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Decode(resp(http.StatusBadRequest, tt.body))
			assert.Nil(t, res)

			var bsErr *BetaSeriesError
			require.True(t, errors.As(err, &bsErr))
			assert.Equal(t, tt.kind, bsErr.Kind)
			assert.Equal(t, tt.code, bsErr.Code)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.True(t, tt.is(err))
			assert.True(t, IsBetaSeriesError(err))
		})
	}
}

func TestDecodeGenericError(t *testing.T) {
	_, err := Decode(resp(http.StatusOK, `{"errors":[{"code":"9001","text":"Something"}]}`))

	var bsErr *BetaSeriesError
	require.True(t, errors.As(err, &bsErr))
	assert.Equal(t, KindGeneric, bsErr.Kind)
	assert.Equal(t, "betaseries generic error 9001: Something", err.Error())
	for _, sentinel := range []error{ErrAPI, ErrUser, ErrVariable, ErrDatabase} {
		assert.NotErrorIs(t, err, sentinel)
	}
}

func TestDecodeErrorOn2xx(t *testing.T) {
	res, err := Decode(resp(http.StatusOK, `{"member":{},"errors":[{"code":"2001","text":"x"}]}`))
	assert.Nil(t, res)
	assert.True(t, IsUserError(err))
}

func TestDecodeLegacyErrorObject(t *testing.T) {
	res, legacy, err := decode(resp(http.StatusOK, `{"errors":{"code":"2005","text":"Old shape"}}`))
	assert.Nil(t, res)
	assert.True(t, legacy)
	assert.True(t, IsUserError(err))

	_, legacy, err = decode(resp(http.StatusOK, `{"errors":{}}`))
	assert.NoError(t, err)
	assert.False(t, legacy)
}
