package betaseries

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/s0up4200/betaseries/schema"
)

// Common errors
var (
	// ErrMissingAPIKey indicates a client built without an API key
	ErrMissingAPIKey = errors.New("betaseries API key is required")
	// ErrUnknownEndpoint indicates a (method, category, action) triple with no registered endpoint
	ErrUnknownEndpoint = errors.New("unknown API command")
	// ErrEmptyResponse indicates a successful response without a body
	ErrEmptyResponse = errors.New("empty response")

	// ErrAPI matches BetaSeries errors with codes 1xxx
	ErrAPI = errors.New("betaseries API error")
	// ErrUser matches BetaSeries errors with codes 2xxx
	ErrUser = errors.New("betaseries user error")
	// ErrVariable matches BetaSeries errors with codes 3xxx
	ErrVariable = errors.New("betaseries variable error")
	// ErrDatabase matches BetaSeries errors with codes 4xxx
	ErrDatabase = errors.New("betaseries database error")
)

// ConfigurationError is returned when a call names an endpoint that isn't registered
type ConfigurationError struct {
	Method string
	Path   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("the API command %s %s doesn't exist", e.Method, e.Path)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrUnknownEndpoint
}

// ValidationError carries every violation found for a call's parameters.
// No request is sent when it is returned.
type ValidationError struct {
	Method     string
	Path       string
	Violations schema.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameters for %s %s: %s", e.Method, e.Path, e.Violations.Error())
}

func (e *ValidationError) Unwrap() error {
	return schema.ErrInvalid
}

// HTTPError is returned for a non-2xx response that carries no BetaSeries error object
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d", e.StatusCode)
}

// IsNotFound checks if the error indicates a not found response
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Reasons reported by DecodeError
const (
	ReasonDepth     = "Maximum stack depth exceeded"
	ReasonMismatch  = "Underflow or the modes mismatch"
	ReasonCtrlChar  = "Unexpected control character found"
	ReasonSyntax    = "Syntax error, malformed JSON"
	ReasonUTF8      = "Malformed UTF-8 characters, possibly incorrectly encoded"
	ReasonUndefined = "Unknown error"
)

// DecodeError is returned when a response body isn't a usable JSON object
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	return "invalid JSON response: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Kind classifies a BetaSeries error code
type Kind int

const (
	KindGeneric Kind = iota
	KindAPI
	KindUser
	KindVariable
	KindDatabase
)

func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindUser:
		return "user"
	case KindVariable:
		return "variable"
	case KindDatabase:
		return "database"
	default:
		return "generic"
	}
}

// kindOf selects the kind from the first digit of code
func kindOf(code string) Kind {
	if code == "" {
		return KindGeneric
	}
	switch code[0] {
	case '1':
		return KindAPI
	case '2':
		return KindUser
	case '3':
		return KindVariable
	case '4':
		return KindDatabase
	default:
		return KindGeneric
	}
}

// BetaSeriesError is an error object reported by the API itself
type BetaSeriesError struct {
	Kind Kind
	Code string
	Text string
}

func (e *BetaSeriesError) Error() string {
	return fmt.Sprintf("betaseries %s error %s: %s", e.Kind, e.Code, e.Text)
}

// Is matches the sentinel of the error's kind
func (e *BetaSeriesError) Is(target error) bool {
	switch target {
	case ErrAPI:
		return e.Kind == KindAPI
	case ErrUser:
		return e.Kind == KindUser
	case ErrVariable:
		return e.Kind == KindVariable
	case ErrDatabase:
		return e.Kind == KindDatabase
	}
	return false
}

// TransportError wraps a failure of the underlying transport
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error omits the query string, which may hold the member token
func (e *TransportError) Error() string {
	path, _, _ := strings.Cut(e.URL, "?")
	return fmt.Sprintf("%s %s: %v", e.Method, path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err is a BetaSeries API error (1xxx)
func IsAPIError(err error) bool {
	return errors.Is(err, ErrAPI)
}

// IsUserError reports whether err is a BetaSeries user error (2xxx)
func IsUserError(err error) bool {
	return errors.Is(err, ErrUser)
}

// IsVariableError reports whether err is a BetaSeries variable error (3xxx)
func IsVariableError(err error) bool {
	return errors.Is(err, ErrVariable)
}

// IsDatabaseError reports whether err is a BetaSeries database error (4xxx)
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// IsBetaSeriesError reports whether err carries an error object from the API
func IsBetaSeriesError(err error) bool {
	var bsErr *BetaSeriesError
	return errors.As(err, &bsErr)
}

// IsValidationError reports whether err was raised before sending, by parameter validation
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// IsConfigurationError reports whether err names an unregistered endpoint
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownEndpoint)
}

// IsNotFound reports whether err is an HTTP 404
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.IsNotFound()
}
