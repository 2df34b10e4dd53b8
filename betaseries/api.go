package betaseries

import "context"

// API defines the generic BetaSeries operations
type API interface {
	// Do resolves, validates and sends a call to a registered endpoint
	Do(ctx context.Context, method, endpoint string, params Params) (Result, error)

	Get(ctx context.Context, endpoint string, params Params) (Result, error)
	Post(ctx context.Context, endpoint string, params Params) (Result, error)
	Delete(ctx context.Context, endpoint string, params Params) (Result, error)

	// Batch sends independent calls concurrently
	Batch(ctx context.Context, calls []Call) []BatchResult
}

// MembersAPI defines the typed members operations
type MembersAPI interface {
	MembersAuth(ctx context.Context, login, md5Password string) (Result, error)
	MembersIsActive(ctx context.Context, token string) (Result, error)
	MembersBadges(ctx context.Context, token string, id int64) (Result, error)
	MembersInfos(ctx context.Context, id int64, only string, opts *InfosOptions) (Result, error)
}

var (
	_ API        = (*Client)(nil)
	_ MembersAPI = (*Client)(nil)
)
