package betaseries

import (
	"context"
	"net/http"
)

// DisplayOptions selects the show for shows/display. Set ID or TheTVDBID.
type DisplayOptions struct {
	ID        int64
	TheTVDBID int64
	Token     string
}

// ShowsDisplay returns a show
func (c *Client) ShowsDisplay(ctx context.Context, opts DisplayOptions) (Result, error) {
	params := Params{}
	setInt(params, "id", opts.ID)
	setInt(params, "thetvdb_id", opts.TheTVDBID)
	setString(params, "token", opts.Token)
	return c.Do(ctx, http.MethodGet, "shows/display", params)
}

// SearchOptions are the optional parameters of shows/search
type SearchOptions struct {
	Summary bool
	// Order is one of "title", "popularity" or "followers"
	Order   string
	PerPage int
	Page    int
}

// ShowsSearch searches shows by title
func (c *Client) ShowsSearch(ctx context.Context, title string, opts *SearchOptions) (Result, error) {
	params := Params{"title": title}
	if opts != nil {
		setBool(params, "summary", opts.Summary)
		setString(params, "order", opts.Order)
		setInt(params, "nbpp", int64(opts.PerPage))
		setInt(params, "page", int64(opts.Page))
	}
	return c.Do(ctx, http.MethodGet, "shows/search", params)
}

// ShowsAdd adds show id to the member's account
func (c *Client) ShowsAdd(ctx context.Context, token string, id int64) (Result, error) {
	return c.Do(ctx, http.MethodPost, "shows/show", Params{"token": token, "id": id})
}

// ShowsRemove removes show id from the member's account
func (c *Client) ShowsRemove(ctx context.Context, token string, id int64) (Result, error) {
	return c.Do(ctx, http.MethodDelete, "shows/show", Params{"token": token, "id": id})
}
