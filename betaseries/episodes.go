package betaseries

import (
	"context"
	"net/http"
)

// ListOptions are the optional parameters of episodes/list
type ListOptions struct {
	ShowsNumber int
	Specials    bool
}

// EpisodesList lists the unwatched episodes of the member owning token
func (c *Client) EpisodesList(ctx context.Context, token string, opts *ListOptions) (Result, error) {
	params := Params{"token": token}
	if opts != nil {
		setInt(params, "showsNumber", int64(opts.ShowsNumber))
		setBool(params, "specials", opts.Specials)
	}
	return c.Do(ctx, http.MethodGet, "episodes/list", params)
}

// WatchedOptions are the optional parameters of episodes/watched
type WatchedOptions struct {
	// Bulk also marks every previous episode as watched
	Bulk bool
	// Note rates the episode from 1 to 5
	Note int
}

// EpisodesWatched marks episode id as watched
func (c *Client) EpisodesWatched(ctx context.Context, token string, id int64, opts *WatchedOptions) (Result, error) {
	params := Params{"token": token, "id": id}
	if opts != nil {
		setBool(params, "bulk", opts.Bulk)
		setInt(params, "note", int64(opts.Note))
	}
	return c.Do(ctx, http.MethodPost, "episodes/watched", params)
}

// EpisodesUnwatched marks episode id as not watched
func (c *Client) EpisodesUnwatched(ctx context.Context, token string, id int64) (Result, error) {
	return c.Do(ctx, http.MethodDelete, "episodes/watched", Params{"token": token, "id": id})
}
