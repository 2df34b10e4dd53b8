package betaseries

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"strings"
)

// HashPassword returns the lowercase hex MD5 digest expected by members/auth
func HashPassword(plain string) string {
	sum := md5.Sum([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// MembersAuth authenticates a member. md5Password is the HashPassword digest, not the plain password.
func (c *Client) MembersAuth(ctx context.Context, login, md5Password string) (Result, error) {
	return c.Do(ctx, http.MethodPost, "members/auth", Params{
		"login":    login,
		"password": md5Password,
	})
}

// MembersAccessToken exchanges an OAuth authorization code for a member token
func (c *Client) MembersAccessToken(ctx context.Context, clientID, clientSecret, redirectURI, code string) (Result, error) {
	return c.Do(ctx, http.MethodPost, "members/access_token", Params{
		"client_id":     clientID,
		"client_secret": clientSecret,
		"redirect_uri":  redirectURI,
		"code":          code,
	})
}

// MembersBadges lists the badges of member id
func (c *Client) MembersBadges(ctx context.Context, token string, id int64) (Result, error) {
	return c.Do(ctx, http.MethodGet, "members/badges", Params{
		"token": token,
		"id":    id,
	})
}

// InfosOptions are the optional parameters of members/infos
type InfosOptions struct {
	Token   string
	Summary bool
}

// MembersInfos returns the information of member id restricted to only ("movies" or "shows")
func (c *Client) MembersInfos(ctx context.Context, id int64, only string, opts *InfosOptions) (Result, error) {
	params := Params{
		"id":   id,
		"only": only,
	}
	if opts != nil {
		setString(params, "token", opts.Token)
		setBool(params, "summary", opts.Summary)
	}
	return c.Do(ctx, http.MethodGet, "members/infos", params)
}

// MembersIsActive checks that token is still valid
func (c *Client) MembersIsActive(ctx context.Context, token string) (Result, error) {
	return c.Do(ctx, http.MethodGet, "members/is_active", Params{"token": token})
}

// NotificationsOptions are the optional parameters of members/notifications
type NotificationsOptions struct {
	SinceID    int64
	Number     int
	Sort       string
	Types      []string
	AutoDelete bool
}

// MembersNotifications lists the notifications of the member owning token
func (c *Client) MembersNotifications(ctx context.Context, token string, opts *NotificationsOptions) (Result, error) {
	params := Params{"token": token}
	if opts != nil {
		setInt(params, "since_id", opts.SinceID)
		setInt(params, "number", int64(opts.Number))
		setString(params, "sort", opts.Sort)
		setString(params, "types", strings.Join(opts.Types, ","))
		setBool(params, "auto_delete", opts.AutoDelete)
	}
	return c.Do(ctx, http.MethodGet, "members/notifications", params)
}

// MembersLost sends a password reset email. find is a login or an email address.
func (c *Client) MembersLost(ctx context.Context, find string) (Result, error) {
	return c.Do(ctx, http.MethodPost, "members/lost", Params{"find": find})
}

// MembersDestroy ends the session of token
func (c *Client) MembersDestroy(ctx context.Context, token string) (Result, error) {
	return c.Do(ctx, http.MethodPost, "members/destroy", Params{"token": token})
}

// MembersDeleteAvatar removes the avatar of the member owning token
func (c *Client) MembersDeleteAvatar(ctx context.Context, token string) (Result, error) {
	return c.Do(ctx, http.MethodDelete, "members/avatar", Params{"token": token})
}

// zero values are left out so optional fields stay unset

func setString(p Params, key, v string) {
	if v != "" {
		p[key] = v
	}
}

func setInt(p Params, key string, v int64) {
	if v != 0 {
		p[key] = v
	}
}

func setBool(p Params, key string, v bool) {
	if v {
		p[key] = v
	}
}
