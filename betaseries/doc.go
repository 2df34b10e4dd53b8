// Package betaseries is a client for the BetaSeries REST API.
//
// Every remote command is an Endpoint registered in a Registry with the schema of
// the parameters it accepts. A call goes through the same steps whichever entry
// point is used:
//
//  1. the (method, category, action) triple is resolved in the registry;
//     an unknown triple is a *ConfigurationError
//  2. the parameters are validated against the endpoint schema; any violation
//     is a *ValidationError and nothing is sent
//  3. the request is built: API version, key, user agent and optional member
//     token headers; query string for GET and DELETE, form body for POST
//  4. the Transport sends it; an I/O failure is a *TransportError
//  5. the body is decoded into a Result or an error
//
// Errors reported by the API itself are *BetaSeriesError values whose Kind
// follows the first digit of the error code:
//
//	1xxx  ErrAPI
//	2xxx  ErrUser
//	3xxx  ErrVariable
//	4xxx  ErrDatabase
//
// Basic usage:
//
//	client := betaseries.New(apiKey, betaseries.WithLogger(logger))
//	res, err := client.MembersAuth(ctx, "login", betaseries.HashPassword("secret"))
//	if err != nil {
//		return err
//	}
//	client.SetToken(res.String("token"))
//
// Generic calls use the "<category>/<action>" form:
//
//	res, err := client.Get(ctx, "members/badges", betaseries.Params{
//		"token": client.Token(),
//		"id":    1,
//	})
//
// There is no caching, retrying, rate limiting or pagination.
package betaseries
