// Package sotah provides an HTTP client for the sotah realm and pricelist API.
//
// # Overview
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the API schema
//
// # Client Usage
//
//	client, err := sotah.NewClient("https://api.sotah.info")
//	if err != nil {
//		return err
//	}
//
//	boot, err := client.Boot(ctx)
//	realms, err := client.Realms(ctx, boot.Regions[0].Name)
//
// # Endpoints
//
//   - GET /ping: availability probe
//   - GET /boot: regions, item classes, professions, expansions
//   - GET /region/{name}/realms: realm status list for one region
//   - POST /login, POST /users: credential exchange, returns a Profile
//   - GET /user: the user owning the bearer token
//   - GET, PUT /user/preferences: stored region/realm preference
//   - GET /user/pricelists/region/{region}/realm/{realm}: user pricelists
//
// # Request Handling
//
// All requests carry Accept: application/json, a realmboard User-Agent and a
// fresh X-Request-ID so individual calls can be traced in server logs.
// Authenticated calls send the token as a bearer Authorization header.
//
// # Error Handling
//
//   - 401 responses wrap ErrUnauthorized (check with errors.Is)
//   - a 404 from GET /user/preferences means "no preference stored" and is
//     returned as (nil, nil)
//   - other 4xx/5xx responses return "api <path> returned status N"
//   - malformed JSON returns a "decode response" error
//
// The client performs no retries and caches nothing. Retry policy belongs
// to the caller (see internal/app).
//
// # Ordering
//
// List payloads (regions, realms, pricelists) are returned exactly in the
// order the server delivered them. Consumers must not assume any intrinsic
// ordering such as alphabetical.
package sotah
