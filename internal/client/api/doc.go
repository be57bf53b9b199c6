// Package api contains the transport layer of the Orbitar client.
//
// # Overview
//
// The package provides:
//  1. Client, the single request primitive: POST a JSON payload to a route
//     and decode the success-or-error envelope. The client carries the
//     session token across calls (persisting replacements through a
//     SessionStore) and keeps a clock-skew correction derived from the
//     server timestamps riding on success envelopes.
//  2. Typed route groups over the transport: AuthAPI, PostAPI and VoteAPI,
//     together with the wire entities they exchange.
//
// # Error Handling
//
// Application errors (a well-formed error envelope, or HTTP 429 which is
// mapped to the "rate-limit" code unconditionally) come back as *APIError
// and can be matched with AsAPIError/HasCode. Everything else (connection
// failures, timeouts, non-JSON bodies) is a network-kind error; use
// IsNetworkError to distinguish the two. Only network-kind errors are ever
// retried.
//
// # Concurrency
//
// Client is safe for concurrent use. All operations accept context.Context
// and honor cancellation.
package api
