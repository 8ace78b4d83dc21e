// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. The API gateway contract (see the Client interface): authentication,
//     OTP password recovery, profile, avatar and learning content calls.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that injects the bearer
//     token from a TokenSource, tags every request with an X-Request-ID and
//     maps transport failures to sentinel errors.
//  3. An OpenAI-compatible chat client for the tutor endpoint (NewChatClient).
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Network failures and timeouts wrap ErrUnavailable; undecodable 2xx bodies
// wrap ErrMalformedResponse; non-2xx responses are *StatusError, which also
// matches ErrUnauthorized for 401/403. A decoded envelope with success=false
// is not an error at this layer.
package client
