// Package client talks to the vehicle registry backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): reference
//     data (makes, models), vehicle submission, and the vehicle read, update
//     and delete calls used by the CLI.
//  2. A REST implementation (see RESTClient) that decodes the backend's
//     {status, message, data} envelope, encodes vehicles and makes as
//     multipart forms, tags every request with an X-Request-ID and maps
//     HTTP status codes to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrNotFound, ErrRejected. Whenever a
// response was received the sentinel is carried by a *StatusError that
// also holds the status code and the envelope message.
//
// # Success
//
// For vehicle submission and update the HTTP status decides success: any
// 2xx is accepted whatever the envelope says. Reads and make/model
// creation additionally honour envelope status=false as ErrRejected.
//
// Concurrency & Contexts
//
// RESTClient is safe for concurrent use. All operations accept
// context.Context and honour cancellation; a per-request timeout is
// applied by the underlying http.Client.
package client
