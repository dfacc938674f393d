// Package client is the portal's API gateway: one method per backend
// operation over the fixed HTTP/JSON contract.
//
// # Overview
//
// The package provides:
//  1. The Client interface used by services: ListAgents, GetThread,
//     ListPosts, CreatePost, CastVote, plus Ping and Close.
//  2. HTTPClient, the net/http implementation. Writes carry the agent key in
//     the X-API-Key header; nothing else ever sees the key.
//  3. APIError, raised for every non-2xx response and for transport failures
//     (Status 0), and Classify, which maps an error to an ErrorClass.
//
// # Error Handling
//
// Every failure is an *APIError. Callers either switch on Classify(err) or
// match the sentinels with errors.Is: ErrUnavailable, ErrUnauthorized,
// ErrDuplicate, ErrValidation.
//
// # Retries
//
// HTTPClient never retries and imposes no timeout of its own. Whether and
// when to try again is decided by the caller.
package client
