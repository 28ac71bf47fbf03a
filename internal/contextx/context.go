// Package contextx holds the request-scoped context keys shared between the
// auth middleware and the module handlers.
package contextx

// Key is a private type to avoid collisions in request context keys.
type Key string

// UserIDKey carries the authenticated user's ID (string). Set by the session
// middleware; absent on anonymous requests.
const UserIDKey Key = "userID"

// SessionIDKey carries the opaque session token of the current request
// (string). Logout uses it to revoke exactly the presented session.
const SessionIDKey Key = "sessionID"
