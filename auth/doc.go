// Package auth composes the authentication core of the ledger service.
//
// Subpackages:
//
//   - auth/password  salted PBKDF2-HMAC-SHA256 credentials
//   - auth/token     HS256 session tokens with iat/exp
//   - auth/gate      cookie transport and the gin middleware that guards routes
//   - auth/authctx   claims in the request context
//   - auth/throttle  login attempt limits (Redis or in-memory)
//
// The password and token packages are independent of each other; the gate
// depends on the token package only, through its Verifier interface.
//
// Config follows the usual ApplyDefaults/Validate convention. A missing secret
// fails validation with a MISSING_SECRET error and the process must not start.
package auth
