// Package authctx carries the authenticated identity through a request context.
package authctx

import (
	"context"
	"errors"
)

type claimsKey struct{}

// ErrNoClaims is returned when the context holds no identity of the requested type.
var ErrNoClaims = errors.New("authctx: no claims in context")

// Set returns a copy of ctx carrying claims.
func Set(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// Get returns the claims stored in ctx if they are of type T.
func Get[T any](ctx context.Context) (T, bool) {
	claims, ok := ctx.Value(claimsKey{}).(T)
	return claims, ok
}

// GetOrError is Get returning ErrNoClaims instead of a bool.
func GetOrError[T any](ctx context.Context) (T, error) {
	claims, ok := Get[T](ctx)
	if !ok {
		return claims, ErrNoClaims
	}
	return claims, nil
}
