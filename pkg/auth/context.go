package auth

import (
	"context"
	"errors"
)

const authenticationContextKey contextKey = iota

type contextKey int

var errAuthenticationNotFound = errors.New("authentication not found")

type authenticated interface {
	IsAuthenticated() bool
}

func WithAuthentication[T Principal](ctx context.Context, auth Authentication[T]) context.Context {
	return context.WithValue(ctx, authenticationContextKey, auth)
}

func GetAuthentication[T Principal](ctx context.Context) (Authentication[T], bool) {
	authentication, ok := ctx.Value(authenticationContextKey).(Authentication[T])
	return authentication, ok
}

func IsAuthenticated(ctx context.Context) (bool, error) {
	result, ok := ctx.Value(authenticationContextKey).(authenticated)
	if !ok {
		return false, errAuthenticationNotFound
	}

	return result.IsAuthenticated(), nil
}
