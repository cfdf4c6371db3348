package auth

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrPermissionDenied = errors.New("permission denied")
)

type (
	Provider[T Principal] interface {
		Authenticate(context.Context, Token) (Result[T], error)
	}

	Token string

	// Result carries the authentication and whether the presented token must be revoked on the client.
	Result[T Principal] struct {
		Authentication[T]
		RevokeToken bool
	}

	Authentication[T Principal] interface {
		IsAuthenticated() bool
		Principal() *T
	}

	Principal interface {
		ID() string
	}

	Auth[T Principal] struct {
		AuthPrincipal *T
	}
)

func (a Auth[T]) IsAuthenticated() bool {
	return a.AuthPrincipal != nil
}

func (a Auth[T]) Principal() *T {
	return a.AuthPrincipal
}
