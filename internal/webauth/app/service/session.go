package service

import (
	"context"
	"errors"

	"github.com/klwxsrx/go-web-auth/internal/webauth/app/session"
	"github.com/klwxsrx/go-web-auth/internal/webauth/domain"
	"github.com/klwxsrx/go-web-auth/pkg/log"
)

type (
	SessionResolver interface {
		Resolve(ctx context.Context, token *session.Token) (Resolution, error)
	}

	// Resolution has a nil Identity for anonymous callers.
	// ClearCookie asks the caller to replace the presented token with an expired cookie.
	Resolution struct {
		Identity    *Identity
		ClearCookie bool
	}

	sessionResolver struct {
		userRepo   domain.UserRepository
		tokenCodec session.TokenCodec
		logger     log.Logger
	}
)

func NewSessionResolver(
	userRepo domain.UserRepository,
	tokenCodec session.TokenCodec,
	logger log.Logger,
) SessionResolver {
	return &sessionResolver{
		userRepo:   userRepo,
		tokenCodec: tokenCodec,
		logger:     logger,
	}
}

func (s *sessionResolver) Resolve(ctx context.Context, token *session.Token) (Resolution, error) {
	if token == nil || *token == "" {
		return Resolution{}, nil
	}

	claims, err := s.tokenCodec.Verify(*token)
	if err != nil {
		return Resolution{ClearCookie: true}, nil
	}

	// A valid token of a deleted user stays in the browser until it expires.
	user, err := s.userRepo.FindOne(ctx, domain.FindUserSpecification{IDs: []domain.UserID{claims.Subject}})
	if errors.Is(err, domain.ErrUserNotFound) {
		return Resolution{}, nil
	}
	if err != nil {
		s.logger.WithError(err).
			WithField("userID", claims.Subject.String()).
			Warn(ctx, "failed to find session user, session is dropped")
		return Resolution{ClearCookie: true}, nil
	}

	return Resolution{
		Identity: &Identity{
			UserID:    user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
