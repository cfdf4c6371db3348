package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klwxsrx/go-web-auth/internal/webauth/app/encoding"
	"github.com/klwxsrx/go-web-auth/internal/webauth/app/session"
	"github.com/klwxsrx/go-web-auth/internal/webauth/domain"
	"github.com/klwxsrx/go-web-auth/pkg/log"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type (
	// Authentication returns ErrEmailTaken, ErrInvalidCredentials and ValidationErrors as expected outcomes,
	// any other error is unexpected.
	Authentication interface {
		Register(context.Context, Registration) (SessionTokenData, error)
		Login(context.Context, Credentials) (SessionTokenData, error)
	}

	Registration struct {
		Name     string
		Email    string
		Password string
	}

	Credentials struct {
		Email    string
		Password string
	}

	SessionTokenData struct {
		Token     session.Token
		UserID    domain.UserID
		ExpiresAt time.Time
	}

	authenticationService struct {
		userRepo       domain.UserRepository
		tokenCodec     session.TokenCodec
		passwordHasher encoding.PasswordHasher
		logger         log.Logger
	}
)

func NewAuthentication(
	userRepo domain.UserRepository,
	tokenCodec session.TokenCodec,
	passwordHasher encoding.PasswordHasher,
	logger log.Logger,
) Authentication {
	return &authenticationService{
		userRepo:       userRepo,
		tokenCodec:     tokenCodec,
		passwordHasher: passwordHasher,
		logger:         logger,
	}
}

func (s *authenticationService) Register(ctx context.Context, in Registration) (SessionTokenData, error) {
	in = normalizeRegistration(in)
	if errs := validateRegistration(in); len(errs) > 0 {
		return SessionTokenData{}, errs
	}

	_, err := s.userRepo.FindOne(ctx, domain.FindUserSpecification{Emails: []string{in.Email}})
	if err == nil {
		return SessionTokenData{}, ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return SessionTokenData{}, fmt.Errorf("find user by email: %w", err)
	}

	passwordHash, err := s.passwordHasher.Hash(in.Password)
	if err != nil {
		return SessionTokenData{}, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           s.userRepo.NextID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.userRepo.Store(ctx, user)
	if errors.Is(err, domain.ErrUserAlreadyExists) {
		return SessionTokenData{}, ErrEmailTaken
	}
	if err != nil {
		return SessionTokenData{}, fmt.Errorf("store user: %w", err)
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return SessionTokenData{}, err
	}

	s.logger.WithField("userID", user.ID.String()).Info(ctx, "user registered")
	return token, nil
}

func (s *authenticationService) Login(ctx context.Context, in Credentials) (SessionTokenData, error) {
	in.Email = normalizeEmail(in.Email)
	if !isEmail(in.Email) || in.Password == "" {
		return SessionTokenData{}, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindOne(ctx, domain.FindUserSpecification{Emails: []string{in.Email}})
	if errors.Is(err, domain.ErrUserNotFound) {
		return SessionTokenData{}, ErrInvalidCredentials
	}
	if err != nil {
		return SessionTokenData{}, fmt.Errorf("find user by email: %w", err)
	}

	if !s.passwordHasher.Verify(in.Password, user.PasswordHash) {
		return SessionTokenData{}, ErrInvalidCredentials
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return SessionTokenData{}, err
	}

	s.logger.WithField("userID", user.ID.String()).Info(ctx, "user logged in")
	return token, nil
}

func (s *authenticationService) signToken(userID domain.UserID) (SessionTokenData, error) {
	token, err := s.tokenCodec.Sign(userID)
	if err != nil {
		return SessionTokenData{}, fmt.Errorf("sign session token: %w", err)
	}

	return SessionTokenData{
		Token:     token.Token,
		UserID:    userID,
		ExpiresAt: token.Claims.ExpiresAt,
	}, nil
}
