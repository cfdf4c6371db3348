package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/klwxsrx/go-web-auth/internal/webauth/app/session"
	"github.com/klwxsrx/go-web-auth/internal/webauth/domain"
)

type (
	JWTCodecOption func(*jwtCodec)

	jwtCodec struct {
		secret []byte
		now    func() time.Time
		parser *jwt.Parser
	}
)

func NewJWTCodec(secret []byte, opts ...JWTCodecOption) session.TokenCodec {
	codec := &jwtCodec{
		secret: secret,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(codec)
	}

	codec.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(codec.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	return codec
}

func WithClock(now func() time.Time) JWTCodecOption {
	return func(c *jwtCodec) {
		c.now = now
	}
}

func (c *jwtCodec) Sign(userID domain.UserID) (session.TokenData, error) {
	issuedAt := jwt.NewNumericDate(c.now())
	expiresAt := jwt.NewNumericDate(issuedAt.Add(session.TTL))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}).SignedString(c.secret)
	if err != nil {
		return session.TokenData{}, fmt.Errorf("sign token: %w", err)
	}

	return session.TokenData{
		Token: session.Token(token),
		Claims: session.Claims{
			Subject:   userID,
			IssuedAt:  issuedAt.Time,
			ExpiresAt: expiresAt.Time,
		},
	}, nil
}

func (c *jwtCodec) Verify(token session.Token) (session.Claims, error) {
	var claims jwt.RegisteredClaims
	parsed, err := c.parser.ParseWithClaims(string(token), &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return session.Claims{}, fmt.Errorf("%w: %w", session.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return session.Claims{}, session.ErrInvalidToken
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return session.Claims{}, fmt.Errorf("%w: invalid subject: %w", session.ErrInvalidToken, err)
	}
	if claims.IssuedAt == nil {
		return session.Claims{}, fmt.Errorf("%w: %w", session.ErrInvalidToken, errMissingIssuedAt)
	}

	return session.Claims{
		Subject:   domain.UserID{UUID: subject},
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

var errMissingIssuedAt = errors.New("issued at is missing")
