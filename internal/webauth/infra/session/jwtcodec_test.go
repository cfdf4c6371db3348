package session_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/go-web-auth/internal/webauth/app/session"
	"github.com/klwxsrx/go-web-auth/internal/webauth/domain"
	infrasession "github.com/klwxsrx/go-web-auth/internal/webauth/infra/session"
)

var secret = []byte("test-secret")

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	c := &clock{now: time.Date(2024, 5, 1, 12, 0, 0, 500, time.UTC)}
	codec := infrasession.NewJWTCodec(secret, infrasession.WithClock(c.Now))
	userID := domain.UserID{UUID: uuid.New()}

	data, err := codec.Sign(userID)
	require.NoError(t, err)
	assert.Equal(t, userID, data.Claims.Subject)
	assert.Equal(t, session.TTL, data.Claims.ExpiresAt.Sub(data.Claims.IssuedAt))

	claims, err := codec.Verify(data.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.True(t, data.Claims.ExpiresAt.Equal(claims.ExpiresAt))

	c.now = c.now.Add(session.TTL - time.Second)
	_, err = codec.Verify(data.Token)
	assert.NoError(t, err)

	c.now = c.now.Add(time.Second)
	_, err = codec.Verify(data.Token)
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}

func TestJWTCodec_Verify_Rejects(t *testing.T) {
	now := time.Now()
	codec := infrasession.NewJWTCodec(secret, infrasession.WithClock(func() time.Time { return now }))
	userID := domain.UserID{UUID: uuid.New()}

	valid, err := codec.Sign(userID)
	require.NoError(t, err)

	foreign, err := infrasession.NewJWTCodec([]byte("other-secret")).Sign(userID)
	require.NoError(t, err)

	other, err := codec.Sign(domain.UserID{UUID: uuid.New()})
	require.NoError(t, err)
	validParts := strings.Split(string(valid.Token), ".")
	otherParts := strings.Split(string(other.Token), ".")
	tampered := session.Token(strings.Join([]string{validParts[0], otherParts[1], validParts[2]}, "."))

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) session.Token {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return session.Token(token)
	}
	issuedAt := jwt.NewNumericDate(now)
	expiresAt := jwt.NewNumericDate(now.Add(time.Hour))

	tests := []struct {
		name  string
		token session.Token
	}{
		{"empty", ""},
		{"malformed", "not.a.token"},
		{"tampered_payload", tampered},
		{"foreign_secret", foreign.Token},
		{"wrong_algorithm", sign(jwt.SigningMethodHS512, secret, jwt.RegisteredClaims{
			Subject: userID.String(), IssuedAt: issuedAt, ExpiresAt: expiresAt,
		})},
		{"unsigned", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.RegisteredClaims{
			Subject: userID.String(), IssuedAt: issuedAt, ExpiresAt: expiresAt,
		})},
		{"missing_expiration", sign(jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
			Subject: userID.String(), IssuedAt: issuedAt,
		})},
		{"invalid_subject", sign(jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
			Subject: "admin", IssuedAt: issuedAt, ExpiresAt: expiresAt,
		})},
		{"issued_in_future", sign(jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
			Subject: userID.String(), IssuedAt: jwt.NewNumericDate(now.Add(time.Hour)), ExpiresAt: expiresAt,
		})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Verify(tc.token)
			assert.ErrorIs(t, err, session.ErrInvalidToken)
			if err != nil {
				assert.NotContains(t, err.Error(), string(secret))
			}
		})
	}
}
