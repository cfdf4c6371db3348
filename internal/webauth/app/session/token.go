//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "TokenCodec=TokenCodec"
package session

import (
	"errors"
	"time"

	"github.com/klwxsrx/go-web-auth/internal/webauth/domain"
)

// TTL is the token lifetime and the max age of the cookie carrying it, a token never outlives its cookie.
const TTL = 24 * time.Hour

var ErrInvalidToken = errors.New("token is invalid or expired")

type (
	TokenCodec interface {
		Sign(domain.UserID) (TokenData, error)
		Verify(Token) (Claims, error)
	}

	TokenData struct {
		Token  Token
		Claims Claims
	}

	Claims struct {
		Subject   domain.UserID
		IssuedAt  time.Time
		ExpiresAt time.Time
	}

	Token string
)
