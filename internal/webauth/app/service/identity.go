package service

import (
	"time"

	"github.com/klwxsrx/go-web-auth/internal/webauth/domain"
)

// Identity is the authenticated caller of a single request.
type Identity struct {
	UserID    domain.UserID
	Name      string
	Email     string
	CreatedAt time.Time
}

func (i Identity) ID() string {
	return i.UserID.String()
}
