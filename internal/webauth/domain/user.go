//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "UserRepository=UserRepository"
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with the same email already exists")
)

type (
	User struct {
		ID           UserID
		Name         string
		Email        string
		PasswordHash string
		CreatedAt    time.Time
	}

	// UserRepository stores users, Store fails with ErrUserAlreadyExists when the email is taken.
	UserRepository interface {
		NextID() UserID
		Store(context.Context, *User) error
		FindOne(context.Context, FindUserSpecification) (*User, error)
	}

	FindUserSpecification struct {
		IDs    []UserID
		Emails []string
	}

	UserID struct{ uuid.UUID }
)
