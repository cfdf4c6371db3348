package sql

import (
	"errors"

	"github.com/lib/pq"
)

const uniqueViolationCode pq.ErrorCode = "23505"

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}
