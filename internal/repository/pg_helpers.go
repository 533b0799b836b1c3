package repository

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is postgres's SQLSTATE for a unique-index conflict.
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err came from a violated unique index,
// the signal every dedup-on-insert repository method swallows into a bool.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}
