package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

const (
	ErrCodeDuplicateEntry = 1062
)

// isViolationOfConstraint reports whether err is a duplicate entry on the named unique key.
func isViolationOfConstraint(err error, constraintName string) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}

	return mysqlErr.Number == ErrCodeDuplicateEntry && strings.Contains(mysqlErr.Message, constraintName)
}
