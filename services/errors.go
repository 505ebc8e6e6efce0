package services

import (
	"errors"

	"github.com/go-sql-driver/mysql"

	"room-reservation/apperrors"
)

// MySQL server error numbers we classify.
const (
	mysqlDuplicateEntry   = 1062
	mysqlRowIsReferenced  = 1451
	mysqlRowIsReferenced2 = 1217
	mysqlNoReferencedRow  = 1452
)

// storeError wraps a failure from the store into a coded AppError.
func storeError(err error, message string) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return apperrors.Wrap(err, apperrors.CodeDuplicate, message)
		case mysqlRowIsReferenced, mysqlRowIsReferenced2, mysqlNoReferencedRow:
			return apperrors.Wrap(err, apperrors.CodeForeignKey, message)
		}
	}
	return apperrors.Wrap(err, apperrors.CodeStore, message)
}
