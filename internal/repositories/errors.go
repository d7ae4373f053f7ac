package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/campusnet/backend/internal/apperrors"
)

const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a MySQL unique-constraint violation.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// translate maps store-level errors onto the shared taxonomy. Duplicate-key
// failures become Conflict so callers can treat them as "already exists";
// missing rows become NotFound; anything else is Internal.
func translate(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if notFoundMsg == "" {
			notFoundMsg = "record not found"
		}
		return apperrors.Wrap(apperrors.NotFound, notFoundMsg, err)
	case isDuplicateEntry(err):
		if conflictMsg == "" {
			conflictMsg = "duplicate entry"
		}
		return apperrors.Wrap(apperrors.Conflict, conflictMsg, err)
	default:
		return apperrors.Wrap(apperrors.Internal, "database error", err)
	}
}
