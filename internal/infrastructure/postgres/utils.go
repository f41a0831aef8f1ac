package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgErrCode extracts the SQLSTATE code of a PostgreSQL error, or "" when the
// error did not come from the server.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation reports a unique constraint violation (23505). Code and
// NIP uniqueness rely on partial indexes over non-deleted rows.
func isUniqueViolation(err error) bool {
	return pgErrCode(err) == "23505"
}

// isForeignKeyViolation reports a foreign key violation (23503). Movement and
// attachment inserts hit this when the parent row disappears mid-request.
func isForeignKeyViolation(err error) bool {
	return pgErrCode(err) == "23503"
}
