package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "items_code_active_idx"}
	assert.Equal(t, "23505", pgErrCode(pgErr))
	assert.Equal(t, "23505", pgErrCode(fmt.Errorf("insert item: %w", pgErr)), "wrapped errors unwrap")
	assert.Equal(t, "", pgErrCode(errors.New("dial tcp: connection refused")))
}

func TestConstraintViolationHelpers(t *testing.T) {
	unique := fmt.Errorf("insert contractor: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))

	fk := fmt.Errorf("insert movement: %w", &pgconn.PgError{Code: "23503", ConstraintName: "movements_item_id_fkey"})
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(fk))

	assert.False(t, isUniqueViolation(errors.New("some 23505 in text only")), "only server-reported codes count")
}
