package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%semen%", likePattern("semen"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\dir%`, likePattern(`c:\dir`))
}

func TestPgErrorCodes(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	assert.True(t, isForeignKeyViolation(wrapped))
	assert.False(t, isUniqueViolation(wrapped))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isCheckViolation(errors.New("23514")))
}

func TestMaterialQueries_SonParametrizadas(t *testing.T) {
	r := &MaterialRepo{}
	sqlStr, args, err := r.selectMaterials().Where("m.material_id = ?", 5).ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sqlStr, "m.material_id = $1")
	assert.Equal(t, []any{5}, args)
}
