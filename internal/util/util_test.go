package util

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	a, b := NewULID(), NewULID()
	assert.True(t, IsULID(a))
	assert.Len(t, a, 26)
	assert.Less(t, a, b, "ids sort in creation order")
}

func TestIsULID(t *testing.T) {
	assert.True(t, IsULID("01HZX3A2B4C5D6E7F8G9H0JKMN"))
	assert.False(t, IsULID(""))
	assert.False(t, IsULID("quiz-1"))
	assert.False(t, IsULID("01HZX3A2B4C5D6E7F8G9H0JKMU"), "U is outside the alphabet")
}

func TestSQLHelpers(t *testing.T) {
	assert.Equal(t, sql.NullString{}, StringToNullString(""))
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, StringToNullString("x"))

	assert.Nil(t, NullInt64ToIntPtr(IntPtrToNullInt64(nil)))
	v := 15
	back := NullInt64ToIntPtr(IntPtrToNullInt64(&v))
	if assert.NotNil(t, back) {
		assert.Equal(t, 15, *back)
	}

	assert.Equal(t, 1, BoolToInt(true))
	assert.Equal(t, 0, BoolToInt(false))
}
