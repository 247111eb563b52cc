package driver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifiedErrorKeepsEngineMessage(t *testing.T) {
	src := errors.New("UNIQUE constraint failed: users.email")
	err := Classify(ErrUniqueConstraint, src)

	assert.Equal(t, src.Error(), err.Error())
	assert.ErrorIs(t, err, ErrUniqueConstraint)
	assert.ErrorIs(t, err, src)
	assert.NotErrorIs(t, err, ErrNullConstraint)
	assert.Nil(t, Classify(ErrUniqueConstraint, nil))
}

func TestLookupUnknownDialect(t *testing.T) {
	_, err := Lookup(Dialect("oracle"))
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestDialectEmbedded(t *testing.T) {
	assert.True(t, SQLite.Embedded())
	assert.False(t, MySQL.Embedded())
}
