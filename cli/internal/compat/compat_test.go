package compat

import (
	"testing"

	"github.com/hashicorp/go-version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/pure-orm/driver"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"8.0.36", "8.0.36"},
		{"8.0.36-0ubuntu0.22.04.1", "8.0.36"},
		{"10.11.6-MariaDB-1:10.11.6+maria~ubu2204", "10.11.6"},
		{"3.45.1", "3.45.1"},
		{" 5.7 ", "5.7"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.True(t, v.Equal(version.Must(version.NewVersion(tt.want))), v.String())
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("MariaDB")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	r, err := Check(driver.SQLite, "3.45.1")
	require.NoError(t, err)
	assert.True(t, r.Supported)
	assert.Contains(t, r.String(), "minimum")

	r, err = Check(driver.MySQL, "5.1.73-log")
	require.NoError(t, err)
	assert.False(t, r.Supported)
	assert.Contains(t, r.String(), "older than")

	_, err = Check(driver.Dialect("oracle"), "19.0")
	assert.ErrorIs(t, err, driver.ErrUnknownDialect)
}
