package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2020-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2020-06-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 6, 1, 8, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("06/01/2020")
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("  ")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2021-01-31")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 31, d.Day())

	_, err = ParseOptionalDate("tomorrow")
	assert.Error(t, err)
}
