package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Parse(t *testing.T) {
	ts, err := NewTimeStringFromString("09:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", ts.String())

	ts, err = NewTimeStringFromString("18:30:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("18:30"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("20:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 20*60+45, m)

	assert.NoError(t, TimeString("00:00").Validate())
	assert.ErrorIs(t, TimeString("7pm").Validate(), ErrInvalidTimeString)

	_, err = TimeString("").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
	assert.True(t, TimeString("").IsZero())
}
