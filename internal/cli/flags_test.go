package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateValue_Set(t *testing.T) {
	var got time.Time
	v := newDateValue(&got, nil)

	require.NoError(t, v.Set("2025-03-27"))
	assert.True(t, got.Equal(time.Date(2025, 3, 27, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-27", v.String())
	assert.Equal(t, "date", v.Type())
}

func TestDateValue_Today(t *testing.T) {
	var got time.Time
	now := func() time.Time { return time.Date(2025, 3, 27, 22, 15, 0, 0, time.UTC) }
	v := newDateValue(&got, now)

	require.NoError(t, v.Set("TODAY"))
	assert.True(t, got.Equal(time.Date(2025, 3, 27, 0, 0, 0, 0, time.UTC)))
}

func TestDateValue_Rejects(t *testing.T) {
	var got time.Time
	v := newDateValue(&got, nil)

	for _, in := range []string{"", "27/03/2025", "2025-13-01", "yesterday"} {
		assert.Error(t, v.Set(in), in)
	}
	assert.True(t, got.IsZero())
	assert.Equal(t, "", v.String())
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := parseDate(s, nil)
	require.NoError(t, err)
	return d
}
