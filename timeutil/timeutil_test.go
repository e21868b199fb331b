package timeutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corecraft/worldkit/timeutil"
)

func Test_Parse(t *testing.T) {
	for _, in := range []string{
		"2025-06-01T12:00:00Z",
		"2025-06-01T12:00:00+00:00",
		"2025-06-01T12:00:00",
		"2025-06-01T12:00:00.123456Z",
	} {
		ts, err := timeutil.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, 2025, ts.Year(), in)
		assert.Equal(t, 12, ts.Hour(), in)
	}

	ts, err := timeutil.Parse("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), ts)

	_, err = timeutil.Parse("June 1st 2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timestamp")
}

func Test_Between(t *testing.T) {
	start, err := timeutil.Parse("2025-01-01T00:00:00Z")
	require.NoError(t, err)
	end, err := timeutil.Parse("2025-01-31T12:00:00Z")
	require.NoError(t, err)

	d := timeutil.Between(start, end)
	assert.Equal(t, 30.5, d.Days)
	assert.Equal(t, 1.0, d.Months)
	assert.False(t, d.IsNegative)
}

func Test_Between_Negative(t *testing.T) {
	start, _ := timeutil.Parse("2025-02-01")
	end, _ := timeutil.Parse("2025-01-01")

	d := timeutil.Between(start, end)
	assert.Equal(t, -31.0, d.Days)
	assert.True(t, d.IsNegative)
}

func Test_Between_SameInstant(t *testing.T) {
	ts, _ := timeutil.Parse("2025-01-01")
	d := timeutil.Between(ts, ts)
	assert.Equal(t, 0.0, d.Days)
	assert.Equal(t, 0.0, d.Months)
	assert.False(t, d.IsNegative)
}
