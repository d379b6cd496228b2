package dbtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-09-01"`), &d))
	assert.Equal(t, NewDate(2024, time.September, 1), d)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-09-01"`, string(b))

	var zero Date
	b, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 7, 1, 13, 5, 0, 0, time.UTC)))
	assert.Equal(t, "2025-07-01", d.String())

	require.NoError(t, d.Scan("2025-07-02 00:00:00+00:00"))
	assert.Equal(t, "2025-07-02", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2024, time.January, 5).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSchoolTimeKeepsInstant(t *testing.T) {
	utc := time.Date(2024, time.March, 1, 23, 30, 0, 0, time.UTC)
	local := ToSchoolTime(utc)
	assert.True(t, local.Equal(utc))
	assert.Equal(t, SchoolLocation(), local.Location())
	assert.True(t, ToSchoolTime(time.Time{}).IsZero())
}
