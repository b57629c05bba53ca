package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-10-01")

	assert.NoError(t, err)
	assert.Equal(t, "2025-10-01", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("01/10/2025")
	assert.Error(t, err)

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2025, time.October, 1)

	data, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2025-10-01"`, string(data))

	var parsed Date
	err = json.Unmarshal([]byte(`"2025-12-24"`), &parsed)
	assert.NoError(t, err)
	assert.Equal(t, "2025-12-24", parsed.String())
}

func TestDate_UnmarshalNull(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`null`), &d)

	assert.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestDate_ScanTime(t *testing.T) {
	var d Date
	err := d.Scan(time.Date(2025, time.October, 1, 14, 30, 0, 0, time.Local))

	assert.NoError(t, err)
	assert.Equal(t, "2025-10-01", d.String())
}

func TestDate_Equal(t *testing.T) {
	a := NewDate(2025, time.October, 1)
	b, _ := ParseDate("2025-10-01")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewDate(2025, time.October, 2)))
}
