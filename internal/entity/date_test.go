package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2020-03-02", " 2020-03-02 ", "2020-03-02T18:45:00Z", "Mon Mar 02 2020"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%q parsed as %v", in, got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2020-13-01", "2020-02-30"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mon Mar 02 2020", FormatDate(time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestCalendarDateKeepsLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	got := CalendarDate(time.Date(2021, 7, 1, 2, 0, 0, 0, loc))

	assert.Equal(t, time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC), got)
}
