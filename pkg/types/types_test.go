package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "valid date", input: "2025-10-13", want: Date{2025, time.October, 13}},
		{name: "valid leap day", input: "2024-02-29", want: Date{2024, time.February, 29}},
		{name: "invalid format", input: "13.10.2025", wantErr: true},
		{name: "not a date", input: "tomorrow", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "invalid day", input: "2025-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDateFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-10-13")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-13", d.String())
}

func TestDateWeekday(t *testing.T) {
	// 2025-10-13 is a Monday
	monday := NewDate(2025, time.October, 13)
	assert.Equal(t, 1, monday.Weekday())

	// 2025-10-12 is a Sunday
	sunday := NewDate(2025, time.October, 12)
	assert.Equal(t, 0, sunday.Weekday())
}

func TestDateComparisons(t *testing.T) {
	a := NewDate(2025, time.October, 13)
	b := NewDate(2025, time.October, 14)
	c := NewDate(2025, time.November, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.True(t, c.After(a))
	assert.False(t, a.Before(a))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2025, time.October, 31)
	assert.Equal(t, NewDate(2025, time.November, 1), d.AddDays(1))
	assert.Equal(t, NewDate(2025, time.October, 30), d.AddDays(-1))
}

func TestDateDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, NewDate(2025, time.October, 1).DaysInMonth())
	assert.Equal(t, 30, NewDate(2025, time.November, 1).DaysInMonth())
	assert.Equal(t, 28, NewDate(2025, time.February, 1).DaysInMonth())
	assert.Equal(t, 29, NewDate(2024, time.February, 1).DaysInMonth())
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2025, time.October, 13), d)

	require.NoError(t, d.Scan("2025-01-02"))
	assert.Equal(t, NewDate(2025, time.January, 2), d)

	assert.Error(t, d.Scan(42))
}

func TestParseMinuteOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MinuteOfDay
		wantErr bool
	}{
		{name: "morning", input: "09:00", want: 540},
		{name: "midnight", input: "00:00", want: 0},
		{name: "evening", input: "18:30", want: 1110},
		{name: "last minute", input: "23:59", want: 1439},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "no separator", input: "0900", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMinuteOfDay(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinuteOfDayString(t *testing.T) {
	assert.Equal(t, "09:00", MinuteOfDay(540).String())
	assert.Equal(t, "00:00", MinuteOfDay(0).String())
	assert.Equal(t, "18:00", MinuteOfDay(1080).String())
	assert.Equal(t, "09:15", MinuteOfDay(555).String())
}

func TestMinuteOfDayValidate(t *testing.T) {
	assert.NoError(t, MinuteOfDay(0).Validate())
	assert.NoError(t, MinuteOfDay(1440).Validate())
	assert.Error(t, MinuteOfDay(-1).Validate())
	assert.Error(t, MinuteOfDay(1441).Validate())
}
