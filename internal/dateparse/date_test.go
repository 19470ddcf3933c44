package dateparse

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, ok, err := ParseDate("2012-04-23")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, civil.Date{Year: 2012, Month: time.April, Day: 23}, got)

	got, ok, err = ParseDate("2012-4-9")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, civil.Date{Year: 2012, Month: time.April, Day: 9}, got)

	got, ok, err = ParseDate("2024-02-29")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.February, Day: 29}, got)
}

func TestParseDateNotRecognized(t *testing.T) {
	for _, input := range []string{"", "20120423", "2012-04-23T09:15:00", "12-04-23", "2012/04/23"} {
		t.Run(input, func(t *testing.T) {
			_, ok, err := ParseDate(input)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestParseDateOutOfRange(t *testing.T) {
	tests := []struct {
		input string
		field string
	}{
		{"2024-13-01", "month"},
		{"2024-00-01", "month"},
		{"2012-04-56", "day"},
		{"2023-02-29", "day"},
		{"0000-01-01", "year"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok, err := ParseDate(tt.input)
			assert.False(t, ok)
			require.ErrorIs(t, err, ErrOutOfRange)

			var rerr *RangeError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, "date", rerr.Kind)
			assert.Equal(t, tt.field, rerr.Field)
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  civil.Time
	}{
		{"09:15:00", civil.Time{Hour: 9, Minute: 15}},
		{"10:10", civil.Time{Hour: 10, Minute: 10}},
		{"4:8:16", civil.Time{Hour: 4, Minute: 8, Second: 16}},
		{"10:20:30.400", civil.Time{Hour: 10, Minute: 20, Second: 30, Nanosecond: 400000000}},
		{"00:05:23.283", civil.Time{Minute: 5, Second: 23, Nanosecond: 283000000}},
		{"10:20:30.1234567", civil.Time{Hour: 10, Minute: 20, Second: 30, Nanosecond: 123456000}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok, err := ParseTime(tt.input)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeNotRecognized(t *testing.T) {
	for _, input := range []string{"", "091500", "10:20:30.400+02:00", "10:20:30Z", "10"} {
		t.Run(input, func(t *testing.T) {
			_, ok, err := ParseTime(input)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestParseTimeOutOfRange(t *testing.T) {
	tests := []struct {
		input string
		field string
	}{
		{"09:15:90", "second"},
		{"24:00", "hour"},
		{"12:60:00", "minute"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok, err := ParseTime(tt.input)
			assert.False(t, ok)

			var rerr *RangeError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, "time", rerr.Kind)
			assert.Equal(t, tt.field, rerr.Field)
		})
	}
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		input  string
		want   civil.DateTime
		offset int // seconds east of UTC
		aware  bool
	}{
		{
			input: "2012-04-23T09:15:00",
			want:  civil.DateTime{Date: civil.Date{Year: 2012, Month: 4, Day: 23}, Time: civil.Time{Hour: 9, Minute: 15}},
		},
		{
			input: "2012-4-9 4:8:16",
			want:  civil.DateTime{Date: civil.Date{Year: 2012, Month: 4, Day: 9}, Time: civil.Time{Hour: 4, Minute: 8, Second: 16}},
		},
		{
			input: "2012-04-23T09:15:00Z",
			want:  civil.DateTime{Date: civil.Date{Year: 2012, Month: 4, Day: 23}, Time: civil.Time{Hour: 9, Minute: 15}},
			aware: true,
		},
		{
			input:  "2012-4-9 4:8:16-0320",
			want:   civil.DateTime{Date: civil.Date{Year: 2012, Month: 4, Day: 9}, Time: civil.Time{Hour: 4, Minute: 8, Second: 16}},
			offset: -200 * 60,
			aware:  true,
		},
		{
			input:  "2012-04-23T10:20:30.400+02:30",
			want:   civil.DateTime{Date: civil.Date{Year: 2012, Month: 4, Day: 23}, Time: civil.Time{Hour: 10, Minute: 20, Second: 30, Nanosecond: 400000000}},
			offset: 150 * 60,
			aware:  true,
		},
		{
			input:  "2012-04-23T10:20:30.400+02",
			want:   civil.DateTime{Date: civil.Date{Year: 2012, Month: 4, Day: 23}, Time: civil.Time{Hour: 10, Minute: 20, Second: 30, Nanosecond: 400000000}},
			offset: 120 * 60,
			aware:  true,
		},
		{
			input:  "2012-04-23T10:20:30.400-02",
			want:   civil.DateTime{Date: civil.Date{Year: 2012, Month: 4, Day: 23}, Time: civil.Time{Hour: 10, Minute: 20, Second: 30, Nanosecond: 400000000}},
			offset: -120 * 60,
			aware:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok, err := ParseDateTime(tt.input)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.DateTime)
			assert.Equal(t, tt.aware, got.Aware())
			if tt.aware {
				_, offset := got.In(nil).Zone()
				assert.Equal(t, tt.offset, offset)
			}
		})
	}
}

func TestParseDateTimeZoneName(t *testing.T) {
	got, ok, err := ParseDateTime("2012-04-23T09:15:00+03:00")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "+0300", got.Location.String())
	assert.Equal(t, "2012-04-23T09:15:00+03:00", got.String())

	got, ok, err = ParseDateTime("2012-04-23T09:15:00Z")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, time.UTC, got.Location)
	assert.Equal(t, "2012-04-23T09:15:00Z", got.String())
}

func TestParseDateTimeNaiveIn(t *testing.T) {
	got, ok, err := ParseDateTime("2012-04-23 09:15:00")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2012-04-23T09:15:00", got.String())

	loc := FixedZone(60)
	assert.Equal(t, time.Date(2012, 4, 23, 9, 15, 0, 0, loc), got.In(loc))
}

func TestParseDateTimeNotRecognized(t *testing.T) {
	for _, input := range []string{"", "20120423091500", "2012-04-23", "2012-04-23T09:15:00+3", "2012-04-23X09:15"} {
		t.Run(input, func(t *testing.T) {
			_, ok, err := ParseDateTime(input)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestParseDateTimeOutOfRange(t *testing.T) {
	tests := []struct {
		input string
		field string
	}{
		{"2012-04-56T09:15:90", "day"},
		{"2012-04-23T09:15:90", "second"},
		{"2012-04-23T09:15:00+24:00", "offset"},
		{"2012-04-23T09:15:00-2400", "offset"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok, err := ParseDateTime(tt.input)
			assert.False(t, ok)
			require.ErrorIs(t, err, ErrOutOfRange)

			var rerr *RangeError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, "datetime", rerr.Kind)
			assert.Equal(t, tt.field, rerr.Field)
		})
	}
}

func TestFixedZone(t *testing.T) {
	loc := FixedZone(-90)
	assert.Equal(t, "-0130", loc.String())
	_, offset := time.Date(2020, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, -90*60, offset)
}
