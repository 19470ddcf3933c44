package dateparse

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationString(t *testing.T) {
	tests := []struct {
		d    Duration
		want string
		iso  string
	}{
		{0, "00:00:00", "P0DT00H00M00S"},
		{Day, "1 00:00:00", "P1DT00H00M00S"},
		{-Day, "-1 00:00:00", "-P1DT00H00M00S"},
		{-Second, "-1 23:59:59", "-P0DT00H00M01S"},
		{15*Minute + 30*Second + 100*Millisecond, "00:15:30.100000", "P0DT00H15M30.100000S"},
		{3*Day + 4*Hour + 5*Minute + 6*Second, "3 04:05:06", "P3DT04H05M06S"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.String())
			assert.Equal(t, tt.iso, tt.d.ISO())
		})
	}
}

func TestDurationComponents(t *testing.T) {
	neg, days, hours, minutes, seconds, micros := (-(3*Day + 4*Hour + 5*Minute + 6*Second + 7*Microsecond)).Components()
	assert.True(t, neg)
	assert.Equal(t, []int64{3, 4, 5, 6, 7}, []int64{days, hours, minutes, seconds, micros})

	neg, days, _, _, _, _ = Day.Components()
	assert.False(t, neg)
	assert.Equal(t, int64(1), days)
}

func TestDurationSeconds(t *testing.T) {
	assert.InDelta(t, -30.1, (-(30*Second + 100*Millisecond)).Seconds(), 1e-9)
	assert.InDelta(t, 86400.0, Day.Seconds(), 1e-9)
}

func TestDurationStd(t *testing.T) {
	std, ok := (90 * Minute).Std()
	assert.True(t, ok)
	assert.Equal(t, 90*time.Minute, std)
	assert.Equal(t, 90*Minute, FromStd(std))

	_, ok = (200000 * 365 * Day).Std()
	assert.False(t, ok)
}

func TestDurationNegAbs(t *testing.T) {
	assert.Equal(t, -Day, Day.Neg())
	assert.Equal(t, Duration(math.MinInt64), Duration(math.MinInt64).Neg())
	assert.Equal(t, uint64(1)<<63, Duration(math.MinInt64).Abs())
	assert.Equal(t, uint64(Second), (-Second).Abs())
}
