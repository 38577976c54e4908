package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestAdvanceStreak(t *testing.T) {
	now := day(2025, 3, 10)
	yesterday := day(2025, 3, 9)
	threeDaysAgo := day(2025, 3, 7)
	lateToday := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)

	cases := []struct {
		name    string
		current int
		last    *time.Time
		want    int
		outcome StreakOutcome
	}{
		{"first ever", 0, nil, 1, StreakStarted},
		{"same day", 4, &lateToday, 4, StreakSameDay},
		{"consecutive", 4, &yesterday, 5, StreakContinued},
		{"gap", 5, &threeDaysAgo, 1, StreakBroken},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, outcome := AdvanceStreak(c.current, c.last, now)
			assert.Equal(t, c.want, got)
			assert.Equal(t, c.outcome, outcome)
		})
	}
}

// UTC 日界，而不是 24 小时
func TestAdvanceStreak_UTCBoundary(t *testing.T) {
	last := time.Date(2025, 3, 9, 23, 50, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC)
	got, outcome := AdvanceStreak(2, &last, now)
	assert.Equal(t, 3, got)
	assert.Equal(t, StreakContinued, outcome)

	// 非 UTC 时区的时间先换算
	shanghai := time.FixedZone("CST", 8*3600)
	local := time.Date(2025, 3, 10, 7, 0, 0, 0, shanghai) // 2025-03-09 23:00 UTC
	got, outcome = AdvanceStreak(2, &local, now)
	assert.Equal(t, 3, got)
	assert.Equal(t, StreakContinued, outcome)
}

func TestDailyStreakBonus(t *testing.T) {
	for _, s := range []int{1, 2, 4, 5, 6, 8, 14, 29, 31} {
		assert.Zero(t, DailyStreakBonus(s), "streak %d", s)
	}
	assert.Equal(t, int64(1), DailyStreakBonus(3))
	assert.Equal(t, int64(2), DailyStreakBonus(7))
	assert.Equal(t, int64(5), DailyStreakBonus(30))
}

func TestEffectiveStreak(t *testing.T) {
	now := day(2025, 3, 10)
	yesterday := day(2025, 3, 9)
	old := day(2025, 3, 1)

	assert.Equal(t, 0, EffectiveStreak(3, nil, now))
	assert.Equal(t, 3, EffectiveStreak(3, &yesterday, now))
	assert.Equal(t, 0, EffectiveStreak(3, &old, now))
}
