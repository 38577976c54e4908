package service

import "time"

// StreakOutcome 一次推进后的状态变化
type StreakOutcome int

const (
	StreakSameDay   StreakOutcome = iota // 今天已计入，计数不变
	StreakStarted                        // 首次记录
	StreakContinued                      // 昨天有记录，+1
	StreakBroken                         // 中断后从 1 重新开始
)

// 连续生成奖励
var dailyStreakBonus = map[int]int64{
	3:  1,
	7:  2,
	30: 5,
}

func DailyStreakBonus(streak int) int64 {
	return dailyStreakBonus[streak]
}

// UTCDay 截断到 UTC 零点
func UTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func SameUTCDay(a, b time.Time) bool {
	return UTCDay(a).Equal(UTCDay(b))
}

// AdvanceStreak 按 UTC 日期比较推进连续天数，中断只在下一次行为时被发现
func AdvanceStreak(current int, last *time.Time, now time.Time) (int, StreakOutcome) {
	if last == nil {
		return 1, StreakStarted
	}
	today := UTCDay(now)
	lastDay := UTCDay(*last)
	switch {
	case !lastDay.Before(today):
		return current, StreakSameDay
	case lastDay.Equal(today.AddDate(0, 0, -1)):
		return current + 1, StreakContinued
	default:
		return 1, StreakBroken
	}
}

// EffectiveStreak 只读展示用：最后记录早于昨天则视为已中断
func EffectiveStreak(current int, last *time.Time, now time.Time) int {
	if last == nil {
		return 0
	}
	if UTCDay(*last).Before(UTCDay(now).AddDate(0, 0, -1)) {
		return 0
	}
	return current
}
