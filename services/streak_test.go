package services

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceStreakFirstActivity(t *testing.T) {
	res := advanceStreak(0, 0, nil, day(2025, 3, 10))
	if !res.Changed || res.CurrentStreak != 1 || res.LongestStreak != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAdvanceStreakSameDay(t *testing.T) {
	last := day(2025, 3, 10)
	res := advanceStreak(4, 6, &last, day(2025, 3, 10).Add(18*time.Hour))
	if res.Changed {
		t.Fatalf("same-day activity should not change streak: %+v", res)
	}
	if res.CurrentStreak != 4 || res.LongestStreak != 6 {
		t.Fatalf("streak values should be untouched: %+v", res)
	}
}

func TestAdvanceStreakConsecutiveDay(t *testing.T) {
	last := day(2025, 3, 10)
	res := advanceStreak(4, 6, &last, day(2025, 3, 11))
	if !res.Changed || res.CurrentStreak != 5 {
		t.Fatalf("next-day activity should extend streak: %+v", res)
	}
	if res.LongestStreak != 6 {
		t.Fatalf("longest should stay at 6: %+v", res)
	}
}

func TestAdvanceStreakNewRecord(t *testing.T) {
	last := day(2025, 3, 10)
	res := advanceStreak(6, 6, &last, day(2025, 3, 11))
	if res.CurrentStreak != 7 || res.LongestStreak != 7 {
		t.Fatalf("longest should follow a new record: %+v", res)
	}
}

func TestAdvanceStreakGapResets(t *testing.T) {
	last := day(2025, 3, 10)
	res := advanceStreak(12, 12, &last, day(2025, 3, 13))
	if !res.Changed || res.CurrentStreak != 1 {
		t.Fatalf("gap should reset streak to 1: %+v", res)
	}
	if res.LongestStreak != 12 {
		t.Fatalf("longest must survive a reset: %+v", res)
	}
}

func TestAdvanceStreakClockSkew(t *testing.T) {
	// Stored last-active date is ahead of the wall clock
	last := day(2025, 3, 12)
	res := advanceStreak(3, 5, &last, day(2025, 3, 10))
	if res.Changed {
		t.Fatalf("clock skew must be a no-op: %+v", res)
	}
	if res.CurrentStreak != 3 || res.LongestStreak != 5 {
		t.Fatalf("streak values should be untouched: %+v", res)
	}
}

func TestAdvanceStreakThreeDayScenario(t *testing.T) {
	// Day 1 and 2 active, day 3 skipped, day 4 active again
	var last *time.Time
	current, longest := 0, 0

	d1 := day(2025, 3, 1)
	res := advanceStreak(current, longest, last, d1)
	current, longest, last = res.CurrentStreak, res.LongestStreak, &d1
	if current != 1 {
		t.Fatalf("day 1: %+v", res)
	}

	d2 := day(2025, 3, 2)
	res = advanceStreak(current, longest, last, d2)
	current, longest, last = res.CurrentStreak, res.LongestStreak, &d2
	if current != 2 || longest != 2 {
		t.Fatalf("day 2: %+v", res)
	}

	d4 := day(2025, 3, 4)
	res = advanceStreak(current, longest, last, d4)
	if res.CurrentStreak != 1 || res.LongestStreak != 2 {
		t.Fatalf("day 4 after skip: %+v", res)
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)
	if got := daysBetween(a, b); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
}

func TestDaysBetweenNormalizesZones(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*3600)
	// 02:00 on the 11th in UTC+5 is 21:00 on the 10th in UTC
	a := day(2025, 3, 10)
	b := time.Date(2025, 3, 11, 2, 0, 0, 0, zone)
	if got := daysBetween(a, b); got != 0 {
		t.Fatalf("expected 0 days, got %d", got)
	}
}
