package date

import (
	"iter"
	"time"
)

// This file holds the recurrence generators. Each generator is a pure
// function of a start date returning a lazy, non-decreasing sequence of
// dates, infinite unless stated otherwise. Generators assume their
// parameters are in range; callers validate before binding.

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one.
	return New(year, month+1, 0).Day()
}

// nextMonth returns the year and month immediately following the given ones.
func nextMonth(year int, month time.Month) (int, time.Month) {
	month++
	if month > time.December {
		return year + 1, time.January
	}
	return year, month
}

// nextMonthWithDay returns the earliest date on or after d falling on the
// given day of the month, skipping months where that day does not exist.
func nextMonthWithDay(d Date, day int) Date {
	year, month := d.Year(), d.Month()
	if day < d.Day() {
		year, month = nextMonth(year, month)
	}
	for day > daysIn(year, month) {
		year, month = nextMonth(year, month)
	}
	return New(year, month, day)
}

// advanceMonth returns the next date after d with the same day of the
// month, skipping months where that day does not exist.
func advanceMonth(d Date) Date {
	year, month := nextMonth(d.Year(), d.Month())
	for d.Day() > daysIn(year, month) {
		year, month = nextMonth(year, month)
	}
	return New(year, month, d.Day())
}

// earliestWeekday returns the earliest date on or after d falling on the
// given day of the week.
func earliestWeekday(d Date, day time.Weekday) Date {
	offset := (int(day) - int(d.Weekday()) + 7) % 7
	return d.Add(offset)
}

// RecurOnce emits on exactly once if it is on or after start, and nothing
// otherwise. Finite.
func RecurOnce(start, on Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if !on.Before(start) {
			yield(on)
		}
	}
}

// RecurByDelta emits initial, initial+days, initial+2*days, ...
// When initial is before start it is first advanced by whole multiples of
// days until it is no longer before start; when initial is the zero Date
// the sequence begins at start itself.
func RecurByDelta(start Date, days int, initial Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		cur := initial
		if cur.IsZero() {
			cur = start
		}
		for cur.Before(start) {
			cur = cur.Add(days)
		}
		for yield(cur) {
			cur = cur.Add(days)
		}
	}
}

// RecurWeekly emits the earliest date on or after start falling on the
// given weekday, then every 7 days.
func RecurWeekly(start Date, day time.Weekday) iter.Seq[Date] {
	return RecurByDelta(start, 7, earliestWeekday(start, day))
}

// RecurMonthly emits the earliest date on or after start falling on the
// given day of the month, then the same day every month. Months that do
// not have that day are skipped entirely, never clamped: RecurMonthly
// with day 31 goes from May 31st straight to July 31st.
func RecurMonthly(start Date, day int) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		cur := nextMonthWithDay(start, day)
		for yield(cur) {
			cur = advanceMonth(cur)
		}
	}
}

// RecurYearly emits the earliest occurrence of month/day on or after
// start, then the same calendar date every following year.
func RecurYearly(start Date, month time.Month, day int) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		cur := New(start.Year(), month, day)
		if cur.Before(start) {
			cur = New(start.Year()+1, month, day)
		}
		for yield(cur) {
			cur = New(cur.Year()+1, month, day)
		}
	}
}

// Ending truncates seq at end: the sequence stops, without error, right
// before the first date after end (end itself is included).
func Ending(seq iter.Seq[Date], end Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := range seq {
			if d.After(end) {
				return
			}
			if !yield(d) {
				return
			}
		}
	}
}

// Beginning filters out of seq every date strictly before begin, without
// affecting the advancement of the underlying sequence.
func Beginning(seq iter.Seq[Date], begin Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := range seq {
			if d.Before(begin) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}
