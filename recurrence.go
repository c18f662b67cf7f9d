package forecast

import (
	"fmt"
	"iter"
	"time"

	"github.com/etnz/forecast/date"
)

// ruleKind discriminates the closed set of recurrence rule variants.
type ruleKind int

const (
	kindOnce ruleKind = iota
	kindInterval
	kindWeekly
	kindMonthly
	kindYearly
)

func (k ruleKind) String() string {
	switch k {
	case kindOnce:
		return "once"
	case kindInterval:
		return "interval"
	case kindWeekly:
		return "weekly"
	case kindMonthly:
		return "monthly"
	case kindYearly:
		return "yearly"
	default:
		return "unknown"
	}
}

// Rule is a recurrence rule: a pure function of a start date producing a
// lazy, non-decreasing sequence of dates, infinite unless the rule itself
// is finite (Once) or an Until window truncates it.
//
// Rules are immutable values; From and Until return windowed copies.
// Invalid parameters are rejected by the constructors, never lazily.
type Rule struct {
	kind    ruleKind
	on      date.Date    // Once
	every   int          // Interval, in days
	initial date.Date    // Interval, optional
	weekday time.Weekday // Weekly
	day     int          // Monthly, Yearly
	month   time.Month   // Yearly

	begin, end date.Date // optional window, zero when unset
}

// Once returns the rule emitting the given date exactly once, provided
// the binding start date is not already past it.
func Once(on date.Date) Rule {
	return Rule{kind: kindOnce, on: on}
}

// Interval returns the rule emitting every days-th day counting from the
// binding start date. days must be positive.
func Interval(days int) (Rule, error) {
	if days <= 0 {
		return Rule{}, fmt.Errorf("invalid interval: %d days, must be positive", days)
	}
	return Rule{kind: kindInterval, every: days}, nil
}

// IntervalFrom is like Interval but anchors the progression on initial
// instead of the binding start date. An initial before the start date is
// advanced by whole intervals until it reaches it.
func IntervalFrom(days int, initial date.Date) (Rule, error) {
	r, err := Interval(days)
	if err != nil {
		return Rule{}, err
	}
	r.initial = initial
	return r, nil
}

// Weekly returns the rule emitting the given weekday every week.
func Weekly(day time.Weekday) (Rule, error) {
	if day < time.Sunday || day > time.Saturday {
		return Rule{}, fmt.Errorf("invalid weekday: %d", day)
	}
	return Rule{kind: kindWeekly, weekday: day}, nil
}

// Monthly returns the rule emitting the given day of every month that has
// it; shorter months are skipped, not clamped. day must be in [1, 31].
func Monthly(day int) (Rule, error) {
	if day < 1 || day > 31 {
		return Rule{}, fmt.Errorf("invalid day of month: %d, must be in [1, 31]", day)
	}
	return Rule{kind: kindMonthly, day: day}, nil
}

// Yearly returns the rule emitting the given month/day every year. The
// date must exist in every year, so February 29th is rejected along with
// out-of-range days.
func Yearly(month time.Month, day int) (Rule, error) {
	if month < time.January || month > time.December {
		return Rule{}, fmt.Errorf("invalid month: %d", month)
	}
	if day < 1 || day > daysInEveryYear(month) {
		return Rule{}, fmt.Errorf("invalid day %d for month %s", day, month)
	}
	return Rule{kind: kindYearly, month: month, day: day}, nil
}

// daysInEveryYear returns the number of days the month has in every year,
// i.e. 28 for February.
func daysInEveryYear(month time.Month) int {
	// 2023 is not a leap year.
	return date.New(2023, month+1, 0).Day()
}

// From returns a copy of the rule that filters out every date strictly
// before begin. The underlying sequence still advances through the
// filtered dates.
func (r Rule) From(begin date.Date) Rule {
	r.begin = begin
	return r
}

// Until returns a copy of the rule truncated after end: the bound
// sequence stops right before the first date after end.
func (r Rule) Until(end date.Date) Rule {
	r.end = end
	return r
}

// Dates binds the rule to a start date and returns its lazy date
// sequence, with the From/Until window filters applied around the raw
// generator.
func (r Rule) Dates(start date.Date) iter.Seq[date.Date] {
	var seq iter.Seq[date.Date]
	switch r.kind {
	case kindOnce:
		seq = date.RecurOnce(start, r.on)
	case kindInterval:
		seq = date.RecurByDelta(start, r.every, r.initial)
	case kindWeekly:
		seq = date.RecurWeekly(start, r.weekday)
	case kindMonthly:
		seq = date.RecurMonthly(start, r.day)
	case kindYearly:
		seq = date.RecurYearly(start, r.month, r.day)
	default:
		panic(fmt.Sprintf("unknown rule kind %d", r.kind))
	}
	if !r.end.IsZero() {
		seq = date.Ending(seq, r.end)
	}
	if !r.begin.IsZero() {
		seq = date.Beginning(seq, r.begin)
	}
	return seq
}

func (r Rule) String() string {
	switch r.kind {
	case kindOnce:
		return fmt.Sprintf("once on %s", r.on)
	case kindInterval:
		if r.initial.IsZero() {
			return fmt.Sprintf("every %d days", r.every)
		}
		return fmt.Sprintf("every %d days from %s", r.every, r.initial)
	case kindWeekly:
		return fmt.Sprintf("every %s", r.weekday)
	case kindMonthly:
		return fmt.Sprintf("monthly on day %d", r.day)
	case kindYearly:
		return fmt.Sprintf("yearly on %s %d", r.month, r.day)
	default:
		return "unknown rule"
	}
}
