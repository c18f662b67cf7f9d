package date

import (
	"iter"
	"testing"
	"time"
)

// take collects the first n dates of a possibly infinite sequence.
func take(seq iter.Seq[Date], n int) []Date {
	out := make([]Date, 0, n)
	for d := range seq {
		out = append(out, d)
		if len(out) == n {
			break
		}
	}
	return out
}

func equal(a, b []Date) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRecurOnce(t *testing.T) {
	on := New(2016, time.March, 12)

	if got := take(RecurOnce(New(2016, time.March, 10), on), 5); !equal(got, []Date{on}) {
		t.Errorf("start before: got %v, want [%s]", got, on)
	}
	if got := take(RecurOnce(on, on), 5); !equal(got, []Date{on}) {
		t.Errorf("start equal: got %v, want [%s]", got, on)
	}
	if got := take(RecurOnce(New(2016, time.March, 13), on), 5); len(got) != 0 {
		t.Errorf("start after: got %v, want nothing", got)
	}
}

func TestRecurByDelta(t *testing.T) {
	tests := []struct {
		name    string
		start   Date
		days    int
		initial Date
		want    []Date
	}{
		{
			name:    "initial before start is advanced by whole deltas",
			start:   New(2016, time.March, 12),
			days:    7,
			initial: New(2016, time.March, 6),
			want:    []Date{New(2016, time.March, 13), New(2016, time.March, 20), New(2016, time.March, 27)},
		},
		{
			name:    "initial after start is kept",
			start:   New(2016, time.March, 12),
			days:    7,
			initial: New(2016, time.March, 13),
			want:    []Date{New(2016, time.March, 13), New(2016, time.March, 20), New(2016, time.March, 27)},
		},
		{
			name:  "zero initial begins at start",
			start: New(2016, time.March, 12),
			days:  14,
			want:  []Date{New(2016, time.March, 12), New(2016, time.March, 26), New(2016, time.April, 9)},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := take(RecurByDelta(tc.start, tc.days, tc.initial), len(tc.want)); !equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRecurWeekly(t *testing.T) {
	// 2016-03-07 is a Monday.
	got := take(RecurWeekly(New(2016, time.March, 7), time.Friday), 2)
	want := []Date{New(2016, time.March, 11), New(2016, time.March, 18)}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// A start already on the right weekday is its own first occurrence.
	got = take(RecurWeekly(New(2016, time.March, 7), time.Monday), 1)
	if !equal(got, []Date{New(2016, time.March, 7)}) {
		t.Errorf("got %v, want [2016-03-07]", got)
	}
}

func TestRecurMonthly(t *testing.T) {
	tests := []struct {
		name  string
		start Date
		day   int
		want  []Date
	}{
		{
			name:  "same month when day not yet passed",
			start: New(2016, time.March, 10),
			day:   14,
			want:  []Date{New(2016, time.March, 14), New(2016, time.April, 14)},
		},
		{
			name:  "next month when day already passed",
			start: New(2016, time.March, 10),
			day:   2,
			want:  []Date{New(2016, time.April, 2), New(2016, time.May, 2)},
		},
		{
			name:  "day 31 skips short months",
			start: New(2016, time.April, 10),
			day:   31,
			want:  []Date{New(2016, time.May, 31), New(2016, time.July, 31), New(2016, time.August, 31), New(2016, time.October, 31)},
		},
		{
			name:  "day 29 waits for leap February",
			start: New(2020, time.February, 1),
			day:   29,
			want:  []Date{New(2020, time.February, 29), New(2020, time.March, 29)},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := take(RecurMonthly(tc.start, tc.day), len(tc.want)); !equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

// TestRecurMonthly31Property checks that day 31 only ever lands in months
// that actually have 31 days, over many iterations and arbitrary starts.
func TestRecurMonthly31Property(t *testing.T) {
	starts := []Date{
		New(2015, time.January, 1),
		New(2016, time.February, 29),
		New(2023, time.December, 31),
	}
	for _, start := range starts {
		years := map[int]bool{}
		for _, d := range take(RecurMonthly(start, 31), 100) {
			if d.Day() != 31 {
				t.Fatalf("start %s: emitted %s, not a 31st", start, d)
			}
			if daysIn(d.Year(), d.Month()) != 31 {
				t.Fatalf("start %s: emitted %s in a month without 31 days", start, d)
			}
			years[d.Year()] = true
		}
		// 7 months per year have 31 days: 100 occurrences span 15 calendar
		// years, every one of them hit at least once.
		for y := start.Year() + 1; y < start.Year()+14; y++ {
			if !years[y] {
				t.Errorf("start %s: no occurrence at all in %d", start, y)
			}
		}
	}
}

func TestRecurYearly(t *testing.T) {
	got := take(RecurYearly(New(2016, time.March, 10), time.March, 4), 3)
	want := []Date{New(2017, time.March, 4), New(2018, time.March, 4), New(2019, time.March, 4)}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestRecurYearlySpacing checks consecutive yearly occurrences are 365 or
// 366 days apart and all share the requested month and day.
func TestRecurYearlySpacing(t *testing.T) {
	seq := take(RecurYearly(New(2019, time.June, 15), time.December, 24), 20)
	for i, d := range seq {
		if d.Month() != time.December || d.Day() != 24 {
			t.Fatalf("occurrence %s is not a December 24th", d)
		}
		if i == 0 {
			continue
		}
		if gap := d.Sub(seq[i-1]); gap != 365 && gap != 366 {
			t.Errorf("gap between %s and %s is %d days", seq[i-1], d, gap)
		}
	}
}

func TestEnding(t *testing.T) {
	seq := RecurByDelta(New(2016, time.January, 1), 31, Date{})
	got := take(Ending(seq, New(2016, time.February, 1)), 10)
	want := []Date{New(2016, time.January, 1), New(2016, time.February, 1)}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBeginning(t *testing.T) {
	seq := RecurByDelta(New(2016, time.January, 1), 31, Date{})
	got := take(Beginning(seq, New(2016, time.February, 1)), 2)
	want := []Date{New(2016, time.February, 1), New(2016, time.March, 3)}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
