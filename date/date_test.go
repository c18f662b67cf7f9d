package date

import (
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2024, time.January, 32), New(2024, time.February, 1); got != want {
		t.Errorf("New(2024, January, 32) = %s, want %s", got, want)
	}
	if got, want := New(2024, time.March, 0), New(2024, time.February, 29); got != want {
		t.Errorf("New(2024, March, 0) = %s, want %s", got, want)
	}
}

func TestAddSub(t *testing.T) {
	d := New(2016, time.March, 12)
	if got := d.Add(20); got != New(2016, time.April, 1) {
		t.Errorf("Add(20) = %s, want 2016-04-01", got)
	}
	if got := New(2017, time.March, 12).Sub(d); got != 365 {
		t.Errorf("Sub() = %d, want 365", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "not-a-date", wantErr: true},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected an error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2026, time.December, 24)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON(%s): %v", b, err)
	}
	if back != d {
		t.Errorf("round trip = %s, want %s", back, d)
	}
}
