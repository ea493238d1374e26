package service

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		got, err := ParseDate("2026-02-14")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(date(2026, time.February, 14)) {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("SurroundingWhitespace", func(t *testing.T) {
		got, err := ParseDate("  2026-02-14 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(date(2026, time.February, 14)) {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, s := range []string{"", "not-a-date", "2026-2-14", "14-02-2026", "2026-13-01", "2026-02-30"} {
			if _, err := ParseDate(s); !errors.Is(err, ErrMalformedDate) {
				t.Errorf("ParseDate(%q): want ErrMalformedDate, got %v", s, err)
			}
		}
	})
}

func TestAlignToQuarterStart(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2026, time.January, 1), date(2026, time.January, 1)},
		{date(2026, time.February, 15), date(2026, time.January, 1)},
		{date(2026, time.March, 31), date(2026, time.January, 1)},
		{date(2026, time.April, 1), date(2026, time.April, 1)},
		{date(2026, time.June, 30), date(2026, time.April, 1)},
		{date(2026, time.July, 4), date(2026, time.July, 1)},
		{date(2026, time.September, 30), date(2026, time.July, 1)},
		{date(2026, time.October, 1), date(2026, time.October, 1)},
		{date(2026, time.December, 31), date(2026, time.October, 1)},
	}
	for _, tc := range cases {
		if got := AlignToQuarterStart(tc.in); !got.Equal(tc.want) {
			t.Errorf("AlignToQuarterStart(%s) = %s, want %s",
				FormatDate(tc.in), FormatDate(got), FormatDate(tc.want))
		}
	}
}

func TestAlignToQuarterStartIdempotent(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		once := AlignToQuarterStart(date(2026, month, 20))
		twice := AlignToQuarterStart(once)
		if !once.Equal(twice) {
			t.Errorf("alignment not idempotent for month %s: %s vs %s",
				month, FormatDate(once), FormatDate(twice))
		}
	}
}

func TestAlignToQuarterStartTimezoneBoundary(t *testing.T) {
	// 2026-04-01 05:00 in UTC+9 is still March 31 locally, but the UTC
	// calendar date decides: this instant belongs to Q2.
	jst := time.FixedZone("JST", 9*3600)
	in := time.Date(2026, time.April, 1, 5, 0, 0, 0, jst)
	want := date(2026, time.January, 1) // 2026-03-31 20:00 UTC is Q1
	if got := AlignToQuarterStart(in); !got.Equal(want) {
		t.Fatalf("got %s, want %s", FormatDate(got), FormatDate(want))
	}
}

func TestDerivedDates(t *testing.T) {
	cases := []struct {
		start        time.Time
		wantEnd      time.Time
		wantDeadline time.Time
	}{
		{date(2026, time.January, 1), date(2026, time.December, 31), date(2026, time.January, 18)},
		{date(2026, time.April, 1), date(2027, time.March, 31), date(2026, time.April, 18)},
		{date(2026, time.July, 1), date(2027, time.June, 30), date(2026, time.July, 18)},
		{date(2026, time.October, 1), date(2027, time.September, 30), date(2026, time.October, 18)},
		// A group spanning the leap day still ends the day before its
		// anniversary, not 364 days in.
		{date(2027, time.July, 1), date(2028, time.June, 30), date(2027, time.July, 18)},
		{date(2028, time.January, 1), date(2028, time.December, 31), date(2028, time.January, 18)},
	}
	for _, tc := range cases {
		end, deadline := DerivedDates(tc.start)
		if !end.Equal(tc.wantEnd) {
			t.Errorf("DerivedDates(%s) end = %s, want %s",
				FormatDate(tc.start), FormatDate(end), FormatDate(tc.wantEnd))
		}
		if !deadline.Equal(tc.wantDeadline) {
			t.Errorf("DerivedDates(%s) deadline = %s, want %s",
				FormatDate(tc.start), FormatDate(deadline), FormatDate(tc.wantDeadline))
		}
	}
}

func TestGroupName(t *testing.T) {
	t.Run("Derived", func(t *testing.T) {
		got := GroupName(date(2026, time.April, 1), "")
		want := "Bible Bus April 2026 Travelers"
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("Override", func(t *testing.T) {
		got := GroupName(date(2026, time.April, 1), "  Spring Crew  ")
		if got != "Spring Crew" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("BlankOverrideFallsThrough", func(t *testing.T) {
		got := GroupName(date(2026, time.October, 1), "   ")
		want := "Bible Bus October 2026 Travelers"
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})
}

func TestFormatDateRoundTrip(t *testing.T) {
	in := date(2026, time.July, 1)
	out, err := ParseDate(FormatDate(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("round trip changed date: %v vs %v", in, out)
	}
}
