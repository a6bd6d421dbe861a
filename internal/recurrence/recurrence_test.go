package recurrence

import (
	"testing"
	"time"
)

func TestParseDaily(t *testing.T) {
	r, err := Parse("FREQ=DAILY;TIME=09:00")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if r.Freq != Daily {
		t.Errorf("Freq = %d, want Daily", r.Freq)
	}
	if r.At.Hour != 9 || r.At.Minute != 0 {
		t.Errorf("At = %v, want 09:00", r.At)
	}
}

func TestParseWeekly(t *testing.T) {
	r, err := Parse("FREQ=WEEKLY;BYDAY=MO,WE,FR;TIME=07:30")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if r.Freq != Weekly {
		t.Errorf("Freq = %d, want Weekly", r.Freq)
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(r.ByDay) != 3 {
		t.Fatalf("ByDay len = %d, want 3", len(r.ByDay))
	}
	for i, d := range r.ByDay {
		if d != want[i] {
			t.Errorf("ByDay[%d] = %v, want %v", i, d, want[i])
		}
	}
	if r.At.Hour != 7 || r.At.Minute != 30 {
		t.Errorf("At = %v, want 07:30", r.At)
	}
}

func TestParseMonthly(t *testing.T) {
	r, err := Parse("FREQ=MONTHLY;BYMONTHDAY=1,15;TIME=20:00")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if r.Freq != Monthly {
		t.Errorf("Freq = %d, want Monthly", r.Freq)
	}
	if len(r.ByMonthDay) != 2 || r.ByMonthDay[0] != 1 || r.ByMonthDay[1] != 15 {
		t.Errorf("ByMonthDay = %v, want [1 15]", r.ByMonthDay)
	}
}

func TestParseErrors(t *testing.T) {
	invalid := []string{
		"",
		"FREQ=DAILY",                        // missing TIME
		"TIME=09:00",                        // missing FREQ
		"FREQ=YEARLY;TIME=09:00",            // unsupported frequency
		"FREQ=WEEKLY;TIME=09:00",            // WEEKLY without BYDAY
		"FREQ=MONTHLY;TIME=09:00",           // MONTHLY without BYMONTHDAY
		"FREQ=DAILY;BYDAY=MO;TIME=09:00",    // BYDAY on DAILY
		"FREQ=DAILY;BYMONTHDAY=5;TIME=09:00",
		"FREQ=WEEKLY;BYDAY=XX;TIME=09:00",
		"FREQ=MONTHLY;BYMONTHDAY=32;TIME=09:00",
		"FREQ=MONTHLY;BYMONTHDAY=0;TIME=09:00",
		"FREQ=DAILY;TIME=24:00",
		"FREQ=DAILY;TIME=09:60",
		"FREQ=DAILY;TIME=0900",
		"FREQ=DAILY;COUNT=3;TIME=09:00", // unsupported key
		"garbage",
	}
	for _, in := range invalid {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

func TestParseList(t *testing.T) {
	rules, err := ParseList("FREQ=DAILY;TIME=09:00 FREQ=WEEKLY;BYDAY=SA,SU;TIME=10:00")
	if err != nil {
		t.Fatalf("ParseList error: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("len = %d, want 2", len(rules))
	}
	if rules[0].Freq != Daily || rules[1].Freq != Weekly {
		t.Errorf("freqs = %d, %d, want Daily, Weekly", rules[0].Freq, rules[1].Freq)
	}
}

func TestParseListEmpty(t *testing.T) {
	if _, err := ParseList(""); err == nil {
		t.Error("ParseList(\"\") succeeded, want error")
	}
	if _, err := ParseList("   "); err == nil {
		t.Error("ParseList(whitespace) succeeded, want error")
	}
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		"FREQ=DAILY;TIME=09:00",
		"FREQ=WEEKLY;BYDAY=MO,WE;TIME=07:05",
		"FREQ=MONTHLY;BYMONTHDAY=1,15,28;TIME=23:59",
	}
	for _, in := range inputs {
		r, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", in, err)
		}
		if got := r.String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
	}
}

func TestDailyMatches(t *testing.T) {
	r, _ := Parse("FREQ=DAILY;TIME=09:00")

	at := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	if !r.Matches(at) {
		t.Error("expected match at 09:00")
	}
	if r.Matches(at.Add(time.Minute)) {
		t.Error("unexpected match at 09:01")
	}
	if r.Matches(at.Add(time.Hour)) {
		t.Error("unexpected match at 10:00")
	}

	// Seconds are ignored
	if !r.Matches(at.Add(30 * time.Second)) {
		t.Error("expected match at 09:00:30")
	}
}

func TestWeeklyMatches(t *testing.T) {
	r, _ := Parse("FREQ=WEEKLY;BYDAY=WE;TIME=09:00")

	wednesday := time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)
	if wednesday.Weekday() != time.Wednesday {
		t.Fatal("fixture is not a Wednesday")
	}
	if !r.Matches(wednesday) {
		t.Error("expected match on Wednesday 09:00")
	}
	monday := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	if r.Matches(monday) {
		t.Error("unexpected match on Monday 09:00")
	}
	if r.Matches(wednesday.Add(time.Minute)) {
		t.Error("unexpected match on Wednesday 09:01")
	}
}

func TestMonthlyMatches(t *testing.T) {
	r, _ := Parse("FREQ=MONTHLY;BYMONTHDAY=15;TIME=09:00")

	fifteenth := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	if !r.Matches(fifteenth) {
		t.Error("expected match on the 15th at 09:00")
	}
	if r.Matches(time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)) {
		t.Error("unexpected match on the 14th")
	}
}

func TestDescribe(t *testing.T) {
	r, _ := Parse("FREQ=WEEKLY;BYDAY=MO,WE;TIME=09:00")
	got := r.Describe()
	if got != "Weekly on Mon, Wed at 09:00" {
		t.Errorf("Describe() = %q", got)
	}
}
