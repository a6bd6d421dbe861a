package store

import (
	"testing"
	"time"
)

func TestHolidayAddAndCheck(t *testing.T) {
	db := setupTestDB(t)
	hs := NewHolidayStore(db)

	date := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	h, err := hs.Add(date, "Christmas")
	if err != nil {
		t.Fatalf("add holiday: %v", err)
	}
	if h.Name != "Christmas" || !h.Date.Equal(date) {
		t.Errorf("holiday = %q %v", h.Name, h.Date)
	}

	hit, err := hs.IsHoliday(date)
	if err != nil {
		t.Fatalf("is holiday: %v", err)
	}
	if !hit {
		t.Error("expected holiday")
	}

	// Time-of-day is ignored
	hit, _ = hs.IsHoliday(time.Date(2025, 12, 25, 14, 30, 0, 0, time.UTC))
	if !hit {
		t.Error("expected holiday regardless of time-of-day")
	}

	hit, _ = hs.IsHoliday(date.AddDate(0, 0, 1))
	if hit {
		t.Error("unexpected holiday on the 26th")
	}
}

func TestHolidayRemove(t *testing.T) {
	db := setupTestDB(t)
	hs := NewHolidayStore(db)

	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := hs.Add(date, "New Year"); err != nil {
		t.Fatalf("add holiday: %v", err)
	}
	if err := hs.Remove(date); err != nil {
		t.Fatalf("remove holiday: %v", err)
	}

	hit, _ := hs.IsHoliday(date)
	if hit {
		t.Error("holiday should be gone")
	}
}

func TestHolidayList(t *testing.T) {
	db := setupTestDB(t)
	hs := NewHolidayStore(db)

	hs.Add(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), "Christmas")
	hs.Add(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "New Year")

	holidays, err := hs.List()
	if err != nil {
		t.Fatalf("list holidays: %v", err)
	}
	if len(holidays) != 2 {
		t.Fatalf("expected 2 holidays, got %d", len(holidays))
	}
	if holidays[0].Name != "New Year" {
		t.Errorf("first holiday = %q, want New Year", holidays[0].Name)
	}
}
