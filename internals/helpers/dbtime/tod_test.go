package dbtime

import (
	"testing"
	"time"
)

func TestMinutesOfDayAndFormat(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	ts := time.Date(2026, 3, 2, 2, 30, 0, 0, time.UTC)

	if got := MinutesOfDay(ts, jakarta); got != 570 {
		t.Fatalf("MinutesOfDay = %d, want 570", got)
	}
	if got := MinutesOfDay(ts, nil); got != 150 {
		t.Fatalf("MinutesOfDay(UTC) = %d, want 150", got)
	}

	for in, want := range map[int]string{0: "00:00", 540: "09:00", 1439: "23:59", 1440: "00:00", -60: "23:00"} {
		if got := FormatMinutes(in); got != want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", in, got, want)
		}
	}

	m, err := ParseClock(" 08:45 ")
	if err != nil || m != 525 {
		t.Fatalf("ParseClock = %d, %v", m, err)
	}
	if _, err := ParseClock("8.45"); err == nil {
		t.Fatal("expected error for malformed clock")
	}
}

func TestDayBoundaries(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	// 23:30 UTC on the 1st is already the 2nd in Jakarta
	late := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)

	start := StartOfDay(late, jakarta)
	if start.Day() != 2 || start.Hour() != 0 {
		t.Fatalf("StartOfDay = %s", start)
	}
	if SameDay(late, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), jakarta) {
		t.Fatal("different Jakarta days reported as same")
	}
	if !SameDay(late, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), jakarta) {
		t.Fatal("same Jakarta day reported as different")
	}

	d, err := ParseDate("2026-03-02", jakarta)
	if err != nil || !d.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, jakarta)) {
		t.Fatalf("ParseDate = %s, %v", d, err)
	}
	if d, err := ParseDate("", jakarta); err != nil || !d.IsZero() {
		t.Fatalf("ParseDate(empty) = %s, %v", d, err)
	}
	if _, err := ParseDate("02/03/2026", jakarta); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
