package service

import (
	"math"
	"time"

	"emptrack_backend/internals/features/attendance/attendance_records/model"
	"emptrack_backend/internals/helpers/dbtime"
)

type SummaryOptions struct {
	// WorkingDays is the period length the rate is measured against; <= 0 gives rate 0.
	WorkingDays int
	// Limit caps how many of the (newest first) records count; 0 = all.
	Limit int
	// Loc is the timezone check-in clock times are read in.
	Loc *time.Location
}

type Summary struct {
	Total                 int            `json:"total"`
	ByStatus              map[string]int `json:"by_status"`
	WorkingDays           int            `json:"working_days"`
	AttendanceRate        float64        `json:"attendance_rate"`
	AverageCheckIn        string         `json:"average_check_in"`
	AverageCheckInMinutes int            `json:"average_check_in_minutes"`
}

// Summarize derives display statistics from already-fetched records.
func Summarize(records []model.AttendanceRecordModel, opts SummaryOptions) Summary {
	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}
	loc := opts.Loc
	if loc == nil {
		loc = time.UTC
	}

	out := Summary{
		Total:       len(records),
		ByStatus:    make(map[string]int, len(model.Statuses)),
		WorkingDays: opts.WorkingDays,
	}
	for _, st := range model.Statuses {
		out.ByStatus[st] = 0
	}

	var minutes []int
	for _, r := range records {
		out.ByStatus[r.Status]++
		if r.CheckIn != nil {
			minutes = append(minutes, dbtime.MinutesOfDay(*r.CheckIn, loc))
		}
	}

	out.AttendanceRate = AttendanceRate(out.ByStatus[model.StatusPresent]+out.ByStatus[model.StatusLate], opts.WorkingDays)
	out.AverageCheckIn, out.AverageCheckInMinutes = AverageClock(minutes)
	return out
}

// AttendanceRate = attended / workingDays * 100, two decimals, capped at 100
// when the window holds more attended days than the period has working days.
func AttendanceRate(attended, workingDays int) float64 {
	if workingDays <= 0 {
		return 0
	}
	if attended >= workingDays {
		return 100
	}
	rate := float64(attended) / float64(workingDays) * 100
	return math.Round(rate*100) / 100
}

// AverageClock is the integer mean (half up) of minutes-since-midnight
// values as "HH:MM". Empty input gives "", 0.
func AverageClock(minutes []int) (string, int) {
	if len(minutes) == 0 {
		return "", 0
	}
	sum := 0
	for _, m := range minutes {
		sum += m
	}
	n := len(minutes)
	mean := (2*sum + n) / (2 * n)
	return dbtime.FormatMinutes(mean), mean
}
