package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
)

func TestResolveSchedule_MergesTimedEntries(t *testing.T) {
	// GIVEN a registrar morning window and an instructional afternoon
	// window on the same weekday
	p := &engine.EmployeeProfile{
		Roles: []engine.Role{engine.RoleRegistrar, engine.RoleCollegeInstructor},
		Schedule: []engine.ScheduleEntry{
			{Weekday: time.Monday, Start: min(8, 0), End: min(12, 0), Origin: engine.RoleRegistrar},
			{Weekday: time.Monday, Start: min(13, 0), End: min(17, 0), Origin: engine.RoleCollegeInstructor},
		},
	}

	// WHEN the schedule is resolved
	sched := engine.ResolveSchedule(p)

	// THEN Monday is one widest-span window with the instructional
	// sub-window preserved
	w, ok := sched[time.Monday]
	if !ok {
		t.Fatal("expected a Monday window")
	}
	if w.Start != min(8, 0) || w.End != min(17, 0) {
		t.Errorf("merged span = %d-%d, want %d-%d", w.Start, w.End, min(8, 0), min(17, 0))
	}
	if w.Duration != 8*60 {
		t.Errorf("duration = %d, want 480", w.Duration)
	}
	if !w.Mixed || !w.Instructional {
		t.Errorf("want a mixed instructional window, got mixed=%v instructional=%v", w.Mixed, w.Instructional)
	}
	if w.InstrStart != min(13, 0) || w.InstrEnd != min(17, 0) {
		t.Errorf("instructional sub-window = %d-%d, want %d-%d", w.InstrStart, w.InstrEnd, min(13, 0), min(17, 0))
	}
	if w.InstrDuration() != 4*60 {
		t.Errorf("InstrDuration = %d, want 240", w.InstrDuration())
	}
}

func TestResolveSchedule_HoursOnlyWeekday(t *testing.T) {
	// GIVEN an instructor with a 4-hour Wednesday commitment and no
	// timed windows
	p := &engine.EmployeeProfile{
		Roles: []engine.Role{engine.RoleCollegeInstructor},
		Supplemental: []engine.SupplementalHourEntry{
			{Weekday: time.Wednesday, Hours: decimal.NewFromInt(4), Origin: engine.RoleCollegeInstructor},
		},
	}

	sched := engine.ResolveSchedule(p)

	// THEN Wednesday gets a synthetic window with no clock times
	w, ok := sched[time.Wednesday]
	if !ok {
		t.Fatal("expected a Wednesday window")
	}
	if w.HasTimes {
		t.Error("hours-only window should have HasTimes=false")
	}
	if w.Duration != 4*60 || w.Expected() != 4*60 {
		t.Errorf("duration = %d, expected = %d, want 240 for both", w.Duration, w.Expected())
	}
	if !w.Instructional {
		t.Error("window should carry the instructional origin")
	}
}

func TestResolveSchedule_SupplementalOnTopOfTimed(t *testing.T) {
	// GIVEN a timed window plus hours-only load on the same weekday
	p := &engine.EmployeeProfile{
		Schedule: []engine.ScheduleEntry{
			{Weekday: time.Friday, Start: min(8, 0), End: min(17, 0), Origin: engine.RoleStaff},
		},
		Supplemental: []engine.SupplementalHourEntry{
			{Weekday: time.Friday, Hours: decimal.NewFromInt(2), Origin: engine.RoleCollegeInstructor},
		},
	}

	w := engine.ResolveSchedule(p)[time.Friday]

	// THEN the expected minutes stack on top of the timed duration
	if w.Duration != 8*60 {
		t.Errorf("duration = %d, want 480", w.Duration)
	}
	if w.Supplemental != 2*60 {
		t.Errorf("supplemental = %d, want 120", w.Supplemental)
	}
	if w.Expected() != 10*60 {
		t.Errorf("expected = %d, want 600", w.Expected())
	}
}

func TestResolveSchedule_OvernightWindow(t *testing.T) {
	// GIVEN an end time at or before the start
	p := &engine.EmployeeProfile{
		Schedule: []engine.ScheduleEntry{
			{Weekday: time.Saturday, Start: min(22, 0), End: min(6, 0), Origin: engine.RoleStaff},
		},
	}

	w := engine.ResolveSchedule(p)[time.Saturday]

	// THEN the window extends past midnight
	if w.End != min(6, 0)+engine.MinutesPerDay {
		t.Errorf("end = %d, want %d", w.End, min(6, 0)+engine.MinutesPerDay)
	}
	if w.Duration != 7*60 {
		t.Errorf("duration = %d, want 420", w.Duration)
	}
}

func TestWeeklySchedule_MeanDuration(t *testing.T) {
	sched := engine.WeeklySchedule{
		time.Monday:  {Duration: 8 * 60},
		time.Tuesday: {Duration: 6 * 60},
	}
	if got := sched.MeanDuration(); !got.Equal(decimal.NewFromInt(7 * 60)) {
		t.Errorf("MeanDuration = %s, want 420", got)
	}
	if got := (engine.WeeklySchedule{}).MeanDuration(); !got.IsZero() {
		t.Errorf("empty MeanDuration = %s, want 0", got)
	}

	// A mean with a remainder keeps its fraction instead of truncating.
	sched[time.Wednesday] = engine.ResolvedWindow{Duration: 415}
	want := decimal.NewFromInt(480 + 360 + 415).Div(decimal.NewFromInt(3))
	if got := sched.MeanDuration(); !got.Equal(want) {
		t.Errorf("MeanDuration = %s, want %s", got, want)
	}
	if got := sched.MeanDuration(); got.Equal(decimal.NewFromInt(418)) {
		t.Error("MeanDuration truncated the remainder")
	}
}
