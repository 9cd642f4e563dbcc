/*
schedule.go - Weekly schedule resolution

PURPOSE:
  Merges an employee's per-weekday, per-role schedule entries (timed
  windows and hours-only supplemental commitments) into one resolved
  window per weekday. The resolution is an explicit fold over the tagged
  entry variants; no hidden mutable accumulation across roles.

MERGE RULES:
  - Multiple timed entries on a weekday merge into the widest span
    (min start, max end). Duration = merged span - 60 (the standing
    one-hour break assumption), floored at zero.
  - The window is instructional-origin when ANY contributing entry came
    from the instructional role. When instructional and non-instructional
    timed entries coexist, the instructional sub-window (merged over the
    instructional entries only) is kept for overlap-based paid-hour caps.
  - Supplemental hours accumulate additively. A weekday with only
    supplemental hours gets a synthetic window with HasTimes=false whose
    duration equals the supplemental minutes.
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RESOLVED WINDOW - One weekday's effective schedule
// =============================================================================

// ResolvedWindow is the effective schedule for one weekday.
type ResolvedWindow struct {
	Start Minutes
	End   Minutes

	// Expected net minutes for the timed window (span minus the standing
	// one-hour break, floored at 0). For synthetic hours-only windows this
	// equals Supplemental.
	Duration Minutes

	// HasTimes is false for synthetic windows built purely from
	// hours-only entries: no punches are expected against a clock window.
	HasTimes bool

	// Instructional is true when any contributing entry originated from
	// the instructional role.
	Instructional bool

	// Supplemental is the accumulated hours-only commitment in minutes.
	Supplemental Minutes

	// Mixed instructional + non-instructional timed window: the
	// instructional sub-window, merged over instructional entries only.
	Mixed      bool
	InstrStart Minutes
	InstrEnd   Minutes
}

// Expected returns the total expected minutes for the weekday.
func (w ResolvedWindow) Expected() Minutes {
	if !w.HasTimes {
		return w.Duration
	}
	return w.Duration + w.Supplemental
}

// InstrDuration returns the net duration of the instructional sub-window.
func (w ResolvedWindow) InstrDuration() Minutes {
	if !w.Mixed {
		return 0
	}
	return NetWorked(w.InstrStart, w.InstrEnd)
}

// WeeklySchedule maps weekdays to their resolved windows. Weekdays with
// no entries are simply absent: an unscheduled day, not an error.
type WeeklySchedule map[time.Weekday]ResolvedWindow

// MeanDuration returns the arithmetic mean of the resolved weekday
// durations in minutes, zero for an empty schedule. Decimal so that a
// mean with a remainder keeps its fraction for downstream rate math.
func (ws WeeklySchedule) MeanDuration() decimal.Decimal {
	if len(ws) == 0 {
		return decimal.Zero
	}
	var total Minutes
	for _, w := range ws {
		total += w.Duration
	}
	return decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(len(ws))))
}

// =============================================================================
// RESOLVER
// =============================================================================

// windowAccumulator tracks the per-weekday fold state.
type windowAccumulator struct {
	start, end           Minutes
	hasTimed             bool
	instrTimed           bool
	otherTimed           bool
	instrStart, instrEnd Minutes
	supplemental         Minutes
	supplInstr           bool
}

// ResolveSchedule folds the profile's schedule entries into one resolved
// window per weekday.
func ResolveSchedule(p *EmployeeProfile) WeeklySchedule {
	acc := map[time.Weekday]*windowAccumulator{}
	at := func(wd time.Weekday) *windowAccumulator {
		a, ok := acc[wd]
		if !ok {
			a = &windowAccumulator{}
			acc[wd] = a
		}
		return a
	}

	for _, e := range p.Schedule {
		a := at(e.Weekday)
		start, end := e.Start, e.End
		if end <= start {
			end += MinutesPerDay // overnight window
		}
		if !a.hasTimed {
			a.start, a.end = start, end
			a.hasTimed = true
		} else {
			a.start = minMinutes(a.start, start)
			a.end = maxMinutes(a.end, end)
		}
		if e.Origin.Instructional() {
			if !a.instrTimed {
				a.instrStart, a.instrEnd = start, end
			} else {
				a.instrStart = minMinutes(a.instrStart, start)
				a.instrEnd = maxMinutes(a.instrEnd, end)
			}
			a.instrTimed = true
		} else {
			a.otherTimed = true
		}
	}

	for _, e := range p.Supplemental {
		a := at(e.Weekday)
		a.supplemental += e.minutes()
		if e.Origin.Instructional() {
			a.supplInstr = true
		}
	}

	resolved := WeeklySchedule{}
	for wd, a := range acc {
		w := ResolvedWindow{
			Supplemental:  a.supplemental,
			Instructional: a.instrTimed || a.supplInstr,
		}
		if a.hasTimed {
			w.Start, w.End = a.start, a.end
			w.HasTimes = true
			w.Duration = maxMinutes(a.end-a.start-BreakLength, 0)
			if a.instrTimed && a.otherTimed {
				w.Mixed = true
				w.InstrStart, w.InstrEnd = a.instrStart, a.instrEnd
			}
		} else {
			// Hours-only weekday: no clock times expected.
			w.Duration = a.supplemental
		}
		resolved[wd] = w
	}
	return resolved
}
