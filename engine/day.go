/*
day.go - Per-day classification and evaluation

PURPOSE:
  The decision procedure for a single (employee, date). Classification is
  an explicit ordered match producing a tagged DayContext; evaluation
  turns the context into a Contribution of minute deltas. Keeping the two
  steps separate makes the precedence auditable and each state testable
  in isolation.

PRECEDENCE (strict, first match wins):
  1. Leave window            -> contributes nothing, terminal
  2. Whole-holiday observance-> punched span counts as observance overtime
  3. Half-holiday observance -> same, optionally capped at the cutoff
  4. Scheduled, no punches   -> expected duration becomes absence
  5. Scheduled, punched      -> normal / hours-only / instructional /
                                mixed-window accounting
  6. Unscheduled, punched    -> net worked counts entirely as overtime
  7. Unscheduled, no punches -> contributes nothing

INSTRUCTIONAL RULES:
  An employee holding only the instructional role accrues absences for
  deficits but never tardiness, undertime, or overtime. Holding further
  roles on top unlocks weekday overtime for time beyond the expected
  duration. Mixed windows pay instructional hours by overlap with the
  instructional sub-window, capped at that sub-window's duration, with
  leftover worked time paying any hours-only commitment up to its cap.
*/
package engine

// =============================================================================
// OBSERVANCE MODE
// =============================================================================

// ObservanceMode selects how half-holiday observances pay punched time.
// The source system exhibits both behaviors in different modules; both are
// kept as explicit variants rather than silently unified.
type ObservanceMode int

const (
	// ObservePayFullSpan pays the full punched span (the engine-side default).
	ObservePayFullSpan ObservanceMode = iota

	// ObserveCapAtCutoff caps the paid span at the observance cutoff time.
	ObserveCapAtCutoff
)

// =============================================================================
// DAY CONTEXT - Tagged union of day classifications
// =============================================================================

type DayKind int

const (
	DayLeave DayKind = iota
	DayObservance
	DayScheduledAbsent
	DayScheduledNormal
	DayHoursOnly
	DayInstructional
	DayMixed
	DayUnscheduledWorked
	DayIdle
)

// DayContext is the classified state of one calendar day.
type DayContext struct {
	Date Date
	Kind DayKind

	Window    ResolvedWindow
	HasWindow bool

	// Normalized punches; Punched is true only when BOTH are valid times.
	// Out is extended past 24:00 for overnight punches.
	In, Out Minutes
	Punched bool

	Observance *ObservanceEntry
}

// Classify runs the ordered match for one calendar day.
func Classify(p *EmployeeProfile, sched WeeklySchedule, date Date, rec *AttendanceRecord, observances []ObservanceEntry, leaves []LeaveWindow) DayContext {
	ctx := DayContext{Date: date}
	ctx.Window, ctx.HasWindow = sched[date.Weekday()]

	if rec != nil {
		in, inOK := ParseClock(rec.ClockIn)
		out, outOK := ParseClock(rec.ClockOut)
		if inOK && outOK {
			if out <= in {
				out += MinutesPerDay
			}
			ctx.In, ctx.Out, ctx.Punched = in, out, true
		}
	}

	// 1. Leave beats everything, observances included.
	for _, w := range leaves {
		if w.Approved() && w.Contains(date) {
			ctx.Kind = DayLeave
			return ctx
		}
	}

	// 2-3. Observances: punched time is excused overtime, absence never accrues.
	for i := range observances {
		if observances[i].Date.Equal(date) {
			ctx.Kind = DayObservance
			ctx.Observance = &observances[i]
			return ctx
		}
	}

	if ctx.HasWindow {
		if !ctx.Punched {
			ctx.Kind = DayScheduledAbsent
			return ctx
		}
		switch {
		case !ctx.Window.HasTimes:
			ctx.Kind = DayHoursOnly
		case ctx.Window.Mixed:
			ctx.Kind = DayMixed
		case ctx.Window.Instructional:
			ctx.Kind = DayInstructional
		default:
			ctx.Kind = DayScheduledNormal
		}
		return ctx
	}

	if ctx.Punched {
		ctx.Kind = DayUnscheduledWorked
	} else {
		ctx.Kind = DayIdle
	}
	return ctx
}

// =============================================================================
// CONTRIBUTION - Minute deltas one day adds to the monthly totals
// =============================================================================

// Contribution is what one evaluated day adds to the month. All fields
// are minutes; the aggregator converts to hours once at the end.
type Contribution struct {
	Tardy     Minutes
	Undertime Minutes
	Absence   Minutes

	Worked Minutes

	Overtime     Minutes
	WeekdayOT    Minutes
	WeekendOT    Minutes
	ObservanceOT Minutes

	InstructionalPaid Minutes
}

// Evaluate produces the day's contribution from its classified context.
func Evaluate(p *EmployeeProfile, ctx DayContext, mode ObservanceMode) Contribution {
	switch ctx.Kind {
	case DayLeave, DayIdle:
		return Contribution{}
	case DayObservance:
		return evalObservance(ctx, mode)
	case DayScheduledAbsent:
		return Contribution{Absence: ctx.Window.Expected()}
	case DayScheduledNormal:
		return evalNormal(ctx)
	case DayHoursOnly:
		return evalHoursOnly(p, ctx)
	case DayInstructional:
		return evalInstructional(p, ctx)
	case DayMixed:
		return evalMixed(ctx)
	case DayUnscheduledWorked:
		return evalUnscheduled(ctx)
	default:
		return Contribution{}
	}
}

// evalObservance: the whole punched span counts raw (no break deduction)
// into total worked and observance overtime. Missing punches excuse the
// day entirely; it is never counted absent.
func evalObservance(ctx DayContext, mode ObservanceMode) Contribution {
	if !ctx.Punched {
		return Contribution{}
	}
	out := ctx.Out
	o := ctx.Observance
	if mode == ObserveCapAtCutoff && !o.IsWhole() {
		if cutoff, ok := ParseClock(o.Cutoff); ok {
			if cutoff <= ctx.In {
				return Contribution{}
			}
			out = minMinutes(out, cutoff)
		}
	}
	span := out - ctx.In
	return Contribution{Worked: span, Overtime: span, ObservanceOT: span}
}

// evalNormal: the standard scheduled-day accounting. Tardiness against
// the window start, undertime against the window end, overtime beyond
// the expected net duration, bucketed weekday/weekend by the date.
func evalNormal(ctx DayContext) Contribution {
	w := ctx.Window
	net := NetWorked(ctx.In, ctx.Out)

	c := Contribution{Worked: net}
	c.Tardy = maxMinutes(ctx.In-w.Start, 0)
	c.Undertime = maxMinutes(w.End-ctx.Out, 0)
	addOvertime(&c, maxMinutes(net-w.Duration, 0), ctx.Date)
	return c
}

// evalHoursOnly: an hours-only commitment has no clock window, so a
// shortfall is absence rather than undertime. Overtime only unlocks when
// the employee holds non-instructional roles besides the commitment.
func evalHoursOnly(p *EmployeeProfile, ctx DayContext) Contribution {
	w := ctx.Window
	net := NetWorked(ctx.In, ctx.Out)
	expected := w.Duration

	c := Contribution{Worked: net}
	if net < expected {
		c.Absence = expected - net
	} else if p.HasNonInstructionalRole() {
		addOvertime(&c, net-expected, ctx.Date)
	}
	if w.Instructional {
		c.InstructionalPaid = minMinutes(net, expected)
	}
	return c
}

// evalInstructional: a window wholly owned by the instructional role.
// Deficits versus the expected duration are absences; there is no
// separate tardy/undertime accounting. Excess beyond expected becomes
// weekday overtime only when the employee holds additional roles.
func evalInstructional(p *EmployeeProfile, ctx DayContext) Contribution {
	w := ctx.Window
	net := NetWorked(ctx.In, ctx.Out)
	expected := w.Expected()

	c := Contribution{Worked: net}
	if net < expected {
		c.Absence = expected - net
	} else if p.HasNonInstructionalRole() && net > expected {
		excess := net - expected
		c.Overtime = excess
		c.WeekdayOT = excess
	}
	c.InstructionalPaid = minMinutes(net, expected)
	return c
}

// evalMixed: a resolved window shared between instructional and
// non-instructional roles. The merged window follows normal accounting;
// instructional-paid minutes are the punch overlap with the instructional
// sub-window (break rule re-applied to the overlap), capped at the
// sub-window duration, with leftover worked time paying any hours-only
// commitment up to its own cap.
func evalMixed(ctx DayContext) Contribution {
	w := ctx.Window
	c := evalNormal(ctx)
	net := c.Worked

	var instr Minutes
	start := maxMinutes(ctx.In, w.InstrStart)
	end := minMinutes(ctx.Out, w.InstrEnd)
	if end > start {
		// The overlap can be shorter than the mandated break it forfeits.
		instr = maxMinutes(end-start-BreakDeduction(start, end), 0)
		instr = minMinutes(instr, w.InstrDuration())
	}

	leftover := maxMinutes(net-instr, 0)
	c.InstructionalPaid = instr + minMinutes(leftover, w.Supplemental)
	return c
}

// evalUnscheduled: work on an off day is entirely overtime.
func evalUnscheduled(ctx DayContext) Contribution {
	net := NetWorked(ctx.In, ctx.Out)
	c := Contribution{Worked: net}
	addOvertime(&c, net, ctx.Date)
	return c
}

func addOvertime(c *Contribution, minutes Minutes, date Date) {
	if minutes <= 0 {
		return
	}
	c.Overtime += minutes
	if date.IsWeekend() {
		c.WeekendOT += minutes
	} else {
		c.WeekdayOT += minutes
	}
}
