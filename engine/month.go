/*
month.go - The monthly aggregator

PURPOSE:
  Drives the day evaluator across every calendar day of the target month
  and sums the contributions into MonthlyMetrics. Pure function: no side
  effects, no caching, idempotent for identical inputs.

GUARANTEES:
  - Every day 1..daysInMonth is evaluated exactly once, whether or not an
    attendance record exists for it.
  - Minute accumulators are summed first; conversion to 2-decimal hours
    happens once at the end, so rounding error never compounds per day.
  - An unparseable period yields ErrInvalidPeriod and zero metrics,
    never a partial computation.
*/
package engine

// Options tunes the aggregation. The zero value is the default behavior.
type Options struct {
	// ObservanceMode selects the half-holiday payment behavior.
	ObservanceMode ObservanceMode
}

// Compute aggregates one employee's month. Inputs are treated as
// immutable snapshots; the engine filters observances and leave windows
// to the target month itself.
func Compute(p *EmployeeProfile, period YearMonth, records []AttendanceRecord, observances []ObservanceEntry, leaves []LeaveWindow, opts Options) (MonthlyMetrics, error) {
	if p == nil {
		return MonthlyMetrics{}, ErrNilProfile
	}
	if period.IsZero() || period.Days() <= 0 {
		return MonthlyMetrics{}, ErrInvalidPeriod
	}

	sched := ResolveSchedule(p)

	// At most one attendance record per employee per date; last one wins
	// for dirty inputs that violate that.
	byDay := make(map[int]*AttendanceRecord, len(records))
	for i := range records {
		if period.Contains(records[i].Date) {
			byDay[records[i].Date.Day] = &records[i]
		}
	}

	monthObs := make([]ObservanceEntry, 0, len(observances))
	for _, o := range observances {
		if period.Contains(o.Date) {
			monthObs = append(monthObs, o)
		}
	}

	var total Contribution
	for day := 1; day <= period.Days(); day++ {
		date := period.DateAt(day)
		ctx := Classify(p, sched, date, byDay[day], monthObs, leaves)
		c := Evaluate(p, ctx, opts.ObservanceMode)

		total.Tardy += c.Tardy
		total.Undertime += c.Undertime
		total.Absence += c.Absence
		total.Worked += c.Worked
		total.Overtime += c.Overtime
		total.WeekdayOT += c.WeekdayOT
		total.WeekendOT += c.WeekendOT
		total.ObservanceOT += c.ObservanceOT
		total.InstructionalPaid += c.InstructionalPaid
	}

	return MonthlyMetrics{
		EmployeeID:         p.ID,
		Period:             period,
		Tardiness:          total.Tardy.Hours(),
		Undertime:          total.Undertime.Hours(),
		Absences:           total.Absence.Hours(),
		Overtime:           total.Overtime.Hours(),
		WeekdayOvertime:    total.WeekdayOT.Hours(),
		WeekendOvertime:    total.WeekendOT.Hours(),
		ObservanceOvertime: total.ObservanceOT.Hours(),
		TotalWorked:        total.Worked.Hours(),
		InstructionalPaid:  total.InstructionalPaid.Hours(),
	}, nil
}
