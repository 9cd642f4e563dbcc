/*
breaks.go - The fixed midday break deduction policy

PURPOSE:
  Reduces a worked interval to its "net" duration by deducting the unpaid
  12:00-13:00 break. Applied identically everywhere a worked duration is
  netted; the 60-minute constant and the window are design constants.

RULES:
  - A span that crosses the 13:00 boundary forfeits the full 60 minutes,
    regardless of how much of the window it actually overlaps (the
    mandated-break rule).
  - Otherwise the deduction is exactly the overlap with [12:00, 13:00),
    zero when the span merely misses the window.
  - end <= start is an overnight span: the end is normalized past 24:00.
*/
package engine

// BreakDeduction returns the minutes to deduct from the worked interval
// [start, end) for the fixed midday break.
func BreakDeduction(start, end Minutes) Minutes {
	if end <= start {
		end += MinutesPerDay
	}

	// Crossing 13:00 mandates the full break.
	if start < BreakEnd && end > BreakEnd {
		return BreakLength
	}

	overlap := minMinutes(end, BreakEnd) - maxMinutes(start, BreakStart)
	if overlap < 0 {
		return 0
	}
	return overlap
}

// NetWorked returns the worked minutes in [in, out) after the break
// deduction, floored at zero. A sub-hour span crossing 13:00 forfeits
// the whole mandated break, so the deduction can exceed the span.
func NetWorked(in, out Minutes) Minutes {
	span := rawSpan(in, out)
	return maxMinutes(span-BreakDeduction(in, out), 0)
}

// rawSpan returns the clock-to-clock duration, treating out <= in as
// crossing midnight.
func rawSpan(in, out Minutes) Minutes {
	if out <= in {
		out += MinutesPerDay
	}
	return out - in
}
