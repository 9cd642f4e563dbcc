package engine_test

import (
	"testing"

	"github.com/warp/payroll-engine/engine"
)

func min(h, m int) engine.Minutes { return engine.Minutes(h*60 + m) }

func TestBreakDeduction(t *testing.T) {
	cases := []struct {
		name       string
		start, end engine.Minutes
		want       engine.Minutes
	}{
		// Shift spans past the end of the break: full hour deducted even
		// when the punch-in falls inside the break window.
		{"full day", min(8, 0), min(16, 0), 60},
		{"starts mid-break ends after", min(12, 30), min(14, 0), 60},
		// Shift contained before the break end: deduct only the overlap.
		{"ends before break", min(8, 0), min(11, 30), 0},
		{"ends mid-break", min(8, 0), min(12, 30), 30},
		{"entirely inside break", min(12, 30), min(13, 0), 30},
		// Afternoon shift never touches the break.
		{"afternoon only", min(13, 0), min(17, 0), 0},
		{"late afternoon", min(14, 0), min(16, 0), 0},
		// Overnight shift wraps past midnight; the lunch window is behind it.
		{"overnight", min(22, 0), min(6, 0), 0},
	}

	for _, c := range cases {
		if got := engine.BreakDeduction(c.start, c.end); got != c.want {
			t.Errorf("%s: BreakDeduction(%d, %d) = %d, want %d", c.name, c.start, c.end, got, c.want)
		}
	}
}

func TestNetWorked(t *testing.T) {
	// GIVEN a standard 08:00-17:00 day
	// THEN nine raw hours net to eight after the lunch break
	if got := engine.NetWorked(min(8, 0), min(17, 0)); got != 8*60 {
		t.Errorf("NetWorked(08:00, 17:00) = %d, want %d", got, 8*60)
	}

	// GIVEN a punch-out at or before the punch-in
	// THEN the span is treated as crossing midnight
	if got := engine.NetWorked(min(22, 0), min(2, 0)); got != 4*60 {
		t.Errorf("NetWorked(22:00, 02:00) = %d, want %d", got, 4*60)
	}

	// GIVEN a short morning shift overlapping the break
	if got := engine.NetWorked(min(9, 0), min(12, 30)); got != 3*60 {
		t.Errorf("NetWorked(09:00, 12:30) = %d, want %d", got, 3*60)
	}
}

func TestNetWorked_NeverNegative(t *testing.T) {
	// GIVEN a span shorter than the mandated break it forfeits by
	// crossing 13:00
	// THEN the net floors at zero instead of going negative
	cases := []struct{ in, out engine.Minutes }{
		{min(12, 50), min(13, 5)},
		{min(12, 30), min(13, 10)},
		{min(12, 59), min(13, 1)},
	}
	for _, c := range cases {
		if got := engine.NetWorked(c.in, c.out); got != 0 {
			t.Errorf("NetWorked(%d, %d) = %d, want 0", c.in, c.out, got)
		}
	}
}
