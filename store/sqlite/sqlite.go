/*
Package sqlite provides the SQLite-backed implementation of the engine's
collaborator contracts.

PURPOSE:
  Persists the externally owned inputs - employee profiles with their
  weekly schedules, attendance punches, holiday observances, and leave
  windows - and serves them back through engine.DataSource. The engine
  itself never touches this package: MonthlyMetrics is derived, so
  nothing computed is ever stored.

KEY TABLES:
  employees:            profile core (roles as JSON, money as TEXT decimals)
  schedule_entries:     per-weekday timed windows, per role
  supplemental_entries: hours-only commitments, per role
  attendance:           raw punches, at most one row per employee per date
  observances:          calendar-wide holiday/suspension entries
  leave_windows:        inclusive leave date ranges

UPSERT SEMANTICS:
  attendance has UNIQUE(employee_id, date): re-importing a day replaces
  the punches rather than duplicating the row. Clock strings are stored
  raw and unvalidated - parsing garbage is the engine's contract.

WAL MODE:
  Opened with WAL and foreign keys on, same as any of our SQLite stores:
  multiple readers, single writer, better crash recovery.

SEE ALSO:
  - engine/source.go: the DataSource interface this implements
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
)

// Store implements engine.DataSource plus the write paths the API needs.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time check that Store satisfies the engine contract.
var _ engine.DataSource = (*Store)(nil)

// New creates a SQLite store at the given path. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		roles_json TEXT NOT NULL,
		base_salary TEXT NOT NULL DEFAULT '0',
		hourly_rate TEXT,
		hours_per_day TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS schedule_entries (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		weekday TEXT NOT NULL,
		start_min INTEGER NOT NULL,
		end_min INTEGER NOT NULL,
		origin TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_schedule_employee ON schedule_entries(employee_id);

	CREATE TABLE IF NOT EXISTS supplemental_entries (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		weekday TEXT NOT NULL,
		hours TEXT NOT NULL,
		origin TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_supplemental_employee ON supplemental_entries(employee_id);

	-- Raw punches. One row per employee per date; re-import replaces.
	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		clock_in TEXT,
		clock_out TEXT,
		created_at TEXT NOT NULL,
		UNIQUE(employee_id, date)
	);
	CREATE INDEX IF NOT EXISTS idx_attendance_employee_date
		ON attendance(employee_id, date);

	CREATE TABLE IF NOT EXISTS observances (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		kind TEXT NOT NULL DEFAULT '',
		cutoff TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_observances_date ON observances(date);

	CREATE TABLE IF NOT EXISTS leave_windows (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'approved',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_leaves_employee ON leave_windows(employee_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee writes the profile and replaces its schedule entries
// atomically. An existing employee with the same ID is overwritten.
func (s *Store) SaveEmployee(ctx context.Context, p engine.EmployeeProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rolesJSON, err := json.Marshal(p.Roles)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var hourlyRate any
	if p.HourlyRate != nil {
		hourlyRate = p.HourlyRate.String()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO employees (id, name, roles_json, base_salary, hourly_rate, hours_per_day, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			roles_json = excluded.roles_json,
			base_salary = excluded.base_salary,
			hourly_rate = excluded.hourly_rate,
			hours_per_day = excluded.hours_per_day`,
		p.ID, p.Name, string(rolesJSON), p.BaseSalary.String(), hourlyRate, p.HoursPerDay.String(), now())
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_entries WHERE employee_id = ?`, p.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM supplemental_entries WHERE employee_id = ?`, p.ID); err != nil {
		return err
	}

	for _, e := range p.Schedule {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO schedule_entries (id, employee_id, weekday, start_min, end_min, origin)
			VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), p.ID, engine.WeekdayCode(e.Weekday), int(e.Start), int(e.End), string(e.Origin))
		if err != nil {
			return err
		}
	}
	for _, e := range p.Supplemental {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO supplemental_entries (id, employee_id, weekday, hours, origin)
			VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), p.ID, engine.WeekdayCode(e.Weekday), e.Hours.String(), string(e.Origin))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// EmployeeProfile returns the full profile, or nil when unknown.
func (s *Store) EmployeeProfile(ctx context.Context, employeeID string) (*engine.EmployeeProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, roles_json, base_salary, hourly_rate, hours_per_day
		FROM employees WHERE id = ?`, employeeID)

	p, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadScheduleEntries(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListEmployees returns all profiles without their schedule entries.
func (s *Store) ListEmployees(ctx context.Context) ([]engine.EmployeeProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, roles_json, base_salary, hourly_rate, hours_per_day
		FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.EmployeeProfile
	for rows.Next() {
		p, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanEmployee(r rowScanner) (*engine.EmployeeProfile, error) {
	var p engine.EmployeeProfile
	var rolesJSON, baseSalary, hoursPerDay string
	var hourlyRate sql.NullString

	if err := r.Scan(&p.ID, &p.Name, &rolesJSON, &baseSalary, &hourlyRate, &hoursPerDay); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rolesJSON), &p.Roles); err != nil {
		return nil, err
	}

	var err error
	if p.BaseSalary, err = decimal.NewFromString(baseSalary); err != nil {
		return nil, err
	}
	if p.HoursPerDay, err = decimal.NewFromString(hoursPerDay); err != nil {
		return nil, err
	}
	if hourlyRate.Valid {
		rate, err := decimal.NewFromString(hourlyRate.String)
		if err != nil {
			return nil, err
		}
		p.HourlyRate = &rate
	}
	return &p, nil
}

func (s *Store) loadScheduleEntries(ctx context.Context, p *engine.EmployeeProfile) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT weekday, start_min, end_min, origin
		FROM schedule_entries WHERE employee_id = ?`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var weekday, origin string
		var start, end int
		if err := rows.Scan(&weekday, &start, &end, &origin); err != nil {
			return err
		}
		wd, ok := engine.ParseWeekday(weekday)
		if !ok {
			continue // tolerate dirty imports, same contract as the engine
		}
		p.Schedule = append(p.Schedule, engine.ScheduleEntry{
			Weekday: wd,
			Start:   engine.Minutes(start),
			End:     engine.Minutes(end),
			Origin:  engine.Role(origin),
		})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	supp, err := s.db.QueryContext(ctx, `
		SELECT weekday, hours, origin
		FROM supplemental_entries WHERE employee_id = ?`, p.ID)
	if err != nil {
		return err
	}
	defer supp.Close()

	for supp.Next() {
		var weekday, hours, origin string
		if err := supp.Scan(&weekday, &hours, &origin); err != nil {
			return err
		}
		wd, ok := engine.ParseWeekday(weekday)
		if !ok {
			continue
		}
		h, err := decimal.NewFromString(hours)
		if err != nil {
			continue
		}
		p.Supplemental = append(p.Supplemental, engine.SupplementalHourEntry{
			Weekday: wd,
			Hours:   h,
			Origin:  engine.Role(origin),
		})
	}
	return supp.Err()
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// UpsertAttendance writes one day's punches, replacing any existing row
// for the same (employee, date).
func (s *Store) UpsertAttendance(ctx context.Context, employeeID string, rec engine.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance (id, employee_id, date, clock_in, clock_out, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			clock_in = excluded.clock_in,
			clock_out = excluded.clock_out`,
		uuid.NewString(), employeeID, rec.Date.String(), rec.ClockIn, rec.ClockOut, now())
	return err
}

// Attendance returns the month's records for an employee.
func (s *Store) Attendance(ctx context.Context, employeeID string, period engine.YearMonth) ([]engine.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from := period.DateAt(1).String()
	to := period.DateAt(period.Days()).String()

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, COALESCE(clock_in, ''), COALESCE(clock_out, '')
		FROM attendance
		WHERE employee_id = ? AND date >= ? AND date <= ?
		ORDER BY date`, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.AttendanceRecord
	for rows.Next() {
		var dateStr string
		var rec engine.AttendanceRecord
		if err := rows.Scan(&dateStr, &rec.ClockIn, &rec.ClockOut); err != nil {
			return nil, err
		}
		d, err := engine.ParseDate(dateStr)
		if err != nil {
			continue
		}
		rec.Date = d
		out = append(out, rec)
	}
	return out, rows.Err()
}

// =============================================================================
// OBSERVANCES
// =============================================================================

// SaveObservance adds a calendar observance entry.
func (s *Store) SaveObservance(ctx context.Context, o engine.ObservanceEntry, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO observances (id, date, kind, cutoff, name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), o.Date.String(), string(o.Kind), o.Cutoff, name, now())
	return err
}

// Observances returns the full observance list; the engine filters by month.
func (s *Store) Observances(ctx context.Context) ([]engine.ObservanceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT date, kind, cutoff FROM observances ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.ObservanceEntry
	for rows.Next() {
		var dateStr, kind, cutoff string
		if err := rows.Scan(&dateStr, &kind, &cutoff); err != nil {
			return nil, err
		}
		d, err := engine.ParseDate(dateStr)
		if err != nil {
			continue
		}
		out = append(out, engine.ObservanceEntry{
			Date:   d,
			Kind:   engine.ObservanceKind(kind),
			Cutoff: cutoff,
		})
	}
	return out, rows.Err()
}

// =============================================================================
// LEAVE WINDOWS
// =============================================================================

// SaveLeaveWindow adds a leave window for an employee.
func (s *Store) SaveLeaveWindow(ctx context.Context, employeeID string, w engine.LeaveWindow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	end := ""
	if !w.End.IsZero() {
		end = w.End.String()
	}
	status := w.Status
	if status == "" {
		status = "approved"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_windows (id, employee_id, start_date, end_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), employeeID, w.Start.String(), end, status, now())
	return err
}

// LeaveWindows returns all leave windows for an employee.
func (s *Store) LeaveWindows(ctx context.Context, employeeID string) ([]engine.LeaveWindow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT start_date, end_date, status
		FROM leave_windows WHERE employee_id = ? ORDER BY start_date`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.LeaveWindow
	for rows.Next() {
		var startStr, endStr string
		var w engine.LeaveWindow
		if err := rows.Scan(&startStr, &endStr, &w.Status); err != nil {
			return nil, err
		}
		start, err := engine.ParseDate(startStr)
		if err != nil {
			continue
		}
		w.Start = start
		if endStr != "" {
			if end, err := engine.ParseDate(endStr); err == nil {
				w.End = end
			}
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
