package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/odooclock/internal/client/gateway"
	"github.com/dmitrijs2005/odooclock/internal/client/models"
	"github.com/dmitrijs2005/odooclock/internal/logging"
	"github.com/dmitrijs2005/odooclock/internal/timex"
)

// State classifies today's attendance for one employee. It is derived on
// every fetch and never stored.
type State string

const (
	// StateNone: no record with a check-in inside today's bounds.
	StateNone State = "none"
	// StateOpen: today's latest record has no check-out yet.
	StateOpen State = "checked-in"
	// StateClosed: today's latest record is checked out.
	StateClosed State = "checked-out"
)

// Status is the derived attendance status: the state plus today's latest
// record, when one exists.
type Status struct {
	State  State
	Record *models.Attendance
}

// CheckedIn reports whether the employee is currently clocked in.
func (s Status) CheckedIn() bool { return s.State == StateOpen }

// CheckInTime returns the open record's check-in instant, if clocked in.
func (s Status) CheckInTime() (time.Time, bool) {
	if !s.CheckedIn() || s.Record == nil {
		return time.Time{}, false
	}
	return s.Record.CheckIn.Time, true
}

// Transition is the punch action TogglePunch performed.
type Transition string

const (
	TransitionPunchIn  Transition = "punch-in"
	TransitionPunchOut Transition = "punch-out"
)

// AttendanceService reconciles remote attendance rows into a single
// coherent punched-in/out state and issues punch transitions.
type AttendanceService struct {
	gw  DatasetGateway
	log logging.Logger

	// now is a seam for tests; time.Now in production.
	now func() time.Time
}

func NewAttendanceService(gw DatasetGateway, log logging.Logger) *AttendanceService {
	return &AttendanceService{
		gw:  gw,
		log: log.With("component", "attendance"),
		now: time.Now,
	}
}

// DayBounds returns the wire-format bounds of now's calendar day in its own
// location: local midnight through local 23:59:59.999, each converted to a
// naive UTC string.
//
// The day is cut on the device's local calendar, not the server's timezone.
// When the two differ, records near midnight can land on either side of the
// boundary; this mirrors the server's web client convention and is accepted.
func DayBounds(now time.Time) (start, end string) {
	y, m, d := now.Date()
	loc := now.Location()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, loc)
	endOfDay := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	return timex.FormatWire(startOfDay), timex.FormatWire(endOfDay)
}

func (s *AttendanceService) decodeRecords(raw json.RawMessage) ([]models.Attendance, error) {
	var records []models.Attendance
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding attendance records: %w", err)
	}
	return records, nil
}

// TodayStatus derives the employee's current status from today's latest
// record. When several open records exist (the server does not forbid it),
// only the most recent one is authoritative; older ones are ignored.
func (s *AttendanceService) TodayStatus(ctx context.Context, employeeID int64) (Status, error) {
	start, end := DayBounds(s.now())

	raw, err := s.gw.SearchRead(ctx, models.ModelAttendance,
		gateway.Domain{
			gateway.Eq("employee_id", employeeID),
			gateway.Gte("check_in", start),
			gateway.Lte("check_in", end),
		},
		models.AttendanceFieldsBasic,
		&gateway.Options{Limit: 1, Order: "check_in desc"})
	if err != nil {
		return Status{}, err
	}

	records, err := s.decodeRecords(raw)
	if err != nil {
		return Status{}, err
	}

	if len(records) == 0 {
		return Status{State: StateNone}, nil
	}

	rec := records[0]
	if rec.Open() {
		return Status{State: StateOpen, Record: &rec}, nil
	}
	return Status{State: StateClosed, Record: &rec}, nil
}

// TogglePunch flips the employee's attendance: it re-derives today's status
// first (never trusting a cached one), then either closes the open record
// or creates a new one. A failed create/update aborts the toggle with no
// local state change; the server stays authoritative and callers re-fetch
// status afterwards.
func (s *AttendanceService) TogglePunch(ctx context.Context, employeeID int64) (Transition, error) {
	status, err := s.TodayStatus(ctx, employeeID)
	if err != nil {
		return "", err
	}

	instant := timex.FormatWire(s.now())

	if status.CheckedIn() {
		ok, err := s.gw.Write(ctx, models.ModelAttendance,
			[]int64{status.Record.ID},
			map[string]any{"check_out": instant})
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("punch out: server rejected update of record %d", status.Record.ID)
		}
		s.log.Info(ctx, "punched out", "employee_id", employeeID, "record_id", status.Record.ID)
		return TransitionPunchOut, nil
	}

	id, err := s.gw.Create(ctx, models.ModelAttendance, map[string]any{
		"employee_id": employeeID,
		"check_in":    instant,
	})
	if err != nil {
		return "", err
	}
	s.log.Info(ctx, "punched in", "employee_id", employeeID, "record_id", id)
	return TransitionPunchIn, nil
}

// OpenAttendance returns the employee's current open record regardless of
// day, or nil when none exists.
func (s *AttendanceService) OpenAttendance(ctx context.Context, employeeID int64) (*models.Attendance, error) {
	raw, err := s.gw.SearchRead(ctx, models.ModelAttendance,
		gateway.Domain{
			gateway.Eq("employee_id", employeeID),
			gateway.Unset("check_out"),
		},
		models.AttendanceFieldsBasic,
		&gateway.Options{Limit: 1})
	if err != nil {
		return nil, err
	}

	records, err := s.decodeRecords(raw)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// History returns the employee's most recent records, newest first.
func (s *AttendanceService) History(ctx context.Context, employeeID int64, limit int) ([]models.Attendance, error) {
	if limit <= 0 {
		limit = models.LimitMedium
	}

	raw, err := s.gw.SearchRead(ctx, models.ModelAttendance,
		gateway.Domain{gateway.Eq("employee_id", employeeID)},
		models.AttendanceFieldsBasic,
		&gateway.Options{Limit: limit, Order: "check_in desc"})
	if err != nil {
		return nil, err
	}
	return s.decodeRecords(raw)
}

// RecordListOptions filter and page a raw record listing.
type RecordListOptions struct {
	// EmployeeID, when non-zero, restricts to one employee.
	EmployeeID int64
	Limit      int
	Offset     int
	Fields     []string
}

// Records lists attendance rows matching the options, newest first.
func (s *AttendanceService) Records(ctx context.Context, opts RecordListOptions) ([]models.Attendance, error) {
	var domain gateway.Domain
	if opts.EmployeeID != 0 {
		domain = append(domain, gateway.Eq("employee_id", opts.EmployeeID))
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = models.LimitMedium
	}
	fields := opts.Fields
	if fields == nil {
		fields = models.AttendanceFieldsBasic
	}

	raw, err := s.gw.SearchRead(ctx, models.ModelAttendance, domain, fields,
		&gateway.Options{Limit: limit, Offset: opts.Offset, Order: "check_in desc"})
	if err != nil {
		return nil, err
	}
	return s.decodeRecords(raw)
}

// ByID fetches one record, or nil if it does not exist. A nil fields slice
// selects the detailed field set.
func (s *AttendanceService) ByID(ctx context.Context, id int64, fields []string) (*models.Attendance, error) {
	if fields == nil {
		fields = models.AttendanceFieldsDetailed
	}
	raw, err := s.gw.Read(ctx, models.ModelAttendance, []int64{id}, fields)
	if err != nil {
		return nil, err
	}

	records, err := s.decodeRecords(raw)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// Update writes arbitrary fields on one record.
func (s *AttendanceService) Update(ctx context.Context, id int64, values map[string]any) (bool, error) {
	return s.gw.Write(ctx, models.ModelAttendance, []int64{id}, values)
}

// Delete removes one record.
func (s *AttendanceService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.gw.Unlink(ctx, models.ModelAttendance, []int64{id})
}

// FormatDuration renders the time between check-in and check-out as
// "2h 30m", truncating toward zero. An open interval reads "in progress".
func FormatDuration(checkIn, checkOut timex.Stamp) string {
	if !checkOut.IsSet() {
		return "in progress"
	}
	d := checkOut.Time.Sub(checkIn.Time)
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
