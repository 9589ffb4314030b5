package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/odooclock/internal/client/services"
)

// employeeID returns the configured employee id, reporting a usable error
// message to the user when it is missing.
func (a *App) employeeID() (int64, error) {
	if a.config.EmployeeID == 0 {
		printlnFn("No employee id configured. Set it with the -e flag or ODOO_EMPLOYEE_ID.")
		return 0, fmt.Errorf("employee id not configured")
	}
	return a.config.EmployeeID, nil
}

// Status shows today's attendance state for the configured employee.
func (a *App) Status(ctx context.Context) error {
	employeeID, err := a.employeeID()
	if err != nil {
		return err
	}

	status, err := a.attendance.TodayStatus(ctx, employeeID)
	if err != nil {
		printlnFn("Status failed:", err.Error())
		return err
	}

	switch status.State {
	case services.StateNone:
		printlnFn("Not checked in today.")
	case services.StateOpen:
		printlnFn(fmt.Sprintf("Checked in since %s (%s).",
			status.Record.CheckIn.Format("15:04"),
			services.FormatDuration(status.Record.CheckIn, status.Record.CheckOut)))
	case services.StateClosed:
		printlnFn(fmt.Sprintf("Checked out. Last interval: %s.",
			services.FormatDuration(status.Record.CheckIn, status.Record.CheckOut)))
	}
	return nil
}

// Punch flips the attendance state and reports the transition performed.
func (a *App) Punch(ctx context.Context) error {
	employeeID, err := a.employeeID()
	if err != nil {
		return err
	}

	transition, err := a.attendance.TogglePunch(ctx, employeeID)
	if err != nil {
		printlnFn("Punch failed:", err.Error())
		return err
	}

	switch transition {
	case services.TransitionPunchIn:
		printlnFn("Punched in.")
	case services.TransitionPunchOut:
		printlnFn("Punched out.")
	}
	return nil
}

// History lists the most recent attendance records, newest first. An optional
// numeric argument overrides how many records are shown.
func (a *App) History(ctx context.Context, args []string) error {
	employeeID, err := a.employeeID()
	if err != nil {
		return err
	}

	limit := 0
	if len(args) > 0 {
		limit, err = strconv.Atoi(args[0])
		if err != nil || limit <= 0 {
			printlnFn("Usage: history [n]")
			return fmt.Errorf("invalid history limit %q", args[0])
		}
	}

	records, err := a.attendance.History(ctx, employeeID, limit)
	if err != nil {
		printlnFn("History failed:", err.Error())
		return err
	}

	if len(records) == 0 {
		printlnFn("No attendance records.")
		return nil
	}

	for _, rec := range records {
		out := "..."
		if rec.CheckOut.IsSet() {
			out = rec.CheckOut.Format("15:04")
		}
		printlnFn(fmt.Sprintf("%s  %s - %s  %s",
			rec.CheckIn.Format("2006-01-02"),
			rec.CheckIn.Format("15:04"),
			out,
			services.FormatDuration(rec.CheckIn, rec.CheckOut)))
	}
	return nil
}
