// Package models defines the wire-level record types exchanged with the
// server and the optional-value JSON types they require. The server reports
// unset fields as JSON false rather than null, so every optional field uses
// a type that tolerates false.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/odooclock/internal/timex"
)

// Profile is a connection profile. Immutable once a session is established;
// replacing it requires a new session.
type Profile struct {
	URL      string
	Database string
	Username string
	Password string
}

// Complete reports whether all fields required to authenticate are present.
func (p Profile) Complete() bool {
	return p.URL != "" && p.Database != "" && p.Username != "" && p.Password != ""
}

// OptString is a string field the server may report as false when unset.
type OptString string

func (s *OptString) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case nil:
		*s = ""
	case bool:
		*s = ""
	case string:
		*s = OptString(value)
	default:
		return fmt.Errorf("unexpected string value %v", v)
	}
	return nil
}

// OptFloat is a numeric field the server may report as false when unset.
// Zero doubles as "absent", matching the upstream falsy treatment of
// coordinates.
type OptFloat float64

func (f *OptFloat) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case nil:
		*f = 0
	case bool:
		*f = 0
	case float64:
		*f = OptFloat(value)
	default:
		return fmt.Errorf("unexpected numeric value %v", v)
	}
	return nil
}

// Many2One is a relational field. search_read returns it as an
// [id, display_name] pair, create accepts a bare id, and unset relations
// arrive as false.
type Many2One struct {
	ID   int64
	Name string
}

func (m *Many2One) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case nil:
		*m = Many2One{}
	case bool:
		*m = Many2One{}
	case float64:
		m.ID = int64(value)
		m.Name = ""
	case []any:
		if len(value) != 2 {
			return fmt.Errorf("unexpected relation tuple of length %d", len(value))
		}
		id, ok := value[0].(float64)
		if !ok {
			return fmt.Errorf("unexpected relation id %v", value[0])
		}
		name, ok := value[1].(string)
		if !ok {
			return fmt.Errorf("unexpected relation name %v", value[1])
		}
		m.ID = int64(id)
		m.Name = name
	default:
		return fmt.Errorf("unexpected relation value %v", v)
	}
	return nil
}

func (m Many2One) MarshalJSON() ([]byte, error) {
	if m.ID == 0 {
		return []byte("false"), nil
	}
	return json.Marshal(m.ID)
}

// Attendance is one attendance row. A row with an unset CheckOut is "open":
// the employee is currently clocked in.
type Attendance struct {
	ID         int64       `json:"id"`
	EmployeeID Many2One    `json:"employee_id"`
	CheckIn    timex.Stamp `json:"check_in"`
	CheckOut   timex.Stamp `json:"check_out"`

	InLatitude   OptFloat  `json:"in_latitude"`
	InLongitude  OptFloat  `json:"in_longitude"`
	OutLatitude  OptFloat  `json:"out_latitude"`
	OutLongitude OptFloat  `json:"out_longitude"`
	InMode       OptString `json:"in_mode"`

	InCity         OptString `json:"in_city"`
	InCountryName  OptString `json:"in_country_name"`
	OutCity        OptString `json:"out_city"`
	OutCountryName OptString `json:"out_country_name"`
}

// Open reports whether the record has no check-out yet.
func (a Attendance) Open() bool {
	return a.CheckIn.IsSet() && !a.CheckOut.IsSet()
}

// Partner is a contact record.
type Partner struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     OptString `json:"email"`
	Phone     OptString `json:"phone"`
	City      OptString `json:"city"`
	IsCompany bool      `json:"is_company"`
}
