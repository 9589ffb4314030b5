package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// WireLayout is the server's timestamp format: naive (no timezone
// designator), interpreted as UTC by convention between client and server.
const WireLayout = "2006-01-02 15:04:05"

// FormatWire serializes t in the server's naive UTC format.
func FormatWire(t time.Time) string {
	return t.UTC().Format(WireLayout)
}

// ParseWire parses a naive server timestamp as UTC.
func ParseWire(s string) (time.Time, error) {
	t, err := time.ParseInLocation(WireLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid wire timestamp %q: %w", s, err)
	}
	return t, nil
}

// Stamp is an optional wire timestamp. The server reports unset datetime
// fields as JSON false rather than null, so decoding accepts false, null,
// and the naive string form. The zero value is "unset".
type Stamp struct {
	time.Time
}

// IsSet reports whether the stamp carries a value.
func (s Stamp) IsSet() bool {
	return !s.Time.IsZero()
}

func (s Stamp) MarshalJSON() ([]byte, error) {
	if !s.IsSet() {
		return []byte("false"), nil
	}
	return json.Marshal(FormatWire(s.Time))
}

func (s *Stamp) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case nil:
		s.Time = time.Time{}
		return nil
	case bool:
		// false means "field not set"
		if value {
			return fmt.Errorf("unexpected boolean true for timestamp")
		}
		s.Time = time.Time{}
		return nil
	case string:
		t, err := ParseWire(value)
		if err != nil {
			return err
		}
		s.Time = t
		return nil
	default:
		return fmt.Errorf("unexpected timestamp value %v", v)
	}
}
