// Package timex contains time helpers shared by the config layer and the
// wire models: a JSON-friendly duration and the server's naive UTC
// timestamp format.
package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// Duration is a DTO wrapper that lets JSON config specify durations either
// as strings like "3s" or as integer nanoseconds.
type Duration struct {
	Duration time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}
