package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseDateTime accepts RFC3339 first, then a date-time without a zone, then a bare date.
// Zoneless values are interpreted in loc.
func ParseDateTime(str string, loc *time.Location) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339Nano, str)
	if err == nil {
		return parsedDate, nil
	}

	parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, loc)
	if err == nil {
		return parsedDate, nil
	}

	parsedDate, err = time.ParseInLocation("2006-01-02", str, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", str, err)
	}

	return parsedDate, nil
}

type DateTime struct {
	Date time.Time
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	parsedDate, err := ParseDateTime(str, time.UTC)
	if err != nil {
		return err
	}

	*t = DateTime{Date: parsedDate}
	return nil
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format(time.RFC3339))
}
