package schedule

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseTimestamp converts the timestamp shapes seen at ingestion boundaries
// into a UTC time. Accepted shapes, tried in order: a native time.Time, an
// RFC3339 or YYYY-MM-DD string, a wrapper object exposing unix seconds
// ({"seconds": n} or {"_seconds": n}), and a bare unix number (milliseconds
// when the magnitude is too large for seconds).
func ParseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case *time.Time:
		if t == nil {
			return time.Time{}, fmt.Errorf("nil timestamp")
		}
		return t.UTC(), nil
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed.UTC(), nil
		}
		parsed, err := time.Parse(dateLayout, t)
		if err != nil {
			return time.Time{}, fmt.Errorf("unparseable timestamp string %q", t)
		}
		return parsed.UTC(), nil
	case map[string]any:
		for _, key := range []string{"seconds", "_seconds"} {
			raw, ok := t[key]
			if !ok {
				continue
			}
			secs, err := toInt64(raw)
			if err != nil {
				return time.Time{}, fmt.Errorf("timestamp wrapper %s: %w", key, err)
			}
			return time.Unix(secs, 0).UTC(), nil
		}
		return time.Time{}, fmt.Errorf("timestamp wrapper missing seconds field")
	case float64:
		return unixGuess(int64(t)), nil
	case int64:
		return unixGuess(t), nil
	case int:
		return unixGuess(int64(t)), nil
	case json.Number:
		secs, err := t.Int64()
		if err != nil {
			return time.Time{}, err
		}
		return unixGuess(secs), nil
	case nil:
		return time.Time{}, fmt.Errorf("missing timestamp")
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case json.Number:
		return n.Int64()
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}

// unixGuess treats values past year 5000 in seconds as milliseconds.
func unixGuess(n int64) time.Time {
	if n > 100_000_000_000 {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

// DayStart floors to 00:00:00.000 UTC of the calendar day.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayEnd ceils to the last instant of the calendar day.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// NormalizeInterval resolves both ends of a raw interval and widens them to
// calendar-day boundaries.
func NormalizeInterval(start, end any) (time.Time, time.Time, error) {
	s, err := ParseTimestamp(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	e, err := ParseTimestamp(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	return DayStart(s), DayEnd(e), nil
}

// DateKey renders the YYYY-MM-DD key used for one-off overrides.
func DateKey(t time.Time) string {
	return DayStart(t).Format(dateLayout)
}
