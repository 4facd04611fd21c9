package league

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Duration is a lap time. In JSON it is either a "[d.]hh:mm:ss[.fffffff]"
// string or a number of seconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}

	if len(data) > 0 && data[0] != '"' {
		var secs float64
		if err := json.Unmarshal(data, &secs); err != nil {
			return fmt.Errorf("lap time: %w", err)
		}
		*d = Duration(secs * float64(time.Second))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("lap time: %w", err)
	}
	v, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// String formats d as hh:mm:ss.fffffff.
func (d Duration) String() string {
	t := time.Duration(d)
	neg := t < 0
	if neg {
		t = -t
	}
	h := t / time.Hour
	t -= h * time.Hour
	m := t / time.Minute
	t -= m * time.Minute
	s := t / time.Second
	t -= s * time.Second

	out := fmt.Sprintf("%02d:%02d:%02d.%07d", h, m, s, t/100)
	if neg {
		return "-" + out
	}
	return out
}

// ParseDuration parses "[-][d.]hh:mm:ss[.fraction]".
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("lap time %q: want hh:mm:ss", s)
	}

	var days int64
	hours := parts[0]
	if i := strings.IndexByte(hours, '.'); i >= 0 {
		d, err := strconv.ParseInt(hours[:i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("lap time %q: days: %w", s, err)
		}
		days, hours = d, hours[i+1:]
	}

	h, err := strconv.ParseInt(hours, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("lap time %q: hours: %w", s, err)
	}
	m, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("lap time %q: minutes: %w", s, err)
	}
	secs, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("lap time %q: seconds: %w", s, err)
	}

	total := time.Duration(days)*24*time.Hour +
		time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(secs*float64(time.Second)+0.5)
	if neg {
		total = -total
	}
	return Duration(total), nil
}
