package common

import (
	"fmt"
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

// ValidateInterval parses a watchdog poll interval given either as a Go
// duration string ("2s", "1m") or an ISO 8601 duration ("PT2S"). Anything
// under a second is rejected: the watchdog re-reads the whole log sink on
// every tick and sub-second polling just burns IO for no better latency.
func ValidateInterval(interval string) (time.Duration, error) {
	d, err := parseDuration(interval)
	if err != nil {
		return 0, err
	}
	if d < time.Second {
		return 0, fmt.Errorf("poll interval must be at least 1 second")
	}
	return d, nil
}

func parseDuration(duration string) (time.Duration, error) {

	duration = strings.TrimSpace(duration)

	if parsedDuration, err := time.ParseDuration(duration); err == nil {
		return parsedDuration, nil
	} else if isoDuration, err := iso8601.ParseISO8601(duration); err == nil {
		referenceTime := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		shiftedTime := isoDuration.Shift(referenceTime)
		return shiftedTime.Sub(referenceTime), nil
	}

	return 0, fmt.Errorf("invalid duration format: %s. Expect ISO 8601 or duration string", duration)
}
