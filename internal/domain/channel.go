package domain

import (
	"strconv"
	"time"
)

// Channel is a Slack conversation the tally is computed for.
type Channel struct {
	ID   string
	Name string
	// IsGlobalShared marks enterprise-wide shared channels.
	IsGlobalShared bool
}

// DateRange bounds the history window. A zero Start or End leaves that side open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsValid reports whether the range is usable.
func (dr *DateRange) IsValid() bool {
	return dr.Start.IsZero() || dr.End.IsZero() || dr.Start.Before(dr.End) || dr.Start.Equal(dr.End)
}

// SlackBounds returns the oldest/latest parameters for a history request.
// Unset sides are returned as empty strings. It is safe to call on a nil range.
func (dr *DateRange) SlackBounds() (oldest, latest string) {
	if dr == nil {
		return "", ""
	}
	if !dr.Start.IsZero() {
		oldest = formatEpochSeconds(dr.Start)
	}
	if !dr.End.IsZero() {
		latest = formatEpochSeconds(dr.End)
	}
	return oldest, latest
}

// EpochSeconds converts t to Slack's timestamp unit. Wall-clock milliseconds
// are divided by 1000, so sub-second precision survives as a fraction.
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}

func formatEpochSeconds(t time.Time) string {
	return strconv.FormatFloat(EpochSeconds(t), 'f', -1, 64)
}
