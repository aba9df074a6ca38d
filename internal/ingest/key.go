package ingest

import (
	"fmt"
	"time"
)

const objectNamePrefix = "spotify_raw_"

// FormatTimestamp renders t as "2006-01-02 15:04:05", followed by six
// digits of microseconds when they are non-zero.
func FormatTimestamp(t time.Time) string {
	s := t.Format(time.DateTime)
	if us := t.Nanosecond() / int(time.Microsecond); us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

// ObjectKey builds the destination key for a payload stored at t.
// The invocation ID keeps keys unique when two runs share a timestamp.
func ObjectKey(prefix string, t time.Time, invocationID string) string {
	name := objectNamePrefix + FormatTimestamp(t)
	if invocationID != "" {
		name += "_" + invocationID
	}
	return prefix + name + ".json"
}
