// Package time converts between marketplace timestamps and unix seconds
package time

import (
	"time"

	perr "sellerbot/internal/platform/errors"
)

// ParseUnix parses an RFC3339 timestamp (with or without fractional seconds) into unix seconds.
// Pre-epoch instants clamp to 0
func ParseUnix(s string) (uint64, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeJSON, "bad timestamp %q", s)
	}
	if u := t.Unix(); u > 0 {
		return uint64(u), nil
	}
	return 0, nil
}

// FormatUnix renders unix seconds as RFC3339 in UTC
func FormatUnix(sec uint64) string {
	return time.Unix(int64(sec), 0).UTC().Format(time.RFC3339)
}

// NowUnix returns the current unix time in seconds
func NowUnix() uint64 { return uint64(time.Now().Unix()) }
