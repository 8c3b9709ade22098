package codec

import (
	"time"

	dberr "flexdb/pkg/error"
)

const secondsPerDay = 24 * 60 * 60

// DateOffset is subtracted from the stored day number to get days since Epoch.
const DateOffset = 700003

// Epoch is day zero of the on-disk date encoding.
var Epoch = time.Date(1642, time.September, 17, 0, 0, 0, 0, time.UTC)

// Date decodes an unsigned BCD day number. ok is false when the day number
// falls before Epoch, which is how empty date fields are stored.
func Date(data []byte) (date time.Time, ok bool, err error) {
	n, err := Int(data, false)
	if err != nil {
		return time.Time{}, false, dberr.DateDecoding("invalid day number").WithCause(err)
	}

	days := n - DateOffset
	if days < 0 {
		return time.Time{}, false, nil
	}
	return Epoch.AddDate(0, 0, int(days)), true, nil
}

// DayNumber is the inverse of Date: the stored day number for t.
func DayNumber(t time.Time) int64 {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return (t.Unix()-Epoch.Unix())/secondsPerDay + DateOffset
}
