package cycle

import (
	"time"

	"zeladoria-bknd/internal/models"
)

// Bucket is one band of elapsed days since an area was last serviced. The six
// bands cover the 45-day mowing cycle. BucketNoHistory marks areas that were
// never serviced; it is a distinct state, not part of any band.
type Bucket string

const (
	BucketNoHistory Bucket = "no-history"
	Bucket0to5      Bucket = "0-5"
	Bucket5to15     Bucket = "5-15"
	Bucket15to25    Bucket = "15-25"
	Bucket25to35    Bucket = "25-35"
	Bucket35to44    Bucket = "35-44"
	Bucket45Plus    Bucket = "45+"
)

// Buckets lists the six day bands in cycle order, freshest first.
var Buckets = []Bucket{
	Bucket0to5,
	Bucket5to15,
	Bucket15to25,
	Bucket25to35,
	Bucket35to44,
	Bucket45Plus,
}

// ParseBucket maps a tag like "5-15" to its Bucket. ok is false for anything
// that is not one of the six bands.
func ParseBucket(tag string) (Bucket, bool) {
	for _, b := range Buckets {
		if string(b) == tag {
			return b, true
		}
	}
	return "", false
}

// Classification is the result of classifying one area against a reference
// date. DaysSince is -1 when the area has no usable history.
type Classification struct {
	Bucket    Bucket `json:"bucket"`
	DaysSince int    `json:"days_since"`
}

// DateOnly truncates t to midnight UTC of its calendar day, discarding both
// the time of day and the zone offset.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// daysBetween counts whole calendar days from 'from' to 'to'. Working on
// normalized UTC dates keeps the count stable across DST transitions.
func daysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}

// Classify maps an area's service history to an urgency bucket relative to
// ref. Areas with an empty history classify as BucketNoHistory; so do areas
// whose last entry carries an unparseable date, since there is nothing to
// anchor the cycle on.
//
// The last history element is taken by position. The history is an append-only
// chronological ledger, so the last element is the most recent service by
// contract; entries are never re-sorted here.
func Classify(area *models.ServiceArea, ref time.Time) Classification {
	last := area.LastHistory()
	if last == nil {
		return Classification{Bucket: BucketNoHistory, DaysSince: -1}
	}
	lastDay, ok := last.Day()
	if !ok {
		return Classification{Bucket: BucketNoHistory, DaysSince: -1}
	}
	days := daysBetween(lastDay, ref)
	return Classification{Bucket: BucketFor(days), DaysSince: days}
}

// BucketFor maps a day count to its band. Day 5 is still "0-5", day 6 is
// "5-15": the earlier band wins at shared edges. A negative count means the
// last service is dated after the reference day; operators may register past
// work with any allowed date, so this clamps to the freshest band instead of
// failing.
func BucketFor(days int) Bucket {
	switch {
	case days <= 5:
		return Bucket0to5
	case days <= 15:
		return Bucket5to15
	case days <= 25:
		return Bucket15to25
	case days <= 35:
		return Bucket25to35
	case days <= 44:
		return Bucket35to44
	default:
		return Bucket45Plus
	}
}
