package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the label format of a DayBucket ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// Activity is a scheduled event on a trip.
// OccursAt is expected to fall within the trip's span but nothing enforces it.
type Activity struct {
	ID       uuid.UUID
	TripID   uuid.UUID
	Title    string
	OccursAt time.Time
}

// DayBucket is one calendar day of a trip together with the activities
// occurring on that day. It is derived on every request and never persisted.
//
// Date is midnight of the day in the location the bucket was built with.
type DayBucket struct {
	Date       time.Time
	Activities []Activity
}

// Label returns the bucket's date formatted as "YYYY-MM-DD".
func (b DayBucket) Label() string {
	return b.Date.Format(DateLayout)
}

// GroupActivitiesByDay returns one bucket per calendar day from start to end
// inclusive, each holding the activities whose calendar day (in loc) matches.
//
// Days are counted on civil dates, so the time of day of start and end is
// ignored: a trip from 10th 23:00 to 11th 01:00 spans two buckets.
// Activities outside [start, end] are dropped. Within a bucket, activities
// keep the order they had in the input, so callers pass them sorted by
// OccursAt.
//
// When end falls on a calendar day before start the result is empty.
// A nil loc means UTC.
func GroupActivitiesByDay(start, end time.Time, loc *time.Location, activities []Activity) []DayBucket {
	if loc == nil {
		loc = time.UTC
	}

	first := civilDate(start, loc)
	span := daysBetween(first, civilDate(end, loc))
	if span < 0 {
		return []DayBucket{}
	}

	buckets := make([]DayBucket, span+1)
	for i := range buckets {
		y, m, d := first.AddDate(0, 0, i).Date()
		buckets[i] = DayBucket{
			Date:       time.Date(y, m, d, 0, 0, 0, 0, loc),
			Activities: []Activity{},
		}
	}

	for _, a := range activities {
		i := daysBetween(first, civilDate(a.OccursAt, loc))
		if i < 0 || i > span {
			continue
		}
		buckets[i].Activities = append(buckets[i].Activities, a)
	}

	return buckets
}

// civilDate returns the calendar day of t as seen in loc, expressed as
// midnight UTC. Doing day arithmetic in UTC keeps DST transitions in loc from
// producing 23- or 25-hour days.
func civilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of whole days from a to b. Both must be
// midnight UTC values produced by civilDate.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
