package booking

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	ErrInvalidDateFormat = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTimeFormat = errors.New("time must be HH:MM")
	ErrInvalidRange      = errors.New("start time must be before end time")
	ErrNotOnGrid         = errors.New("time range does not align to the slot grid")
)

// TimeRange is a half-open [start,end) interval on a single venue day,
// expressed in minutes from midnight local to the venue.
type TimeRange struct {
	date     string
	startMin int
	endMin   int
}

func NewTimeRange(date string, startMin, endMin int) (TimeRange, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return TimeRange{}, ErrInvalidDateFormat
	}
	if startMin < 0 || endMin > 24*60 || startMin >= endMin {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{date: date, startMin: startMin, endMin: endMin}, nil
}

// ParseTimeRange builds a range from the wire format: a date, an HH:MM start
// and a duration in minutes.
func ParseTimeRange(date, start string, durationMin int) (TimeRange, error) {
	t, err := time.Parse(timeLayout, start)
	if err != nil {
		return TimeRange{}, ErrInvalidTimeFormat
	}
	if durationMin <= 0 {
		return TimeRange{}, ErrInvalidRange
	}
	startMin := t.Hour()*60 + t.Minute()
	return NewTimeRange(date, startMin, startMin+durationMin)
}

func (r TimeRange) Date() string     { return r.date }
func (r TimeRange) StartMin() int    { return r.startMin }
func (r TimeRange) EndMin() int      { return r.endMin }
func (r TimeRange) DurationMin() int { return r.endMin - r.startMin }

func (r TimeRange) StartLabel() string {
	return fmt.Sprintf("%02d:%02d", r.startMin/60, r.startMin%60)
}

func (r TimeRange) EndLabel() string {
	return fmt.Sprintf("%02d:%02d", r.endMin/60, r.endMin%60)
}

// StartAt resolves the range's start to an absolute instant in loc.
func (r TimeRange) StartAt(loc *time.Location) time.Time {
	d, _ := time.ParseInLocation(DateLayout, r.date, loc)
	return d.Add(time.Duration(r.startMin) * time.Minute)
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	if r.date != other.date {
		return false
	}
	return r.startMin < other.endMin && other.startMin < r.endMin
}

// ValidateGrid rejects ranges whose boundaries do not align to the configured
// quantization interval.
func (r TimeRange) ValidateGrid(intervalMin int) error {
	if intervalMin <= 0 {
		return nil
	}
	if r.startMin%intervalMin != 0 || r.endMin%intervalMin != 0 {
		return ErrNotOnGrid
	}
	return nil
}
