package ndarray

import (
	"errors"
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// Datetime elements are stored as int64 nanoseconds since the Unix epoch,
// always UTC; timedelta elements as int64 nanoseconds of duration.

// FromTimes builds a datetime64 array from absolute time points.
func FromTimes(ts []time.Time, shape ...int) (*Array, error) {
	return fromPadded(Datetime64, len(ts), shape, func(a *Array, i int) {
		putScalar(a, i, ts[i].UnixNano())
	})
}

// FromDurations builds a timedelta64 array.
func FromDurations(ds []time.Duration, shape ...int) (*Array, error) {
	return fromPadded(Timedelta64, len(ds), shape, func(a *Array, i int) {
		putScalar(a, i, int64(ds[i]))
	})
}

// TimeFlatAt reads a datetime element.
func (a *Array) TimeFlatAt(i int) time.Time {
	a.mustCode(TypeDatetime64)
	return time.Unix(0, getScalar[int64](a, i)).UTC()
}

// SetTimeFlatAt writes a datetime element.
func (a *Array) SetTimeFlatAt(t time.Time, i int) {
	a.mustWritable()
	a.mustCode(TypeDatetime64)
	putScalar(a, i, t.UnixNano())
}

// DurationFlatAt reads a timedelta element.
func (a *Array) DurationFlatAt(i int) time.Duration {
	a.mustCode(TypeTimedelta64)
	return time.Duration(getScalar[int64](a, i))
}

// SetDurationFlatAt writes a timedelta element.
func (a *Array) SetDurationFlatAt(d time.Duration, i int) {
	a.mustWritable()
	a.mustCode(TypeTimedelta64)
	putScalar(a, i, int64(d))
}

// TimeAt is the multi-index form of TimeFlatAt.
func (a *Array) TimeAt(idx ...int) time.Time { return a.TimeFlatAt(a.offset(idx)) }

// DurationAt is the multi-index form of DurationFlatAt.
func (a *Array) DurationAt(idx ...int) time.Duration { return a.DurationFlatAt(a.offset(idx)) }

// Times returns a fresh row-major copy of a datetime array's elements.
func (a *Array) Times() []time.Time {
	a.mustCode(TypeDatetime64)
	out := make([]time.Time, a.Size())
	for i := range out {
		out[i] = a.TimeFlatAt(i)
	}
	return out
}

// Durations returns a fresh row-major copy of a timedelta array's
// elements.
func (a *Array) Durations() []time.Duration {
	a.mustCode(TypeTimedelta64)
	out := make([]time.Duration, a.Size())
	for i := range out {
		out[i] = a.DurationFlatAt(i)
	}
	return out
}

// TimeSpan returns the span covering the earliest and latest elements of a
// non-empty datetime array.
func (a *Array) TimeSpan() (timespan.TimeSpan, error) {
	if a.dtype.Code != TypeDatetime64 {
		return timespan.TimeSpan{}, errors.New("ndarray: TimeSpan on non-datetime array")
	}
	n := a.Size()
	if n == 0 {
		return timespan.TimeSpan{}, errors.New("ndarray: TimeSpan on empty array")
	}
	earliest, latest := a.TimeFlatAt(0), a.TimeFlatAt(0)
	for i := 1; i < n; i++ {
		t := a.TimeFlatAt(i)
		if t.Before(earliest) {
			earliest = t
		}
		if t.After(latest) {
			latest = t
		}
	}
	return timespan.BetweenTimes(earliest, latest), nil
}
