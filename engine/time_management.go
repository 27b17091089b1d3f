package engine

import (
	"time"
)

// TimeHandler tracks the budget of one root search. time.Now carries a
// monotonic reading, so wall clock jumps do not move the deadline.
type TimeHandler struct {
	start     time.Time
	timeLimit time.Duration
	unlimited bool
}

// newTimeHandler starts the clock. A non-positive limit means no deadline.
func newTimeHandler(limit time.Duration) *TimeHandler {
	return newTimeHandlerSince(time.Now(), limit)
}

// newTimeHandlerSince backdates the clock to start.
func newTimeHandlerSince(start time.Time, limit time.Duration) *TimeHandler {
	return &TimeHandler{
		start:     start,
		timeLimit: limit,
		unlimited: limit <= 0,
	}
}

/*
  - True if we're out of time
  - False if we still got time, or run without a deadline
*/
func (th *TimeHandler) TimeStatus() bool {
	if th.unlimited {
		return false
	}
	return time.Since(th.start) >= th.timeLimit
}

func (th *TimeHandler) Elapsed() time.Duration {
	return time.Since(th.start)
}

// Remaining budget; effectively infinite without a deadline.
func (th *TimeHandler) Remaining() time.Duration {
	if th.unlimited {
		return time.Duration(1<<63 - 1)
	}
	return th.timeLimit - time.Since(th.start)
}
