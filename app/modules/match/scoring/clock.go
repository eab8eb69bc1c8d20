package scoring

import (
	"fmt"
	"time"

	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
)

// Clock is the game clock of the current period.
type Clock struct {
	Period  int
	Elapsed time.Duration
	Running bool
}

// String formats the elapsed time as mm:ss.
func (c Clock) String() string {
	total := int(c.Elapsed / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// MatchClock replays period and clock events. A period_start resets the
// clock and starts it; clock_pause and period_end stop it; clock_resume
// restarts it within the period. A running clock counts up to now.
func MatchClock(events []matchdomain.Event, now time.Time) Clock {
	var (
		c       Clock
		since   time.Time
		started bool
	)
	for _, e := range ordered(events) {
		switch e.Type {
		case matchdomain.EventPeriodStart:
			if e.Period > 0 {
				c.Period = e.Period
			} else {
				c.Period++
			}
			c.Elapsed = 0
			c.Running = true
			since = e.OccurredAt
			started = true
		case matchdomain.EventClockPause, matchdomain.EventPeriodEnd:
			if c.Running {
				c.Elapsed += e.OccurredAt.Sub(since)
				c.Running = false
			}
			if e.Type == matchdomain.EventPeriodEnd {
				started = false
			}
		case matchdomain.EventClockResume:
			if started && !c.Running {
				c.Running = true
				since = e.OccurredAt
			}
		}
	}
	if c.Running && now.After(since) {
		c.Elapsed += now.Sub(since)
	}
	return c
}
