// Package scoring derives live scoreboards from a match's event timeline.
// Every function is pure: the same events always yield the same board.
package scoring

import (
	"cmp"
	"slices"
	"time"

	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
)

// PeriodScore is the score within one period or set.
type PeriodScore struct {
	Home int
	Away int
}

// Score is the running team score.
type Score struct {
	Home     int
	Away     int
	ByPeriod map[int]PeriodScore
}

// ordered returns a copy of events sorted by time, then id.
func ordered(events []matchdomain.Event) []matchdomain.Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b matchdomain.Event) int {
		if c := a.OccurredAt.Compare(b.OccurredAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Tally sums scoring events per side and per period. Events for teams outside
// the match are ignored.
func Tally(m matchdomain.Match, events []matchdomain.Event) Score {
	s := Score{ByPeriod: map[int]PeriodScore{}}
	for _, e := range ordered(events) {
		v := e.Value()
		if v == 0 {
			continue
		}
		p := s.ByPeriod[e.Period]
		switch e.TeamID {
		case m.HomeTeamID:
			s.Home += v
			p.Home += v
		case m.AwayTeamID:
			s.Away += v
			p.Away += v
		default:
			continue
		}
		s.ByPeriod[e.Period] = p
	}
	return s
}

// Board is everything a live-scoring screen shows for one match.
type Board struct {
	Score      Score
	Clock      Clock
	Volleyball *VolleyballBoard
	Fouls      *FoulReport
	Combat     *CombatBoard
}

// Options carries what the timeline alone cannot tell.
type Options struct {
	FirstServer int64
	HomeLineup  Lineup
	AwayLineup  Lineup
}

// Build derives the board for m's sport.
func Build(m matchdomain.Match, events []matchdomain.Event, now time.Time, opts Options) Board {
	b := Board{
		Score: Tally(m, events),
		Clock: MatchClock(events, now),
	}
	switch {
	case m.Sport == matchdomain.SportVolleyball:
		v := Volleyball(VolleyballInput{
			HomeTeamID:  m.HomeTeamID,
			AwayTeamID:  m.AwayTeamID,
			FirstServer: opts.FirstServer,
			HomeLineup:  opts.HomeLineup,
			AwayLineup:  opts.AwayLineup,
		}, events)
		b.Volleyball = &v
	case m.Sport == matchdomain.SportBasketball:
		f := Fouls(events)
		b.Fouls = &f
	case m.Sport.Combat():
		c := Combat(m, events)
		b.Combat = &c
	}
	return b
}
