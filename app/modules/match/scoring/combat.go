package scoring

import matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"

// CombatScore is one athlete's tally.
type CombatScore struct {
	Points     int
	Advantages int
	Penalties  int
}

// CombatBoard is the head-to-head state of a combat match. Leader is zero on
// a full tie.
type CombatBoard struct {
	Home   CombatScore
	Away   CombatScore
	Leader int64
}

// Combat tallies points, advantages and penalties per side. The leader is
// decided by points, then advantages, then fewer penalties.
func Combat(m matchdomain.Match, events []matchdomain.Event) CombatBoard {
	var b CombatBoard
	for _, e := range events {
		var s *CombatScore
		switch e.TeamID {
		case m.HomeTeamID:
			s = &b.Home
		case m.AwayTeamID:
			s = &b.Away
		default:
			continue
		}
		switch e.Type {
		case matchdomain.EventPoint, matchdomain.EventGoal:
			s.Points += e.Value()
		case matchdomain.EventAdvantage:
			s.Advantages++
		case matchdomain.EventPenalty:
			s.Penalties++
		}
	}
	switch compareCombat(b.Home, b.Away) {
	case 1:
		b.Leader = m.HomeTeamID
	case -1:
		b.Leader = m.AwayTeamID
	}
	return b
}

func compareCombat(a, b CombatScore) int {
	switch {
	case a.Points != b.Points:
		return sign(a.Points - b.Points)
	case a.Advantages != b.Advantages:
		return sign(a.Advantages - b.Advantages)
	case a.Penalties != b.Penalties:
		return sign(b.Penalties - a.Penalties)
	}
	return 0
}

func sign(n int) int {
	if n > 0 {
		return 1
	}
	return -1
}
