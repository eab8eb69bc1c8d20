package scoring

import matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"

const (
	setTarget     = 25
	tieBreakSet   = 5
	tieBreakScore = 15
	setsToWin     = 3
	minLead       = 2
)

// Lineup holds player ids by court position; index 0 is position 1, the
// server.
type Lineup [6]int64

// Rotate moves every player one position clockwise: position 2 becomes the
// server and the previous server moves to position 6.
func (l Lineup) Rotate() Lineup {
	var out Lineup
	for i := range l {
		out[i] = l[(i+1)%len(l)]
	}
	return out
}

// Server is the player at position 1.
func (l Lineup) Server() int64 {
	return l[0]
}

// SetScore is one set. Winner is zero while the set is in play.
type SetScore struct {
	Number int
	Home   int
	Away   int
	Winner int64
}

// VolleyballInput describes the teams and starting rotations.
type VolleyballInput struct {
	HomeTeamID  int64
	AwayTeamID  int64
	FirstServer int64
	HomeLineup  Lineup
	AwayLineup  Lineup
}

// VolleyballBoard is the rally-by-rally state after all point events.
type VolleyballBoard struct {
	Sets         []SetScore
	Current      SetScore
	HomeSets     int
	AwaySets     int
	Serving      int64
	HomeRotation Lineup
	AwayRotation Lineup
	Winner       int64
}

// Volleyball replays point events as rallies. Each point goes to the event's
// team; a point won by the receiving team is a side-out that hands over the
// serve and rotates that team. Sets go to 25 (15 in the fifth) with a two
// point lead; three sets win the match. Lineups reset at the start of each
// set and the first serve alternates between sets.
func Volleyball(in VolleyballInput, events []matchdomain.Event) VolleyballBoard {
	firstServer := in.FirstServer
	if firstServer != in.AwayTeamID {
		firstServer = in.HomeTeamID
	}
	other := func(team int64) int64 {
		if team == in.HomeTeamID {
			return in.AwayTeamID
		}
		return in.HomeTeamID
	}

	b := VolleyballBoard{
		Current:      SetScore{Number: 1},
		Serving:      firstServer,
		HomeRotation: in.HomeLineup,
		AwayRotation: in.AwayLineup,
	}

	for _, e := range ordered(events) {
		if e.Type != matchdomain.EventPoint || b.Winner != 0 {
			continue
		}
		if e.TeamID != in.HomeTeamID && e.TeamID != in.AwayTeamID {
			continue
		}

		if e.TeamID == in.HomeTeamID {
			b.Current.Home++
		} else {
			b.Current.Away++
		}
		if e.TeamID != b.Serving {
			b.Serving = e.TeamID
			if e.TeamID == in.HomeTeamID {
				b.HomeRotation = b.HomeRotation.Rotate()
			} else {
				b.AwayRotation = b.AwayRotation.Rotate()
			}
		}

		winner := setWinner(b.Current, in.HomeTeamID, in.AwayTeamID)
		if winner == 0 {
			continue
		}
		b.Current.Winner = winner
		b.Sets = append(b.Sets, b.Current)
		if winner == in.HomeTeamID {
			b.HomeSets++
		} else {
			b.AwaySets++
		}
		if b.HomeSets == setsToWin || b.AwaySets == setsToWin {
			b.Winner = winner
			b.Current = SetScore{}
			continue
		}

		next := b.Current.Number + 1
		b.Current = SetScore{Number: next}
		b.HomeRotation = in.HomeLineup
		b.AwayRotation = in.AwayLineup
		b.Serving = firstServer
		if next%2 == 0 {
			b.Serving = other(firstServer)
		}
	}
	return b
}

// SetTarget is the points needed to take set n.
func SetTarget(n int) int {
	if n == tieBreakSet {
		return tieBreakScore
	}
	return setTarget
}

func setWinner(s SetScore, home, away int64) int64 {
	target := SetTarget(s.Number)
	switch {
	case s.Home >= target && s.Home-s.Away >= minLead:
		return home
	case s.Away >= target && s.Away-s.Home >= minLead:
		return away
	}
	return 0
}
