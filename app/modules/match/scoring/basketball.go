package scoring

import matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"

const (
	// PersonalFoulLimit disqualifies a player.
	PersonalFoulLimit = 5
	// TeamFoulBonus is the team-foul count per period from which the
	// opponent shoots free throws.
	TeamFoulBonus = 5
)

// FoulReport counts basketball fouls.
type FoulReport struct {
	Personal  map[int64]int
	FouledOut []int64
	TeamFouls map[int64]map[int]int
}

// Fouls counts personal fouls per player and team fouls per period. Players
// are listed in FouledOut in the order they reached the limit.
func Fouls(events []matchdomain.Event) FoulReport {
	r := FoulReport{
		Personal:  map[int64]int{},
		TeamFouls: map[int64]map[int]int{},
	}
	for _, e := range ordered(events) {
		if e.Type != matchdomain.EventFoul {
			continue
		}
		if e.TeamID != 0 {
			if r.TeamFouls[e.TeamID] == nil {
				r.TeamFouls[e.TeamID] = map[int]int{}
			}
			r.TeamFouls[e.TeamID][e.Period]++
		}
		if e.PlayerID == nil {
			continue
		}
		id := *e.PlayerID
		r.Personal[id]++
		if r.Personal[id] == PersonalFoulLimit {
			r.FouledOut = append(r.FouledOut, id)
		}
	}
	return r
}

// InBonus reports whether team's opponent shoots free throws in period.
func (r FoulReport) InBonus(teamID int64, period int) bool {
	return r.TeamFouls[teamID][period] >= TeamFoulBonus
}

// IsFouledOut reports whether the player reached the personal foul limit.
func (r FoulReport) IsFouledOut(playerID int64) bool {
	return r.Personal[playerID] >= PersonalFoulLimit
}
