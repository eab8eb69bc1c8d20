package championshipdomain

import (
	"time"

	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
)

// Status of a championship.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusOngoing  Status = "ongoing"
	StatusFinished Status = "finished"
)

// Championship is a competition run by a club.
type Championship struct {
	ID       int64             `json:"id" validate:"required"`
	ClubID   int64             `json:"club_id" validate:"required"`
	Name     string            `json:"name" validate:"required"`
	Sport    matchdomain.Sport `json:"sport" validate:"required"`
	Season   string            `json:"season,omitempty"`
	Category string            `json:"category,omitempty"`
	Status   Status            `json:"status"`
	StartsAt *time.Time        `json:"starts_at,omitempty"`
	EndsAt   *time.Time        `json:"ends_at,omitempty"`
}

// StandingRow is one line of the league table.
type StandingRow struct {
	Position     int    `json:"position" validate:"required"`
	TeamID       int64  `json:"team_id" validate:"required"`
	TeamName     string `json:"team_name" validate:"required"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	ScoreFor     int    `json:"score_for"`
	ScoreAgainst int    `json:"score_against"`
	Points       int    `json:"points"`
}

// Balance is score for minus score against.
func (r StandingRow) Balance() int {
	return r.ScoreFor - r.ScoreAgainst
}
