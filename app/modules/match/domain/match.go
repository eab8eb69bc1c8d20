package matchdomain

import "time"

// Sport drives which scoreboard a match gets.
type Sport string

const (
	SportFootball   Sport = "football"
	SportFutsal     Sport = "futsal"
	SportVolleyball Sport = "volleyball"
	SportBasketball Sport = "basketball"
	SportJiuJitsu   Sport = "jiu_jitsu"
	SportJudo       Sport = "judo"
)

// Combat reports whether competitors are single athletes scored on points,
// advantages and penalties.
func (s Sport) Combat() bool {
	return s == SportJiuJitsu || s == SportJudo
}

// Status is the lifecycle state of a match.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusLive, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// Match is one fixture between two teams (or two athletes).
type Match struct {
	ID             int64     `json:"id" validate:"required"`
	ChampionshipID int64     `json:"championship_id" validate:"required"`
	Sport          Sport     `json:"sport" validate:"required"`
	Status         Status    `json:"status" validate:"required"`
	HomeTeamID     int64     `json:"home_team_id" validate:"required"`
	AwayTeamID     int64     `json:"away_team_id" validate:"required"`
	HomeTeamName   string    `json:"home_team_name"`
	AwayTeamName   string    `json:"away_team_name"`
	HomeScore      int       `json:"home_score"`
	AwayScore      int       `json:"away_score"`
	Period         int       `json:"period"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Venue          string    `json:"venue,omitempty"`
}

// ScheduleDraft is what an admin types to create a fixture. Kickoff is free
// text such as "next saturday at 4pm" or "amanhã às 19h".
type ScheduleDraft struct {
	HomeTeamID int64
	AwayTeamID int64
	Kickoff    string
	Venue      string
}

// ScheduleRequest is the body of POST /admin/championships/{id}/matches.
type ScheduleRequest struct {
	HomeTeamID  int64     `json:"home_team_id"`
	AwayTeamID  int64     `json:"away_team_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Venue       string    `json:"venue,omitempty"`
}

// StatusUpdate is the body of PATCH /admin/matches/{id}.
type StatusUpdate struct {
	Status Status `json:"status"`
}
