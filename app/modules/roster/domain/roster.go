package rosterdomain

// Team is a squad registered in a championship.
type Team struct {
	ID             int64  `json:"id" validate:"required"`
	ChampionshipID int64  `json:"championship_id"`
	Name           string `json:"name" validate:"required"`
	ShortName      string `json:"short_name,omitempty"`
	CoachName      string `json:"coach_name,omitempty"`
	PlayerCount    int    `json:"player_count"`
}

// Player is an athlete on a team.
type Player struct {
	ID        int64   `json:"id" validate:"required"`
	TeamID    int64   `json:"team_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Number    *int    `json:"number,omitempty"`
	Position  string  `json:"position,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
}

// PlayerDraft is the body of POST /admin/teams/{id}/players.
type PlayerDraft struct {
	Name      string  `json:"name"`
	Number    *int    `json:"number,omitempty"`
	Position  string  `json:"position,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
}
