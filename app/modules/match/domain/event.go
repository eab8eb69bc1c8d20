package matchdomain

import "time"

// EventType classifies a live-scoring event.
type EventType string

const (
	EventGoal        EventType = "goal"
	EventPoint       EventType = "point"
	EventFoul        EventType = "foul"
	EventYellowCard  EventType = "yellow_card"
	EventRedCard     EventType = "red_card"
	EventAdvantage   EventType = "advantage"
	EventPenalty     EventType = "penalty"
	EventTimeout     EventType = "timeout"
	EventPeriodStart EventType = "period_start"
	EventPeriodEnd   EventType = "period_end"
	EventClockPause  EventType = "clock_pause"
	EventClockResume EventType = "clock_resume"
)

var eventTypes = map[EventType]bool{
	EventGoal: true, EventPoint: true, EventFoul: true, EventYellowCard: true,
	EventRedCard: true, EventAdvantage: true, EventPenalty: true, EventTimeout: true,
	EventPeriodStart: true, EventPeriodEnd: true, EventClockPause: true, EventClockResume: true,
}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	return eventTypes[t]
}

// Scoring reports whether the event adds to a team score.
func (t EventType) Scoring() bool {
	return t == EventGoal || t == EventPoint
}

// Event is one entry in a match timeline. TeamID is the competitor the event
// belongs to; in combat sports it identifies the athlete's side.
type Event struct {
	ID         int64     `json:"id" validate:"required"`
	MatchID    int64     `json:"match_id" validate:"required"`
	Type       EventType `json:"type" validate:"required"`
	TeamID     int64     `json:"team_id,omitempty"`
	PlayerID   *int64    `json:"player_id,omitempty"`
	Period     int       `json:"period"`
	Points     int       `json:"points,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Note       string    `json:"note,omitempty"`
}

// Value is the score contribution of a scoring event. A goal or point with no
// explicit value counts one.
func (e Event) Value() int {
	if !e.Type.Scoring() {
		return 0
	}
	if e.Points > 0 {
		return e.Points
	}
	return 1
}

// EventDraft is the body of POST /admin/matches/{id}/events.
type EventDraft struct {
	Type       EventType  `json:"type"`
	TeamID     int64      `json:"team_id,omitempty"`
	PlayerID   *int64     `json:"player_id,omitempty"`
	Period     int        `json:"period"`
	Points     int        `json:"points,omitempty"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
	Note       string     `json:"note,omitempty"`
}
