package matchservice

import "errors"

var (
	ErrInvalidEventType  = errors.New("unknown event type")
	ErrEventNeedsTeam    = errors.New("scoring and disciplinary events need a team")
	ErrInvalidStatus     = errors.New("unknown match status")
	ErrEmptyKickoff      = errors.New("kickoff time is required")
	ErrUnrecognizedTime  = errors.New("could not recognize kickoff time")
	ErrKickoffInPast     = errors.New("kickoff must be in the future")
	ErrSameTeams         = errors.New("home and away teams must differ")
	ErrInvalidMatchTeams = errors.New("home and away teams are required")
)
