package matchservice

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
)

// MatchService implements the Service interface.
type MatchService struct {
	api     apiclient.Requester
	kickoff *KickoffParser
	clock   Clock
	logger  *slog.Logger
}

// NewMatchService creates a new MatchService. clock may be nil.
func NewMatchService(api apiclient.Requester, kickoff *KickoffParser, clock Clock, logger *slog.Logger) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = systemClock{}
	}
	if kickoff == nil {
		kickoff = NewKickoffParser(nil)
	}
	return &MatchService{api: api, kickoff: kickoff, clock: clock, logger: logger}
}

func matchPath(matchID int64) string {
	return "/matches/" + strconv.FormatInt(matchID, 10)
}

func adminMatchPath(matchID int64) string {
	return "/admin" + matchPath(matchID)
}

// Get loads one match.
func (s *MatchService) Get(ctx context.Context, matchID int64) (*matchdomain.Match, error) {
	var m matchdomain.Match
	if err := s.api.Get(ctx, matchPath(matchID), nil, &m); err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	return &m, nil
}

// Events loads the match timeline.
func (s *MatchService) Events(ctx context.Context, matchID int64) ([]matchdomain.Event, error) {
	var events []matchdomain.Event
	if err := s.api.Get(ctx, matchPath(matchID)+"/events", nil, &events); err != nil {
		return nil, fmt.Errorf("failed to get events for match %d: %w", matchID, err)
	}
	return events, nil
}

// RecordEvent posts a new event and returns the refetched timeline.
func (s *MatchService) RecordEvent(ctx context.Context, matchID int64, draft matchdomain.EventDraft) ([]matchdomain.Event, error) {
	if !draft.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEventType, draft.Type)
	}
	if needsTeam(draft.Type) && draft.TeamID == 0 {
		return nil, ErrEventNeedsTeam
	}
	if err := s.api.Post(ctx, adminMatchPath(matchID)+"/events", draft, nil); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	s.logger.InfoContext(ctx, "Event recorded",
		slog.Int64("match_id", matchID),
		slog.String("type", string(draft.Type)),
	)
	return s.Events(ctx, matchID)
}

// DeleteEvent removes an event and returns the refetched timeline.
func (s *MatchService) DeleteEvent(ctx context.Context, matchID, eventID int64) ([]matchdomain.Event, error) {
	path := adminMatchPath(matchID) + "/events/" + strconv.FormatInt(eventID, 10)
	if err := s.api.Delete(ctx, path, nil); err != nil {
		return nil, fmt.Errorf("failed to delete event %d: %w", eventID, err)
	}
	s.logger.InfoContext(ctx, "Event deleted",
		slog.Int64("match_id", matchID),
		slog.Int64("event_id", eventID),
	)
	return s.Events(ctx, matchID)
}

// UpdateStatus moves the match through its lifecycle and returns the
// refetched match.
func (s *MatchService) UpdateStatus(ctx context.Context, matchID int64, status matchdomain.Status) (*matchdomain.Match, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.api.Patch(ctx, adminMatchPath(matchID), matchdomain.StatusUpdate{Status: status}, nil); err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}
	return s.Get(ctx, matchID)
}

// Schedule creates a fixture from a free-text kickoff and returns the
// created match.
func (s *MatchService) Schedule(ctx context.Context, championshipID int64, draft matchdomain.ScheduleDraft) (*matchdomain.Match, error) {
	if draft.HomeTeamID == 0 || draft.AwayTeamID == 0 {
		return nil, ErrInvalidMatchTeams
	}
	if draft.HomeTeamID == draft.AwayTeamID {
		return nil, ErrSameTeams
	}
	kickoff, err := s.kickoff.Parse(draft.Kickoff, s.clock.Now())
	if err != nil {
		return nil, err
	}

	req := matchdomain.ScheduleRequest{
		HomeTeamID:  draft.HomeTeamID,
		AwayTeamID:  draft.AwayTeamID,
		ScheduledAt: kickoff.UTC(),
		Venue:       draft.Venue,
	}
	var created matchdomain.Match
	path := "/admin/championships/" + strconv.FormatInt(championshipID, 10) + "/matches"
	if err := s.api.Post(ctx, path, req, &created); err != nil {
		return nil, fmt.Errorf("failed to schedule match: %w", err)
	}
	s.logger.InfoContext(ctx, "Match scheduled",
		slog.Int64("championship_id", championshipID),
		slog.Int64("match_id", created.ID),
		slog.Time("scheduled_at", req.ScheduledAt),
	)
	return s.Get(ctx, created.ID)
}

func needsTeam(t matchdomain.EventType) bool {
	switch t {
	case matchdomain.EventGoal, matchdomain.EventPoint, matchdomain.EventFoul,
		matchdomain.EventYellowCard, matchdomain.EventRedCard,
		matchdomain.EventAdvantage, matchdomain.EventPenalty:
		return true
	}
	return false
}

var _ Service = (*MatchService)(nil)
