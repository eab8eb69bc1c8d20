package rosterservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	rosterdomain "github.com/Black-And-White-Club/esportivo/app/modules/roster/domain"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
)

var (
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrInvalidNumber      = errors.New("shirt number must be between 0 and 99")
)

// Service backs the team list, team page and roster admin screens.
type Service interface {
	Teams(ctx context.Context, championshipID int64) ([]rosterdomain.Team, error)
	Team(ctx context.Context, teamID int64) (*rosterdomain.Team, error)
	Players(ctx context.Context, teamID int64) ([]rosterdomain.Player, error)
	AddPlayer(ctx context.Context, teamID int64, draft rosterdomain.PlayerDraft) ([]rosterdomain.Player, error)
	RemovePlayer(ctx context.Context, teamID, playerID int64) ([]rosterdomain.Player, error)
}

// RosterService implements the Service interface.
type RosterService struct {
	api    apiclient.Requester
	logger *slog.Logger
}

// NewRosterService creates a new RosterService.
func NewRosterService(api apiclient.Requester, logger *slog.Logger) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterService{api: api, logger: logger}
}

func teamPath(teamID int64) string {
	return "/teams/" + strconv.FormatInt(teamID, 10)
}

func (s *RosterService) Teams(ctx context.Context, championshipID int64) ([]rosterdomain.Team, error) {
	var teams []rosterdomain.Team
	path := "/championships/" + strconv.FormatInt(championshipID, 10) + "/teams"
	if err := s.api.Get(ctx, path, nil, &teams); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *RosterService) Team(ctx context.Context, teamID int64) (*rosterdomain.Team, error) {
	var team rosterdomain.Team
	if err := s.api.Get(ctx, teamPath(teamID), nil, &team); err != nil {
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}
	return &team, nil
}

func (s *RosterService) Players(ctx context.Context, teamID int64) ([]rosterdomain.Player, error) {
	var players []rosterdomain.Player
	if err := s.api.Get(ctx, teamPath(teamID)+"/players", nil, &players); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// AddPlayer registers a player and returns the refetched roster.
func (s *RosterService) AddPlayer(ctx context.Context, teamID int64, draft rosterdomain.PlayerDraft) ([]rosterdomain.Player, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return nil, ErrPlayerNameRequired
	}
	if draft.Number != nil && (*draft.Number < 0 || *draft.Number > 99) {
		return nil, ErrInvalidNumber
	}
	if err := s.api.Post(ctx, "/admin"+teamPath(teamID)+"/players", draft, nil); err != nil {
		return nil, fmt.Errorf("failed to add player: %w", err)
	}
	s.logger.InfoContext(ctx, "Player added", slog.Int64("team_id", teamID))
	return s.Players(ctx, teamID)
}

// RemovePlayer unregisters a player and returns the refetched roster.
func (s *RosterService) RemovePlayer(ctx context.Context, teamID, playerID int64) ([]rosterdomain.Player, error) {
	path := "/admin" + teamPath(teamID) + "/players/" + strconv.FormatInt(playerID, 10)
	if err := s.api.Delete(ctx, path, nil); err != nil {
		return nil, fmt.Errorf("failed to remove player %d: %w", playerID, err)
	}
	s.logger.InfoContext(ctx, "Player removed",
		slog.Int64("team_id", teamID),
		slog.Int64("player_id", playerID),
	)
	return s.Players(ctx, teamID)
}

var _ Service = (*RosterService)(nil)
