package championshipservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"

	championshipdomain "github.com/Black-And-White-Club/esportivo/app/modules/championship/domain"
	"github.com/Black-And-White-Club/esportivo/app/modules/championship/export"
	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
	"golang.org/x/sync/errgroup"
)

// ErrNoClub is returned when listing championships without a club scope.
var ErrNoClub = errors.New("select a club first")

// ChampionshipService implements the Service interface.
type ChampionshipService struct {
	api    apiclient.Requester
	logger *slog.Logger
}

// NewChampionshipService creates a new ChampionshipService.
func NewChampionshipService(api apiclient.Requester, logger *slog.Logger) *ChampionshipService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChampionshipService{api: api, logger: logger}
}

func championshipPath(id int64) string {
	return "/championships/" + strconv.FormatInt(id, 10)
}

// List returns the championships of a club.
func (s *ChampionshipService) List(ctx context.Context, clubID int64) ([]championshipdomain.Championship, error) {
	if clubID == 0 {
		return nil, ErrNoClub
	}
	var out []championshipdomain.Championship
	query := url.Values{"club_id": {strconv.FormatInt(clubID, 10)}}
	if err := s.api.Get(ctx, "/championships", query, &out); err != nil {
		return nil, fmt.Errorf("failed to list championships: %w", err)
	}
	return out, nil
}

func (s *ChampionshipService) Get(ctx context.Context, championshipID int64) (*championshipdomain.Championship, error) {
	var c championshipdomain.Championship
	if err := s.api.Get(ctx, championshipPath(championshipID), nil, &c); err != nil {
		return nil, fmt.Errorf("failed to get championship %d: %w", championshipID, err)
	}
	return &c, nil
}

// Standings returns the table as the server ranks it.
func (s *ChampionshipService) Standings(ctx context.Context, championshipID int64) ([]championshipdomain.StandingRow, error) {
	var rows []championshipdomain.StandingRow
	if err := s.api.Get(ctx, championshipPath(championshipID)+"/standings", nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}
	return rows, nil
}

func (s *ChampionshipService) Matches(ctx context.Context, championshipID int64) ([]matchdomain.Match, error) {
	var matches []matchdomain.Match
	if err := s.api.Get(ctx, championshipPath(championshipID)+"/matches", nil, &matches); err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}
	return matches, nil
}

// ExportStandings writes the championship table and fixtures as an XLSX
// workbook.
func (s *ChampionshipService) ExportStandings(ctx context.Context, w io.Writer, championshipID int64) error {
	var (
		champ   *championshipdomain.Championship
		rows    []championshipdomain.StandingRow
		matches []matchdomain.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		champ, err = s.Get(gctx, championshipID)
		return err
	})
	g.Go(func() (err error) {
		rows, err = s.Standings(gctx, championshipID)
		return err
	})
	g.Go(func() (err error) {
		matches, err = s.Matches(gctx, championshipID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := export.Write(w, *champ, rows, matches); err != nil {
		return fmt.Errorf("failed to export standings: %w", err)
	}
	s.logger.InfoContext(ctx, "Standings exported",
		slog.Int64("championship_id", championshipID),
		slog.Int("rows", len(rows)),
	)
	return nil
}

// ChartStandings writes the points of each team as a PNG bar chart.
func (s *ChampionshipService) ChartStandings(ctx context.Context, w io.Writer, championshipID int64, palette export.ChartPalette) error {
	var (
		champ *championshipdomain.Championship
		rows  []championshipdomain.StandingRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		champ, err = s.Get(gctx, championshipID)
		return err
	})
	g.Go(func() (err error) {
		rows, err = s.Standings(gctx, championshipID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := export.StandingsChart(w, *champ, rows, palette); err != nil {
		return fmt.Errorf("failed to chart standings: %w", err)
	}
	s.logger.InfoContext(ctx, "Standings charted",
		slog.Int64("championship_id", championshipID),
		slog.Int("teams", len(rows)),
	)
	return nil
}

var _ Service = (*ChampionshipService)(nil)
