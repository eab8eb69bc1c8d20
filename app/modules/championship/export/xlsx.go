// Package export renders championship data as spreadsheets and charts.
package export

import (
	"fmt"
	"io"
	"time"

	championshipdomain "github.com/Black-And-White-Club/esportivo/app/modules/championship/domain"
	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
	"github.com/xuri/excelize/v2"
)

const (
	StandingsSheet = "Classificação"
	MatchesSheet   = "Jogos"
)

var (
	standingsHeader = []any{"Pos", "Equipe", "J", "V", "E", "D", "Pró", "Contra", "Saldo", "Pts"}
	matchesHeader   = []any{"Data", "Mandante", "Placar", "Visitante", "Status", "Local"}
)

// Write renders the table and fixtures of c into a two-sheet workbook.
func Write(w io.Writer, c championshipdomain.Championship, rows []championshipdomain.StandingRow, matches []matchdomain.Match) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), StandingsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(MatchesSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := f.SetCellValue(StandingsSheet, "A1", c.Name); err != nil {
		return err
	}
	if err := writeRow(f, StandingsSheet, 2, standingsHeader); err != nil {
		return err
	}
	for i, r := range rows {
		row := []any{r.Position, r.TeamName, r.Played, r.Won, r.Drawn, r.Lost, r.ScoreFor, r.ScoreAgainst, r.Balance(), r.Points}
		if err := writeRow(f, StandingsSheet, i+3, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, MatchesSheet, 1, matchesHeader); err != nil {
		return err
	}
	for i, m := range matches {
		score := ""
		if m.Status == matchdomain.StatusLive || m.Status == matchdomain.StatusFinished {
			score = fmt.Sprintf("%d x %d", m.HomeScore, m.AwayScore)
		}
		row := []any{m.ScheduledAt.UTC().Format(time.DateTime), m.HomeTeamName, score, m.AwayTeamName, string(m.Status), m.Venue}
		if err := writeRow(f, MatchesSheet, i+2, row); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, axis, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
