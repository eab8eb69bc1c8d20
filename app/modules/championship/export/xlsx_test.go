package export

import (
	"bytes"
	"testing"
	"time"

	championshipdomain "github.com/Black-And-White-Club/esportivo/app/modules/championship/domain"
	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrite(t *testing.T) {
	c := championshipdomain.Championship{ID: 1, ClubID: 1, Name: "Copa Primavera", Sport: matchdomain.SportFutsal}
	rows := []championshipdomain.StandingRow{
		{Position: 1, TeamID: 10, TeamName: "Leões", Played: 3, Won: 2, Drawn: 1, ScoreFor: 9, ScoreAgainst: 4, Points: 7},
		{Position: 2, TeamID: 20, TeamName: "Águias", Played: 3, Won: 1, Lost: 2, ScoreFor: 5, ScoreAgainst: 8, Points: 3},
	}
	matches := []matchdomain.Match{
		{ID: 1, Status: matchdomain.StatusFinished, HomeTeamName: "Leões", AwayTeamName: "Águias", HomeScore: 3, AwayScore: 1, ScheduledAt: time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC)},
		{ID: 2, Status: matchdomain.StatusScheduled, HomeTeamName: "Águias", AwayTeamName: "Leões", ScheduledAt: time.Date(2026, 10, 22, 19, 0, 0, 0, time.UTC), Venue: "Ginásio"},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, c, rows, matches))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{StandingsSheet, MatchesSheet}, f.GetSheetList())

	table, err := f.GetRows(StandingsSheet)
	require.NoError(t, err)
	require.Len(t, table, 4)
	assert.Equal(t, "Copa Primavera", table[0][0])
	assert.Equal(t, "Equipe", table[1][1])
	assert.Equal(t, []string{"1", "Leões", "3", "2", "1", "0", "9", "4", "5", "7"}, table[2])
	assert.Equal(t, "-3", table[3][8])

	fixtures, err := f.GetRows(MatchesSheet)
	require.NoError(t, err)
	require.Len(t, fixtures, 3)
	assert.Equal(t, "3 x 1", fixtures[1][2])
	assert.Equal(t, "2026-10-22 19:00:00", fixtures[2][0])
	assert.Equal(t, "", fixtures[2][2])
	assert.Equal(t, "Ginásio", fixtures[2][5])
}
