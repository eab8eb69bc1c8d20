package export

import (
	"bytes"
	"image/png"
	"testing"

	championshipdomain "github.com/Black-And-White-Club/esportivo/app/modules/championship/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestStandingsChart(t *testing.T) {
	c := championshipdomain.Championship{ID: 1, ClubID: 1, Name: "Copa Primavera"}

	tests := []struct {
		name    string
		rows    []championshipdomain.StandingRow
		wantErr error
	}{
		{
			name: "points per team",
			rows: []championshipdomain.StandingRow{
				{Position: 1, TeamID: 10, TeamName: "Leões", Played: 3, Points: 7},
				{Position: 2, TeamID: 20, TeamName: "Águias", Played: 3, Points: 3},
			},
		},
		{
			name: "no games played yet",
			rows: []championshipdomain.StandingRow{
				{Position: 1, TeamID: 10, TeamName: "Leões"},
				{Position: 2, TeamID: 20, TeamName: "Águias"},
			},
		},
		{
			name:    "empty table",
			wantErr: ErrNoStandings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := StandingsChart(&buf, c, tt.rows, DefaultPalette)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, buf.Len())
				return
			}
			require.NoError(t, err)

			cfg, err := png.DecodeConfig(&buf)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, cfg.Width, chartMinWidth)
			assert.Equal(t, chartHeight, cfg.Height)
		})
	}
}

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, drawing.ColorFromHex("ff0000"), PaletteFor("#ff0000").Bar)
	assert.Equal(t, drawing.ColorFromHex("00ff00"), PaletteFor("00FF00").Bar)
	assert.Equal(t, DefaultPalette, PaletteFor("crimson"))
	assert.Equal(t, DefaultPalette, PaletteFor(""))
}
