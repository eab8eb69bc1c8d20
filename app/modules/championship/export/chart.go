package export

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	championshipdomain "github.com/Black-And-White-Club/esportivo/app/modules/championship/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoStandings is returned when there is nothing to chart.
var ErrNoStandings = errors.New("no standings to chart")

var hexColor = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// ChartPalette colors the standings chart.
type ChartPalette struct {
	Bar        drawing.Color
	Background drawing.Color
	Text       drawing.Color
}

// DefaultPalette is used when the club has no theme.
var DefaultPalette = ChartPalette{
	Bar:        drawing.ColorFromHex("1f6f43"),
	Background: drawing.ColorWhite,
	Text:       drawing.ColorFromHex("222222"),
}

// PaletteFor returns DefaultPalette with the bar color replaced by primary,
// a "#rrggbb" club color. Invalid colors are ignored.
func PaletteFor(primary string) ChartPalette {
	p := DefaultPalette
	if hexColor.MatchString(primary) {
		p.Bar = drawing.ColorFromHex(strings.TrimPrefix(primary, "#"))
	}
	return p
}

const (
	chartHeight   = 480
	barWidth      = 40
	barSpacing    = 24
	chartMinWidth = 640
)

// StandingsChart renders points per team as a PNG bar chart, in table order.
func StandingsChart(w io.Writer, c championshipdomain.Championship, rows []championshipdomain.StandingRow, palette ChartPalette) error {
	if len(rows) == 0 {
		return ErrNoStandings
	}

	bars := make([]chart.Value, len(rows))
	top := 1
	for i, r := range rows {
		bars[i] = chart.Value{
			Label: r.TeamName,
			Value: float64(r.Points),
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.Bar,
			},
		}
		top = max(top, r.Points)
	}

	graph := chart.BarChart{
		Title:      c.Name,
		TitleStyle: chart.Style{FontColor: palette.Text},
		Width:      max(chartMinWidth, 160+len(rows)*(barWidth+barSpacing)),
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: palette.Background},
		XAxis:  chart.Style{FontColor: palette.Text},
		YAxis: chart.YAxis{
			Name:  "Pts",
			Style: chart.Style{FontColor: palette.Text},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(top)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render standings chart: %w", err)
	}
	return nil
}
