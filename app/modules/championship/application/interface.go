package championshipservice

import (
	"context"
	"io"

	championshipdomain "github.com/Black-And-White-Club/esportivo/app/modules/championship/domain"
	"github.com/Black-And-White-Club/esportivo/app/modules/championship/export"
	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
)

// Service backs the championship list, page, table and fixtures screens.
type Service interface {
	List(ctx context.Context, clubID int64) ([]championshipdomain.Championship, error)
	Get(ctx context.Context, championshipID int64) (*championshipdomain.Championship, error)
	Standings(ctx context.Context, championshipID int64) ([]championshipdomain.StandingRow, error)
	Matches(ctx context.Context, championshipID int64) ([]matchdomain.Match, error)
	ExportStandings(ctx context.Context, w io.Writer, championshipID int64) error
	ChartStandings(ctx context.Context, w io.Writer, championshipID int64, palette export.ChartPalette) error
}
