package matchservice

import (
	"context"
	"time"

	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
)

// Service backs the match page, the live-scoring screens and the admin
// match tools.
type Service interface {
	Get(ctx context.Context, matchID int64) (*matchdomain.Match, error)
	Events(ctx context.Context, matchID int64) ([]matchdomain.Event, error)

	// Mutations refetch the affected resource and return the fresh copy.
	RecordEvent(ctx context.Context, matchID int64, draft matchdomain.EventDraft) ([]matchdomain.Event, error)
	DeleteEvent(ctx context.Context, matchID, eventID int64) ([]matchdomain.Event, error)
	UpdateStatus(ctx context.Context, matchID int64, status matchdomain.Status) (*matchdomain.Match, error)
	Schedule(ctx context.Context, championshipID int64, draft matchdomain.ScheduleDraft) (*matchdomain.Match, error)
}

// Clock abstracts time for scheduling.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
