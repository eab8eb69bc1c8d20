package clubservice

import (
	"context"

	clubdomain "github.com/Black-And-White-Club/esportivo/app/modules/club/domain"
	sessiondomain "github.com/Black-And-White-Club/esportivo/app/modules/session/domain"
)

// Service backs the club picker and club page.
type Service interface {
	ListClubs(ctx context.Context) ([]sessiondomain.Club, error)
	GetClub(ctx context.Context, idOrSlug string) (*clubdomain.Profile, error)
}
