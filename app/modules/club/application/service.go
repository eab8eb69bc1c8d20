package clubservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	clubdomain "github.com/Black-And-White-Club/esportivo/app/modules/club/domain"
	sessiondomain "github.com/Black-And-White-Club/esportivo/app/modules/session/domain"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
)

// ErrEmptyClubRef is returned when GetClub is called without an id or slug.
var ErrEmptyClubRef = errors.New("club id or slug is required")

// ClubService implements the Service interface.
type ClubService struct {
	api    apiclient.Requester
	logger *slog.Logger
}

// NewClubService creates a new ClubService.
func NewClubService(api apiclient.Requester, logger *slog.Logger) *ClubService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClubService{api: api, logger: logger}
}

// ListClubs returns every club the user can pick.
func (s *ClubService) ListClubs(ctx context.Context) ([]sessiondomain.Club, error) {
	var clubs []sessiondomain.Club
	if err := s.api.Get(ctx, "/clubs", nil, &clubs); err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

// GetClub loads a club page by numeric id or slug.
func (s *ClubService) GetClub(ctx context.Context, idOrSlug string) (*clubdomain.Profile, error) {
	ref := strings.TrimSpace(idOrSlug)
	if ref == "" {
		return nil, ErrEmptyClubRef
	}
	var profile clubdomain.Profile
	if err := s.api.Get(ctx, "/clubs/"+url.PathEscape(ref), nil, &profile); err != nil {
		return nil, fmt.Errorf("failed to get club %q: %w", ref, err)
	}
	s.logger.DebugContext(ctx, "Loaded club", slog.Int64("club_id", profile.ID))
	return &profile, nil
}

var _ Service = (*ClubService)(nil)
