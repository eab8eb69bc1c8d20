package membershipservice

import (
	"context"
	"fmt"
	"log/slog"

	membershipdomain "github.com/Black-And-White-Club/esportivo/app/modules/membership/domain"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
)

// Service backs the membership card screen.
type Service interface {
	Card(ctx context.Context) (*membershipdomain.Card, error)
}

// MembershipService implements the Service interface.
type MembershipService struct {
	api    apiclient.Requester
	logger *slog.Logger
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(api apiclient.Requester, logger *slog.Logger) *MembershipService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MembershipService{api: api, logger: logger}
}

// Card fetches the signed-in user's membership card.
func (s *MembershipService) Card(ctx context.Context) (*membershipdomain.Card, error) {
	var card membershipdomain.Card
	if err := s.api.Get(ctx, "/me/membership-card", nil, &card); err != nil {
		return nil, fmt.Errorf("failed to get membership card: %w", err)
	}
	return &card, nil
}

var _ Service = (*MembershipService)(nil)
