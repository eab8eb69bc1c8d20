package membershipservice

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient/apiclienttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard(t *testing.T) {
	fake := apiclienttest.NewFakeRequester()
	fake.GetFunc = apiclienttest.Routes(map[string]string{
		"/me/membership-card": `{"number":"0001-7","holder_name":"Ana Souza","club_id":3,"club_name":"Alvorada","status":"active","valid_from":"2026-01-01T00:00:00Z","valid_until":"2026-12-31T23:59:59Z","qr_payload":"esportivo:card:0001-7"}`,
	})
	svc := NewMembershipService(fake, nil)

	card, err := svc.Card(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0001-7", card.Number)
	assert.True(t, card.IsValid(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{"GET /me/membership-card"}, fake.Trace())
}

func TestCard_Unauthorized(t *testing.T) {
	fake := apiclienttest.NewFakeRequester()
	fake.GetFunc = func(ctx context.Context, path string, query url.Values, out any) error {
		return &apiclient.APIError{StatusCode: http.StatusUnauthorized, Body: []byte(`{"message":"Faça login"}`)}
	}
	svc := NewMembershipService(fake, nil)

	_, err := svc.Card(context.Background())
	assert.True(t, apiclient.IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, "Faça login", apiclient.UserMessage(err, ""))
}
