package matchservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient/apiclienttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matchFixture = `{"id":5,"championship_id":2,"sport":"futsal","status":"live","home_team_id":10,"away_team_id":20,"home_score":1,"away_score":0,"period":1,"scheduled_at":"2026-10-15T19:00:00Z"}`

func newService(fake *apiclienttest.FakeRequester, now time.Time) *MatchService {
	return NewMatchService(fake, NewKickoffParser(time.UTC), fixedClock(now), nil)
}

func TestGetAndEvents(t *testing.T) {
	fake := apiclienttest.NewFakeRequester()
	fake.GetFunc = apiclienttest.Routes(map[string]string{
		"/matches/5":        matchFixture,
		"/matches/5/events": `[{"id":1,"match_id":5,"type":"goal","team_id":10,"period":1,"occurred_at":"2026-10-15T19:05:00Z"}]`,
	})
	svc := newService(fake, time.Now())

	m, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, matchdomain.StatusLive, m.Status)
	assert.Equal(t, matchdomain.SportFutsal, m.Sport)

	events, err := svc.Events(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, matchdomain.EventGoal, events[0].Type)

	_, err = svc.Get(context.Background(), 6)
	assert.True(t, apiclient.IsStatus(err, http.StatusNotFound))
}

func TestRecordEvent(t *testing.T) {
	tests := []struct {
		name      string
		draft     matchdomain.EventDraft
		postErr   error
		wantErr   error
		wantTrace []string
	}{
		{
			name:      "records then refetches",
			draft:     matchdomain.EventDraft{Type: matchdomain.EventGoal, TeamID: 10, Period: 1},
			wantTrace: []string{"POST /admin/matches/5/events", "GET /matches/5/events"},
		},
		{
			name:      "clock events need no team",
			draft:     matchdomain.EventDraft{Type: matchdomain.EventClockPause, Period: 1},
			wantTrace: []string{"POST /admin/matches/5/events", "GET /matches/5/events"},
		},
		{
			name:    "unknown type rejected locally",
			draft:   matchdomain.EventDraft{Type: "dunk", TeamID: 10},
			wantErr: ErrInvalidEventType,
		},
		{
			name:    "goal without team rejected locally",
			draft:   matchdomain.EventDraft{Type: matchdomain.EventGoal},
			wantErr: ErrEventNeedsTeam,
		},
		{
			name:      "server refusal skips refetch",
			draft:     matchdomain.EventDraft{Type: matchdomain.EventFoul, TeamID: 20},
			postErr:   &apiclient.APIError{StatusCode: http.StatusForbidden, Body: []byte(`{"message":"Acesso negado"}`)},
			wantTrace: []string{"POST /admin/matches/5/events"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := apiclienttest.NewFakeRequester()
			fake.PostFunc = func(ctx context.Context, path string, body, out any) error {
				return tt.postErr
			}
			fake.GetFunc = func(ctx context.Context, path string, query url.Values, out any) error {
				return apiclienttest.Respond(out, `[{"id":9,"match_id":5,"type":"goal","team_id":10,"period":1,"occurred_at":"2026-10-15T19:05:00Z"}]`)
			}
			svc := newService(fake, time.Now())

			events, err := svc.RecordEvent(context.Background(), 5, tt.draft)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, fake.Calls())
				return
			case tt.postErr != nil:
				require.Error(t, err)
				assert.Equal(t, "Acesso negado", apiclient.UserMessage(err, ""))
			default:
				require.NoError(t, err)
				require.Len(t, events, 1)
				assert.Equal(t, tt.draft, fake.Calls()[0].Body)
			}
			assert.Equal(t, tt.wantTrace, fake.Trace())
		})
	}
}

func TestDeleteEvent(t *testing.T) {
	fake := apiclienttest.NewFakeRequester()
	fake.GetFunc = func(ctx context.Context, path string, query url.Values, out any) error {
		return apiclienttest.Respond(out, `[]`)
	}
	svc := newService(fake, time.Now())

	events, err := svc.DeleteEvent(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, []string{"DELETE /admin/matches/5/events/9", "GET /matches/5/events"}, fake.Trace())
}

func TestUpdateStatus(t *testing.T) {
	fake := apiclienttest.NewFakeRequester()
	fake.GetFunc = apiclienttest.Routes(map[string]string{"/matches/5": matchFixture})
	svc := newService(fake, time.Now())

	_, err := svc.UpdateStatus(context.Background(), 5, "paused")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	m, err := svc.UpdateStatus(context.Background(), 5, matchdomain.StatusFinished)
	require.NoError(t, err)
	assert.Equal(t, int64(5), m.ID)
	assert.Equal(t, []string{"PATCH /admin/matches/5", "GET /matches/5"}, fake.Trace())
	assert.Equal(t, matchdomain.StatusUpdate{Status: matchdomain.StatusFinished}, fake.Calls()[0].Body)
}

func TestSchedule(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		draft   matchdomain.ScheduleDraft
		wantErr error
		wantAt  time.Time
	}{
		{
			name:   "creates then refetches",
			draft:  matchdomain.ScheduleDraft{HomeTeamID: 10, AwayTeamID: 20, Kickoff: "2026-10-18 16:00", Venue: "Ginásio"},
			wantAt: time.Date(2026, 10, 18, 16, 0, 0, 0, time.UTC),
		},
		{
			name:    "same team twice",
			draft:   matchdomain.ScheduleDraft{HomeTeamID: 10, AwayTeamID: 10, Kickoff: "2026-10-18 16:00"},
			wantErr: ErrSameTeams,
		},
		{
			name:    "missing team",
			draft:   matchdomain.ScheduleDraft{HomeTeamID: 10, Kickoff: "2026-10-18 16:00"},
			wantErr: ErrInvalidMatchTeams,
		},
		{
			name:    "kickoff in the past",
			draft:   matchdomain.ScheduleDraft{HomeTeamID: 10, AwayTeamID: 20, Kickoff: "2026-10-01 16:00"},
			wantErr: ErrKickoffInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := apiclienttest.NewFakeRequester()
			var sent []byte
			fake.PostFunc = func(ctx context.Context, path string, body, out any) error {
				sent, _ = json.Marshal(body)
				return apiclienttest.Respond(out, matchFixture)
			}
			fake.GetFunc = apiclienttest.Routes(map[string]string{"/matches/5": matchFixture})
			svc := newService(fake, now)

			m, err := svc.Schedule(context.Background(), 2, tt.draft)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, fake.Calls())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), m.ID)
			assert.Equal(t, []string{"POST /admin/championships/2/matches", "GET /matches/5"}, fake.Trace())

			var req matchdomain.ScheduleRequest
			require.NoError(t, json.Unmarshal(sent, &req))
			assert.True(t, tt.wantAt.Equal(req.ScheduledAt))
			assert.Equal(t, tt.draft.Venue, req.Venue)
		})
	}
}
