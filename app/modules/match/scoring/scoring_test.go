package scoring

import (
	"testing"
	"time"

	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	home int64 = 10
	away int64 = 20
)

var kickoff = time.Date(2026, 10, 15, 19, 0, 0, 0, time.UTC)

type timeline struct {
	events []matchdomain.Event
	at     time.Time
}

func newTimeline() *timeline {
	return &timeline{at: kickoff}
}

func (tl *timeline) add(e matchdomain.Event, after time.Duration) *timeline {
	tl.at = tl.at.Add(after)
	e.ID = int64(len(tl.events) + 1)
	e.MatchID = 1
	e.OccurredAt = tl.at
	tl.events = append(tl.events, e)
	return tl
}

func (tl *timeline) points(team int64, n int) *timeline {
	for i := 0; i < n; i++ {
		tl.add(matchdomain.Event{Type: matchdomain.EventPoint, TeamID: team}, time.Second)
	}
	return tl
}

func ptr(v int64) *int64 { return &v }

func testMatch(sport matchdomain.Sport) matchdomain.Match {
	return matchdomain.Match{ID: 1, ChampionshipID: 1, Sport: sport, Status: matchdomain.StatusLive, HomeTeamID: home, AwayTeamID: away}
}

func TestTally(t *testing.T) {
	tl := newTimeline().
		add(matchdomain.Event{Type: matchdomain.EventGoal, TeamID: home, Period: 1}, time.Minute).
		add(matchdomain.Event{Type: matchdomain.EventPoint, TeamID: away, Period: 1, Points: 3}, time.Minute).
		add(matchdomain.Event{Type: matchdomain.EventFoul, TeamID: away, Period: 2}, time.Minute).
		add(matchdomain.Event{Type: matchdomain.EventPoint, TeamID: home, Period: 2, Points: 2}, time.Minute).
		add(matchdomain.Event{Type: matchdomain.EventGoal, TeamID: 999, Period: 2}, time.Minute)

	got := Tally(testMatch(matchdomain.SportBasketball), tl.events)

	want := Score{
		Home: 3,
		Away: 3,
		ByPeriod: map[int]PeriodScore{
			1: {Home: 1, Away: 3},
			2: {Home: 2},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tally mismatch (-want +got):\n%s", diff)
	}
}

func TestTally_OrdersByTime(t *testing.T) {
	later := matchdomain.Event{ID: 1, Type: matchdomain.EventGoal, TeamID: home, Period: 2, OccurredAt: kickoff.Add(time.Hour)}
	earlier := matchdomain.Event{ID: 2, Type: matchdomain.EventGoal, TeamID: home, Period: 1, OccurredAt: kickoff}
	events := []matchdomain.Event{later, earlier}

	got := Tally(testMatch(matchdomain.SportFootball), events)
	assert.Equal(t, 2, got.Home)
	assert.Equal(t, later, events[0], "input slice is not reordered")
}

func TestLineupRotate(t *testing.T) {
	l := Lineup{1, 2, 3, 4, 5, 6}
	r := l.Rotate()
	assert.Equal(t, Lineup{2, 3, 4, 5, 6, 1}, r)
	assert.Equal(t, int64(2), r.Server())

	for i := 0; i < 5; i++ {
		r = r.Rotate()
	}
	assert.Equal(t, l, r, "six rotations return to the start")
}

func TestVolleyball(t *testing.T) {
	homeLineup := Lineup{1, 2, 3, 4, 5, 6}
	awayLineup := Lineup{11, 12, 13, 14, 15, 16}
	input := VolleyballInput{HomeTeamID: home, AwayTeamID: away, FirstServer: home, HomeLineup: homeLineup, AwayLineup: awayLineup}

	tests := []struct {
		name   string
		events *timeline
		verify func(t *testing.T, b VolleyballBoard)
	}{
		{
			name:   "serving team keeps serve without rotating",
			events: newTimeline().points(home, 3),
			verify: func(t *testing.T, b VolleyballBoard) {
				assert.Equal(t, SetScore{Number: 1, Home: 3}, b.Current)
				assert.Equal(t, home, b.Serving)
				assert.Equal(t, homeLineup, b.HomeRotation)
				assert.Equal(t, awayLineup, b.AwayRotation)
			},
		},
		{
			name:   "side-out rotates the receiving team",
			events: newTimeline().points(home, 1).points(away, 1),
			verify: func(t *testing.T, b VolleyballBoard) {
				assert.Equal(t, away, b.Serving)
				assert.Equal(t, homeLineup, b.HomeRotation)
				assert.Equal(t, awayLineup.Rotate(), b.AwayRotation)
				assert.Equal(t, int64(12), b.AwayRotation.Server())
			},
		},
		{
			name:   "serve changes back and forth",
			events: newTimeline().points(away, 1).points(home, 1).points(away, 1),
			verify: func(t *testing.T, b VolleyballBoard) {
				assert.Equal(t, away, b.Serving)
				assert.Equal(t, homeLineup.Rotate(), b.HomeRotation)
				assert.Equal(t, awayLineup.Rotate().Rotate(), b.AwayRotation)
			},
		},
		{
			name:   "set needs a two point lead",
			events: newTimeline().points(home, 24).points(away, 24).points(home, 1),
			verify: func(t *testing.T, b VolleyballBoard) {
				assert.Empty(t, b.Sets)
				assert.Equal(t, SetScore{Number: 1, Home: 25, Away: 24}, b.Current)
			},
		},
		{
			name:   "deuce set closes at 26-24",
			events: newTimeline().points(home, 24).points(away, 24).points(home, 2),
			verify: func(t *testing.T, b VolleyballBoard) {
				require.Len(t, b.Sets, 1)
				assert.Equal(t, SetScore{Number: 1, Home: 26, Away: 24, Winner: home}, b.Sets[0])
				assert.Equal(t, 1, b.HomeSets)
				assert.Equal(t, SetScore{Number: 2}, b.Current)
				assert.Equal(t, away, b.Serving, "second set opens with the other team serving")
				assert.Equal(t, awayLineup, b.AwayRotation, "lineups reset between sets")
			},
		},
		{
			name: "fifth set is played to 15",
			events: newTimeline().
				points(home, 25).points(away, 25).
				points(home, 25).points(away, 25).
				points(away, 15),
			verify: func(t *testing.T, b VolleyballBoard) {
				require.Len(t, b.Sets, 5)
				assert.Equal(t, SetScore{Number: 5, Away: 15, Winner: away}, b.Sets[4])
				assert.Equal(t, 2, b.HomeSets)
				assert.Equal(t, 3, b.AwaySets)
				assert.Equal(t, away, b.Winner)
			},
		},
		{
			name:   "points after the match is decided are ignored",
			events: newTimeline().points(home, 75).points(away, 10),
			verify: func(t *testing.T, b VolleyballBoard) {
				assert.Equal(t, home, b.Winner)
				assert.Equal(t, 3, b.HomeSets)
				assert.Equal(t, 0, b.AwaySets)
				assert.Len(t, b.Sets, 3)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.verify(t, Volleyball(input, tt.events.events))
		})
	}
}

func TestVolleyball_DefaultsFirstServerToHome(t *testing.T) {
	b := Volleyball(VolleyballInput{HomeTeamID: home, AwayTeamID: away}, nil)
	assert.Equal(t, home, b.Serving)
	assert.Equal(t, 1, b.Current.Number)
}

func TestSetTarget(t *testing.T) {
	assert.Equal(t, 25, SetTarget(1))
	assert.Equal(t, 25, SetTarget(4))
	assert.Equal(t, 15, SetTarget(5))
}

func TestFouls(t *testing.T) {
	tl := newTimeline()
	for i := 0; i < 5; i++ {
		tl.add(matchdomain.Event{Type: matchdomain.EventFoul, TeamID: home, PlayerID: ptr(7), Period: 1}, time.Minute)
	}
	tl.add(matchdomain.Event{Type: matchdomain.EventFoul, TeamID: home, PlayerID: ptr(8), Period: 2}, time.Minute).
		add(matchdomain.Event{Type: matchdomain.EventFoul, TeamID: away, PlayerID: ptr(21), Period: 2}, time.Minute).
		add(matchdomain.Event{Type: matchdomain.EventFoul, TeamID: away, Period: 2}, time.Minute).
		add(matchdomain.Event{Type: matchdomain.EventGoal, TeamID: away, PlayerID: ptr(21), Period: 2}, time.Minute)

	r := Fouls(tl.events)

	assert.Equal(t, map[int64]int{7: 5, 8: 1, 21: 1}, r.Personal)
	assert.Equal(t, []int64{7}, r.FouledOut)
	assert.True(t, r.IsFouledOut(7))
	assert.False(t, r.IsFouledOut(8))
	assert.True(t, r.InBonus(home, 1))
	assert.False(t, r.InBonus(home, 2))
	assert.Equal(t, 2, r.TeamFouls[away][2])
	assert.False(t, r.InBonus(away, 2))
	assert.False(t, r.InBonus(999, 1))
}

func TestCombat(t *testing.T) {
	tests := []struct {
		name       string
		events     []matchdomain.Event
		wantLeader int64
		wantHome   CombatScore
	}{
		{
			name: "points decide",
			events: []matchdomain.Event{
				{Type: matchdomain.EventPoint, TeamID: home, Points: 2},
				{Type: matchdomain.EventAdvantage, TeamID: away},
				{Type: matchdomain.EventAdvantage, TeamID: away},
			},
			wantLeader: home,
			wantHome:   CombatScore{Points: 2},
		},
		{
			name: "advantages break a points tie",
			events: []matchdomain.Event{
				{Type: matchdomain.EventPoint, TeamID: home, Points: 2},
				{Type: matchdomain.EventPoint, TeamID: away, Points: 2},
				{Type: matchdomain.EventAdvantage, TeamID: away},
				{Type: matchdomain.EventPenalty, TeamID: home},
				{Type: matchdomain.EventPenalty, TeamID: away},
				{Type: matchdomain.EventPenalty, TeamID: away},
			},
			wantLeader: away,
			wantHome:   CombatScore{Points: 2, Penalties: 1},
		},
		{
			name: "fewer penalties break the remaining tie",
			events: []matchdomain.Event{
				{Type: matchdomain.EventAdvantage, TeamID: home},
				{Type: matchdomain.EventAdvantage, TeamID: away},
				{Type: matchdomain.EventPenalty, TeamID: home},
			},
			wantLeader: away,
			wantHome:   CombatScore{Advantages: 1, Penalties: 1},
		},
		{
			name: "full tie has no leader",
			events: []matchdomain.Event{
				{Type: matchdomain.EventPoint, TeamID: home, Points: 4},
				{Type: matchdomain.EventPoint, TeamID: away, Points: 4},
			},
			wantHome: CombatScore{Points: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Combat(testMatch(matchdomain.SportJiuJitsu), tt.events)
			assert.Equal(t, tt.wantLeader, b.Leader)
			assert.Equal(t, tt.wantHome, b.Home)
		})
	}
}

func TestMatchClock(t *testing.T) {
	start := matchdomain.Event{Type: matchdomain.EventPeriodStart, Period: 1}
	pause := matchdomain.Event{Type: matchdomain.EventClockPause}
	resume := matchdomain.Event{Type: matchdomain.EventClockResume}
	end := matchdomain.Event{Type: matchdomain.EventPeriodEnd}

	tests := []struct {
		name  string
		build func() *timeline
		now   time.Duration
		want  Clock
	}{
		{
			name:  "not started",
			build: newTimeline,
			want:  Clock{},
		},
		{
			name:  "running counts to now",
			build: func() *timeline { return newTimeline().add(start, 0) },
			now:   90 * time.Second,
			want:  Clock{Period: 1, Elapsed: 90 * time.Second, Running: true},
		},
		{
			name: "pause stops the clock",
			build: func() *timeline {
				return newTimeline().add(start, 0).add(pause, 5*time.Minute)
			},
			now:  20 * time.Minute,
			want: Clock{Period: 1, Elapsed: 5 * time.Minute},
		},
		{
			name: "resume adds the rest",
			build: func() *timeline {
				return newTimeline().add(start, 0).add(pause, 5*time.Minute).add(resume, 2*time.Minute)
			},
			now:  10 * time.Minute,
			want: Clock{Period: 1, Elapsed: 8 * time.Minute, Running: true},
		},
		{
			name: "next period resets",
			build: func() *timeline {
				return newTimeline().add(start, 0).add(end, 20*time.Minute).
					add(matchdomain.Event{Type: matchdomain.EventPeriodStart}, 10*time.Minute)
			},
			now:  31 * time.Minute,
			want: Clock{Period: 2, Elapsed: time.Minute, Running: true},
		},
		{
			name: "resume after period end is ignored",
			build: func() *timeline {
				return newTimeline().add(start, 0).add(end, 20*time.Minute).add(resume, time.Minute)
			},
			now:  time.Hour,
			want: Clock{Period: 1, Elapsed: 20 * time.Minute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchClock(tt.build().events, kickoff.Add(tt.now))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "00:00", Clock{}.String())
	assert.Equal(t, "12:05", Clock{Elapsed: 12*time.Minute + 5*time.Second}.String())
	assert.Equal(t, "95:00", Clock{Elapsed: 95 * time.Minute}.String())
}

func TestBuild(t *testing.T) {
	tl := newTimeline().points(home, 2)

	vb := Build(testMatch(matchdomain.SportVolleyball), tl.events, tl.at, Options{})
	require.NotNil(t, vb.Volleyball)
	assert.Nil(t, vb.Fouls)
	assert.Equal(t, 2, vb.Score.Home)

	bb := Build(testMatch(matchdomain.SportBasketball), tl.events, tl.at, Options{})
	assert.NotNil(t, bb.Fouls)
	assert.Nil(t, bb.Volleyball)

	jj := Build(testMatch(matchdomain.SportJudo), tl.events, tl.at, Options{})
	require.NotNil(t, jj.Combat)
	assert.Equal(t, home, jj.Combat.Leader)

	fb := Build(testMatch(matchdomain.SportFootball), tl.events, tl.at, Options{})
	assert.Nil(t, fb.Volleyball)
	assert.Nil(t, fb.Fouls)
	assert.Nil(t, fb.Combat)
}
