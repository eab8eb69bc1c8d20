package devapi

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	championshipdomain "github.com/Black-And-White-Club/esportivo/app/modules/championship/domain"
	clubdomain "github.com/Black-And-White-Club/esportivo/app/modules/club/domain"
	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
	"github.com/Black-And-White-Club/esportivo/app/modules/match/scoring"
	membershipdomain "github.com/Black-And-White-Club/esportivo/app/modules/membership/domain"
	rosterdomain "github.com/Black-And-White-Club/esportivo/app/modules/roster/domain"
	sessiondomain "github.com/Black-And-White-Club/esportivo/app/modules/session/domain"
	shopdomain "github.com/Black-And-White-Club/esportivo/app/modules/shop/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Fixed accounts present in every dataset.
const (
	AdminLogin    = "admin@esportivo.dev"
	AdminPassword = "admin123"
	MemberLogin   = "atleta@esportivo.dev"
	MemberPass    = "atleta123"
)

var (
	errNotFound          = errors.New("not found")
	errInsufficientStock = errors.New("insufficient stock")
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

type account struct {
	user         sessiondomain.User
	passwordHash []byte
}

// Dataset is the in-memory state behind the stand-in API.
type Dataset struct {
	mu sync.RWMutex

	accounts      []account
	clubs         []sessiondomain.Club
	profiles      map[int64]string
	championships []championshipdomain.Championship
	teams         []rosterdomain.Team
	players       []rosterdomain.Player
	matches       []matchdomain.Match
	events        []matchdomain.Event
	products      []shopdomain.Product
	orders        map[int64][]shopdomain.Order
	cards         map[int64]membershipdomain.Card

	nextID int64
}

// NewDataset generates a reproducible dataset from seed.
func NewDataset(seed int64, now time.Time) *Dataset {
	f := gofakeit.New(uint64(seed))
	d := &Dataset{
		profiles: map[int64]string{},
		orders:   map[int64][]shopdomain.Order{},
		cards:    map[int64]membershipdomain.Card{},
	}

	sports := []matchdomain.Sport{
		matchdomain.SportFutsal,
		matchdomain.SportVolleyball,
		matchdomain.SportBasketball,
		matchdomain.SportJiuJitsu,
	}

	for c := 0; c < 3; c++ {
		name := f.Company() + " EC"
		club := sessiondomain.Club{
			ID:   d.id(),
			Name: name,
			Slug: slugify(name),
			Theme: &sessiondomain.ClubTheme{
				PrimaryColor:   f.HexColor(),
				SecondaryColor: f.HexColor(),
			},
		}
		d.clubs = append(d.clubs, club)
		d.profiles[club.ID] = f.City()

		for _, sport := range sports {
			d.seedChampionship(f, club, sport, now)
		}
		for p := 0; p < 4; p++ {
			stock := f.Number(0, 20)
			d.products = append(d.products, shopdomain.Product{
				ID:         d.id(),
				ClubID:     club.ID,
				Name:       f.ProductName(),
				PriceCents: int64(f.Number(20, 300)) * 100,
				Stock:      &stock,
				Sizes:      []string{"P", "M", "G", "GG"},
			})
		}
	}

	firstClub := d.clubs[0].ID
	d.addAccount(sessiondomain.User{Name: "Admin Esportivo", Email: AdminLogin, IsAdmin: true, ClubID: &firstClub}, AdminPassword, now)
	d.addAccount(sessiondomain.User{Name: f.FirstName() + " " + f.LastName(), Email: MemberLogin, ClubID: &firstClub}, MemberPass, now)
	return d
}

func (d *Dataset) id() int64 {
	d.nextID++
	return d.nextID
}

func (d *Dataset) addAccount(u sessiondomain.User, password string, now time.Time) {
	u.ID = d.id()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("devapi: hash fixture password: %v", err))
	}
	d.accounts = append(d.accounts, account{user: u, passwordHash: hash})

	club := d.clubs[0]
	number := fmt.Sprintf("%04d-%d", u.ID, u.ID%10)
	d.cards[u.ID] = membershipdomain.Card{
		Number:     number,
		HolderName: u.Name,
		ClubID:     club.ID,
		ClubName:   club.Name,
		Category:   "Sócio titular",
		Status:     membershipdomain.StatusActive,
		ValidFrom:  time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(now.Year(), 12, 31, 23, 59, 59, 0, time.UTC),
		QRPayload:  "esportivo:card:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(number)).String(),
	}
}

func (d *Dataset) seedChampionship(f *gofakeit.Faker, club sessiondomain.Club, sport matchdomain.Sport, now time.Time) {
	starts := now.AddDate(0, -1, 0).Truncate(24 * time.Hour)
	ends := now.AddDate(0, 2, 0).Truncate(24 * time.Hour)
	champ := championshipdomain.Championship{
		ID:       d.id(),
		ClubID:   club.ID,
		Name:     fmt.Sprintf("Copa %s de %s", club.Name, sportLabel(sport)),
		Sport:    sport,
		Season:   fmt.Sprintf("%d", now.Year()),
		Status:   championshipdomain.StatusOngoing,
		StartsAt: &starts,
		EndsAt:   &ends,
	}
	d.championships = append(d.championships, champ)

	var teams []rosterdomain.Team
	for t := 0; t < 4; t++ {
		team := rosterdomain.Team{
			ID:             d.id(),
			ChampionshipID: champ.ID,
			Name:           f.City() + " " + sportLabel(sport),
			CoachName:      f.FirstName() + " " + f.LastName(),
		}
		size := 8
		if sport.Combat() {
			size = 1
			team.Name = f.FirstName() + " " + f.LastName()
		}
		for p := 0; p < size; p++ {
			number := p + 1
			d.players = append(d.players, rosterdomain.Player{
				ID:     d.id(),
				TeamID: team.ID,
				Name:   f.FirstName() + " " + f.LastName(),
				Number: &number,
			})
		}
		team.PlayerCount = size
		teams = append(teams, team)
	}
	d.teams = append(d.teams, teams...)

	pairs := [][2]int{{0, 1}, {2, 3}, {0, 2}, {1, 3}, {0, 3}, {1, 2}}
	for i, pair := range pairs {
		home, away := teams[pair[0]], teams[pair[1]]
		m := matchdomain.Match{
			ID:             d.id(),
			ChampionshipID: champ.ID,
			Sport:          sport,
			HomeTeamID:     home.ID,
			AwayTeamID:     away.ID,
			HomeTeamName:   home.Name,
			AwayTeamName:   away.Name,
			Venue:          "Ginásio " + club.Name,
		}
		switch {
		case i < 3:
			m.Status = matchdomain.StatusFinished
			m.ScheduledAt = now.AddDate(0, 0, -21+7*i).Truncate(time.Hour)
			m.HomeScore = f.Number(0, 5)
			m.AwayScore = f.Number(0, 5)
		case i == 3:
			m.Status = matchdomain.StatusLive
			m.ScheduledAt = now.Add(-30 * time.Minute).Truncate(time.Minute)
			m.Period = 1
			d.events = append(d.events, matchdomain.Event{
				ID:         d.id(),
				MatchID:    m.ID,
				Type:       matchdomain.EventPeriodStart,
				Period:     1,
				OccurredAt: m.ScheduledAt,
			})
		default:
			m.Status = matchdomain.StatusScheduled
			m.ScheduledAt = now.AddDate(0, 0, 7*(i-2)).Truncate(time.Hour)
		}
		d.matches = append(d.matches, m)
	}
}

func sportLabel(s matchdomain.Sport) string {
	switch s {
	case matchdomain.SportFutsal:
		return "Futsal"
	case matchdomain.SportVolleyball:
		return "Vôlei"
	case matchdomain.SportBasketball:
		return "Basquete"
	case matchdomain.SportJiuJitsu:
		return "Jiu-Jitsu"
	case matchdomain.SportJudo:
		return "Judô"
	}
	return "Futebol"
}

func slugify(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// Authenticate checks credentials.
func (d *Dataset) Authenticate(login, password string) (sessiondomain.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, a := range d.accounts {
		if !strings.EqualFold(a.user.Email, strings.TrimSpace(login)) {
			continue
		}
		if bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) != nil {
			return sessiondomain.User{}, false
		}
		return *a.user.Clone(), true
	}
	return sessiondomain.User{}, false
}

func (d *Dataset) User(id int64) (sessiondomain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, a := range d.accounts {
		if a.user.ID == id {
			return *a.user.Clone(), nil
		}
	}
	return sessiondomain.User{}, errNotFound
}

func (d *Dataset) Clubs() []sessiondomain.Club {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.clubs)
}

// ClubProfile resolves a club by id or slug.
func (d *Dataset) ClubProfile(ref string) (clubdomain.Profile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, c := range d.clubs {
		if c.Slug != ref && strconv.FormatInt(c.ID, 10) != ref {
			continue
		}
		profile := clubdomain.Profile{
			Club:        c,
			City:        d.profiles[c.ID],
			MemberCount: len(d.accounts),
		}
		for _, ch := range d.championships {
			if ch.ClubID == c.ID && !slices.Contains(profile.Sports, string(ch.Sport)) {
				profile.Sports = append(profile.Sports, string(ch.Sport))
			}
		}
		return profile, nil
	}
	return clubdomain.Profile{}, errNotFound
}

func (d *Dataset) Championships(clubID int64) []championshipdomain.Championship {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := []championshipdomain.Championship{}
	for _, c := range d.championships {
		if c.ClubID == clubID {
			out = append(out, c)
		}
	}
	return out
}

func (d *Dataset) Championship(id int64) (championshipdomain.Championship, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, c := range d.championships {
		if c.ID == id {
			return c, nil
		}
	}
	return championshipdomain.Championship{}, errNotFound
}

// Standings ranks teams from finished matches: three points for a win, one
// for a draw.
func (d *Dataset) Standings(championshipID int64) ([]championshipdomain.StandingRow, error) {
	if _, err := d.Championship(championshipID); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows := map[int64]*championshipdomain.StandingRow{}
	var order []int64
	for _, t := range d.teams {
		if t.ChampionshipID == championshipID {
			rows[t.ID] = &championshipdomain.StandingRow{TeamID: t.ID, TeamName: t.Name}
			order = append(order, t.ID)
		}
	}
	for _, m := range d.matches {
		if m.ChampionshipID != championshipID || m.Status != matchdomain.StatusFinished {
			continue
		}
		home, away := rows[m.HomeTeamID], rows[m.AwayTeamID]
		if home == nil || away == nil {
			continue
		}
		home.Played++
		away.Played++
		home.ScoreFor += m.HomeScore
		home.ScoreAgainst += m.AwayScore
		away.ScoreFor += m.AwayScore
		away.ScoreAgainst += m.HomeScore
		switch {
		case m.HomeScore > m.AwayScore:
			home.Won++
			home.Points += 3
			away.Lost++
		case m.HomeScore < m.AwayScore:
			away.Won++
			away.Points += 3
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
			home.Points++
			away.Points++
		}
	}

	out := make([]championshipdomain.StandingRow, 0, len(order))
	for _, id := range order {
		out = append(out, *rows[id])
	}
	slices.SortStableFunc(out, func(a, b championshipdomain.StandingRow) int {
		if a.Points != b.Points {
			return b.Points - a.Points
		}
		if a.Balance() != b.Balance() {
			return b.Balance() - a.Balance()
		}
		return b.ScoreFor - a.ScoreFor
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out, nil
}

func (d *Dataset) ChampionshipMatches(championshipID int64) []matchdomain.Match {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := []matchdomain.Match{}
	for _, m := range d.matches {
		if m.ChampionshipID == championshipID {
			out = append(out, m)
		}
	}
	return out
}

func (d *Dataset) Teams(championshipID int64) []rosterdomain.Team {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := []rosterdomain.Team{}
	for _, t := range d.teams {
		if t.ChampionshipID == championshipID {
			out = append(out, t)
		}
	}
	return out
}

func (d *Dataset) Team(id int64) (rosterdomain.Team, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, t := range d.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return rosterdomain.Team{}, errNotFound
}

func (d *Dataset) Players(teamID int64) []rosterdomain.Player {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := []rosterdomain.Player{}
	for _, p := range d.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}

func (d *Dataset) AddPlayer(teamID int64, draft rosterdomain.PlayerDraft) (rosterdomain.Player, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := slices.IndexFunc(d.teams, func(t rosterdomain.Team) bool { return t.ID == teamID })
	if idx < 0 {
		return rosterdomain.Player{}, errNotFound
	}
	p := rosterdomain.Player{
		ID:        d.id(),
		TeamID:    teamID,
		Name:      draft.Name,
		Number:    draft.Number,
		Position:  draft.Position,
		BirthDate: draft.BirthDate,
	}
	d.players = append(d.players, p)
	d.teams[idx].PlayerCount++
	return p, nil
}

func (d *Dataset) RemovePlayer(teamID, playerID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := slices.IndexFunc(d.players, func(p rosterdomain.Player) bool { return p.ID == playerID && p.TeamID == teamID })
	if idx < 0 {
		return errNotFound
	}
	d.players = slices.Delete(d.players, idx, idx+1)
	if t := slices.IndexFunc(d.teams, func(t rosterdomain.Team) bool { return t.ID == teamID }); t >= 0 {
		d.teams[t].PlayerCount--
	}
	return nil
}

func (d *Dataset) Match(id int64) (matchdomain.Match, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, m := range d.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return matchdomain.Match{}, errNotFound
}

func (d *Dataset) Events(matchID int64) []matchdomain.Event {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.eventsLocked(matchID)
}

func (d *Dataset) eventsLocked(matchID int64) []matchdomain.Event {
	out := []matchdomain.Event{}
	for _, e := range d.events {
		if e.MatchID == matchID {
			out = append(out, e)
		}
	}
	return out
}

// AddEvent appends to a match timeline and recomputes its score.
func (d *Dataset) AddEvent(matchID int64, draft matchdomain.EventDraft, now time.Time) (matchdomain.Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := d.matchIndex(matchID)
	if idx < 0 {
		return matchdomain.Event{}, errNotFound
	}
	at := now
	if draft.OccurredAt != nil {
		at = *draft.OccurredAt
	}
	e := matchdomain.Event{
		ID:         d.id(),
		MatchID:    matchID,
		Type:       draft.Type,
		TeamID:     draft.TeamID,
		PlayerID:   draft.PlayerID,
		Period:     draft.Period,
		Points:     draft.Points,
		OccurredAt: at,
		Note:       draft.Note,
	}
	d.events = append(d.events, e)
	if e.Type == matchdomain.EventPeriodStart && e.Period > d.matches[idx].Period {
		d.matches[idx].Period = e.Period
	}
	d.rescoreLocked(idx)
	return e, nil
}

func (d *Dataset) DeleteEvent(matchID, eventID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := d.matchIndex(matchID)
	if idx < 0 {
		return errNotFound
	}
	e := slices.IndexFunc(d.events, func(e matchdomain.Event) bool { return e.ID == eventID && e.MatchID == matchID })
	if e < 0 {
		return errNotFound
	}
	d.events = slices.Delete(d.events, e, e+1)
	d.rescoreLocked(idx)
	return nil
}

func (d *Dataset) rescoreLocked(idx int) {
	m := d.matches[idx]
	events := d.eventsLocked(m.ID)
	if len(events) == 0 {
		return
	}
	score := scoring.Tally(m, events)
	d.matches[idx].HomeScore = score.Home
	d.matches[idx].AwayScore = score.Away
}

func (d *Dataset) SetStatus(matchID int64, status matchdomain.Status) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := d.matchIndex(matchID)
	if idx < 0 {
		return errNotFound
	}
	d.matches[idx].Status = status
	return nil
}

// Schedule creates a fixture between two teams of the championship.
func (d *Dataset) Schedule(championshipID int64, req matchdomain.ScheduleRequest) (matchdomain.Match, error) {
	champ, err := d.Championship(championshipID)
	if err != nil {
		return matchdomain.Match{}, err
	}
	home, err := d.Team(req.HomeTeamID)
	if err != nil || home.ChampionshipID != championshipID {
		return matchdomain.Match{}, errNotFound
	}
	away, err := d.Team(req.AwayTeamID)
	if err != nil || away.ChampionshipID != championshipID {
		return matchdomain.Match{}, errNotFound
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	m := matchdomain.Match{
		ID:             d.id(),
		ChampionshipID: championshipID,
		Sport:          champ.Sport,
		Status:         matchdomain.StatusScheduled,
		HomeTeamID:     home.ID,
		AwayTeamID:     away.ID,
		HomeTeamName:   home.Name,
		AwayTeamName:   away.Name,
		ScheduledAt:    req.ScheduledAt,
		Venue:          req.Venue,
	}
	d.matches = append(d.matches, m)
	return m, nil
}

func (d *Dataset) matchIndex(id int64) int {
	return slices.IndexFunc(d.matches, func(m matchdomain.Match) bool { return m.ID == id })
}

func (d *Dataset) Products(clubID int64) []shopdomain.Product {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := []shopdomain.Product{}
	for _, p := range d.products {
		if p.ClubID == clubID {
			out = append(out, p)
		}
	}
	return out
}

func (d *Dataset) Product(id int64) (shopdomain.Product, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.products {
		if p.ID == id {
			return p, nil
		}
	}
	return shopdomain.Product{}, errNotFound
}

// PlaceOrder reserves stock for every item or for none.
func (d *Dataset) PlaceOrder(userID int64, items []shopdomain.OrderItem, now time.Time) (shopdomain.Order, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	order := shopdomain.Order{ID: d.id(), Status: "pending", CreatedAt: now}
	indexes := make([]int, len(items))
	for i, item := range items {
		idx := slices.IndexFunc(d.products, func(p shopdomain.Product) bool { return p.ID == item.ProductID })
		if idx < 0 {
			return shopdomain.Order{}, fmt.Errorf("%w: product %d", errNotFound, item.ProductID)
		}
		if !d.products[idx].Available(item.Quantity) {
			return shopdomain.Order{}, fmt.Errorf("%w: %s", errInsufficientStock, d.products[idx].Name)
		}
		indexes[i] = idx
	}
	for i, item := range items {
		p := &d.products[indexes[i]]
		if p.Stock != nil {
			left := *p.Stock - item.Quantity
			p.Stock = &left
		}
		order.Items = append(order.Items, shopdomain.OrderLine{
			ProductID:      p.ID,
			Name:           p.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: p.PriceCents,
			Size:           item.Size,
		})
		order.TotalCents += p.PriceCents * int64(item.Quantity)
	}
	d.orders[userID] = append(d.orders[userID], order)
	return order, nil
}

func (d *Dataset) Orders(userID int64) []shopdomain.Order {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := slices.Clone(d.orders[userID])
	if out == nil {
		out = []shopdomain.Order{}
	}
	return out
}

func (d *Dataset) Card(userID int64) (membershipdomain.Card, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	card, ok := d.cards[userID]
	if !ok {
		return membershipdomain.Card{}, errNotFound
	}
	return card, nil
}
