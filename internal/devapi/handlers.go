package devapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
	rosterdomain "github.com/Black-And-White-Club/esportivo/app/modules/roster/domain"
	sessiondomain "github.com/Black-And-White-Club/esportivo/app/modules/session/domain"
	shopdomain "github.com/Black-And-White-Club/esportivo/app/modules/shop/domain"
	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	User        sessiondomain.User `json:"user"`
	AccessToken string             `json:"access_token"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageBody{Message: msg})
}

// idParam reads a numeric path parameter, answering 404 when it is not one.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusNotFound, "Registro não encontrado.")
		return 0, false
	}
	return id, true
}

func (s *Server) notFoundOr(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errNotFound) {
		writeMessage(w, http.StatusNotFound, "Registro não encontrado.")
		return
	}
	s.logger.ErrorContext(r.Context(), "Request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	writeMessage(w, http.StatusInternalServerError, "Erro interno.")
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Requisição inválida.")
		return false
	}
	return true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	user, ok := s.data.Authenticate(req.Login, req.Password)
	if !ok {
		s.logger.InfoContext(r.Context(), "Rejected login", slog.String("login", req.Login))
		writeMessage(w, http.StatusUnauthorized, "Credenciais inválidas.")
		return
	}
	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{User: user, AccessToken: token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	user, err := s.data.User(p.UserID)
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleClubs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.Clubs())
}

func (s *Server) handleClub(w http.ResponseWriter, r *http.Request) {
	profile, err := s.data.ClubProfile(chi.URLParam(r, "ref"))
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// clubQuery reads the mandatory club_id filter.
func clubQuery(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("club_id"), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusBadRequest, "Informe o clube.")
		return 0, false
	}
	return id, true
}

func (s *Server) handleChampionships(w http.ResponseWriter, r *http.Request) {
	clubID, ok := clubQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.data.Championships(clubID))
}

func (s *Server) handleChampionship(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	c, err := s.data.Championship(id)
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	rows, err := s.data.Standings(id)
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleChampionshipMatches(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if _, err := s.data.Championship(id); err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.data.ChampionshipMatches(id))
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if _, err := s.data.Championship(id); err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.data.Teams(id))
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	team, err := s.data.Team(id)
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if _, err := s.data.Team(id); err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.data.Players(id))
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var draft rosterdomain.PlayerDraft
	if !decode(w, r, &draft) {
		return
	}
	if strings.TrimSpace(draft.Name) == "" {
		writeMessage(w, http.StatusUnprocessableEntity, "Informe o nome do atleta.")
		return
	}
	player, err := s.data.AddPlayer(id, draft)
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

func (s *Server) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	teamID, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	playerID, ok := idParam(w, r, "playerID")
	if !ok {
		return
	}
	if err := s.data.RemovePlayer(teamID, playerID); err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	m, err := s.data.Match(id)
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if _, err := s.data.Match(id); err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.data.Events(id))
}

func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var draft matchdomain.EventDraft
	if !decode(w, r, &draft) {
		return
	}
	if !draft.Type.Valid() {
		writeMessage(w, http.StatusUnprocessableEntity, "Tipo de lance inválido.")
		return
	}
	e, err := s.data.AddEvent(id, draft, s.now())
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	matchID, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	eventID, ok := idParam(w, r, "eventID")
	if !ok {
		return
	}
	if err := s.data.DeleteEvent(matchID, eventID); err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var body matchdomain.StatusUpdate
	if !decode(w, r, &body) {
		return
	}
	if !body.Status.Valid() {
		writeMessage(w, http.StatusUnprocessableEntity, "Situação inválida.")
		return
	}
	if err := s.data.SetStatus(id, body.Status); err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	m, err := s.data.Match(id)
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req matchdomain.ScheduleRequest
	if !decode(w, r, &req) {
		return
	}
	if req.HomeTeamID == 0 || req.AwayTeamID == 0 || req.HomeTeamID == req.AwayTeamID || req.ScheduledAt.IsZero() {
		writeMessage(w, http.StatusUnprocessableEntity, "Dados da partida inválidos.")
		return
	}
	m, err := s.data.Schedule(id, req)
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	clubID, ok := clubQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.data.Products(clubID))
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	p, err := s.data.Product(id)
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	var req shopdomain.OrderRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		writeMessage(w, http.StatusUnprocessableEntity, "O pedido está vazio.")
		return
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			writeMessage(w, http.StatusUnprocessableEntity, "Quantidade inválida.")
			return
		}
	}
	order, err := s.data.PlaceOrder(p.UserID, req.Items, s.now())
	if errors.Is(err, errInsufficientStock) {
		writeMessage(w, http.StatusConflict, "Estoque insuficiente.")
		return
	}
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	writeJSON(w, http.StatusOK, s.data.Orders(p.UserID))
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	card, err := s.data.Card(p.UserID)
	if err != nil {
		s.notFoundOr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}
