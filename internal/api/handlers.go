package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/susu3304/rafflebot/internal/db"
	"github.com/susu3304/rafflebot/internal/raffle"
)

const (
	historyLimit    = 100
	defaultDrawsMax = 10
	maxDrawsMax     = 50
)

type ticketsResponse struct {
	UserID  raffle.UserID `json:"user_id"`
	Tickets int           `json:"tickets"`
}

func (a *API) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	standings, ok := a.engine.Leaderboard()
	if !ok {
		writeMessage(w, http.StatusNotFound, "no tickets yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"standings": standings})
}

func (a *API) handleUserTickets(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	if _, err := strconv.ParseUint(userID, 10, 64); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user_id")
		return
	}
	user := raffle.UserID(userID)
	writeJSON(w, http.StatusOK, ticketsResponse{UserID: user, Tickets: a.engine.Balance(user)})
}

func (a *API) handleMyTickets(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing claims")
		return
	}
	user := raffle.UserID(claims.UserID)
	writeJSON(w, http.StatusOK, ticketsResponse{UserID: user, Tickets: a.engine.Balance(user)})
}

func (a *API) handleHistory(w http.ResponseWriter, r *http.Request) {
	if a.archive == nil {
		writeMessage(w, http.StatusNotFound, "history is not enabled")
		return
	}

	week, err := a.archive.LastStandings(r.Context(), historyLimit)
	if errors.Is(err, db.ErrNoArchive) {
		writeMessage(w, http.StatusNotFound, "no archived week yet")
		return
	}
	if err != nil {
		logrus.Errorf("failed to load archived standings: %v", err)
		writeMessage(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, week)
}

func (a *API) handleDraws(w http.ResponseWriter, r *http.Request) {
	if a.archive == nil {
		writeMessage(w, http.StatusNotFound, "history is not enabled")
		return
	}

	limit := defaultDrawsMax
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeMessage(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxDrawsMax)
	}

	draws, err := a.archive.RecentDraws(r.Context(), limit)
	if err != nil {
		logrus.Errorf("failed to load draws: %v", err)
		writeMessage(w, http.StatusInternalServerError, "failed to load draws")
		return
	}
	if draws == nil {
		draws = []db.Draw{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"draws": draws})
}
