package main

import (
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"

	"github.com/anushka369/minesweeper-assist/internal/repository"
	"github.com/anushka369/minesweeper-assist/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type application struct {
	logger   *slog.Logger
	sessions *session.Registry
	saves    *session.Store
	repo     *repository.Queries
	rnd      *rand.Rand
}

func (app *application) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/status", app.handleStatus).Methods("GET")

	r.HandleFunc("/game", app.handleNewGame).Methods("POST")
	r.HandleFunc("/game/{id}", app.handleGetGame).Methods("GET")
	r.HandleFunc("/game/{id}", app.handleDeleteGame).Methods("DELETE")
	r.HandleFunc("/game/{id}/move", app.handleMove).Methods("POST")
	r.HandleFunc("/game/{id}/forfeit", app.handleForfeit).Methods("POST")

	r.HandleFunc("/game/{id}/hint", app.handleHint).Methods("GET")
	r.HandleFunc("/game/{id}/probabilities", app.handleProbabilities).Methods("GET")

	r.HandleFunc("/game/{id}/save", app.handleSave).Methods("POST")
	r.HandleFunc("/game/{id}/resume", app.handleResume).Methods("POST")

	r.HandleFunc("/game/{id}/result", app.handleRecordResult).Methods("POST")
	r.HandleFunc("/highscores", app.handleHighscores).Methods("GET")

	r.HandleFunc("/game/{id}/watch", app.handleWatch).Methods("GET")

	return r
}

func (app *application) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

func (app *application) getSessionId(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

func (app *application) getSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := app.getSessionId(r)
	if err != nil {
		app.badRequest(w, "invalid game id")
		return nil, false
	}
	s, ok := app.sessions.Get(id)
	if !ok {
		app.notFound(w)
		return nil, false
	}
	return s, true
}

func (app *application) replyWithJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		app.logger.Error("failed to encode response", "error", err)
	}
}

func (app *application) badRequest(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusBadRequest)
}

func (app *application) notFound(w http.ResponseWriter) {
	http.Error(w, "not found", http.StatusNotFound)
}

func (app *application) internalError(w http.ResponseWriter, err error) {
	app.logger.Error("internal error", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
