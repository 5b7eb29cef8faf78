package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/anushka369/minesweeper-assist/internal/game"
	"github.com/anushka369/minesweeper-assist/internal/repository"
	"github.com/anushka369/minesweeper-assist/internal/session"
)

type newGameParams struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
	X         int `schema:"x,required"`
	Y         int `schema:"y,required"`
}

func (app *application) handleNewGame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequest(w, "could not parse form")
		return
	}
	var params newGameParams
	if err := decoder.Decode(&params, r.Form); err != nil {
		app.badRequest(w, "invalid game parameters")
		return
	}
	if params.X < 0 || params.X >= params.Width ||
		params.Y < 0 || params.Y >= params.Height {
		app.badRequest(w, "first move out of bounds")
		return
	}
	firstMove := params.Y*params.Width + params.X
	g, _, err := game.New(params.Width, params.Height, params.MineCount, firstMove, app.rnd)
	if err != nil {
		app.badRequest(w, err.Error())
		return
	}
	s := app.sessions.Create(g)
	app.replyWithJSON(w, newGameStateDto(s))
}

func (app *application) handleGetGame(w http.ResponseWriter, r *http.Request) {
	s, ok := app.getSession(w, r)
	if !ok {
		return
	}
	app.replyWithJSON(w, newGameStateDto(s))
}

func (app *application) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := app.getSessionId(r)
	if err != nil {
		app.badRequest(w, "invalid game id")
		return
	}
	app.sessions.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

type moveParams struct {
	Action string `schema:"action,required"`
	X      int    `schema:"x,required"`
	Y      int    `schema:"y,required"`
}

func (app *application) handleMove(w http.ResponseWriter, r *http.Request) {
	s, ok := app.getSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		app.badRequest(w, "could not parse form")
		return
	}
	var params moveParams
	if err := decoder.Decode(&params, r.Form); err != nil {
		app.badRequest(w, "invalid move parameters")
		return
	}

	var badMove error
	s.Update(func(g *game.Game) {
		i := g.Index(params.X, params.Y)
		if params.X < 0 || params.X >= g.Width || !g.InBounds(i) {
			badMove = game.ErrBadIndex
			return
		}
		switch params.Action {
		case "open":
			g.Open(i)
		case "flag":
			g.ToggleFlag(i)
		case "chord":
			g.Chord(i)
		default:
			badMove = errors.New("action must be one of open, flag, chord")
		}
	})
	if badMove != nil {
		app.badRequest(w, badMove.Error())
		return
	}
	app.replyWithJSON(w, newGameStateDto(s))
}

func (app *application) handleForfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := app.getSession(w, r)
	if !ok {
		return
	}
	s.Update(func(g *game.Game) { g.Forfeit() })
	app.replyWithJSON(w, newGameStateDto(s))
}

func (app *application) handleHint(w http.ResponseWriter, r *http.Request) {
	s, ok := app.getSession(w, r)
	if !ok {
		return
	}
	assist := app.sessions.Assist(s)
	if assist.Suggestion == nil {
		app.replyWithJSON(w, map[string]any{"suggestion": nil})
		return
	}
	s.CountHint()
	app.replyWithJSON(w, map[string]any{
		"suggestion": newSuggestionDto(*assist.Suggestion),
	})
}

func (app *application) handleProbabilities(w http.ResponseWriter, r *http.Request) {
	s, ok := app.getSession(w, r)
	if !ok {
		return
	}
	snapshot, _ := s.View()
	assist := app.sessions.Assist(s)
	app.replyWithJSON(w, map[string]any{
		"cells": newProbabilitiesDto(snapshot.Width(), snapshot.Height(), assist.Probabilities),
	})
}

func (app *application) handleSave(w http.ResponseWriter, r *http.Request) {
	s, ok := app.getSession(w, r)
	if !ok {
		return
	}
	var err error
	s.Game(func(g *game.Game) {
		err = app.saves.Save(s.ID, g)
	})
	if err != nil {
		app.internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) handleResume(w http.ResponseWriter, r *http.Request) {
	id, err := app.getSessionId(r)
	if err != nil {
		app.badRequest(w, "invalid game id")
		return
	}
	g, err := app.saves.Load(id)
	if errors.Is(err, session.ErrNotFound) {
		app.notFound(w)
		return
	}
	if err != nil {
		app.internalError(w, err)
		return
	}
	s := app.sessions.Adopt(id, g)
	app.replyWithJSON(w, newGameStateDto(s))
}

func (app *application) handleRecordResult(w http.ResponseWriter, r *http.Request) {
	if app.repo == nil {
		http.Error(w, "highscores disabled", http.StatusServiceUnavailable)
		return
	}
	s, ok := app.getSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		app.badRequest(w, "could not parse form")
		return
	}
	name := r.Form.Get("name")
	if name == "" {
		app.badRequest(w, "name is required")
		return
	}

	result := repository.GameResult{
		GameId:     s.ID,
		Name:       name,
		PlaytimeMs: time.Since(s.StartedAt).Milliseconds(),
		HintsUsed:  s.HintsUsed(),
	}
	var unfinished bool
	s.Game(func(g *game.Game) {
		result.Width = g.Width
		result.Height = g.Height
		result.MineCount = g.Mines
		result.Won = g.Result == game.Won
		unfinished = g.Result == game.On
	})
	if unfinished {
		app.badRequest(w, "game is still in progress")
		return
	}

	err := app.repo.RecordResult(r.Context(), result)
	if errors.Is(err, repository.ErrAlreadyRecorded) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		app.internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

type highscoreParams struct {
	Width     *int `schema:"width"`
	Height    *int `schema:"height"`
	MineCount *int `schema:"mine_count"`
	Limit     int  `schema:"limit"`
}

func (app *application) handleHighscores(w http.ResponseWriter, r *http.Request) {
	if app.repo == nil {
		http.Error(w, "highscores disabled", http.StatusServiceUnavailable)
		return
	}
	if err := r.ParseForm(); err != nil {
		app.badRequest(w, "could not parse form")
		return
	}
	var params highscoreParams
	if err := decoder.Decode(&params, r.Form); err != nil {
		app.badRequest(w, "invalid highscore filters")
		return
	}
	results, err := app.repo.GetHighscores(r.Context(), repository.HighscoreFilter{
		Width:     params.Width,
		Height:    params.Height,
		MineCount: params.MineCount,
		Limit:     params.Limit,
	})
	if err != nil {
		app.internalError(w, err)
		return
	}
	app.replyWithJSON(w, map[string]any{"highscores": results})
}
