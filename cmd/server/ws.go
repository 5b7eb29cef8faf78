package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/anushka369/minesweeper-assist/internal/game"
	"github.com/anushka369/minesweeper-assist/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsCommand string

const (
	wsNoop    wsCommand = "g"
	wsOpen    wsCommand = "o"
	wsFlag    wsCommand = "f"
	wsChord   wsCommand = "c"
	wsForfeit wsCommand = "r" // =)
	wsHint    wsCommand = "h"
	wsProbs   wsCommand = "p"
)

// wsUpdate is pushed after every processed message. Assist fields are
// only populated when the message asked for them.
type wsUpdate struct {
	Game          gameStateDto   `json:"game"`
	Suggestion    *suggestionDto `json:"suggestion,omitempty"`
	Probabilities []cellProbDto  `json:"probabilities,omitempty"`
}

type wsExecutor struct {
	*application
	session *session.Session
	update  wsUpdate
}

func (e *wsExecutor) move(args []string, do func(g *game.Game, i int)) error {
	x, y, err := parseXY(args)
	if err != nil {
		return err
	}
	var bad bool
	e.session.Update(func(g *game.Game) {
		if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
			bad = true
			return
		}
		do(g, g.Index(x, y))
	})
	if bad {
		return fmt.Errorf("invalid square coordinates")
	}
	return nil
}

func (e *wsExecutor) hint() error {
	assist := e.sessions.Assist(e.session)
	if assist.Suggestion != nil {
		e.session.CountHint()
		dto := newSuggestionDto(*assist.Suggestion)
		e.update.Suggestion = &dto
	}
	return nil
}

func (e *wsExecutor) probabilities() error {
	snapshot, _ := e.session.View()
	assist := e.sessions.Assist(e.session)
	e.update.Probabilities = newProbabilitiesDto(
		snapshot.Width(), snapshot.Height(), assist.Probabilities,
	)
	return nil
}

func (e *wsExecutor) execute(query string) error {
	tokens := strings.Split(query, " ")
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsNoop:
		return nil
	case wsOpen:
		return e.move(args, func(g *game.Game, i int) { g.Open(i) })
	case wsFlag:
		return e.move(args, func(g *game.Game, i int) { g.ToggleFlag(i) })
	case wsChord:
		return e.move(args, func(g *game.Game, i int) { g.Chord(i) })
	case wsForfeit:
		e.session.Update(func(g *game.Game) { g.Forfeit() })
		return nil
	case wsHint:
		return e.hint()
	case wsProbs:
		return e.probabilities()
	default:
		return fmt.Errorf("unknown command")
	}
}

func (e *wsExecutor) runGameLoop(conn *websocket.Conn) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		e.update = wsUpdate{}
		message := strings.TrimSpace(string(buf))
		for _, line := range strings.Split(message, "\n") {
			if err := e.execute(strings.TrimSpace(line)); err != nil {
				return err
			}
		}

		e.update.Game = newGameStateDto(e.session)
		if err := conn.WriteJSON(e.update); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (app *application) handleWatch(w http.ResponseWriter, r *http.Request) {
	s, ok := app.getSession(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		app.logger.Error("unable to upgrade", "error", err)
		return
	}
	defer conn.Close()

	app.logger.Debug("established WS connection", "game", s.ID)

	e := &wsExecutor{application: app, session: s}
	if err := e.runGameLoop(conn); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return
		}
		app.logger.Warn("error in ws loop", "error", err)
	}
}

func parseXY(args []string) (x int, y int, err error) {
	if len(args) != 2 {
		err = fmt.Errorf("invalid args")
		return
	}
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}
