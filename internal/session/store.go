package session

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/anushka369/minesweeper-assist/internal/game"
)

var ErrNotFound = errors.New("no saved game with that id")

// Store persists games into a local sqlite database so a browser
// session can be resumed after a restart. Games go in gob-encoded; the
// schema is a plain key-value table.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

func NewStore(db *sql.DB) (*Store, error) {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS saves (
	id		TEXT PRIMARY KEY,
	state	BLOB NOT NULL
);`)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Save inserts or replaces the saved state for a session id.
func (s *Store) Save(id uuid.UUID, g *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, err := g.Bytes()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
INSERT INTO saves (id, state)
VALUES (?, ?)
ON CONFLICT(id)
DO UPDATE SET state=excluded.state;`,
		id.String(), buf)
	return err
}

// Load retrieves a saved game, or [ErrNotFound].
func (s *Store) Load(id uuid.UUID) (*game.Game, error) {
	var buf []byte
	err := s.db.QueryRow(
		`SELECT state FROM saves WHERE id = ?;`, id.String(),
	).Scan(&buf)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return game.DecodeGame(buf)
}

// Delete removes a save without checking that it existed.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM saves WHERE id = ?;`, id.String())
	return err
}
