package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrAlreadyRecorded marks a second submission for the same game.
var ErrAlreadyRecorded = errors.New("game result already recorded")

type GameResult struct {
	GameId     uuid.UUID          `json:"game_id"`
	Name       string             `json:"name"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	MineCount  int                `json:"mine_count"`
	Won        bool               `json:"won"`
	PlaytimeMs int64              `json:"playtime_ms"`
	HintsUsed  int                `json:"hints_used"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) RecordResult(ctx context.Context, r GameResult) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO game_result
			(game_id, name, width, height, mine_count, won, playtime_ms, hints_used)
		VALUES
			(@gameId, @name, @width, @height, @mineCount, @won, @playtimeMs, @hintsUsed)`,
		pgx.NamedArgs{
			"gameId":     r.GameId,
			"name":       r.Name,
			"width":      r.Width,
			"height":     r.Height,
			"mineCount":  r.MineCount,
			"won":        r.Won,
			"playtimeMs": r.PlaytimeMs,
			"hintsUsed":  r.HintsUsed,
		})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrAlreadyRecorded
	}
	return err
}

type HighscoreFilter struct {
	Width, Height, MineCount *int
	Limit                    int
}

func (f HighscoreFilter) whereClause() (string, pgx.NamedArgs) {
	var (
		clause = "won = true"
		args   = pgx.NamedArgs{}
	)
	if f.Width != nil {
		clause += " AND width = @width"
		args["width"] = *f.Width
	}
	if f.Height != nil {
		clause += " AND height = @height"
		args["height"] = *f.Height
	}
	if f.MineCount != nil {
		clause += " AND mine_count = @mineCount"
		args["mineCount"] = *f.MineCount
	}
	return clause, args
}

// GetHighscores lists won games fastest-first. Games that leaned on
// more hints rank below equally fast games that did not.
func (q *Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]GameResult, error) {
	whereClause, args := filter.whereClause()
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	args["limit"] = limit

	rows, err := q.db.Query(ctx, `
		SELECT
			game_id, name, width, height, mine_count,
			won, playtime_ms, hints_used, created_at
		FROM game_result
		WHERE `+whereClause+`
		ORDER BY playtime_ms, hints_used
		LIMIT @limit`,
		args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[GameResult])
}
