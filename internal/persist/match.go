package persist

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// KillRow is one kill record within a round.
type KillRow struct {
	Round    int
	Killer   string
	Victim   string
	WeaponID int32
	Headshot bool
	At       time.Time
}

// RoundRow is one finished round.
type RoundRow struct {
	Round   int
	Winner  string
	Reason  string
	ScoreT  int
	ScoreCT int
	At      time.Time
}

// MatchRepo writes match history. Write-only: the simulation never reads any
// of this back, so a failed insert costs a log line, not correctness.
type MatchRepo struct {
	db *DB
}

func NewMatchRepo(db *DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// InsertMatch opens a match record.
func (r *MatchRepo) InsertMatch(ctx context.Context, id uuid.UUID, serverName, mapName string, startedAt time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO matches (match_id, server_name, map_name, started_at)
		 VALUES ($1, $2, $3, $4)`,
		id, serverName, mapName, startedAt)
	return err
}

// InsertRound appends one finished round to a match.
func (r *MatchRepo) InsertRound(ctx context.Context, matchID uuid.UUID, row RoundRow) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO match_rounds (match_id, round_no, winner, reason, score_t, score_ct, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		matchID, row.Round, row.Winner, row.Reason, row.ScoreT, row.ScoreCT, row.At)
	return err
}

// InsertKill appends one kill record.
func (r *MatchRepo) InsertKill(ctx context.Context, matchID uuid.UUID, row KillRow) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO match_kills (match_id, round_no, killer, victim, weapon_id, headshot, at_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		matchID, row.Round, row.Killer, row.Victim, row.WeaponID, row.Headshot, row.At)
	return err
}

// FinishMatch closes a match record with the final result.
func (r *MatchRepo) FinishMatch(ctx context.Context, matchID uuid.UUID, winner string, scoreT, scoreCT, rounds int) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE matches
		 SET finished_at = $2, winner = $3, score_t = $4, score_ct = $5, rounds = $6
		 WHERE match_id = $1`,
		matchID, time.Now(), winner, scoreT, scoreCT, rounds)
	return err
}
