// Package store persists finished and in-flight episodes to sqlite for
// post-hoc analysis: which mazes were solved, how many moves and pit hits
// each run took, and the per-step trail of perceptions and choices.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"pitsweeper/internal/types"
)

// Recorder manages the episode database.
type Recorder struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// StepRecord is one persisted step.
type StepRecord struct {
	Index   int
	Loc     types.Coord
	Tile    string
	Target  types.Coord
	Score   int
	PitHits int
	KBSize  int
}

// EpisodeRecord is one persisted episode summary.
type EpisodeRecord struct {
	ID        string
	Width     int
	Height    int
	Reached   bool
	Steps     int
	Score     int
	PitHits   int
	StartedAt time.Time
}

// NewRecorder creates or opens the episode store at dir/episodes.db.
func NewRecorder(dir string) (*Recorder, error) {
	dbPath := filepath.Join(dir, "episodes.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	r := &Recorder{db: db, dbPath: dbPath}
	if err := r.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return r, nil
}

// Close closes the database connection.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Recorder) Path() string {
	return r.dbPath
}

func (r *Recorder) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS episodes (
		id TEXT PRIMARY KEY,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		reached INTEGER NOT NULL DEFAULT 0,
		steps INTEGER NOT NULL DEFAULT 0,
		score INTEGER NOT NULL DEFAULT 0,
		pit_hits INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL,
		finished_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS steps (
		episode_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		loc_x INTEGER NOT NULL,
		loc_y INTEGER NOT NULL,
		tile TEXT NOT NULL,
		target_x INTEGER NOT NULL,
		target_y INTEGER NOT NULL,
		score INTEGER NOT NULL,
		pit_hits INTEGER NOT NULL,
		kb_size INTEGER NOT NULL,
		PRIMARY KEY (episode_id, idx)
	);
	CREATE INDEX IF NOT EXISTS idx_steps_episode ON steps(episode_id);
	`
	_, err := r.db.Exec(schema)
	return err
}

// BeginEpisode inserts the episode row before the first step.
func (r *Recorder) BeginEpisode(ctx context.Context, id string, width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO episodes (id, width, height, started_at) VALUES (?, ?, ?, ?)`,
		id, width, height, time.Now().UTC())
	return err
}

// FinishEpisode records the outcome of a completed episode.
func (r *Recorder) FinishEpisode(ctx context.Context, id string, reached bool, steps, score, pitHits int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.db.ExecContext(ctx,
		`UPDATE episodes SET reached = ?, steps = ?, score = ?, pit_hits = ?, finished_at = ? WHERE id = ?`,
		boolToInt(reached), steps, score, pitHits, time.Now().UTC(), id)
	return err
}

// RecordStep appends one step to an episode's trail.
func (r *Recorder) RecordStep(ctx context.Context, episodeID string, s StepRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO steps (episode_id, idx, loc_x, loc_y, tile, target_x, target_y, score, pit_hits, kb_size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		episodeID, s.Index, s.Loc.X, s.Loc.Y, s.Tile, s.Target.X, s.Target.Y, s.Score, s.PitHits, s.KBSize)
	return err
}

// Episodes returns episode summaries, newest first.
func (r *Recorder) Episodes(ctx context.Context, limit int) ([]EpisodeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, width, height, reached, steps, score, pit_hits, started_at
		 FROM episodes ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EpisodeRecord
	for rows.Next() {
		var e EpisodeRecord
		var reached int
		if err := rows.Scan(&e.ID, &e.Width, &e.Height, &reached, &e.Steps, &e.Score, &e.PitHits, &e.StartedAt); err != nil {
			return nil, err
		}
		e.Reached = reached != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

// Steps returns an episode's step trail in order.
func (r *Recorder) Steps(ctx context.Context, episodeID string) ([]StepRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, err := r.db.QueryContext(ctx,
		`SELECT idx, loc_x, loc_y, tile, target_x, target_y, score, pit_hits, kb_size
		 FROM steps WHERE episode_id = ? ORDER BY idx`, episodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StepRecord
	for rows.Next() {
		var s StepRecord
		if err := rows.Scan(&s.Index, &s.Loc.X, &s.Loc.Y, &s.Tile, &s.Target.X, &s.Target.Y, &s.Score, &s.PitHits, &s.KBSize); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
