// Package sqlite stores per-actor memory in a local SQLite database: the
// events each actor perceived, distilled episode summaries, and long-lived
// semantic facts. This is the substrate an NPC controller reads when it
// composes its next decision.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"homestead/internal/domain/sim"
)

const schema = `
CREATE TABLE IF NOT EXISTS perceived_events (
    perceived_id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id   TEXT NOT NULL,
    turn_id      INTEGER NOT NULL,
    npc_id       TEXT NOT NULL,
    event_id     TEXT NOT NULL,
    content      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_perceived_session_turn_npc
ON perceived_events(session_id, turn_id, npc_id);

CREATE TABLE IF NOT EXISTS episodes (
    episode_id   INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id   TEXT NOT NULL,
    turn_id      INTEGER NOT NULL,
    npc_id       TEXT NOT NULL,
    content      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_episodes_session_npc_turn
ON episodes(session_id, npc_id, turn_id);

CREATE TABLE IF NOT EXISTS semantic_memory (
    mem_id       INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id   TEXT NOT NULL,
    npc_id       TEXT NOT NULL,
    turn_id      INTEGER NOT NULL,
    scope        TEXT NOT NULL,
    subject      TEXT NOT NULL,
    content      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_semantic_session_npc_scope_subject
ON semantic_memory(session_id, npc_id, scope, subject);
`

type Store struct {
	db        *sql.DB
	sessionID string
}

// Open creates or opens the memory database and applies the schema. A path
// of ":memory:" keeps everything in process, which tests rely on.
func Open(path, sessionID string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA temp_store = MEMORY;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, sessionID: sessionID}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordPerceived appends the events one actor witnessed this invocation.
func (s *Store) RecordPerceived(ctx context.Context, actorID string, events []sim.Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO perceived_events (session_id, turn_id, npc_id, event_id, content)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		content, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, s.sessionID, ev.Turn, actorID, ev.ID, string(content)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecentPerceived returns the newest perceived events for one actor,
// newest first.
func (s *Store) RecentPerceived(ctx context.Context, actorID string, limit int) ([]sim.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT content FROM perceived_events
WHERE session_id = ? AND npc_id = ?
ORDER BY perceived_id DESC LIMIT ?`, s.sessionID, actorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sim.Event
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		var ev sim.Event
		if err := json.Unmarshal([]byte(content), &ev); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// AddEpisode stores one distilled episode summary for an actor.
func (s *Store) AddEpisode(ctx context.Context, actorID string, turn int, content string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO episodes (session_id, turn_id, npc_id, content)
VALUES (?, ?, ?, ?)`, s.sessionID, turn, actorID, content)
	return err
}

// AddSemantic stores one long-lived fact, keyed by scope and subject.
func (s *Store) AddSemantic(ctx context.Context, actorID string, turn int, scope, subject, content string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO semantic_memory (session_id, npc_id, turn_id, scope, subject, content)
VALUES (?, ?, ?, ?, ?, ?)`, s.sessionID, actorID, turn, scope, subject, content)
	return err
}

// SemanticBySubject lists facts for one actor filtered by scope and subject,
// newest first.
func (s *Store) SemanticBySubject(ctx context.Context, actorID, scope, subject string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT content FROM semantic_memory
WHERE session_id = ? AND npc_id = ? AND scope = ? AND subject = ?
ORDER BY mem_id DESC`, s.sessionID, actorID, scope, subject)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		out = append(out, content)
	}
	return out, rows.Err()
}

// NewSessionID derives a stable session identifier from wall time.
func NewSessionID(now time.Time) string {
	return "session-" + now.UTC().Format("20060102T150405")
}
