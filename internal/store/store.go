// Package store persists trigger definitions in PostgreSQL. The engine
// works entirely from its in-memory registry; the store only loads
// definitions at startup and records admin changes.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"log/slog"

	_ "github.com/lib/pq"

	"github.com/rblake2320/New-election-countdown-sub005/internal/events"
	"github.com/rblake2320/New-election-countdown-sub005/internal/trigger"
)

// DB wraps a database connection for trigger persistence.
type DB struct {
	conn *sql.DB
}

// NewDB creates a new database connection using the provided DSN.
func NewDB(dsn string) (*DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Successfully connected to PostgreSQL database")
	return &DB{conn: conn}, nil
}

// NewDBWithConn wraps an existing connection. Used by tests.
func NewDBWithConn(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// LoadTriggers reads every persisted trigger definition. Rows with
// undecodable conditions are skipped with a warning rather than failing
// the whole load.
func (db *DB) LoadTriggers(ctx context.Context) ([]*trigger.Trigger, error) {
	query := `
		SELECT trigger_id, name, event_type, conditions, priority, cooldown_minutes, active
		FROM alert_triggers
		ORDER BY trigger_id
	`
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load triggers: %w", err)
	}
	defer rows.Close()

	var triggers []*trigger.Trigger
	for rows.Next() {
		var (
			t               trigger.Trigger
			conditionsJSON  []byte
			priority        string
			cooldownMinutes int
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.EventType, &conditionsJSON, &priority, &cooldownMinutes, &t.Active); err != nil {
			return nil, fmt.Errorf("failed to scan trigger row: %w", err)
		}
		if err := json.Unmarshal(conditionsJSON, &t.Conditions); err != nil {
			slog.Warn("Skipping trigger with undecodable conditions",
				"trigger_id", t.ID,
				"error", err,
			)
			continue
		}
		u, ok := events.ParseUrgency(priority)
		if !ok {
			slog.Warn("Skipping trigger with unknown priority",
				"trigger_id", t.ID,
				"priority", priority,
			)
			continue
		}
		t.Priority = u
		t.Cooldown = time.Duration(cooldownMinutes) * time.Minute
		triggers = append(triggers, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trigger rows: %w", err)
	}
	return triggers, nil
}

// SaveTrigger upserts a trigger definition. Matches the registry
// semantics: a duplicate id replaces the whole record.
func (db *DB) SaveTrigger(ctx context.Context, t *trigger.Trigger) error {
	conditionsJSON, err := json.Marshal(t.Conditions)
	if err != nil {
		return fmt.Errorf("failed to marshal conditions: %w", err)
	}
	query := `
		INSERT INTO alert_triggers (trigger_id, name, event_type, conditions, priority, cooldown_minutes, active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (trigger_id) DO UPDATE SET
			name = EXCLUDED.name,
			event_type = EXCLUDED.event_type,
			conditions = EXCLUDED.conditions,
			priority = EXCLUDED.priority,
			cooldown_minutes = EXCLUDED.cooldown_minutes,
			active = EXCLUDED.active,
			updated_at = NOW()
	`
	_, err = db.conn.ExecContext(ctx, query,
		t.ID, t.Name, t.EventType, conditionsJSON,
		string(t.Priority), int(t.Cooldown/time.Minute), t.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to save trigger %s: %w", t.ID, err)
	}
	return nil
}

// DeleteTrigger removes a trigger definition.
// Returns false if no such trigger existed.
func (db *DB) DeleteTrigger(ctx context.Context, triggerID string) (bool, error) {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM alert_triggers WHERE trigger_id = $1`, triggerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete trigger %s: %w", triggerID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}
