// Package events writes the per-run audit log.
package events

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/akarlsen/userfill/internal/domain"
)

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.New().String()
}

// Writer handles writing events to the run log
type Writer struct {
	db *sql.DB
}

// NewWriter creates a new event writer
func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db}
}

// LogEvent writes an event to the run log
func (w *Writer) LogEvent(tx *sql.Tx, event *domain.RunEvent) error {
	query := `
		INSERT INTO run_log (run_id, event_type, tbl, payload)
		VALUES (?, ?, ?, ?)
	`

	executor := w.getExecutor(tx)
	_, err := executor.Exec(query, event.RunID, event.EventType, event.Table, event.Payload)
	if err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogRunStarted logs the start of a run
func (w *Writer) LogRunStarted(runID string, scheme domain.Scheme, tables []string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"scheme": scheme,
		"tables": tables,
	})
	if err != nil {
		return err
	}

	payloadStr := string(payload)
	return w.LogEvent(nil, &domain.RunEvent{
		RunID:     runID,
		EventType: "run.started",
		Payload:   &payloadStr,
	})
}

// LogTableCompleted logs the completion of one backfill pass
func (w *Writer) LogTableCompleted(runID, table string, inserted, skippedIPs int) error {
	payload, err := json.Marshal(map[string]interface{}{
		"inserted":    inserted,
		"skipped_ips": skippedIPs,
	})
	if err != nil {
		return err
	}

	payloadStr := string(payload)
	return w.LogEvent(nil, &domain.RunEvent{
		RunID:     runID,
		EventType: "table.completed",
		Table:     &table,
		Payload:   &payloadStr,
	})
}

// LogActorLinked logs one actor-to-user link
func (w *Writer) LogActorLinked(runID string, actorID, userID int64) error {
	payload, err := json.Marshal(map[string]interface{}{
		"actor_id": actorID,
		"user_id":  userID,
	})
	if err != nil {
		return err
	}

	payloadStr := string(payload)
	table := "actor"
	return w.LogEvent(nil, &domain.RunEvent{
		RunID:     runID,
		EventType: "actor.linked",
		Table:     &table,
		Payload:   &payloadStr,
	})
}

// LogRunFinished logs the end of a run with its totals
func (w *Writer) LogRunFinished(runID string, inserted, skippedIPs, linked int) error {
	payload, err := json.Marshal(map[string]interface{}{
		"inserted":    inserted,
		"skipped_ips": skippedIPs,
		"linked":      linked,
	})
	if err != nil {
		return err
	}

	payloadStr := string(payload)
	return w.LogEvent(nil, &domain.RunEvent{
		RunID:     runID,
		EventType: "run.finished",
		Payload:   &payloadStr,
	})
}

// getExecutor returns the appropriate executor (tx or db)
func (w *Writer) getExecutor(tx *sql.Tx) interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
} {
	if tx != nil {
		return tx
	}
	return w.db
}
