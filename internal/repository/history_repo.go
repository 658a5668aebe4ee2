package repository

import (
	"database/sql"
	"fmt"

	"github.com/panuwat/gacp-certification/internal/models"
	"go.uber.org/zap"
)

// HistoryRepository handles the status-change audit trail.
type HistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *sql.DB, logger *zap.Logger) *HistoryRepository {
	return &HistoryRepository{db: db, logger: logger}
}

// Create appends a status-change record.
func (r *HistoryRepository) Create(tx *sql.Tx, h *models.StatusHistory) error {
	query := `
		INSERT INTO status_history (application_id, actor_role, previous_status, new_status, note)
		VALUES (?, ?, ?, ?, ?)
	`

	var result sql.Result
	var err error
	if tx != nil {
		result, err = tx.Exec(query, h.ApplicationID, h.ActorRole, h.PreviousStatus, h.NewStatus, h.Note)
	} else {
		result, err = r.db.Exec(query, h.ApplicationID, h.ActorRole, h.PreviousStatus, h.NewStatus, h.Note)
	}
	if err != nil {
		r.logger.Error("Failed to create history record",
			zap.Int64("application_id", h.ApplicationID),
			zap.Error(err))
		return fmt.Errorf("failed to create history record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	h.ID = id
	return nil
}

// ListByApplication returns the full audit trail of an application, oldest
// first.
func (r *HistoryRepository) ListByApplication(applicationID int64) ([]*models.StatusHistory, error) {
	query := `
		SELECT id, application_id, actor_role, previous_status, new_status, note, changed_at
		FROM status_history
		WHERE application_id = ?
		ORDER BY changed_at ASC, id ASC
	`

	rows, err := r.db.Query(query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []*models.StatusHistory
	for rows.Next() {
		var h models.StatusHistory
		if err := rows.Scan(&h.ID, &h.ApplicationID, &h.ActorRole, &h.PreviousStatus, &h.NewStatus, &h.Note, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		entries = append(entries, &h)
	}
	return entries, rows.Err()
}
