package repository

import (
	"database/sql"
	"fmt"

	"github.com/panuwat/gacp-certification/internal/models"
	"go.uber.org/zap"
)

// DocumentRepository handles application document persistence.
type DocumentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *sql.DB, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{db: db, logger: logger}
}

// Create inserts a new document record.
func (r *DocumentRepository) Create(tx *sql.Tx, doc *models.ApplicationDocument) error {
	query := `
		INSERT INTO application_documents (application_id, type, file_name, file_path, verified)
		VALUES (?, ?, ?, ?, ?)
	`

	var result sql.Result
	var err error
	if tx != nil {
		result, err = tx.Exec(query, doc.ApplicationID, doc.Type, doc.FileName, doc.FilePath, doc.Verified)
	} else {
		result, err = r.db.Exec(query, doc.ApplicationID, doc.Type, doc.FileName, doc.FilePath, doc.Verified)
	}
	if err != nil {
		r.logger.Error("Failed to create document",
			zap.Int64("application_id", doc.ApplicationID),
			zap.String("type", doc.Type),
			zap.Error(err))
		return fmt.Errorf("failed to create document: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	doc.ID = id
	return nil
}

// ListByApplication returns all documents attached to an application.
func (r *DocumentRepository) ListByApplication(applicationID int64) ([]*models.ApplicationDocument, error) {
	query := `
		SELECT id, application_id, type, file_name, file_path, verified, uploaded_at
		FROM application_documents
		WHERE application_id = ?
		ORDER BY uploaded_at ASC, id ASC
	`

	rows, err := r.db.Query(query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.ApplicationDocument
	for rows.Next() {
		var doc models.ApplicationDocument
		if err := rows.Scan(&doc.ID, &doc.ApplicationID, &doc.Type, &doc.FileName, &doc.FilePath, &doc.Verified, &doc.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}
