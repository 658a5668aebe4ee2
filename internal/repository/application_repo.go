package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/panuwat/gacp-certification/internal/domain/workflow"
	"github.com/panuwat/gacp-certification/internal/models"
	"go.uber.org/zap"
)

// ApplicationRepository handles certification application persistence.
type ApplicationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewApplicationRepository creates a new application repository.
func NewApplicationRepository(db *sql.DB, logger *zap.Logger) *ApplicationRepository {
	return &ApplicationRepository{db: db, logger: logger}
}

// Create inserts a new application. When tx is non-nil the insert joins the
// caller's transaction.
func (r *ApplicationRepository) Create(tx *sql.Tx, app *models.CertificationApplication) error {
	query := `
		INSERT INTO certification_applications (
			application_number, farmer_id, farm_name, province, status, expires_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	var result sql.Result
	var err error
	if tx != nil {
		result, err = tx.Exec(query, app.ApplicationNumber, app.FarmerID, app.FarmName, app.Province, app.Status, app.ExpiresAt)
	} else {
		result, err = r.db.Exec(query, app.ApplicationNumber, app.FarmerID, app.FarmName, app.Province, app.Status, app.ExpiresAt)
	}
	if err != nil {
		r.logger.Error("Failed to create application", zap.Error(err))
		return fmt.Errorf("failed to create application: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	app.ID = id
	return nil
}

// GetByID retrieves an application by ID. Returns (nil, nil) when no row
// exists.
func (r *ApplicationRepository) GetByID(id int64) (*models.CertificationApplication, error) {
	return r.getOne("WHERE id = ?", id)
}

// GetByApplicationNumber retrieves an application by its public number.
func (r *ApplicationRepository) GetByApplicationNumber(number string) (*models.CertificationApplication, error) {
	return r.getOne("WHERE application_number = ?", number)
}

func (r *ApplicationRepository) getOne(where string, args ...interface{}) (*models.CertificationApplication, error) {
	query := `
		SELECT id, application_number, farmer_id, farm_name, province, status,
			expires_at, created_at, updated_at
		FROM certification_applications ` + where

	var app models.CertificationApplication
	var expiresAt sql.NullTime

	err := r.db.QueryRow(query, args...).Scan(
		&app.ID,
		&app.ApplicationNumber,
		&app.FarmerID,
		&app.FarmName,
		&app.Province,
		&app.Status,
		&expiresAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	if expiresAt.Valid {
		app.ExpiresAt = &expiresAt.Time
	}
	return &app, nil
}

// UpdateStatus sets the status and expiry window of an application.
// expiresAt may be nil for states without a timeout window.
func (r *ApplicationRepository) UpdateStatus(tx *sql.Tx, id int64, status string, expiresAt *time.Time) error {
	query := `
		UPDATE certification_applications
		SET status = ?, expires_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	var err error
	if tx != nil {
		_, err = tx.Exec(query, status, expiresAt, id)
	} else {
		_, err = r.db.Exec(query, status, expiresAt, id)
	}
	if err != nil {
		r.logger.Error("Failed to update application status",
			zap.Int64("id", id),
			zap.String("status", status),
			zap.Error(err))
		return fmt.Errorf("failed to update application status: %w", err)
	}
	return nil
}

// ListByStatus returns up to limit applications in the given status, oldest
// first.
func (r *ApplicationRepository) ListByStatus(status string, limit int) ([]*models.CertificationApplication, error) {
	query := `
		SELECT id, application_number, farmer_id, farm_name, province, status,
			expires_at, created_at, updated_at
		FROM certification_applications
		WHERE status = ?
		ORDER BY created_at ASC
		LIMIT ?
	`
	return r.list(query, status, limit)
}

// ListOverdue returns up to limit non-terminal applications whose expiry
// window has passed at the given instant.
func (r *ApplicationRepository) ListOverdue(now time.Time, limit int) ([]*models.CertificationApplication, error) {
	query := `
		SELECT id, application_number, farmer_id, farm_name, province, status,
			expires_at, created_at, updated_at
		FROM certification_applications
		WHERE expires_at IS NOT NULL AND expires_at <= ? AND status NOT IN (?, ?, ?)
		ORDER BY expires_at ASC
		LIMIT ?
	`
	return r.list(query, now,
		workflow.StateCertificateIssued.String(),
		workflow.StateRejected.String(),
		workflow.StateExpired.String(),
		limit)
}

// ListAll returns every application, newest first. Used by the registry
// export.
func (r *ApplicationRepository) ListAll() ([]*models.CertificationApplication, error) {
	query := `
		SELECT id, application_number, farmer_id, farm_name, province, status,
			expires_at, created_at, updated_at
		FROM certification_applications
		ORDER BY created_at DESC
	`
	return r.list(query)
}

func (r *ApplicationRepository) list(query string, args ...interface{}) ([]*models.CertificationApplication, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.CertificationApplication
	for rows.Next() {
		var app models.CertificationApplication
		var expiresAt sql.NullTime
		if err := rows.Scan(
			&app.ID,
			&app.ApplicationNumber,
			&app.FarmerID,
			&app.FarmName,
			&app.Province,
			&app.Status,
			&expiresAt,
			&app.CreatedAt,
			&app.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		if expiresAt.Valid {
			app.ExpiresAt = &expiresAt.Time
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}
