package repository

import (
	"database/sql"
	"fmt"

	"github.com/panuwat/gacp-certification/internal/models"
	"go.uber.org/zap"
)

// PaymentRepository handles verified fee payment records.
type PaymentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *sql.DB, logger *zap.Logger) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger}
}

// Create records a verified payment.
func (r *PaymentRepository) Create(tx *sql.Tx, p *models.PaymentRecord) error {
	query := `
		INSERT INTO payment_records (application_id, phase, amount, reference)
		VALUES (?, ?, ?, ?)
	`

	var result sql.Result
	var err error
	if tx != nil {
		result, err = tx.Exec(query, p.ApplicationID, p.Phase, p.Amount, p.Reference)
	} else {
		result, err = r.db.Exec(query, p.ApplicationID, p.Phase, p.Amount, p.Reference)
	}
	if err != nil {
		r.logger.Error("Failed to create payment record",
			zap.Int64("application_id", p.ApplicationID),
			zap.Int("phase", p.Phase),
			zap.Error(err))
		return fmt.Errorf("failed to create payment record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	p.ID = id
	return nil
}

// ListByApplication returns the payments recorded for an application.
func (r *PaymentRepository) ListByApplication(applicationID int64) ([]*models.PaymentRecord, error) {
	query := `
		SELECT id, application_id, phase, amount, reference, verified_at
		FROM payment_records
		WHERE application_id = ?
		ORDER BY verified_at ASC, id ASC
	`

	rows, err := r.db.Query(query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.PaymentRecord
	for rows.Next() {
		var p models.PaymentRecord
		if err := rows.Scan(&p.ID, &p.ApplicationID, &p.Phase, &p.Amount, &p.Reference, &p.VerifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment record: %w", err)
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}
