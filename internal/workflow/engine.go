package workflow

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	domain "github.com/panuwat/gacp-certification/internal/domain/workflow"
	"github.com/panuwat/gacp-certification/internal/metrics"
	"github.com/panuwat/gacp-certification/internal/models"
	"github.com/panuwat/gacp-certification/internal/repository"
	"github.com/panuwat/gacp-certification/pkg/database"
	"go.uber.org/zap"
)

// Engine orchestrates application status changes. Every persisted status
// mutation goes through Transition, which consults the domain decision
// tables before writing anything.
type Engine struct {
	db          *database.DB
	appRepo     *repository.ApplicationRepository
	docRepo     *repository.DocumentRepository
	historyRepo *repository.HistoryRepository
	paymentRepo *repository.PaymentRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewEngine creates a workflow engine. metrics may be nil.
func NewEngine(
	db *database.DB,
	appRepo *repository.ApplicationRepository,
	docRepo *repository.DocumentRepository,
	historyRepo *repository.HistoryRepository,
	paymentRepo *repository.PaymentRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		db:          db,
		appRepo:     appRepo,
		docRepo:     docRepo,
		historyRepo: historyRepo,
		paymentRepo: paymentRepo,
		metrics:     m,
		logger:      logger,
	}
}

// CreateDraft creates a new application in the draft state with its expiry
// window stamped.
func (e *Engine) CreateDraft(farmerID, farmName, province string) (*models.CertificationApplication, error) {
	app := &models.CertificationApplication{
		ApplicationNumber: fmt.Sprintf("GACP-%s", uuid.NewString()),
		FarmerID:          farmerID,
		FarmName:          farmName,
		Province:          province,
		Status:            domain.StateDraft.String(),
		ExpiresAt:         domain.ExpirationDateFromNow(domain.StateDraft),
	}

	if err := e.appRepo.Create(nil, app); err != nil {
		return nil, err
	}

	e.logger.Info("Created draft application",
		zap.Int64("id", app.ID),
		zap.String("application_number", app.ApplicationNumber),
		zap.String("farmer_id", farmerID))
	return app, nil
}

// AttachDocument registers an uploaded document. Documents may only be
// attached while the application is editable (draft, revision_required).
func (e *Engine) AttachDocument(applicationID int64, doc *models.ApplicationDocument) error {
	app, err := e.appRepo.GetByID(applicationID)
	if err != nil {
		return err
	}
	if app == nil {
		return ErrApplicationNotFound
	}

	meta := domain.State(app.Status).Metadata()
	if meta == nil || !meta.CanEdit {
		return ErrNotEditable
	}

	doc.ApplicationID = applicationID
	if err := e.docRepo.Create(nil, doc); err != nil {
		return err
	}

	e.logger.Info("Attached document",
		zap.Int64("application_id", applicationID),
		zap.String("type", doc.Type),
		zap.Bool("verified", doc.Verified))
	return nil
}

// Transition validates and executes a status change. On refusal the
// returned error is a *TransitionError carrying the domain code; nothing is
// persisted. On success the updated application is returned.
func (e *Engine) Transition(applicationID int64, target domain.State, role domain.Role, tc *domain.TransitionContext, note string) (*models.CertificationApplication, error) {
	app, err := e.appRepo.GetByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	docs, err := e.docRepo.ListByApplication(applicationID)
	if err != nil {
		return nil, err
	}

	snap := domain.Snapshot{Status: domain.State(app.Status)}
	for _, d := range docs {
		snap.Documents = append(snap.Documents, domain.Document{Type: d.Type})
	}

	verdict := domain.ValidateTransition(snap, target, role, tc)
	if !verdict.Valid {
		e.metrics.ObserveTransition(app.Status, target.String(), string(verdict.Error))
		e.logger.Warn("Transition refused",
			zap.Int64("application_id", applicationID),
			zap.String("from", app.Status),
			zap.String("to", target.String()),
			zap.String("role", role.String()),
			zap.String("code", string(verdict.Error)))
		return nil, &TransitionError{Code: verdict.Error, From: snap.Status, To: target}
	}

	expiresAt := domain.ExpirationDateFromNow(target)

	err = e.db.WithTransaction(func(tx *sql.Tx) error {
		if err := e.appRepo.UpdateStatus(tx, applicationID, target.String(), expiresAt); err != nil {
			return err
		}

		history := &models.StatusHistory{
			ApplicationID:  applicationID,
			ActorRole:      role.String(),
			PreviousStatus: app.Status,
			NewStatus:      target.String(),
			Note:           note,
		}
		if err := e.historyRepo.Create(tx, history); err != nil {
			return err
		}

		// A payment-verification edge records the fee that was just paid;
		// the pending state's metadata carries phase and amount.
		if target == domain.StatePaymentVerified || target == domain.StatePhase2PaymentVerified {
			pending := snap.Status.Metadata()
			payment := &models.PaymentRecord{
				ApplicationID: applicationID,
				Phase:         pending.PaymentPhase,
				Amount:        pending.PaymentAmount,
				Reference:     tc.PaymentReference,
			}
			if err := e.paymentRepo.Create(tx, payment); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.ObserveTransition(app.Status, target.String(), "ok")
	e.logger.Info("Application transitioned",
		zap.Int64("application_id", applicationID),
		zap.String("from", app.Status),
		zap.String("to", target.String()),
		zap.String("role", role.String()))

	app.Status = target.String()
	app.ExpiresAt = expiresAt
	return app, nil
}

// NextStates returns the states reachable from the application's current
// status.
func (e *Engine) NextStates(applicationID int64) ([]domain.State, error) {
	app, err := e.appRepo.GetByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}
	return domain.NextStates(domain.State(app.Status)), nil
}
