package worker

import (
	"testing"
	"time"

	domain "github.com/panuwat/gacp-certification/internal/domain/workflow"
	"github.com/panuwat/gacp-certification/internal/models"
	"github.com/panuwat/gacp-certification/internal/repository"
	"github.com/panuwat/gacp-certification/internal/workflow"
	"github.com/panuwat/gacp-certification/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWorkerTestEnv(t *testing.T) (*repository.ApplicationRepository, *workflow.Engine) {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.Open(database.Config{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.NewMigrator(db, logger).Run("../../migrations"))

	appRepo := repository.NewApplicationRepository(db.DB, logger)
	docRepo := repository.NewDocumentRepository(db.DB, logger)
	historyRepo := repository.NewHistoryRepository(db.DB, logger)
	paymentRepo := repository.NewPaymentRepository(db.DB, logger)
	engine := workflow.NewEngine(db, appRepo, docRepo, historyRepo, paymentRepo, nil, logger)
	return appRepo, engine
}

func TestExpirySweeper_SweepExpiresOverdue(t *testing.T) {
	appRepo, engine := newWorkerTestEnv(t)

	past := time.Now().AddDate(0, 0, -2).UTC()
	overdue := &models.CertificationApplication{
		ApplicationNumber: "GACP-SWEEP-1",
		FarmerID:          "1101702071712",
		FarmName:          "Overdue Farm",
		Status:            domain.StateUnderReview.String(),
		ExpiresAt:         &past,
	}
	require.NoError(t, appRepo.Create(nil, overdue))

	future := time.Now().AddDate(0, 0, 10).UTC()
	fresh := &models.CertificationApplication{
		ApplicationNumber: "GACP-SWEEP-2",
		FarmerID:          "1101702071712",
		FarmName:          "Fresh Farm",
		Status:            domain.StateUnderReview.String(),
		ExpiresAt:         &future,
	}
	require.NoError(t, appRepo.Create(nil, fresh))

	sweeper := NewExpirySweeper(ExpirySweeperConfig{Interval: time.Hour, BatchSize: 10}, appRepo, engine, nil, zap.NewNop())
	sweeper.sweep()

	got, err := appRepo.GetByID(overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateExpired.String(), got.Status)
	assert.Nil(t, got.ExpiresAt)

	got, err = appRepo.GetByID(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateUnderReview.String(), got.Status)
}

func TestExpirySweeper_SkipsIneligibleWithoutError(t *testing.T) {
	appRepo, engine := newWorkerTestEnv(t)

	// approved has no expiry edge, so a stale window must be left alone.
	past := time.Now().AddDate(0, 0, -1).UTC()
	app := &models.CertificationApplication{
		ApplicationNumber: "GACP-SWEEP-3",
		FarmerID:          "1101702071712",
		FarmName:          "Approved Farm",
		Status:            domain.StateApproved.String(),
		ExpiresAt:         &past,
	}
	require.NoError(t, appRepo.Create(nil, app))

	sweeper := NewExpirySweeper(ExpirySweeperConfig{Interval: time.Hour, BatchSize: 10}, appRepo, engine, nil, zap.NewNop())
	sweeper.sweep()

	got, err := appRepo.GetByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateApproved.String(), got.Status)
}

func TestReviewIntake_MovesSubmittedIntoReview(t *testing.T) {
	appRepo, engine := newWorkerTestEnv(t)

	expires := time.Now().AddDate(0, 0, 7).UTC()
	app := &models.CertificationApplication{
		ApplicationNumber: "GACP-INTAKE-1",
		FarmerID:          "1101702071712",
		FarmName:          "Queue Farm",
		Status:            domain.StateSubmitted.String(),
		ExpiresAt:         &expires,
	}
	require.NoError(t, appRepo.Create(nil, app))

	intake := NewReviewIntake(ReviewIntakeConfig{Interval: time.Hour, BatchSize: 10}, appRepo, engine, nil, zap.NewNop())
	intake.intake()

	got, err := appRepo.GetByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateUnderReview.String(), got.Status)

	// The review window replaces the submission window.
	require.NotNil(t, got.ExpiresAt)
	want := time.Now().AddDate(0, 0, domain.StateUnderReview.Metadata().TimeoutDays)
	assert.WithinDuration(t, want, *got.ExpiresAt, time.Minute)
}
