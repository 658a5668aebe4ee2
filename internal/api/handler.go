package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	domain "github.com/panuwat/gacp-certification/internal/domain/workflow"
	"github.com/panuwat/gacp-certification/internal/document"
	"github.com/panuwat/gacp-certification/internal/export"
	"github.com/panuwat/gacp-certification/internal/models"
	"github.com/panuwat/gacp-certification/internal/repository"
	"github.com/panuwat/gacp-certification/internal/workflow"
	"github.com/panuwat/gacp-certification/pkg/utils"
	"go.uber.org/zap"
)

// Handler exposes the certification workflow over HTTP.
type Handler struct {
	engine      *workflow.Engine
	appRepo     *repository.ApplicationRepository
	docRepo     *repository.DocumentRepository
	historyRepo *repository.HistoryRepository
	paymentRepo *repository.PaymentRepository
	verifier    *document.Verifier
	exporter    *export.RegistryExporter
	logger      *zap.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(
	engine *workflow.Engine,
	appRepo *repository.ApplicationRepository,
	docRepo *repository.DocumentRepository,
	historyRepo *repository.HistoryRepository,
	paymentRepo *repository.PaymentRepository,
	verifier *document.Verifier,
	exporter *export.RegistryExporter,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		engine:      engine,
		appRepo:     appRepo,
		docRepo:     docRepo,
		historyRepo: historyRepo,
		paymentRepo: paymentRepo,
		verifier:    verifier,
		exporter:    exporter,
		logger:      logger,
	}
}

type createApplicationRequest struct {
	FarmerID string `json:"farmer_id" binding:"required"`
	FarmName string `json:"farm_name" binding:"required"`
	Province string `json:"province"`
}

// CreateApplication creates a new draft application.
func (h *Handler) CreateApplication(c *gin.Context) {
	var req createApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateThaiCitizenID(req.FarmerID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.engine.CreateDraft(req.FarmerID, utils.SanitizeString(req.FarmName), utils.SanitizeString(req.Province))
	if err != nil {
		h.logger.Error("Failed to create application", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create application"})
		return
	}

	c.JSON(http.StatusCreated, app)
}

// GetApplication returns an application with its documents, payments and
// audit trail.
func (h *Handler) GetApplication(c *gin.Context) {
	id, ok := h.applicationID(c)
	if !ok {
		return
	}

	app, err := h.appRepo.GetByID(id)
	if err != nil {
		h.logger.Error("Failed to load application", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load application"})
		return
	}
	if app == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}

	docs, err := h.docRepo.ListByApplication(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load documents"})
		return
	}
	history, err := h.historyRepo.ListByApplication(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	payments, err := h.paymentRepo.ListByApplication(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": app,
		"documents":   docs,
		"history":     history,
		"payments":    payments,
	})
}

// NextStates returns the states reachable from the application's current
// status.
func (h *Handler) NextStates(c *gin.Context) {
	id, ok := h.applicationID(c)
	if !ok {
		return
	}

	states, err := h.engine.NextStates(id)
	if err != nil {
		if errors.Is(err, workflow.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"next_states": states})
}

type attachDocumentRequest struct {
	Type     string `json:"type" binding:"required"`
	FileName string `json:"file_name" binding:"required"`
	FilePath string `json:"file_path"`
}

// AttachDocument registers an uploaded document against an application.
// When a file path is supplied the file is verified before the record is
// flagged as verified.
func (h *Handler) AttachDocument(c *gin.Context) {
	id, ok := h.applicationID(c)
	if !ok {
		return
	}

	var req attachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := &models.ApplicationDocument{
		Type:     req.Type,
		FileName: req.FileName,
		FilePath: req.FilePath,
	}
	if req.FilePath != "" {
		if err := h.verifier.Verify(req.FilePath); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		doc.Verified = true
	}

	if err := h.engine.AttachDocument(id, doc); err != nil {
		switch {
		case errors.Is(err, workflow.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		case errors.Is(err, workflow.ErrNotEditable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to attach document", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach document"})
		}
		return
	}

	c.JSON(http.StatusCreated, doc)
}

type transitionRequest struct {
	TargetStatus     string `json:"target_status" binding:"required"`
	Role             string `json:"role" binding:"required"`
	PaymentReference string `json:"payment_reference"`
	Note             string `json:"note"`
}

// Transition validates and executes a status change. Domain refusals map to
// 4xx responses carrying the stable error code.
func (h *Handler) Transition(c *gin.Context) {
	id, ok := h.applicationID(c)
	if !ok {
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.PaymentReference != "" {
		if err := utils.ValidatePaymentReference(req.PaymentReference); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var tc *domain.TransitionContext
	if req.PaymentReference != "" {
		tc = &domain.TransitionContext{PaymentReference: req.PaymentReference}
	}

	app, err := h.engine.Transition(id, domain.State(req.TargetStatus), domain.Role(req.Role), tc, utils.SanitizeString(req.Note))
	if err != nil {
		if errors.Is(err, workflow.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}
		if te, ok := workflow.AsTransitionError(err); ok {
			status := http.StatusBadRequest
			if te.Code == domain.ErrCodeInsufficientPermissions {
				status = http.StatusForbidden
			}
			c.JSON(status, gin.H{"error": string(te.Code)})
			return
		}
		h.logger.Error("Transition failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transition failed"})
		return
	}

	c.JSON(http.StatusOK, app)
}

// ListStates returns the state catalog with per-state metadata.
func (h *Handler) ListStates(c *gin.Context) {
	type stateView struct {
		Name            string `json:"name"`
		Value           string `json:"value"`
		Description     string `json:"description"`
		Owner           string `json:"owner"`
		TimeoutDays     int    `json:"timeout_days,omitempty"`
		CanEdit         bool   `json:"can_edit"`
		Terminal        bool   `json:"terminal"`
		PaymentRequired bool   `json:"payment_required"`
		PaymentAmount   int    `json:"payment_amount,omitempty"`
		PaymentPhase    int    `json:"payment_phase,omitempty"`
	}

	states := make([]stateView, 0, 14)
	for name, s := range domain.AllStates() {
		meta := s.Metadata()
		states = append(states, stateView{
			Name:            name,
			Value:           s.String(),
			Description:     meta.Description,
			Owner:           meta.Owner.String(),
			TimeoutDays:     meta.TimeoutDays,
			CanEdit:         meta.CanEdit,
			Terminal:        s.IsTerminal(),
			PaymentRequired: meta.PaymentRequired,
			PaymentAmount:   meta.PaymentAmount,
			PaymentPhase:    meta.PaymentPhase,
		})
	}

	c.JSON(http.StatusOK, gin.H{"states": states})
}

// ExportRegistry writes the registry spreadsheet and serves it as a
// download.
func (h *Handler) ExportRegistry(c *gin.Context) {
	apps, err := h.appRepo.ListAll()
	if err != nil {
		h.logger.Error("Failed to list applications for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load applications"})
		return
	}

	path, err := h.exporter.Export(apps)
	if err != nil {
		h.logger.Error("Registry export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.FileAttachment(path, "applications.xlsx")
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) applicationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return 0, false
	}
	return id, true
}
