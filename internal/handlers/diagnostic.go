package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/optimusmind/diagnostico-backend/internal/diagnostic"
	"github.com/optimusmind/diagnostico-backend/internal/platform/apierr"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
	"github.com/optimusmind/diagnostico-backend/internal/services"
)

type DiagnosticHandler struct {
	log           *logger.Logger
	diagnosticSvc services.DiagnosticService
}

func NewDiagnosticHandler(log *logger.Logger, dsvc services.DiagnosticService) *DiagnosticHandler {
	return &DiagnosticHandler{
		log:           log.With("handler", "DiagnosticHandler"),
		diagnosticSvc: dsvc,
	}
}

type createDiagnosticRequest struct {
	Name                   string   `json:"name"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	ClarityDirection       *float64 `json:"clarity_direction"`
	EmotionalMastery       *float64 `json:"emotional_mastery"`
	EnergyFocus            *float64 `json:"energy_focus"`
	SelfLeadership         *float64 `json:"self_leadership"`
	InfluenceCommunication *float64 `json:"influence_communication"`
	ChangeAdaptability     *float64 `json:"change_adaptability"`
}

// POST /api/diagnostics
func (h *DiagnosticHandler) Create(c *gin.Context) {
	var req createDiagnosticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	res, err := h.diagnosticSvc.Create(c.Request.Context(), diagnostic.SubmissionInput{
		Name:                   req.Name,
		Email:                  req.Email,
		Phone:                  req.Phone,
		ClarityDirection:       req.ClarityDirection,
		EmotionalMastery:       req.EmotionalMastery,
		EnergyFocus:            req.EnergyFocus,
		SelfLeadership:         req.SelfLeadership,
		InfluenceCommunication: req.InfluenceCommunication,
		ChangeAdaptability:     req.ChangeAdaptability,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, res)
}

// GET /api/diagnostics/results?submission_id=...&email=...
func (h *DiagnosticHandler) Results(c *gin.Context) {
	view, err := h.diagnosticSvc.Results(c.Request.Context(), services.ResultsQuery{
		SubmissionID: c.Query("submission_id"),
		Email:        c.Query("email"),
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

type attachNarrativeRequest struct {
	Narrative string `json:"narrative"`
}

// POST /api/diagnostics/:submission_id/narrative
func (h *DiagnosticHandler) AttachNarrative(c *gin.Context) {
	var req attachNarrativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation(fmt.Errorf("invalid request body: %w", err)))
		return
	}
	if err := h.diagnosticSvc.AttachNarrative(c.Request.Context(), c.Param("submission_id"), req.Narrative); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
