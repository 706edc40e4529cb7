package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/services"
)

type AssessmentHandler struct {
  log               *logger.Logger
  assessmentService services.AssessmentService
}

func NewAssessmentHandler(log *logger.Logger, assessmentService services.AssessmentService) *AssessmentHandler {
  return &AssessmentHandler{
    log:               log.With("handler", "AssessmentHandler"),
    assessmentService: assessmentService,
  }
}

func (h *AssessmentHandler) GetSectionOutcomes(c *gin.Context) {
  sectionID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  outcomes, err := h.assessmentService.GetSectionOutcomes(c.Request.Context(), sectionID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "load_outcomes_failed", err)
    return
  }
  RespondOK(c, gin.H{"outcomes": outcomes})
}

func (h *AssessmentHandler) SaveAssessment(c *gin.Context) {
  sectionID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  cloID, ok := pathUUID(c, "cloID")
  if !ok {
    return
  }
  var input services.SaveAssessmentInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  row, err := h.assessmentService.SaveAssessment(c.Request.Context(), sectionID, cloID, input)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "save_assessment_failed", err)
    return
  }
  RespondOK(c, gin.H{"assessment": row})
}

func (h *AssessmentHandler) SubmitSection(c *gin.Context) {
  sectionID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  if err := h.assessmentService.SubmitSection(c.Request.Context(), sectionID); err != nil {
    RespondError(c, http.StatusBadRequest, "submit_section_failed", err)
    return
  }
  RespondOK(c, gin.H{"submitted": true})
}

type reviewRequest struct {
  Note string `json:"note"`
}

func (h *AssessmentHandler) Approve(c *gin.Context) {
  assessmentID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  var req reviewRequest
  _ = c.ShouldBindJSON(&req)
  row, err := h.assessmentService.Approve(c.Request.Context(), assessmentID, req.Note)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "approve_failed", err)
    return
  }
  RespondOK(c, gin.H{"assessment": row})
}

func (h *AssessmentHandler) Reject(c *gin.Context) {
  assessmentID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  var req reviewRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  row, err := h.assessmentService.Reject(c.Request.Context(), assessmentID, req.Note)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "reject_failed", err)
    return
  }
  RespondOK(c, gin.H{"assessment": row})
}

func (h *AssessmentHandler) MarkNeverComingIn(c *gin.Context) {
  assessmentID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  row, err := h.assessmentService.MarkNeverComingIn(c.Request.Context(), assessmentID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "nci_failed", err)
    return
  }
  RespondOK(c, gin.H{"assessment": row})
}

func (h *AssessmentHandler) SectionStatus(c *gin.Context) {
  sectionID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  status, err := h.assessmentService.SectionStatus(c.Request.Context(), sectionID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "section_status_failed", err)
    return
  }
  RespondOK(c, gin.H{"status": status})
}

func (h *AssessmentHandler) CourseStatus(c *gin.Context) {
  courseID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  status, err := h.assessmentService.CourseStatus(c.Request.Context(), courseID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "course_status_failed", err)
    return
  }
  RespondOK(c, gin.H{"status": status})
}
