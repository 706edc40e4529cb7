package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/outcometrack-backend/internal/assessment"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/services"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

type CatalogHandler struct {
  log            *logger.Logger
  catalogService services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalogService services.CatalogService) *CatalogHandler {
  return &CatalogHandler{
    log:            log.With("handler", "CatalogHandler"),
    catalogService: catalogService,
  }
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param(name))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return uuid.Nil, false
  }
  return id, true
}

func (h *CatalogHandler) ListPrograms(c *gin.Context) {
  programs, err := h.catalogService.ListPrograms(c.Request.Context())
  if err != nil {
    h.log.Error("ListPrograms failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "load_programs_failed", err)
    return
  }
  RespondOK(c, gin.H{"programs": programs})
}

type createProgramRequest struct {
  Code                  string                 `json:"code"`
  Name                  string                 `json:"name"`
  Description           string                 `json:"description"`
  AssessmentDisplayMode assessment.DisplayMode `json:"assessment_display_mode"`
}

func (h *CatalogHandler) CreateProgram(c *gin.Context) {
  var req createProgramRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  program := &types.Program{
    Code:                  req.Code,
    Name:                  req.Name,
    Description:           req.Description,
    AssessmentDisplayMode: req.AssessmentDisplayMode,
  }
  created, err := h.catalogService.CreateProgram(c.Request.Context(), program)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_program_failed", err)
    return
  }
  RespondOK(c, gin.H{"program": created})
}

func (h *CatalogHandler) ListProgramOutcomes(c *gin.Context) {
  programID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  outcomes, err := h.catalogService.ListProgramOutcomes(c.Request.Context(), programID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "load_outcomes_failed", err)
    return
  }
  RespondOK(c, gin.H{"outcomes": outcomes})
}

type createOutcomeRequest struct {
  Position    int    `json:"position"`
  Title       string `json:"title"`
  Description string `json:"description"`
}

func (h *CatalogHandler) CreateProgramOutcome(c *gin.Context) {
  programID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  var req createOutcomeRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  outcome := &types.ProgramOutcome{
    ProgramID:   programID,
    Position:    req.Position,
    Title:       req.Title,
    Description: req.Description,
  }
  created, err := h.catalogService.CreateProgramOutcome(c.Request.Context(), outcome)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_outcome_failed", err)
    return
  }
  RespondOK(c, gin.H{"outcome": created})
}

func (h *CatalogHandler) ListCourses(c *gin.Context) {
  programID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  courses, err := h.catalogService.ListCourses(c.Request.Context(), programID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "load_courses_failed", err)
    return
  }
  RespondOK(c, gin.H{"courses": courses})
}

type createCourseRequest struct {
  Code  string `json:"code"`
  Title string `json:"title"`
}

func (h *CatalogHandler) CreateCourse(c *gin.Context) {
  programID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  var req createCourseRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  course := &types.Course{
    ProgramID: programID,
    Code:      req.Code,
    Title:     req.Title,
  }
  created, err := h.catalogService.CreateCourse(c.Request.Context(), course)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_course_failed", err)
    return
  }
  RespondOK(c, gin.H{"course": created})
}

func (h *CatalogHandler) ListCourseOutcomes(c *gin.Context) {
  courseID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  outcomes, err := h.catalogService.ListCourseOutcomes(c.Request.Context(), courseID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "load_outcomes_failed", err)
    return
  }
  RespondOK(c, gin.H{"outcomes": outcomes})
}

func (h *CatalogHandler) CreateCourseOutcome(c *gin.Context) {
  courseID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  var req createOutcomeRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  outcome := &types.CourseOutcome{
    CourseID:    courseID,
    Position:    req.Position,
    Title:       req.Title,
    Description: req.Description,
  }
  created, err := h.catalogService.CreateCourseOutcome(c.Request.Context(), outcome)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_outcome_failed", err)
    return
  }
  RespondOK(c, gin.H{"outcome": created})
}

type mapOutcomeRequest struct {
  ProgramOutcomeIDs []uuid.UUID `json:"program_outcome_ids"`
}

func (h *CatalogHandler) MapOutcome(c *gin.Context) {
  cloID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  var req mapOutcomeRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  mappings, err := h.catalogService.MapOutcome(c.Request.Context(), cloID, req.ProgramOutcomeIDs)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "map_outcome_failed", err)
    return
  }
  RespondOK(c, gin.H{"mappings": mappings})
}

func (h *CatalogHandler) ListSections(c *gin.Context) {
  courseID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  sections, err := h.catalogService.ListSections(c.Request.Context(), courseID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "load_sections_failed", err)
    return
  }
  RespondOK(c, gin.H{"sections": sections})
}

type createSectionRequest struct {
  InstructorID uuid.UUID `json:"instructor_id"`
  Term         string    `json:"term"`
  Number       string    `json:"number"`
}

func (h *CatalogHandler) CreateSection(c *gin.Context) {
  courseID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  var req createSectionRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", err)
    return
  }
  section := &types.Section{
    CourseID:     courseID,
    InstructorID: req.InstructorID,
    Term:         req.Term,
    Number:       req.Number,
  }
  created, err := h.catalogService.CreateSection(c.Request.Context(), section)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_section_failed", err)
    return
  }
  RespondOK(c, gin.H{"section": created})
}
