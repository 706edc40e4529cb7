package handlers

import (
  "context"
  "encoding/json"
  "fmt"
  "net/http"
  "net/http/httptest"
  "testing"
  "github.com/gin-gonic/gin"
  "github.com/stretchr/testify/require"
  "github.com/yungbote/outcometrack-backend/internal/assessment"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/services"
)

type stubDashboardService struct {
  payload *services.PLODashboard
  err     error
}

func (s *stubDashboardService) BuildPLODashboard(ctx context.Context) (*services.PLODashboard, error) {
  return s.payload, s.err
}

func dashboardRouter(svc services.DashboardService) *gin.Engine {
  gin.SetMode(gin.TestMode)
  router := gin.New()
  h := NewDashboardHandler(logger.NewNop(), svc)
  router.GET("/api/dashboard/plo", h.GetPLODashboard)
  return router
}

func TestGetPLODashboardEnvelope(t *testing.T) {
  stub := &stubDashboardService{
    payload: &services.PLODashboard{
      Programs: []assessment.ProgramNode{{Name: "Computer Science"}},
      Summary:  services.DashboardSummary{TotalPrograms: 1},
    },
  }
  router := dashboardRouter(stub)

  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/api/dashboard/plo", nil)
  router.ServeHTTP(w, req)

  require.Equal(t, http.StatusOK, w.Code)
  var body struct {
    Success bool `json:"success"`
    Data    struct {
      Programs []json.RawMessage          `json:"programs"`
      Summary  services.DashboardSummary  `json:"summary"`
    } `json:"data"`
  }
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
  require.True(t, body.Success)
  require.Len(t, body.Data.Programs, 1)
  require.Equal(t, 1, body.Data.Summary.TotalPrograms)
}

func TestGetPLODashboardError(t *testing.T) {
  stub := &stubDashboardService{err: fmt.Errorf("redis exploded")}
  router := dashboardRouter(stub)

  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/api/dashboard/plo", nil)
  router.ServeHTTP(w, req)

  require.Equal(t, http.StatusInternalServerError, w.Code)
  var envelope ErrorEnvelope
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
  require.Equal(t, "dashboard_failed", envelope.Error.Code)
}
