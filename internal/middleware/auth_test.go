package middleware

import (
  "context"
  "fmt"
  "net/http"
  "net/http/httptest"
  "testing"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/stretchr/testify/require"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/requestdata"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

// stubAuthService recognizes exactly one token and maps it to a fixed
// user/role pair.
type stubAuthService struct {
  token  string
  userID uuid.UUID
  role   types.Role
}

func (s *stubAuthService) RegisterUser(ctx context.Context, user *types.User) error { return nil }
func (s *stubAuthService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
  return "", "", nil
}
func (s *stubAuthService) RefreshUser(ctx context.Context) (string, string, error) { return "", "", nil }
func (s *stubAuthService) LogoutUser(ctx context.Context) error                    { return nil }
func (s *stubAuthService) GetAccessTTL() time.Duration                             { return time.Hour }

func (s *stubAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString != s.token {
    return ctx, fmt.Errorf("invalid or expired token")
  }
  return requestdata.WithRequestData(ctx, &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      s.userID,
    Role:        s.role,
  }), nil
}

func authTestRouter(role types.Role) (*gin.Engine, string) {
  gin.SetMode(gin.TestMode)
  token := "token-" + string(role)
  stub := &stubAuthService{token: token, userID: uuid.New(), role: role}
  am := NewAuthMiddleware(logger.NewNop(), stub)

  router := gin.New()
  protected := router.Group("/", am.RequireAuth())
  protected.GET("/me", func(c *gin.Context) {
    rd := requestdata.GetRequestData(c.Request.Context())
    c.JSON(http.StatusOK, gin.H{"user_id": rd.UserID})
  })
  admin := protected.Group("/", am.RequireAdmin())
  admin.POST("/programs", func(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"ok": true})
  })
  return router, token
}

func doRequest(router *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
  w := httptest.NewRecorder()
  req := httptest.NewRequest(method, path, nil)
  if bearer != "" {
    req.Header.Set("Authorization", "Bearer "+bearer)
  }
  router.ServeHTTP(w, req)
  return w
}

func TestRequireAuthMissingToken(t *testing.T) {
  router, _ := authTestRouter(types.RoleInstructor)
  w := doRequest(router, http.MethodGet, "/me", "")
  require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthBadToken(t *testing.T) {
  router, _ := authTestRouter(types.RoleInstructor)
  w := doRequest(router, http.MethodGet, "/me", "garbage")
  require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
  router, token := authTestRouter(types.RoleInstructor)
  w := doRequest(router, http.MethodGet, "/me", token)
  require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthQueryToken(t *testing.T) {
  router, token := authTestRouter(types.RoleInstructor)
  w := doRequest(router, http.MethodGet, "/me?token="+token, "")
  require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminGatesInstructors(t *testing.T) {
  router, token := authTestRouter(types.RoleInstructor)
  w := doRequest(router, http.MethodPost, "/programs", token)
  require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
  for _, role := range []types.Role{types.RoleProgramAdmin, types.RoleInstitutionAdmin} {
    router, token := authTestRouter(role)
    w := doRequest(router, http.MethodPost, "/programs", token)
    require.Equal(t, http.StatusOK, w.Code)
  }
}
