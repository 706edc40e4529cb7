package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/yungbote/outcometrack-backend/internal/handlers"
  "github.com/yungbote/outcometrack-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler       *handlers.AuthHandler
  AuthMiddleware    *middleware.AuthMiddleware
  UserHandler       *handlers.UserHandler
  CatalogHandler    *handlers.CatalogHandler
  AssessmentHandler *handlers.AssessmentHandler
  DashboardHandler  *handlers.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("outcometrack"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  // Catalog reads
  protected.GET("/programs", cfg.CatalogHandler.ListPrograms)
  protected.GET("/programs/:id/outcomes", cfg.CatalogHandler.ListProgramOutcomes)
  protected.GET("/programs/:id/courses", cfg.CatalogHandler.ListCourses)
  protected.GET("/courses/:id/outcomes", cfg.CatalogHandler.ListCourseOutcomes)
  protected.GET("/courses/:id/sections", cfg.CatalogHandler.ListSections)
  protected.GET("/courses/:id/status", cfg.AssessmentHandler.CourseStatus)
  // Assessment entry (ownership enforced in the service layer)
  protected.GET("/sections/:id/outcomes", cfg.AssessmentHandler.GetSectionOutcomes)
  protected.PUT("/sections/:id/outcomes/:cloID", cfg.AssessmentHandler.SaveAssessment)
  protected.POST("/sections/:id/submit", cfg.AssessmentHandler.SubmitSection)
  protected.GET("/sections/:id/status", cfg.AssessmentHandler.SectionStatus)
  // Dashboard
  protected.GET("/dashboard/plo", cfg.DashboardHandler.GetPLODashboard)

// ===============
// || Admin     ||
// ===============
  admin := protected.Group("/")
  admin.Use(cfg.AuthMiddleware.RequireAdmin())
  // Catalog writes
  admin.POST("/programs", cfg.CatalogHandler.CreateProgram)
  admin.POST("/programs/:id/outcomes", cfg.CatalogHandler.CreateProgramOutcome)
  admin.POST("/programs/:id/courses", cfg.CatalogHandler.CreateCourse)
  admin.POST("/courses/:id/outcomes", cfg.CatalogHandler.CreateCourseOutcome)
  admin.POST("/courses/:id/sections", cfg.CatalogHandler.CreateSection)
  admin.POST("/outcomes/:id/mappings", cfg.CatalogHandler.MapOutcome)
  // Review
  admin.POST("/assessments/:id/approve", cfg.AssessmentHandler.Approve)
  admin.POST("/assessments/:id/reject", cfg.AssessmentHandler.Reject)
  admin.POST("/assessments/:id/nci", cfg.AssessmentHandler.MarkNeverComingIn)

  return router
}
