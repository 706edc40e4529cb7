package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/utils"
  "github.com/yungbote/outcometrack-backend/internal/db"
  "github.com/yungbote/outcometrack-backend/internal/clients/redis"
  "github.com/yungbote/outcometrack-backend/internal/observability"
  "github.com/yungbote/outcometrack-backend/internal/repos"
  "github.com/yungbote/outcometrack-backend/internal/services"
  "github.com/yungbote/outcometrack-backend/internal/handlers"
  "github.com/yungbote/outcometrack-backend/internal/middleware"
  "github.com/yungbote/outcometrack-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  port := utils.GetEnv("PORT", "8080", log)

  // Tracing
  shutdownTracing := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "outcometrack",
    Environment: utils.GetEnv("APP_ENV", "development", log),
    Version:     utils.GetEnv("APP_VERSION", "dev", log),
  })
  if shutdownTracing != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      if err := shutdownTracing(ctx); err != nil {
        log.Warn("Tracing shutdown failed", "error", err)
      }
    }()
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  programRepo := repos.NewProgramRepo(thePG, log)
  ploRepo := repos.NewProgramOutcomeRepo(thePG, log)
  courseRepo := repos.NewCourseRepo(thePG, log)
  cloRepo := repos.NewCourseOutcomeRepo(thePG, log)
  mappingRepo := repos.NewOutcomeMappingRepo(thePG, log)
  sectionRepo := repos.NewSectionRepo(thePG, log)
  assessmentRepo := repos.NewSectionAssessmentRepo(thePG, log)

  // Redis cache (dashboard). The API works without it.
  dashboardCache, err := redis.NewCache(log)
  if err != nil {
    log.Warn("Redis cache unavailable, dashboard served uncached", "error", err)
    dashboardCache = nil
  } else {
    defer dashboardCache.Close()
  }

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(
    thePG, log, userRepo, userTokenRepo,
    jwtSecretKey,
    time.Duration(accessTokenTTL)*time.Second,
    time.Duration(refreshTokenTTL)*time.Second,
  )
  userService := services.NewUserService(thePG, log, userRepo)
  catalogService := services.NewCatalogService(
    thePG, log, programRepo, ploRepo, courseRepo, cloRepo, mappingRepo, sectionRepo, userRepo,
  )
  assessmentService := services.NewAssessmentService(
    thePG, log, sectionRepo, courseRepo, cloRepo, assessmentRepo, dashboardCache,
  )
  dashboardService := services.NewDashboardService(
    thePG, log, programRepo, ploRepo, courseRepo, cloRepo, mappingRepo, sectionRepo, assessmentRepo, dashboardCache,
  )

  // Handlers
  log.Info("Setting up Handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  catalogHandler := handlers.NewCatalogHandler(log, catalogService)
  assessmentHandler := handlers.NewAssessmentHandler(log, assessmentService)
  dashboardHandler := handlers.NewDashboardHandler(log, dashboardService)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:       authHandler,
    AuthMiddleware:    authMiddleware,
    UserHandler:       userHandler,
    CatalogHandler:    catalogHandler,
    AssessmentHandler: assessmentHandler,
    DashboardHandler:  dashboardHandler,
  })

  log.Info("Starting server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server exited", "error", err)
    os.Exit(1)
  }
}
