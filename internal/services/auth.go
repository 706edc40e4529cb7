package services

import (
  "context"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/repos"
  "github.com/yungbote/outcometrack-backend/internal/requestdata"
  "github.com/yungbote/outcometrack-backend/internal/types"
  "github.com/yungbote/outcometrack-backend/internal/utils"
)

type JWTClaims struct {
  Role types.Role `json:"role"`
  jwt.RegisteredClaims
}

type AuthService interface {
  RegisterUser(ctx context.Context, user *types.User) error
  LoginUser(ctx context.Context, email, password string) (string, string, error)
  RefreshUser(ctx context.Context) (string, string, error)
  LogoutUser(ctx context.Context) error
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  userTokenRepo repos.UserTokenRepo
  jwtSecretKey  string
  accessTTL     time.Duration
  refreshTTL    time.Duration
}

func NewAuthService(
  db *gorm.DB,
  baseLog *logger.Logger,
  userRepo repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
  refreshTTL time.Duration,
) AuthService {
  serviceLog := baseLog.With("service", "AuthService")
  return &authService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    userTokenRepo: userTokenRepo,
    jwtSecretKey:  jwtSecretKey,
    accessTTL:     accessTTL,
    refreshTTL:    refreshTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
  utils.NormalizeUserFields(user)
  if vErr := utils.ValidateRegistration(user); vErr != nil {
    return vErr
  }
  exists, eErr := as.userRepo.EmailExists(ctx, nil, user.Email)
  if eErr != nil {
    return fmt.Errorf("check email: %w", eErr)
  }
  if exists {
    return fmt.Errorf("email already registered")
  }
  if hErr := utils.HashPassword(as.log, user); hErr != nil {
    return hErr
  }
  if user.Role == "" {
    user.Role = types.RoleInstructor
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user.ID = uuid.New()
    if _, cErr := as.userRepo.Create(ctx, tx, []*types.User{user}); cErr != nil {
      return fmt.Errorf("create user: %w", cErr)
    }
    return nil
  })
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
  probe := &types.User{Email: email}
  utils.NormalizeUserFields(probe)

  users, usErr := as.userRepo.GetByEmails(ctx, nil, []string{probe.Email})
  if usErr != nil {
    return "", "", fmt.Errorf("load user by email: %w", usErr)
  }
  if len(users) == 0 {
    return "", "", fmt.Errorf("invalid email or password")
  }
  user := users[0]
  if cErr := utils.CheckPassword(user.Password, password); cErr != nil {
    return "", "", fmt.Errorf("invalid email or password")
  }

  var accessToken string
  var refreshToken string
  if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
    if ftErr != nil {
      return fmt.Errorf("check user tokens: %w", ftErr)
    }
    expired := make([]*types.UserToken, 0, len(foundTokens))
    for _, tok := range foundTokens {
      if tok != nil && tok.ExpiresAt.Before(time.Now()) {
        expired = append(expired, tok)
      }
    }
    if dtErr := as.userTokenRepo.DeleteByTokens(ctx, tx, expired); dtErr != nil {
      return fmt.Errorf("delete expired tokens: %w", dtErr)
    }
    tok, genErr := as.generateAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("generate access token: %w", genErr)
    }
    accessToken = tok
    refreshToken = uuid.New().String()
    userToken := types.UserToken{
      ID:           uuid.New(),
      UserID:       user.ID,
      AccessToken:  accessToken,
      RefreshToken: refreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
      as.log.Warn("Create user token failed", "error", ctErr)
      return fmt.Errorf("create user token: %w", ctErr)
    }
    return nil
  }); err != nil {
    return "", "", err
  }
  return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return "", "", fmt.Errorf("no request data found in context")
  }
  if rd.RefreshToken == "" {
    return "", "", fmt.Errorf("refresh token not found in request data")
  }

  var accessToken string
  var newRefreshTokenStr string
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
    if ftErr != nil {
      return fmt.Errorf("fetch refresh token: %w", ftErr)
    }
    if len(foundTokens) == 0 || foundTokens[0] == nil {
      return fmt.Errorf("refresh token not recognized")
    }
    existingToken := foundTokens[0]
    const expiryBuffer = 5 * time.Minute
    if existingToken.ExpiresAt.Add(expiryBuffer).Before(time.Now()) {
      if dtErr := as.userTokenRepo.DeleteByTokens(ctx, tx, []*types.UserToken{existingToken}); dtErr != nil {
        return fmt.Errorf("delete expired refresh token: %w", dtErr)
      }
      return fmt.Errorf("refresh token expired")
    }
    users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existingToken.UserID})
    if uErr != nil {
      return fmt.Errorf("load user for refresh: %w", uErr)
    }
    if len(users) == 0 {
      return fmt.Errorf("no user found for refresh token")
    }
    user := users[0]
    tok, genErr := as.generateAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("generate access token: %w", genErr)
    }
    accessToken = tok
    newRefreshTokenStr = uuid.New().String()
    newUserToken := types.UserToken{
      ID:           uuid.New(),
      UserID:       user.ID,
      AccessToken:  tok,
      RefreshToken: newRefreshTokenStr,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newUserToken}); cErr != nil {
      return fmt.Errorf("create user token: %w", cErr)
    }
    if dErr := as.userTokenRepo.DeleteByTokens(ctx, tx, []*types.UserToken{existingToken}); dErr != nil {
      return fmt.Errorf("remove old refresh token: %w", dErr)
    }
    return nil
  })
  if err != nil {
    as.log.Warn("Refresh failed", "error", err)
    return "", "", err
  }
  return accessToken, newRefreshTokenStr, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return fmt.Errorf("no request data found in context")
  }
  if rd.TokenString == "" {
    return fmt.Errorf("token string in request data empty")
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
    if ftErr != nil {
      return fmt.Errorf("find user token: %w", ftErr)
    }
    if tdErr := as.userTokenRepo.DeleteByTokens(ctx, tx, foundTokens); tdErr != nil {
      return fmt.Errorf("delete user token: %w", tdErr)
    }
    return nil
  })
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  claims := JWTClaims{
    Role: user.Role,
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString == "" {
    return ctx, nil
  }
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, fmt.Errorf("parse token: %w", err)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return ctx, fmt.Errorf("invalid or expired token")
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, fmt.Errorf("invalid user id in token: %w", err)
  }
  var refreshTokenStr string
  foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
  if ftErr != nil {
    as.log.Warn("Fetch user token by access token failed", "error", ftErr)
    return ctx, fmt.Errorf("fetch user token: %w", ftErr)
  }
  if len(foundTokens) > 0 && foundTokens[0] != nil {
    refreshTokenStr = foundTokens[0].RefreshToken
  }
  rd := &requestdata.RequestData{
    TokenString:  tokenString,
    RefreshToken: refreshTokenStr,
    UserID:       userID,
    Role:         claims.Role,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}
