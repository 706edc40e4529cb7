package services

import (
  "context"
  "testing"
  "github.com/stretchr/testify/require"
  "github.com/yungbote/outcometrack-backend/internal/requestdata"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

func TestRegisterUserNormalizesAndHashes(t *testing.T) {
  env := newTestEnv(t)
  user := &types.User{
    Email:     "  New.Prof@Uni.EDU ",
    Password:  "hunter22",
    FirstName: " Alan ",
    LastName:  " Turing ",
    Role:      types.RoleInstructor,
  }
  require.NoError(t, env.Auth.RegisterUser(context.Background(), user))
  require.Equal(t, "new.prof@uni.edu", user.Email)
  require.NotEqual(t, "hunter22", user.Password)

  // Duplicate registration is refused.
  dup := &types.User{Email: "new.prof@uni.edu", Password: "hunter22", FirstName: "a", LastName: "b"}
  require.Error(t, env.Auth.RegisterUser(context.Background(), dup))
}

func TestLoginRefreshLogoutRoundTrip(t *testing.T) {
  env := newTestEnv(t)
  user := &types.User{
    Email: "login@uni.edu", Password: "hunter22",
    FirstName: "ada", LastName: "l", Role: types.RoleInstructor,
  }
  require.NoError(t, env.Auth.RegisterUser(context.Background(), user))

  _, _, err := env.Auth.LoginUser(context.Background(), "login@uni.edu", "wrong")
  require.Error(t, err)

  access, refresh, err := env.Auth.LoginUser(context.Background(), "login@uni.edu", "hunter22")
  require.NoError(t, err)
  require.NotEmpty(t, access)
  require.NotEmpty(t, refresh)

  // The access token reconstructs the caller's identity and role.
  ctx, err := env.Auth.SetContextFromToken(context.Background(), access)
  require.NoError(t, err)
  rd := requestdata.GetRequestData(ctx)
  require.NotNil(t, rd)
  require.Equal(t, user.ID, rd.UserID)
  require.Equal(t, types.RoleInstructor, rd.Role)
  require.Equal(t, refresh, rd.RefreshToken)

  // Refresh rotates both tokens; the old refresh token dies.
  newAccess, newRefresh, err := env.Auth.RefreshUser(ctx)
  require.NoError(t, err)
  require.NotEqual(t, access, newAccess)
  require.NotEqual(t, refresh, newRefresh)

  staleCtx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
    RefreshToken: refresh,
  })
  _, _, err = env.Auth.RefreshUser(staleCtx)
  require.Error(t, err)

  // Logout deletes the current token row.
  logoutCtx, err := env.Auth.SetContextFromToken(context.Background(), newAccess)
  require.NoError(t, err)
  require.NoError(t, env.Auth.LogoutUser(logoutCtx))

  var count int64
  env.DB.Model(&types.UserToken{}).Where("user_id = ?", user.ID).Count(&count)
  require.EqualValues(t, 0, count)
}

func TestSetContextFromTokenRejectsForgedToken(t *testing.T) {
  env := newTestEnv(t)
  _, err := env.Auth.SetContextFromToken(context.Background(), "not-a-jwt")
  require.Error(t, err)
}
