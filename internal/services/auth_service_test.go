// internal/services/auth_service_test.go
package services

import (
	"github.com/packscan/packscan-backend/internal/config"
	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/utils"
)

func (suite *ServiceTestSuite) authService() *AuthService {
	return NewAuthService(suite.db, config.JWTConfig{AccessTokenTTL: 1, RefreshTokenTTL: 24})
}

func (suite *ServiceTestSuite) TestRegisterCreatesInspector() {
	resp, err := suite.authService().Register(suite.ctx, &RegisterRequest{
		Name:     "maria souza",
		Email:    "Maria@PackScan.pro",
		Password: "campo2024",
	})

	suite.Require().NoError(err)
	suite.Equal(models.RoleInspector, resp.User.Role)
	suite.Equal("maria@packscan.pro", resp.User.Email)
	suite.Equal("MARIA SOUZA", resp.User.Name)
	suite.Equal("Bearer", resp.TokenType)
	suite.Equal(3600, resp.ExpiresIn)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(resp.User.ID.String(), claims.UserID)
	suite.Equal(string(models.RoleInspector), claims.Role)
}

func (suite *ServiceTestSuite) TestRegisterRejectsDuplicateEmail() {
	_, err := suite.authService().Register(suite.ctx, &RegisterRequest{
		Name:     "Joana",
		Email:    "JOANA@packscan.pro",
		Password: "campo2024",
	})
	suite.ErrorIs(err, ErrEmailTaken)
}

func (suite *ServiceTestSuite) TestRegisterRejectsWeakPassword() {
	_, err := suite.authService().Register(suite.ctx, &RegisterRequest{
		Name:     "Carlos",
		Email:    "carlos@packscan.pro",
		Password: "abc",
	})

	var validationErr *inspection.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Equal("password", validationErr.Field)
}

func (suite *ServiceTestSuite) TestLoginAndRefresh() {
	auth := suite.authService()

	_, err := auth.Login(suite.ctx, &LoginRequest{Email: "joana@packscan.pro", Password: "wrong-pass1"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = auth.Login(suite.ctx, &LoginRequest{Email: "nobody@packscan.pro", Password: "senha1234"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	resp, err := auth.Login(suite.ctx, &LoginRequest{Email: "Joana@packscan.pro", Password: "senha1234"})
	suite.Require().NoError(err)
	suite.Equal(suite.inspector.ID, resp.User.ID)
	suite.NotNil(resp.User.LastLoginAt)

	refreshed, err := auth.Refresh(suite.ctx, &RefreshRequest{RefreshToken: resp.RefreshToken})
	suite.Require().NoError(err)
	suite.Equal(suite.inspector.ID, refreshed.User.ID)

	// access tokens are not refresh tokens
	_, err = auth.Refresh(suite.ctx, &RefreshRequest{RefreshToken: resp.AccessToken})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *ServiceTestSuite) TestProfile() {
	user, err := suite.authService().Profile(suite.ctx, suite.admin.ID)
	suite.Require().NoError(err)
	suite.Equal(models.RoleAdmin, user.Role)
}
