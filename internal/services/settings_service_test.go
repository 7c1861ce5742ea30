// internal/services/settings_service_test.go
package services

import (
	"github.com/packscan/packscan-backend/internal/inspection"
)

func (suite *ServiceTestSuite) TestSettingsDefaultWhenMissing() {
	settings, err := suite.settings.Get(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(testICEmail, settings.ICEmail)
	suite.Empty(settings.ReferenceCNPJs)
}

func (suite *ServiceTestSuite) TestInspectorCannotUpdateSettings() {
	_, err := suite.settings.Update(suite.ctx, suite.inspector, &UpdateSettingsRequest{ReferenceCNPJs: "12345678"})

	var authErr *inspection.AuthorizationError
	suite.Require().ErrorAs(err, &authErr)

	refs, err := suite.settings.ReferenceSet(suite.ctx)
	suite.Require().NoError(err)
	suite.Zero(refs.Len())
}

func (suite *ServiceTestSuite) TestUpdateSettings() {
	view, err := suite.settings.Update(suite.ctx, suite.admin, &UpdateSettingsRequest{
		ICEmail:        " IC@PackScan.pro ",
		ReferenceCNPJs: "12.345.678/0001-99, 98765432000110;12345678",
	})

	suite.Require().NoError(err)
	suite.Equal("ic@packscan.pro", view.ICEmail)
	suite.Equal([]string{"12345678", "98765432"}, view.ReferenceRoots)
	suite.Require().NotNil(view.UpdatedBy)
	suite.Equal(suite.admin.ID, *view.UpdatedBy)
	suite.Contains(suite.auditActions(), "SETTINGS_UPDATE")

	// a second write replaces the singleton
	view, err = suite.settings.Update(suite.ctx, suite.admin, &UpdateSettingsRequest{ReferenceCNPJs: ""})
	suite.Require().NoError(err)
	suite.Equal(testICEmail, view.ICEmail)
	suite.Empty(view.ReferenceRoots)
}

func (suite *ServiceTestSuite) TestUpdateSettingsRejectsBadEmail() {
	_, err := suite.settings.Update(suite.ctx, suite.admin, &UpdateSettingsRequest{ICEmail: "not-an-email"})

	var validationErr *inspection.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Equal("ic_email", validationErr.Field)
}
