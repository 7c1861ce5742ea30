// internal/services/list_service_test.go
package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/packscan/packscan-backend/internal/config"
	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
)

func (suite *ServiceTestSuite) TestCreateListNormalizesFields() {
	list := suite.createList(suite.inspector)

	suite.Equal("ROTA CENTRO", list.Name)
	suite.Equal("MERCADO CENTRAL", list.Establishment)
	suite.Equal("CAMPINAS / SP", list.City)
	suite.Equal(models.ListStatusExecuting, list.Status)
	suite.Equal(suite.inspector.ID, list.InspectorID)
	suite.Equal("JOANA", list.InspectorName)
	suite.Contains(suite.auditActions(), "LIST_CREATE")
}

func (suite *ServiceTestSuite) TestCreateListRequiresFields() {
	_, err := suite.lists.Create(suite.ctx, suite.inspector, &CreateListRequest{
		Name:          "rota",
		Establishment: "   ",
		City:          "Campinas",
	})

	var validationErr *inspection.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Equal("establishment", validationErr.Field)
	suite.ErrorIs(err, inspection.ErrValidation)
}

func (suite *ServiceTestSuite) TestInspectorCannotSeeOtherLists() {
	list := suite.createList(suite.other)

	_, err := suite.lists.Get(suite.ctx, suite.inspector, list.ID)
	suite.ErrorIs(err, inspection.ErrNotFound)

	got, err := suite.lists.Get(suite.ctx, suite.admin, list.ID)
	suite.Require().NoError(err)
	suite.Equal(list.ID, got.ID)
}

func (suite *ServiceTestSuite) TestListScopesByRole() {
	suite.createList(suite.inspector)
	suite.createList(suite.other)

	own, err := suite.lists.List(suite.ctx, suite.inspector, "")
	suite.Require().NoError(err)
	suite.Len(own, 1)

	all, err := suite.lists.List(suite.ctx, suite.admin, "")
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *ServiceTestSuite) TestListSearchMatchesEntryFields() {
	list := suite.createList(suite.inspector)
	suite.process(suite.inspector, list.ID, "12.345.678/0001-99")

	byBrand, err := suite.lists.List(suite.ctx, suite.inspector, "boa vis")
	suite.Require().NoError(err)
	suite.Len(byBrand, 1)

	byTaxID, err := suite.lists.List(suite.ctx, suite.inspector, "12.345")
	suite.Require().NoError(err)
	suite.Len(byTaxID, 1)

	none, err := suite.lists.List(suite.ctx, suite.inspector, "inexistente")
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *ServiceTestSuite) TestSubmitIsIdempotent() {
	list := suite.createList(suite.inspector)
	suite.process(suite.inspector, list.ID, "12.345.678/0001-99")

	submitted, err := suite.lists.Submit(suite.ctx, suite.inspector, list.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ListStatusWaitingIC, submitted.Status)

	again, err := suite.lists.Submit(suite.ctx, suite.inspector, list.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ListStatusWaitingIC, again.Status)

	suite.Require().Len(suite.notifier.sent, 1)
	suite.Equal(testICEmail, suite.notifier.sent[0].to)
	suite.Len(suite.notifier.sent[0].list.Entries, 1)

	stored, err := suite.repo.GetList(suite.ctx, list.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ListStatusWaitingIC, stored.Status)
}

func (suite *ServiceTestSuite) TestSubmitUsesConfiguredICEmail() {
	_, err := suite.settings.Update(suite.ctx, suite.admin, &UpdateSettingsRequest{ICEmail: "BI@Packscan.pro"})
	suite.Require().NoError(err)
	list := suite.createList(suite.inspector)

	_, err = suite.lists.Submit(suite.ctx, suite.inspector, list.ID)
	suite.Require().NoError(err)

	suite.Require().Len(suite.notifier.sent, 1)
	suite.Equal("bi@packscan.pro", suite.notifier.sent[0].to)
}

func (suite *ServiceTestSuite) TestSubmitSurvivesNotificationFailure() {
	suite.notifier.err = errors.New("smtp down")
	list := suite.createList(suite.inspector)

	submitted, err := suite.lists.Submit(suite.ctx, suite.inspector, list.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ListStatusWaitingIC, submitted.Status)
}

func (suite *ServiceTestSuite) TestSubmitSurvivesSettingsReadFailure() {
	list := suite.createList(suite.inspector)
	broken := NewListService(suite.repo, NewSettingsService(failingSettingsRead{suite.repo}, config.InspectionConfig{}, suite.audit),
		&recordingPhotos{}, suite.notifier, suite.audit)

	submitted, err := broken.Submit(suite.ctx, suite.inspector, list.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ListStatusWaitingIC, submitted.Status)
	suite.Empty(suite.notifier.sent)

	stored, err := suite.repo.GetList(suite.ctx, list.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ListStatusWaitingIC, stored.Status)
}

func (suite *ServiceTestSuite) TestSubmitOtherInspectorsListIsNotFound() {
	list := suite.createList(suite.other)

	_, err := suite.lists.Submit(suite.ctx, suite.inspector, list.ID)
	suite.ErrorIs(err, inspection.ErrNotFound)
	suite.Empty(suite.notifier.sent)
}

func (suite *ServiceTestSuite) TestDeleteListRemovesEntries() {
	list := suite.createList(suite.inspector)
	suite.process(suite.inspector, list.ID, "12.345.678/0001-99")
	suite.process(suite.inspector, list.ID, "98.765.432/0001-10")

	suite.Require().NoError(suite.lists.Delete(suite.ctx, suite.inspector, list.ID))

	suite.Zero(suite.countEntries())
	_, err := suite.repo.GetList(suite.ctx, list.ID)
	suite.ErrorIs(err, inspection.ErrNotFound)
}

func (suite *ServiceTestSuite) TestDeleteListRemovesEntryPhotos() {
	photos := &recordingPhotos{}
	lists := NewListService(suite.repo, suite.settings, photos, suite.notifier, suite.audit)
	list := suite.createList(suite.inspector)
	suite.process(suite.inspector, list.ID, "12.345.678/0001-99")
	suite.process(suite.inspector, list.ID, "98.765.432/0001-10")
	kept := suite.createList(suite.inspector)
	suite.process(suite.inspector, kept.ID, "11.222.333/0001-44")

	suite.Require().NoError(lists.Delete(suite.ctx, suite.inspector, list.ID))

	suite.Equal([]string{testPhoto, testPhoto}, photos.deleted)
	suite.Equal(int64(1), suite.countEntries())
}

func (suite *ServiceTestSuite) TestDeleteListReportsParentFailure() {
	list := suite.createList(suite.inspector)
	suite.process(suite.inspector, list.ID, "12.345.678/0001-99")

	broken := NewListService(failingListDelete{suite.repo}, suite.settings, &recordingPhotos{}, suite.notifier, suite.audit)
	err := broken.Delete(suite.ctx, suite.inspector, list.ID)
	suite.ErrorIs(err, ErrParentDeleteFailed)
	suite.Zero(suite.countEntries())

	// retrying with a healthy store finishes the delete
	suite.Require().NoError(suite.lists.Delete(suite.ctx, suite.inspector, list.ID))
	_, err = suite.repo.GetList(suite.ctx, list.ID)
	suite.ErrorIs(err, inspection.ErrNotFound)
}

func (suite *ServiceTestSuite) TestDeleteUnknownList() {
	err := suite.lists.Delete(suite.ctx, suite.admin, uuid.New())
	suite.ErrorIs(err, inspection.ErrNotFound)
}
