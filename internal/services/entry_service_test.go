// internal/services/entry_service_test.go
package services

import (
	"github.com/google/uuid"

	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
)

func (suite *ServiceTestSuite) TestProcessStoresPendingNewProspect() {
	list := suite.createList(suite.inspector)

	result := suite.process(suite.inspector, list.ID, "12.345.678/0001-99")

	suite.Equal("12345678", result.Novelty.Root)
	suite.True(result.Novelty.IsNewProspect)
	suite.Equal(models.ReviewStatusPending, result.Entry.ReviewStatus)
	suite.Equal(list.ID, result.Entry.ListID)
	suite.Equal(suite.inspector.ID, result.Entry.InspectorID)

	stored, err := suite.repo.GetEntry(suite.ctx, result.Entry.ID)
	suite.Require().NoError(err)
	suite.Equal("12345678", stored.TaxRoot)
	suite.True(stored.IsNewProspect)
	suite.Equal("LATICINIOS BOA VISTA LTDA", stored.Attributes.RazaoSocial)
	suite.Equal(models.ShapeRound, stored.Attributes.FormatoEmbalagem)
	suite.Equal(models.MoldingInjected, stored.Attributes.Moldagem)
	suite.Equal(models.DefaultPackageType, stored.Attributes.TipoEmbalagem)
	suite.Equal([]string{testPhoto}, []string(stored.Photos))
}

func (suite *ServiceTestSuite) TestProcessUnreadableLeadingTaxIDIsNew() {
	suite.setReference("12345678")
	list := suite.createList(suite.inspector)
	suite.oracle.attrs.TaxIDs = []string{"N/I", "12.345.678/0001-99"}

	result, err := suite.entries.Process(suite.ctx, suite.inspector, list.ID, &ProcessRequest{Photos: []string{testPhoto}})
	suite.Require().NoError(err)

	stored, err := suite.repo.GetEntry(suite.ctx, result.Entry.ID)
	suite.Require().NoError(err)
	suite.Empty(stored.TaxRoot)
	suite.True(stored.IsNewProspect)
	suite.Equal([]string{"N/I", "12.345.678/0001-99"}, []string(stored.Attributes.TaxIDs))
}

func (suite *ServiceTestSuite) TestProcessInsertFailureRemovesStoredPhotos() {
	photos := &recordingPhotos{}
	broken := NewEntryService(failingEntryInsert{suite.repo}, suite.oracle, suite.settings, photos, suite.audit)
	list := suite.createList(suite.inspector)

	_, err := broken.Process(suite.ctx, suite.inspector, list.ID, &ProcessRequest{Photos: []string{testPhoto}})
	suite.Error(err)
	suite.Equal([]string{testPhoto}, photos.deleted)
	suite.Zero(suite.countEntries())
}

func (suite *ServiceTestSuite) TestProcessSecondEntryWithSameRootIsKnown() {
	list := suite.createList(suite.inspector)
	suite.process(suite.inspector, list.ID, "12.345.678/0001-99")

	second := suite.process(suite.inspector, list.ID, "12345678000250")

	suite.True(second.Novelty.InHistory)
	suite.False(second.Novelty.IsNewProspect)
}

func (suite *ServiceTestSuite) TestProcessHistorySpansInspectors() {
	suite.process(suite.other, suite.createList(suite.other).ID, "12.345.678/0001-99")

	result := suite.process(suite.inspector, suite.createList(suite.inspector).ID, "12.345.678/0001-99")
	suite.False(result.Novelty.IsNewProspect)
}

func (suite *ServiceTestSuite) TestProcessReferenceSetMarksKnown() {
	suite.setReference("11.111.111/0001-11\n12.345.678/0001-99; 999")
	list := suite.createList(suite.inspector)

	result := suite.process(suite.inspector, list.ID, "12.345.678/0009-00")

	suite.True(result.Novelty.InReference)
	suite.False(result.Novelty.InHistory)
	suite.False(result.Entry.IsNewProspect)
}

func (suite *ServiceTestSuite) TestProcessReadsReferenceSetFresh() {
	list := suite.createList(suite.inspector)
	first := suite.process(suite.inspector, list.ID, "55.555.555/0001-55")
	suite.True(first.Novelty.IsNewProspect)

	suite.setReference("66666666")
	second := suite.process(suite.inspector, list.ID, "66.666.666/0001-66")
	suite.False(second.Novelty.IsNewProspect)
}

func (suite *ServiceTestSuite) TestProcessWithoutTaxIDIsAlwaysNew() {
	list := suite.createList(suite.inspector)
	suite.process(suite.inspector, list.ID, "N/I")

	result := suite.process(suite.inspector, list.ID, "N/I")

	suite.Equal("", result.Novelty.Root)
	suite.True(result.Novelty.IsNewProspect)
	suite.Empty(result.Entry.Attributes.TaxIDs)
}

func (suite *ServiceTestSuite) TestProcessExtractionFailurePersistsNothing() {
	suite.oracle.err = &inspection.ExtractionError{Reason: "extraction service unavailable"}
	list := suite.createList(suite.inspector)

	_, err := suite.entries.Process(suite.ctx, suite.inspector, list.ID, &ProcessRequest{Photos: []string{testPhoto}})

	var extractionErr *inspection.ExtractionError
	suite.Require().ErrorAs(err, &extractionErr)
	suite.Equal("extraction service unavailable", extractionErr.Reason)
	suite.Zero(suite.countEntries())
}

func (suite *ServiceTestSuite) TestProcessOnInvisibleListIsNotFound() {
	list := suite.createList(suite.other)

	_, err := suite.entries.Process(suite.ctx, suite.inspector, list.ID, &ProcessRequest{Photos: []string{testPhoto}})

	suite.ErrorIs(err, inspection.ErrNotFound)
	suite.Zero(suite.oracle.calls)
}

func (suite *ServiceTestSuite) TestProcessRequiresPhotos() {
	list := suite.createList(suite.inspector)

	_, err := suite.entries.Process(suite.ctx, suite.inspector, list.ID, &ProcessRequest{})

	suite.ErrorIs(err, inspection.ErrValidation)
	suite.Zero(suite.oracle.calls)
}

func (suite *ServiceTestSuite) TestUpdateExcludesEntryItself() {
	list := suite.createList(suite.inspector)
	created := suite.process(suite.inspector, list.ID, "12.345.678/0001-99")

	attrs := created.Entry.Attributes
	attrs.Marca = "nova marca"
	result, err := suite.entries.Update(suite.ctx, suite.inspector, created.Entry.ID, &UpdateEntryRequest{Attributes: attrs})

	suite.Require().NoError(err)
	suite.False(result.Novelty.InHistory)
	suite.True(result.Entry.IsNewProspect)
	suite.Equal("NOVA MARCA", result.Entry.Attributes.Marca)
}

func (suite *ServiceTestSuite) TestUpdateReclassifiesAgainstOtherEntries() {
	list := suite.createList(suite.inspector)
	suite.process(suite.inspector, list.ID, "98.765.432/0001-10")
	created := suite.process(suite.inspector, list.ID, "12.345.678/0001-99")
	suite.True(created.Entry.IsNewProspect)

	attrs := created.Entry.Attributes
	attrs.TaxIDs = []string{"98.765.432/0002-00"}
	attrs.FormatoEmbalagem = "Cilíndrico"
	result, err := suite.entries.Update(suite.ctx, suite.inspector, created.Entry.ID, &UpdateEntryRequest{Attributes: attrs})

	suite.Require().NoError(err)
	suite.Equal("98765432", result.Entry.TaxRoot)
	suite.False(result.Entry.IsNewProspect)
	suite.Equal(models.ShapeRound, result.Entry.Attributes.FormatoEmbalagem)
	suite.Equal([]string{"98.765.432/0002-00"}, []string(result.Entry.Attributes.TaxIDs))
}

func (suite *ServiceTestSuite) TestOnlyAdminsComment() {
	list := suite.createList(suite.inspector)
	created := suite.process(suite.inspector, list.ID, "12.345.678/0001-99")
	comment := "CLIENTE EM NEGOCIAÇÃO"

	_, err := suite.entries.Update(suite.ctx, suite.inspector, created.Entry.ID, &UpdateEntryRequest{
		Attributes: created.Entry.Attributes,
		ICComment:  &comment,
	})
	var authErr *inspection.AuthorizationError
	suite.ErrorAs(err, &authErr)

	result, err := suite.entries.Update(suite.ctx, suite.admin, created.Entry.ID, &UpdateEntryRequest{
		Attributes: created.Entry.Attributes,
		ICComment:  &comment,
	})
	suite.Require().NoError(err)
	suite.Equal(comment, result.Entry.ICComment)
}

func (suite *ServiceTestSuite) TestDeleteEntry() {
	list := suite.createList(suite.inspector)
	created := suite.process(suite.inspector, list.ID, "12.345.678/0001-99")

	err := suite.entries.Delete(suite.ctx, suite.other, created.Entry.ID)
	suite.ErrorIs(err, inspection.ErrNotFound)

	suite.Require().NoError(suite.entries.Delete(suite.ctx, suite.inspector, created.Entry.ID))
	suite.Zero(suite.countEntries())

	err = suite.entries.Delete(suite.ctx, suite.inspector, uuid.New())
	suite.ErrorIs(err, inspection.ErrNotFound)
}

func (suite *ServiceTestSuite) TestReclassifyFollowsReferenceChanges() {
	list := suite.createList(suite.inspector)
	first := suite.process(suite.inspector, list.ID, "12.345.678/0001-99")
	second := suite.process(suite.inspector, list.ID, "12.345.678/0002-70")
	suite.True(first.Entry.IsNewProspect)
	suite.False(second.Entry.IsNewProspect)

	suite.setReference("12345678000199")
	result, err := suite.entries.Reclassify(suite.ctx, suite.admin)
	suite.Require().NoError(err)
	suite.Equal(2, result.Scanned)
	suite.Equal(1, result.Changed)

	stored, err := suite.repo.GetEntry(suite.ctx, first.Entry.ID)
	suite.Require().NoError(err)
	suite.False(stored.IsNewProspect)

	suite.setReference("")
	result, err = suite.entries.Reclassify(suite.ctx, suite.admin)
	suite.Require().NoError(err)
	suite.Equal(1, result.Changed)

	stored, err = suite.repo.GetEntry(suite.ctx, first.Entry.ID)
	suite.Require().NoError(err)
	suite.True(stored.IsNewProspect)
	stored, err = suite.repo.GetEntry(suite.ctx, second.Entry.ID)
	suite.Require().NoError(err)
	suite.False(stored.IsNewProspect)

	suite.Contains(suite.auditActions(), "ENTRY_RECLASSIFY")
}

func (suite *ServiceTestSuite) TestReclassifyRequiresAdmin() {
	_, err := suite.entries.Reclassify(suite.ctx, suite.inspector)

	var authErr *inspection.AuthorizationError
	suite.ErrorAs(err, &authErr)
}
