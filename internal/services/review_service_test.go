// internal/services/review_service_test.go
package services

import (
	"github.com/google/uuid"

	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
)

func (suite *ServiceTestSuite) TestInspectorCannotReview() {
	list := suite.createList(suite.inspector)
	created := suite.process(suite.inspector, list.ID, "12.345.678/0001-99")
	before := len(suite.auditActions())

	_, err := suite.reviews.Transition(suite.ctx, suite.inspector, created.Entry.ID, models.ReviewStatusApproved)

	var authErr *inspection.AuthorizationError
	suite.Require().ErrorAs(err, &authErr)
	suite.ErrorIs(err, inspection.ErrForbidden)

	stored, err := suite.repo.GetEntry(suite.ctx, created.Entry.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ReviewStatusPending, stored.ReviewStatus)
	suite.Len(suite.auditActions(), before)
}

func (suite *ServiceTestSuite) TestUnknownEntryIsDeniedBeforeLookup() {
	_, err := suite.reviews.Transition(suite.ctx, suite.inspector, uuid.New(), models.ReviewStatusApproved)
	suite.ErrorIs(err, inspection.ErrForbidden)

	_, err = suite.reviews.Transition(suite.ctx, suite.admin, uuid.New(), models.ReviewStatusApproved)
	suite.ErrorIs(err, inspection.ErrNotFound)
}

func (suite *ServiceTestSuite) TestLastTransitionWins() {
	list := suite.createList(suite.inspector)
	created := suite.process(suite.inspector, list.ID, "12.345.678/0001-99")

	_, err := suite.reviews.Transition(suite.ctx, suite.admin, created.Entry.ID, models.ReviewStatusApproved)
	suite.Require().NoError(err)
	entry, err := suite.reviews.Transition(suite.ctx, suite.admin, created.Entry.ID, models.ReviewStatusRejected)
	suite.Require().NoError(err)
	suite.Equal(models.ReviewStatusRejected, entry.ReviewStatus)

	stored, err := suite.repo.GetEntry(suite.ctx, created.Entry.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ReviewStatusRejected, stored.ReviewStatus)

	actions := suite.auditActions()
	suite.Contains(actions, "REVIEW_APPROVE")
	suite.Contains(actions, "REVIEW_REJECT")
}

func (suite *ServiceTestSuite) TestPendingIsNotATarget() {
	list := suite.createList(suite.inspector)
	created := suite.process(suite.inspector, list.ID, "12.345.678/0001-99")

	_, err := suite.reviews.Transition(suite.ctx, suite.admin, created.Entry.ID, models.ReviewStatusPending)
	suite.ErrorIs(err, inspection.ErrValidation)
}

func (suite *ServiceTestSuite) TestBulkTransitionIsPerEntry() {
	list := suite.createList(suite.inspector)
	first := suite.process(suite.inspector, list.ID, "12.345.678/0001-99")
	second := suite.process(suite.inspector, list.ID, "98.765.432/0001-10")
	missing := uuid.New()

	result, err := suite.reviews.BulkTransition(suite.ctx, suite.admin,
		[]uuid.UUID{first.Entry.ID, missing, second.Entry.ID}, models.ReviewStatusRejected)

	suite.Require().NoError(err)
	suite.False(result.AllSucceeded)
	suite.Equal([]uuid.UUID{first.Entry.ID, second.Entry.ID}, result.Succeeded)
	suite.Contains(result.Failed, missing.String())

	for _, id := range result.Succeeded {
		stored, err := suite.repo.GetEntry(suite.ctx, id)
		suite.Require().NoError(err)
		suite.Equal(models.ReviewStatusRejected, stored.ReviewStatus)
	}
}

func (suite *ServiceTestSuite) TestBulkTransitionIgnoresRepeatedIDs() {
	list := suite.createList(suite.inspector)
	first := suite.process(suite.inspector, list.ID, "12.345.678/0001-99")
	second := suite.process(suite.inspector, list.ID, "98.765.432/0001-10")

	result, err := suite.reviews.BulkTransition(suite.ctx, suite.admin,
		[]uuid.UUID{first.Entry.ID, second.Entry.ID, first.Entry.ID}, models.ReviewStatusApproved)

	suite.Require().NoError(err)
	suite.True(result.AllSucceeded)
	suite.Equal([]uuid.UUID{first.Entry.ID, second.Entry.ID}, result.Succeeded)
}

func (suite *ServiceTestSuite) TestBulkTransitionDeniedForInspector() {
	_, err := suite.reviews.BulkTransition(suite.ctx, suite.inspector, []uuid.UUID{uuid.New()}, models.ReviewStatusApproved)
	suite.ErrorIs(err, inspection.ErrForbidden)
}

func (suite *ServiceTestSuite) TestApprovePending() {
	list := suite.createList(suite.inspector)
	first := suite.process(suite.inspector, list.ID, "12.345.678/0001-99")
	second := suite.process(suite.inspector, list.ID, "98.765.432/0001-10")
	third := suite.process(suite.inspector, list.ID, "11.111.111/0001-11")
	_, err := suite.reviews.Transition(suite.ctx, suite.admin, third.Entry.ID, models.ReviewStatusRejected)
	suite.Require().NoError(err)

	result, err := suite.reviews.ApprovePending(suite.ctx, suite.admin)

	suite.Require().NoError(err)
	suite.True(result.AllSucceeded)
	suite.ElementsMatch([]uuid.UUID{first.Entry.ID, second.Entry.ID}, result.Succeeded)

	stored, err := suite.repo.GetEntry(suite.ctx, third.Entry.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ReviewStatusRejected, stored.ReviewStatus)
}

func (suite *ServiceTestSuite) TestApprovePendingWithNothingPending() {
	result, err := suite.reviews.ApprovePending(suite.ctx, suite.admin)

	suite.Require().NoError(err)
	suite.True(result.AllSucceeded)
	suite.Empty(result.Succeeded)
}
