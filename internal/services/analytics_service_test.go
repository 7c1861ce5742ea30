// internal/services/analytics_service_test.go
package services

import (
	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
)

func (suite *ServiceTestSuite) TestReportIsScopedToVisibleLists() {
	analytics := NewAnalyticsService(suite.repo, 0)

	own := suite.createList(suite.inspector)
	suite.process(suite.inspector, own.ID, "12.345.678/0001-99")
	suite.process(suite.inspector, own.ID, "12.345.678/0002-00")
	foreign := suite.createList(suite.other)
	approved := suite.process(suite.other, foreign.ID, "98.765.432/0001-10")
	_, err := suite.reviews.Transition(suite.ctx, suite.admin, approved.Entry.ID, models.ReviewStatusApproved)
	suite.Require().NoError(err)

	mine, err := analytics.Report(suite.ctx, suite.inspector, inspection.ReportOptions{})
	suite.Require().NoError(err)
	suite.Equal(2, mine.Total)
	suite.Equal(2, mine.Pending)
	suite.Equal(1, mine.NewProspects)

	all, err := analytics.Report(suite.ctx, suite.admin, inspection.ReportOptions{})
	suite.Require().NoError(err)
	suite.Equal(3, all.Total)
	suite.Equal(1, all.Approved)
	suite.Require().NotEmpty(all.BrandRanking)
	suite.Equal(inspection.RankItem{Key: "BOA VISTA", Count: 3}, all.BrandRanking[0])

	status := models.ReviewStatusApproved
	filtered, err := analytics.Report(suite.ctx, suite.admin, inspection.ReportOptions{Status: &status})
	suite.Require().NoError(err)
	suite.Require().Len(filtered.Filtered, 1)
	suite.Equal(approved.Entry.ID, filtered.Filtered[0].ID)
}
