// internal/services/audit_service_test.go
package services

import (
	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/utils"
)

func (suite *ServiceTestSuite) TestAuditListFiltersAndPages() {
	list := suite.createList(suite.inspector)
	suite.process(suite.inspector, list.ID, "12.345.678/0001-99")
	suite.setReference("11111111")
	suite.audit.Record(&models.AuditLog{Action: "POST /v1/lists", ResourceType: "lists"})

	logs, total, err := suite.audit.List(suite.ctx, AuditFilters{ResourceType: "entry"},
		utils.PageParams{Page: 1, Limit: 10, Sort: "created_at", Order: "desc"})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(logs, 1)
	suite.Equal("ENTRY_CREATE", logs[0].Action)

	userID := suite.admin.ID
	logs, total, err = suite.audit.List(suite.ctx, AuditFilters{UserID: &userID},
		utils.PageParams{Page: 1, Limit: 10, Sort: "created_at", Order: "asc"})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("SETTINGS_UPDATE", logs[0].Action)

	logs, total, err = suite.audit.List(suite.ctx, AuditFilters{},
		utils.PageParams{Page: 2, Limit: 2, Sort: "created_at", Order: "asc"})
	suite.Require().NoError(err)
	suite.Equal(int64(4), total)
	suite.Require().Len(logs, 2)
	suite.Equal("SETTINGS_UPDATE", logs[0].Action)
	suite.Equal("POST /v1/lists", logs[1].Action)
}
