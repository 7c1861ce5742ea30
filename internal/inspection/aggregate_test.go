// internal/inspection/aggregate_test.go
package inspection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packscan/packscan-backend/internal/models"
)

func entry(status models.ReviewStatus, brand, manufacturer, molding string, isNew bool) models.ProductEntry {
	return models.ProductEntry{
		ReviewStatus:  status,
		IsNewProspect: isNew,
		Attributes: models.ExtractedAttributes{
			Marca:               brand,
			FabricanteEmbalagem: manufacturer,
			Moldagem:            molding,
		},
	}
}

func TestAggregateEmpty(t *testing.T) {
	report := Aggregate(nil, ReportOptions{})

	assert.Zero(t, report.Total)
	assert.Zero(t, report.Approved)
	assert.Zero(t, report.Rejected)
	assert.Zero(t, report.Pending)
	assert.Zero(t, report.Cities)
	assert.Empty(t, report.EstablishmentRanking)
	assert.Empty(t, report.CityRanking)
	assert.Empty(t, report.ManufacturerShare)
	assert.Empty(t, report.MoldingDistribution)
	assert.Empty(t, report.Filtered)
}

func TestAggregateCountsAndRankings(t *testing.T) {
	lists := []models.InspectionList{
		{
			Establishment: "MERCADO A", City: "SAO PAULO / SP",
			Entries: []models.ProductEntry{
				entry(models.ReviewStatusApproved, "X", "PLASTIPAK", "INJETADO", true),
				entry(models.ReviewStatusPending, "Y", "PLASTIPAK", "TERMOFORMADO", false),
			},
		},
		{
			Establishment: "MERCADO B", City: "CAMPINAS / SP",
			Entries: []models.ProductEntry{
				entry(models.ReviewStatusRejected, "X", "", "N/I", true),
				entry(models.ReviewStatusApproved, "Z", "BRASILPLAST", "injetado", false),
			},
		},
		{
			Establishment: "MERCADO A", City: "SAO PAULO / SP",
			Entries: []models.ProductEntry{
				entry(models.ReviewStatusPending, "X", "PLASTIPAK", "INJETADO", false),
			},
		},
	}

	report := Aggregate(lists, ReportOptions{})

	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 2, report.Approved)
	assert.Equal(t, 1, report.Rejected)
	assert.Equal(t, 2, report.Pending)
	assert.Equal(t, 2, report.NewProspects)
	assert.Equal(t, 2, report.Cities)
	assert.Equal(t, 2, report.Establishments)

	assert.Equal(t, []RankItem{{"MERCADO A", 3}, {"MERCADO B", 2}}, report.EstablishmentRanking)
	assert.Equal(t, []RankItem{{"SAO PAULO / SP", 3}, {"CAMPINAS / SP", 2}}, report.CityRanking)
	assert.Equal(t, []RankItem{{"X", 3}, {"Y", 1}, {"Z", 1}}, report.BrandRanking)

	require.Len(t, report.ManufacturerShare, 3)
	assert.Equal(t, ShareItem{Key: "PLASTIPAK", Count: 3, Percent: 100}, report.ManufacturerShare[0])
	assert.Equal(t, "N/I", report.ManufacturerShare[1].Key)
	assert.InDelta(t, 33.33, report.ManufacturerShare[1].Percent, 0.01)
	assert.Equal(t, "BRASILPLAST", report.ManufacturerShare[2].Key)

	require.Len(t, report.MoldingDistribution, 3)
	assert.Equal(t, "INJETADO", report.MoldingDistribution[0].Key)
	assert.Equal(t, 3, report.MoldingDistribution[0].Count)
	assert.Equal(t, "TERMOFORMADO", report.MoldingDistribution[1].Key)
	assert.Equal(t, "N/I", report.MoldingDistribution[2].Key)

	assert.Empty(t, report.Filtered)
}

func TestAggregateTiesKeepFirstEncounterOrder(t *testing.T) {
	var lists []models.InspectionList
	for _, name := range []string{"C", "A", "B"} {
		lists = append(lists, models.InspectionList{
			Establishment: name,
			City:          name,
			Entries:       []models.ProductEntry{entry(models.ReviewStatusPending, "", "", "", true)},
		})
	}

	report := Aggregate(lists, ReportOptions{})

	assert.Equal(t, []RankItem{{"C", 1}, {"A", 1}, {"B", 1}}, report.EstablishmentRanking)
}

func TestAggregateLimit(t *testing.T) {
	var lists []models.InspectionList
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		lists = append(lists, models.InspectionList{Establishment: name, City: name})
	}

	assert.Len(t, Aggregate(lists, ReportOptions{}).EstablishmentRanking, DefaultRankingSize)
	assert.Len(t, Aggregate(lists, ReportOptions{Limit: 3}).CityRanking, 3)
	assert.Len(t, Aggregate(lists, ReportOptions{Limit: -1}).CityRanking, DefaultRankingSize)
}

func TestAggregateStatusFilter(t *testing.T) {
	lists := []models.InspectionList{{
		Establishment: "A", City: "A",
		Entries: []models.ProductEntry{
			entry(models.ReviewStatusApproved, "1", "", "", false),
			entry(models.ReviewStatusPending, "2", "", "", false),
			entry(models.ReviewStatusApproved, "3", "", "", false),
		},
	}}
	status := models.ReviewStatusApproved

	report := Aggregate(lists, ReportOptions{Status: &status})

	require.Len(t, report.Filtered, 2)
	assert.Equal(t, "1", report.Filtered[0].Attributes.Marca)
	assert.Equal(t, "3", report.Filtered[1].Attributes.Marca)
}

func TestAggregateSharesWithZeroCounts(t *testing.T) {
	lists := []models.InspectionList{{Establishment: "VAZIO", City: "VAZIO"}}

	report := Aggregate(lists, ReportOptions{})

	assert.Equal(t, []RankItem{{"VAZIO", 0}}, report.EstablishmentRanking)
	assert.Empty(t, report.ManufacturerShare)
}
