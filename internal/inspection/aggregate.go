// internal/inspection/aggregate.go
package inspection

import (
	"sort"
	"strings"

	"github.com/packscan/packscan-backend/internal/models"
)

// DefaultRankingSize is the top-N used when the caller does not ask for one.
const DefaultRankingSize = 5

type ReportOptions struct {
	Status *models.ReviewStatus
	Limit  int
}

type RankItem struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ShareItem is a ranked bucket with its count relative to the largest bucket, in percent.
type ShareItem struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type Report struct {
	Total                int                   `json:"total"`
	Approved             int                   `json:"approved"`
	Rejected             int                   `json:"rejected"`
	Pending              int                   `json:"pending"`
	NewProspects         int                   `json:"new_prospects"`
	Cities               int                   `json:"cities"`
	Establishments       int                   `json:"establishments"`
	EstablishmentRanking []RankItem            `json:"establishment_ranking"`
	CityRanking          []RankItem            `json:"city_ranking"`
	BrandRanking         []RankItem            `json:"brand_ranking"`
	ManufacturerShare    []ShareItem           `json:"manufacturer_share"`
	MoldingDistribution  []ShareItem           `json:"molding_distribution"`
	Filtered             []models.ProductEntry `json:"filtered"`
}

// counter keeps buckets in first-encountered order so a stable sort breaks ties by it.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string, n int) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

func (c *counter) ranked() []RankItem {
	items := make([]RankItem, 0, len(c.order))
	for _, key := range c.order {
		items = append(items, RankItem{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	return items
}

func (c *counter) top(n int) []RankItem {
	items := c.ranked()
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func (c *counter) shares() []ShareItem {
	items := c.ranked()
	max := 1
	for _, it := range items {
		if it.Count > max {
			max = it.Count
		}
	}
	out := make([]ShareItem, 0, len(items))
	for _, it := range items {
		out = append(out, ShareItem{
			Key:     it.Key,
			Count:   it.Count,
			Percent: float64(it.Count) / float64(max) * 100,
		})
	}
	return out
}

func bucketKey(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.NotIdentified
	}
	return value
}

// Aggregate computes the BI report over lists and their entries, visited in the given order.
// It has no side effects and tolerates an empty input.
func Aggregate(lists []models.InspectionList, opts ReportOptions) Report {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultRankingSize
	}

	establishments := newCounter()
	cities := newCounter()
	brands := newCounter()
	manufacturers := newCounter()
	moldings := newCounter()

	report := Report{
		Filtered: []models.ProductEntry{},
	}

	for _, list := range lists {
		establishments.add(list.Establishment, len(list.Entries))
		cities.add(list.City, len(list.Entries))

		for _, entry := range list.Entries {
			report.Total++

			switch entry.ReviewStatus {
			case models.ReviewStatusApproved:
				report.Approved++
			case models.ReviewStatusRejected:
				report.Rejected++
			case models.ReviewStatusPending:
				report.Pending++
			}

			if entry.IsNewProspect {
				report.NewProspects++
			}

			brands.add(bucketKey(entry.Attributes.Marca), 1)
			manufacturers.add(bucketKey(entry.Attributes.FabricanteEmbalagem), 1)
			moldings.add(strings.ToUpper(bucketKey(entry.Attributes.Moldagem)), 1)

			if opts.Status != nil && entry.ReviewStatus == *opts.Status {
				report.Filtered = append(report.Filtered, entry)
			}
		}
	}

	report.Cities = len(cities.order)
	report.Establishments = len(establishments.order)
	report.EstablishmentRanking = establishments.top(limit)
	report.CityRanking = cities.top(limit)
	report.BrandRanking = brands.top(limit)
	report.ManufacturerShare = manufacturers.shares()
	report.MoldingDistribution = moldings.shares()

	return report
}
