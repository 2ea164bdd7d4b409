package collecting

import (
	"strings"

	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/utils"
)

// PreparePerformance limpa números inválidos, marca nomes ausentes e descarta
// linhas sem impressões, cliques e conversões
func PreparePerformance(rows []*domain.PerformanceRow) []*domain.PerformanceRow {
	out := make([]*domain.PerformanceRow, 0, len(rows))
	for _, row := range rows {
		row.Cost = utils.Finite(row.Cost)
		row.Conversions = utils.Finite(row.Conversions)
		row.ConversionValue = utils.Finite(row.ConversionValue)
		row.AverageRank = finitePtr(row.AverageRank)
		row.CostPerClick = finitePtr(row.CostPerClick)

		if row.IsZeroSignal() {
			continue
		}

		row.TagIssues()
		out = append(out, row)
	}
	return out
}

func PrepareDemographics(rows []*domain.DemographicRow) []*domain.DemographicRow {
	out := make([]*domain.DemographicRow, 0, len(rows))
	for _, row := range rows {
		row.Cost = utils.Finite(row.Cost)
		row.Conversions = utils.Finite(row.Conversions)
		row.ConversionValue = utils.Finite(row.ConversionValue)

		if row.IsZeroSignal() {
			continue
		}
		out = append(out, row)
	}
	return out
}

// OptionalString converte "" em nil
func OptionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func finitePtr(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := utils.Finite(*f)
	return &v
}
