package analytics

import (
	"sort"
	"time"

	"campaignpulse/pkg/contracts/domain"
)

// RegionalAnalysis branches on the region filter: a specific region yields
// the detail view over the filtered rows, All Regions yields the
// cross-region comparison.
func (a *Analyzer) RegionalAnalysis(customers []domain.Customer, filter domain.Filter) domain.RegionalAnalysis {
	if filter.HasRegion() {
		detail := a.regionDetail(customers, filter.Region)
		return domain.RegionalAnalysis{
			Mode:   domain.RegionalModeDetail,
			Detail: &detail,
		}
	}
	comparison := a.regionComparison(customers)
	return domain.RegionalAnalysis{
		Mode:       domain.RegionalModeComparison,
		Comparison: &comparison,
	}
}

// regionDetail computes the deep-dive for one region. customers are already
// filtered down to that region.
func (a *Analyzer) regionDetail(customers []domain.Customer, region string) domain.RegionDetail {
	var responses int
	var income float64
	for _, c := range customers {
		responses += c.Response
		income += c.Income
	}

	avgIncome := 0.0
	if len(customers) > 0 {
		avgIncome = income / float64(len(customers))
	}

	detail := domain.RegionDetail{
		Region:          region,
		ResponseRate:    percent(responses, len(customers)),
		AvgIncome:       avgIncome,
		Campaigns:       a.CampaignRates(customers),
		AgeDistribution: ageDistribution(customers),
		Monthly:         monthlyRates(customers),
	}

	latest, latestRate, delta := latestYearRate(customers)
	detail.LatestYear = latest
	detail.LatestYearRate = latestRate
	detail.Delta = delta

	return detail
}

// regionComparison computes per-region rates plus the campaign-by-region
// matrix over the latest observed year.
func (a *Analyzer) regionComparison(customers []domain.Customer) domain.RegionComparison {
	counts := make(map[domain.Region]int)
	responses := make(map[domain.Region]int)
	for _, c := range customers {
		counts[c.Region]++
		responses[c.Region] += c.Response
	}

	regions := make([]domain.RegionRate, 0, len(domain.Regions()))
	for _, region := range domain.Regions() {
		if counts[region] == 0 {
			continue
		}
		regions = append(regions, domain.RegionRate{
			Region: region,
			Rate:   percent(responses[region], counts[region]),
		})
	}

	return domain.RegionComparison{
		Regions: regions,
		Matrix:  regionCampaignMatrix(customers),
	}
}

// regionCampaignMatrix computes campaign rates per region restricted to the
// latest observed year. Rates is region-major.
func regionCampaignMatrix(customers []domain.Customer) domain.RegionCampaignMatrix {
	latest := 0
	for _, c := range customers {
		if c.Year > latest {
			latest = c.Year
		}
	}

	counts := make(map[domain.Region]int)
	sums := make(map[domain.Region][domain.CampaignCount]int)
	for _, c := range customers {
		if c.Year != latest {
			continue
		}
		counts[c.Region]++
		s := sums[c.Region]
		for i := range s {
			s[i] += c.Accepted[i]
		}
		sums[c.Region] = s
	}

	matrix := domain.RegionCampaignMatrix{
		Year:      latest,
		Regions:   domain.Regions(),
		Campaigns: domain.Campaigns(),
	}
	matrix.Rates = make([][]float64, len(matrix.Regions))
	for i, region := range matrix.Regions {
		row := make([]float64, domain.CampaignCount)
		for j := range row {
			row[j] = percent(sums[region][j], counts[region])
		}
		matrix.Rates[i] = row
	}
	return matrix
}

// ageDistribution computes each age group's share of the bucketed rows.
func ageDistribution(customers []domain.Customer) []domain.AgeShare {
	counts := make(map[domain.AgeGroup]int)
	total := 0
	for _, c := range customers {
		if c.AgeGroup == domain.AgeGroupNone {
			continue
		}
		counts[c.AgeGroup]++
		total++
	}

	shares := make([]domain.AgeShare, 0, len(counts))
	for _, group := range domain.AgeGroups() {
		if counts[group] == 0 {
			continue
		}
		shares = append(shares, domain.AgeShare{
			Group:   group,
			Count:   counts[group],
			Percent: percent(counts[group], total),
		})
	}
	return shares
}

// monthlyRates computes the overall response rate per observed month,
// calendar order.
func monthlyRates(customers []domain.Customer) []domain.MonthRate {
	counts := make(map[time.Month]int)
	responses := make(map[time.Month]int)
	for _, c := range customers {
		counts[c.Month]++
		responses[c.Month] += c.Response
	}

	months := make([]time.Month, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	rates := make([]domain.MonthRate, 0, len(months))
	for _, m := range months {
		rates = append(rates, domain.MonthRate{
			Month: domain.MonthName(m),
			Rate:  percent(responses[m], counts[m]),
		})
	}
	return rates
}

// latestYearRate returns the latest observed year, its response rate and the
// delta against the prior year. Delta is nil when the prior year is absent
// from the data or had a zero rate.
func latestYearRate(customers []domain.Customer) (int, float64, *float64) {
	counts := make(map[int]int)
	responses := make(map[int]int)
	for _, c := range customers {
		counts[c.Year]++
		responses[c.Year] += c.Response
	}
	if len(counts) == 0 {
		return 0, 0, nil
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	latest := years[len(years)-1]
	latestRate := percent(responses[latest], counts[latest])

	prior := latest - 1
	if counts[prior] == 0 {
		return latest, latestRate, nil
	}
	priorRate := percent(responses[prior], counts[prior])
	if priorRate == 0 {
		return latest, latestRate, nil
	}

	delta := latestRate - priorRate
	return latest, latestRate, &delta
}
