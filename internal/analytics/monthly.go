package analytics

import (
	"sort"
	"time"

	"campaignpulse/pkg/contracts/domain"
)

// Display colors for the two comparison years.
const (
	comparisonColor2023 = "#1f77b4"
	comparisonColor2024 = "#ff7f0e"
)

// MonthlyPerformance groups acceptance by month per campaign and derives
// each campaign's best month. Only months present in the data appear, in
// calendar order.
func (a *Analyzer) MonthlyPerformance(customers []domain.Customer) domain.MonthlyPerformance {
	counts := make(map[time.Month]int)
	sums := make(map[time.Month][domain.CampaignCount]int)
	for _, c := range customers {
		counts[c.Month]++
		s := sums[c.Month]
		for i := range s {
			s[i] += c.Accepted[i]
		}
		sums[c.Month] = s
	}

	months := make([]time.Month, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	labels := make([]string, 0, len(months))
	for _, m := range months {
		labels = append(labels, domain.MonthName(m))
	}

	series := make([]domain.MonthlySeries, 0, domain.CampaignCount)
	best := make([]domain.BestMonth, 0, domain.CampaignCount)
	for i, campaign := range domain.Campaigns() {
		rates := make([]float64, 0, len(months))
		bestIdx := -1
		for j, m := range months {
			rate := percent(sums[m][i], counts[m])
			rates = append(rates, rate)
			// Ties keep the earliest month.
			if bestIdx < 0 || rate > rates[bestIdx] {
				bestIdx = j
			}
		}

		series = append(series, domain.MonthlySeries{
			Campaign: campaign,
			Color:    campaign.Color(),
			Rates:    rates,
		})
		if bestIdx >= 0 {
			best = append(best, domain.BestMonth{
				Campaign: campaign,
				Month:    labels[bestIdx],
				Rate:     rates[bestIdx],
			})
		}
	}

	return domain.MonthlyPerformance{
		Months:     labels,
		Series:     series,
		BestMonths: best,
	}
}

// YearComparison builds the 2023 vs 2024 monthly block from the latest two
// observed years. Both display years are always emitted once any data
// exists: with a single observed year it backs the 2023 side and the 2024
// series stays all-zero. Months missing from a year's data carry that
// year's average rate.
func (a *Analyzer) YearComparison(customers []domain.Customer) domain.YearComparison {
	type bucket struct {
		count, responses int
	}
	byYearMonth := make(map[int]map[time.Month]*bucket)
	for _, c := range customers {
		months, ok := byYearMonth[c.Year]
		if !ok {
			months = make(map[time.Month]*bucket)
			byYearMonth[c.Year] = months
		}
		b, ok := months[c.Month]
		if !ok {
			b = &bucket{}
			months[c.Month] = b
		}
		b.count++
		b.responses += c.Response
	}

	years := make([]int, 0, len(byYearMonth))
	for y := range byYearMonth {
		years = append(years, y)
	}
	sort.Ints(years)
	if len(years) > 2 {
		years = years[len(years)-2:]
	}

	displayYears := []int{2023, 2024}
	colors := []string{comparisonColor2023, comparisonColor2024}

	comparison := domain.YearComparison{Months: domain.MonthNames()}
	if len(years) == 0 {
		return comparison
	}
	for i, displayYear := range displayYears {
		year := domain.ComparisonYear{
			DisplayYear: displayYear,
			Color:       colors[i],
		}
		// A display year without an observed counterpart keeps an
		// all-zero series so the chart still renders both groups.
		if i < len(years) {
			sourceYear := years[i]
			months := byYearMonth[sourceYear]

			// Year average backfills months with no data.
			var total, responses int
			for _, b := range months {
				total += b.count
				responses += b.responses
			}
			average := percent(responses, total)

			year.SourceYear = sourceYear
			for m := time.January; m <= time.December; m++ {
				if b, ok := months[m]; ok {
					year.Rates[int(m)-1] = percent(b.responses, b.count)
				} else {
					year.Rates[int(m)-1] = average
				}
			}
		}
		comparison.Years = append(comparison.Years, year)
	}

	return comparison
}
