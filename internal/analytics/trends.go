package analytics

import (
	"math"
	"sort"

	"campaignpulse/pkg/contracts/domain"
)

const (
	// trendStart and trendEnd bound the years the trends chart must cover.
	trendStart = 2019
	trendEnd   = 2024
)

// Default envelope used when a campaign has no observed years at all.
const (
	fallbackMin  = 0.05
	fallbackMax  = 0.25
	fallbackBase = 0.15
)

// trendAnnotations are the fixed callouts attached to the trends chart.
var trendAnnotations = []domain.TrendAnnotation{
	{Campaign: domain.CampaignSpring, Year: 2023, Label: "Accelerated Growth"},
	{Campaign: domain.CampaignSpring, Year: 2024, Label: "Continued Growth"},
	{Campaign: domain.CampaignSummer, Year: 2021, Label: "Seasonal Fluctuation"},
	{Campaign: domain.CampaignAutumn, Year: 2022, Label: "Steady Growth"},
	{Campaign: domain.CampaignWinter, Year: 2024, Label: "Recovery Growth"},
}

// YearlyTrends groups acceptance by year per campaign and fills the years
// missing from the 2019-2024 window with synthetic values.
func (a *Analyzer) YearlyTrends(customers []domain.Customer) domain.YearlyTrends {
	observed := observedYearlyRates(customers)

	years := make([]int, 0, trendEnd-trendStart+1)
	for y := trendStart; y <= trendEnd; y++ {
		years = append(years, y)
	}

	series := make([]domain.TrendSeries, 0, domain.CampaignCount)
	for i, campaign := range domain.Campaigns() {
		env := envelopeFor(observed, i)

		points := make([]domain.TrendPoint, 0, len(years))
		for _, y := range years {
			if rates, ok := observed[y]; ok {
				points = append(points, domain.TrendPoint{Year: y, Rate: rates[i] * 100})
				continue
			}
			points = append(points, domain.TrendPoint{
				Year:      y,
				Rate:      syntheticRate(campaign, y, env) * 100,
				Synthetic: true,
			})
		}

		series = append(series, domain.TrendSeries{
			Campaign: campaign,
			Color:    campaign.Color(),
			Points:   points,
		})
	}

	annotations := make([]domain.TrendAnnotation, len(trendAnnotations))
	copy(annotations, trendAnnotations)

	return domain.YearlyTrends{
		Years:       years,
		Series:      series,
		Annotations: annotations,
	}
}

// envelope bounds the synthetic values for one campaign.
type envelope struct {
	min, max, base float64
}

// observedYearlyRates returns the mean acceptance per campaign for every
// year present in the data, as fractions.
func observedYearlyRates(customers []domain.Customer) map[int][domain.CampaignCount]float64 {
	counts := make(map[int]int)
	sums := make(map[int][domain.CampaignCount]int)
	for _, c := range customers {
		counts[c.Year]++
		s := sums[c.Year]
		for i := range s {
			s[i] += c.Accepted[i]
		}
		sums[c.Year] = s
	}

	rates := make(map[int][domain.CampaignCount]float64, len(counts))
	for year, total := range counts {
		var r [domain.CampaignCount]float64
		for i, sum := range sums[year] {
			r[i] = float64(sum) / float64(total)
		}
		rates[year] = r
	}
	return rates
}

// envelopeFor derives a campaign's synthetic envelope from its observed
// yearly rates: min is the observed minimum scaled down, max the observed
// maximum scaled up and capped at 0.35, base the observed mean.
func envelopeFor(observed map[int][domain.CampaignCount]float64, campaignIdx int) envelope {
	if len(observed) == 0 {
		return envelope{min: fallbackMin, max: fallbackMax, base: fallbackBase}
	}

	years := make([]int, 0, len(observed))
	for y := range observed {
		years = append(years, y)
	}
	sort.Ints(years)

	min := math.Inf(1)
	max := math.Inf(-1)
	sum := 0.0
	for _, y := range years {
		r := observed[y][campaignIdx]
		min = math.Min(min, r)
		max = math.Max(max, r)
		sum += r
	}

	return envelope{
		min:  min * 0.9,
		max:  math.Min(max*1.1, 0.35),
		base: sum / float64(len(years)),
	}
}

// syntheticRate fabricates a response rate for a year absent from the data,
// following the campaign's heuristic curve, clamped to the envelope.
func syntheticRate(campaign domain.Campaign, year int, env envelope) float64 {
	t := float64(year - trendStart)

	var v float64
	switch campaign {
	case domain.CampaignSpring:
		// Growth ramp, steeper after 2021.
		if year < 2021 {
			v = env.min + t*(env.base-env.min)/3
		} else {
			v = env.base + float64(year-2021)*(env.max-env.base)/4
		}
	case domain.CampaignSummer:
		// Seasonal oscillation around the base.
		v = env.base + 0.5*math.Sin((t/2)*math.Pi)*(env.max-env.min)/3
	case domain.CampaignAutumn:
		// Steady increase across the window.
		v = env.min + (t/5)*(env.max-env.min)*0.8
	case domain.CampaignWinter:
		// Rise, dip, then recovery.
		switch {
		case year < 2021:
			v = env.min + t*(env.max-env.min)/2
		case year < 2023:
			v = env.max - float64(year-2021)*(env.max-env.min)/3
		default:
			v = env.min + float64(year-2023)*(env.base-env.min)/2
		}
	default:
		v = env.base
	}

	return math.Max(env.min, math.Min(env.max, v))
}
