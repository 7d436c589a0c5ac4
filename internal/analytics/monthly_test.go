package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignpulse/pkg/contracts/domain"
)

func TestMonthlyPerformance(t *testing.T) {
	a := NewAnalyzer(nil)
	customers := []domain.Customer{
		row(1, "PhD", 0, 40, 2021, time.March, 0, [4]int{1, 0, 0, 0}),
		row(2, "PhD", 0, 40, 2021, time.March, 0, [4]int{1, 0, 0, 0}),
		row(3, "PhD", 0, 40, 2021, time.July, 0, [4]int{1, 0, 0, 0}),
		row(4, "PhD", 0, 40, 2021, time.July, 0, [4]int{0, 0, 0, 0}),
	}

	monthly := a.MonthlyPerformance(customers)
	assert.Equal(t, []string{"MAR", "JUL"}, monthly.Months)
	require.Len(t, monthly.Series, domain.CampaignCount)

	spring := monthly.Series[0]
	require.Len(t, spring.Rates, 2)
	assert.InDelta(t, 100.0, spring.Rates[0], 1e-9)
	assert.InDelta(t, 50.0, spring.Rates[1], 1e-9)

	require.Len(t, monthly.BestMonths, domain.CampaignCount)
	assert.Equal(t, domain.CampaignSpring, monthly.BestMonths[0].Campaign)
	assert.Equal(t, "MAR", monthly.BestMonths[0].Month)
	assert.InDelta(t, 100.0, monthly.BestMonths[0].Rate, 1e-9)
}

func TestMonthlyPerformance_TiesKeepEarliestMonth(t *testing.T) {
	a := NewAnalyzer(nil)
	customers := []domain.Customer{
		row(1, "PhD", 0, 40, 2021, time.February, 0, [4]int{0, 1, 0, 0}),
		row(2, "PhD", 0, 40, 2021, time.September, 0, [4]int{0, 1, 0, 0}),
	}

	monthly := a.MonthlyPerformance(customers)
	assert.Equal(t, "FEB", monthly.BestMonths[1].Month)
}

func TestYearComparison_TwoYears(t *testing.T) {
	a := NewAnalyzer(nil)
	customers := []domain.Customer{
		row(1, "PhD", 0, 40, 2021, time.January, 1, [4]int{}),
		row(2, "PhD", 0, 40, 2021, time.January, 0, [4]int{}),
		row(3, "PhD", 0, 40, 2021, time.June, 1, [4]int{}),
		row(4, "PhD", 0, 40, 2022, time.February, 1, [4]int{}),
		// 2020 is dropped: only the latest two years compare.
		row(5, "PhD", 0, 40, 2020, time.March, 1, [4]int{}),
	}

	comparison := a.YearComparison(customers)
	assert.Equal(t, domain.MonthNames(), comparison.Months)
	require.Len(t, comparison.Years, 2)

	first := comparison.Years[0]
	assert.Equal(t, 2023, first.DisplayYear)
	assert.Equal(t, 2021, first.SourceYear)
	assert.Equal(t, "#1f77b4", first.Color)
	// January observed: 1 of 2.
	assert.InDelta(t, 50.0, first.Rates[0], 1e-9)
	// June observed: 1 of 1.
	assert.InDelta(t, 100.0, first.Rates[5], 1e-9)
	// March missing: backfilled with the 2021 average (2 of 3).
	assert.InDelta(t, 200.0/3, first.Rates[2], 1e-9)

	second := comparison.Years[1]
	assert.Equal(t, 2024, second.DisplayYear)
	assert.Equal(t, 2022, second.SourceYear)
	assert.Equal(t, "#ff7f0e", second.Color)
	assert.InDelta(t, 100.0, second.Rates[1], 1e-9)
}

func TestYearComparison_SingleYear(t *testing.T) {
	a := NewAnalyzer(nil)
	customers := []domain.Customer{
		row(1, "PhD", 0, 40, 2021, time.May, 1, [4]int{}),
	}

	// A filter can narrow the dataset to one remapped year; the chart
	// still gets both display years, the dataless one all-zero.
	comparison := a.YearComparison(customers)
	require.Len(t, comparison.Years, 2)

	first := comparison.Years[0]
	assert.Equal(t, 2023, first.DisplayYear)
	assert.Equal(t, 2021, first.SourceYear)
	assert.InDelta(t, 100.0, first.Rates[4], 1e-9)
	// Missing months backfill with the year average.
	assert.InDelta(t, 100.0, first.Rates[0], 1e-9)

	second := comparison.Years[1]
	assert.Equal(t, 2024, second.DisplayYear)
	assert.Zero(t, second.SourceYear)
	assert.Equal(t, "#ff7f0e", second.Color)
	for _, rate := range second.Rates {
		assert.Zero(t, rate)
	}
}

func TestYearComparison_Empty(t *testing.T) {
	comparison := NewAnalyzer(nil).YearComparison(nil)
	assert.Empty(t, comparison.Years)
	assert.Equal(t, domain.MonthNames(), comparison.Months)
}
