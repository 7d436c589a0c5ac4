package domain

import (
	"time"
)

// Overview holds the dashboard's key performance indicators computed over
// the filtered rows.
type Overview struct {
	// ResponseRate is the overall response rate in percent.
	ResponseRate float64 `json:"response_rate"`

	// TotalIncome is the summed customer income.
	TotalIncome float64 `json:"total_income"`

	// CustomerCount is the number of rows after filtering.
	CustomerCount int `json:"customer_count"`
}

// CampaignRate is one campaign's response rate in percent, with its fixed
// display color.
type CampaignRate struct {
	Campaign Campaign `json:"campaign"`
	Rate     float64  `json:"rate"`
	Color    string   `json:"color"`
}

// AgeGroupRate is one age group's response rate in percent.
type AgeGroupRate struct {
	Group AgeGroup `json:"group"`
	Rate  float64  `json:"rate"`
}

// TrendPoint is a single year's response rate for one campaign. Synthetic
// marks values fabricated by the trend-filling heuristic rather than
// observed in the data.
type TrendPoint struct {
	Year      int     `json:"year"`
	Rate      float64 `json:"rate"`
	Synthetic bool    `json:"synthetic,omitempty"`
}

// TrendSeries is one campaign's yearly trend across the chart window.
type TrendSeries struct {
	Campaign Campaign     `json:"campaign"`
	Color    string       `json:"color"`
	Points   []TrendPoint `json:"points"`
}

// TrendAnnotation is a fixed callout attached to the trends chart.
type TrendAnnotation struct {
	Campaign Campaign `json:"campaign"`
	Year     int      `json:"year"`
	Label    string   `json:"label"`
}

// YearlyTrends is the 2019-2024 campaign trend block, including synthetic
// years.
type YearlyTrends struct {
	Years       []int             `json:"years"`
	Series      []TrendSeries     `json:"series"`
	Annotations []TrendAnnotation `json:"annotations"`
}

// MonthlySeries is one campaign's response rate per observed month, aligned
// with MonthlyPerformance.Months.
type MonthlySeries struct {
	Campaign Campaign  `json:"campaign"`
	Color    string    `json:"color"`
	Rates    []float64 `json:"rates"`
}

// BestMonth is the month a campaign historically performs best in.
type BestMonth struct {
	Campaign Campaign `json:"campaign"`
	Month    string   `json:"month"`
	Rate     float64  `json:"rate"`
}

// MonthlyPerformance is the monthly campaign performance block plus the
// per-campaign best months derived from it.
type MonthlyPerformance struct {
	// Months holds the display labels of the observed months, calendar
	// order.
	Months     []string        `json:"months"`
	Series     []MonthlySeries `json:"series"`
	BestMonths []BestMonth     `json:"best_months"`
}

// ComparisonYear is one side of the year-over-year comparison. Rates always
// covers all twelve months; months missing from the data carry the year's
// average rate.
type ComparisonYear struct {
	// DisplayYear is the label the year is shown under (2023 or 2024).
	DisplayYear int `json:"display_year"`

	// SourceYear is the remapped dataset year the rates came from.
	SourceYear int `json:"source_year"`

	Color string      `json:"color"`
	Rates [12]float64 `json:"rates"`
}

// YearComparison is the 2023 vs 2024 monthly response-rate block.
type YearComparison struct {
	Months []string         `json:"months"`
	Years  []ComparisonYear `json:"years"`
}

// AgeShare is one age group's share of customers in percent.
type AgeShare struct {
	Group   AgeGroup `json:"group"`
	Count   int      `json:"count"`
	Percent float64  `json:"percent"`
}

// MonthRate is an overall response rate for one display month.
type MonthRate struct {
	Month string  `json:"month"`
	Rate  float64 `json:"rate"`
}

// RegionDetail is the regional analysis shown when a specific region is
// selected.
type RegionDetail struct {
	Region       string  `json:"region"`
	ResponseRate float64 `json:"response_rate"`
	AvgIncome    float64 `json:"avg_income"`

	LatestYear     int     `json:"latest_year"`
	LatestYearRate float64 `json:"latest_year_rate"`

	// Delta is the latest-year rate minus the prior-year rate, nil when the
	// prior year is absent or had a zero rate.
	Delta *float64 `json:"delta,omitempty"`

	Campaigns       []CampaignRate `json:"campaigns"`
	AgeDistribution []AgeShare     `json:"age_distribution"`
	Monthly         []MonthRate    `json:"monthly"`
}

// RegionRate is one region's overall response rate in percent.
type RegionRate struct {
	Region Region  `json:"region"`
	Rate   float64 `json:"rate"`
}

// RegionCampaignMatrix is the campaign-by-region rate grid computed over
// the latest observed year. Rates is region-major: Rates[i][j] is the rate
// for Regions[i] and Campaigns[j].
type RegionCampaignMatrix struct {
	Year      int         `json:"year"`
	Regions   []Region    `json:"regions"`
	Campaigns []Campaign  `json:"campaigns"`
	Rates     [][]float64 `json:"rates"`
}

// RegionComparison is the regional analysis shown when no specific region
// is selected.
type RegionComparison struct {
	Regions []RegionRate         `json:"regions"`
	Matrix  RegionCampaignMatrix `json:"matrix"`
}

// RegionalMode distinguishes the two regional-analysis branches.
type RegionalMode string

const (
	RegionalModeDetail     RegionalMode = "detail"
	RegionalModeComparison RegionalMode = "comparison"
)

// RegionalAnalysis is the region section of the dashboard. Exactly one of
// Detail or Comparison is set, matching Mode.
type RegionalAnalysis struct {
	Mode       RegionalMode      `json:"mode"`
	Detail     *RegionDetail     `json:"detail,omitempty"`
	Comparison *RegionComparison `json:"comparison,omitempty"`
}

// Enhancement is one of the fixed dashboard explainer blocks.
type Enhancement struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Dashboard is the full analytics payload for one filter selection, in the
// fixed section order the page renders.
type Dashboard struct {
	GeneratedAt time.Time `json:"generated_at"`
	Filter      Filter    `json:"filter"`

	Overview   Overview           `json:"overview"`
	Campaigns  []CampaignRate     `json:"campaigns"`
	AgeGroups  []AgeGroupRate     `json:"age_groups"`
	Trends     YearlyTrends       `json:"trends"`
	Monthly    MonthlyPerformance `json:"monthly"`
	Comparison YearComparison     `json:"comparison"`
	Regional   RegionalAnalysis   `json:"regional"`

	Enhancements []Enhancement `json:"enhancements"`
}

// FilterOptions lists the values the sidebar controls may take for the
// current dataset.
type FilterOptions struct {
	Educations []string `json:"educations"`
	Regions    []string `json:"regions"`
}

// DatasetInfo is the dataset metadata exposed by the API.
type DatasetInfo struct {
	Path        string    `json:"path"`
	Rows        int       `json:"rows"`
	SkippedRows int       `json:"skipped_rows"`
	LoadedAt    time.Time `json:"loaded_at"`
	Educations  []string  `json:"educations"`
	Years       []int     `json:"years"`
}
