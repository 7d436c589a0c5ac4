package domain

import (
	"sort"
	"time"
)

// Customer represents one row of the marketing-campaign dataset after
// normalization. Derived fields (Year, Month, Region, AgeGroup) are filled
// by the loader, never read from the file.
type Customer struct {
	ID        int64   `json:"id" csv:"ID" validate:"required,min=0"`
	Education string  `json:"education" csv:"Education" validate:"required"`
	Income    float64 `json:"income" csv:"Income" validate:"min=0"`
	Age       int     `json:"age" csv:"Age" validate:"min=0"`

	// EnrolledAt is the customer enrollment date after year remapping.
	EnrolledAt time.Time `json:"enrolled_at" csv:"Dt_Customer"`
	Year       int       `json:"year" csv:"Year"`
	Month      time.Month `json:"month" csv:"Month"`

	// Region is synthesized from ID, not ground truth from the file.
	Region   Region   `json:"region" csv:"Region"`
	AgeGroup AgeGroup `json:"age_group" csv:"AgeGroup"`

	// Response is the overall campaign response indicator (0 or 1).
	Response int `json:"response" csv:"Response" validate:"min=0,max=1"`

	// Accepted holds the per-campaign acceptance indicators keyed by the
	// fixed campaign order of Campaigns().
	Accepted [CampaignCount]int `json:"accepted"`
}

// AcceptedCampaign reports whether the customer accepted the given campaign.
func (c Customer) AcceptedCampaign(campaign Campaign) bool {
	idx := campaign.Index()
	if idx < 0 {
		return false
	}
	return c.Accepted[idx] == 1
}

// MonthName returns the three-letter upper-case month label used across
// the dashboard (JAN..DEC).
func (c Customer) MonthName() string {
	return MonthName(c.Month)
}

// MonthName maps a month to its dashboard display label.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[int(m)-1]
}

// MonthNames returns the twelve display labels in calendar order.
func MonthNames() []string {
	out := make([]string, len(monthNames))
	copy(out, monthNames[:])
	return out
}

var monthNames = [...]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// Region is the synthetic four-way categorical field derived from the
// customer ID. It exists only to add interactivity to the dashboard.
type Region string

const (
	RegionNorth Region = "North"
	RegionSouth Region = "South"
	RegionEast  Region = "East"
	RegionWest  Region = "West"
)

// Regions returns all regions in the fixed assignment order. The order
// matters: RegionForID indexes into it.
func Regions() []Region {
	return []Region{RegionNorth, RegionSouth, RegionEast, RegionWest}
}

// RegionForID derives the synthetic region for a customer ID.
func RegionForID(id int64) Region {
	regions := Regions()
	idx := id % int64(len(regions))
	if idx < 0 {
		idx += int64(len(regions))
	}
	return regions[idx]
}

// AgeGroup buckets customer ages for the age-group visualizations.
type AgeGroup string

const (
	AgeGroup20to34 AgeGroup = "20-34"
	AgeGroup35to49 AgeGroup = "35-49"
	AgeGroup50to64 AgeGroup = "50-64"
	AgeGroup65Plus AgeGroup = "65+"

	// AgeGroupNone marks ages outside the bucketed range; such rows are
	// excluded from age-group aggregations.
	AgeGroupNone AgeGroup = ""
)

// AgeGroups returns the buckets in ascending age order.
func AgeGroups() []AgeGroup {
	return []AgeGroup{AgeGroup20to34, AgeGroup35to49, AgeGroup50to64, AgeGroup65Plus}
}

// AgeGroupFor buckets an age. Bounds follow the dashboard convention of
// half-open intervals [20,35), [35,50), [50,65), [65,90).
func AgeGroupFor(age int) AgeGroup {
	switch {
	case age >= 20 && age < 35:
		return AgeGroup20to34
	case age >= 35 && age < 50:
		return AgeGroup35to49
	case age >= 50 && age < 65:
		return AgeGroup50to64
	case age >= 65 && age < 90:
		return AgeGroup65Plus
	default:
		return AgeGroupNone
	}
}

// Dataset is the loaded, normalized dataset plus load metadata.
type Dataset struct {
	Customers []Customer `json:"customers"`

	// SourcePath is the file the rows were read from.
	SourcePath string    `json:"source_path"`
	LoadedAt   time.Time `json:"loaded_at"`

	// SkippedRows counts source rows dropped for unparseable fields.
	SkippedRows int `json:"skipped_rows"`
}

// Educations returns the distinct education levels present, sorted.
func (d *Dataset) Educations() []string {
	seen := make(map[string]struct{})
	for _, c := range d.Customers {
		seen[c.Education] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Years returns the distinct remapped years present, ascending.
func (d *Dataset) Years() []int {
	seen := make(map[int]struct{})
	for _, c := range d.Customers {
		seen[c.Year] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for y := range seen {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}
