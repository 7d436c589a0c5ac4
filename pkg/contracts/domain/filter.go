package domain

// AllRegions is the region filter value that disables region filtering.
const AllRegions = "All Regions"

// Filter carries the two dashboard sidebar controls. The zero value selects
// everything.
type Filter struct {
	// Educations is the education-level multiselect. Empty means all levels.
	Educations []string `json:"educations,omitempty"`

	// Region is the single-select region. Empty or AllRegions means all.
	Region string `json:"region,omitempty"`
}

// IsZero reports whether the filter selects the whole dataset.
func (f Filter) IsZero() bool {
	return len(f.Educations) == 0 && !f.HasRegion()
}

// HasRegion reports whether a specific region is selected.
func (f Filter) HasRegion() bool {
	return f.Region != "" && f.Region != AllRegions
}

// Matches reports whether a customer row passes the filter.
func (f Filter) Matches(c Customer) bool {
	if len(f.Educations) > 0 {
		found := false
		for _, e := range f.Educations {
			if c.Education == e {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.HasRegion() && string(c.Region) != f.Region {
		return false
	}
	return true
}

// Apply returns the customers passing the filter, preserving order.
func (f Filter) Apply(customers []Customer) []Customer {
	if f.IsZero() {
		return customers
	}
	out := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}
