// Package api contains API contract definitions for the CampaignPulse
// dashboard. Version v1 represents the current stable API version.
package api

// FilterRequest represents the sidebar filter parameters accepted by every
// analytics and chart route.
type FilterRequest struct {
	// Educations is the education-level multiselect. Accepted as repeated
	// "education" query parameters or one comma-separated value.
	Educations []string `json:"educations,omitempty" query:"education"`

	// Region is the single-select region. Empty or "All Regions" selects
	// all regions.
	Region string `json:"region,omitempty" query:"region" validate:"omitempty,region"`
}

// ExportRequest represents a request to download the filtered dataset.
type ExportRequest struct {
	FilterRequest
	Format string `json:"format" query:"format" validate:"omitempty,oneof=csv xlsx"`
}
