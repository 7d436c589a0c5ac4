package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// Dataset-specific errors (using errors package for sentinel errors)
var (
	ErrDatasetNotFound   = errors.New("dataset not found")
	ErrDatasetEmpty      = errors.New("dataset contains no usable rows")
	ErrMissingColumn     = errors.New("required column missing")
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrUnknownEducation  = errors.New("unknown education level")
	ErrUnknownRegion     = errors.New("unknown region")
	ErrChartUnknown      = errors.New("unknown chart")
	ErrReloadInProgress  = errors.New("reload already in progress")
	ErrDatasetNotLoaded  = errors.New("dataset not loaded")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// DatasetLoadDetails provides additional context for dataset load errors
type DatasetLoadDetails struct {
	Path        string     `json:"path,omitempty"`
	Rows        int        `json:"rows,omitempty"`
	SkippedRows int        `json:"skipped_rows,omitempty"`
	Column      string     `json:"column,omitempty"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
}

// ProblemDetails implements RFC 7807 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Additional fields for extensibility
	Extensions map[string]interface{} `json:"-"`
}

// Render implements the render.Renderer interface
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

// MarshalJSON custom marshaler to include extensions
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{})

	// Add standard fields
	data["type"] = pd.Type
	data["title"] = pd.Title
	data["status"] = pd.Status

	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}

	// Add extensions
	for k, v := range pd.Extensions {
		data[k] = v
	}

	// Use standard JSON marshaling
	return json.Marshal(data)
}

// NewProblemDetails creates a new RFC 7807 compliant error
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]interface{}),
	}
}

// WithExtension adds an extension field to the problem details
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// NewDatasetNotFoundProblem creates a problem document for a missing dataset
// file, pointing the operator at the expected location.
func NewDatasetNotFoundProblem(path, traceID string) *ProblemDetails {
	problem := NewProblemDetails(
		http.StatusNotFound,
		TypeDatasetNotFound,
		"Dataset Not Found",
		fmt.Sprintf("No dataset file found at %s. Place marketing_campaign.csv in the data directory.", path),
		"/api/dataset",
	)
	if traceID != "" {
		problem.WithExtension("trace_id", traceID)
	}
	problem.WithExtension("path", path)
	return problem
}

// NewDatasetEmptyProblem creates a problem document for a dataset that
// yielded zero usable rows after parsing.
func NewDatasetEmptyProblem(details *DatasetLoadDetails, traceID string) *ProblemDetails {
	problem := NewProblemDetails(
		http.StatusUnprocessableEntity,
		TypeDatasetEmpty,
		"Dataset Empty",
		"The dataset file was read but contained no usable rows.",
		"/api/dataset",
	)
	if traceID != "" {
		problem.WithExtension("trace_id", traceID)
	}
	if details != nil {
		problem.WithExtension("details", details)
	}
	return problem
}

// NewInvalidFilterProblem creates a problem document for filter values not
// present in the loaded dataset.
func NewInvalidFilterProblem(field, value, traceID string) *ProblemDetails {
	problem := NewProblemDetails(
		http.StatusBadRequest,
		TypeValidation,
		"Invalid Filter",
		fmt.Sprintf("Filter %s has no value %q in the current dataset.", field, value),
		"/api/dashboard",
	)
	if traceID != "" {
		problem.WithExtension("trace_id", traceID)
	}
	problem.WithExtension("field", field)
	problem.WithExtension("value", value)
	return problem
}
