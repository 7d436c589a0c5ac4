// Package dataprocessing loads the marketing-campaign dataset and applies
// the fixed normalization pipeline: column resolution, date parsing, year
// remapping onto the dashboard window, region synthesis and age bucketing.
//
// The package has two entry points: Loader reads the canonical CSV into a
// domain.Dataset, and ConvertWorkbook turns an Excel workbook export into
// that canonical CSV for the loader to consume.
package dataprocessing
