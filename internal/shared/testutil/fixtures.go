// Package testutil provides shared test fixtures and logging helpers.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// SampleCampaignCSV is a four-row campaign dataset covering every
// education level, all four campaigns, and source years 2012-2014 (which
// the loader remaps to 2019-2021). IDs 1-4 map to the regions
// South/East/West/North.
const SampleCampaignCSV = `ID,Education,Income,Dt_Customer,Age,Response,AcceptedCmp1,AcceptedCmp2,AcceptedCmp3,AcceptedCmp4
1,Graduation,52000,2012-03-15,45,1,1,0,0,0
2,PhD,71000,2013-07-04,38,0,0,1,0,0
3,Master,64000,2014-11-20,61,0,0,0,1,1
4,Basic,23000,2012-01-02,70,1,0,0,0,0
`

// WriteSampleDataset writes the sample dataset into a temp directory and
// returns the CSV path.
func WriteSampleDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marketing_campaign.csv")
	if err := os.WriteFile(path, []byte(SampleCampaignCSV), 0644); err != nil {
		t.Fatalf("writing sample dataset: %v", err)
	}
	return path
}

// DiscardLogger returns a logger that swallows all output.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
