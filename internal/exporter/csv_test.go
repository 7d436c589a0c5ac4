package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignpulse/pkg/contracts/domain"
)

func exportCustomer(id int64) domain.Customer {
	return domain.Customer{
		ID:         id,
		Education:  "Graduation",
		Income:     52000,
		Age:        45,
		AgeGroup:   domain.AgeGroup35to49,
		Region:     domain.RegionForID(id),
		EnrolledAt: time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		Year:       2021,
		Month:      time.March,
		Response:   1,
		Accepted:   [domain.CampaignCount]int{1, 0, 0, 0},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	customers := []domain.Customer{exportCustomer(1), exportCustomer(2)}

	require.NoError(t, NewCSVWriter(nil).Write(&buf, customers, WriteOptions{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, CustomerHeader(), records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "Graduation", records[1][1])
	assert.Equal(t, "52000", records[1][2])
	assert.Equal(t, "2021-03-15", records[1][6])
	assert.Equal(t, "MAR", records[1][8])
	// Spring acceptance sits right after the fixed columns.
	assert.Equal(t, "1", records[1][10])
	assert.Equal(t, "0", records[1][11])
}

func TestCSVWriter_Write_BOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(nil).Write(&buf, nil, WriteOptions{BOMPrefix: true}))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, buf.String(), "ID,Education")
}

func TestCSVWriter_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "rows.csv")
	customers := []domain.Customer{exportCustomer(7)}

	require.NoError(t, NewCSVWriter(nil).WriteFile(path, customers, WriteOptions{BOMPrefix: true}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}))
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(string(content)), "\n")+1)
}

func TestCustomerHeader_CampaignColumns(t *testing.T) {
	header := CustomerHeader()
	require.Len(t, header, 10+domain.CampaignCount)
	assert.Equal(t, "Spring Wine Festival", header[10])
	assert.Equal(t, "Winter Seafood Discount", header[13])
}
