package dataprocessing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"campaignpulse/internal/errors"
	"campaignpulse/pkg/contracts/domain"
)

// dateLayouts are the accepted Dt_Customer formats, tried in order. The
// first layout that parses a row is locked in for the rest of the file.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"2/1/2006",
	"01/02/2006",
}

// requiredColumns must all resolve in the header, except Age which may be
// substituted by Year_Birth.
var requiredColumns = []string{
	"ID",
	"Education",
	"Income",
	"Dt_Customer",
	"Response",
	"AcceptedCmp1",
	"AcceptedCmp2",
	"AcceptedCmp3",
	"AcceptedCmp4",
}

// Loader reads and normalizes the marketing-campaign CSV.
type Loader struct {
	logger *slog.Logger

	// now is injected for tests; the Year_Birth fallback depends on it.
	now func() time.Time
}

// NewLoader creates a Loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger: logger,
		now:    time.Now,
	}
}

// Load reads the CSV at path, normalizes every row and returns the dataset.
// Rows with an unparseable ID, date or indicator are skipped and counted;
// a file that yields zero usable rows is an error.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	start := time.Now()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrDatasetNotFound, path)
		}
		return nil, errors.NewDatasetError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	dataset, err := l.parse(ctx, file, path)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", path),
		slog.Int("rows", len(dataset.Customers)),
		slog.Int("skipped_rows", dataset.SkippedRows),
		slog.Duration("duration", time.Since(start)))

	return dataset, nil
}

// parse reads CSV rows from r and builds the normalized dataset.
func (l *Loader) parse(ctx context.Context, r io.Reader, path string) (*domain.Dataset, error) {
	br := bufio.NewReader(r)
	if err := stripBOM(br); err != nil {
		return nil, errors.NewParsingError("failed to read dataset header", err)
	}

	headerLine, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.NewParsingError("failed to read dataset header", err)
	}
	if strings.TrimSpace(headerLine) == "" {
		return nil, fmt.Errorf("%w: %s", errors.ErrDatasetEmpty, path)
	}

	delimiter := detectDelimiter(headerLine)

	reader := csv.NewReader(io.MultiReader(strings.NewReader(headerLine), br))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewParsingError("failed to parse dataset header", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	currentYear := l.now().Year()

	var (
		customers []domain.Customer
		skipped   int
		layout    string // locked after the first successful date parse
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed line is a skipped row, not a failed load.
			skipped++
			continue
		}

		customer, rowLayout, ok := parseRow(record, cols, layout, currentYear)
		if !ok {
			skipped++
			continue
		}
		if layout == "" {
			layout = rowLayout
		}
		customers = append(customers, customer)
	}

	if len(customers) == 0 {
		return nil, fmt.Errorf("%w: %s (%d rows skipped)", errors.ErrDatasetEmpty, path, skipped)
	}

	if skipped > 0 {
		l.logger.WarnContext(ctx, "skipped unparseable dataset rows",
			slog.String("path", path),
			slog.Int("skipped_rows", skipped))
	}

	normalize(customers)

	return &domain.Dataset{
		Customers:   customers,
		SourcePath:  path,
		LoadedAt:    time.Now(),
		SkippedRows: skipped,
	}, nil
}

// columnSet holds the resolved column indexes. ageIdx and birthIdx are -1
// when the column is absent; at least one is always present.
type columnSet struct {
	id        int
	education int
	income    int
	date      int
	response  int
	accepted  [domain.CampaignCount]int
	ageIdx    int
	birthIdx  int
}

// resolveColumns maps required columns to header positions, matching exact
// names first and case-insensitive names as a fallback.
func resolveColumns(header []string) (*columnSet, error) {
	index := func(name string) int {
		for i, h := range header {
			if strings.TrimSpace(h) == name {
				return i
			}
		}
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	var missing []string
	resolved := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		idx := index(name)
		if idx < 0 {
			missing = append(missing, name)
			continue
		}
		resolved[name] = idx
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrMissingColumn, strings.Join(missing, ", "))
	}

	ageIdx := index("Age")
	birthIdx := index("Year_Birth")
	if ageIdx < 0 && birthIdx < 0 {
		return nil, fmt.Errorf("%w: Age or Year_Birth", errors.ErrMissingColumn)
	}

	cols := &columnSet{
		id:        resolved["ID"],
		education: resolved["Education"],
		income:    resolved["Income"],
		date:      resolved["Dt_Customer"],
		response:  resolved["Response"],
		ageIdx:    ageIdx,
		birthIdx:  birthIdx,
	}
	for i, name := range domain.CampaignColumns() {
		cols.accepted[i] = resolved[name]
	}
	return cols, nil
}

// parseRow converts one CSV record into a Customer. The returned layout is
// the date layout that parsed the row; callers lock it in for the file.
func parseRow(record []string, cols *columnSet, layout string, currentYear int) (domain.Customer, string, bool) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	id, err := strconv.ParseInt(field(cols.id), 10, 64)
	if err != nil {
		return domain.Customer{}, "", false
	}

	enrolledAt, rowLayout, err := parseDate(field(cols.date), layout)
	if err != nil {
		return domain.Customer{}, "", false
	}

	response, err := parseIndicator(field(cols.response))
	if err != nil {
		return domain.Customer{}, "", false
	}

	var accepted [domain.CampaignCount]int
	for i, idx := range cols.accepted {
		v, err := parseIndicator(field(idx))
		if err != nil {
			return domain.Customer{}, "", false
		}
		accepted[i] = v
	}

	// Income may be empty; it defaults to zero rather than skipping the row.
	income := 0.0
	if raw := field(cols.income); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			income = v
		}
	}

	age := 0
	if cols.ageIdx >= 0 {
		if v, err := strconv.Atoi(field(cols.ageIdx)); err == nil {
			age = v
		}
	}
	if age == 0 && cols.birthIdx >= 0 {
		if birth, err := strconv.Atoi(field(cols.birthIdx)); err == nil && birth > 0 {
			age = currentYear - birth
		}
	}

	return domain.Customer{
		ID:         id,
		Education:  field(cols.education),
		Income:     income,
		Age:        age,
		EnrolledAt: enrolledAt,
		Region:     domain.RegionForID(id),
		AgeGroup:   domain.AgeGroupFor(age),
		Response:   response,
		Accepted:   accepted,
	}, rowLayout, true
}

// parseDate parses a Dt_Customer value. When layout is already locked only
// that layout is tried; otherwise the candidates are tried in order.
func parseDate(value, layout string) (time.Time, string, error) {
	if value == "" {
		return time.Time{}, "", fmt.Errorf("empty date")
	}
	if layout != "" {
		t, err := time.Parse(layout, value)
		return t, layout, err
	}
	for _, candidate := range dateLayouts {
		if t, err := time.Parse(candidate, value); err == nil {
			return t, candidate, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("unrecognized date %q", value)
}

// parseIndicator parses a 0/1 column.
func parseIndicator(value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if v != 0 && v != 1 {
		return 0, fmt.Errorf("indicator out of range: %d", v)
	}
	return v, nil
}

// detectDelimiter inspects the header line and picks whichever of semicolon,
// tab or comma occurs most often. Comma wins ties.
func detectDelimiter(headerLine string) rune {
	best := ','
	bestCount := strings.Count(headerLine, ",")
	for _, candidate := range []rune{';', '\t'} {
		if count := strings.Count(headerLine, string(candidate)); count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}

// stripBOM consumes a leading UTF-8 byte order mark if present.
func stripBOM(br *bufio.Reader) error {
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(len(bom))
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	if bytes.Equal(peeked, bom) {
		if _, err := br.Discard(len(bom)); err != nil {
			return err
		}
	}
	return nil
}
