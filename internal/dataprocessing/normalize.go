package dataprocessing

import (
	"sort"
	"time"

	"campaignpulse/pkg/contracts/domain"
)

const (
	// remapBaseYear is the first year of the dashboard window.
	remapBaseYear = 2019
	// remapSpan is the number of years source years are folded onto.
	remapSpan = 5
)

// normalize fills the derived fields of every customer in place: the
// enrollment year is remapped onto the dashboard window and Year/Month are
// recomputed from the remapped date.
func normalize(customers []domain.Customer) {
	mapping := yearMapping(customers)
	for i := range customers {
		c := &customers[i]
		target, ok := mapping[c.EnrolledAt.Year()]
		if ok {
			c.EnrolledAt = remapDate(c.EnrolledAt, target)
		}
		c.Year = c.EnrolledAt.Year()
		c.Month = c.EnrolledAt.Month()
	}
}

// yearMapping builds the source-year → window-year table: distinct source
// years sorted ascending, index i mapping to remapBaseYear + (i % remapSpan).
func yearMapping(customers []domain.Customer) map[int]int {
	seen := make(map[int]struct{})
	for _, c := range customers {
		seen[c.EnrolledAt.Year()] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)

	mapping := make(map[int]int, len(years))
	for i, y := range years {
		mapping[y] = remapBaseYear + (i % remapSpan)
	}
	return mapping
}

// remapDate moves a date to the target year, keeping month and day. Feb 29
// in a non-leap target year becomes Feb 28; any other day past the end of
// the target month clamps to the month's last day.
func remapDate(d time.Time, year int) time.Time {
	month := d.Month()
	day := d.Day()

	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, d.Location())
}

// lastDayOfMonth returns the number of days in the given month.
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
