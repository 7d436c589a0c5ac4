package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"campaignpulse/pkg/contracts/domain"
)

func customerEnrolled(id int64, date time.Time) domain.Customer {
	return domain.Customer{ID: id, EnrolledAt: date}
}

func TestNormalize_YearMapping(t *testing.T) {
	customers := []domain.Customer{
		customerEnrolled(1, time.Date(2012, 6, 1, 0, 0, 0, 0, time.UTC)),
		customerEnrolled(2, time.Date(2013, 6, 1, 0, 0, 0, 0, time.UTC)),
		customerEnrolled(3, time.Date(2014, 6, 1, 0, 0, 0, 0, time.UTC)),
	}

	normalize(customers)

	assert.Equal(t, 2019, customers[0].Year)
	assert.Equal(t, 2020, customers[1].Year)
	assert.Equal(t, 2021, customers[2].Year)
	for _, c := range customers {
		assert.Equal(t, time.June, c.Month)
		assert.Equal(t, 1, c.EnrolledAt.Day())
	}
}

func TestNormalize_YearMappingWrapsAroundWindow(t *testing.T) {
	// Seven distinct source years fold back onto the start of the window.
	customers := make([]domain.Customer, 0, 7)
	for y := 2010; y <= 2016; y++ {
		customers = append(customers, customerEnrolled(int64(y), time.Date(y, 1, 10, 0, 0, 0, 0, time.UTC)))
	}

	normalize(customers)

	wantYears := []int{2019, 2020, 2021, 2022, 2023, 2019, 2020}
	for i, c := range customers {
		assert.Equal(t, wantYears[i], c.Year, "source year %d", 2010+i)
	}
}

func TestNormalize_LeapDayClamps(t *testing.T) {
	// 2012 is the only source year, so it maps to 2019 which is not a leap
	// year; Feb 29 becomes Feb 28.
	customers := []domain.Customer{
		customerEnrolled(1, time.Date(2012, 2, 29, 0, 0, 0, 0, time.UTC)),
	}

	normalize(customers)

	c := customers[0]
	assert.Equal(t, 2019, c.Year)
	assert.Equal(t, time.February, c.Month)
	assert.Equal(t, 28, c.EnrolledAt.Day())
}

func TestRemapDate_KeepsMonthAndDay(t *testing.T) {
	d := time.Date(2014, 11, 20, 0, 0, 0, 0, time.UTC)
	got := remapDate(d, 2021)
	assert.Equal(t, time.Date(2021, 11, 20, 0, 0, 0, 0, time.UTC), got)
}

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2019, time.February, 28},
		{2020, time.February, 29},
		{2021, time.April, 30},
		{2021, time.December, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lastDayOfMonth(tt.year, tt.month))
	}
}

func TestNormalize_MonthLabels(t *testing.T) {
	customers := []domain.Customer{
		customerEnrolled(1, time.Date(2012, 1, 5, 0, 0, 0, 0, time.UTC)),
		customerEnrolled(2, time.Date(2012, 12, 5, 0, 0, 0, 0, time.UTC)),
	}

	normalize(customers)

	assert.Equal(t, "JAN", customers[0].MonthName())
	assert.Equal(t, "DEC", customers[1].MonthName())
}
