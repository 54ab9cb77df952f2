package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearMonthNavigationWrapsYear(t *testing.T) {
	jan := YearMonth{Year: 2026, Month: time.January}
	assert.Equal(t, YearMonth{Year: 2025, Month: time.December}, jan.Prev())

	dec := YearMonth{Year: 2026, Month: time.December}
	assert.Equal(t, YearMonth{Year: 2027, Month: time.January}, dec.Next())

	jun := YearMonth{Year: 2026, Month: time.June}
	assert.Equal(t, YearMonth{Year: 2026, Month: time.May}, jun.Prev())
	assert.Equal(t, YearMonth{Year: 2026, Month: time.July}, jun.Next())
}

func TestMonthGridSeptember2026(t *testing.T) {
	// September 2026 starts on a Tuesday and has 30 days.
	grid := MonthGrid(YearMonth{Year: 2026, Month: time.September})
	require.Len(t, grid, 5)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, grid[0])
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12, 13}, grid[1])
	assert.Equal(t, []int{28, 29, 30, 0, 0, 0, 0}, grid[4])
}

func TestMonthGridFebruaryLeapYear(t *testing.T) {
	// February 2027 starts on a Monday and has 28 days: exactly 4 weeks.
	grid := MonthGrid(YearMonth{Year: 2027, Month: time.February})
	require.Len(t, grid, 4)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, grid[0])
	assert.Equal(t, []int{22, 23, 24, 25, 26, 27, 28}, grid[3])

	// February 2028 is a leap year.
	grid = MonthGrid(YearMonth{Year: 2028, Month: time.February})
	last := grid[len(grid)-1]
	assert.Contains(t, last, 29)
}

func TestMonthGridSundayStart(t *testing.T) {
	// November 2026 starts on a Sunday, so the first week has one day.
	grid := MonthGrid(YearMonth{Year: 2026, Month: time.November})
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 1}, grid[0])
}

func TestCurrentYearMonth(t *testing.T) {
	now := time.Date(2026, time.August, 26, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, YearMonth{Year: 2026, Month: time.August}, CurrentYearMonth(now))
}
