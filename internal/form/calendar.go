package form

import "time"

// YearMonth addresses one page of the date-picker calendar.
type YearMonth struct {
	Year  int
	Month time.Month
}

// CurrentYearMonth returns the page holding today's date.
func CurrentYearMonth(now time.Time) YearMonth {
	return YearMonth{Year: now.Year(), Month: now.Month()}
}

// Prev returns the previous month, wrapping the year at January.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// Next returns the following month, wrapping the year at December.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Date returns the day's date at midnight UTC.
func (ym YearMonth) Date(day int) time.Time {
	return time.Date(ym.Year, ym.Month, day, 0, 0, 0, 0, time.UTC)
}

// MonthGrid returns the month laid out in Monday-first weeks. Cells outside
// the month hold zero.
func MonthGrid(ym YearMonth) [][]int {
	first := ym.Date(1)
	// Monday-first offset: Sunday counts as the 7th day.
	offset := int(first.Weekday())
	if offset == 0 {
		offset = 7
	}
	offset--

	daysInMonth := ym.Date(1).AddDate(0, 1, -1).Day()

	var grid [][]int
	week := make([]int, 7)
	cell := offset
	for day := 1; day <= daysInMonth; day++ {
		week[cell] = day
		cell++
		if cell == 7 {
			grid = append(grid, week)
			week = make([]int, 7)
			cell = 0
		}
	}
	if cell > 0 {
		grid = append(grid, week)
	}
	return grid
}
