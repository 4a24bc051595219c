// Package month содержит календарную арифметику для расчёта срока подписки.
package month

import "time"

// AddMonths прибавляет к дате целое число календарных месяцев с прижатием
// к концу месяца: если в целевом месяце меньше дней, берётся его последний
// день (31 января + 1 месяц = 28/29 февраля, а не 2/3 марта, как у AddDate).
func AddMonths(date time.Time, months int) time.Time {
	year, mon, day := date.Date()
	firstOfTarget := time.Date(year, mon, 1, 0, 0, 0, 0, date.Location()).AddDate(0, months, 0)

	last := lastDay(firstOfTarget.Year(), firstOfTarget.Month())
	if day > last {
		day = last
	}
	hour, minute, sec := date.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		hour, minute, sec, date.Nanosecond(), date.Location())
}

// lastDay возвращает число дней в месяце.
func lastDay(year int, mon time.Month) int {
	return time.Date(year, mon+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
