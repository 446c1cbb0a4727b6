package analysis

import (
	"fmt"
	"time"

	"hermannm.dev/enumnames"
)

// Calendar period that observations are bucketed into when totalling.
type DateInterval int8

const (
	DateIntervalYear DateInterval = iota + 1
	DateIntervalQuarter
	DateIntervalMonth
	DateIntervalWeek
	DateIntervalDay
)

var dateIntervalMap = enumnames.NewMap(map[DateInterval]string{
	DateIntervalYear:    "YEAR",
	DateIntervalQuarter: "QUARTER",
	DateIntervalMonth:   "MONTH",
	DateIntervalWeek:    "WEEK",
	DateIntervalDay:     "DAY",
})

func (dateInterval DateInterval) IsValid() bool {
	return dateIntervalMap.ContainsEnumValue(dateInterval)
}

func (dateInterval DateInterval) String() string {
	return dateIntervalMap.GetNameOrFallback(dateInterval, "INVALID_DATE_INTERVAL")
}

func (dateInterval DateInterval) MarshalJSON() ([]byte, error) {
	return dateIntervalMap.MarshalToNameJSON(dateInterval)
}

func (dateInterval *DateInterval) UnmarshalJSON(bytes []byte) error {
	return dateIntervalMap.UnmarshalFromNameJSON(bytes, dateInterval)
}

// Returns the first day of the period containing date, and the period's label. Weeks are ISO
// weeks, starting on Monday.
func (dateInterval DateInterval) bucket(date time.Time) (start time.Time, label string) {
	year, month, day := date.Date()

	switch dateInterval {
	case DateIntervalYear:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), fmt.Sprintf("%04d", year)
	case DateIntervalQuarter:
		quarter := (int(month)-1)/3 + 1
		start = time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		return start, fmt.Sprintf("%04d-Q%d", year, quarter)
	case DateIntervalMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), fmt.Sprintf("%04d-%02d", year, month)
	case DateIntervalWeek:
		daysSinceMonday := (int(date.Weekday()) + 6) % 7
		start = time.Date(year, month, day-daysSinceMonday, 0, 0, 0, 0, time.UTC)
		isoYear, isoWeek := date.ISOWeek()
		return start, fmt.Sprintf("%04d-W%02d", isoYear, isoWeek)
	default:
		start = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		return start, start.Format("2006-01-02")
	}
}
