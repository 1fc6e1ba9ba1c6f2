package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// Day identifies one local date in a reference timezone. Values are comparable
// with == and ordered with Compare. The zero value is 1970-01-01.
type Day struct {
	ordinal int32
}

func FromTime(value time.Time, location *time.Location) Day {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return FromDate(year, month, day)
}

func FromDate(year int, month time.Month, day int) Day {
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Day{ordinal: int32(midnight.Unix() / secondsPerDay)}
}

const secondsPerDay = 24 * 60 * 60

func ParseDay(raw string) (Day, error) {
	parsed, err := time.ParseInLocation(dayLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", raw, err)
	}
	return FromDate(parsed.Date()), nil
}

func MustParseDay(raw string) Day {
	day, err := ParseDay(raw)
	if err != nil {
		panic(err)
	}
	return day
}

func (day Day) utcMidnight() time.Time {
	return time.Unix(int64(day.ordinal)*secondsPerDay, 0).UTC()
}

// StartIn returns local midnight of the day in location.
func (day Day) StartIn(location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, dayOfMonth := day.utcMidnight().Date()
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, location)
}

func (day Day) AddDays(count int) Day {
	return Day{ordinal: day.ordinal + int32(count)}
}

// DaysUntil returns the signed number of days from day to other.
func (day Day) DaysUntil(other Day) int {
	return int(other.ordinal - day.ordinal)
}

func (day Day) Compare(other Day) int {
	switch {
	case day.ordinal < other.ordinal:
		return -1
	case day.ordinal > other.ordinal:
		return 1
	default:
		return 0
	}
}

func (day Day) Before(other Day) bool {
	return day.ordinal < other.ordinal
}

func (day Day) After(other Day) bool {
	return day.ordinal > other.ordinal
}

// Within reports whether day lies in the inclusive range [from, to].
func (day Day) Within(from Day, to Day) bool {
	return day.ordinal >= from.ordinal && day.ordinal <= to.ordinal
}

func (day Day) String() string {
	return day.utcMidnight().Format(dayLayout)
}

func (day Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(day.String())
}

func (day *Day) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDay(raw)
	if err != nil {
		return err
	}
	*day = parsed
	return nil
}

func (day Day) Value() (driver.Value, error) {
	return day.String(), nil
}

func (day *Day) Scan(source any) error {
	switch value := source.(type) {
	case string:
		return day.scanText(value)
	case []byte:
		return day.scanText(string(value))
	case time.Time:
		*day = FromDate(value.Date())
		return nil
	case nil:
		return fmt.Errorf("scan day: unexpected NULL")
	default:
		return fmt.Errorf("scan day: unsupported type %T", source)
	}
}

func (day *Day) scanText(raw string) error {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(dayLayout) {
		raw = raw[:len(dayLayout)]
	}
	parsed, err := ParseDay(raw)
	if err != nil {
		return err
	}
	*day = parsed
	return nil
}

func (Day) GormDataType() string {
	return "text"
}
