// Package calendar maps the simulation's days-played counter onto its
// in-game calendar of four 28-day seasons.
package calendar

import "fmt"

const (
	// DaysPerSeason is the length of every season.
	DaysPerSeason = 28
	// SeasonsPerYear is the number of seasons in a year.
	SeasonsPerYear = 4
	// DaysPerYear is the length of a year.
	DaysPerYear = DaysPerSeason * SeasonsPerYear
)

// Season identifies a quarter of the in-game year.
type Season int

const (
	Spring Season = iota
	Summer
	Fall
	Winter
)

var seasonNames = [SeasonsPerYear]string{"Spring", "Summer", "Fall", "Winter"}

func (s Season) String() string {
	if s < Spring || s > Winter {
		return fmt.Sprintf("Season(%d)", int(s))
	}
	return seasonNames[s]
}

// Weekday is the day of the in-game week. Day one of every season is a Monday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// Date is a position in the in-game calendar. Year and Day are 1-based.
type Date struct {
	Year   int
	Season Season
	Day    int
}

// FromDaysPlayed converts a 1-based days-played counter to a date. Counters
// below one are treated as one.
func FromDaysPlayed(n int64) Date {
	if n < 1 {
		n = 1
	}
	offset := n - 1
	return Date{
		Year:   int(offset/DaysPerYear) + 1,
		Season: Season((offset % DaysPerYear) / DaysPerSeason),
		Day:    int(offset%DaysPerSeason) + 1,
	}
}

// DaysPlayed is the inverse of FromDaysPlayed.
func (d Date) DaysPlayed() int64 {
	return int64(d.Year-1)*DaysPerYear + int64(d.Season)*DaysPerSeason + int64(d.Day)
}

// Weekday returns the day of the week.
func (d Date) Weekday() Weekday {
	return Weekday((d.Day - 1) % 7)
}

// SeasonStart returns the days-played counter of the first day of the season
// containing n.
func SeasonStart(n int64) int64 {
	if n < 1 {
		n = 1
	}
	return ((n-1)/DaysPerSeason)*DaysPerSeason + 1
}

func (d Date) String() string {
	return fmt.Sprintf("%s %d, Year %d", d.Season, d.Day, d.Year)
}
