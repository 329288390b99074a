package timeutil

import "time"

// Calendar computes day, week and month windows around a reference time in a
// fixed location. Week windows start on Monday.
type Calendar struct {
	now time.Time
	loc *time.Location
}

func NewCalendar(now time.Time, loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{now: now.In(loc), loc: loc}
}

// DayStart truncates t to midnight in the calendar's location.
func (c Calendar) DayStart(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

func (c Calendar) DayNumStart(dayNum int) time.Time {
	return c.DayStart(c.now.AddDate(0, 0, dayNum))
}

func (c Calendar) DayNumEnd(dayNum int) time.Time {
	return c.DayNumStart(dayNum + 1).Add(-time.Second)
}

func (c Calendar) WeekNumStart(weekNum int) time.Time {
	t := c.DayStart(c.now)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday-1)+weekNum*7)
}

func (c Calendar) WeekNumEnd(weekNum int) time.Time {
	return c.WeekNumStart(weekNum + 1).Add(-time.Second)
}

func (c Calendar) MonthNumStart(monthNum int) time.Time {
	t := c.now
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.loc).AddDate(0, monthNum, 0)
}

func (c Calendar) MonthNumEnd(monthNum int) time.Time {
	return c.MonthNumStart(monthNum + 1).Add(-time.Second)
}

// CutToDay drops the time-of-day component, keeping the calendar date.
func CutToDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
