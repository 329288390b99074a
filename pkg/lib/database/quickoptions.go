package database

import (
	"time"

	"github.com/Ketchio-dev/note-web-sub000/core/domain"
	"github.com/Ketchio-dev/note-web-sub000/util/timeutil"
)

// QuickOption names a relative date window picked in the filter controls.
// A filter carrying one is expanded to absolute bounds at compile time, so
// "today" keeps meaning today on every recomputation.
type QuickOption string

const (
	QuickOptionNone         QuickOption = ""
	QuickOptionYesterday    QuickOption = "yesterday"
	QuickOptionToday        QuickOption = "today"
	QuickOptionTomorrow     QuickOption = "tomorrow"
	QuickOptionLastWeek     QuickOption = "last_week"
	QuickOptionCurrentWeek  QuickOption = "current_week"
	QuickOptionNextWeek     QuickOption = "next_week"
	QuickOptionLastMonth    QuickOption = "last_month"
	QuickOptionCurrentMonth QuickOption = "current_month"
	QuickOptionNextMonth    QuickOption = "next_month"
	QuickOptionDaysAgo      QuickOption = "number_of_days_ago"
	QuickOptionDaysFromNow  QuickOption = "number_of_days_from_now"
	QuickOptionExactDate    QuickOption = "exact_date"
)

// transformQuickOptions rewrites quick-option date filters into absolute
// ones. "equals <window>" becomes an on_or_after/on_or_before pair; the
// bound operators clamp to the matching edge of the window.
func transformQuickOptions(filters []ViewFilter, sch *Schema, now time.Time, loc *time.Location) []ViewFilter {
	res := make([]ViewFilter, 0, len(filters))
	for _, f := range filters {
		res = append(res, expandQuickOption(f, sch, now, loc)...)
	}
	return res
}

func expandQuickOption(f ViewFilter, sch *Schema, now time.Time, loc *time.Location) []ViewFilter {
	if f.QuickOption == QuickOptionNone {
		return []ViewFilter{f}
	}
	if prop := sch.PropertyByID(f.PropertyID); prop == nil || !prop.Type.IsDateLike() {
		return []ViewFilter{f}
	}
	d1, d2 := quickOptionRange(f, now, loc)
	f.QuickOption = QuickOptionNone

	switch f.Operator {
	case OperatorEquals:
		lower := f
		lower.Operator = OperatorOnOrAfter
		lower.Value = domain.Int64(d1)
		upper := f
		upper.Operator = OperatorOnOrBefore
		upper.Value = domain.Int64(d2)
		return []ViewFilter{lower, upper}
	case OperatorBefore:
		f.Value = domain.Int64(d1)
		return []ViewFilter{f}
	case OperatorOnOrBefore:
		f.Value = domain.Int64(d2)
		return []ViewFilter{f}
	case OperatorAfter:
		f.Value = domain.Int64(d2)
		return []ViewFilter{f}
	case OperatorOnOrAfter:
		f.Value = domain.Int64(d1)
		return []ViewFilter{f}
	default:
		return []ViewFilter{f}
	}
}

func quickOptionRange(f ViewFilter, now time.Time, loc *time.Location) (int64, int64) {
	var d1, d2 time.Time
	calendar := timeutil.NewCalendar(now, loc)
	switch f.QuickOption {
	case QuickOptionYesterday:
		d1 = calendar.DayNumStart(-1)
		d2 = calendar.DayNumEnd(-1)
	case QuickOptionToday:
		d1 = calendar.DayNumStart(0)
		d2 = calendar.DayNumEnd(0)
	case QuickOptionTomorrow:
		d1 = calendar.DayNumStart(1)
		d2 = calendar.DayNumEnd(1)
	case QuickOptionLastWeek:
		d1 = calendar.WeekNumStart(-1)
		d2 = calendar.WeekNumEnd(-1)
	case QuickOptionCurrentWeek:
		d1 = calendar.WeekNumStart(0)
		d2 = calendar.WeekNumEnd(0)
	case QuickOptionNextWeek:
		d1 = calendar.WeekNumStart(1)
		d2 = calendar.WeekNumEnd(1)
	case QuickOptionLastMonth:
		d1 = calendar.MonthNumStart(-1)
		d2 = calendar.MonthNumEnd(-1)
	case QuickOptionCurrentMonth:
		d1 = calendar.MonthNumStart(0)
		d2 = calendar.MonthNumEnd(0)
	case QuickOptionNextMonth:
		d1 = calendar.MonthNumStart(1)
		d2 = calendar.MonthNumEnd(1)
	case QuickOptionDaysAgo:
		daysCnt, _ := f.Value.CoerceFloat()
		d1 = calendar.DayNumStart(-int(daysCnt))
		d2 = calendar.DayNumEnd(-1)
	case QuickOptionDaysFromNow:
		daysCnt, _ := f.Value.CoerceFloat()
		d1 = calendar.DayNumStart(0)
		d2 = calendar.DayNumEnd(int(daysCnt))
	case QuickOptionExactDate:
		ts, ok := f.Value.CoerceFloat()
		if !ok {
			return 0, 0
		}
		exact := timeutil.NewCalendar(time.Unix(int64(ts), 0), loc)
		d1 = exact.DayNumStart(0)
		d2 = exact.DayNumEnd(0)
	default:
		d1 = calendar.DayNumStart(0)
		d2 = calendar.DayNumEnd(0)
	}
	return d1.Unix(), d2.Unix()
}
