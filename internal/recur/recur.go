// Package recur evaluates task recurrence rules against calendar dates.
//
// All predicates work on calendar dates (year-month-day in the query
// date's location), never on instants: a task due 23:59 still occurs on
// that whole day. The functions are pure and total; malformed rule data
// degrades to "does not occur" rather than failing.
package recur

import (
	"time"

	"tasklist/internal/model"
)

// SameDay reports calendar-date equality, ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// OccursOn reports whether the task is due on the given calendar date
// according to its recurrence rule. An unknown or empty recurrence type
// behaves like a one-off task.
func OccursOn(t model.Task, date time.Time) bool {
	switch t.Recurrence.Type {
	case model.RecurCustomDates:
		if SameDay(t.Deadline, date) {
			return true
		}
		dateStr := date.Format(model.DateLayout)
		for _, d := range t.Recurrence.CustomDates {
			if d == dateStr {
				return true
			}
		}
		return false
	case model.RecurDailyByWeekday:
		day := model.WeekdayOf(date)
		for _, w := range t.Recurrence.SelectedWeekdays {
			if w == day {
				return true
			}
		}
		return false
	case model.RecurWeekly:
		return date.Weekday() == t.Deadline.Weekday()
	case model.RecurMonthly:
		// Day-of-month equality only: a day-31 anchor never matches
		// February. The overflow policy applies to projection, not
		// membership.
		return date.Day() == t.Deadline.Day()
	case model.RecurYearly:
		return date.Month() == t.Deadline.Month() && date.Day() == t.Deadline.Day()
	default:
		return SameDay(t.Deadline, date)
	}
}

// CalendarVisible reports whether the task belongs in month-grid calendar
// views. Weekday-driven recurrences would mark most cells of every week,
// so they are surfaced in the list view instead; completed tasks are
// hidden as well.
func CalendarVisible(t model.Task) bool {
	if t.Status == model.StatusDone {
		return false
	}
	switch t.Recurrence.Type {
	case model.RecurDailyByWeekday, model.RecurWeekly:
		return false
	}
	return true
}

// NextOccurrence projects the first date strictly after from on which the
// task occurs. Unlike OccursOn, monthly projection honors the overflow
// policy: ClampToLastDay lands on the last day of months shorter than the
// anchor day, SkipMonth passes over them. The second return is false when
// the rule can never fire again (empty weekday set, exhausted custom
// dates, or a one-off whose date is already past).
func NextOccurrence(t model.Task, from time.Time) (time.Time, bool) {
	start := midnight(from).AddDate(0, 0, 1)

	switch t.Recurrence.Type {
	case model.RecurNone, "":
		d := midnight(t.Deadline)
		if d.Before(start) {
			return time.Time{}, false
		}
		return d, true

	case model.RecurCustomDates:
		best, ok := time.Time{}, false
		consider := func(d time.Time) {
			if d.Before(start) {
				return
			}
			if !ok || d.Before(best) {
				best, ok = d, true
			}
		}
		consider(midnight(t.Deadline))
		for _, s := range t.Recurrence.CustomDates {
			if d, err := time.ParseInLocation(model.DateLayout, s, from.Location()); err == nil {
				consider(d)
			}
		}
		return best, ok

	case model.RecurDailyByWeekday:
		if len(t.Recurrence.SelectedWeekdays) == 0 {
			return time.Time{}, false
		}
		for i := 0; i < 7; i++ {
			d := start.AddDate(0, 0, i)
			day := model.WeekdayOf(d)
			for _, w := range t.Recurrence.SelectedWeekdays {
				if w == day {
					return d, true
				}
			}
		}
		return time.Time{}, false

	case model.RecurWeekly:
		d := start
		for d.Weekday() != t.Deadline.Weekday() {
			d = d.AddDate(0, 0, 1)
		}
		return d, true

	case model.RecurMonthly:
		want := t.Deadline.Day()
		y, m, _ := start.Date()
		for i := 0; i < 24; i++ {
			last := daysIn(y, m, from.Location())
			day := want
			if day > last {
				if t.Recurrence.MonthlyOverflow == model.SkipMonth {
					y, m = nextMonth(y, m)
					continue
				}
				day = last
			}
			d := time.Date(y, m, day, 0, 0, 0, 0, from.Location())
			if !d.Before(start) {
				return d, true
			}
			y, m = nextMonth(y, m)
		}
		return time.Time{}, false

	case model.RecurYearly:
		_, wm, wd := t.Deadline.Date()
		for y := start.Year(); y <= start.Year()+8; y++ {
			if wd > daysIn(y, wm, from.Location()) {
				continue // Feb 29 anchor in a common year
			}
			d := time.Date(y, wm, wd, 0, 0, 0, 0, from.Location())
			if !d.Before(start) {
				return d, true
			}
		}
		return time.Time{}, false
	}

	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func nextMonth(y int, m time.Month) (int, time.Month) {
	if m == time.December {
		return y + 1, time.January
	}
	return y, m + 1
}
