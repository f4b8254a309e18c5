package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tasklist/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func taskWith(deadline time.Time, rec model.Recurrence) model.Task {
	return model.Task{
		ID:         "t",
		Name:       "x",
		Deadline:   deadline,
		Recurrence: rec,
		Status:     model.StatusPending,
	}
}

func TestOccursOn_None_OnlyDeadlineDate(t *testing.T) {
	task := taskWith(time.Date(2025, time.March, 5, 23, 45, 0, 0, time.UTC),
		model.Recurrence{Type: model.RecurNone})

	assert.True(t, OccursOn(task, date(2025, time.March, 5)))
	assert.False(t, OccursOn(task, date(2025, time.March, 4)))
	assert.False(t, OccursOn(task, date(2025, time.March, 6)))
	assert.False(t, OccursOn(task, date(2026, time.March, 5)))
}

func TestOccursOn_UnknownType_BehavesLikeNone(t *testing.T) {
	task := taskWith(date(2025, time.March, 5), model.Recurrence{Type: "whenever"})

	assert.True(t, OccursOn(task, date(2025, time.March, 5)))
	assert.False(t, OccursOn(task, date(2025, time.March, 12)))
}

func TestOccursOn_DailyByWeekday_MatchesSelectedDaysAnywhere(t *testing.T) {
	task := taskWith(date(2025, time.January, 1), model.Recurrence{
		Type:             model.RecurDailyByWeekday,
		SelectedWeekdays: []model.Weekday{model.Monday, model.Friday},
	})

	assert.True(t, OccursOn(task, date(2025, time.June, 2)))     // a Monday
	assert.True(t, OccursOn(task, date(2027, time.December, 3))) // a Friday, far future
	assert.False(t, OccursOn(task, date(2025, time.June, 3)))    // a Tuesday
	// even the deadline's own date does not match on a wrong weekday
	assert.False(t, OccursOn(task, date(2025, time.January, 1))) // a Wednesday
}

func TestOccursOn_DailyByWeekday_EmptySetNeverOccurs(t *testing.T) {
	task := taskWith(date(2025, time.January, 6), model.Recurrence{
		Type: model.RecurDailyByWeekday,
	})

	for i := 0; i < 14; i++ {
		assert.False(t, OccursOn(task, date(2025, time.January, 1+i)))
	}
}

func TestOccursOn_Weekly_SameWeekdayAsDeadline(t *testing.T) {
	// 2025-03-05 is a Wednesday
	task := taskWith(date(2025, time.March, 5), model.Recurrence{Type: model.RecurWeekly})

	assert.True(t, OccursOn(task, date(2025, time.March, 12)))
	assert.True(t, OccursOn(task, date(2024, time.February, 28))) // earlier Wednesday
	assert.False(t, OccursOn(task, date(2025, time.March, 11)))
}

func TestOccursOn_Monthly_DayOfMonthEquality(t *testing.T) {
	task := taskWith(date(2025, time.January, 31), model.Recurrence{
		Type:            model.RecurMonthly,
		MonthlyOverflow: model.ClampToLastDay,
	})

	assert.True(t, OccursOn(task, date(2025, time.March, 31)))
	assert.True(t, OccursOn(task, date(2025, time.May, 31)))
	// no day 31 in February: the overflow policy does not change membership
	assert.False(t, OccursOn(task, date(2025, time.February, 28)))
	assert.False(t, OccursOn(task, date(2025, time.April, 30)))
}

func TestOccursOn_Yearly_SameMonthAndDay(t *testing.T) {
	task := taskWith(date(2024, time.February, 29), model.Recurrence{Type: model.RecurYearly})

	assert.True(t, OccursOn(task, date(2028, time.February, 29)))
	assert.False(t, OccursOn(task, date(2025, time.February, 28)))
	assert.False(t, OccursOn(task, date(2025, time.March, 29)))
}

func TestOccursOn_CustomDates_ListPlusDeadline(t *testing.T) {
	task := taskWith(date(2025, time.April, 1), model.Recurrence{
		Type:        model.RecurCustomDates,
		CustomDates: []string{"2025-05-10", "2025-07-01"},
	})

	assert.True(t, OccursOn(task, date(2025, time.April, 1))) // deadline's own date
	assert.True(t, OccursOn(task, date(2025, time.May, 10)))
	assert.True(t, OccursOn(task, date(2025, time.July, 1)))
	assert.False(t, OccursOn(task, date(2025, time.June, 10)))
}

func TestSameDay_IgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2025, time.March, 5, 0, 1, 0, 0, time.UTC)
	b := time.Date(2025, time.March, 5, 23, 59, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
}

func TestCalendarVisible_HidesWeekdayDrivenRecurrences(t *testing.T) {
	weekly := taskWith(date(2025, time.March, 5), model.Recurrence{Type: model.RecurWeekly})
	daily := taskWith(date(2025, time.March, 5), model.Recurrence{
		Type:             model.RecurDailyByWeekday,
		SelectedWeekdays: []model.Weekday{model.Wednesday},
	})

	assert.False(t, CalendarVisible(weekly))
	assert.False(t, CalendarVisible(daily))
}

func TestCalendarVisible_ShowsPendingOtherTypes(t *testing.T) {
	for _, typ := range []model.RecurrenceType{
		model.RecurNone, model.RecurMonthly, model.RecurYearly, model.RecurCustomDates,
	} {
		task := taskWith(date(2025, time.March, 5), model.Recurrence{Type: typ})
		assert.True(t, CalendarVisible(task), "type %s", typ)

		task.Status = model.StatusDone
		assert.False(t, CalendarVisible(task), "done task, type %s", typ)
	}
}

func TestNextOccurrence_MonthlyClampToLastDay(t *testing.T) {
	task := taskWith(date(2025, time.January, 31), model.Recurrence{
		Type:            model.RecurMonthly,
		MonthlyOverflow: model.ClampToLastDay,
	})

	next, ok := NextOccurrence(task, date(2025, time.February, 1))
	assert.True(t, ok)
	assert.Equal(t, date(2025, time.February, 28), next)
}

func TestNextOccurrence_MonthlySkipMonth(t *testing.T) {
	task := taskWith(date(2025, time.January, 31), model.Recurrence{
		Type:            model.RecurMonthly,
		MonthlyOverflow: model.SkipMonth,
	})

	next, ok := NextOccurrence(task, date(2025, time.February, 1))
	assert.True(t, ok)
	assert.Equal(t, date(2025, time.March, 31), next)
}

func TestNextOccurrence_Weekly(t *testing.T) {
	// deadline Wednesday; from a Wednesday the next hit is a week out
	task := taskWith(date(2025, time.March, 5), model.Recurrence{Type: model.RecurWeekly})

	next, ok := NextOccurrence(task, date(2025, time.March, 5))
	assert.True(t, ok)
	assert.Equal(t, date(2025, time.March, 12), next)
}

func TestNextOccurrence_DailyByWeekday_EmptySetNeverFires(t *testing.T) {
	task := taskWith(date(2025, time.March, 5), model.Recurrence{Type: model.RecurDailyByWeekday})

	_, ok := NextOccurrence(task, date(2025, time.March, 5))
	assert.False(t, ok)
}

func TestNextOccurrence_CustomDates_Exhausted(t *testing.T) {
	task := taskWith(date(2025, time.January, 1), model.Recurrence{
		Type:        model.RecurCustomDates,
		CustomDates: []string{"2025-02-01"},
	})

	next, ok := NextOccurrence(task, date(2025, time.January, 15))
	assert.True(t, ok)
	assert.Equal(t, date(2025, time.February, 1), next)

	_, ok = NextOccurrence(task, date(2025, time.March, 1))
	assert.False(t, ok)
}

func TestNextOccurrence_OneOffInThePast(t *testing.T) {
	task := taskWith(date(2025, time.January, 1), model.Recurrence{Type: model.RecurNone})

	_, ok := NextOccurrence(task, date(2025, time.June, 1))
	assert.False(t, ok)
}

func TestNextOccurrence_YearlySkipsMissingLeapDay(t *testing.T) {
	task := taskWith(date(2024, time.February, 29), model.Recurrence{Type: model.RecurYearly})

	next, ok := NextOccurrence(task, date(2024, time.March, 1))
	assert.True(t, ok)
	assert.Equal(t, date(2028, time.February, 29), next)
}
