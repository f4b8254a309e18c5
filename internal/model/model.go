package model

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

type RecurrenceType string

const (
	RecurNone           RecurrenceType = "none"
	RecurDailyByWeekday RecurrenceType = "dailyByWeekday"
	RecurWeekly         RecurrenceType = "weekly"
	RecurMonthly        RecurrenceType = "monthly"
	RecurYearly         RecurrenceType = "yearly"
	RecurCustomDates    RecurrenceType = "customDates"
)

type MonthlyOverflow string

const (
	ClampToLastDay MonthlyOverflow = "clampToLastDay"
	SkipMonth      MonthlyOverflow = "skipMonth"
)

// Weekday names, Sunday first, matching time.Weekday ordering.
type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

var weekdayNames = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func WeekdayOf(t time.Time) Weekday {
	return weekdayNames[int(t.Weekday())]
}

// Recurrence is a tagged variant: only the fields belonging to the active
// Type are meaningful. Stray fields from a previous type are ignored.
type Recurrence struct {
	Type             RecurrenceType  `json:"type"`
	SelectedWeekdays []Weekday       `json:"selectedWeekdays,omitempty"`
	CustomDates      []string        `json:"customDates,omitempty"`
	MonthlyOverflow  MonthlyOverflow `json:"monthlyOverflow,omitempty"`
}

type Priority string

const (
	// Three-level scale used for recurring tasks.
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"

	// Eisenhower Matrix quadrants used for non-recurring tasks.
	UrgentImportant       Priority = "urgentImportant"
	UrgentNotImportant    Priority = "urgentNotImportant"
	NotUrgentImportant    Priority = "notUrgentImportant"
	NotUrgentNotImportant Priority = "notUrgentNotImportant"
)

type Task struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Note       string     `json:"note,omitempty"`
	Deadline   time.Time  `json:"deadline"`
	Recurrence Recurrence `json:"recurrence"`
	Priority   Priority   `json:"priority"`
	LabelIDs   []string   `json:"labelIds,omitempty"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AccountTier string

const (
	TierFree    AccountTier = "free"
	TierPremium AccountTier = "premium"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type NotifPrefs struct {
	Push     bool `json:"push"`
	WhatsApp bool `json:"whatsapp"`
	Email    bool `json:"email"`
}

type User struct {
	ID                     string      `json:"id"`
	Name                   string      `json:"name"`
	Email                  string      `json:"email"`
	Phone                  string      `json:"phone"`
	Tier                   AccountTier `json:"tier"`
	PhotoURL               string      `json:"photoUrl,omitempty"`
	Theme                  Theme       `json:"theme"`
	NotifPrefs             NotifPrefs  `json:"notifPrefs"`
	ReminderDefaultMinutes int         `json:"reminderDefaultMinutes"`
	OnboardingCompleted    bool        `json:"onboardingCompleted"`
}

// AppState is the whole-application snapshot persisted as a single unit.
type AppState struct {
	User   User    `json:"user"`
	Labels []Label `json:"labels"`
	Tasks  []Task  `json:"tasks"`
}

// DateLayout is the calendar-date form used for custom recurrence dates.
const DateLayout = "2006-01-02"

// Recurring reports whether the task repeats at all. The priority scale a
// form offers depends on this: Eisenhower quadrants for one-off tasks,
// high/medium/low for repeating ones.
func (t Task) Recurring() bool {
	switch t.Recurrence.Type {
	case RecurDailyByWeekday, RecurWeekly, RecurMonthly, RecurYearly, RecurCustomDates:
		return true
	}
	return false
}
