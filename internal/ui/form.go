package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/model"
	"tasklist/internal/store"
)

// formState walks the task fields one input at a time, like a small
// wizard. All values are edited as text and parsed on save.
type formState struct {
	taskID   string // empty when creating
	name     string
	note     string
	deadline string
	repeat   string
	weekdays string
	monthly  string
	customs  string
	priority string
	labels   string
	index    int
}

const (
	deadlineLayout     = "2006-01-02 15:04"
	deadlineDateLayout = "2006-01-02"
)

func formFields() []string {
	return []string{
		"name",
		"note",
		"deadline (YYYY-MM-DD HH:MM)",
		"repeat (none/daily/weekly/monthly/yearly/custom)",
		"weekdays (daily only, e.g. monday,friday)",
		"monthly overflow (clamp/skip)",
		"custom dates (YYYY-MM-DD, comma separated)",
		"priority",
		"labels (comma separated)",
	}
}

func (m Model) startForm(t *model.Task) (tea.Model, tea.Cmd) {
	f := &formState{repeat: "none", monthly: "clamp", priority: "ui"}
	if t != nil {
		f.taskID = t.ID
		f.name = t.Name
		f.note = t.Note
		f.deadline = t.Deadline.Format(deadlineLayout)
		f.repeat = repeatName(t.Recurrence.Type)
		f.weekdays = joinWeekdays(t.Recurrence.SelectedWeekdays)
		if t.Recurrence.MonthlyOverflow == model.SkipMonth {
			f.monthly = "skip"
		}
		f.customs = strings.Join(t.Recurrence.CustomDates, ",")
		f.priority = priorityCode(t.Priority)
		f.labels = m.labelNames(t.LabelIDs)
	}
	m.form = f
	m.mode = modeForm
	m.input.SetValue(f.currentValue())
	m.input.Placeholder = f.currentLabel()
	m.input.Focus()
	if t == nil {
		m.status = "New task: enter to advance, esc to cancel, tab to move"
	} else {
		m.status = fmt.Sprintf("Editing %q: enter to advance, esc to cancel", t.Name)
	}
	return m, nil
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeBrowse
		m.input.Blur()
		m.status = "Edit cancelled"
		return m, nil
	case "tab", "down":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index+1, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		m.status = m.formPrompt()
		return m, nil
	case "shift+tab", "up":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index-1, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		m.status = m.formPrompt()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.index >= len(formFields())-1 {
			return m.saveForm()
		}
		m.form.index++
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		m.status = m.formPrompt()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	f := m.form
	deadline, err := parseDeadline(f.deadline)
	if err != nil {
		m.status = fmt.Sprintf("deadline invalid: %v", err)
		return m, nil
	}
	rec, err := parseRecurrence(f)
	if err != nil {
		m.status = fmt.Sprintf("repeat invalid: %v", err)
		return m, nil
	}
	prio, err := parsePriority(f.priority, rec.Type)
	if err != nil {
		m.status = fmt.Sprintf("priority invalid: %v", err)
		return m, nil
	}
	labelIDs, err := m.resolveLabels(f.labels)
	if err != nil {
		m.status = fmt.Sprintf("labels invalid: %v", err)
		return m, nil
	}

	draft := store.TaskDraft{
		Name:       f.name,
		Note:       f.note,
		Deadline:   deadline,
		Recurrence: rec,
		Priority:   prio,
		LabelIDs:   labelIDs,
	}

	if f.taskID == "" {
		if _, err := m.store.AddTask(draft); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.status = "Added task"
	} else {
		if err := m.store.UpdateTask(f.taskID, draft); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.status = "Saved task"
	}

	m.form = nil
	m.mode = modeBrowse
	m.input.Blur()
	m.cursor = clampCursor(m.cursor, len(m.listTasks()))
	return m, nil
}

func (m Model) renderForm() string {
	f := m.form
	fields := formFields()
	values := []string{
		f.name, f.note, f.deadline, f.repeat, f.weekdays,
		f.monthly, f.customs, f.priority, f.labels,
	}
	var b strings.Builder
	title := "New task"
	if f.taskID != "" {
		title = "Edit task"
	}
	b.WriteString(title + " (tab/shift+tab to move, enter to save/next, esc to cancel)\n\n")
	for i, name := range fields {
		prefix := " "
		if i == f.index {
			prefix = ">"
		}
		val := values[i]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-44s : %s\n", prefix, name, val))
	}
	b.WriteString("\nField: " + f.currentLabel() + "\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) formPrompt() string {
	return fmt.Sprintf("Editing %s (field %d of %d)",
		m.form.currentLabel(), m.form.index+1, len(formFields()))
}

func (f formState) currentLabel() string {
	return formFields()[f.index]
}

func (f formState) currentValue() string {
	switch f.index {
	case 0:
		return f.name
	case 1:
		return f.note
	case 2:
		return f.deadline
	case 3:
		return f.repeat
	case 4:
		return f.weekdays
	case 5:
		return f.monthly
	case 6:
		return f.customs
	case 7:
		return f.priority
	case 8:
		return f.labels
	default:
		return ""
	}
}

func (f *formState) setCurrentValue(v string) {
	switch f.index {
	case 0:
		f.name = v
	case 1:
		f.note = v
	case 2:
		f.deadline = v
	case 3:
		f.repeat = v
	case 4:
		f.weekdays = v
	case 5:
		f.monthly = v
	case 6:
		f.customs = v
	case 7:
		f.priority = v
	case 8:
		f.labels = v
	}
}

func parseDeadline(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("deadline is required")
	}
	if t, err := time.ParseInLocation(deadlineLayout, v, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation(deadlineDateLayout, v, time.Local)
}

func parseRecurrence(f *formState) (model.Recurrence, error) {
	rec := model.Recurrence{}
	switch strings.ToLower(strings.TrimSpace(f.repeat)) {
	case "", "none":
		rec.Type = model.RecurNone
	case "daily":
		rec.Type = model.RecurDailyByWeekday
		days, err := parseWeekdays(f.weekdays)
		if err != nil {
			return rec, err
		}
		rec.SelectedWeekdays = days
	case "weekly":
		rec.Type = model.RecurWeekly
	case "monthly":
		rec.Type = model.RecurMonthly
		switch strings.ToLower(strings.TrimSpace(f.monthly)) {
		case "", "clamp":
			rec.MonthlyOverflow = model.ClampToLastDay
		case "skip":
			rec.MonthlyOverflow = model.SkipMonth
		default:
			return rec, fmt.Errorf("monthly overflow must be clamp or skip")
		}
	case "yearly":
		rec.Type = model.RecurYearly
	case "custom":
		rec.Type = model.RecurCustomDates
		dates, err := parseCustomDates(f.customs)
		if err != nil {
			return rec, err
		}
		rec.CustomDates = dates
	default:
		return rec, fmt.Errorf("unknown repeat %q", f.repeat)
	}
	return rec, nil
}

func parseWeekdays(v string) ([]model.Weekday, error) {
	var out []model.Weekday
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		day, ok := weekdayByName(part)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		out = append(out, day)
	}
	return out, nil
}

func weekdayByName(name string) (model.Weekday, bool) {
	all := []model.Weekday{
		model.Sunday, model.Monday, model.Tuesday, model.Wednesday,
		model.Thursday, model.Friday, model.Saturday,
	}
	for _, d := range all {
		if name == string(d) || (len(name) >= 3 && strings.HasPrefix(string(d), name)) {
			return d, true
		}
	}
	return "", false
}

func parseCustomDates(v string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := time.Parse(model.DateLayout, part); err != nil {
			return nil, fmt.Errorf("bad date %q", part)
		}
		out = append(out, part)
	}
	return out, nil
}

// parsePriority accepts short codes. One-off tasks use the Eisenhower
// quadrants (ui/un/ni/nn), recurring ones the three-level scale
// (high/medium/low).
func parsePriority(v string, rt model.RecurrenceType) (model.Priority, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if rt == model.RecurNone {
		switch v {
		case "", "ui":
			return model.UrgentImportant, nil
		case "un":
			return model.UrgentNotImportant, nil
		case "ni":
			return model.NotUrgentImportant, nil
		case "nn":
			return model.NotUrgentNotImportant, nil
		}
		return "", fmt.Errorf("use ui/un/ni/nn for one-off tasks")
	}
	switch v {
	case "", "high", "h":
		return model.PriorityHigh, nil
	case "medium", "m":
		return model.PriorityMedium, nil
	case "low", "l":
		return model.PriorityLow, nil
	}
	return "", fmt.Errorf("use high/medium/low for repeating tasks")
}

func priorityCode(p model.Priority) string {
	switch p {
	case model.UrgentImportant:
		return "ui"
	case model.UrgentNotImportant:
		return "un"
	case model.NotUrgentImportant:
		return "ni"
	case model.NotUrgentNotImportant:
		return "nn"
	default:
		return string(p)
	}
}

func repeatName(t model.RecurrenceType) string {
	switch t {
	case model.RecurDailyByWeekday:
		return "daily"
	case model.RecurWeekly:
		return "weekly"
	case model.RecurMonthly:
		return "monthly"
	case model.RecurYearly:
		return "yearly"
	case model.RecurCustomDates:
		return "custom"
	default:
		return "none"
	}
}

func joinWeekdays(days []model.Weekday) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, string(d))
	}
	return strings.Join(names, ",")
}

func (m Model) labelNames(ids []string) string {
	labels := m.store.LabelsByID(ids)
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return strings.Join(names, ",")
}

// resolveLabels maps comma-separated names to label ids, creating labels
// that do not exist yet.
func (m Model) resolveLabels(v string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id := ""
		for _, l := range m.store.Labels() {
			if strings.EqualFold(l.Name, part) {
				id = l.ID
				break
			}
		}
		if id == "" {
			l, err := m.store.AddLabel(part)
			if err != nil {
				return nil, err
			}
			id = l.ID
		}
		out = append(out, id)
	}
	return out, nil
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
