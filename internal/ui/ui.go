package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/config"
	"tasklist/internal/model"
	"tasklist/internal/notify"
	"tasklist/internal/store"
)

type view int

const (
	viewDashboard view = iota
	viewList
	viewCalendar
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
)

type Model struct {
	store *store.Store
	cfg   config.Config

	view   view
	mode   mode
	status string
	input  textinput.Model

	// list state
	cursor int
	search string
	tab    int // 0 all, 1 pending, 2 done

	// calendar state
	month  time.Time
	selDay time.Time

	// delete confirmation
	confirmDel bool
	pendingDel *model.Task

	form *formState
}

func Run(st *store.Store, cfg config.Config) error {
	ti := textinput.New()
	ti.Placeholder = "Task name"
	ti.CharLimit = 256
	ti.Width = 40

	now := time.Now()
	m := Model{
		store:  st,
		cfg:    cfg,
		view:   startView(cfg.DefaultView),
		mode:   modeBrowse,
		input:  ti,
		status: "Press 'a' to add, 1/2/3 to switch views, 'q' to quit.",
		month:  time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		selDay: now,
	}

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func startView(name string) view {
	switch strings.ToLower(name) {
	case "list":
		return viewList
	case "calendar":
		return viewCalendar
	default:
		return viewDashboard
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateFormMode(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.mode == modeSearch {
			return m.updateSearchMode(msg.String(), msg)
		}
		return m.updateBrowseMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateBrowseMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Dashboard:
		m.view = viewDashboard
		m.status = "Dashboard"
	case m.cfg.Keys.List:
		m.view = viewList
		m.cursor = clampCursor(m.cursor, len(m.listTasks()))
		m.status = "Task list"
	case m.cfg.Keys.Calendar:
		m.view = viewCalendar
		m.status = "Calendar"
	case m.cfg.Keys.Theme:
		m.store.ToggleTheme()
		m.status = fmt.Sprintf("Theme: %s", m.store.User().Theme)
	case m.cfg.Keys.Add:
		return m.startForm(nil)
	}

	switch m.view {
	case viewList:
		return m.updateListKeys(key)
	case viewCalendar:
		return m.updateCalendarKeys(key)
	}
	return m, nil
}

func (m Model) updateListKeys(key string) (tea.Model, tea.Cmd) {
	tasks := m.listTasks()
	// mutations elsewhere (toggling under a tab filter, searches) may have
	// shrunk the filtered list since the cursor last moved
	m.cursor = clampCursor(m.cursor, len(tasks))
	switch key {
	case m.cfg.Keys.Down, "down":
		if len(tasks) > 0 {
			m.cursor = clampCursor(m.cursor+1, len(tasks))
		}
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(tasks))
		}
	case m.cfg.Keys.Tab:
		m.tab = (m.tab + 1) % 3
		m.cursor = clampCursor(m.cursor, len(m.listTasks()))
		m.status = "Filter: " + tabName(m.tab)
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.input.SetValue(m.search)
		m.input.Placeholder = "Search tasks"
		m.input.Focus()
		m.status = "Search: type and press Enter"
	case m.cfg.Keys.Toggle:
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.cursor]
		next := model.StatusDone
		if t.Status == model.StatusDone {
			next = model.StatusPending
		}
		m.store.SetStatus(t.ID, next)
		m.cursor = clampCursor(m.cursor, len(m.listTasks()))
		m.status = fmt.Sprintf("%q marked %s", t.Name, next)
	case m.cfg.Keys.Delete:
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Name)
	case m.cfg.Keys.Edit:
		if len(tasks) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		t := tasks[m.cursor]
		if _, ok := m.store.Task(t.ID); !ok {
			m.status = "Task not found"
			return m, nil
		}
		return m.startForm(&t)
	}
	return m, nil
}

func (m Model) updateCalendarKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.PrevMonth:
		m.month = m.month.AddDate(0, -1, 0)
		m.selDay = m.month
	case m.cfg.Keys.NextMonth:
		m.month = m.month.AddDate(0, 1, 0)
		m.selDay = m.month
	case m.cfg.Keys.Down, "down", "right", "l":
		m.selDay = m.clampDay(m.selDay.AddDate(0, 0, 1))
	case m.cfg.Keys.Up, "up", "left", "h":
		m.selDay = m.clampDay(m.selDay.AddDate(0, 0, -1))
	}
	return m, nil
}

func (m Model) clampDay(d time.Time) time.Time {
	if d.Month() != m.month.Month() || d.Year() != m.month.Year() {
		return m.selDay
	}
	return d
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeBrowse
		m.input.Blur()
		m.status = "Search cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		m.search = strings.TrimSpace(m.input.Value())
		m.mode = modeBrowse
		m.input.Blur()
		m.cursor = clampCursor(m.cursor, len(m.listTasks()))
		if m.search == "" {
			m.status = "Search cleared"
		} else {
			m.status = fmt.Sprintf("Searching for %q", m.search)
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		m.store.DeleteTask(m.pendingDel.ID)
		m.cursor = clampCursor(m.cursor, len(m.listTasks()))
		m.status = "Deleted task"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) listTasks() []model.Task {
	var status model.Status
	switch m.tab {
	case 1:
		status = model.StatusPending
	case 2:
		status = model.StatusDone
	}
	return m.store.SearchTasks(m.search, status)
}

func tabName(tab int) string {
	switch tab {
	case 1:
		return "pending"
	case 2:
		return "done"
	default:
		return "all"
	}
}

func (m Model) View() string {
	var b strings.Builder

	switch m.view {
	case viewDashboard:
		b.WriteString(m.renderDashboard())
	case viewList:
		b.WriteString(m.renderList())
	case viewCalendar:
		b.WriteString(m.renderCalendar())
	}

	b.WriteString("\n---\n")

	if m.form != nil {
		b.WriteString(m.renderForm())
	} else if m.mode == modeSearch {
		b.WriteString(m.input.View())
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(renderHelp(m.cfg.Keys))

	return b.String()
}

func (m Model) renderDashboard() string {
	now := time.Now()
	u := m.store.User()
	done, pending := m.store.TodayStats(now)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s, %s!\n\n", greeting(now), u.Name))
	b.WriteString(fmt.Sprintf("Today: %d done, %d pending\n\n", done, pending))
	b.WriteString("Upcoming\n")
	nearest := m.store.NearestTasks(5)
	if len(nearest) == 0 {
		b.WriteString("  No tasks yet. Press 'a' to add one.\n")
	}
	for _, t := range nearest {
		b.WriteString(fmt.Sprintf("  %s %s  %s  %s\n",
			checkbox(t.Status), t.Deadline.Format("2006-01-02 15:04"), t.Name, m.labelSummary(t)))
	}
	if r, ok := m.nextReminder(now); ok {
		b.WriteString(fmt.Sprintf("\nNext reminder: %s  %s  via %s\n",
			r.RemindAt.Format("2006-01-02 15:04"), r.TaskName, channelNames(r.Channels)))
	}
	return b.String()
}

// nextReminder picks the soonest upcoming reminder across pending tasks.
func (m Model) nextReminder(now time.Time) (notify.Reminder, bool) {
	u := m.store.User()
	var best notify.Reminder
	found := false
	for _, t := range m.store.Tasks() {
		if t.Status == model.StatusDone {
			continue
		}
		r, ok := notify.Build(u, t, now)
		if !ok {
			continue
		}
		if !found || r.RemindAt.Before(best.RemindAt) {
			best, found = r, true
		}
	}
	return best, found
}

func channelNames(channels []notify.Channel) string {
	names := make([]string, 0, len(channels))
	for _, c := range channels {
		names = append(names, string(c))
	}
	return strings.Join(names, "+")
}

func (m Model) renderList() string {
	tasks := m.listTasks()
	all, done, pending := m.store.Counts()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tasks [%s] (all %d / pending %d / done %d)", tabName(m.tab), all, pending, done))
	if m.search != "" {
		b.WriteString(fmt.Sprintf("  search:%q", m.search))
	}
	b.WriteString("\n\n")

	if len(tasks) == 0 {
		b.WriteString("No matching tasks.\n")
		return b.String()
	}
	for i, t := range tasks {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, checkbox(t.Status), t.Name))
		b.WriteString("  due:" + t.Deadline.Format("2006-01-02"))
		if t.Recurring() {
			b.WriteString("  repeats:" + string(t.Recurrence.Type))
		}
		b.WriteString("  " + priorityLabel(t.Priority))
		if ls := m.labelSummary(t); ls != "" {
			b.WriteString("  " + ls)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCalendar() string {
	var b strings.Builder
	b.WriteString(m.month.Format("January 2006"))
	b.WriteString("\n\n Su Mo Tu We Th Fr Sa\n")

	first := m.month
	offset := int(first.Weekday())
	days := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, first.Location()).Day()

	col := 0
	for i := 0; i < offset; i++ {
		b.WriteString("   ")
		col++
	}
	for day := 1; day <= days; day++ {
		d := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location())
		cell := fmt.Sprintf("%2d ", day)
		switch {
		case day == m.selDay.Day() && sameMonth(d, m.selDay):
			cell = fmt.Sprintf("%2d<", day)
		case len(m.store.CalendarTasksForDate(d)) > 0:
			cell = fmt.Sprintf("%2d*", day)
		}
		b.WriteString(cell)
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		}
	}
	if col%7 != 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.selDay.Format("Mon 2006-01-02") + "\n")
	dayTasks := m.store.CalendarTasksForDate(m.selDay)
	if len(dayTasks) == 0 {
		b.WriteString("  Nothing due.\n")
	}
	for _, t := range dayTasks {
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", checkbox(t.Status), t.Name, priorityLabel(t.Priority)))
	}
	return b.String()
}

func (m Model) labelSummary(t model.Task) string {
	labels := m.store.LabelsByID(t.LabelIDs)
	if len(labels) == 0 {
		return ""
	}
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return "#" + strings.Join(names, " #")
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s/%s views • %s/%s move • %s add • %s edit • %s toggle • %s delete • %s search • %s filter • %s/%s month • %s quit",
		k.Dashboard, k.List, k.Calendar, k.Up, k.Down, k.Add, k.Edit, k.Toggle, k.Delete, k.Search, k.Tab, k.PrevMonth, k.NextMonth, k.Quit)
}

func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func checkbox(s model.Status) string {
	if s == model.StatusDone {
		return "[x]"
	}
	return "[ ]"
}

func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "high"
	case model.PriorityMedium:
		return "medium"
	case model.PriorityLow:
		return "low"
	case model.UrgentImportant:
		return "urgent+important"
	case model.UrgentNotImportant:
		return "urgent"
	case model.NotUrgentImportant:
		return "important"
	case model.NotUrgentNotImportant:
		return "later"
	default:
		return string(p)
	}
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
