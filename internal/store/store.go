// Package store owns the in-memory application state and persists it
// wholesale after every mutation.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tasklist/internal/model"
	"tasklist/internal/recur"
)

// Persister loads and saves whole snapshots. Load reports absence (no
// prior snapshot) separately from failure.
type Persister interface {
	Load() (model.AppState, bool, error)
	Save(model.AppState) error
}

var ErrValidation = errors.New("validation failed")

// TaskDraft is the validated input for creating or editing a task.
type TaskDraft struct {
	Name       string    `validate:"required"`
	Note       string    `validate:"-"`
	Deadline   time.Time `validate:"required"`
	Recurrence model.Recurrence
	Priority   model.Priority
	LabelIDs   []string
}

// Store is the single mutable resource of the application. It is owned by
// the UI event loop and never shared across goroutines, so it carries no
// locking.
type Store struct {
	state    model.AppState
	persist  Persister
	log      *logrus.Logger
	validate *validator.Validate
	now      func() time.Time
}

// Open loads the prior snapshot through p, falling back to the seed state
// when none exists. Load failures are logged and also fall back to seed;
// memory is authoritative from then on.
func Open(p Persister, log *logrus.Logger) *Store {
	s := &Store{
		persist:  p,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
	}
	state, ok, err := p.Load()
	switch {
	case err != nil:
		s.log.WithError(err).Warn("failed to load snapshot, starting from seed")
		s.state = SeedState(s.now())
	case !ok:
		s.state = SeedState(s.now())
	default:
		s.state = state
	}
	return s
}

// actions: each mutation is a tagged value applied by a single transition
// function, then the whole snapshot is saved.

type action interface {
	apply(*model.AppState)
}

func (s *Store) dispatch(a action) {
	a.apply(&s.state)
	if err := s.persist.Save(s.state); err != nil {
		s.log.WithError(err).Warn("failed to persist snapshot")
	}
}

type addTask struct{ task model.Task }

func (a addTask) apply(st *model.AppState) {
	st.Tasks = append(st.Tasks, a.task)
}

type updateTask struct {
	id string
	fn func(*model.Task)
}

func (a updateTask) apply(st *model.AppState) {
	for i := range st.Tasks {
		if st.Tasks[i].ID == a.id {
			a.fn(&st.Tasks[i])
			return
		}
	}
}

type deleteTask struct{ id string }

func (a deleteTask) apply(st *model.AppState) {
	out := st.Tasks[:0]
	for _, t := range st.Tasks {
		if t.ID != a.id {
			out = append(out, t)
		}
	}
	st.Tasks = out
}

type addLabel struct{ label model.Label }

func (a addLabel) apply(st *model.AppState) {
	st.Labels = append(st.Labels, a.label)
}

type updateLabel struct {
	id   string
	name string
}

func (a updateLabel) apply(st *model.AppState) {
	for i := range st.Labels {
		if st.Labels[i].ID == a.id {
			st.Labels[i].Name = a.name
			return
		}
	}
}

type deleteLabel struct{ id string }

// Tasks referencing the label keep the dangling id; lookups filter it out.
func (a deleteLabel) apply(st *model.AppState) {
	out := st.Labels[:0]
	for _, l := range st.Labels {
		if l.ID != a.id {
			out = append(out, l)
		}
	}
	st.Labels = out
}

type updateUser struct{ fn func(*model.User) }

func (a updateUser) apply(st *model.AppState) {
	a.fn(&st.User)
}

// AddTask validates the draft, assigns an id and creation time, and
// appends the task. The store is untouched when validation fails.
func (s *Store) AddTask(d TaskDraft) (model.Task, error) {
	if err := s.checkDraft(d); err != nil {
		return model.Task{}, err
	}
	t := model.Task{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(d.Name),
		Note:       d.Note,
		Deadline:   d.Deadline,
		Recurrence: normalizeRecurrence(d.Recurrence),
		Priority:   d.Priority,
		LabelIDs:   d.LabelIDs,
		Status:     model.StatusPending,
		CreatedAt:  s.now(),
	}
	s.dispatch(addTask{task: t})
	return t, nil
}

// UpdateTask replaces the editable fields of the task with the draft.
// Unknown ids are a silent no-op.
func (s *Store) UpdateTask(id string, d TaskDraft) error {
	if err := s.checkDraft(d); err != nil {
		return err
	}
	s.dispatch(updateTask{id: id, fn: func(t *model.Task) {
		t.Name = strings.TrimSpace(d.Name)
		t.Note = d.Note
		t.Deadline = d.Deadline
		t.Recurrence = normalizeRecurrence(d.Recurrence)
		t.Priority = d.Priority
		t.LabelIDs = d.LabelIDs
	}})
	return nil
}

func (s *Store) DeleteTask(id string) {
	s.dispatch(deleteTask{id: id})
}

// SetStatus toggles freely between pending and done; completing a
// recurring task never spawns a new instance, the same task simply keeps
// its status on later occurrences until the user flips it back.
func (s *Store) SetStatus(id string, status model.Status) {
	s.dispatch(updateTask{id: id, fn: func(t *model.Task) {
		t.Status = status
	}})
}

func (s *Store) AddLabel(name string) (model.Label, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Label{}, fmt.Errorf("%w: label name is empty", ErrValidation)
	}
	l := model.Label{ID: uuid.New().String(), Name: name}
	s.dispatch(addLabel{label: l})
	return l, nil
}

func (s *Store) RenameLabel(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: label name is empty", ErrValidation)
	}
	s.dispatch(updateLabel{id: id, name: name})
	return nil
}

func (s *Store) DeleteLabel(id string) {
	s.dispatch(deleteLabel{id: id})
}

func (s *Store) ToggleTheme() {
	s.dispatch(updateUser{fn: func(u *model.User) {
		if u.Theme == model.ThemeLight {
			u.Theme = model.ThemeDark
		} else {
			u.Theme = model.ThemeLight
		}
	}})
}

func (s *Store) CompleteOnboarding() {
	s.dispatch(updateUser{fn: func(u *model.User) {
		u.OnboardingCompleted = true
	}})
}

// SetNotifPrefs stores notification preferences. WhatsApp delivery is a
// premium feature: it is forced off for free accounts.
func (s *Store) SetNotifPrefs(p model.NotifPrefs) {
	s.dispatch(updateUser{fn: func(u *model.User) {
		if u.Tier != model.TierPremium {
			p.WhatsApp = false
		}
		u.NotifPrefs = p
	}})
}

func (s *Store) SetReminderDefault(minutes int) {
	if minutes < 0 {
		minutes = 0
	}
	s.dispatch(updateUser{fn: func(u *model.User) {
		u.ReminderDefaultMinutes = minutes
	}})
}

func (s *Store) SetAccountTier(tier model.AccountTier) {
	s.dispatch(updateUser{fn: func(u *model.User) {
		u.Tier = tier
		if tier != model.TierPremium {
			u.NotifPrefs.WhatsApp = false
		}
	}})
}

func (s *Store) UpdateProfile(name, email, phone string) {
	s.dispatch(updateUser{fn: func(u *model.User) {
		if name != "" {
			u.Name = name
		}
		if email != "" {
			u.Email = email
		}
		if phone != "" {
			u.Phone = phone
		}
	}})
}

func (s *Store) checkDraft(d TaskDraft) error {
	if err := s.validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: task name is empty", ErrValidation)
	}
	return nil
}

// normalizeRecurrence clears the auxiliary fields that do not belong to
// the active type, so stale form state never leaks into the snapshot.
func normalizeRecurrence(r model.Recurrence) model.Recurrence {
	if r.Type == "" {
		r.Type = model.RecurNone
	}
	if r.Type != model.RecurDailyByWeekday {
		r.SelectedWeekdays = nil
	}
	if r.Type != model.RecurCustomDates {
		r.CustomDates = nil
	}
	if r.Type != model.RecurMonthly {
		r.MonthlyOverflow = ""
	} else if r.MonthlyOverflow == "" {
		r.MonthlyOverflow = model.ClampToLastDay
	}
	return r
}

// queries

func (s *Store) User() model.User { return s.state.User }

func (s *Store) Labels() []model.Label {
	out := make([]model.Label, len(s.state.Labels))
	copy(out, s.state.Labels)
	return out
}

func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.state.Tasks))
	copy(out, s.state.Tasks)
	return out
}

// Task looks a task up by id; the boolean is false when the id is stale
// or deleted, which the UI renders as a not-found state.
func (s *Store) Task(id string) (model.Task, bool) {
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// TodayStats counts tasks whose stored deadline falls on now's calendar
// date, split by status. Recurrence is deliberately not consulted: a
// recurring task only counts on the day its literal deadline falls.
func (s *Store) TodayStats(now time.Time) (done, pending int) {
	for _, t := range s.state.Tasks {
		if !recur.SameDay(t.Deadline, now) {
			continue
		}
		if t.Status == model.StatusDone {
			done++
		} else {
			pending++
		}
	}
	return done, pending
}

// NearestTasks returns up to limit tasks ordered by deadline ascending.
// The sort is stable so tasks sharing a deadline keep insertion order.
func (s *Store) NearestTasks(limit int) []model.Task {
	if limit <= 0 {
		limit = 5
	}
	out := s.Tasks()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Deadline.Before(out[j].Deadline)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TasksForDate returns every task occurring on the date per its
// recurrence rule, regardless of status. Calendar views apply
// recur.CalendarVisible on top.
func (s *Store) TasksForDate(date time.Time) []model.Task {
	var out []model.Task
	for _, t := range s.state.Tasks {
		if recur.OccursOn(t, date) {
			out = append(out, t)
		}
	}
	return out
}

// CalendarTasksForDate is TasksForDate restricted to tasks eligible for
// month-grid display.
func (s *Store) CalendarTasksForDate(date time.Time) []model.Task {
	var out []model.Task
	for _, t := range s.state.Tasks {
		if recur.CalendarVisible(t) && recur.OccursOn(t, date) {
			out = append(out, t)
		}
	}
	return out
}

// SearchTasks filters by case-insensitive substring on the name and an
// optional status ("" means all).
func (s *Store) SearchTasks(query string, status model.Status) []model.Task {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []model.Task
	for _, t := range s.state.Tasks {
		if status != "" && t.Status != status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(t.Name), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Store) Counts() (all, done, pending int) {
	all = len(s.state.Tasks)
	for _, t := range s.state.Tasks {
		if t.Status == model.StatusDone {
			done++
		} else {
			pending++
		}
	}
	return all, done, pending
}

// LabelsByID resolves label references, silently dropping dangling ids.
func (s *Store) LabelsByID(ids []string) []model.Label {
	var out []model.Label
	for _, id := range ids {
		for _, l := range s.state.Labels {
			if l.ID == id {
				out = append(out, l)
				break
			}
		}
	}
	return out
}
