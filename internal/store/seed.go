package store

import (
	"time"

	"tasklist/internal/model"
)

// SeedState is the snapshot used on first launch, when no prior snapshot
// exists: a demo user on the free tier plus a few example tasks covering
// the common recurrence shapes.
func SeedState(now time.Time) model.AppState {
	return model.AppState{
		User: model.User{
			ID:    "u_demo",
			Name:  "Demo",
			Email: "demo@example.com",
			Phone: "+1 555-0100",
			Tier:  model.TierFree,
			Theme: model.ThemeLight,
			NotifPrefs: model.NotifPrefs{
				Push:  true,
				Email: true,
			},
			ReminderDefaultMinutes: 15,
			OnboardingCompleted:    false,
		},
		Labels: []model.Label{
			{ID: "l1", Name: "Personal"},
			{ID: "l2", Name: "Work"},
			{ID: "l3", Name: "Bills"},
		},
		Tasks: []model.Task{
			{
				ID:       "t1",
				Name:     "Pay internet bill",
				Note:     "Check for promos first",
				Deadline: now.Add(24 * time.Hour),
				Recurrence: model.Recurrence{
					Type:            model.RecurMonthly,
					MonthlyOverflow: model.ClampToLastDay,
				},
				Priority:  model.PriorityHigh,
				LabelIDs:  []string{"l3"},
				Status:    model.StatusPending,
				CreatedAt: now,
			},
			{
				ID:       "t2",
				Name:     "Standup meeting",
				Note:     "Share sprint progress",
				Deadline: time.Date(now.Year(), now.Month(), now.Day(), 9, 30, 0, 0, now.Location()),
				Recurrence: model.Recurrence{
					Type: model.RecurDailyByWeekday,
					SelectedWeekdays: []model.Weekday{
						model.Monday, model.Tuesday, model.Wednesday,
						model.Thursday, model.Friday,
					},
				},
				Priority:  model.PriorityMedium,
				LabelIDs:  []string{"l2"},
				Status:    model.StatusPending,
				CreatedAt: now,
			},
			{
				ID:       "t3",
				Name:     "Renew driver's license",
				Note:     "Bring ID and the old license",
				Deadline: now.Add(20 * 24 * time.Hour),
				Recurrence: model.Recurrence{
					Type: model.RecurYearly,
				},
				Priority:  model.PriorityHigh,
				LabelIDs:  []string{"l1"},
				Status:    model.StatusPending,
				CreatedAt: now,
			},
		},
	}
}
