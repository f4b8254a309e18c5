// Package notify builds reminder payloads for an external dispatcher.
// Delivery itself (push, WhatsApp, email transport) lives outside this
// program; the core only decides what to send, when, and over which
// channels the user's preferences and account tier allow.
package notify

import (
	"time"

	"tasklist/internal/model"
	"tasklist/internal/recur"
)

type Channel string

const (
	ChannelPush     Channel = "push"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// Reminder is the payload handed to a Dispatcher.
type Reminder struct {
	TaskID   string
	TaskName string
	OccursAt time.Time
	RemindAt time.Time
	LeadTime time.Duration
	Channels []Channel
}

// Dispatcher delivers a reminder. Implementations are external
// collaborators; errors are theirs to report.
type Dispatcher interface {
	Dispatch(Reminder) error
}

// Channels lists the delivery channels enabled for the user. WhatsApp is
// premium-only and is dropped for free accounts even when the preference
// flag is set.
func Channels(u model.User) []Channel {
	var out []Channel
	if u.NotifPrefs.Push {
		out = append(out, ChannelPush)
	}
	if u.NotifPrefs.WhatsApp && u.Tier == model.TierPremium {
		out = append(out, ChannelWhatsApp)
	}
	if u.NotifPrefs.Email {
		out = append(out, ChannelEmail)
	}
	return out
}

// Build projects the task's next occurrence after from and assembles the
// reminder for it, applying the user's default lead time and the
// deadline's time of day. The boolean is false when the task will never
// occur again or every channel is disabled.
func Build(u model.User, t model.Task, from time.Time) (Reminder, bool) {
	channels := Channels(u)
	if len(channels) == 0 {
		return Reminder{}, false
	}
	day, ok := recur.NextOccurrence(t, from)
	if !ok {
		return Reminder{}, false
	}
	occursAt := time.Date(day.Year(), day.Month(), day.Day(),
		t.Deadline.Hour(), t.Deadline.Minute(), 0, 0, day.Location())
	lead := time.Duration(u.ReminderDefaultMinutes) * time.Minute
	return Reminder{
		TaskID:   t.ID,
		TaskName: t.Name,
		OccursAt: occursAt,
		RemindAt: occursAt.Add(-lead),
		LeadTime: lead,
		Channels: channels,
	}, true
}
