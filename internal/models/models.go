// Package models defines the entities persisted by the planner and the
// partial-update payloads accepted by the store.
package models

import (
	"slices"
	"time"

	"github.com/maruel/natural"

	"github.com/ayoisaiah/hoje/internal/timeutil"
)

// Repeat marks which days of the week an activity recurs on.
type Repeat struct {
	Enabled    bool     `json:"enabled"`
	DaysOfWeek []string `json:"daysOfWeek"`
}

// Activity is a scheduled entry in the daily plan. PrayerIDs are weak
// references: a listed prayer may no longer exist and is skipped on
// resolution.
type Activity struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Time         string   `json:"time"`
	HasTimer     bool     `json:"hasTimer"`
	TimerMinutes *int     `json:"timerMinutes"`
	Repeat       Repeat   `json:"repeat"`
	PrayerIDs    []string `json:"prayerIds"`
}

// TimerEnabled reports whether a countdown can be started for the
// activity.
func (a *Activity) TimerEnabled() bool {
	return a.HasTimer && a.TimerMinutes != nil && *a.TimerMinutes > 0
}

// MinutesOfDay returns the activity's scheduled time as minutes after
// midnight. Unscheduled activities sort as 0.
func (a *Activity) MinutesOfDay() int {
	m, ok := timeutil.ClockToMinutes(a.Time)
	if !ok {
		return 0
	}

	return m
}

// Repeating reports whether the activity recurs on at least one day.
func (a *Activity) Repeating() bool {
	return a.Repeat.Enabled && len(a.Repeat.DaysOfWeek) > 0
}

// Prayer is a titled prayer text.
type Prayer struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Note is a freeform note. ActivityID is nil for standalone notes and
// otherwise weakly references an activity.
type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
	ActivityID *string   `json:"activityId"`
}

// AppData is the store root: all three collections serialized as one
// unit. Ordering within each slice is insertion order.
type AppData struct {
	Activities []Activity `json:"activities"`
	Prayers    []Prayer   `json:"prayers"`
	Notes      []Note     `json:"notes"`
}

// ActivityUpdate is a partial update for an activity. Nil fields are
// left untouched. A nil PrayerIDs slice is untouched while an empty
// one clears the references.
type ActivityUpdate struct {
	Title        *string
	Time         *string
	HasTimer     *bool
	TimerMinutes *int
	Repeat       *RepeatUpdate
	PrayerIDs    []string
}

// RepeatUpdate merges field-by-field into an existing Repeat.
type RepeatUpdate struct {
	Enabled    *bool
	DaysOfWeek []string
}

// PrayerUpdate is a partial update for a prayer. CreatedAt is never
// updatable.
type PrayerUpdate struct {
	Title *string
	Text  *string
}

// NoteUpdate is a partial update for a note.
type NoteUpdate struct {
	Title *string
	Text  *string
}

// SortActivities orders activities for display: ascending by
// time-of-day with unscheduled entries first, ties broken by natural
// title order.
func SortActivities(activities []Activity) {
	slices.SortStableFunc(activities, func(a, b Activity) int {
		am, bm := a.MinutesOfDay(), b.MinutesOfDay()
		if am != bm {
			return am - bm
		}

		if a.Title == b.Title {
			return 0
		}

		if natural.Less(a.Title, b.Title) {
			return -1
		}

		return 1
	})
}

// SortPrayers orders prayers for display: most recent first. Zero
// timestamps sink to the end.
func SortPrayers(prayers []Prayer) {
	slices.SortStableFunc(prayers, func(a, b Prayer) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// SortNotes orders notes for display: most recent first.
func SortNotes(notes []Note) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
