package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSortActivities(t *testing.T) {
	activities := []Activity{
		{Title: "Lunch", Time: "12:00"},
		{Title: "Standup", Time: "09:00"},
		{Title: "Walk"},
		{Title: "item10", Time: "09:00"},
		{Title: "item2", Time: "09:00"},
	}

	SortActivities(activities)

	got := make([]string, len(activities))
	for i := range activities {
		got[i] = activities[i].Title
	}

	// Unscheduled entries first, then ascending by time of day with
	// natural title order breaking ties
	expected := []string{"Walk", "Standup", "item2", "item10", "Lunch"}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("activity order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortActivitiesIsDeterministic(t *testing.T) {
	base := []Activity{
		{ID: "act_1", Title: "Same", Time: "09:00"},
		{ID: "act_2", Title: "Same", Time: "09:00"},
	}

	first := make([]Activity, len(base))
	copy(first, base)
	SortActivities(first)

	second := make([]Activity, len(base))
	copy(second, base)
	SortActivities(second)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("expected identical orders (-first +second):\n%s", diff)
	}

	if first[0].ID != "act_1" {
		t.Error("expected equal entries to keep insertion order")
	}
}

func TestSortPrayers(t *testing.T) {
	now := time.Now()

	prayers := []Prayer{
		{Title: "Oldest", CreatedAt: now.Add(-2 * time.Hour)},
		{Title: "Undated"},
		{Title: "Newest", CreatedAt: now},
	}

	SortPrayers(prayers)

	got := make([]string, len(prayers))
	for i := range prayers {
		got[i] = prayers[i].Title
	}

	expected := []string{"Newest", "Oldest", "Undated"}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("prayer order mismatch (-want +got):\n%s", diff)
	}
}

func TestActivityTimerEnabled(t *testing.T) {
	minutes := 25
	zero := 0

	table := []struct {
		name     string
		activity Activity
		expected bool
	}{
		{
			name:     "timer with minutes",
			activity: Activity{HasTimer: true, TimerMinutes: &minutes},
			expected: true,
		},
		{
			name:     "timer without minutes",
			activity: Activity{HasTimer: true},
			expected: false,
		},
		{
			name:     "timer with zero minutes",
			activity: Activity{HasTimer: true, TimerMinutes: &zero},
			expected: false,
		},
		{
			name:     "minutes without timer",
			activity: Activity{TimerMinutes: &minutes},
			expected: false,
		},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.activity.TimerEnabled(); got != tc.expected {
				t.Errorf("expected %t, but got: %t", tc.expected, got)
			}
		})
	}
}
