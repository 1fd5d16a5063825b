package app

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/hoje/config"
	"github.com/ayoisaiah/hoje/internal/models"
	"github.com/ayoisaiah/hoje/internal/timeutil"
	"github.com/ayoisaiah/hoje/store"
)

var weekdays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var (
	errTitleRequired  = errors.New("a title is required")
	errInvalidClock   = errors.New("the time must be in HH:MM form")
	errInvalidMinutes = errors.New("the timer length must be a positive integer")
	errInvalidDay     = errors.New(
		"days of the week must be one of mon, tue, wed, thu, fri, sat, sun",
	)
)

// splitList splits a comma-delimited flag value, trimming whitespace
// and dropping empty items.
func splitList(s string) []string {
	parts := strings.Split(s, ",")

	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func validateClock(clock string) error {
	if clock == "" {
		return nil
	}

	if _, ok := timeutil.ClockToMinutes(clock); !ok {
		return errInvalidClock
	}

	return nil
}

// validateActivity rejects activities that cannot be displayed or
// scheduled sensibly.
func validateActivity(activity *models.Activity) error {
	if strings.TrimSpace(activity.Title) == "" {
		return errTitleRequired
	}

	if err := validateClock(activity.Time); err != nil {
		return err
	}

	if activity.HasTimer && activity.TimerMinutes != nil &&
		*activity.TimerMinutes <= 0 {
		return errInvalidMinutes
	}

	for _, day := range activity.Repeat.DaysOfWeek {
		if !slices.Contains(weekdays, strings.ToLower(day)) {
			return errInvalidDay
		}
	}

	return nil
}

// activityForm collects the fields of an activity interactively,
// prefilled from current when editing an existing one.
func activityForm(
	db store.DB,
	current models.Activity,
	cfg *config.Config,
) (models.Activity, error) {
	activity := current

	minutes := cfg.TimerMinutes
	if activity.TimerMinutes != nil {
		minutes = *activity.TimerMinutes
	}

	minutesStr := strconv.Itoa(minutes)

	prayers, err := db.Prayers()
	if err != nil {
		return activity, err
	}

	prayerOpts := make([]huh.Option[string], len(prayers))

	for i := range prayers {
		prayerOpts[i] = huh.NewOption(prayers[i].Title, prayers[i].ID)
	}

	dayOpts := make([]huh.Option[string], len(weekdays))

	for i, day := range weekdays {
		dayOpts[i] = huh.NewOption(day, day)
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Activity title").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errTitleRequired
					}

					return nil
				}).
				Value(&activity.Title),
			huh.NewInput().
				Title("Scheduled time (HH:MM, leave empty to skip)").
				Validate(validateClock).
				Value(&activity.Time),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable a countdown timer?").
				Value(&activity.HasTimer),
			huh.NewInput().
				Title("Timer length in minutes").
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return errInvalidMinutes
					}

					return nil
				}).
				Value(&minutesStr),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Repeat on").
				Options(dayOpts...).
				Value(&activity.Repeat.DaysOfWeek),
		),
	}

	if len(prayerOpts) > 0 {
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Linked prayers").
				Options(prayerOpts...).
				Value(&activity.PrayerIDs),
		))
	}

	if err := huh.NewForm(groups...).Run(); err != nil {
		return activity, fmt.Errorf("form interaction failed: %w", err)
	}

	if activity.HasTimer {
		n, err := strconv.Atoi(strings.TrimSpace(minutesStr))
		if err != nil {
			return activity, errInvalidMinutes
		}

		activity.TimerMinutes = &n
	} else {
		activity.TimerMinutes = nil
	}

	activity.Repeat.Enabled = len(activity.Repeat.DaysOfWeek) > 0

	return activity, nil
}

// textForm collects a title and body interactively, prefilled with the
// current values.
func textForm(currentTitle, currentText string) (string, string, error) {
	title := currentTitle
	text := currentText

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errTitleRequired
					}

					return nil
				}).
				Value(&title),
			huh.NewText().
				Title("Text").
				Value(&text),
		),
	)

	if err := form.Run(); err != nil {
		return title, text, fmt.Errorf("form interaction failed: %w", err)
	}

	return title, text, nil
}

func noteForm(current models.Note) (models.Note, error) {
	note := current

	title, text, err := textForm(note.Title, note.Text)
	if err != nil {
		return note, err
	}

	note.Title = title
	note.Text = text

	return note, nil
}

func prayerForm(current models.Prayer) (models.Prayer, error) {
	prayer := current

	title, text, err := textForm(prayer.Title, prayer.Text)
	if err != nil {
		return prayer, err
	}

	prayer.Title = title
	prayer.Text = text

	return prayer, nil
}
