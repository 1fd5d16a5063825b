package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/hoje/internal/models"
	"github.com/ayoisaiah/hoje/internal/timeutil"
	"github.com/ayoisaiah/hoje/internal/ui"
	"github.com/ayoisaiah/hoje/store"
)

const (
	noActivitiesMsg = "No activities are planned yet. Use 'hoje add' to plan one"
	noNotesMsg      = "No notes found for the specified time range"
	noPrayersMsg    = "No prayers found for the specified time range"
)

const timestampFormat = "Jan 02, 2006 03:04 PM"

// formatClock renders a stored HH:MM value according to the clock
// setting. Unscheduled entries render as a placeholder.
func formatClock(clock string) string {
	minutes, ok := timeutil.ClockToMinutes(clock)
	if !ok {
		return "--:--"
	}

	if appCfg == nil || appCfg.TwentyFourHour {
		return clock
	}

	t := time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)

	return t.Format("03:04 PM")
}

// activityMarkers summarizes an activity's extras for the plan view.
func activityMarkers(activity *models.Activity) string {
	var markers []string

	if activity.TimerEnabled() {
		markers = append(
			markers,
			fmt.Sprintf("timer %dm", *activity.TimerMinutes),
		)
	}

	if activity.Repeating() {
		markers = append(
			markers,
			"repeats "+strings.Join(activity.Repeat.DaysOfWeek, ","),
		)
	}

	if n := len(activity.PrayerIDs); n == 1 {
		markers = append(markers, "1 prayer")
	} else if n > 1 {
		markers = append(markers, fmt.Sprintf("%d prayers", n))
	}

	if len(markers) == 0 {
		return ""
	}

	return ui.Gray("(" + strings.Join(markers, " · ") + ")")
}

// printTodayView prints the daily plan grouped by hour. Unscheduled
// activities lead, and entries whose time has already passed are
// dimmed.
func printTodayView(w io.Writer, activities []models.Activity) error {
	if len(activities) == 0 {
		pterm.Info.Println(noActivitiesMsg)
		return nil
	}

	models.SortActivities(activities)

	now := timeutil.MinutesNow(time.Now())

	lastHeading := ""

	for i := range activities {
		activity := &activities[i]

		heading := "Anytime"

		scheduled := false

		if minutes, ok := timeutil.ClockToMinutes(activity.Time); ok {
			heading = timeutil.HourLabel(minutes)
			scheduled = true
		}

		if heading != lastHeading {
			fmt.Fprintln(w, ui.Blue(heading))

			lastHeading = heading
		}

		line := fmt.Sprintf(
			"  %s  %s",
			formatClock(activity.Time),
			activity.Title,
		)

		if scheduled && activity.MinutesOfDay() < now {
			line = ui.Gray(line)
		} else {
			line = ui.Highlight(line)
		}

		if markers := activityMarkers(activity); markers != "" {
			line += " " + markers
		}

		fmt.Fprintln(w, line)
	}

	return nil
}

// printActivitiesTable prints an activity table to the command-line.
func printActivitiesTable(w io.Writer, activities []models.Activity) {
	tableBody := make([][]string, len(activities))

	for i := range activities {
		activity := &activities[i]

		timerText := ui.Gray("off")
		if activity.TimerEnabled() {
			timerText = ui.Green(
				fmt.Sprintf("%d minutes", *activity.TimerMinutes),
			)
		}

		repeatText := ""
		if activity.Repeating() {
			repeatText = strings.Join(activity.Repeat.DaysOfWeek, " · ")
		}

		tableBody[i] = []string{
			activity.ID,
			activity.Title,
			formatClock(activity.Time),
			timerText,
			repeatText,
			fmt.Sprintf("%d", len(activity.PrayerIDs)),
		}
	}

	tableBody = append([][]string{
		{"ID", "TITLE", "TIME", "TIMER", "REPEAT", "PRAYERS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// printActivityDetails prints an activity together with its linked
// prayers and attached notes.
func printActivityDetails(
	w io.Writer,
	db store.DB,
	activity models.Activity,
) error {
	printActivitiesTable(w, []models.Activity{activity})

	prayers, err := db.ResolvePrayers(activity.PrayerIDs)
	if err != nil {
		return err
	}

	for i := range prayers {
		fmt.Fprintln(w)
		printPrayer(w, prayers[i])
	}

	notes, err := db.NotesByActivity(activity.ID)
	if err != nil {
		return err
	}

	for i := range notes {
		fmt.Fprintln(w)
		printNote(w, notes[i])
	}

	return nil
}

// listNotes prints out a table of notes.
func listNotes(notes []models.Note) error {
	if len(notes) == 0 {
		pterm.Info.Println(noNotesMsg)
		return nil
	}

	tableBody := make([][]string, len(notes))

	for i := range notes {
		note := &notes[i]

		attachedTo := ""
		if note.ActivityID != nil {
			attachedTo = *note.ActivityID
		}

		created := note.CreatedAt.Format(timestampFormat)
		if note.CreatedAt.IsZero() {
			created = ""
		}

		tableBody[i] = []string{
			note.ID,
			note.Title,
			created,
			attachedTo,
		}
	}

	tableBody = append([][]string{
		{"ID", "TITLE", "CREATED", "ACTIVITY"},
	}, tableBody...)

	ui.PrintTable(tableBody, os.Stdout)

	return nil
}

// listPrayers prints out a table of prayers.
func listPrayers(prayers []models.Prayer) error {
	if len(prayers) == 0 {
		pterm.Info.Println(noPrayersMsg)
		return nil
	}

	tableBody := make([][]string, len(prayers))

	for i := range prayers {
		prayer := &prayers[i]

		created := prayer.CreatedAt.Format(timestampFormat)
		if prayer.CreatedAt.IsZero() {
			created = ""
		}

		tableBody[i] = []string{
			prayer.ID,
			prayer.Title,
			created,
		}
	}

	tableBody = append([][]string{
		{"ID", "TITLE", "CREATED"},
	}, tableBody...)

	ui.PrintTable(tableBody, os.Stdout)

	return nil
}

func printNote(w io.Writer, note models.Note) {
	fmt.Fprintln(w, ui.Highlight(note.Title), ui.Gray("("+note.ID+")"))

	if note.Text != "" {
		fmt.Fprintln(w, note.Text)
	}
}

func printPrayer(w io.Writer, prayer models.Prayer) {
	fmt.Fprintln(w, ui.Magenta(prayer.Title), ui.Gray("("+prayer.ID+")"))

	if prayer.Text != "" {
		fmt.Fprintln(w, prayer.Text)
	}
}
