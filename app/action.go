package app

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/hoje/config"
	"github.com/ayoisaiah/hoje/internal/models"
	"github.com/ayoisaiah/hoje/internal/ui"
	"github.com/ayoisaiah/hoje/store"
	"github.com/ayoisaiah/hoje/timer"
)

const (
	envNoColor     = "NO_COLOR"
	envHojeNoColor = "HOJE_NO_COLOR"
)

var errIDRequired = errors.New("the id of the target entry is required")

// appCfg is populated once in beforeAction and shared by every
// command.
var appCfg *config.Config

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func storeHelper() (store.DB, error) {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, err
	}

	return db, nil
}

// activityHelper opens the store and retrieves the activity whose id
// is the command's first argument.
func activityHelper(ctx *cli.Context) (models.Activity, store.DB, error) {
	id := ctx.Args().First()
	if id == "" {
		return models.Activity{}, nil, errIDRequired
	}

	db, err := storeHelper()
	if err != nil {
		return models.Activity{}, nil, err
	}

	activity, err := db.FindActivity(id)
	if err != nil {
		return models.Activity{}, nil, err
	}

	return activity, db, nil
}

// defaultAction prints today's plan.
func defaultAction(_ *cli.Context) error {
	db, err := storeHelper()
	if err != nil {
		return err
	}

	activities, err := db.Activities()
	if err != nil {
		return err
	}

	return printTodayView(os.Stdout, activities)
}

// addActivityAction handles the add command. Flags take precedence;
// without a title argument the interactive form is used instead.
func addActivityAction(ctx *cli.Context) error {
	db, err := storeHelper()
	if err != nil {
		return err
	}

	var input models.Activity

	title := ctx.Args().First()
	if title == "" {
		input, err = activityForm(db, models.Activity{}, appCfg)
		if err != nil {
			return err
		}
	} else {
		input = models.Activity{
			Title: title,
			Time:  ctx.String("time"),
		}

		if ctx.IsSet("timer") {
			minutes := ctx.Int("timer")
			input.HasTimer = true
			input.TimerMinutes = &minutes
		}

		if ctx.IsSet("repeat") {
			input.Repeat = models.Repeat{
				Enabled:    true,
				DaysOfWeek: splitList(ctx.String("repeat")),
			}
		}

		if ctx.IsSet("prayers") {
			input.PrayerIDs = splitList(ctx.String("prayers"))
		}
	}

	if err := validateActivity(&input); err != nil {
		return err
	}

	activity, err := db.AddActivity(input)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("activity added: %s", activity.ID)

	return nil
}

// editActivityAction handles the edit command. Only the fields whose
// flags are present change; without any flags the interactive form is
// opened prefilled with the current values.
func editActivityAction(ctx *cli.Context) error {
	activity, db, err := activityHelper(ctx)
	if err != nil {
		return err
	}

	var patch models.ActivityUpdate

	if ctx.NumFlags() == 0 {
		edited, err := activityForm(db, activity, appCfg)
		if err != nil {
			return err
		}

		patch = models.ActivityUpdate{
			Title:        &edited.Title,
			Time:         &edited.Time,
			HasTimer:     &edited.HasTimer,
			TimerMinutes: edited.TimerMinutes,
			Repeat: &models.RepeatUpdate{
				Enabled:    &edited.Repeat.Enabled,
				DaysOfWeek: edited.Repeat.DaysOfWeek,
			},
			PrayerIDs: edited.PrayerIDs,
		}
	} else {
		patch = activityPatchFromFlags(ctx)

		if patch.Time != nil {
			if err := validateClock(*patch.Time); err != nil {
				return err
			}
		}

		if patch.TimerMinutes != nil && *patch.TimerMinutes <= 0 {
			return errInvalidMinutes
		}
	}

	updated, err := db.UpdateActivity(activity.ID, patch)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("activity updated: %s", updated.ID)

	return nil
}

func activityPatchFromFlags(ctx *cli.Context) models.ActivityUpdate {
	var patch models.ActivityUpdate

	if ctx.IsSet("title") {
		title := ctx.String("title")
		patch.Title = &title
	}

	if ctx.IsSet("time") {
		clock := ctx.String("time")
		patch.Time = &clock
	}

	if ctx.IsSet("timer") {
		enabled := true
		minutes := ctx.Int("timer")
		patch.HasTimer = &enabled
		patch.TimerMinutes = &minutes
	}

	if ctx.Bool("no-timer") {
		disabled := false
		patch.HasTimer = &disabled
	}

	if ctx.IsSet("repeat") {
		enabled := true
		patch.Repeat = &models.RepeatUpdate{
			Enabled:    &enabled,
			DaysOfWeek: splitList(ctx.String("repeat")),
		}
	}

	if ctx.Bool("no-repeat") {
		disabled := false
		patch.Repeat = &models.RepeatUpdate{
			Enabled: &disabled,
		}
	}

	if ctx.IsSet("prayers") {
		patch.PrayerIDs = splitList(ctx.String("prayers"))
	}

	return patch
}

// deleteActivityAction handles the delete command. It requests
// confirmation before removing the activity.
func deleteActivityAction(ctx *cli.Context) error {
	activity, db, err := activityHelper(ctx)
	if err != nil {
		return err
	}

	printActivitiesTable(os.Stdout, []models.Activity{activity})

	warning := pterm.Warning.Sprint(
		"The above activity will be deleted permanently. Press ENTER to proceed",
	)

	fmt.Fprint(os.Stdout, warning)

	reader := bufio.NewReader(os.Stdin)

	_, _ = reader.ReadString('\n')

	return db.DeleteActivity(activity.ID)
}

// showActivityAction opens the activity details view. Activities with
// a timer get the live countdown, the rest print their details.
func showActivityAction(ctx *cli.Context) error {
	activity, db, err := activityHelper(ctx)
	if err != nil {
		return err
	}

	if activity.TimerEnabled() {
		return timer.RunCountdown(db, appCfg, activity)
	}

	return printActivityDetails(os.Stdout, db, activity)
}

// completeActivityAction handles the complete command which removes
// the activity from the plan and announces its completion.
func completeActivityAction(ctx *cli.Context) error {
	activity, db, err := activityHelper(ctx)
	if err != nil {
		return err
	}

	engine := timer.New(db, nil)

	if err := engine.Complete(activity.ID); err != nil {
		return err
	}

	timer.AnnounceCompletion(appCfg, activity.Title)

	pterm.Success.Printfln("activity completed: %s", activity.Title)

	return nil
}

// listNotesAction prints a table of notes created within the --since
// window.
func listNotesAction(ctx *cli.Context) error {
	filterCfg, err := config.Filter(ctx)
	if err != nil {
		return err
	}

	db, err := storeHelper()
	if err != nil {
		return err
	}

	notes, err := db.Notes()
	if err != nil {
		return err
	}

	filtered := notes[:0]

	for i := range notes {
		if filterCfg.Matches(notes[i].CreatedAt) {
			filtered = append(filtered, notes[i])
		}
	}

	models.SortNotes(filtered)

	return listNotes(filtered)
}

// addNoteAction handles the note add command.
func addNoteAction(ctx *cli.Context) error {
	db, err := storeHelper()
	if err != nil {
		return err
	}

	input := models.Note{
		Title: ctx.Args().First(),
		Text:  ctx.String("text"),
	}

	if input.Title == "" {
		input, err = noteForm(input)
		if err != nil {
			return err
		}
	}

	note, err := db.AddNote(input)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("note added: %s", note.ID)

	return nil
}

// showNoteAction prints a single note.
func showNoteAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return errIDRequired
	}

	db, err := storeHelper()
	if err != nil {
		return err
	}

	note, err := db.FindNote(id)
	if err != nil {
		return err
	}

	printNote(os.Stdout, note)

	return nil
}

// editNoteAction handles the note edit command. Without flags the
// interactive form opens prefilled with the current values.
func editNoteAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return errIDRequired
	}

	db, err := storeHelper()
	if err != nil {
		return err
	}

	note, err := db.FindNote(id)
	if err != nil {
		return err
	}

	patch, err := textPatchFromFlags(ctx, note.Title, note.Text)
	if err != nil {
		return err
	}

	updated, err := db.UpdateNote(note.ID, models.NoteUpdate{
		Title: patch.Title,
		Text:  patch.Text,
	})
	if err != nil {
		return err
	}

	pterm.Success.Printfln("note updated: %s", updated.ID)

	return nil
}

// attachNoteAction opens the note attached to an activity for
// editing, creating a blank one when none exists yet.
func attachNoteAction(ctx *cli.Context) error {
	activity, db, err := activityHelper(ctx)
	if err != nil {
		return err
	}

	note, err := db.GetOrCreateNoteForActivity(activity.ID)
	if err != nil {
		return err
	}

	edited, err := noteForm(note)
	if err != nil {
		return err
	}

	_, err = db.UpdateNote(note.ID, models.NoteUpdate{
		Title: &edited.Title,
		Text:  &edited.Text,
	})

	return err
}

// listPrayersAction prints a table of prayers created within the
// --since window.
func listPrayersAction(ctx *cli.Context) error {
	filterCfg, err := config.Filter(ctx)
	if err != nil {
		return err
	}

	db, err := storeHelper()
	if err != nil {
		return err
	}

	prayers, err := db.Prayers()
	if err != nil {
		return err
	}

	filtered := prayers[:0]

	for i := range prayers {
		if filterCfg.Matches(prayers[i].CreatedAt) {
			filtered = append(filtered, prayers[i])
		}
	}

	models.SortPrayers(filtered)

	return listPrayers(filtered)
}

// addPrayerAction handles the prayer add command.
func addPrayerAction(ctx *cli.Context) error {
	db, err := storeHelper()
	if err != nil {
		return err
	}

	input := models.Prayer{
		Title: ctx.Args().First(),
		Text:  ctx.String("text"),
	}

	if input.Title == "" {
		input, err = prayerForm(input)
		if err != nil {
			return err
		}
	}

	prayer, err := db.AddPrayer(input)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("prayer added: %s", prayer.ID)

	return nil
}

// showPrayerAction prints a single prayer.
func showPrayerAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return errIDRequired
	}

	db, err := storeHelper()
	if err != nil {
		return err
	}

	prayer, err := db.FindPrayer(id)
	if err != nil {
		return err
	}

	printPrayer(os.Stdout, prayer)

	return nil
}

// editPrayerAction handles the prayer edit command. Without flags the
// interactive form opens prefilled with the current values.
func editPrayerAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return errIDRequired
	}

	db, err := storeHelper()
	if err != nil {
		return err
	}

	prayer, err := db.FindPrayer(id)
	if err != nil {
		return err
	}

	patch, err := textPatchFromFlags(ctx, prayer.Title, prayer.Text)
	if err != nil {
		return err
	}

	updated, err := db.UpdatePrayer(prayer.ID, models.PrayerUpdate{
		Title: patch.Title,
		Text:  patch.Text,
	})
	if err != nil {
		return err
	}

	pterm.Success.Printfln("prayer updated: %s", updated.ID)

	return nil
}

// textPatch carries the title and body changes shared by notes and
// prayers.
type textPatch struct {
	Title *string
	Text  *string
}

func textPatchFromFlags(
	ctx *cli.Context,
	currentTitle, currentText string,
) (textPatch, error) {
	var patch textPatch

	if ctx.IsSet("title") {
		title := ctx.String("title")
		patch.Title = &title
	}

	if ctx.IsSet("text") {
		text := ctx.String("text")
		patch.Text = &text
	}

	if patch.Title == nil && patch.Text == nil {
		title, text, err := textForm(currentTitle, currentText)
		if err != nil {
			return patch, err
		}

		patch.Title = &title
		patch.Text = &text
	}

	return patch, nil
}

// editConfigAction handles the edit-config command which opens the hoje
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, appCfg.PathToConfig)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	config.InitializePaths()

	cfg, err := config.Init()
	if err != nil {
		return err
	}

	appCfg = cfg

	config.InitLogger()

	ui.DarkTheme = cfg.DarkTheme

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if HOJE_NO_COLOR is set
	if _, exists := os.LookupEnv(envHojeNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting hoje")

	return nil
}
