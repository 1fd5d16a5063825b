// Package app defines the hoje command-line interface and connects it
// to the planner store and the countdown timer.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/hoje/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the hoje app instance.
func Get() *cli.App {
	hojeApp := &cli.App{
		Name: "hoje",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Hoje is a personal daily planner for the command-line. It keeps your
		scheduled activities, freeform notes, and prayer texts in a local
		database, and counts down activity timers right in your terminal.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a new activity to the daily plan",
				Action: addActivityAction,
				Flags: []cli.Flag{
					timeFlag,
					timerFlag,
					repeatFlag,
					prayersFlag,
				},
			},
			{
				Name:   "edit",
				Usage:  "Edit an existing activity",
				Action: editActivityAction,
				Flags: []cli.Flag{
					titleFlag,
					timeFlag,
					timerFlag,
					noTimerFlag,
					repeatFlag,
					noRepeatFlag,
					prayersFlag,
				},
			},
			{
				Name:   "delete",
				Usage:  "Delete an activity permanently",
				Action: deleteActivityAction,
			},
			{
				Name: "show",
				Usage: `
				Open the details view for an activity. Activities with a timer get
				a live countdown`,
				Action: showActivityAction,
			},
			{
				Name:   "complete",
				Usage:  "Mark an activity as done and remove it from the plan",
				Action: completeActivityAction,
			},
			{
				Name:   "note",
				Usage:  "Manage the notebook",
				Action: listNotesAction,
				Flags:  []cli.Flag{sinceFlag},
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Add a standalone note",
						Action: addNoteAction,
						Flags:  []cli.Flag{textFlag},
					},
					{
						Name:   "show",
						Usage:  "Print a note",
						Action: showNoteAction,
					},
					{
						Name:   "edit",
						Usage:  "Edit a note",
						Action: editNoteAction,
						Flags:  []cli.Flag{titleFlag, textFlag},
					},
					{
						Name: "attach",
						Usage: `
						Open the note attached to an activity, creating a blank one
						when none exists`,
						Action: attachNoteAction,
					},
				},
			},
			{
				Name:   "prayer",
				Usage:  "Manage prayer texts",
				Action: listPrayersAction,
				Flags:  []cli.Flag{sinceFlag},
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Add a prayer",
						Action: addPrayerAction,
						Flags:  []cli.Flag{textFlag},
					},
					{
						Name:   "show",
						Usage:  "Print a prayer",
						Action: showPrayerAction,
					},
					{
						Name:   "edit",
						Usage:  "Edit a prayer",
						Action: editPrayerAction,
						Flags:  []cli.Flag{titleFlag, textFlag},
					},
				},
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return hojeApp
}
