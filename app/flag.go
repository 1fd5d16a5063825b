package app

import "github.com/urfave/cli/v2"

var (
	titleFlag = &cli.StringFlag{
		Name:  "title",
		Usage: "Set the entry title",
	}

	timeFlag = &cli.StringFlag{
		Name:    "time",
		Aliases: []string{"t"},
		Usage:   "Schedule the activity at a wall-clock time in HH:MM form",
	}

	timerFlag = &cli.IntFlag{
		Name:  "timer",
		Usage: "Enable a countdown timer with the specified duration in minutes",
	}

	noTimerFlag = &cli.BoolFlag{
		Name:  "no-timer",
		Usage: "Remove the activity's countdown timer",
	}

	repeatFlag = &cli.StringFlag{
		Name:    "repeat",
		Aliases: []string{"r"},
		Usage:   "Repeat the activity on comma-delimited days of the week (e.g. 'mon,wed,fri')",
	}

	noRepeatFlag = &cli.BoolFlag{
		Name:  "no-repeat",
		Usage: "Stop repeating the activity",
	}

	prayersFlag = &cli.StringFlag{
		Name:    "prayers",
		Aliases: []string{"p"},
		Usage:   "Link comma-delimited prayer ids to the activity",
	}

	textFlag = &cli.StringFlag{
		Name:  "text",
		Usage: "Set the entry body text",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only list entries created at or after a date (e.g. 'yesterday', '2 days ago')",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}
)
