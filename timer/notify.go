package timer

import (
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/hoje/config"
)

// notify sends a desktop notification and plays the configured tone.
func notify(opts *config.Config, title, msg string) {
	if !opts.Notify {
		return
	}

	err := beeep.Notify(title, msg, "")
	if err != nil {
		pterm.Error.Printfln("unable to display notification: %v", err)
	}

	if opts.CompletionTone == "" {
		return
	}

	if err := playTone(opts.CompletionTone); err != nil {
		pterm.Error.Printfln("unable to play sound: %v", err)
	}
}

// runCompletionCmd executes the user's configured completion command.
func runCompletionCmd(completionCmd string) error {
	if completionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(completionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse completion.cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}

// announceExpiry reports a countdown that reached zero.
func announceExpiry(opts *config.Config, activityTitle string) {
	notify(opts, "Time is up", activityTitle)
}

// AnnounceCompletion reports a completed activity and runs the
// configured completion command.
func AnnounceCompletion(opts *config.Config, activityTitle string) {
	notify(opts, "Activity completed", activityTitle)

	if err := runCompletionCmd(opts.CompletionCmd); err != nil {
		slog.Error(
			"completion command failed",
			slog.String("cmd", opts.CompletionCmd),
			slog.Any("error", err),
		)
	}
}
