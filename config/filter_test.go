package config

import (
	"flag"
	"testing"
	"time"

	"github.com/urfave/cli/v2"
)

func filterContext(t *testing.T, since string) *cli.Context {
	t.Helper()

	f := flag.NewFlagSet("note", flag.PanicOnError)
	_ = f.String("since", "", "")

	if since != "" {
		if err := f.Set("since", since); err != nil {
			t.Fatal(err)
		}
	}

	return cli.NewContext(&cli.App{}, f, nil)
}

func TestFilter(t *testing.T) {
	table := []struct {
		name    string
		since   string
		wantErr bool
	}{
		{name: "no filter"},
		{name: "absolute date", since: "2024-04-12"},
		{name: "relative date", since: "2 days ago"},
		{name: "gibberish", since: "not a date at all", wantErr: true},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Filter(filterContext(t, tc.since))

			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error, but got none")
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if tc.since == "" && !cfg.Since.IsZero() {
				t.Errorf("expected a zero start time, but got: %v", cfg.Since)
			}

			if tc.since != "" && cfg.Since.IsZero() {
				t.Error("expected a parsed start time, but got zero")
			}
		})
	}
}

func TestFilterMatches(t *testing.T) {
	now := time.Now()

	cfg := &FilterConfig{Since: now.Add(-24 * time.Hour)}

	if !cfg.Matches(now) {
		t.Error("expected a recent entry to match")
	}

	if cfg.Matches(now.Add(-48 * time.Hour)) {
		t.Error("expected an old entry to not match")
	}

	unfiltered := &FilterConfig{}

	if !unfiltered.Matches(time.Time{}) {
		t.Error("expected everything to match without a filter")
	}
}
