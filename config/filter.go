package config

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/urfave/cli/v2"
)

// FilterConfig narrows the notebook and prayer list views to entries
// created at or after a point in time.
type FilterConfig struct {
	Since time.Time
}

// Filter builds a filter configuration from command-line arguments.
// The --since value accepts natural-language dates such as
// "yesterday" or "2 days ago".
func Filter(ctx *cli.Context) (*FilterConfig, error) {
	filterCfg := &FilterConfig{}

	since := strings.TrimSpace(ctx.String("since"))
	if since == "" {
		return filterCfg, nil
	}

	dt, err := dateparser.Parse(nil, since)
	if err != nil || dt.Time.IsZero() {
		return nil, errInvalidSinceDate
	}

	filterCfg.Since = dt.Time

	return filterCfg, nil
}

// Matches reports whether an entry created at the specified time
// passes the filter.
func (f *FilterConfig) Matches(createdAt time.Time) bool {
	if f.Since.IsZero() {
		return true
	}

	return !createdAt.Before(f.Since)
}
