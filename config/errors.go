package config

import "errors"

var (
	errReadConfig = errors.New(
		"reading config file failed",
	)

	errWriteConfig = errors.New(
		"writing default config failed",
	)

	errInvalidTimerMinutes = errors.New(
		"timer.default_minutes must be greater than zero",
	)

	errInvalidSinceDate = errors.New(
		"please provide a valid start date",
	)
)
