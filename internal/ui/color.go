// Package ui holds the pterm helpers shared by the planner's list
// views.
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme switches the palette to lighter variants for dark
// terminal backgrounds.
var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Magenta(a any) string {
	if DarkTheme {
		return pterm.LightMagenta(a)
	}

	return pterm.Magenta(a)
}

func Blue(a any) string {
	if DarkTheme {
		return pterm.LightBlue(a)
	}

	return pterm.Blue(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

func Gray(a any) string {
	if DarkTheme {
		return pterm.Gray(a)
	}

	return pterm.FgDarkGray.Sprint(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}
