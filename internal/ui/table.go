package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// PrintTable renders a boxed table for the notebook and prayer list
// views.
func PrintTable(data [][]string, writer io.Writer) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to render table: %s", err.Error())
		return
	}

	fmt.Fprintln(writer, str)
}
