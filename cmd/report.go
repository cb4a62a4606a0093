package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	headerFmt = color.New(color.FgCyan, color.Underline, color.Bold).SprintfFunc()
	columnFmt = color.New(color.FgYellow).SprintfFunc()
	failFmt   = color.New(color.FgRed).SprintFunc()
	okFmt     = color.New(color.FgGreen).SprintFunc()
)

// newTable returns a report table writing to w with the CLI's header and
// first-column styling.
func newTable(w io.Writer, headers ...any) table.Table {
	return table.New(headers...).
		WithWriter(w).
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt)
}

// section prints a bold section heading.
func section(w io.Writer, title string) {
	fmt.Fprintln(w, color.New(color.Bold).Sprint(title))
}

func status(ok bool) string {
	if ok {
		return okFmt("ok")
	}
	return failFmt("failed")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
