package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Theme implements a Gruvbox-inspired dark theme
var Theme = struct {
	Heading     text.Colors
	Subtle      text.Colors
	Title       text.Colors
	TableHeader text.Colors
	TableBorder text.Colors
	TableRow    text.Colors
	TableAltRow text.Colors
}{
	Heading:     text.Colors{text.FgHiCyan, text.Bold},
	Subtle:      text.Colors{text.FgHiBlack},
	Title:       text.Colors{text.FgHiCyan, text.Bold},
	TableHeader: text.Colors{text.FgHiBlue, text.Bold},
	TableBorder: text.Colors{text.FgBlue},
	TableRow:    text.Colors{text.FgWhite},
	TableAltRow: text.Colors{text.FgWhite, text.Faint},
}

var (
	successMark = color.New(color.FgGreen).SprintFunc()
	infoMark    = color.New(color.FgBlue).SprintFunc()
	warnMark    = color.New(color.FgYellow).SprintFunc()
	errorText   = color.New(color.FgRed, color.Bold).SprintFunc()
)

// PrintHeading prints a formatted heading
func PrintHeading(w io.Writer, title string) {
	fmt.Fprintln(w, Theme.Heading.Sprint(title))
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintln(w, successMark("✓ ")+message)
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, message string) {
	fmt.Fprintln(w, infoMark("ℹ ")+message)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintln(w, warnMark("⚠ ")+message)
}

// PrintError prints an error message in red
func PrintError(w io.Writer, message string) {
	fmt.Fprintln(w, errorText("✗ "+message))
}

// PrintKeyValue prints a key-value pair
func PrintKeyValue(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s: %s\n", color.New(color.Bold).Sprint(key), value)
}

// TableOptions defines options for table creation
type TableOptions struct {
	Title  string
	Output io.Writer
	Style  table.Style
}

// DefaultTableOptions returns default table options with the Gruvbox theme
func DefaultTableOptions() TableOptions {
	return TableOptions{
		Title:  "codelens",
		Output: os.Stdout,
		Style:  table.StyleLight,
	}
}

// CreateTable creates a new table with default styling
func CreateTable(opts TableOptions) table.Writer {
	t := table.NewWriter()
	if opts.Output != nil {
		t.SetOutputMirror(opts.Output)
	}
	if opts.Title != "" {
		t.SetTitle(opts.Title)
	}

	style := opts.Style
	style.Color.Header = Theme.TableHeader
	style.Color.Border = Theme.TableBorder
	style.Color.Row = Theme.TableRow
	style.Color.RowAlternate = Theme.TableAltRow
	style.Title.Colors = Theme.Title
	style.Title.Align = text.AlignCenter
	style.Options.DrawBorder = true
	style.Options.SeparateColumns = true
	style.Options.SeparateHeader = true
	style.Options.SeparateRows = false
	t.SetStyle(style)

	return t
}

// PrintTable prints a table with headers and rows
func PrintTable(headers []string, rows [][]string, opts TableOptions) {
	t := CreateTable(opts)

	headerRow := table.Row{}
	for _, header := range headers {
		headerRow = append(headerRow, header)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tableRow := table.Row{}
		for _, cell := range row {
			tableRow = append(tableRow, cell)
		}
		t.AppendRow(tableRow)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignCenter,
		})
	}
	t.SetColumnConfigs(configs)

	t.Render()
}
