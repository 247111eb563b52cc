package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/satishbabariya/pure-orm/runtime/types"
)

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	sqlColor  = color.New(color.FgCyan)
	argsColor = color.New(color.FgHiBlack)
)

// NullText is shown for NULL cells.
const NullText = "NULL"

// Printer writes styled CLI output.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New returns a printer writing regular output to out and errors to errw.
func New(out, errw io.Writer) *Printer {
	return &Printer{out: out, err: errw}
}

// Out returns the regular output writer.
func (p *Printer) Out() io.Writer { return p.out }

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.err, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.out, WarningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Info prints an info message
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, InfoStyle.Render("ℹ "+fmt.Sprintf(format, args...)))
}

// Header prints a title with a dimmed subtitle.
func (p *Printer) Header(title, subtitle string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(0, 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			TitleStyle.Render(title),
			SecondaryStyle.Render(subtitle),
		))
	fmt.Fprintln(p.out, box)
}

// KeyValue prints aligned key/value pairs.
func (p *Printer) KeyValue(pairs ...[2]string) {
	width := 0
	for _, kv := range pairs {
		width = max(width, len(kv[0]))
	}
	key := SecondaryStyle.Width(width + 2)
	for _, kv := range pairs {
		fmt.Fprintln(p.out, key.Render(kv[0]+":")+kv[1])
	}
}

// SQL echoes a statement and its bound arguments.
func (p *Printer) SQL(sql string, args []any) {
	sqlColor.Fprintln(p.out, sql)
	if len(args) > 0 {
		argsColor.Fprintf(p.out, "-- args: %v\n", args)
	}
}

// Table prints a table with a header row.
func (p *Printer) Table(headers []string, rows [][]string) error {
	data := pterm.TableData{headers}
	data = append(data, rows...)
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out, s)
	return nil
}

// Records prints fetched rows as a table. Columns follow the first row.
func (p *Printer) Records(records []types.Record) error {
	if len(records) == 0 {
		p.Info("no rows")
		return nil
	}

	headers := records[0].Names()
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(headers))
		for j, name := range headers {
			v := rec.Value(name)
			if v.IsNull() {
				row[j] = NullText
				continue
			}
			row[j] = v.String()
		}
		rows[i] = row
	}
	return p.Table(headers, rows)
}

// JSON prints v as indented JSON.
func (p *Printer) JSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out, string(out))
	return nil
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(message string) (bool, error) {
	ok := false
	err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok)
	return ok, err
}

// Select asks the user to pick one of options.
func Select(message string, options []string, def string) (string, error) {
	answer := def
	err := survey.AskOne(&survey.Select{Message: message, Options: options, Default: def}, &answer)
	return answer, err
}

// Input asks for a line of text.
func Input(message, def string) (string, error) {
	answer := def
	err := survey.AskOne(&survey.Input{Message: message, Default: def}, &answer)
	return answer, err
}
